package main

import (
	"github.com/joho/godotenv"

	"zonedispatch/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
