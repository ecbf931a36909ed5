package config

import "time"

type MapsConfig struct {
	Provider       string            `yaml:"provider"` // google, haversine
	RequestTimeout time.Duration     `yaml:"request_timeout"`
	GoogleMaps     *GoogleMapsConfig `yaml:"google_maps"`
}

type GoogleMapsConfig struct {
	APIKey string `yaml:"api_key"`
	Mode   string `yaml:"mode"`
}

func loadMapsConfig() *MapsConfig {
	return &MapsConfig{
		Provider:       getEnv("MAPS_PROVIDER", "haversine"),
		RequestTimeout: getEnvAsDuration("MAPS_REQUEST_TIMEOUT", 5*time.Second),
		GoogleMaps: &GoogleMapsConfig{
			APIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
			Mode:   getEnv("GOOGLE_MAPS_MODE", "driving"),
		},
	}
}
