package maps

import (
	"context"
	"errors"
)

const (
	SourceGoogle    = "google_distance_matrix"
	SourceHaversine = "haversine"
)

var ErrNoRoute = errors.New("maps: no route between locations")

// DistanceProvider measures the travel distance between two locations.
type DistanceProvider interface {
	Distance(ctx context.Context, origin, destination Location) (*DistanceResult, error)
	Name() string
}

type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type DistanceResult struct {
	DistanceKM      float64 `json:"distance_km"`
	DurationSeconds int     `json:"duration_seconds,omitempty"`
	Source          string  `json:"source"`
}
