package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

type GoogleMapsProvider struct {
	client  *maps.Client
	mode    maps.Mode
	timeout time.Duration
}

func NewGoogleMapsProvider(apiKey, mode string, timeout time.Duration) (*GoogleMapsProvider, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	if mode == "" {
		mode = string(maps.TravelModeDriving)
	}

	return &GoogleMapsProvider{
		client:  client,
		mode:    maps.Mode(mode),
		timeout: timeout,
	}, nil
}

func (g *GoogleMapsProvider) Name() string {
	return SourceGoogle
}

func (g *GoogleMapsProvider) Distance(ctx context.Context, origin, destination Location) (*DistanceResult, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	req := &maps.DistanceMatrixRequest{
		Origins:      []string{formatLatLng(origin)},
		Destinations: []string{formatLatLng(destination)},
		Mode:         g.mode,
		Units:        maps.UnitsMetric,
	}

	resp, err := g.client.DistanceMatrix(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("distance matrix request failed: %w", err)
	}

	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return nil, ErrNoRoute
	}

	element := resp.Rows[0].Elements[0]
	if element.Status != "OK" {
		return nil, fmt.Errorf("%w: status %s", ErrNoRoute, element.Status)
	}

	return &DistanceResult{
		DistanceKM:      float64(element.Distance.Meters) / 1000,
		DurationSeconds: int(element.Duration.Seconds()),
		Source:          SourceGoogle,
	}, nil
}

func formatLatLng(l Location) string {
	return fmt.Sprintf("%f,%f", l.Latitude, l.Longitude)
}
