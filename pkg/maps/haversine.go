package maps

import (
	"context"

	"zonedispatch/internal/utils"
)

// HaversineProvider reports great-circle distance. It never fails and is the
// fallback when no routing API is configured.
type HaversineProvider struct{}

func NewHaversineProvider() *HaversineProvider {
	return &HaversineProvider{}
}

func (h *HaversineProvider) Name() string {
	return SourceHaversine
}

func (h *HaversineProvider) Distance(ctx context.Context, origin, destination Location) (*DistanceResult, error) {
	return &DistanceResult{
		DistanceKM: utils.CalculateDistance(origin.Latitude, origin.Longitude, destination.Latitude, destination.Longitude),
		Source:     SourceHaversine,
	}, nil
}

// FallbackProvider tries the primary provider and falls back to the secondary
// on any error.
type FallbackProvider struct {
	primary   DistanceProvider
	secondary DistanceProvider
}

func NewFallbackProvider(primary, secondary DistanceProvider) *FallbackProvider {
	return &FallbackProvider{primary: primary, secondary: secondary}
}

func (f *FallbackProvider) Name() string {
	return f.primary.Name()
}

func (f *FallbackProvider) Distance(ctx context.Context, origin, destination Location) (*DistanceResult, error) {
	result, err := f.primary.Distance(ctx, origin, destination)
	if err == nil {
		return result, nil
	}
	return f.secondary.Distance(ctx, origin, destination)
}
