package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"zonedispatch/internal/models"
	"zonedispatch/internal/repositories/interfaces"
	"zonedispatch/pkg/cache"
	"zonedispatch/pkg/maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeZoneRepo struct {
	mu    sync.Mutex
	zones []*models.Zone
	lists int
}

func (r *fakeZoneRepo) Create(_ context.Context, zone *models.Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if zone.ID.IsZero() {
		zone.ID = primitive.NewObjectID()
	}
	r.zones = append(r.zones, zone)
	return nil
}

func (r *fakeZoneRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, z := range r.zones {
		if z.ID == id {
			copied := *z
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeZoneRepo) Update(_ context.Context, zone *models.Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, z := range r.zones {
		if z.ID == zone.ID {
			r.zones[i] = zone
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (r *fakeZoneRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, z := range r.zones {
		if z.ID == id {
			r.zones = append(r.zones[:i], r.zones[i+1:]...)
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (r *fakeZoneRepo) ListByBusiness(_ context.Context, businessID primitive.ObjectID, activeOnly bool) ([]*models.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	out := make([]*models.Zone, 0)
	for _, z := range r.zones {
		if z.BusinessID == businessID && (!activeOnly || z.IsActive) {
			out = append(out, z)
		}
	}
	return out, nil
}

func (r *fakeZoneRepo) ListAll(_ context.Context, activeOnly bool) ([]*models.Zone, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lists++
	out := make([]*models.Zone, 0)
	for _, z := range r.zones {
		if !activeOnly || z.IsActive {
			out = append(out, z)
		}
	}
	return out, nil
}

type fakeAssignmentRepo struct {
	mu          sync.Mutex
	assignments []*models.ZoneAssignment
}

func (r *fakeAssignmentRepo) Create(_ context.Context, a *models.ZoneAssignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.AssignedAt.IsZero() {
		a.AssignedAt = time.Now()
	}
	r.assignments = append(r.assignments, a)
	return nil
}

func (r *fakeAssignmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.ZoneAssignment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assignments {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *fakeAssignmentRepo) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assignments {
		if a.ID == id {
			if a.IsActive == active {
				return interfaces.ErrStateConflict
			}
			a.IsActive = active
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (r *fakeAssignmentRepo) filter(keep func(*models.ZoneAssignment) bool) []*models.ZoneAssignment {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.ZoneAssignment, 0)
	for _, a := range r.assignments {
		if keep(a) {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out
}

func (r *fakeAssignmentRepo) ListByZone(_ context.Context, zoneID primitive.ObjectID) ([]*models.ZoneAssignment, error) {
	return r.filter(func(a *models.ZoneAssignment) bool { return a.ZoneID == zoneID }), nil
}

func (r *fakeAssignmentRepo) ListByBusiness(_ context.Context, businessID primitive.ObjectID) ([]*models.ZoneAssignment, error) {
	return r.filter(func(a *models.ZoneAssignment) bool { return a.BusinessID == businessID }), nil
}

func (r *fakeAssignmentRepo) ListByDriver(_ context.Context, driverID primitive.ObjectID) ([]*models.ZoneAssignment, error) {
	return r.filter(func(a *models.ZoneAssignment) bool { return a.DriverID == driverID }), nil
}

// memoryCache round-trips values through JSON like the Redis cache does.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	fail    bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	if c.fail {
		return errors.New("cache unavailable")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
	return nil
}

func (c *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	if c.fail {
		return errors.New("cache unavailable")
	}
	c.mu.Lock()
	data, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	if c.fail {
		return errors.New("cache unavailable")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

type fixedDistance struct {
	km  float64
	err error
}

func (f fixedDistance) Name() string { return "fixed" }

func (f fixedDistance) Distance(context.Context, maps.Location, maps.Location) (*maps.DistanceResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &maps.DistanceResult{DistanceKM: f.km, Source: "fixed"}, nil
}
