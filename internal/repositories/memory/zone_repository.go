// Package memory holds process-local repositories used by zonectl snapshots
// and by HTTP tests. Records are copied on the way in and out.
package memory

import (
	"context"
	"sync"
	"time"

	"zonedispatch/internal/models"
	"zonedispatch/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type zoneRepository struct {
	mu    sync.RWMutex
	zones []*models.Zone
}

func NewZoneRepository(seed ...*models.Zone) interfaces.ZoneRepository {
	r := &zoneRepository{}
	for _, zone := range seed {
		copied := *zone
		if copied.ID.IsZero() {
			copied.ID = primitive.NewObjectID()
		}
		r.zones = append(r.zones, &copied)
	}
	return r
}

func (r *zoneRepository) Create(_ context.Context, zone *models.Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if zone.ID.IsZero() {
		zone.ID = primitive.NewObjectID()
	}
	now := time.Now()
	zone.CreatedAt = now
	zone.UpdatedAt = now

	copied := *zone
	r.zones = append(r.zones, &copied)
	return nil
}

func (r *zoneRepository) GetByID(_ context.Context, id primitive.ObjectID) (*models.Zone, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, zone := range r.zones {
		if zone.ID == id {
			copied := *zone
			return &copied, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (r *zoneRepository) Update(_ context.Context, zone *models.Zone) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.zones {
		if existing.ID == zone.ID {
			zone.UpdatedAt = time.Now()
			copied := *zone
			r.zones[i] = &copied
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (r *zoneRepository) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, zone := range r.zones {
		if zone.ID == id {
			r.zones = append(r.zones[:i], r.zones[i+1:]...)
			return nil
		}
	}
	return interfaces.ErrNotFound
}

func (r *zoneRepository) ListByBusiness(_ context.Context, businessID primitive.ObjectID, activeOnly bool) ([]*models.Zone, error) {
	return r.list(func(z *models.Zone) bool {
		return z.BusinessID == businessID && (!activeOnly || z.IsActive)
	}), nil
}

func (r *zoneRepository) ListAll(_ context.Context, activeOnly bool) ([]*models.Zone, error) {
	return r.list(func(z *models.Zone) bool {
		return !activeOnly || z.IsActive
	}), nil
}

func (r *zoneRepository) list(keep func(*models.Zone) bool) []*models.Zone {
	r.mu.RLock()
	defer r.mu.RUnlock()

	zones := make([]*models.Zone, 0, len(r.zones))
	for _, zone := range r.zones {
		if keep(zone) {
			copied := *zone
			zones = append(zones, &copied)
		}
	}
	return zones
}
