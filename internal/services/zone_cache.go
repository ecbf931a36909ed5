package services

import (
	"context"
	"time"

	"zonedispatch/internal/metrics"
	"zonedispatch/internal/models"
	"zonedispatch/internal/utils"
	"zonedispatch/pkg/cache"
	"zonedispatch/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// zoneCache stores zone lists per business. A nil backend disables caching;
// backend failures are logged and treated as misses.
type zoneCache struct {
	backend cache.Cache
	ttl     time.Duration
	metrics *metrics.ZoneCollector
	logger  *logger.Logger
}

func newZoneCache(backend cache.Cache, ttl time.Duration, m *metrics.ZoneCollector, log *logger.Logger) *zoneCache {
	if ttl <= 0 {
		ttl = utils.DefaultZoneCacheTTL
	}
	return &zoneCache{backend: backend, ttl: ttl, metrics: m, logger: log}
}

func businessZonesKey(businessID primitive.ObjectID) string {
	return utils.CacheBusinessZonePrefix + businessID.Hex()
}

func (c *zoneCache) get(ctx context.Context, key string) ([]*models.Zone, bool) {
	if c.backend == nil {
		return nil, false
	}

	var zones []*models.Zone
	if err := c.backend.Get(ctx, key, &zones); err != nil {
		if !cache.IsMiss(err) {
			c.logger.WithError(err).WithField("key", key).Warn("Zone cache read failed")
		}
		c.metrics.IncCache(false)
		return nil, false
	}

	c.metrics.IncCache(true)
	return zones, true
}

func (c *zoneCache) set(ctx context.Context, key string, zones []*models.Zone) {
	if c.backend == nil {
		return
	}
	if err := c.backend.Set(ctx, key, zones, c.ttl); err != nil {
		c.logger.WithError(err).WithField("key", key).Warn("Zone cache write failed")
	}
}

func (c *zoneCache) invalidate(ctx context.Context, businessID primitive.ObjectID) {
	if c.backend == nil {
		return
	}
	if err := c.backend.Delete(ctx, businessZonesKey(businessID), utils.CacheAllZonesKey); err != nil {
		c.logger.WithError(err).WithBusinessID(businessID).Warn("Zone cache invalidation failed")
	}
}
