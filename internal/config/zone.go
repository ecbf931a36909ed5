package config

import (
	"time"

	"zonedispatch/internal/domain"
)

type ZoneConfig struct {
	ExactMatchConfidence   float64       `yaml:"exact_match_confidence"`
	BelowMinimumConfidence float64       `yaml:"below_minimum_confidence"`
	NearestZoneConfidence  float64       `yaml:"nearest_zone_confidence"`
	OrdersPerDriver        int           `yaml:"orders_per_driver"`
	MaxDeliveryFee         float64       `yaml:"max_delivery_fee"`
	BaseDeliveryRate       float64       `yaml:"base_delivery_rate"`
	PerKMDeliveryRate      float64       `yaml:"per_km_delivery_rate"`
	CacheTTL               time.Duration `yaml:"cache_ttl"`
}

func loadZoneConfig() *ZoneConfig {
	return &ZoneConfig{
		ExactMatchConfidence:   getEnvAsFloat64("ZONE_EXACT_MATCH_CONFIDENCE", domain.DefaultExactMatchConfidence),
		BelowMinimumConfidence: getEnvAsFloat64("ZONE_BELOW_MINIMUM_CONFIDENCE", domain.DefaultBelowMinimumConfidence),
		NearestZoneConfidence:  getEnvAsFloat64("ZONE_NEAREST_CONFIDENCE", domain.DefaultNearestZoneConfidence),
		OrdersPerDriver:        getEnvAsInt("ZONE_ORDERS_PER_DRIVER", domain.DefaultOrdersPerDriver),
		MaxDeliveryFee:         getEnvAsFloat64("ZONE_MAX_DELIVERY_FEE", domain.DefaultMaxDeliveryFee),
		BaseDeliveryRate:       getEnvAsFloat64("ZONE_BASE_DELIVERY_RATE", domain.DefaultBaseDeliveryRate),
		PerKMDeliveryRate:      getEnvAsFloat64("ZONE_PER_KM_DELIVERY_RATE", domain.DefaultPerKMDeliveryRate),
		CacheTTL:               getEnvAsDuration("ZONE_CACHE_TTL", 10*time.Minute),
	}
}

// Policy converts the configured values into the domain policy.
func (c *ZoneConfig) Policy() domain.ZonePolicy {
	if c == nil {
		return domain.DefaultZonePolicy()
	}
	return domain.ZonePolicy{
		ExactMatchConfidence:   c.ExactMatchConfidence,
		BelowMinimumConfidence: c.BelowMinimumConfidence,
		NearestZoneConfidence:  c.NearestZoneConfidence,
		OrdersPerDriver:        c.OrdersPerDriver,
		MaxDeliveryFee:         c.MaxDeliveryFee,
		BaseDeliveryRate:       c.BaseDeliveryRate,
		PerKMDeliveryRate:      c.PerKMDeliveryRate,
	}
}
