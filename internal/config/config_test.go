package config

import (
	"testing"
	"time"

	"zonedispatch/internal/domain"
)

func TestLoadDefaultsMatchDomainPolicy(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := cfg.Zone.Policy(); got != domain.DefaultZonePolicy() {
		t.Fatalf("policy = %+v, want defaults", got)
	}
	if cfg.Zone.CacheTTL != 10*time.Minute {
		t.Fatalf("cache ttl = %v", cfg.Zone.CacheTTL)
	}
}

func TestZonePolicyOverrides(t *testing.T) {
	t.Setenv("ZONE_NEAREST_CONFIDENCE", "0.4")
	t.Setenv("ZONE_ORDERS_PER_DRIVER", "8")
	t.Setenv("ZONE_MAX_DELIVERY_FEE", "250")
	t.Setenv("ZONE_CACHE_TTL", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	policy := cfg.Zone.Policy()
	if policy.NearestZoneConfidence != 0.4 || policy.OrdersPerDriver != 8 || policy.MaxDeliveryFee != 250 {
		t.Fatalf("overrides not applied: %+v", policy)
	}
	if policy.ExactMatchConfidence != domain.DefaultExactMatchConfidence {
		t.Fatalf("unrelated value changed: %+v", policy)
	}
	if cfg.Zone.CacheTTL != 30*time.Second {
		t.Fatalf("cache ttl = %v", cfg.Zone.CacheTTL)
	}
}

func TestInvalidValuesFallBack(t *testing.T) {
	t.Setenv("APP_PORT", "not-a-port")
	t.Setenv("REDIS_ENABLED", "maybe")

	cfg, _ := Load()
	if cfg.App.Port != 8080 {
		t.Fatalf("port = %d", cfg.App.Port)
	}
	if !cfg.Redis.Enabled {
		t.Fatalf("redis enabled should keep default")
	}
}

func TestNilZoneConfigPolicy(t *testing.T) {
	var c *ZoneConfig
	if c.Policy() != domain.DefaultZonePolicy() {
		t.Fatalf("nil config should yield defaults")
	}
}
