package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestZoneCollectorCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewZoneCollector(reg)
	if err != nil {
		t.Fatalf("NewZoneCollector: %v", err)
	}

	c.IncRecommendation(TierExactMatch)
	c.IncRecommendation(TierExactMatch)
	c.IncRecommendation(TierNearest)
	c.IncTransition("activate", true)
	c.IncTransition("activate", false)
	c.IncCache(true)
	c.SetCoverage("z1", 40)
	c.ObserveLookup(time.Millisecond)

	if got := testutil.ToFloat64(c.RecommendationsTotal.WithLabelValues(TierExactMatch)); got != 2 {
		t.Fatalf("exact recommendations = %v, want 2", got)
	}
	if got := testutil.ToFloat64(c.AssignmentTransitions.WithLabelValues("activate", "rejected")); got != 1 {
		t.Fatalf("rejected transitions = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.CoveragePercentage.WithLabelValues("z1")); got != 40 {
		t.Fatalf("coverage = %v, want 40", got)
	}
	if got := testutil.ToFloat64(c.CacheRequestsTotal.WithLabelValues("hit")); got != 1 {
		t.Fatalf("cache hits = %v, want 1", got)
	}
}

func TestZoneCollectorReusesRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewZoneCollector(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := NewZoneCollector(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}

	first.IncRecommendation(TierNone)
	if got := testutil.ToFloat64(second.RecommendationsTotal.WithLabelValues(TierNone)); got != 1 {
		t.Fatalf("collectors not shared, got %v", got)
	}
}

func TestNilCollectorIsSafe(t *testing.T) {
	var c *ZoneCollector
	c.IncRecommendation(TierNone)
	c.IncTransition("deactivate", true)
	c.IncCache(false)
	c.SetCoverage("z", 1)
	c.ObserveLookup(time.Second)
	c.ObserveHTTPRequest("GET", "/health", 200, time.Millisecond)
	if c.Gatherer() != nil {
		t.Fatal("nil collector should have nil gatherer")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewZoneCollector(reg)
	if err != nil {
		t.Fatalf("NewZoneCollector: %v", err)
	}
	c.ObserveHTTPRequest("GET", "/health", 200, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if !strings.Contains(rec.Body.String(), `http_requests_total{method="GET",route="/health",status="200"} 1`) {
		t.Fatalf("metrics output missing request counter:\n%s", rec.Body.String())
	}
}
