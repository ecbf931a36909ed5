package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"zonedispatch/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recommendation tiers used as the "tier" label.
const (
	TierExactMatch   = domain.TierExactMatch
	TierBelowMinimum = domain.TierBelowMinimum
	TierNearest      = domain.TierNearest
	TierNone         = "none"
)

// ZoneCollector exposes zone engine and HTTP metrics.
type ZoneCollector struct {
	gatherer prometheus.Gatherer

	RecommendationsTotal  *prometheus.CounterVec
	LookupDuration        prometheus.Histogram
	CoveragePercentage    *prometheus.GaugeVec
	AssignmentTransitions *prometheus.CounterVec
	CacheRequestsTotal    *prometheus.CounterVec
	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
}

// NewZoneCollector registers zone metrics against the provided registerer.
// Registering twice against the same registerer reuses the existing collectors.
func NewZoneCollector(reg prometheus.Registerer) (*ZoneCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	recommendations, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zone_recommendations_total",
		Help: "Zone recommendations served, by confidence tier.",
	}, []string{"tier"}), "zone_recommendations_total")
	if err != nil {
		return nil, err
	}

	lookup, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "zone_lookup_duration_seconds",
		Help:    "Duration of point-in-zone and nearest-zone lookups.",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
	}), "zone_lookup_duration_seconds")
	if err != nil {
		return nil, err
	}

	coverage, err := register(reg, prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "zone_coverage_percentage",
		Help: "Last computed driver coverage percentage per zone.",
	}, []string{"zone_id"}), "zone_coverage_percentage")
	if err != nil {
		return nil, err
	}

	transitions, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zone_assignment_transitions_total",
		Help: "Driver assignment activation and deactivation attempts, by outcome.",
	}, []string{"transition", "result"}), "zone_assignment_transitions_total")
	if err != nil {
		return nil, err
	}

	cacheRequests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "zone_cache_requests_total",
		Help: "Zone list cache lookups, by result.",
	}, []string{"result"}), "zone_cache_requests_total")
	if err != nil {
		return nil, err
	}

	httpRequests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests handled, by method, route and status.",
	}, []string{"method", "route", "status"}), "http_requests_total")
	if err != nil {
		return nil, err
	}

	httpDuration, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency, by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"}), "http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &ZoneCollector{
		gatherer:              gatherer,
		RecommendationsTotal:  recommendations,
		LookupDuration:        lookup,
		CoveragePercentage:    coverage,
		AssignmentTransitions: transitions,
		CacheRequestsTotal:    cacheRequests,
		HTTPRequestsTotal:     httpRequests,
		HTTPRequestDuration:   httpDuration,
	}, nil
}

// Gatherer returns the Prometheus gatherer associated with the collector.
func (c *ZoneCollector) Gatherer() prometheus.Gatherer {
	if c == nil {
		return nil
	}
	return c.gatherer
}

// Handler serves the collector's gatherer in the Prometheus text format.
func (c *ZoneCollector) Handler() http.Handler {
	if c == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

func (c *ZoneCollector) IncRecommendation(tier string) {
	if c == nil || c.RecommendationsTotal == nil {
		return
	}
	c.RecommendationsTotal.WithLabelValues(tier).Inc()
}

func (c *ZoneCollector) ObserveLookup(d time.Duration) {
	if c == nil || c.LookupDuration == nil {
		return
	}
	c.LookupDuration.Observe(d.Seconds())
}

func (c *ZoneCollector) SetCoverage(zoneID string, percentage float64) {
	if c == nil || c.CoveragePercentage == nil {
		return
	}
	c.CoveragePercentage.WithLabelValues(zoneID).Set(percentage)
}

// IncTransition records an assignment transition attempt; ok is false when the
// entity rejected it.
func (c *ZoneCollector) IncTransition(transition string, ok bool) {
	if c == nil || c.AssignmentTransitions == nil {
		return
	}
	result := "applied"
	if !ok {
		result = "rejected"
	}
	c.AssignmentTransitions.WithLabelValues(transition, result).Inc()
}

func (c *ZoneCollector) IncCache(hit bool) {
	if c == nil || c.CacheRequestsTotal == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	c.CacheRequestsTotal.WithLabelValues(result).Inc()
}

func (c *ZoneCollector) ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	if c == nil || c.HTTPRequestsTotal == nil || c.HTTPRequestDuration == nil {
		return
	}
	c.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T, name string) (T, error) {
	if err := reg.Register(collector); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return collector, nil
}
