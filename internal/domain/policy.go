package domain

// Default business policy. Callers that branch on confidence thresholds rely
// on these exact values.
const (
	DefaultExactMatchConfidence   = 1.0
	DefaultBelowMinimumConfidence = 0.5
	DefaultNearestZoneConfidence  = 0.6

	DefaultOrdersPerDriver = 5

	DefaultMaxDeliveryFee    = 1000.0
	DefaultBaseDeliveryRate  = 5.0
	DefaultPerKMDeliveryRate = 2.0
)

const (
	ReasonWithinZone  = "Location is within zone boundaries"
	ReasonNearestZone = "Nearest available zone"
)

// Recommendation tiers. Confidence values are configurable and may collide,
// so the tier is the stable way to tell which rule matched.
const (
	TierExactMatch   = "exact_match"
	TierBelowMinimum = "below_minimum"
	TierNearest      = "nearest"
)

// ZonePolicy holds the fixed policy constants used by ZoneDomainService.
type ZonePolicy struct {
	ExactMatchConfidence   float64
	BelowMinimumConfidence float64
	NearestZoneConfidence  float64
	OrdersPerDriver        int
	MaxDeliveryFee         float64
	BaseDeliveryRate       float64
	PerKMDeliveryRate      float64
}

func DefaultZonePolicy() ZonePolicy {
	return ZonePolicy{
		ExactMatchConfidence:   DefaultExactMatchConfidence,
		BelowMinimumConfidence: DefaultBelowMinimumConfidence,
		NearestZoneConfidence:  DefaultNearestZoneConfidence,
		OrdersPerDriver:        DefaultOrdersPerDriver,
		MaxDeliveryFee:         DefaultMaxDeliveryFee,
		BaseDeliveryRate:       DefaultBaseDeliveryRate,
		PerKMDeliveryRate:      DefaultPerKMDeliveryRate,
	}
}

// normalized replaces non-positive ratios with defaults so coverage never
// divides by zero.
func (p ZonePolicy) normalized() ZonePolicy {
	if p.OrdersPerDriver <= 0 {
		p.OrdersPerDriver = DefaultOrdersPerDriver
	}
	return p
}
