package domain

import (
	"fmt"
	"math"

	"zonedispatch/internal/models"
	"zonedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ZoneDomainService is the stateless computation layer over zone and
// assignment collections. It performs no I/O and never mutates its inputs,
// so a single instance is safe for concurrent use.
type ZoneDomainService interface {
	// Matching
	FindZoneForLocation(zones []*models.Zone, lat, lng float64) *models.Zone
	FindNearestZone(zones []*models.Zone, lat, lng float64) *models.Zone
	RecommendZone(zones []*models.Zone, lat, lng, orderTotal float64) *models.ZoneRecommendation

	// Validation
	ValidateZonePolygon(polygon *models.ZonePolygon) models.ValidationResult
	ValidateDeliveryFee(fee float64) models.ValidationResult

	// Coverage and grouping
	CalculateZoneCoverage(zone *models.Zone, assignments []*models.ZoneAssignment, pendingOrderCount int) *models.ZoneCoverage
	GroupZonesByBusiness(zones []*models.Zone) map[primitive.ObjectID][]*models.Zone
	FindDriversInZone(zoneID primitive.ObjectID, assignments []*models.ZoneAssignment) []primitive.ObjectID

	// Pricing
	CalculateOptimalDeliveryFee(distanceKM float64) float64
	CalculateDeliveryFee(distanceKM, baseRate, perKMRate float64) float64

	Policy() ZonePolicy
}

type zoneDomainService struct {
	policy ZonePolicy
}

func NewZoneDomainService(policy ZonePolicy) ZoneDomainService {
	return &zoneDomainService{
		policy: policy.normalized(),
	}
}

func NewDefaultZoneDomainService() ZoneDomainService {
	return NewZoneDomainService(DefaultZonePolicy())
}

func (s *zoneDomainService) Policy() ZonePolicy {
	return s.policy
}

// FindZoneForLocation returns the first active zone, in input order, whose
// polygon contains the point. Overlaps are not detected.
func (s *zoneDomainService) FindZoneForLocation(zones []*models.Zone, lat, lng float64) *models.Zone {
	for _, zone := range zones {
		entity := NewZoneEntity(zone)
		if !entity.IsActive() {
			continue
		}
		if entity.ContainsPoint(lat, lng) {
			return zone
		}
	}
	return nil
}

// FindNearestZone picks the active zone with a polygon whose vertex mean is
// closest to the point by haversine distance. Ties keep the earlier zone.
func (s *zoneDomainService) FindNearestZone(zones []*models.Zone, lat, lng float64) *models.Zone {
	var nearest *models.Zone
	minDistance := math.Inf(1)

	for _, zone := range zones {
		entity := NewZoneEntity(zone)
		if !entity.IsActive() || !entity.HasPolygon() {
			continue
		}

		center := entity.PolygonCenter()
		if center == nil {
			continue
		}

		distance := utils.CalculateDistance(lat, lng, center.Lat, center.Lng)
		if distance < minDistance {
			minDistance = distance
			nearest = zone
		}
	}

	return nearest
}

func (s *zoneDomainService) RecommendZone(zones []*models.Zone, lat, lng, orderTotal float64) *models.ZoneRecommendation {
	if zone := s.FindZoneForLocation(zones, lat, lng); zone != nil {
		entity := NewZoneEntity(zone)
		if entity.MeetsMinimumOrder(orderTotal) {
			return &models.ZoneRecommendation{
				Zone:       zone,
				Confidence: s.policy.ExactMatchConfidence,
				Reason:     ReasonWithinZone,
				Tier:       TierExactMatch,
			}
		}

		return &models.ZoneRecommendation{
			Zone:       zone,
			Confidence: s.policy.BelowMinimumConfidence,
			Reason:     fmt.Sprintf("Order total %.2f is below the zone minimum order of %.2f", orderTotal, entity.MinimumOrder()),
			Tier:       TierBelowMinimum,
		}
	}

	if zone := s.FindNearestZone(zones, lat, lng); zone != nil {
		return &models.ZoneRecommendation{
			Zone:       zone,
			Confidence: s.policy.NearestZoneConfidence,
			Reason:     ReasonNearestZone,
			Tier:       TierNearest,
		}
	}

	return nil
}

// ValidateZonePolygon reports the first structural problem found.
func (s *zoneDomainService) ValidateZonePolygon(polygon *models.ZonePolygon) models.ValidationResult {
	if polygon == nil || len(polygon.Coordinates) == 0 {
		return invalid("Polygon coordinates are required")
	}

	if polygon.Type != models.GeometryTypePolygon {
		return invalid(fmt.Sprintf("Geometry type must be %s, got %q", models.GeometryTypePolygon, polygon.Type))
	}

	ring := polygon.Ring()
	if len(ring) < 3 {
		return invalid("Polygon must have at least 3 points")
	}

	for i, position := range ring {
		if len(position) != 2 || !utils.IsFinite(position[0]) || !utils.IsFinite(position[1]) {
			return invalid(fmt.Sprintf("Invalid coordinate at index %d: expected [longitude, latitude]", i))
		}

		lng, lat := position[0], position[1]
		if !utils.IsValidCoordinates(lat, lng) {
			return invalid(fmt.Sprintf("Coordinate at index %d is out of bounds: latitude must be within -90..90 and longitude within -180..180", i))
		}
	}

	return models.ValidationResult{Valid: true}
}

func (s *zoneDomainService) ValidateDeliveryFee(fee float64) models.ValidationResult {
	if !utils.IsFinite(fee) {
		return invalid("Delivery fee must be a number")
	}
	if fee < 0 {
		return invalid("Delivery fee cannot be negative")
	}
	if fee > s.policy.MaxDeliveryFee {
		return invalid(fmt.Sprintf("Delivery fee cannot exceed %.2f", s.policy.MaxDeliveryFee))
	}
	return models.ValidationResult{Valid: true}
}

// CalculateZoneCoverage counts active assignments scoped to the zone and
// compares them with the driver count the pending demand calls for.
func (s *zoneDomainService) CalculateZoneCoverage(zone *models.Zone, assignments []*models.ZoneAssignment, pendingOrderCount int) *models.ZoneCoverage {
	entity := NewZoneEntity(zone)
	zoneID := entity.ID()

	activeDrivers := 0
	for _, assignment := range assignments {
		a := NewZoneAssignmentEntity(assignment)
		if a.IsActive() && a.BelongsToZone(zoneID) {
			activeDrivers++
		}
	}

	optimalDriverCount := 0
	if pendingOrderCount > 0 {
		optimalDriverCount = int(math.Ceil(float64(pendingOrderCount) / float64(s.policy.OrdersPerDriver)))
	}

	coverage := 100.0
	if optimalDriverCount > 0 {
		coverage = math.Min(100, float64(activeDrivers)/float64(optimalDriverCount)*100)
	}

	coverageZone := &models.ZoneCoverage{
		ZoneID:             zoneID,
		ActiveDrivers:      activeDrivers,
		PendingOrders:      pendingOrderCount,
		CoveragePercentage: coverage,
	}
	if zone != nil {
		coverageZone.ZoneName = zone.Name
	}

	return coverageZone
}

// GroupZonesByBusiness keeps input order inside every group.
func (s *zoneDomainService) GroupZonesByBusiness(zones []*models.Zone) map[primitive.ObjectID][]*models.Zone {
	groups := make(map[primitive.ObjectID][]*models.Zone)
	for _, zone := range zones {
		if zone == nil {
			continue
		}
		groups[zone.BusinessID] = append(groups[zone.BusinessID], zone)
	}
	return groups
}

func (s *zoneDomainService) FindDriversInZone(zoneID primitive.ObjectID, assignments []*models.ZoneAssignment) []primitive.ObjectID {
	drivers := make([]primitive.ObjectID, 0)
	for _, assignment := range assignments {
		a := NewZoneAssignmentEntity(assignment)
		if a.IsActive() && a.BelongsToZone(zoneID) {
			drivers = append(drivers, a.DriverID())
		}
	}
	return drivers
}

func (s *zoneDomainService) CalculateOptimalDeliveryFee(distanceKM float64) float64 {
	return s.CalculateDeliveryFee(distanceKM, s.policy.BaseDeliveryRate, s.policy.PerKMDeliveryRate)
}

func (s *zoneDomainService) CalculateDeliveryFee(distanceKM, baseRate, perKMRate float64) float64 {
	return baseRate + distanceKM*perKMRate
}

func invalid(reason string) models.ValidationResult {
	return models.ValidationResult{Valid: false, Reason: reason}
}
