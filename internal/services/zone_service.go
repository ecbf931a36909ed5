package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"zonedispatch/internal/domain"
	"zonedispatch/internal/metrics"
	"zonedispatch/internal/models"
	"zonedispatch/internal/repositories/interfaces"
	"zonedispatch/internal/utils"
	"zonedispatch/pkg/cache"
	"zonedispatch/pkg/logger"
	"zonedispatch/pkg/maps"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	transitionActivate   = "activate"
	transitionDeactivate = "deactivate"
)

type ZoneService interface {
	// Zone management
	CreateZone(ctx context.Context, zone *models.Zone) (*models.Zone, error)
	GetZone(ctx context.Context, zoneID primitive.ObjectID) (*models.Zone, error)
	UpdateZone(ctx context.Context, zoneID primitive.ObjectID, update *models.ZoneUpdate) (*models.Zone, error)
	DeleteZone(ctx context.Context, zoneID primitive.ObjectID) error
	ListBusinessZones(ctx context.Context, businessID primitive.ObjectID) ([]*models.Zone, error)
	GroupZonesByBusiness(ctx context.Context) (map[primitive.ObjectID][]*models.Zone, error)
	ValidatePolygon(polygon *models.ZonePolygon) models.ValidationResult

	// Matching
	LocateZone(ctx context.Context, businessID primitive.ObjectID, lat, lng float64) (*models.Zone, error)
	FindNearestZone(ctx context.Context, businessID primitive.ObjectID, lat, lng float64) (*models.Zone, error)
	RecommendZone(ctx context.Context, businessID primitive.ObjectID, lat, lng, orderTotal float64) (*models.ZoneRecommendation, error)

	// Coverage
	GetZoneCoverage(ctx context.Context, zoneID primitive.ObjectID, pendingOrders int) (*models.ZoneCoverage, error)
	GetBusinessCoverage(ctx context.Context, businessID primitive.ObjectID, pendingOrders map[primitive.ObjectID]int) ([]*models.ZoneCoverage, error)

	// Driver assignments
	AssignDriver(ctx context.Context, zoneID, driverID primitive.ObjectID) (*models.ZoneAssignment, error)
	ListZoneDrivers(ctx context.Context, zoneID primitive.ObjectID) ([]primitive.ObjectID, error)
	ActivateAssignment(ctx context.Context, assignmentID primitive.ObjectID) (*models.ZoneAssignment, error)
	DeactivateAssignment(ctx context.Context, assignmentID primitive.ObjectID) (*models.ZoneAssignment, error)

	// Pricing
	QuoteDeliveryFee(ctx context.Context, zoneID primitive.ObjectID, lat, lng float64) (*models.DeliveryFeeQuote, error)
}

type zoneService struct {
	zoneRepo       interfaces.ZoneRepository
	assignmentRepo interfaces.ZoneAssignmentRepository
	engine         domain.ZoneDomainService
	distance       maps.DistanceProvider
	cache          *zoneCache
	metrics        *metrics.ZoneCollector
	logger         *logger.Logger
}

type ZoneServiceConfig struct {
	ZoneRepository       interfaces.ZoneRepository
	AssignmentRepository interfaces.ZoneAssignmentRepository
	Engine               domain.ZoneDomainService
	DistanceProvider     maps.DistanceProvider
	Cache                cache.Cache
	CacheTTL             time.Duration
	Metrics              *metrics.ZoneCollector
	Logger               *logger.Logger
}

func NewZoneService(cfg ZoneServiceConfig) ZoneService {
	if cfg.Engine == nil {
		cfg.Engine = domain.NewDefaultZoneDomainService()
	}
	if cfg.DistanceProvider == nil {
		cfg.DistanceProvider = maps.NewHaversineProvider()
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNopLogger()
	}

	return &zoneService{
		zoneRepo:       cfg.ZoneRepository,
		assignmentRepo: cfg.AssignmentRepository,
		engine:         cfg.Engine,
		distance:       cfg.DistanceProvider,
		cache:          newZoneCache(cfg.Cache, cfg.CacheTTL, cfg.Metrics, cfg.Logger),
		metrics:        cfg.Metrics,
		logger:         cfg.Logger,
	}
}

func (s *zoneService) CreateZone(ctx context.Context, zone *models.Zone) (*models.Zone, error) {
	if err := s.validateZone(zone); err != nil {
		return nil, err
	}

	if err := s.zoneRepo.Create(ctx, zone); err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, zone.BusinessID)
	s.logger.WithContext(ctx).LogZoneEvent(zone.ID, utils.EventZoneCreated, map[string]interface{}{
		"business_id": zone.BusinessID.Hex(),
		"name":        zone.Name,
	})

	return zone, nil
}

func (s *zoneService) GetZone(ctx context.Context, zoneID primitive.ObjectID) (*models.Zone, error) {
	zone, err := s.zoneRepo.GetByID(ctx, zoneID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}
	return zone, nil
}

func (s *zoneService) UpdateZone(ctx context.Context, zoneID primitive.ObjectID, update *models.ZoneUpdate) (*models.Zone, error) {
	zone, err := s.GetZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	if update != nil {
		if update.Name != nil {
			zone.Name = *update.Name
		}
		if update.Polygon != nil {
			zone.Polygon = update.Polygon
		}
		if update.DeliveryFee != nil {
			zone.DeliveryFee = *update.DeliveryFee
		}
		if update.MinimumOrder != nil {
			zone.MinimumOrder = update.MinimumOrder
		}
		if update.EstimatedDeliveryTimeMinutes != nil {
			zone.EstimatedDeliveryTimeMinutes = update.EstimatedDeliveryTimeMinutes
		}
		if update.IsActive != nil {
			zone.IsActive = *update.IsActive
		}
	}

	if err := s.validateZone(zone); err != nil {
		return nil, err
	}

	if err := s.zoneRepo.Update(ctx, zone); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrZoneNotFound
		}
		return nil, err
	}

	s.cache.invalidate(ctx, zone.BusinessID)
	s.logger.WithContext(ctx).LogZoneEvent(zone.ID, utils.EventZoneUpdated, map[string]interface{}{
		"is_active": zone.IsActive,
	})

	return zone, nil
}

// DeleteZone removes a zone and deactivates its active assignments so no
// driver stays attached to a zone that no longer exists.
func (s *zoneService) DeleteZone(ctx context.Context, zoneID primitive.ObjectID) error {
	zone, err := s.GetZone(ctx, zoneID)
	if err != nil {
		return err
	}

	assignments, err := s.assignmentRepo.ListByZone(ctx, zoneID)
	if err != nil {
		return err
	}
	released := 0
	for _, assignment := range assignments {
		if !assignment.IsActive {
			continue
		}
		err := s.assignmentRepo.SetActive(ctx, assignment.ID, false)
		if err != nil && !errors.Is(err, interfaces.ErrStateConflict) {
			return err
		}
		released++
	}

	if err := s.zoneRepo.Delete(ctx, zoneID); err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return ErrZoneNotFound
		}
		return err
	}

	s.cache.invalidate(ctx, zone.BusinessID)
	s.logger.WithContext(ctx).LogZoneEvent(zoneID, utils.EventZoneDeleted, map[string]interface{}{
		"business_id":          zone.BusinessID.Hex(),
		"released_assignments": released,
	})

	return nil
}

// validateZone runs the engine checks a zone must pass before it is stored.
func (s *zoneService) validateZone(zone *models.Zone) error {
	if result := s.engine.ValidateZonePolygon(zone.Polygon); !result.Valid {
		return fmt.Errorf("%w: %s", ErrInvalidPolygon, result.Reason)
	}
	if result := s.engine.ValidateDeliveryFee(zone.DeliveryFee); !result.Valid {
		return fmt.Errorf("%w: %s", ErrInvalidDeliveryFee, result.Reason)
	}
	return nil
}

// ListBusinessZones returns every zone of the business, inactive included, in
// creation order. The engine does its own active filtering.
func (s *zoneService) ListBusinessZones(ctx context.Context, businessID primitive.ObjectID) ([]*models.Zone, error) {
	key := businessZonesKey(businessID)
	if zones, ok := s.cache.get(ctx, key); ok {
		return zones, nil
	}

	zones, err := s.zoneRepo.ListByBusiness(ctx, businessID, false)
	if err != nil {
		return nil, err
	}

	s.cache.set(ctx, key, zones)
	return zones, nil
}

func (s *zoneService) GroupZonesByBusiness(ctx context.Context) (map[primitive.ObjectID][]*models.Zone, error) {
	zones, ok := s.cache.get(ctx, utils.CacheAllZonesKey)
	if !ok {
		var err error
		zones, err = s.zoneRepo.ListAll(ctx, false)
		if err != nil {
			return nil, err
		}
		s.cache.set(ctx, utils.CacheAllZonesKey, zones)
	}

	return s.engine.GroupZonesByBusiness(zones), nil
}

func (s *zoneService) ValidatePolygon(polygon *models.ZonePolygon) models.ValidationResult {
	return s.engine.ValidateZonePolygon(polygon)
}

func (s *zoneService) LocateZone(ctx context.Context, businessID primitive.ObjectID, lat, lng float64) (*models.Zone, error) {
	zones, err := s.ListBusinessZones(ctx, businessID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	zone := s.engine.FindZoneForLocation(zones, lat, lng)
	s.metrics.ObserveLookup(time.Since(start))

	if zone == nil {
		return nil, ErrNoZoneAvailable
	}
	return zone, nil
}

func (s *zoneService) FindNearestZone(ctx context.Context, businessID primitive.ObjectID, lat, lng float64) (*models.Zone, error) {
	zones, err := s.ListBusinessZones(ctx, businessID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	zone := s.engine.FindNearestZone(zones, lat, lng)
	s.metrics.ObserveLookup(time.Since(start))

	if zone == nil {
		return nil, ErrNoZoneAvailable
	}
	return zone, nil
}

func (s *zoneService) RecommendZone(ctx context.Context, businessID primitive.ObjectID, lat, lng, orderTotal float64) (*models.ZoneRecommendation, error) {
	zones, err := s.ListBusinessZones(ctx, businessID)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	recommendation := s.engine.RecommendZone(zones, lat, lng, orderTotal)
	s.metrics.ObserveLookup(time.Since(start))

	log := s.logger.WithContext(ctx)
	if recommendation == nil {
		s.metrics.IncRecommendation(metrics.TierNone)
		log.LogRecommendation(businessID, nil, 0, lat, lng)
		return nil, ErrNoZoneAvailable
	}

	s.metrics.IncRecommendation(recommendation.Tier)
	log.LogRecommendation(businessID, &recommendation.Zone.ID, recommendation.Confidence, lat, lng)

	return recommendation, nil
}

// GetZoneCoverage reports coverage for one active zone. Inactive zones are
// rejected with ErrZoneInactive, matching the business report which skips them.
func (s *zoneService) GetZoneCoverage(ctx context.Context, zoneID primitive.ObjectID, pendingOrders int) (*models.ZoneCoverage, error) {
	zone, err := s.GetZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}
	if !zone.IsActive {
		return nil, ErrZoneInactive
	}

	assignments, err := s.assignmentRepo.ListByZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	coverage := s.engine.CalculateZoneCoverage(zone, assignments, pendingOrders)
	s.metrics.SetCoverage(zoneID.Hex(), coverage.CoveragePercentage)

	return coverage, nil
}

// GetBusinessCoverage reports coverage for each active zone of the business in
// zone order. Zones missing from pendingOrders count as having none.
func (s *zoneService) GetBusinessCoverage(ctx context.Context, businessID primitive.ObjectID, pendingOrders map[primitive.ObjectID]int) ([]*models.ZoneCoverage, error) {
	zones, err := s.ListBusinessZones(ctx, businessID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	report := make([]*models.ZoneCoverage, 0, len(zones))
	for _, zone := range zones {
		if !zone.IsActive {
			continue
		}
		coverage := s.engine.CalculateZoneCoverage(zone, assignments, pendingOrders[zone.ID])
		s.metrics.SetCoverage(zone.ID.Hex(), coverage.CoveragePercentage)
		report = append(report, coverage)
	}

	return report, nil
}

// AssignDriver creates an active assignment. A driver may hold at most one
// active assignment per zone.
func (s *zoneService) AssignDriver(ctx context.Context, zoneID, driverID primitive.ObjectID) (*models.ZoneAssignment, error) {
	zone, err := s.GetZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	active, err := s.driverActiveInZone(ctx, zoneID, driverID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, ErrAssignmentAlreadyActive
	}

	assignment := &models.ZoneAssignment{
		ZoneID:     zone.ID,
		BusinessID: zone.BusinessID,
		DriverID:   driverID,
		IsActive:   true,
	}
	if err := s.assignmentRepo.Create(ctx, assignment); err != nil {
		return nil, err
	}

	s.logger.WithContext(ctx).WithDriverID(driverID).LogZoneEvent(zoneID, utils.EventDriverAssigned, map[string]interface{}{
		"assignment_id": assignment.ID.Hex(),
	})

	return assignment, nil
}

// driverActiveInZone reports whether the driver already holds an active
// assignment in the zone.
func (s *zoneService) driverActiveInZone(ctx context.Context, zoneID, driverID primitive.ObjectID) (bool, error) {
	assignments, err := s.assignmentRepo.ListByZone(ctx, zoneID)
	if err != nil {
		return false, err
	}
	for _, driver := range s.engine.FindDriversInZone(zoneID, assignments) {
		if driver == driverID {
			return true, nil
		}
	}
	return false, nil
}

func (s *zoneService) ListZoneDrivers(ctx context.Context, zoneID primitive.ObjectID) ([]primitive.ObjectID, error) {
	if _, err := s.GetZone(ctx, zoneID); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListByZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	return s.engine.FindDriversInZone(zoneID, assignments), nil
}

func (s *zoneService) ActivateAssignment(ctx context.Context, assignmentID primitive.ObjectID) (*models.ZoneAssignment, error) {
	return s.transition(ctx, assignmentID, transitionActivate)
}

func (s *zoneService) DeactivateAssignment(ctx context.Context, assignmentID primitive.ObjectID) (*models.ZoneAssignment, error) {
	return s.transition(ctx, assignmentID, transitionDeactivate)
}

func (s *zoneService) transition(ctx context.Context, assignmentID primitive.ObjectID, transition string) (*models.ZoneAssignment, error) {
	assignment, err := s.assignmentRepo.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	entity := domain.NewZoneAssignmentEntity(assignment)

	var (
		allowed bool
		target  bool
		reject  error
		event   string
	)
	switch transition {
	case transitionActivate:
		allowed, target, reject, event = entity.CanActivate(), true, ErrAssignmentAlreadyActive, utils.EventAssignmentActivated
	default:
		allowed, target, reject, event = entity.CanDeactivate(), false, ErrAssignmentAlreadyInactive, utils.EventAssignmentDeactivate
	}

	if allowed && target {
		active, err := s.driverActiveInZone(ctx, assignment.ZoneID, assignment.DriverID)
		if err != nil {
			return nil, err
		}
		allowed = !active
	}

	s.metrics.IncTransition(transition, allowed)
	if !allowed {
		return nil, reject
	}

	if err := s.assignmentRepo.SetActive(ctx, assignmentID, target); err != nil {
		switch {
		case errors.Is(err, interfaces.ErrNotFound):
			return nil, ErrAssignmentNotFound
		case errors.Is(err, interfaces.ErrStateConflict):
			return nil, reject
		}
		return nil, err
	}

	assignment.IsActive = target
	assignment.UpdatedAt = time.Now()

	s.logger.WithContext(ctx).WithDriverID(assignment.DriverID).LogZoneEvent(assignment.ZoneID, event, map[string]interface{}{
		"assignment_id": assignment.ID.Hex(),
	})

	return assignment, nil
}

// QuoteDeliveryFee prices delivery from the zone's polygon center to the
// destination. A fee outside the allowed range is returned with Valid=false.
func (s *zoneService) QuoteDeliveryFee(ctx context.Context, zoneID primitive.ObjectID, lat, lng float64) (*models.DeliveryFeeQuote, error) {
	zone, err := s.GetZone(ctx, zoneID)
	if err != nil {
		return nil, err
	}

	center := domain.NewZoneEntity(zone).PolygonCenter()
	if center == nil {
		return nil, fmt.Errorf("%w: zone has no polygon", ErrInvalidPolygon)
	}

	result, err := s.distance.Distance(ctx,
		maps.Location{Latitude: center.Lat, Longitude: center.Lng},
		maps.Location{Latitude: lat, Longitude: lng},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to measure delivery distance: %w", err)
	}

	fee := s.engine.CalculateOptimalDeliveryFee(result.DistanceKM)
	validation := s.engine.ValidateDeliveryFee(fee)

	return &models.DeliveryFeeQuote{
		ZoneID:         zone.ID,
		DistanceKM:     result.DistanceKM,
		DistanceSource: result.Source,
		Fee:            fee,
		Valid:          validation.Valid,
		Reason:         validation.Reason,
	}, nil
}
