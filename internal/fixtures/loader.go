// Package fixtures loads YAML zone snapshots for offline evaluation.
package fixtures

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"zonedispatch/internal/domain"
	"zonedispatch/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/yaml.v3"
)

const defaultBusinessLabel = "default"

var ErrEmptySnapshot = errors.New("snapshot has no zones")

// Snapshot is a decoded zone snapshot. Zones keep file order.
type Snapshot struct {
	BusinessID    primitive.ObjectID
	Zones         []*models.Zone
	Assignments   []*models.ZoneAssignment
	PendingOrders map[primitive.ObjectID]int

	policy    *yamlPolicy
	zoneNames map[string]primitive.ObjectID
	labels    map[string]primitive.ObjectID
}

func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	snapshot, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snapshot, nil
}

func Parse(data []byte) (*Snapshot, error) {
	var doc yamlSnapshot
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	if len(doc.Zones) == 0 {
		return nil, ErrEmptySnapshot
	}

	s := &Snapshot{
		PendingOrders: make(map[primitive.ObjectID]int),
		policy:        doc.Policy,
		zoneNames:     make(map[string]primitive.ObjectID),
		labels:        make(map[string]primitive.ObjectID),
	}

	business := doc.Business
	if business == "" {
		business = defaultBusinessLabel
	}
	s.BusinessID = s.resolve(business)

	now := time.Now()
	for i, z := range doc.Zones {
		zone, err := s.buildZone(i, z, now)
		if err != nil {
			return nil, err
		}
		s.Zones = append(s.Zones, zone)
		if z.Pending != 0 {
			s.PendingOrders[zone.ID] = z.Pending
		}
	}

	for i, a := range doc.Assignments {
		zoneID, ok := s.zoneNames[a.Zone]
		if !ok {
			return nil, fmt.Errorf("assignment %d references unknown zone %q", i, a.Zone)
		}
		if strings.TrimSpace(a.Driver) == "" {
			return nil, fmt.Errorf("assignment %d has no driver", i)
		}

		active := true
		if a.Active != nil {
			active = *a.Active
		}

		s.Assignments = append(s.Assignments, &models.ZoneAssignment{
			ID:         primitive.NewObjectID(),
			ZoneID:     zoneID,
			BusinessID: s.zoneBusiness(zoneID),
			DriverID:   s.resolve(a.Driver),
			AssignedAt: now,
			IsActive:   active,
			UpdatedAt:  now,
		})
	}

	return s, nil
}

func (s *Snapshot) buildZone(i int, z yamlZone, now time.Time) (*models.Zone, error) {
	if z.Name == "" {
		return nil, fmt.Errorf("zone %d has no name", i)
	}
	if _, dup := s.zoneNames[z.Name]; dup {
		return nil, fmt.Errorf("zone %q is defined twice", z.Name)
	}

	id := primitive.NewObjectID()
	if z.ID != "" {
		parsed, err := primitive.ObjectIDFromHex(z.ID)
		if err != nil {
			return nil, fmt.Errorf("zone %q: invalid id %q", z.Name, z.ID)
		}
		id = parsed
	}

	businessID := s.BusinessID
	if z.Business != "" {
		businessID = s.resolve(z.Business)
	}

	geometryType := z.GeometryType
	if geometryType == "" {
		geometryType = models.GeometryTypePolygon
	}

	var polygon *models.ZonePolygon
	if z.Polygon != nil {
		polygon = &models.ZonePolygon{
			Type:        geometryType,
			Coordinates: [][][]float64{z.Polygon},
		}
	}

	active := true
	if z.Active != nil {
		active = *z.Active
	}

	s.zoneNames[z.Name] = id

	return &models.Zone{
		ID:                           id,
		BusinessID:                   businessID,
		Name:                         z.Name,
		Polygon:                      polygon,
		DeliveryFee:                  z.DeliveryFee,
		MinimumOrder:                 z.MinimumOrder,
		EstimatedDeliveryTimeMinutes: z.EstimatedMin,
		IsActive:                     active,
		CreatedAt:                    now,
		UpdatedAt:                    now,
	}, nil
}

// resolve maps a label to a stable id. Hex labels are used as ids directly.
func (s *Snapshot) resolve(label string) primitive.ObjectID {
	if id, err := primitive.ObjectIDFromHex(label); err == nil {
		return id
	}
	if id, ok := s.labels[label]; ok {
		return id
	}
	id := primitive.NewObjectID()
	s.labels[label] = id
	return id
}

func (s *Snapshot) zoneBusiness(zoneID primitive.ObjectID) primitive.ObjectID {
	for _, zone := range s.Zones {
		if zone.ID == zoneID {
			return zone.BusinessID
		}
	}
	return s.BusinessID
}

// ZoneByName returns the zone with the given name, or nil.
func (s *Snapshot) ZoneByName(name string) *models.Zone {
	id, ok := s.zoneNames[name]
	if !ok {
		return nil
	}
	for _, zone := range s.Zones {
		if zone.ID == id {
			return zone
		}
	}
	return nil
}

// Business resolves a business label used in the snapshot. An empty label
// means the snapshot's default business.
func (s *Snapshot) Business(label string) (primitive.ObjectID, bool) {
	if label == "" {
		return s.BusinessID, true
	}
	if id, err := primitive.ObjectIDFromHex(label); err == nil {
		return id, true
	}
	id, ok := s.labels[label]
	return id, ok
}

// Policy applies the snapshot's overrides on top of base.
func (s *Snapshot) Policy(base domain.ZonePolicy) domain.ZonePolicy {
	p := s.policy
	if p == nil {
		return base
	}
	if p.ExactMatchConfidence != nil {
		base.ExactMatchConfidence = *p.ExactMatchConfidence
	}
	if p.BelowMinimumConfidence != nil {
		base.BelowMinimumConfidence = *p.BelowMinimumConfidence
	}
	if p.NearestZoneConfidence != nil {
		base.NearestZoneConfidence = *p.NearestZoneConfidence
	}
	if p.OrdersPerDriver != nil {
		base.OrdersPerDriver = *p.OrdersPerDriver
	}
	if p.MaxDeliveryFee != nil {
		base.MaxDeliveryFee = *p.MaxDeliveryFee
	}
	if p.BaseDeliveryRate != nil {
		base.BaseDeliveryRate = *p.BaseDeliveryRate
	}
	if p.PerKMDeliveryRate != nil {
		base.PerKMDeliveryRate = *p.PerKMDeliveryRate
	}
	return base
}
