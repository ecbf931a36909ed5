package domain

import (
	"math"
	"reflect"
	"strings"
	"testing"

	"zonedispatch/internal/models"
	"zonedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFindZoneForLocationSkipsInactive(t *testing.T) {
	svc := NewDefaultZoneDomainService()
	inactive := newZone("inactive", unitSquare(), false)
	active := newZone("active", unitSquare(), true)

	if got := svc.FindZoneForLocation([]*models.Zone{inactive}, 0.5, 0.5); got != nil {
		t.Fatalf("inactive zone returned: %s", got.Name)
	}

	got := svc.FindZoneForLocation([]*models.Zone{inactive, active}, 0.5, 0.5)
	if got != active {
		t.Fatalf("expected active zone, got %v", got)
	}
}

func TestFindZoneForLocationFirstMatchWins(t *testing.T) {
	svc := NewDefaultZoneDomainService()
	first := newZone("first", unitSquare(), true)
	second := newZone("second", squareAround(0.5, 0.5, 2), true)

	if got := svc.FindZoneForLocation([]*models.Zone{first, second}, 0.5, 0.5); got != first {
		t.Fatalf("expected first zone, got %v", got)
	}
	if got := svc.FindZoneForLocation([]*models.Zone{second, first}, 0.5, 0.5); got != second {
		t.Fatalf("expected second zone, got %v", got)
	}
}

func TestFindZoneForLocationNoMatch(t *testing.T) {
	svc := NewDefaultZoneDomainService()
	if got := svc.FindZoneForLocation(nil, 0, 0); got != nil {
		t.Fatalf("expected nil for empty input")
	}
	if got := svc.FindZoneForLocation([]*models.Zone{newZone("sq", unitSquare(), true), nil}, 5, 5); got != nil {
		t.Fatalf("expected nil, got %s", got.Name)
	}
}

func TestFindNearestZonePicksClosestCenter(t *testing.T) {
	svc := NewDefaultZoneDomainService()

	// One degree of longitude on the equator is ~111.19 km.
	near := newZone("near", squareAround(0, 10/111.19, 0.01), true)
	far := newZone("far", squareAround(0, 50/111.19, 0.01), true)

	nearCenter := NewZoneEntity(near).PolygonCenter()
	if d := utils.CalculateDistance(0, 0, nearCenter.Lat, nearCenter.Lng); math.Abs(d-10) > 0.1 {
		t.Fatalf("near center distance = %.3f km", d)
	}

	if got := svc.FindNearestZone([]*models.Zone{far, near}, 0, 0); got != near {
		t.Fatalf("expected near zone, got %v", got)
	}
}

func TestFindNearestZoneEligibility(t *testing.T) {
	svc := NewDefaultZoneDomainService()
	inactive := newZone("inactive", squareAround(0, 0.01, 0.001), false)
	noPolygon := newZone("no polygon", nil, true)
	far := newZone("far", squareAround(10, 10, 0.1), true)

	if got := svc.FindNearestZone([]*models.Zone{inactive, noPolygon}, 0, 0); got != nil {
		t.Fatalf("expected nil, got %s", got.Name)
	}
	if got := svc.FindNearestZone([]*models.Zone{inactive, noPolygon, far}, 0, 0); got != far {
		t.Fatalf("expected far zone, got %v", got)
	}
}

func TestRecommendZoneTiers(t *testing.T) {
	svc := NewDefaultZoneDomainService()
	zone := newZone("square", unitSquare(), true)
	zone.MinimumOrder = floatPtr(20)
	zones := []*models.Zone{zone}

	below := svc.RecommendZone(zones, 0.5, 0.5, 10)
	if below == nil || below.Zone != zone {
		t.Fatalf("expected containing zone, got %+v", below)
	}
	if below.Confidence != 0.5 {
		t.Fatalf("confidence = %v, want 0.5", below.Confidence)
	}
	if !strings.Contains(below.Reason, "20.00") {
		t.Fatalf("reason should report the minimum, got %q", below.Reason)
	}

	met := svc.RecommendZone(zones, 0.5, 0.5, 25)
	if met == nil || met.Confidence != 1.0 || met.Reason != ReasonWithinZone {
		t.Fatalf("unexpected recommendation %+v", met)
	}

	nearest := svc.RecommendZone(zones, 3, 3, 25)
	if nearest == nil || nearest.Zone != zone || nearest.Confidence != 0.6 || nearest.Reason != ReasonNearestZone {
		t.Fatalf("unexpected fallback %+v", nearest)
	}

	if got := svc.RecommendZone([]*models.Zone{newZone("no polygon", nil, true)}, 0, 0, 10); got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestRecommendZoneCustomPolicy(t *testing.T) {
	policy := DefaultZonePolicy()
	policy.NearestZoneConfidence = 0.3
	svc := NewZoneDomainService(policy)

	got := svc.RecommendZone([]*models.Zone{newZone("square", unitSquare(), true)}, 5, 5, 0)
	if got == nil || got.Confidence != 0.3 {
		t.Fatalf("expected overridden confidence, got %+v", got)
	}
}

func TestRecommendZoneTierIsExplicit(t *testing.T) {
	policy := DefaultZonePolicy()
	policy.NearestZoneConfidence = policy.BelowMinimumConfidence
	svc := NewZoneDomainService(policy)

	zone := newZone("square", unitSquare(), true)
	zone.MinimumOrder = floatPtr(20)
	zones := []*models.Zone{zone}

	tests := []struct {
		name     string
		lat, lng float64
		total    float64
		want     string
	}{
		{"inside and minimum met", 0.5, 0.5, 25, TierExactMatch},
		{"inside below minimum", 0.5, 0.5, 10, TierBelowMinimum},
		{"outside", 5, 5, 10, TierNearest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.RecommendZone(zones, tt.lat, tt.lng, tt.total)
			if got == nil || got.Tier != tt.want {
				t.Fatalf("recommendation = %+v, want tier %q", got, tt.want)
			}
		})
	}
}

func TestValidateZonePolygon(t *testing.T) {
	svc := NewDefaultZoneDomainService()

	tests := []struct {
		name       string
		polygon    *models.ZonePolygon
		valid      bool
		reasonPart string
	}{
		{"nil", nil, false, "required"},
		{"no coordinates", &models.ZonePolygon{Type: "Polygon"}, false, "required"},
		{"wrong type", &models.ZonePolygon{Type: "LineString", Coordinates: unitSquare().Coordinates}, false, "Polygon"},
		{"two points", &models.ZonePolygon{Type: "Polygon", Coordinates: [][][]float64{{{0, 0}, {1, 1}}}}, false, "at least 3 points"},
		{"malformed pair", &models.ZonePolygon{Type: "Polygon", Coordinates: [][][]float64{{{0, 0}, {1}, {1, 1}}}}, false, "index 1"},
		{"nan", &models.ZonePolygon{Type: "Polygon", Coordinates: [][][]float64{{{0, 0}, {1, 0}, {math.NaN(), 1}}}}, false, "index 2"},
		{"latitude out of range", &models.ZonePolygon{Type: "Polygon", Coordinates: [][][]float64{{{0, 0}, {0, 91}, {1, 1}}}}, false, "out of bounds"},
		{"longitude out of range", &models.ZonePolygon{Type: "Polygon", Coordinates: [][][]float64{{{0, 0}, {-181, 1}, {1, 1}}}}, false, "out of bounds"},
		{"closed square", &models.ZonePolygon{Type: "Polygon", Coordinates: [][][]float64{{{0, 0}, {0, 1}, {1, 1}, {0, 0}}}}, true, ""},
		{"unit square", unitSquare(), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.ValidateZonePolygon(tt.polygon)
			if got.Valid != tt.valid {
				t.Fatalf("valid = %v, want %v (reason %q)", got.Valid, tt.valid, got.Reason)
			}
			if !strings.Contains(got.Reason, tt.reasonPart) {
				t.Fatalf("reason %q does not mention %q", got.Reason, tt.reasonPart)
			}
		})
	}
}

func TestValidateZonePolygonReportsFirstViolation(t *testing.T) {
	svc := NewDefaultZoneDomainService()
	polygon := &models.ZonePolygon{Type: "Polygon", Coordinates: [][][]float64{{{0, 0}, {0, 95}, {1}, {1, 1}}}}

	got := svc.ValidateZonePolygon(polygon)
	if got.Valid || !strings.Contains(got.Reason, "index 1") {
		t.Fatalf("expected first violation at index 1, got %q", got.Reason)
	}
}

func TestCalculateZoneCoverage(t *testing.T) {
	svc := NewDefaultZoneDomainService()
	zone := newZone("square", unitSquare(), true)
	other := primitive.NewObjectID()

	assignments := []*models.ZoneAssignment{
		{ZoneID: zone.ID, DriverID: primitive.NewObjectID(), IsActive: true},
		{ZoneID: zone.ID, DriverID: primitive.NewObjectID(), IsActive: true},
		{ZoneID: zone.ID, DriverID: primitive.NewObjectID(), IsActive: false},
		{ZoneID: other, DriverID: primitive.NewObjectID(), IsActive: true},
		nil,
	}

	tests := []struct {
		name     string
		pending  int
		drivers  int
		expected float64
	}{
		{"no demand", 0, 2, 100},
		{"negative demand", -3, 2, 100},
		{"exact", 10, 2, 100},
		{"partial", 20, 2, 50},
		{"rounded up", 11, 2, 2.0 / 3.0 * 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.CalculateZoneCoverage(zone, assignments, tt.pending)
			if got.ActiveDrivers != tt.drivers {
				t.Fatalf("active drivers = %d, want %d", got.ActiveDrivers, tt.drivers)
			}
			if math.Abs(got.CoveragePercentage-tt.expected) > 1e-9 {
				t.Fatalf("coverage = %v, want %v", got.CoveragePercentage, tt.expected)
			}
			if got.ZoneID != zone.ID || got.ZoneName != zone.Name || got.PendingOrders != tt.pending {
				t.Fatalf("unexpected identity fields %+v", got)
			}
		})
	}
}

func TestCalculateZoneCoverageClamps(t *testing.T) {
	svc := NewDefaultZoneDomainService()
	zone := newZone("square", unitSquare(), true)

	assignments := make([]*models.ZoneAssignment, 0, 50)
	for i := 0; i < 50; i++ {
		assignments = append(assignments, &models.ZoneAssignment{ZoneID: zone.ID, DriverID: primitive.NewObjectID(), IsActive: true})
	}

	got := svc.CalculateZoneCoverage(zone, assignments, 1)
	if got.CoveragePercentage != 100 {
		t.Fatalf("coverage = %v, want 100", got.CoveragePercentage)
	}

	empty := svc.CalculateZoneCoverage(zone, nil, 1000)
	if empty.CoveragePercentage != 0 {
		t.Fatalf("coverage = %v, want 0", empty.CoveragePercentage)
	}
}

func TestGroupZonesByBusinessKeepsOrder(t *testing.T) {
	svc := NewDefaultZoneDomainService()
	businessA := primitive.NewObjectID()
	businessB := primitive.NewObjectID()

	a1 := &models.Zone{ID: primitive.NewObjectID(), BusinessID: businessA, Name: "a1"}
	b1 := &models.Zone{ID: primitive.NewObjectID(), BusinessID: businessB, Name: "b1"}
	a2 := &models.Zone{ID: primitive.NewObjectID(), BusinessID: businessA, Name: "a2"}
	a3 := &models.Zone{ID: primitive.NewObjectID(), BusinessID: businessA, Name: "a3"}

	groups := svc.GroupZonesByBusiness([]*models.Zone{a1, b1, a2, nil, a3})
	if len(groups) != 2 {
		t.Fatalf("groups = %d, want 2", len(groups))
	}
	if !reflect.DeepEqual(groups[businessA], []*models.Zone{a1, a2, a3}) {
		t.Fatalf("business A order broken: %v", groups[businessA])
	}
	if !reflect.DeepEqual(groups[businessB], []*models.Zone{b1}) {
		t.Fatalf("business B group broken: %v", groups[businessB])
	}
}

func TestFindDriversInZone(t *testing.T) {
	svc := NewDefaultZoneDomainService()
	zoneID := primitive.NewObjectID()
	d1, d2, d3 := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()

	assignments := []*models.ZoneAssignment{
		{ZoneID: zoneID, DriverID: d1, IsActive: true},
		{ZoneID: zoneID, DriverID: d2, IsActive: false},
		{ZoneID: primitive.NewObjectID(), DriverID: d3, IsActive: true},
		{ZoneID: zoneID, DriverID: d3, IsActive: true},
	}

	got := svc.FindDriversInZone(zoneID, assignments)
	if !reflect.DeepEqual(got, []primitive.ObjectID{d1, d3}) {
		t.Fatalf("drivers = %v", got)
	}

	if empty := svc.FindDriversInZone(zoneID, nil); empty == nil || len(empty) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", empty)
	}
}

func TestValidateDeliveryFee(t *testing.T) {
	svc := NewDefaultZoneDomainService()

	tests := []struct {
		fee   float64
		valid bool
	}{
		{-5, false},
		{0, true},
		{15, true},
		{1000, true},
		{1000.01, false},
		{5000, false},
		{math.Inf(1), false},
	}

	for _, tt := range tests {
		got := svc.ValidateDeliveryFee(tt.fee)
		if got.Valid != tt.valid {
			t.Errorf("ValidateDeliveryFee(%v) = %+v, want valid=%v", tt.fee, got, tt.valid)
		}
		if !got.Valid && got.Reason == "" {
			t.Errorf("ValidateDeliveryFee(%v) missing reason", tt.fee)
		}
	}
}

func TestDeliveryFeePricing(t *testing.T) {
	svc := NewDefaultZoneDomainService()

	if got := svc.CalculateOptimalDeliveryFee(0); got != 5 {
		t.Fatalf("fee(0) = %v, want 5", got)
	}
	if got := svc.CalculateOptimalDeliveryFee(10); got != 25 {
		t.Fatalf("fee(10) = %v, want 25", got)
	}
	if got := svc.CalculateDeliveryFee(3, 1, 0.5); got != 2.5 {
		t.Fatalf("custom fee = %v, want 2.5", got)
	}
}

func TestZeroOrdersPerDriverFallsBackToDefault(t *testing.T) {
	policy := DefaultZonePolicy()
	policy.OrdersPerDriver = 0
	svc := NewZoneDomainService(policy)

	if svc.Policy().OrdersPerDriver != DefaultOrdersPerDriver {
		t.Fatalf("orders per driver = %d", svc.Policy().OrdersPerDriver)
	}
}

func TestServiceIsIdempotent(t *testing.T) {
	svc := NewDefaultZoneDomainService()
	zone := newZone("square", unitSquare(), true)
	zone.MinimumOrder = floatPtr(20)
	zones := []*models.Zone{zone, newZone("far", squareAround(20, 20, 1), true)}
	assignments := []*models.ZoneAssignment{{ZoneID: zone.ID, DriverID: primitive.NewObjectID(), IsActive: true}}

	before := *zone.Polygon
	for _, point := range [][3]float64{{0.5, 0.5, 10}, {0.5, 0.5, 30}, {10, 10, 0}} {
		first := svc.RecommendZone(zones, point[0], point[1], point[2])
		second := svc.RecommendZone(zones, point[0], point[1], point[2])
		if !reflect.DeepEqual(first, second) {
			t.Fatalf("recommendation drifted: %+v vs %+v", first, second)
		}
	}

	c1 := svc.CalculateZoneCoverage(zone, assignments, 7)
	c2 := svc.CalculateZoneCoverage(zone, assignments, 7)
	if !reflect.DeepEqual(c1, c2) {
		t.Fatalf("coverage drifted: %+v vs %+v", c1, c2)
	}

	if !reflect.DeepEqual(before, *zone.Polygon) {
		t.Fatalf("input polygon mutated")
	}
}
