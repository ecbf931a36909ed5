package fixtures

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"zonedispatch/internal/domain"
)

const sampleSnapshot = `
business: acme
policy:
  orders_per_driver: 4
zones:
  - name: downtown
    polygon: [[0, 0], [1, 0], [1, 1], [0, 1], [0, 0]]
    delivery_fee: 3.5
    minimum_order: 20
    pending_orders: 9
  - name: harbor
    id: 64b7f0c2a1b2c3d4e5f60718
    business: other
    polygon: [[5, 5], [6, 5], [6, 6], [5, 6]]
    delivery_fee: 4
    active: false
assignments:
  - zone: downtown
    driver: alice
  - zone: downtown
    driver: bob
    active: false
  - zone: harbor
    driver: alice
`

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "zones.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func TestLoadSnapshot(t *testing.T) {
	s, err := Load(writeSnapshot(t, sampleSnapshot))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(s.Zones) != 2 || len(s.Assignments) != 3 {
		t.Fatalf("zones=%d assignments=%d", len(s.Zones), len(s.Assignments))
	}

	downtown := s.ZoneByName("downtown")
	if downtown == nil {
		t.Fatalf("downtown not found")
	}
	if downtown.BusinessID != s.BusinessID {
		t.Errorf("downtown should belong to the default business")
	}
	if !downtown.IsActive {
		t.Errorf("zones are active unless stated otherwise")
	}
	if downtown.MinimumOrder == nil || *downtown.MinimumOrder != 20 {
		t.Errorf("minimum order = %v", downtown.MinimumOrder)
	}
	if downtown.Polygon.Type != "Polygon" || len(downtown.Polygon.Ring()) != 5 {
		t.Errorf("polygon = %+v", downtown.Polygon)
	}
	if s.PendingOrders[downtown.ID] != 9 {
		t.Errorf("pending = %d", s.PendingOrders[downtown.ID])
	}

	harbor := s.ZoneByName("harbor")
	if harbor.ID.Hex() != "64b7f0c2a1b2c3d4e5f60718" {
		t.Errorf("harbor id = %s", harbor.ID.Hex())
	}
	if harbor.IsActive {
		t.Errorf("harbor should be inactive")
	}
	other, ok := s.Business("other")
	if !ok || harbor.BusinessID != other || other == s.BusinessID {
		t.Errorf("harbor business not resolved")
	}

	if s.Assignments[0].DriverID != s.Assignments[2].DriverID {
		t.Errorf("the same driver label should map to one id")
	}
	if s.Assignments[1].IsActive {
		t.Errorf("bob's assignment should be inactive")
	}
	if s.Assignments[2].BusinessID != other {
		t.Errorf("assignment should inherit the zone business")
	}
}

func TestSnapshotPolicyOverrides(t *testing.T) {
	s, err := Parse([]byte(sampleSnapshot))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	policy := s.Policy(domain.DefaultZonePolicy())
	if policy.OrdersPerDriver != 4 {
		t.Errorf("orders per driver = %d", policy.OrdersPerDriver)
	}
	if policy.MaxDeliveryFee != domain.DefaultMaxDeliveryFee {
		t.Errorf("max fee changed: %v", policy.MaxDeliveryFee)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"no zones", "business: acme\n", "no zones"},
		{"bad yaml", "zones: [", "parse snapshot"},
		{"unnamed zone", "zones:\n  - delivery_fee: 1\n", "has no name"},
		{"duplicate zone", "zones:\n  - name: a\n  - name: a\n", "defined twice"},
		{"bad id", "zones:\n  - name: a\n    id: nope\n", "invalid id"},
		{"unknown zone", "zones:\n  - name: a\nassignments:\n  - zone: b\n    driver: d\n", "unknown zone"},
		{"missing driver", "zones:\n  - name: a\nassignments:\n  - zone: a\n", "no driver"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestParseEmptyIsSentinel(t *testing.T) {
	if _, err := Parse(nil); !errors.Is(err, ErrEmptySnapshot) {
		t.Fatalf("err = %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestZoneWithoutPolygon(t *testing.T) {
	s, err := Parse([]byte("zones:\n  - name: empty\n    delivery_fee: 2\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if s.Zones[0].Polygon != nil {
		t.Fatalf("polygon should be nil when omitted")
	}
}
