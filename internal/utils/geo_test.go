package utils

import (
	"math"
	"testing"
)

func TestIsPointInPolygon(t *testing.T) {
	triangle := []Point{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 4},
		{Lat: 4, Lng: 0},
	}

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"inside", Point{Lat: 1, Lng: 1}, true},
		{"outside hypotenuse", Point{Lat: 3, Lng: 3}, false},
		{"outside west", Point{Lat: 1, Lng: -1}, false},
		{"outside south", Point{Lat: -1, Lng: 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPointInPolygon(tt.point, triangle); got != tt.want {
				t.Fatalf("IsPointInPolygon(%v) = %v, want %v", tt.point, got, tt.want)
			}
		})
	}
}

func TestIsPointInPolygonConcave(t *testing.T) {
	// U shape opening north.
	ring := RingToPoints([][]float64{
		{0, 0}, {3, 0}, {3, 3}, {2, 3}, {2, 1}, {1, 1}, {1, 3}, {0, 3},
	})

	if !IsPointInPolygon(Point{Lat: 2, Lng: 0.5}, ring) {
		t.Fatalf("left arm should be inside")
	}
	if IsPointInPolygon(Point{Lat: 2, Lng: 1.5}, ring) {
		t.Fatalf("notch should be outside")
	}
	if !IsPointInPolygon(Point{Lat: 0.5, Lng: 1.5}, ring) {
		t.Fatalf("base should be inside")
	}
}

func TestIsPointInPolygonDegenerate(t *testing.T) {
	if IsPointInPolygon(Point{}, nil) {
		t.Fatalf("empty polygon contains nothing")
	}
	if IsPointInPolygon(Point{Lat: 0.5, Lng: 0.5}, []Point{{0, 0}, {1, 1}}) {
		t.Fatalf("two points contain nothing")
	}
}

func TestRingToPointsSwapsAxes(t *testing.T) {
	points := RingToPoints([][]float64{{10, 20}, {1}, {30, 40}})
	if len(points) != 2 {
		t.Fatalf("points = %d, want 2", len(points))
	}
	if points[0].Lng != 10 || points[0].Lat != 20 {
		t.Fatalf("unexpected first point %+v", points[0])
	}
}

func TestCalculateCenter(t *testing.T) {
	center := CalculateCenter([]Point{{Lat: 0, Lng: 0}, {Lat: 2, Lng: 0}, {Lat: 2, Lng: 2}, {Lat: 0, Lng: 2}})
	if center.Lat != 1 || center.Lng != 1 {
		t.Fatalf("center = %+v", center)
	}
	if (CalculateCenter(nil) != Point{}) {
		t.Fatalf("empty center should be zero value")
	}
}

func TestCalculateDistance(t *testing.T) {
	if d := CalculateDistance(10, 10, 10, 10); d != 0 {
		t.Fatalf("same point distance = %v", d)
	}

	// One degree along the equator.
	want := EarthRadiusKM * math.Pi / 180
	if d := CalculateDistance(0, 0, 0, 1); math.Abs(d-want) > 1e-9 {
		t.Fatalf("distance = %v, want %v", d, want)
	}

	// London to Paris is ~343.5 km.
	if d := CalculateDistance(51.5074, -0.1278, 48.8566, 2.3522); math.Abs(d-343.5) > 1.5 {
		t.Fatalf("london-paris = %v", d)
	}

	if !IsWithinRadius(0, 0, 0, 0.5, 60) || IsWithinRadius(0, 0, 0, 1, 60) {
		t.Fatalf("radius check wrong")
	}
}

func TestIsValidCoordinates(t *testing.T) {
	if !IsValidCoordinates(90, -180) || !IsValidCoordinates(-90, 180) {
		t.Fatalf("bounds must be inclusive")
	}
	if IsValidCoordinates(90.1, 0) || IsValidCoordinates(0, -180.1) {
		t.Fatalf("out of range accepted")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(-1)) || !IsFinite(1) {
		t.Fatalf("IsFinite wrong")
	}
}
