package utils

import (
	"fmt"
	"math"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// NewPointFromCoordinates reads a GeoJSON [lng, lat] position.
func NewPointFromCoordinates(coordinates []float64) Point {
	if len(coordinates) >= 2 {
		return Point{Lat: coordinates[1], Lng: coordinates[0]}
	}
	return Point{}
}

func IsValidCoordinates(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// CalculateCenter is the arithmetic mean of the vertices, not an area
// weighted centroid.
func CalculateCenter(points []Point) Point {
	if len(points) == 0 {
		return Point{}
	}

	var totalLat, totalLng float64
	for _, point := range points {
		totalLat += point.Lat
		totalLng += point.Lng
	}

	return Point{
		Lat: totalLat / float64(len(points)),
		Lng: totalLng / float64(len(points)),
	}
}

// RingToPoints converts [lng, lat] positions to points, skipping positions
// with fewer than two values.
func RingToPoints(ring [][]float64) []Point {
	points := make([]Point, 0, len(ring))
	for _, position := range ring {
		if len(position) < 2 {
			continue
		}
		points = append(points, NewPointFromCoordinates(position))
	}
	return points
}

// IsPointInPolygon applies the even-odd rule. For every edge (i, j=i-1) whose
// longitude span straddles the query longitude, the edge latitude at that
// longitude is interpolated and the crossing counts when the query latitude
// lies below it. Points on the western or southern boundary of a ring report
// inside, points on the eastern or northern boundary report outside.
func IsPointInPolygon(point Point, polygon []Point) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		lngI, latI := polygon[i].Lng, polygon[i].Lat
		lngJ, latJ := polygon[j].Lng, polygon[j].Lat

		if (lngI > point.Lng) != (lngJ > point.Lng) {
			edgeLat := (latJ-latI)*(point.Lng-lngI)/(lngJ-lngI) + latI
			if point.Lat < edgeLat {
				inside = !inside
			}
		}
	}

	return inside
}
