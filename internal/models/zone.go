package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	GeometryTypePolygon = "Polygon"

	DefaultEstimatedDeliveryTimeMinutes = 30
)

// ZonePolygon is a GeoJSON polygon. Only the outer ring (Coordinates[0]) is
// used; each position is a [longitude, latitude] pair.
type ZonePolygon struct {
	Type        string        `json:"type" bson:"type"`
	Coordinates [][][]float64 `json:"coordinates" bson:"coordinates"`
}

// Ring returns the outer ring or nil when the polygon carries none.
func (p *ZonePolygon) Ring() [][]float64 {
	if p == nil || len(p.Coordinates) == 0 {
		return nil
	}
	return p.Coordinates[0]
}

type Zone struct {
	ID                           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	BusinessID                   primitive.ObjectID `json:"business_id" bson:"business_id"`
	Name                         string             `json:"name" bson:"name"`
	Polygon                      *ZonePolygon       `json:"polygon,omitempty" bson:"polygon,omitempty"`
	DeliveryFee                  float64            `json:"delivery_fee" bson:"delivery_fee"`
	MinimumOrder                 *float64           `json:"minimum_order,omitempty" bson:"minimum_order,omitempty"`
	EstimatedDeliveryTimeMinutes *int               `json:"estimated_delivery_time_minutes,omitempty" bson:"estimated_delivery_time_minutes,omitempty"`
	IsActive                     bool               `json:"is_active" bson:"is_active"`
	CreatedAt                    time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt                    time.Time          `json:"updated_at" bson:"updated_at"`
}

type ZoneAssignment struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	ZoneID     primitive.ObjectID `json:"zone_id" bson:"zone_id"`
	BusinessID primitive.ObjectID `json:"business_id" bson:"business_id"`
	DriverID   primitive.ObjectID `json:"driver_id" bson:"driver_id"`
	AssignedAt time.Time          `json:"assigned_at" bson:"assigned_at"`
	IsActive   bool               `json:"is_active" bson:"is_active"`
	UpdatedAt  time.Time          `json:"updated_at" bson:"updated_at"`
}

// Derived results. Never persisted.

type ZoneRecommendation struct {
	Zone       *Zone   `json:"zone"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	Tier       string  `json:"tier"`
}

type ZoneCoverage struct {
	ZoneID             primitive.ObjectID `json:"zone_id"`
	ZoneName           string             `json:"zone_name"`
	ActiveDrivers      int                `json:"active_drivers"`
	PendingOrders      int                `json:"pending_orders"`
	CoveragePercentage float64            `json:"coverage_percentage"`
}

type ValidationResult struct {
	Valid  bool   `json:"valid"`
	Reason string `json:"reason,omitempty"`
}

type DeliveryFeeQuote struct {
	ZoneID         primitive.ObjectID `json:"zone_id"`
	DistanceKM     float64            `json:"distance_km"`
	DistanceSource string             `json:"distance_source"`
	Fee            float64            `json:"fee"`
	Valid          bool               `json:"valid"`
	Reason         string             `json:"reason,omitempty"`
}

// ZoneUpdate carries a partial zone update. Nil fields are left unchanged.
type ZoneUpdate struct {
	Name                         *string
	Polygon                      *ZonePolygon
	DeliveryFee                  *float64
	MinimumOrder                 *float64
	EstimatedDeliveryTimeMinutes *int
	IsActive                     *bool
}
