package domain

import (
	"zonedispatch/internal/models"
	"zonedispatch/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ZoneEntity answers read-only questions about a single zone record.
type ZoneEntity struct {
	zone *models.Zone
}

func NewZoneEntity(zone *models.Zone) ZoneEntity {
	return ZoneEntity{zone: zone}
}

func (e ZoneEntity) Zone() *models.Zone {
	return e.zone
}

func (e ZoneEntity) ID() primitive.ObjectID {
	if e.zone == nil {
		return primitive.NilObjectID
	}
	return e.zone.ID
}

func (e ZoneEntity) IsActive() bool {
	return e.zone != nil && e.zone.IsActive
}

func (e ZoneEntity) HasPolygon() bool {
	return e.zone != nil && e.zone.Polygon.Ring() != nil
}

// ContainsPoint is false for zones without a polygon.
func (e ZoneEntity) ContainsPoint(lat, lng float64) bool {
	if !e.HasPolygon() {
		return false
	}
	ring := utils.RingToPoints(e.zone.Polygon.Ring())
	return utils.IsPointInPolygon(utils.Point{Lat: lat, Lng: lng}, ring)
}

// PolygonCenter returns the mean of the ring vertices, or nil without a polygon.
func (e ZoneEntity) PolygonCenter() *utils.Point {
	if !e.HasPolygon() {
		return nil
	}
	points := utils.RingToPoints(e.zone.Polygon.Ring())
	if len(points) == 0 {
		return nil
	}
	center := utils.CalculateCenter(points)
	return &center
}

func (e ZoneEntity) MinimumOrder() float64 {
	if e.zone == nil || e.zone.MinimumOrder == nil {
		return 0
	}
	return *e.zone.MinimumOrder
}

func (e ZoneEntity) MeetsMinimumOrder(orderTotal float64) bool {
	return orderTotal >= e.MinimumOrder()
}

func (e ZoneEntity) EstimatedDeliveryTimeMinutes() int {
	if e.zone == nil || e.zone.EstimatedDeliveryTimeMinutes == nil {
		return models.DefaultEstimatedDeliveryTimeMinutes
	}
	return *e.zone.EstimatedDeliveryTimeMinutes
}

func (e ZoneEntity) DeliveryFee() float64 {
	if e.zone == nil {
		return 0
	}
	return e.zone.DeliveryFee
}
