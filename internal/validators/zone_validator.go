package validators

import (
	"zonedispatch/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateZoneRequest struct {
	BusinessID                   string              `json:"business_id" validate:"required,object_id"`
	Name                         string              `json:"name" validate:"required,min=1,max=100"`
	Polygon                      *models.ZonePolygon `json:"polygon" validate:"required"`
	DeliveryFee                  *float64            `json:"delivery_fee" validate:"required"`
	MinimumOrder                 *float64            `json:"minimum_order" validate:"omitempty,gte=0"`
	EstimatedDeliveryTimeMinutes *int                `json:"estimated_delivery_time_minutes" validate:"omitempty,min=1,max=1440"`
	IsActive                     *bool               `json:"is_active"`
}

type UpdateZoneRequest struct {
	Name                         *string             `json:"name" validate:"omitempty,min=1,max=100"`
	Polygon                      *models.ZonePolygon `json:"polygon"`
	DeliveryFee                  *float64            `json:"delivery_fee"`
	MinimumOrder                 *float64            `json:"minimum_order" validate:"omitempty,gte=0"`
	EstimatedDeliveryTimeMinutes *int                `json:"estimated_delivery_time_minutes" validate:"omitempty,min=1,max=1440"`
	IsActive                     *bool               `json:"is_active"`
}

// LocationQuery binds lat/lng from the query string.
type LocationQuery struct {
	Lat *float64 `form:"lat" json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `form:"lng" json:"lng" validate:"required,gte=-180,lte=180"`
}

type RecommendZoneRequest struct {
	Lat        *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng        *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	OrderTotal *float64 `json:"order_total" validate:"required,gte=0"`
}

type CoverageQuery struct {
	PendingOrders int `form:"pending_orders" validate:"gte=0,lte=100000"`
}

type BusinessCoverageRequest struct {
	PendingOrders map[string]int `json:"pending_orders" validate:"omitempty,dive,keys,object_id,endkeys,gte=0,lte=100000"`
}

type AssignDriverRequest struct {
	DriverID string `json:"driver_id" validate:"required,object_id"`
}

type FeeQuoteRequest struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

func ValidateCreateZone(req *CreateZoneRequest) ValidationErrors {
	errs := ValidateStruct(req)
	return append(errs, checkPolygonEnvelope(req.Polygon)...)
}

func ValidateUpdateZone(req *UpdateZoneRequest) ValidationErrors {
	errs := ValidateStruct(req)
	return append(errs, checkPolygonEnvelope(req.Polygon)...)
}

// ToZone builds the zone record. Call only after validation passed.
func (r *CreateZoneRequest) ToZone() *models.Zone {
	businessID, _ := primitive.ObjectIDFromHex(r.BusinessID)

	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return &models.Zone{
		BusinessID:                   businessID,
		Name:                         r.Name,
		Polygon:                      r.Polygon,
		DeliveryFee:                  *r.DeliveryFee,
		MinimumOrder:                 r.MinimumOrder,
		EstimatedDeliveryTimeMinutes: r.EstimatedDeliveryTimeMinutes,
		IsActive:                     isActive,
	}
}

func (r *UpdateZoneRequest) ToUpdate() *models.ZoneUpdate {
	return &models.ZoneUpdate{
		Name:                         r.Name,
		Polygon:                      r.Polygon,
		DeliveryFee:                  r.DeliveryFee,
		MinimumOrder:                 r.MinimumOrder,
		EstimatedDeliveryTimeMinutes: r.EstimatedDeliveryTimeMinutes,
		IsActive:                     r.IsActive,
	}
}

// PendingByZone converts the validated map keys into zone ids.
func (r *BusinessCoverageRequest) PendingByZone() map[primitive.ObjectID]int {
	pending := make(map[primitive.ObjectID]int, len(r.PendingOrders))
	for hex, count := range r.PendingOrders {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			continue
		}
		pending[id] = count
	}
	return pending
}
