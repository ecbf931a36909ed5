package shared

import (
	"zonedispatch/internal/models"
	"zonedispatch/internal/services"
	"zonedispatch/internal/utils"
	"zonedispatch/internal/validators"
	"zonedispatch/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ZoneHandler struct {
	zoneService services.ZoneService
	logger      *logger.Logger
}

func NewZoneHandler(zoneService services.ZoneService, log *logger.Logger) *ZoneHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ZoneHandler{
		zoneService: zoneService,
		logger:      log,
	}
}

// CreateZone creates a zone after request and engine validation.
func (h *ZoneHandler) CreateZone(c *gin.Context) {
	var req validators.CreateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateCreateZone(&req); len(errs) > 0 {
		validationErrorResponse(c, errs)
		return
	}

	zone, err := h.zoneService.CreateZone(c.Request.Context(), req.ToZone())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "Zone created successfully", zone)
}

func (h *ZoneHandler) GetZone(c *gin.Context) {
	zoneID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	zone, err := h.zoneService.GetZone(c.Request.Context(), zoneID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Zone retrieved successfully", zone)
}

func (h *ZoneHandler) UpdateZone(c *gin.Context) {
	zoneID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var req validators.UpdateZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateUpdateZone(&req); len(errs) > 0 {
		validationErrorResponse(c, errs)
		return
	}

	zone, err := h.zoneService.UpdateZone(c.Request.Context(), zoneID, req.ToUpdate())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Zone updated successfully", zone)
}

// DeleteZone removes the zone and releases its active driver assignments.
func (h *ZoneHandler) DeleteZone(c *gin.Context) {
	zoneID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	if err := h.zoneService.DeleteZone(c.Request.Context(), zoneID); err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Zone deleted successfully", nil)
}

func (h *ZoneHandler) ListBusinessZones(c *gin.Context) {
	businessID, ok := paramObjectID(c, "business_id")
	if !ok {
		return
	}

	zones, err := h.zoneService.ListBusinessZones(c.Request.Context(), businessID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Zones retrieved successfully", zones, &utils.Meta{
		Total: int64(len(zones)),
		Count: len(zones),
	})
}

// GroupZones returns every zone keyed by business id.
func (h *ZoneHandler) GroupZones(c *gin.Context) {
	groups, err := h.zoneService.GroupZonesByBusiness(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	response := make(map[string][]*models.Zone, len(groups))
	for businessID, zones := range groups {
		response[businessID.Hex()] = zones
	}

	utils.SuccessResponse(c, "Zones grouped by business", response)
}

// ValidatePolygon always answers 200; the verdict is in the body.
func (h *ZoneHandler) ValidatePolygon(c *gin.Context) {
	var polygon models.ZonePolygon
	if err := c.ShouldBindJSON(&polygon); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Polygon validated", h.zoneService.ValidatePolygon(&polygon))
}

func (h *ZoneHandler) LocateZone(c *gin.Context) {
	businessID, query, ok := h.bindLocation(c)
	if !ok {
		return
	}

	zone, err := h.zoneService.LocateZone(c.Request.Context(), businessID, *query.Lat, *query.Lng)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Zone located", zone)
}

func (h *ZoneHandler) NearestZone(c *gin.Context) {
	businessID, query, ok := h.bindLocation(c)
	if !ok {
		return
	}

	zone, err := h.zoneService.FindNearestZone(c.Request.Context(), businessID, *query.Lat, *query.Lng)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Nearest zone found", zone)
}

func (h *ZoneHandler) bindLocation(c *gin.Context) (primitive.ObjectID, *validators.LocationQuery, bool) {
	businessID, ok := paramObjectID(c, "business_id")
	if !ok {
		return primitive.NilObjectID, nil, false
	}

	var query validators.LocationQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid query: "+err.Error())
		return primitive.NilObjectID, nil, false
	}
	if errs := validators.ValidateStruct(&query); len(errs) > 0 {
		validationErrorResponse(c, errs)
		return primitive.NilObjectID, nil, false
	}

	return businessID, &query, true
}

func (h *ZoneHandler) RecommendZone(c *gin.Context) {
	businessID, ok := paramObjectID(c, "business_id")
	if !ok {
		return
	}

	var req validators.RecommendZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		validationErrorResponse(c, errs)
		return
	}

	recommendation, err := h.zoneService.RecommendZone(c.Request.Context(), businessID, *req.Lat, *req.Lng, *req.OrderTotal)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Zone recommended", recommendation)
}

// GetZoneCoverage answers 409 ZONE_INACTIVE for inactive zones.
func (h *ZoneHandler) GetZoneCoverage(c *gin.Context) {
	zoneID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var query validators.CoverageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		utils.BadRequestResponse(c, "Invalid query: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&query); len(errs) > 0 {
		validationErrorResponse(c, errs)
		return
	}

	coverage, err := h.zoneService.GetZoneCoverage(c.Request.Context(), zoneID, query.PendingOrders)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Zone coverage calculated", coverage)
}

func (h *ZoneHandler) GetBusinessCoverage(c *gin.Context) {
	businessID, ok := paramObjectID(c, "business_id")
	if !ok {
		return
	}

	var req validators.BusinessCoverageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		validationErrorResponse(c, errs)
		return
	}

	report, err := h.zoneService.GetBusinessCoverage(c.Request.Context(), businessID, req.PendingByZone())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Business coverage calculated", report, &utils.Meta{
		Total: int64(len(report)),
		Count: len(report),
	})
}

func (h *ZoneHandler) QuoteDeliveryFee(c *gin.Context) {
	zoneID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var req validators.FeeQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		validationErrorResponse(c, errs)
		return
	}

	quote, err := h.zoneService.QuoteDeliveryFee(c.Request.Context(), zoneID, *req.Lat, *req.Lng)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Delivery fee quoted", quote)
}

func paramObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, errs := validators.ParseObjectID(name, c.Param(name))
	if errs != nil {
		validationErrorResponse(c, errs)
		return primitive.NilObjectID, false
	}
	return id, true
}
