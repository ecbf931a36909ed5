package shared

import (
	"zonedispatch/internal/services"
	"zonedispatch/internal/utils"
	"zonedispatch/internal/validators"
	"zonedispatch/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AssignmentHandler struct {
	zoneService services.ZoneService
	logger      *logger.Logger
}

func NewAssignmentHandler(zoneService services.ZoneService, log *logger.Logger) *AssignmentHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &AssignmentHandler{
		zoneService: zoneService,
		logger:      log,
	}
}

func (h *AssignmentHandler) AssignDriver(c *gin.Context) {
	zoneID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	var req validators.AssignDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	if errs := validators.ValidateStruct(&req); len(errs) > 0 {
		validationErrorResponse(c, errs)
		return
	}
	driverID, _ := primitive.ObjectIDFromHex(req.DriverID)

	assignment, err := h.zoneService.AssignDriver(c.Request.Context(), zoneID, driverID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.CreatedResponse(c, "Driver assigned to zone", assignment)
}

func (h *AssignmentHandler) ListZoneDrivers(c *gin.Context) {
	zoneID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	drivers, err := h.zoneService.ListZoneDrivers(c.Request.Context(), zoneID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponseWithMeta(c, "Zone drivers retrieved", drivers, &utils.Meta{
		Total: int64(len(drivers)),
		Count: len(drivers),
	})
}

func (h *AssignmentHandler) ActivateAssignment(c *gin.Context) {
	assignmentID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.zoneService.ActivateAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Assignment activated", assignment)
}

func (h *AssignmentHandler) DeactivateAssignment(c *gin.Context) {
	assignmentID, ok := paramObjectID(c, "id")
	if !ok {
		return
	}

	assignment, err := h.zoneService.DeactivateAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	utils.SuccessResponse(c, "Assignment deactivated", assignment)
}
