package shared

import (
	"errors"
	"net/http"

	"zonedispatch/internal/services"
	"zonedispatch/internal/utils"
	"zonedispatch/internal/validators"
	"zonedispatch/pkg/logger"

	"github.com/gin-gonic/gin"
)

// handleServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognised is logged and reported as a 500.
func handleServiceError(c *gin.Context, log *logger.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrZoneNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, "ZONE_NOT_FOUND", utils.ErrZoneNotFound)
	case errors.Is(err, services.ErrZoneInactive):
		utils.ErrorResponse(c, http.StatusConflict, "ZONE_INACTIVE", utils.ErrZoneInactive)
	case errors.Is(err, services.ErrAssignmentNotFound):
		utils.NotFoundResponse(c, "Zone assignment")
	case errors.Is(err, services.ErrNoZoneAvailable):
		utils.ErrorResponse(c, http.StatusNotFound, "NO_ZONE_AVAILABLE", utils.ErrNoZoneAvailable)
	case errors.Is(err, services.ErrAssignmentAlreadyActive),
		errors.Is(err, services.ErrAssignmentAlreadyInactive):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalidPolygon):
		utils.UnprocessableResponse(c, "INVALID_POLYGON", err.Error())
	case errors.Is(err, services.ErrInvalidDeliveryFee):
		utils.UnprocessableResponse(c, "INVALID_DELIVERY_FEE", err.Error())
	default:
		log.WithContext(c.Request.Context()).WithError(err).
			WithField("path", c.FullPath()).
			Error("Request failed")
		utils.InternalServerErrorResponse(c)
	}
}

func validationErrorResponse(c *gin.Context, errs validators.ValidationErrors) {
	details := make(map[string]string, len(errs))
	for _, e := range errs {
		details[e.Field] = e.Message
	}
	utils.ValidationErrorResponse(c, details)
}
