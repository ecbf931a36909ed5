package routes

import (
	"net/http"
	"time"

	"zonedispatch/internal/handlers/shared"
	"zonedispatch/internal/metrics"
	"zonedispatch/internal/middleware"
	"zonedispatch/internal/services"
	"zonedispatch/internal/utils"
	"zonedispatch/pkg/logger"

	"github.com/gin-gonic/gin"
)

// HealthCheck reports dependency status. Nil checks are skipped.
type HealthCheck func() error

type RouterConfig struct {
	ZoneService    services.ZoneService
	Logger         *logger.Logger
	Metrics        *metrics.ZoneCollector
	AllowedOrigins []string
	HealthChecks   map[string]HealthCheck
}

// NewRouter builds the gin engine with middleware, health, metrics and the
// versioned zone API.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNopLogger()
	}

	r := gin.New()
	r.Use(middleware.RecoveryMiddleware(cfg.Logger))
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middleware.LoggingMiddleware(cfg.Logger, cfg.Metrics))

	r.GET("/health", healthHandler(cfg.HealthChecks))
	r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))

	v1 := r.Group("/api/v1")
	SetupZoneRoutes(v1,
		shared.NewZoneHandler(cfg.ZoneService, cfg.Logger),
		shared.NewAssignmentHandler(cfg.ZoneService, cfg.Logger),
	)

	return r
}

// SetupZoneRoutes sets up routes for zones, assignments, coverage and pricing
func SetupZoneRoutes(r *gin.RouterGroup, zoneHandler *shared.ZoneHandler, assignmentHandler *shared.AssignmentHandler) {
	zones := r.Group("/zones")
	{
		zones.POST("", zoneHandler.CreateZone)
		zones.GET("/grouped", zoneHandler.GroupZones)
		zones.POST("/validate-polygon", zoneHandler.ValidatePolygon)
		zones.GET("/:id", zoneHandler.GetZone)
		zones.PUT("/:id", zoneHandler.UpdateZone)
		zones.DELETE("/:id", zoneHandler.DeleteZone)
		zones.GET("/:id/coverage", zoneHandler.GetZoneCoverage)
		zones.POST("/:id/fee-quote", zoneHandler.QuoteDeliveryFee)

		// Driver assignments
		zones.POST("/:id/assignments", assignmentHandler.AssignDriver)
		zones.GET("/:id/drivers", assignmentHandler.ListZoneDrivers)
	}

	businesses := r.Group("/businesses/:business_id")
	{
		businesses.GET("/zones", zoneHandler.ListBusinessZones)
		businesses.GET("/zones/locate", zoneHandler.LocateZone)
		businesses.GET("/zones/nearest", zoneHandler.NearestZone)
		businesses.POST("/zones/recommend", zoneHandler.RecommendZone)
		businesses.POST("/coverage", zoneHandler.GetBusinessCoverage)
	}

	assignments := r.Group("/assignments")
	{
		assignments.PUT("/:id/activate", assignmentHandler.ActivateAssignment)
		assignments.PUT("/:id/deactivate", assignmentHandler.DeactivateAssignment)
	}
}

func healthHandler(checks map[string]HealthCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := make(map[string]string, len(checks))
		healthy := true
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check(); err != nil {
				status[name] = err.Error()
				healthy = false
				continue
			}
			status[name] = "ok"
		}

		body := gin.H{
			"status":     "healthy",
			"app":        utils.AppName,
			"version":    utils.AppVersion,
			"checks":     status,
			"checked_at": time.Now(),
		}
		if !healthy {
			body["status"] = "degraded"
			c.JSON(http.StatusServiceUnavailable, body)
			return
		}
		c.JSON(http.StatusOK, body)
	}
}
