package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/unburdy/scheduling-module/handlers"
	"github.com/unburdy/scheduling-module/pkg/middleware"
)

// RouteProvider provides routing functionality for the scheduling module
type RouteProvider struct {
	schedulingHandler *handlers.SchedulingHandler
}

// NewRouteProvider creates a new route provider
func NewRouteProvider(schedulingHandler *handlers.SchedulingHandler) *RouteProvider {
	return &RouteProvider{
		schedulingHandler: schedulingHandler,
	}
}

// RegisterRoutes registers the scheduling routes with the provided router group
func (rp *RouteProvider) RegisterRoutes(router *gin.RouterGroup) {
	scheduling := router.Group("/scheduling")
	{
		// Slot browsing is the hot read path; bound it independently.
		scheduling.GET("/slots", middleware.NewRateLimiter(limiter.Rate{}), rp.schedulingHandler.GetAvailableSlots)

		scheduling.POST("", rp.schedulingHandler.CreateScheduling)
		scheduling.GET("", rp.schedulingHandler.ListSchedulings)
		scheduling.GET("/appointment-types", rp.schedulingHandler.ListAppointmentTypes)
		scheduling.GET("/workers", rp.schedulingHandler.ListWorkers)

		scheduling.GET("/config", rp.schedulingHandler.GetSchedulingConfig)
		scheduling.PUT("/config", rp.schedulingHandler.UpdateSchedulingConfig)

		scheduling.GET("/availability/:worker_id", rp.schedulingHandler.GetAvailability)
		scheduling.PUT("/availability/:worker_id", rp.schedulingHandler.UpsertAvailability)

		scheduling.GET("/:id", rp.schedulingHandler.GetScheduling)
		scheduling.POST("/:id/cancel", rp.schedulingHandler.CancelScheduling)
	}
}

// GetPrefix returns the route prefix for scheduling endpoints
func (rp *RouteProvider) GetPrefix() string {
	return ""
}

// GetMiddleware returns middleware to apply to all routes
func (rp *RouteProvider) GetMiddleware() []gin.HandlerFunc {
	return []gin.HandlerFunc{
		middleware.AuthMiddleware(), // Require authentication for all scheduling routes
	}
}
