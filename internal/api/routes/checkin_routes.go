package routes

import (
	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/handlers"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// CheckinRoutes handles the setup of check-in routes
type CheckinRoutes struct {
	handler   *handlers.CheckinHandler
	jwtSecret string
}

// NewCheckinRoutes creates a new CheckinRoutes instance
func NewCheckinRoutes(handler *handlers.CheckinHandler, jwtSecret string) *CheckinRoutes {
	return &CheckinRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all check-in routes
func (r *CheckinRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	checkins := router.Group("/api/checkins")
	checkins.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	checkins.Use(metrics.CollectMetrics())

	checkins.GET("/morning", r.handler.GetMorningSchedule)
	checkins.POST("/morning", validation.ValidateRequest(&dto.MorningPlanRequest{}), cache.CacheInvalidate("tasks:*"), r.handler.SaveMorningPlan)

	checkins.GET("/evening", r.handler.GetEveningComparison)
	checkins.POST("/evening", validation.ValidateRequest(&dto.ReflectionRequest{}), cache.CacheInvalidate("scores:*"), r.handler.SaveEveningReflection)
}
