package routes

import (
	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/handlers"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// GoalRoutes handles the setup of goal-related routes
type GoalRoutes struct {
	handler   *handlers.GoalHandler
	jwtSecret string
}

// NewGoalRoutes creates a new GoalRoutes instance
func NewGoalRoutes(handler *handlers.GoalHandler, jwtSecret string) *GoalRoutes {
	return &GoalRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all goal-related routes
func (r *GoalRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	goals := router.Group("/api/goals")
	goals.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	goals.Use(metrics.CollectMetrics())

	goals.GET("", cache.CacheResponse(), r.handler.ListGoals)
	goals.GET("/:id", cache.CacheResponse(), r.handler.GetGoal)

	goals.POST("", validation.ValidateRequest(&dto.CreateGoalRequest{}), cache.CacheInvalidate("goals:*"), r.handler.CreateGoal)
	goals.PUT("/:id", validation.ValidateRequest(&dto.UpdateGoalRequest{}), cache.CacheInvalidate("goals:*"), r.handler.UpdateGoal)
	goals.DELETE("/:id", cache.CacheInvalidate("goals:*"), r.handler.DeleteGoal)
}
