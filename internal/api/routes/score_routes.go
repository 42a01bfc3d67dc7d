package routes

import (
	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/handlers"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// ScoreRoutes handles the setup of weekly score routes
type ScoreRoutes struct {
	handler   *handlers.ScoreHandler
	jwtSecret string
}

// NewScoreRoutes creates a new ScoreRoutes instance
func NewScoreRoutes(handler *handlers.ScoreHandler, jwtSecret string) *ScoreRoutes {
	return &ScoreRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all weekly score routes
func (r *ScoreRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	scores := router.Group("/api/scores")
	scores.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	scores.Use(metrics.CollectMetrics())

	scores.GET("", cache.CacheResponse(), r.handler.ListScores)
	scores.GET("/week", r.handler.GetScoreByWeek)
	scores.GET("/:id", cache.CacheResponse(), r.handler.GetScore)

	scores.POST("", validation.ValidateRequest(&dto.CreateScoreRequest{}), cache.CacheInvalidate("scores:*"), r.handler.CreateScore)
	scores.PUT("/:id", validation.ValidateRequest(&dto.UpdateScoreRequest{}), cache.CacheInvalidate("scores:*"), r.handler.UpdateScore)
	scores.DELETE("/:id", cache.CacheInvalidate("scores:*"), r.handler.DeleteScore)
}
