package routes

import (
	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/handlers"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// IntegrationRoutes handles the setup of integration routes
type IntegrationRoutes struct {
	handler   *handlers.IntegrationHandler
	jwtSecret string
}

// NewIntegrationRoutes creates a new IntegrationRoutes instance
func NewIntegrationRoutes(handler *handlers.IntegrationHandler, jwtSecret string) *IntegrationRoutes {
	return &IntegrationRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all integration routes
func (r *IntegrationRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	integrations := router.Group("/api/integrations")
	integrations.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	integrations.Use(metrics.CollectMetrics())

	integrations.GET("", r.handler.ListIntegrations)
	integrations.POST("", validation.ValidateRequest(&dto.ConnectIntegrationRequest{}), r.handler.Connect)

	integrations.GET("/github/activity", r.handler.GetGitHubActivity)
	integrations.GET("/github/repos/:owner/:repo/commits", r.handler.GetRepoCommits)

	integrations.POST("/calendar/sync", cache.CacheInvalidate("tasks:*"), r.handler.SyncFromCalendar)
	integrations.POST("/calendar/push", validation.ValidateRequest(&dto.PushTaskRequest{}), r.handler.PushTaskToCalendar)

	integrations.DELETE("/:service", r.handler.Disconnect)
}
