package routes

import (
	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/handlers"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// EvidenceRoutes handles the setup of evidence-related routes
type EvidenceRoutes struct {
	handler   *handlers.EvidenceHandler
	jwtSecret string
}

// NewEvidenceRoutes creates a new EvidenceRoutes instance
func NewEvidenceRoutes(handler *handlers.EvidenceHandler, jwtSecret string) *EvidenceRoutes {
	return &EvidenceRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all evidence-related routes
func (r *EvidenceRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	ev := router.Group("/api/evidence")
	ev.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	ev.Use(metrics.CollectMetrics())

	ev.GET("/:id", r.handler.GetEvidence)

	ev.POST("", validation.ValidateRequest(&dto.CreateEvidenceRequest{}), cache.CacheInvalidate("tasks:*"), r.handler.SubmitEvidence)
	ev.POST("/:id/validate", validation.ValidateRequest(&dto.ValidateEvidenceRequest{}), r.handler.ValidateEvidence)
	ev.DELETE("/:id", cache.CacheInvalidate("tasks:*"), r.handler.DeleteEvidence)
}
