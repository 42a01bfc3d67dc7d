package routes

import (
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/handlers"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// TaskRoutes handles the setup of task-related routes
type TaskRoutes struct {
	handler         *handlers.TaskHandler
	evidenceHandler *handlers.EvidenceHandler
	jwtSecret       string
}

// NewTaskRoutes creates a new TaskRoutes instance
func NewTaskRoutes(handler *handlers.TaskHandler, evidenceHandler *handlers.EvidenceHandler, jwtSecret string) *TaskRoutes {
	return &TaskRoutes{
		handler:         handler,
		evidenceHandler: evidenceHandler,
		jwtSecret:       jwtSecret,
	}
}

// RegisterRoutes registers all task-related routes
func (r *TaskRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()
	circuitBreaker := middleware.NewCircuitBreaker(middleware.CircuitBreakerConfig{
		FailureThreshold:    5,
		SuccessThreshold:    2,
		Timeout:             15 * time.Second,
		HalfOpenMaxRequests: 3,
	})

	tasks := router.Group("/api/tasks")
	tasks.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	tasks.Use(metrics.CollectMetrics())
	tasks.Use(circuitBreaker.CircuitBreakerMiddleware())

	// Read operations with caching
	tasks.GET("", cache.CacheResponse(), r.handler.ListTasks)
	tasks.GET("/today", cache.CacheResponse(), r.handler.GetTodayTasks)
	tasks.GET("/:id", cache.CacheResponse(), r.handler.GetTask)
	tasks.GET("/:id/evidence", r.evidenceHandler.ListByTask)

	// Write operations with cache invalidation and validation
	tasks.POST("", validation.ValidateRequest(&dto.CreateTaskRequest{}), cache.CacheInvalidate("tasks:*"), r.handler.CreateTask)
	tasks.PUT("/:id", validation.ValidateRequest(&dto.UpdateTaskRequest{}), cache.CacheInvalidate("tasks:*"), r.handler.UpdateTask)
	tasks.DELETE("/:id", cache.CacheInvalidate("tasks:*"), r.handler.DeleteTask)

	// Status transitions
	tasks.POST("/:id/complete", cache.CacheInvalidate("tasks:*"), r.handler.CompleteTask)
	tasks.POST("/:id/skip", cache.CacheInvalidate("tasks:*"), r.handler.SkipTask)
	tasks.POST("/:id/reschedule", validation.ValidateRequest(&dto.RescheduleTaskRequest{}), cache.CacheInvalidate("tasks:*"), r.handler.RescheduleTask)
}
