package routes

import (
	"github.com/Pycomet/grindproof-sub001/internal/api/handlers"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// NotificationRoutes handles the setup of notification routes
type NotificationRoutes struct {
	handler   *handlers.NotificationHandler
	jwtSecret string
}

// NewNotificationRoutes creates a new NotificationRoutes instance
func NewNotificationRoutes(handler *handlers.NotificationHandler, jwtSecret string) *NotificationRoutes {
	return &NotificationRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all notification routes
func (r *NotificationRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	metrics := middleware.NewMetricsMiddleware()

	notifications := router.Group("/api/notifications")
	notifications.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	notifications.Use(metrics.CollectMetrics())

	notifications.GET("", r.handler.ListNotifications)
	notifications.POST("/read-all", r.handler.MarkAllRead)
	notifications.POST("/:id/read", r.handler.MarkRead)
}
