package routes

import (
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/handlers"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/Pycomet/grindproof-sub001/pkg/security/auth"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// CoachRoutes handles the setup of coach routes
type CoachRoutes struct {
	handler   *handlers.CoachHandler
	jwtSecret string
	redis     *redis.Client
}

// NewCoachRoutes creates a new CoachRoutes instance
func NewCoachRoutes(handler *handlers.CoachHandler, jwtSecret string, redisClient *redis.Client) *CoachRoutes {
	return &CoachRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
		redis:     redisClient,
	}
}

// RegisterRoutes registers all coach routes
func (r *CoachRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()
	circuitBreaker := middleware.NewCircuitBreaker(middleware.CircuitBreakerConfig{
		FailureThreshold:    3,
		SuccessThreshold:    2,
		Timeout:             30 * time.Second,
		HalfOpenMaxRequests: 1,
	})

	// Model calls are expensive, so coach endpoints get their own limiter.
	limiter := auth.NewRedisRateLimiter(r.redis, time.Minute, 20)

	coach := router.Group("/api/coach")
	coach.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	coach.Use(metrics.CollectMetrics())
	coach.Use(middleware.RateLimitMiddleware(limiter))
	coach.Use(circuitBreaker.CircuitBreakerMiddleware())

	coach.POST("/chat", validation.ValidateRequest(&dto.ChatRequest{}), r.handler.Chat)
	coach.POST("/patterns", cache.CacheInvalidate("patterns:*"), r.handler.AnalyzePatterns)
	coach.POST("/roast", cache.CacheInvalidate("scores:*"), r.handler.GenerateWeeklyRoast)
}
