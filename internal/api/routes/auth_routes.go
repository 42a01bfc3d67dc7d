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

// AuthRoutes handles the setup of authentication routes
type AuthRoutes struct {
	handler   *handlers.AuthHandler
	jwtSecret string
	redis     *redis.Client
}

// NewAuthRoutes creates a new AuthRoutes instance
func NewAuthRoutes(handler *handlers.AuthHandler, jwtSecret string, redisClient *redis.Client) *AuthRoutes {
	return &AuthRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
		redis:     redisClient,
	}
}

// RegisterRoutes registers all authentication routes
func (r *AuthRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	validation := middleware.NewValidationMiddleware()
	metrics := middleware.NewMetricsMiddleware()

	// Login and registration carry a tight rate limit.
	limiter := auth.NewRedisRateLimiter(r.redis, time.Minute, 10)

	public := router.Group("/api/auth")
	public.Use(metrics.CollectMetrics())
	public.Use(middleware.RateLimitMiddleware(limiter))

	public.POST("/register", validation.ValidateRequest(&dto.RegisterRequest{}), r.handler.Register)
	public.POST("/login", validation.ValidateRequest(&dto.LoginRequest{}), r.handler.Login)

	private := router.Group("/api/auth")
	private.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	private.Use(metrics.CollectMetrics())

	private.POST("/logout", r.handler.Logout)
	private.GET("/me", r.handler.GetProfile)
	private.PUT("/me", validation.ValidateRequest(&dto.UpdateProfileRequest{}), r.handler.UpdateProfile)
}
