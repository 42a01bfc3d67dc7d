package main

import (
	"context"
	"fmt"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/api/handlers"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/Pycomet/grindproof-sub001/internal/api/routes"
	"github.com/Pycomet/grindproof-sub001/internal/domain/analysis"
	"github.com/Pycomet/grindproof-sub001/internal/domain/checkin"
	"github.com/Pycomet/grindproof-sub001/internal/domain/coach"
	"github.com/Pycomet/grindproof-sub001/internal/domain/evidence"
	"github.com/Pycomet/grindproof-sub001/internal/domain/goal"
	"github.com/Pycomet/grindproof-sub001/internal/domain/integration"
	"github.com/Pycomet/grindproof-sub001/internal/domain/notification"
	"github.com/Pycomet/grindproof-sub001/internal/domain/pattern"
	"github.com/Pycomet/grindproof-sub001/internal/domain/score"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/Pycomet/grindproof-sub001/internal/domain/user"
	"github.com/Pycomet/grindproof-sub001/internal/infrastructure/cache"
	"github.com/Pycomet/grindproof-sub001/internal/infrastructure/persistence/postgres/connection"
	"github.com/Pycomet/grindproof-sub001/internal/infrastructure/persistence/postgres/migrations"
	"github.com/Pycomet/grindproof-sub001/pkg/config"
	"github.com/Pycomet/grindproof-sub001/pkg/logger"
	"github.com/Pycomet/grindproof-sub001/pkg/security/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RequestLoggerMiddleware logs all incoming HTTP requests
func RequestLoggerMiddleware(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		log.Info("Request completed",
			zap.String("path", path),
			zap.String("method", method),
			zap.String("client_ip", c.ClientIP()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("")
	if err != nil {
		stdlog.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	log := logger.NewLogger()
	defer log.Sync()

	log.Info("Configuration loaded successfully")
	log.Info("Server mode: " + cfg.Server.Mode)

	// Set up Gin
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	gin.DefaultWriter = os.Stdout

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggerMiddleware(log))
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowedOrigins,
		AllowMethods: cfg.CORS.AllowedMethods,
		AllowHeaders: append(cfg.CORS.AllowedHeaders,
			"Accept-Encoding",
			"Content-Type",
			"Authorization",
		),
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-RateLimit-Remaining",
			"X-RateLimit-Reset",
		},
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Connect to database
	db, err := connection.NewDatabase(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if err := migrations.AutoMigrate(db, log.Logger); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize Redis
	redisConfig := cache.NewConfigFromEnv(cfg)
	redisClient, err := cache.NewRedisClient(redisConfig)
	if err != nil {
		log.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := user.NewRepository(db)
	taskRepo := task.NewRepository(db)
	goalRepo := goal.NewRepository(db)
	evidenceRepo := evidence.NewRepository(db)
	scoreRepo := score.NewRepository(db)
	patternRepo := pattern.NewRepository(db)
	integrationRepo := integration.NewRepository(db)
	notificationRepo := notification.NewRepository(db)

	// External service clients
	githubClient := integration.NewGitHubClient(cfg.Integrations.GitHub.APIBaseURL)
	calendarClient := integration.NewCalendarClient(
		cfg.Integrations.Google.ClientID,
		cfg.Integrations.Google.ClientSecret,
	)

	// The model client is built once here and injected everywhere it is
	// needed.
	llmClient := coach.NewOpenAIClient(cfg.LLM.APIKey, cfg.LLM.BaseURL)

	// Initialize services
	userService := user.NewService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.JWTExpiryHours, log.Logger)
	taskService := task.NewService(taskRepo, redisClient, log.Logger)
	goalService := goal.NewService(goalRepo, redisClient, log.Logger)
	evidenceService := evidence.NewService(evidenceRepo, taskRepo, redisClient, log.Logger)
	scoreService := score.NewService(scoreRepo, redisClient, log.Logger)
	patternService := pattern.NewService(patternRepo, redisClient, log.Logger)
	notificationService := notification.NewService(notificationRepo, log.Logger)
	analysisService := analysis.NewService(taskRepo, goalRepo, evidenceRepo, redisClient, log.Logger)
	integrationService := integration.NewService(integrationRepo, taskRepo, githubClient, calendarClient, log.Logger)
	coachService := coach.NewService(
		llmClient,
		coach.ClientConfig{Model: cfg.LLM.Model, Temperature: float32(cfg.LLM.Temperature)},
		analysisService,
		taskService,
		goalService,
		scoreService,
		patternService,
		notificationService,
	)
	checkinService := checkin.NewService(taskService, coachService, scoreService, integrationService, log.Logger)

	// Initialize rate limiter and cache middleware
	rateLimiter := auth.NewRedisRateLimiter(redisClient.GetClient(), 1*time.Minute, 1000)
	cacheMiddleware := middleware.NewCacheMiddleware(redisClient, "grindproof", 5*time.Minute)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, cfg.Auth.JWTSecret)
	taskHandler := handlers.NewTaskHandler(taskService)
	goalHandler := handlers.NewGoalHandler(goalService)
	evidenceHandler := handlers.NewEvidenceHandler(evidenceService)
	scoreHandler := handlers.NewScoreHandler(scoreService)
	patternHandler := handlers.NewPatternHandler(patternService)
	analysisHandler := handlers.NewAnalysisHandler(analysisService, redisClient, log.Logger)
	analysisHandler.StartAnalysisEventListener(context.Background())
	coachHandler := handlers.NewCoachHandler(coachService)
	checkinHandler := handlers.NewCheckinHandler(checkinService)
	integrationHandler := handlers.NewIntegrationHandler(integrationService, taskService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Health check routes
	routes.SetupHealthRoutes(router)
	router.GET("/health/cache", func(c *gin.Context) {
		if err := redisClient.HealthCheck(c); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"component": "cache",
				"error":     err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"component": "cache",
			"metrics":   redisClient.GetMetrics(),
		})
	})

	// Apply rate limiting middleware globally
	router.Use(middleware.RateLimitMiddleware(rateLimiter))

	// Register routes
	routes.NewAuthRoutes(authHandler, cfg.Auth.JWTSecret, redisClient.GetClient()).RegisterRoutes(router, cacheMiddleware)
	routes.NewTaskRoutes(taskHandler, evidenceHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewGoalRoutes(goalHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewEvidenceRoutes(evidenceHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewScoreRoutes(scoreHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewAnalysisRoutes(analysisHandler, patternHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewCoachRoutes(coachHandler, cfg.Auth.JWTSecret, redisClient.GetClient()).RegisterRoutes(router, cacheMiddleware)
	routes.NewCheckinRoutes(checkinHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewIntegrationRoutes(integrationHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)
	routes.NewNotificationRoutes(notificationHandler, cfg.Auth.JWTSecret).RegisterRoutes(router, cacheMiddleware)

	for _, route := range router.Routes() {
		log.Info("Route registered",
			zap.String("method", route.Method),
			zap.String("path", route.Path),
		)
	}

	// Start server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info(fmt.Sprintf("Server starting on port %d", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := server.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited properly")
}
