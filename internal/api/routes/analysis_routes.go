package routes

import (
	"github.com/Pycomet/grindproof-sub001/internal/api/handlers"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

// AnalysisRoutes handles the setup of analysis and pattern routes
type AnalysisRoutes struct {
	analysisHandler *handlers.AnalysisHandler
	patternHandler  *handlers.PatternHandler
	jwtSecret       string
}

// NewAnalysisRoutes creates a new AnalysisRoutes instance
func NewAnalysisRoutes(analysisHandler *handlers.AnalysisHandler, patternHandler *handlers.PatternHandler, jwtSecret string) *AnalysisRoutes {
	return &AnalysisRoutes{
		analysisHandler: analysisHandler,
		patternHandler:  patternHandler,
		jwtSecret:       jwtSecret,
	}
}

// RegisterRoutes registers all analysis and pattern routes
func (r *AnalysisRoutes) RegisterRoutes(router *gin.Engine, cache *middleware.CacheMiddleware) {
	metrics := middleware.NewMetricsMiddleware()

	analysis := router.Group("/api/analysis")
	analysis.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	analysis.Use(metrics.CollectMetrics())

	analysis.GET("", r.analysisHandler.AnalyzeUser)
	analysis.GET("/tasks", r.analysisHandler.GetTaskStats)
	analysis.GET("/goals", r.analysisHandler.GetGoalStats)
	analysis.GET("/evidence", r.analysisHandler.GetEvidenceStats)

	patterns := router.Group("/api/patterns")
	patterns.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	patterns.Use(metrics.CollectMetrics())

	patterns.GET("", r.patternHandler.ListPatterns)
	patterns.GET("/:type", r.patternHandler.GetPatternByType)
	patterns.DELETE("/:type", r.patternHandler.DeletePattern)
}
