package handlers

import (
	"context"
	"net/http"

	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/Pycomet/grindproof-sub001/internal/domain/analysis"
	"github.com/Pycomet/grindproof-sub001/internal/domain/events"
	"github.com/Pycomet/grindproof-sub001/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AnalysisHandler handles HTTP requests for behavioral analysis snapshots
type AnalysisHandler struct {
	service     analysis.Service
	redisClient *cache.RedisClient
	logger      *zap.Logger
}

// NewAnalysisHandler creates a new AnalysisHandler instance
func NewAnalysisHandler(service analysis.Service, redisClient *cache.RedisClient, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{service: service, redisClient: redisClient, logger: logger}
}

// StartAnalysisEventListener drops cached analysis snapshots when another
// process reports a data change on the analysis channel. Writes inside this
// process already invalidate synchronously; this covers everything else.
func (h *AnalysisHandler) StartAnalysisEventListener(ctx context.Context) {
	go func() {
		err := h.redisClient.SubscribeToAnalysisEvents(ctx, func(event *events.AnalysisEvent) error {
			h.logger.Info("Received analysis event",
				zap.String("event_type", event.EventType),
				zap.String("user_id", event.UserID.String()))

			if err := h.redisClient.InvalidateAnalysisCache(ctx, event.UserID); err != nil {
				h.logger.Error("Failed to invalidate analysis cache",
					zap.Error(err),
					zap.String("user_id", event.UserID.String()))
			}
			return nil
		})
		if err != nil {
			h.logger.Error("Analysis event listener error", zap.Error(err))
		}
	}()
}

// AnalyzeUser godoc
// @Summary Run a full behavioral analysis
// @Description Compute task, goal and evidence stats plus rule-detected patterns
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} analysis.UserAnalysis "Analysis computed successfully"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/analysis [get]
func (h *AnalysisHandler) AnalyzeUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	result, err := h.service.AnalyzeUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": result})
}

// GetTaskStats godoc
// @Summary Get task statistics
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} analysis.TaskStats "Task statistics retrieved successfully"
// @Router /api/analysis/tasks [get]
func (h *AnalysisHandler) GetTaskStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	stats, err := h.service.GetTaskStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// GetGoalStats godoc
// @Summary Get goal statistics
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} analysis.GoalStats "Goal statistics retrieved successfully"
// @Router /api/analysis/goals [get]
func (h *AnalysisHandler) GetGoalStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	stats, err := h.service.GetGoalStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// GetEvidenceStats godoc
// @Summary Get evidence statistics
// @Tags analysis
// @Produce json
// @Security BearerAuth
// @Success 200 {object} analysis.EvidenceStats "Evidence statistics retrieved successfully"
// @Router /api/analysis/evidence [get]
func (h *AnalysisHandler) GetEvidenceStats(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	stats, err := h.service.GetEvidenceStats(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}
