package handlers

import (
	"errors"
	"net/http"

	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/Pycomet/grindproof-sub001/internal/domain/coach"
	"github.com/gin-gonic/gin"
)

// CoachHandler handles HTTP requests for the accountability coach
type CoachHandler struct {
	service coach.Service
}

// NewCoachHandler creates a new CoachHandler instance
func NewCoachHandler(service coach.Service) *CoachHandler {
	return &CoachHandler{service: service}
}

func coachErrStatus(err error) int {
	if errors.Is(err, coach.ErrCoachUnavailable) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// Chat godoc
// @Summary Chat with the coach
// @Description Send a message to the coach. The coach can read and modify the user's tasks and goals.
// @Tags coach
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChatRequest true "Chat message"
// @Success 200 {object} dto.ChatResponse "Coach reply"
// @Failure 503 {object} map[string]string "Coach unavailable"
// @Router /api/coach/chat [post]
func (h *CoachHandler) Chat(c *gin.Context) {
	req, ok := bindRequest[dto.ChatRequest](c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	reply, err := h.service.Chat(c.Request.Context(), userID, req.Message)
	if err != nil {
		c.JSON(coachErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ChatResponse{Reply: reply}})
}

// AnalyzePatterns godoc
// @Summary Run AI pattern analysis
// @Description Ask the coach to analyze the user's behavior and persist detected patterns
// @Tags coach
// @Produce json
// @Security BearerAuth
// @Success 200 {array} coach.ValidatedPattern "Patterns detected and persisted"
// @Failure 503 {object} map[string]string "Coach unavailable"
// @Router /api/coach/patterns [post]
func (h *CoachHandler) AnalyzePatterns(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	patterns, err := h.service.AnalyzePatterns(c.Request.Context(), userID)
	if err != nil {
		c.JSON(coachErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": patterns})
}

// GenerateWeeklyRoast godoc
// @Summary Generate the weekly roast
// @Description Produce this week's accountability report, persist the score and notify the user
// @Tags coach
// @Produce json
// @Security BearerAuth
// @Success 200 {object} coach.RoastReport "Roast generated successfully"
// @Failure 503 {object} map[string]string "Coach unavailable"
// @Router /api/coach/roast [post]
func (h *CoachHandler) GenerateWeeklyRoast(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	report, err := h.service.GenerateWeeklyRoast(c.Request.Context(), userID)
	if err != nil {
		c.JSON(coachErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": report})
}
