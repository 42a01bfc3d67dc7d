package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/Pycomet/grindproof-sub001/internal/domain/score"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ScoreHandler handles HTTP requests for weekly accountability scores
type ScoreHandler struct {
	service score.Service
}

// NewScoreHandler creates a new ScoreHandler instance
func NewScoreHandler(service score.Service) *ScoreHandler {
	return &ScoreHandler{service: service}
}

func scoreErrStatus(err error) int {
	switch {
	case errors.Is(err, score.ErrScoreNotFound):
		return http.StatusNotFound
	case errors.Is(err, score.ErrScoreExists):
		return http.StatusConflict
	case errors.Is(err, score.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateScore godoc
// @Summary Record a weekly score
// @Description Record the authenticated user's score for a week. One row per week.
// @Tags scores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param score body dto.CreateScoreRequest true "Score creation request"
// @Success 201 {object} score.AccountabilityScore "Score recorded successfully"
// @Failure 409 {object} map[string]string "Score already exists for this week"
// @Router /api/scores [post]
func (h *ScoreHandler) CreateScore(c *gin.Context) {
	req, ok := bindRequest[dto.CreateScoreRequest](c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	created, err := h.service.CreateScore(c.Request.Context(), score.CreateScoreInput{
		UserID:             userID,
		WeekStart:          req.WeekStart,
		AlignmentScore:     req.AlignmentScore,
		HonestyScore:       req.HonestyScore,
		CompletionScore:    req.CompletionScore,
		NewProjectsStarted: req.NewProjectsStarted,
		EvidenceSubmitted:  req.EvidenceSubmitted,
		Insights:           req.Insights,
		Recommendations:    req.Recommendations,
		WeekSummary:        req.WeekSummary,
	})
	if err != nil {
		c.JSON(scoreErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// ListScores godoc
// @Summary List the authenticated user's weekly scores
// @Tags scores
// @Produce json
// @Security BearerAuth
// @Success 200 {array} score.AccountabilityScore "Scores retrieved successfully"
// @Router /api/scores [get]
func (h *ScoreHandler) ListScores(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	scores, err := h.service.GetScores(c.Request.Context(), userID)
	if err != nil {
		c.JSON(scoreErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": scores})
}

// GetScoreByWeek godoc
// @Summary Get the score for a given week
// @Tags scores
// @Produce json
// @Security BearerAuth
// @Param week_start query string true "Week start (RFC3339)"
// @Success 200 {object} score.AccountabilityScore "Score retrieved successfully"
// @Failure 404 {object} map[string]string "No score for this week"
// @Router /api/scores/week [get]
func (h *ScoreHandler) GetScoreByWeek(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	weekStart, err := time.Parse(time.RFC3339, c.Query("week_start"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid week_start"})
		return
	}

	s, err := h.service.GetScoreByWeek(c.Request.Context(), userID, weekStart)
	if err != nil {
		c.JSON(scoreErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": s})
}

// GetScore godoc
// @Summary Get a score by ID
// @Tags scores
// @Produce json
// @Security BearerAuth
// @Param id path string true "Score ID" format(uuid)
// @Success 200 {object} score.AccountabilityScore "Score retrieved successfully"
// @Router /api/scores/{id} [get]
func (h *ScoreHandler) GetScore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid score ID"})
		return
	}

	s, err := h.service.GetScore(c.Request.Context(), id)
	if err != nil {
		c.JSON(scoreErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": s})
}

// UpdateScore godoc
// @Summary Amend a weekly score
// @Tags scores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Score ID" format(uuid)
// @Param score body dto.UpdateScoreRequest true "Score update request"
// @Success 200 {object} score.AccountabilityScore "Score updated successfully"
// @Router /api/scores/{id} [put]
func (h *ScoreHandler) UpdateScore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid score ID"})
		return
	}

	req, ok := bindRequest[dto.UpdateScoreRequest](c)
	if !ok {
		return
	}

	updated, err := h.service.UpdateScore(c.Request.Context(), id, score.UpdateScoreInput{
		AlignmentScore:     req.AlignmentScore,
		HonestyScore:       req.HonestyScore,
		CompletionScore:    req.CompletionScore,
		NewProjectsStarted: req.NewProjectsStarted,
		EvidenceSubmitted:  req.EvidenceSubmitted,
		Insights:           req.Insights,
		Recommendations:    req.Recommendations,
		WeekSummary:        req.WeekSummary,
	})
	if err != nil {
		c.JSON(scoreErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DeleteScore godoc
// @Summary Delete a weekly score
// @Tags scores
// @Produce json
// @Security BearerAuth
// @Param id path string true "Score ID" format(uuid)
// @Success 200 {object} map[string]string "Score deleted successfully"
// @Router /api/scores/{id} [delete]
func (h *ScoreHandler) DeleteScore(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid score ID"})
		return
	}

	if err := h.service.DeleteScore(c.Request.Context(), id); err != nil {
		c.JSON(scoreErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "score deleted"})
}
