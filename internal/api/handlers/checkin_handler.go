package handlers

import (
	"errors"
	"net/http"

	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/Pycomet/grindproof-sub001/internal/domain/checkin"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/gin-gonic/gin"
)

// CheckinHandler handles HTTP requests for morning and evening check-ins
type CheckinHandler struct {
	service checkin.Service
}

// NewCheckinHandler creates a new CheckinHandler instance
func NewCheckinHandler(service checkin.Service) *CheckinHandler {
	return &CheckinHandler{service: service}
}

// GetMorningSchedule godoc
// @Summary Get the morning schedule
// @Description Today's tasks plus today's calendar events when a calendar is connected
// @Tags checkins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} checkin.MorningSchedule "Schedule retrieved successfully"
// @Router /api/checkins/morning [get]
func (h *CheckinHandler) GetMorningSchedule(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	schedule, err := h.service.GetMorningSchedule(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": schedule})
}

// SaveMorningPlan godoc
// @Summary Save the morning plan
// @Description Turn free-form plan text into today's tasks
// @Tags checkins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.MorningPlanRequest true "Plan text"
// @Success 201 {array} task.Task "Tasks created from the plan"
// @Failure 400 {object} map[string]string "Empty plan"
// @Router /api/checkins/morning [post]
func (h *CheckinHandler) SaveMorningPlan(c *gin.Context) {
	req, ok := bindRequest[dto.MorningPlanRequest](c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	created, err := h.service.SaveMorningPlan(c.Request.Context(), userID, req.PlanText)
	if err != nil {
		statuscode := http.StatusInternalServerError
		if errors.Is(err, task.ErrInvalidInput) {
			statuscode = http.StatusBadRequest
		}
		c.JSON(statuscode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// GetEveningComparison godoc
// @Summary Compare the day's plan against reality
// @Tags checkins
// @Produce json
// @Security BearerAuth
// @Success 200 {object} checkin.EveningComparison "Comparison retrieved successfully"
// @Router /api/checkins/evening [get]
func (h *CheckinHandler) GetEveningComparison(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	comparison, err := h.service.GetEveningComparison(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": comparison})
}

// SaveEveningReflection godoc
// @Summary Save the evening reflection
// @Description Fold the evening check-in into this week's score row
// @Tags checkins
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ReflectionRequest true "Reflection"
// @Success 200 {object} score.AccountabilityScore "Reflection saved"
// @Router /api/checkins/evening [post]
func (h *CheckinHandler) SaveEveningReflection(c *gin.Context) {
	req, ok := bindRequest[dto.ReflectionRequest](c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	s, err := h.service.SaveEveningReflection(c.Request.Context(), userID, checkin.ReflectionInput{
		Reflections:  req.Reflections,
		EvidenceURLs: req.EvidenceURLs,
		CheckInType:  req.CheckInType,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": s})
}
