package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/Pycomet/grindproof-sub001/internal/domain/goal"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GoalHandler handles HTTP requests for goal operations
type GoalHandler struct {
	service goal.Service
}

// NewGoalHandler creates a new GoalHandler instance
func NewGoalHandler(service goal.Service) *GoalHandler {
	return &GoalHandler{service: service}
}

func goalErrStatus(err error) int {
	switch {
	case errors.Is(err, goal.ErrGoalNotFound):
		return http.StatusNotFound
	case errors.Is(err, goal.ErrGoalAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, goal.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateGoal godoc
// @Summary Create a new goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param goal body dto.CreateGoalRequest true "Goal creation request"
// @Success 201 {object} goal.Goal "Goal created successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /api/goals [post]
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	req, ok := bindRequest[dto.CreateGoalRequest](c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	input := goal.CreateGoalInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		LinkedRepos: req.LinkedRepos,
	}
	if req.Priority != "" {
		priority := goal.GoalPriority(req.Priority)
		if !priority.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority value"})
			return
		}
		input.Priority = priority
	}

	created, err := h.service.CreateGoal(c.Request.Context(), input)
	if err != nil {
		c.JSON(goalErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// GetGoal godoc
// @Summary Get a goal by ID
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID" format(uuid)
// @Success 200 {object} goal.Goal "Goal retrieved successfully"
// @Failure 404 {object} map[string]string "Goal not found"
// @Router /api/goals/{id} [get]
func (h *GoalHandler) GetGoal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal ID"})
		return
	}

	g, err := h.service.GetGoal(c.Request.Context(), id)
	if err != nil {
		c.JSON(goalErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": g})
}

// ListGoals godoc
// @Summary List the authenticated user's goals
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param priority query string false "Filter by priority"
// @Param page query int false "Page number"
// @Param page_size query int false "Number of items per page"
// @Success 200 {object} map[string]interface{} "List of goals retrieved successfully"
// @Router /api/goals [get]
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := goal.GoalFilter{
		UserID:   &userID,
		Page:     page,
		PageSize: pageSize,
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := goal.GoalStatus(statusStr)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}
		filter.Status = &status
	}
	if priorityStr := c.Query("priority"); priorityStr != "" {
		priority := goal.GoalPriority(priorityStr)
		if !priority.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority value"})
			return
		}
		filter.Priority = &priority
	}

	goals, total, err := h.service.ListGoals(c.Request.Context(), filter)
	if err != nil {
		c.JSON(goalErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"goals":       goals,
		"total_count": total,
		"page":        page,
		"page_size":   pageSize,
	}})
}

// UpdateGoal godoc
// @Summary Update a goal
// @Tags goals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID" format(uuid)
// @Param goal body dto.UpdateGoalRequest true "Goal update request"
// @Success 200 {object} goal.Goal "Goal updated successfully"
// @Router /api/goals/{id} [put]
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal ID"})
		return
	}

	req, ok := bindRequest[dto.UpdateGoalRequest](c)
	if !ok {
		return
	}

	input := goal.UpdateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		TargetDate:  req.TargetDate,
		LinkedRepos: req.LinkedRepos,
	}
	if req.Status != nil {
		status := goal.GoalStatus(*req.Status)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}
		input.Status = &status
	}
	if req.Priority != nil {
		priority := goal.GoalPriority(*req.Priority)
		if !priority.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid priority value"})
			return
		}
		input.Priority = &priority
	}

	updated, err := h.service.UpdateGoal(c.Request.Context(), id, input)
	if err != nil {
		c.JSON(goalErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// DeleteGoal godoc
// @Summary Delete a goal
// @Tags goals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Goal ID" format(uuid)
// @Success 200 {object} map[string]string "Goal deleted successfully"
// @Router /api/goals/{id} [delete]
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal ID"})
		return
	}

	if err := h.service.DeleteGoal(c.Request.Context(), id); err != nil {
		c.JSON(goalErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "goal deleted"})
}
