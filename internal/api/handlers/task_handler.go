package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler handles HTTP requests for task operations
type TaskHandler struct {
	service task.Service
}

// NewTaskHandler creates a new TaskHandler instance
func NewTaskHandler(service task.Service) *TaskHandler {
	return &TaskHandler{service: service}
}

func taskErrStatus(err error) int {
	switch {
	case errors.Is(err, task.ErrTaskNotFound):
		return http.StatusNotFound
	case errors.Is(err, task.ErrTaskAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, task.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// CreateTask godoc
// @Summary Create a new task
// @Description Create a new task owned by the authenticated user
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param task body dto.CreateTaskRequest true "Task creation request"
// @Success 201 {object} task.Task "Task created successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	req, ok := bindRequest[dto.CreateTaskRequest](c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	created, err := h.service.CreateTask(c.Request.Context(), task.CreateTaskInput{
		UserID:      userID,
		GoalID:      req.GoalID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		Recurrence:  req.Recurrence,
	})
	if err != nil {
		c.JSON(taskErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// GetTask godoc
// @Summary Get a task by ID
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {object} task.Task "Task retrieved successfully"
// @Failure 404 {object} map[string]string "Task not found"
// @Router /api/tasks/{id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	t, err := h.service.GetTask(c.Request.Context(), id)
	if err != nil {
		c.JSON(taskErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": t})
}

// ListTasks godoc
// @Summary List the authenticated user's tasks
// @Description Get a paginated list of tasks with optional filters
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param page_size query int false "Number of items per page"
// @Param goal_id query string false "Filter by goal ID"
// @Param status query string false "Filter by status"
// @Param search query string false "Search in title and description"
// @Success 200 {object} map[string]interface{} "List of tasks retrieved successfully"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	filter := task.TaskFilter{
		UserID:   &userID,
		Page:     page,
		PageSize: pageSize,
	}
	if search := c.Query("search"); search != "" {
		filter.Search = &search
	}

	if goalIDStr := c.Query("goal_id"); goalIDStr != "" {
		if goalID, err := uuid.Parse(goalIDStr); err == nil {
			filter.GoalID = &goalID
		}
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := task.TaskStatus(statusStr)
		if !status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status value"})
			return
		}
		filter.Status = &status
	}
	if dueStart := c.Query("due_start"); dueStart != "" {
		if ts, err := time.Parse(time.RFC3339, dueStart); err == nil {
			filter.DueDateStart = &ts
		}
	}
	if dueEnd := c.Query("due_end"); dueEnd != "" {
		if ts, err := time.Parse(time.RFC3339, dueEnd); err == nil {
			filter.DueDateEnd = &ts
		}
	}

	tasks, total, err := h.service.ListTasks(c.Request.Context(), filter)
	if err != nil {
		c.JSON(taskErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"tasks":       tasks,
		"total_count": total,
		"page":        page,
		"page_size":   pageSize,
	}})
}

// UpdateTask godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Param task body dto.UpdateTaskRequest true "Task update request"
// @Success 200 {object} task.Task "Task updated successfully"
// @Failure 403 {object} map[string]string "Task owned by another user"
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	req, ok := bindRequest[dto.UpdateTaskRequest](c)
	if !ok {
		return
	}

	updated, err := h.service.UpdateTask(c.Request.Context(), id, task.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		GoalID:      req.GoalID,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		Recurrence:  req.Recurrence,
	})
	if err != nil {
		c.JSON(taskErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": updated})
}

// CompleteTask godoc
// @Summary Mark a task as completed
// @Description Mark a task as completed, optionally attaching proof
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Param request body dto.CompleteTaskRequest false "Optional proof"
// @Success 200 {object} task.Task "Task completed successfully"
// @Router /api/tasks/{id}/complete [post]
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	// Proof body is optional, so a missing or empty body is fine.
	var req dto.CompleteTaskRequest
	_ = c.ShouldBindJSON(&req)

	completed, err := h.service.CompleteTask(c.Request.Context(), id, req.Proof)
	if err != nil {
		c.JSON(taskErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": completed})
}

// SkipTask godoc
// @Summary Mark a task as skipped
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {object} task.Task "Task skipped successfully"
// @Router /api/tasks/{id}/skip [post]
func (h *TaskHandler) SkipTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	skipped, err := h.service.SkipTask(c.Request.Context(), id)
	if err != nil {
		c.JSON(taskErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": skipped})
}

// RescheduleTask godoc
// @Summary Reschedule a task
// @Description Move a task's due date and reset it to pending
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Param request body dto.RescheduleTaskRequest true "New due date"
// @Success 200 {object} task.Task "Task rescheduled successfully"
// @Router /api/tasks/{id}/reschedule [post]
func (h *TaskHandler) RescheduleTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	req, ok := bindRequest[dto.RescheduleTaskRequest](c)
	if !ok {
		return
	}

	rescheduled, err := h.service.RescheduleTask(c.Request.Context(), id, req.DueDate)
	if err != nil {
		c.JSON(taskErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": rescheduled})
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {object} map[string]string "Task deleted successfully"
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	if err := h.service.DeleteTask(c.Request.Context(), id); err != nil {
		c.JSON(taskErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "task deleted"})
}

// GetTodayTasks godoc
// @Summary List today's tasks
// @Description Get the authenticated user's tasks due today
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} task.Task "Today's tasks retrieved successfully"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/tasks/today [get]
func (h *TaskHandler) GetTodayTasks(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	tasks, err := h.service.GetTodayTasks(c.Request.Context(), userID)
	if err != nil {
		c.JSON(taskErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": tasks})
}
