package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/Pycomet/grindproof-sub001/internal/domain/integration"
	"github.com/Pycomet/grindproof-sub001/internal/domain/task"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// IntegrationHandler handles HTTP requests for external service connections
type IntegrationHandler struct {
	service integration.Service
	tasks   task.Service
}

// NewIntegrationHandler creates a new IntegrationHandler instance
func NewIntegrationHandler(service integration.Service, tasks task.Service) *IntegrationHandler {
	return &IntegrationHandler{service: service, tasks: tasks}
}

func integrationErrStatus(err error) int {
	switch {
	case errors.Is(err, integration.ErrIntegrationNotFound):
		return http.StatusNotFound
	case errors.Is(err, integration.ErrIntegrationExists):
		return http.StatusConflict
	case errors.Is(err, integration.ErrNeedsReconnect):
		return http.StatusBadGateway
	case errors.Is(err, integration.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Connect godoc
// @Summary Connect an external service
// @Description Store credentials for GitHub or Google Calendar. One connection per service.
// @Tags integrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ConnectIntegrationRequest true "Connection request"
// @Success 201 {object} integration.Integration "Service connected successfully"
// @Failure 409 {object} map[string]string "Service already connected"
// @Router /api/integrations [post]
func (h *IntegrationHandler) Connect(c *gin.Context) {
	req, ok := bindRequest[dto.ConnectIntegrationRequest](c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	svcName := integration.ServiceName(req.Service)
	if !svcName.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service name"})
		return
	}

	created, err := h.service.Connect(c.Request.Context(), integration.ConnectInput{
		UserID:       userID,
		Service:      svcName,
		AccessToken:  req.AccessToken,
		RefreshToken: req.RefreshToken,
		TokenExpiry:  req.ExpiresAt,
		AccountLogin: req.AccountLogin,
	})
	if err != nil {
		c.JSON(integrationErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// Disconnect godoc
// @Summary Disconnect an external service
// @Tags integrations
// @Produce json
// @Security BearerAuth
// @Param service path string true "Service name" example:"github"
// @Success 200 {object} map[string]string "Service disconnected"
// @Router /api/integrations/{service} [delete]
func (h *IntegrationHandler) Disconnect(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	svcName := integration.ServiceName(c.Param("service"))
	if !svcName.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid service name"})
		return
	}

	if err := h.service.Disconnect(c.Request.Context(), userID, svcName); err != nil {
		c.JSON(integrationErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "integration disconnected"})
}

// ListIntegrations godoc
// @Summary List connected services
// @Tags integrations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} integration.Integration "Integrations retrieved successfully"
// @Router /api/integrations [get]
func (h *IntegrationHandler) ListIntegrations(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	items, err := h.service.ListIntegrations(c.Request.Context(), userID)
	if err != nil {
		c.JSON(integrationErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// GetGitHubActivity godoc
// @Summary Get GitHub activity
// @Description Recent events and repositories for the connected GitHub account
// @Tags integrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} integration.GitHubActivity "Activity retrieved successfully"
// @Failure 502 {object} map[string]string "GitHub connection needs reconnect"
// @Router /api/integrations/github/activity [get]
func (h *IntegrationHandler) GetGitHubActivity(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	activity, err := h.service.GetGitHubActivity(c.Request.Context(), userID)
	if err != nil {
		c.JSON(integrationErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": activity})
}

// GetRepoCommits godoc
// @Summary Get commits for a repository
// @Tags integrations
// @Produce json
// @Security BearerAuth
// @Param owner path string true "Repository owner"
// @Param repo path string true "Repository name"
// @Param since query string false "Only commits after this time (RFC3339)"
// @Success 200 {array} integration.GitHubCommit "Commits retrieved successfully"
// @Router /api/integrations/github/repos/{owner}/{repo}/commits [get]
func (h *IntegrationHandler) GetRepoCommits(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	since := time.Now().AddDate(0, 0, -7)
	if sinceStr := c.Query("since"); sinceStr != "" {
		parsed, err := time.Parse(time.RFC3339, sinceStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid since parameter"})
			return
		}
		since = parsed
	}

	repoFullName := c.Param("owner") + "/" + c.Param("repo")
	commits, err := h.service.GetRepoCommits(c.Request.Context(), userID, repoFullName, since)
	if err != nil {
		c.JSON(integrationErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": commits})
}

// SyncFromCalendar godoc
// @Summary Import today's calendar events as tasks
// @Tags integrations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} task.Task "Imported tasks"
// @Failure 502 {object} map[string]string "Calendar connection needs reconnect"
// @Router /api/integrations/calendar/sync [post]
func (h *IntegrationHandler) SyncFromCalendar(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	imported, err := h.service.SyncFromCalendar(c.Request.Context(), userID)
	if err != nil {
		c.JSON(integrationErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": imported})
}

// PushTaskToCalendar godoc
// @Summary Push a task onto the calendar
// @Description Create a calendar event spanning the hour before the task's due date
// @Tags integrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PushTaskRequest true "Task to push"
// @Success 200 {object} map[string]string "Event created"
// @Router /api/integrations/calendar/push [post]
func (h *IntegrationHandler) PushTaskToCalendar(c *gin.Context) {
	req, ok := bindRequest[dto.PushTaskRequest](c)
	if !ok {
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	taskID, err := uuid.Parse(req.TaskID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	t, err := h.tasks.GetTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(taskErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	eventID, err := h.service.PushTaskToCalendar(c.Request.Context(), userID, t)
	if err != nil {
		c.JSON(integrationErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"event_id": eventID}})
}
