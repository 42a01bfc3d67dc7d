package handlers

import (
	"errors"
	"net/http"

	"github.com/Pycomet/grindproof-sub001/internal/api/dto"
	"github.com/Pycomet/grindproof-sub001/internal/domain/evidence"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EvidenceHandler handles HTTP requests for evidence operations
type EvidenceHandler struct {
	service evidence.Service
}

// NewEvidenceHandler creates a new EvidenceHandler instance
func NewEvidenceHandler(service evidence.Service) *EvidenceHandler {
	return &EvidenceHandler{service: service}
}

func evidenceErrStatus(err error) int {
	switch {
	case errors.Is(err, evidence.ErrEvidenceNotFound):
		return http.StatusNotFound
	case errors.Is(err, evidence.ErrEvidenceAccessDenied):
		return http.StatusForbidden
	case errors.Is(err, evidence.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// SubmitEvidence godoc
// @Summary Submit evidence
// @Description Attach evidence to a task, or record free-standing evidence
// @Tags evidence
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param evidence body dto.CreateEvidenceRequest true "Evidence submission request"
// @Success 201 {object} evidence.Evidence "Evidence submitted successfully"
// @Failure 400 {object} map[string]string "Invalid request"
// @Router /api/evidence [post]
func (h *EvidenceHandler) SubmitEvidence(c *gin.Context) {
	req, ok := bindRequest[dto.CreateEvidenceRequest](c)
	if !ok {
		return
	}

	evType := evidence.EvidenceType(req.Type)
	if !evType.IsValid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid evidence type"})
		return
	}

	created, err := h.service.SubmitEvidence(c.Request.Context(), evidence.SubmitEvidenceInput{
		TaskID:  req.TaskID,
		Type:    evType,
		Content: req.Content,
	})
	if err != nil {
		c.JSON(evidenceErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": created})
}

// GetEvidence godoc
// @Summary Get evidence by ID
// @Tags evidence
// @Produce json
// @Security BearerAuth
// @Param id path string true "Evidence ID" format(uuid)
// @Success 200 {object} evidence.Evidence "Evidence retrieved successfully"
// @Failure 404 {object} map[string]string "Evidence not found"
// @Router /api/evidence/{id} [get]
func (h *EvidenceHandler) GetEvidence(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid evidence ID"})
		return
	}

	ev, err := h.service.GetEvidence(c.Request.Context(), id)
	if err != nil {
		c.JSON(evidenceErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ev})
}

// ListByTask godoc
// @Summary List evidence for a task
// @Tags evidence
// @Produce json
// @Security BearerAuth
// @Param id path string true "Task ID" format(uuid)
// @Success 200 {array} evidence.Evidence "Evidence retrieved successfully"
// @Router /api/tasks/{id}/evidence [get]
func (h *EvidenceHandler) ListByTask(c *gin.Context) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	items, err := h.service.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		c.JSON(evidenceErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items})
}

// ValidateEvidence godoc
// @Summary Record a validation verdict on evidence
// @Tags evidence
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Evidence ID" format(uuid)
// @Param request body dto.ValidateEvidenceRequest true "Validation verdict"
// @Success 200 {object} evidence.Evidence "Evidence validated successfully"
// @Router /api/evidence/{id}/validate [post]
func (h *EvidenceHandler) ValidateEvidence(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid evidence ID"})
		return
	}

	req, ok := bindRequest[dto.ValidateEvidenceRequest](c)
	if !ok {
		return
	}

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	ev, err := h.service.MarkValidated(c.Request.Context(), id, notes)
	if err != nil {
		c.JSON(evidenceErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ev})
}

// DeleteEvidence godoc
// @Summary Delete evidence
// @Tags evidence
// @Produce json
// @Security BearerAuth
// @Param id path string true "Evidence ID" format(uuid)
// @Success 200 {object} map[string]string "Evidence deleted successfully"
// @Router /api/evidence/{id} [delete]
func (h *EvidenceHandler) DeleteEvidence(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid evidence ID"})
		return
	}

	if err := h.service.DeleteEvidence(c.Request.Context(), id); err != nil {
		c.JSON(evidenceErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "evidence deleted"})
}
