package handlers

import (
	"errors"
	"net/http"

	"github.com/Pycomet/grindproof-sub001/internal/api/middleware"
	"github.com/Pycomet/grindproof-sub001/internal/domain/pattern"
	"github.com/gin-gonic/gin"
)

// PatternHandler handles HTTP requests for detected behavioral patterns
type PatternHandler struct {
	service pattern.Service
}

// NewPatternHandler creates a new PatternHandler instance
func NewPatternHandler(service pattern.Service) *PatternHandler {
	return &PatternHandler{service: service}
}

func patternErrStatus(err error) int {
	switch {
	case errors.Is(err, pattern.ErrPatternNotFound):
		return http.StatusNotFound
	case errors.Is(err, pattern.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// ListPatterns godoc
// @Summary List the authenticated user's detected patterns
// @Tags patterns
// @Produce json
// @Security BearerAuth
// @Success 200 {array} pattern.Pattern "Patterns retrieved successfully"
// @Router /api/patterns [get]
func (h *PatternHandler) ListPatterns(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	patterns, err := h.service.GetPatterns(c.Request.Context(), userID)
	if err != nil {
		c.JSON(patternErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": patterns})
}

// GetPatternByType godoc
// @Summary Get the user's pattern of a given type
// @Tags patterns
// @Produce json
// @Security BearerAuth
// @Param type path string true "Pattern type" example:"procrastination"
// @Success 200 {object} pattern.Pattern "Pattern retrieved successfully"
// @Failure 404 {object} map[string]string "No pattern of this type"
// @Router /api/patterns/{type} [get]
func (h *PatternHandler) GetPatternByType(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	p, err := h.service.GetPatternByType(c.Request.Context(), userID, pattern.PatternType(c.Param("type")))
	if err != nil {
		c.JSON(patternErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": p})
}

// DeletePattern godoc
// @Summary Delete the user's pattern of a given type
// @Tags patterns
// @Produce json
// @Security BearerAuth
// @Param type path string true "Pattern type" example:"procrastination"
// @Success 200 {object} map[string]string "Pattern deleted successfully"
// @Router /api/patterns/{type} [delete]
func (h *PatternHandler) DeletePattern(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	p, err := h.service.GetPatternByType(c.Request.Context(), userID, pattern.PatternType(c.Param("type")))
	if err != nil {
		c.JSON(patternErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	if err := h.service.DeletePattern(c.Request.Context(), p.ID); err != nil {
		c.JSON(patternErrStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "pattern deleted"})
}
