package dto

import "github.com/google/uuid"

// CreateEvidenceRequest represents the request body for submitting evidence
type CreateEvidenceRequest struct {
	TaskID  *uuid.UUID `json:"task_id,omitempty"`
	Type    string     `json:"type" binding:"required" example:"screenshot"`
	Content string     `json:"content" binding:"required" validate:"not_empty"`
}

// ValidateEvidenceRequest represents the request body for recording an AI validation verdict
type ValidateEvidenceRequest struct {
	Validated bool   `json:"validated"`
	Notes     string `json:"notes,omitempty"`
}
