package dto

import "time"

// ConnectIntegrationRequest represents the request body for connecting an external service
type ConnectIntegrationRequest struct {
	Service      string     `json:"service" binding:"required" example:"github"`
	AccessToken  string     `json:"access_token" binding:"required"`
	RefreshToken string     `json:"refresh_token,omitempty"`
	ExpiresAt    *time.Time `json:"expires_at,omitempty"`
	AccountLogin string     `json:"account_login,omitempty"`
}

// PushTaskRequest represents the request body for pushing a task onto the calendar
type PushTaskRequest struct {
	TaskID string `json:"task_id" binding:"required" validate:"valid_uuid"`
}
