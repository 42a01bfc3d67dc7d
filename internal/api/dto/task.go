package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required" validate:"not_empty"`
	Description string     `json:"description,omitempty"`
	GoalID      *uuid.UUID `json:"goal_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Recurrence  *string    `json:"recurrence,omitempty"`
}

// UpdateTaskRequest represents the request body for updating a task
type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	GoalID      *uuid.UUID `json:"goal_id,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	Recurrence  *string    `json:"recurrence,omitempty"`
}

// CompleteTaskRequest represents the optional proof attached when completing a task
type CompleteTaskRequest struct {
	Proof *string `json:"proof,omitempty"`
}

// RescheduleTaskRequest represents the request body for moving a task's due date
type RescheduleTaskRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

// TaskFilterRequest represents the query parameters for filtering tasks
type TaskFilterRequest struct {
	GoalID   string `form:"goal_id"`
	Status   string `form:"status" example:"pending"`
	DueStart string `form:"due_start" example:"2026-03-09T00:00:00Z"`
	DueEnd   string `form:"due_end" example:"2026-03-16T00:00:00Z"`
	Search   string `form:"search"`
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"20"`
}
