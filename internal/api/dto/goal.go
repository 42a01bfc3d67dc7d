package dto

import "time"

// CreateGoalRequest represents the request body for creating a goal
type CreateGoalRequest struct {
	Title       string     `json:"title" binding:"required" validate:"not_empty"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty" example:"high"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	LinkedRepos []string   `json:"linked_repos,omitempty"`
}

// UpdateGoalRequest represents the request body for updating a goal
type UpdateGoalRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty"`
	Priority    *string    `json:"priority,omitempty"`
	TargetDate  *time.Time `json:"target_date,omitempty"`
	LinkedRepos []string   `json:"linked_repos,omitempty"`
}
