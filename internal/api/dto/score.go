package dto

import "time"

// CreateScoreRequest represents the request body for recording a weekly score
type CreateScoreRequest struct {
	WeekStart          time.Time `json:"week_start" binding:"required"`
	AlignmentScore     *float64  `json:"alignment_score,omitempty"`
	HonestyScore       *float64  `json:"honesty_score,omitempty"`
	CompletionScore    *float64  `json:"completion_score,omitempty"`
	NewProjectsStarted int       `json:"new_projects_started,omitempty"`
	EvidenceSubmitted  int       `json:"evidence_submitted,omitempty"`
	Insights           []string  `json:"insights,omitempty"`
	Recommendations    []string  `json:"recommendations,omitempty"`
	WeekSummary        *string   `json:"week_summary,omitempty"`
}

// UpdateScoreRequest represents the request body for amending a weekly score
type UpdateScoreRequest struct {
	AlignmentScore     *float64 `json:"alignment_score,omitempty"`
	HonestyScore       *float64 `json:"honesty_score,omitempty"`
	CompletionScore    *float64 `json:"completion_score,omitempty"`
	NewProjectsStarted *int     `json:"new_projects_started,omitempty"`
	EvidenceSubmitted  *int     `json:"evidence_submitted,omitempty"`
	Insights           []string `json:"insights,omitempty"`
	Recommendations    []string `json:"recommendations,omitempty"`
	WeekSummary        *string  `json:"week_summary,omitempty"`
}
