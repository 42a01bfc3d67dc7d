package dto

// MorningPlanRequest carries the free-form plan text from the morning check-in
type MorningPlanRequest struct {
	PlanText string `json:"plan_text" binding:"required" validate:"not_empty"`
}

// ReflectionRequest carries the evening check-in reflections
type ReflectionRequest struct {
	Reflections  []string `json:"reflections" binding:"required"`
	EvidenceURLs []string `json:"evidence_urls,omitempty"`
	CheckInType  string   `json:"check_in_type,omitempty" example:"evening"`
}
