package analysis

import (
	"time"

	"github.com/Pycomet/grindproof-sub001/internal/domain/evidence"
	"github.com/Pycomet/grindproof-sub001/internal/domain/pattern"
	"github.com/google/uuid"
)

// TaskStats summarizes a user's tasks at a point in time.
type TaskStats struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Pending        int     `json:"pending"`
	Skipped        int     `json:"skipped"`
	Overdue        int     `json:"overdue"`
	DueThisWeek    int     `json:"due_this_week"`
	DueNextWeek    int     `json:"due_next_week"`
	CompletedLate  int     `json:"completed_late"`
	CompletionRate float64 `json:"completion_rate"`
}

// GoalStats summarizes a user's goals, including per-goal task completion.
type GoalStats struct {
	Total              int                   `json:"total"`
	Active             int                   `json:"active"`
	Completed          int                   `json:"completed"`
	Paused             int                   `json:"paused"`
	HighPriorityActive int                   `json:"high_priority_active"`
	GoalsUnder50       int                   `json:"goals_under_50"`
	CreatedThisWeek    int                   `json:"created_this_week"`
	CompletionRate     float64               `json:"completion_rate"`
	GoalCompletion     map[uuid.UUID]float64 `json:"goal_completion"`
}

// EvidenceStats summarizes proof submissions across a user's tasks.
type EvidenceStats struct {
	Total    int                           `json:"total"`
	ThisWeek int                           `json:"this_week"`
	ByType   map[evidence.EvidenceType]int `json:"by_type"`
}

// DetectedPattern is a behavioral pattern found by the detection rules.
// It is transient; persisting detections goes through the pattern service.
type DetectedPattern struct {
	Type        pattern.PatternType `json:"type"`
	Description string              `json:"description"`
	Confidence  float64             `json:"confidence"`
	Evidence    []string            `json:"evidence,omitempty"`
}

// UserAnalysis is the full behavioral snapshot for one user.
type UserAnalysis struct {
	UserID       uuid.UUID         `json:"user_id"`
	TaskStats    TaskStats         `json:"task_stats"`
	GoalStats    GoalStats         `json:"goal_stats"`
	TaskPatterns []DetectedPattern `json:"task_patterns"`
	GoalPatterns []DetectedPattern `json:"goal_patterns"`
	Evidence     EvidenceStats     `json:"evidence"`
	GeneratedAt  time.Time         `json:"generated_at"`
}

// WeekStart returns midnight at the start of the calendar week containing t.
// Weeks start on Sunday.
func WeekStart(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(midnight.Weekday()))
}
