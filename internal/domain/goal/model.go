package goal

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GoalStatus string

const (
	GoalStatusActive    GoalStatus = "active"
	GoalStatusCompleted GoalStatus = "completed"
	GoalStatusPaused    GoalStatus = "paused"
)

func (s GoalStatus) IsValid() bool {
	switch s {
	case GoalStatusActive, GoalStatusCompleted, GoalStatusPaused:
		return true
	}
	return false
}

type GoalPriority string

const (
	GoalPriorityHigh   GoalPriority = "high"
	GoalPriorityMedium GoalPriority = "medium"
	GoalPriorityLow    GoalPriority = "low"
)

func (p GoalPriority) IsValid() bool {
	switch p {
	case GoalPriorityHigh, GoalPriorityMedium, GoalPriorityLow:
		return true
	}
	return false
}

// Goal represents a user's long-running objective
type Goal struct {
	ID          uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID      uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index:idx_goal_user"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	TargetDate  *time.Time     `json:"target_date,omitempty"`
	Status      GoalStatus     `json:"status" gorm:"not null;default:'active';index:idx_goal_status"`
	Priority    GoalPriority   `json:"priority" gorm:"not null;default:'medium'"`
	LinkedRepos pq.StringArray `json:"linked_repos,omitempty" gorm:"type:text[]"`
	CreatedAt   time.Time      `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt   time.Time      `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

func (Goal) TableName() string {
	return "goals"
}

func (g *Goal) Validate() error {
	if g.Title == "" || g.UserID == uuid.Nil {
		return ErrInvalidInput
	}
	if !g.Status.IsValid() || !g.Priority.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.Status == "" {
		g.Status = GoalStatusActive
	}
	if g.Priority == "" {
		g.Priority = GoalPriorityMedium
	}
	return g.Validate()
}

func (g *Goal) BeforeUpdate(tx *gorm.DB) error {
	g.UpdatedAt = time.Now()
	return g.Validate()
}
