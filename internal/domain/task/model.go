package task

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusSkipped   TaskStatus = "skipped"
)

// IsValid checks if the task status is one of the allowed values
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusSkipped:
		return true
	}
	return false
}

// Task represents a user's tracked task
type Task struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID          uuid.UUID      `json:"user_id" gorm:"type:uuid;not null;index:idx_task_user"`
	GoalID          *uuid.UUID     `json:"goal_id,omitempty" gorm:"type:uuid;index:idx_task_goal"`
	Title           string         `json:"title" gorm:"not null"`
	Description     string         `json:"description"`
	Status          TaskStatus     `json:"status" gorm:"not null;default:'pending';index:idx_task_status"`
	DueDate         *time.Time     `json:"due_date,omitempty" gorm:"index:idx_task_due"`
	Proof           *string        `json:"proof,omitempty"`
	Tags            pq.StringArray `json:"tags,omitempty" gorm:"type:text[]"`
	CalendarEventID *string        `json:"calendar_event_id,omitempty" gorm:"index:idx_task_calendar_event"`
	Recurrence      *string        `json:"recurrence,omitempty"`
	CompletedAt     *time.Time     `json:"completed_at,omitempty"`
	CreatedAt       time.Time      `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt       time.Time      `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

func (Task) TableName() string {
	return "tasks"
}

// Validate performs basic validation of the task fields
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrInvalidInput
	}
	if t.UserID == uuid.Nil {
		return ErrInvalidInput
	}
	if !t.Status.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

// BeforeCreate is a GORM hook that runs before creating a task
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TaskStatusPending
	}
	return t.Validate()
}

// BeforeUpdate is a GORM hook that runs before updating a task
func (t *Task) BeforeUpdate(tx *gorm.DB) error {
	t.UpdatedAt = time.Now()
	return t.Validate()
}
