package pattern

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PatternType string

const (
	PatternProcrastination          PatternType = "procrastination"
	PatternTaskSkipping             PatternType = "task_skipping"
	PatternOvercommitment           PatternType = "overcommitment"
	PatternVaguePlanning            PatternType = "vague_planning"
	PatternNewProjectAddiction      PatternType = "new_project_addiction"
	PatternGoalAbandonment          PatternType = "goal_abandonment"
	PatternPlanningWithoutExecution PatternType = "planning_without_execution"
)

// AllPatternTypes lists every recognized behavioral pattern.
var AllPatternTypes = []PatternType{
	PatternProcrastination,
	PatternTaskSkipping,
	PatternOvercommitment,
	PatternVaguePlanning,
	PatternNewProjectAddiction,
	PatternGoalAbandonment,
	PatternPlanningWithoutExecution,
}

func (t PatternType) IsValid() bool {
	for _, known := range AllPatternTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Pattern is a detected behavioral pattern. At most one row exists per
// (user_id, pattern_type); repeat detections bump the occurrence counter.
type Pattern struct {
	ID            uuid.UUID   `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID        uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_pattern_user_type"`
	PatternType   PatternType `json:"pattern_type" gorm:"not null;uniqueIndex:idx_pattern_user_type"`
	Description   string      `json:"description"`
	Confidence    float64     `json:"confidence" gorm:"not null;default:0"`
	Occurrences   int         `json:"occurrences" gorm:"not null;default:1"`
	FirstDetected time.Time   `json:"first_detected" gorm:"not null;default:current_timestamp"`
	LastOccurred  time.Time   `json:"last_occurred" gorm:"not null;default:current_timestamp"`
}

func (Pattern) TableName() string {
	return "patterns"
}

func (p *Pattern) Validate() error {
	if p.UserID == uuid.Nil || !p.PatternType.IsValid() {
		return ErrInvalidInput
	}
	if p.Confidence < 0 || p.Confidence > 1 {
		return ErrInvalidInput
	}
	return nil
}

func (p *Pattern) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	if p.FirstDetected.IsZero() {
		p.FirstDetected = now
	}
	if p.LastOccurred.IsZero() {
		p.LastOccurred = now
	}
	if p.Occurrences == 0 {
		p.Occurrences = 1
	}
	return p.Validate()
}
