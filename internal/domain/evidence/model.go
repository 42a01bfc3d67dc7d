package evidence

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EvidenceType string

const (
	EvidenceTypePhoto      EvidenceType = "photo"
	EvidenceTypeScreenshot EvidenceType = "screenshot"
	EvidenceTypeText       EvidenceType = "text"
	EvidenceTypeLink       EvidenceType = "link"
)

func (t EvidenceType) IsValid() bool {
	switch t {
	case EvidenceTypePhoto, EvidenceTypeScreenshot, EvidenceTypeText, EvidenceTypeLink:
		return true
	}
	return false
}

// Evidence represents a proof-of-work submission, optionally linked to a task.
// Rows with a nil TaskID are orphans kept for audit history.
type Evidence struct {
	ID              uuid.UUID    `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TaskID          *uuid.UUID   `json:"task_id,omitempty" gorm:"type:uuid;index:idx_evidence_task"`
	Type            EvidenceType `json:"type" gorm:"not null"`
	Content         string       `json:"content" gorm:"not null"`
	SubmittedAt     time.Time    `json:"submitted_at" gorm:"not null;default:current_timestamp;index:idx_evidence_submitted"`
	AIValidated     bool         `json:"ai_validated" gorm:"not null;default:false"`
	ValidationNotes *string      `json:"validation_notes,omitempty"`
}

func (Evidence) TableName() string {
	return "evidence"
}

func (e *Evidence) Validate() error {
	if e.Content == "" || !e.Type.IsValid() {
		return ErrInvalidInput
	}
	return nil
}

func (e *Evidence) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.SubmittedAt.IsZero() {
		e.SubmittedAt = time.Now()
	}
	return e.Validate()
}
