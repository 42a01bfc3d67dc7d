package score

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoastMetadata carries the check-in context attached to a weekly score row.
type RoastMetadata struct {
	Reflections  []string `json:"reflections,omitempty"`
	EvidenceURLs []string `json:"evidenceUrls,omitempty"`
	CheckInType  string   `json:"checkInType,omitempty"`
	CompletedAt  string   `json:"completedAt,omitempty"`
}

// AccountabilityScore is the weekly scorecard for a user. At most one row
// exists per (user_id, week_start), enforced by a unique index.
type AccountabilityScore struct {
	ID                 uuid.UUID                          `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID             uuid.UUID                          `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_score_user_week"`
	WeekStart          time.Time                          `json:"week_start" gorm:"not null;uniqueIndex:idx_score_user_week"`
	AlignmentScore     *float64                           `json:"alignment_score,omitempty"`
	HonestyScore       *float64                           `json:"honesty_score,omitempty"`
	CompletionScore    *float64                           `json:"completion_score,omitempty"`
	NewProjectsStarted int                                `json:"new_projects_started" gorm:"not null;default:0"`
	EvidenceSubmitted  int                                `json:"evidence_submissions" gorm:"not null;default:0"`
	Insights           pq.StringArray                     `json:"insights" gorm:"type:text[]"`
	Recommendations    pq.StringArray                     `json:"recommendations" gorm:"type:text[]"`
	WeekSummary        *string                            `json:"week_summary,omitempty"`
	RoastMetadata      datatypes.JSONType[RoastMetadata]  `json:"roast_metadata" gorm:"type:jsonb"`
	CreatedAt          time.Time                          `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt          time.Time                          `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

func (AccountabilityScore) TableName() string {
	return "accountability_scores"
}

// validScore checks an optional score value is inside [0, 1].
func validScore(v *float64) bool {
	return v == nil || (*v >= 0 && *v <= 1)
}

func (s *AccountabilityScore) Validate() error {
	if s.UserID == uuid.Nil || s.WeekStart.IsZero() {
		return ErrInvalidInput
	}
	if !validScore(s.AlignmentScore) || !validScore(s.HonestyScore) || !validScore(s.CompletionScore) {
		return ErrInvalidInput
	}
	return nil
}

func (s *AccountabilityScore) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return s.Validate()
}

func (s *AccountabilityScore) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now()
	return s.Validate()
}
