package integration

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ServiceName string

const (
	ServiceGitHub         ServiceName = "github"
	ServiceGoogleCalendar ServiceName = "google_calendar"
)

func (s ServiceName) IsValid() bool {
	return s == ServiceGitHub || s == ServiceGoogleCalendar
}

type IntegrationStatus string

const (
	StatusConnected      IntegrationStatus = "connected"
	StatusNeedsReconnect IntegrationStatus = "needs_reconnect"
)

// Integration stores a user's connection to an external service. At most one
// row exists per (user_id, service), enforced by a unique index.
type Integration struct {
	ID           uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID       uuid.UUID         `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_integration_user_service"`
	Service      ServiceName       `json:"service" gorm:"not null;uniqueIndex:idx_integration_user_service"`
	AccessToken  string            `json:"-" gorm:"not null"`
	RefreshToken string            `json:"-"`
	TokenExpiry  *time.Time        `json:"token_expiry,omitempty"`
	AccountLogin string            `json:"account_login"`
	Status       IntegrationStatus `json:"status" gorm:"not null;default:'connected'"`
	CreatedAt    time.Time         `json:"created_at" gorm:"not null;default:current_timestamp"`
	UpdatedAt    time.Time         `json:"updated_at" gorm:"not null;default:current_timestamp"`
}

func (Integration) TableName() string {
	return "integrations"
}

func (i *Integration) Validate() error {
	if i.UserID == uuid.Nil || !i.Service.IsValid() || i.AccessToken == "" {
		return ErrInvalidInput
	}
	return nil
}

func (i *Integration) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = StatusConnected
	}
	return i.Validate()
}

func (i *Integration) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return nil
}
