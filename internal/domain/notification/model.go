package notification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	TypeRoastReady       NotificationType = "roast_ready"
	TypePatternDetected  NotificationType = "pattern_detected"
	TypeIntegrationAlert NotificationType = "integration_alert"
	TypeGeneral          NotificationType = "general"
)

// Notification is an in-app message row. Delivery beyond the API (push,
// email) is out of scope; clients poll their unread list.
type Notification struct {
	ID        uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	UserID    uuid.UUID        `json:"user_id" gorm:"type:uuid;not null;index:idx_notification_user"`
	Type      NotificationType `json:"type" gorm:"not null;default:'general'"`
	Title     string           `json:"title" gorm:"not null"`
	Body      string           `json:"body"`
	Read      bool             `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time        `json:"created_at" gorm:"not null;default:current_timestamp"`
}

func (Notification) TableName() string {
	return "notifications"
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.Type == "" {
		n.Type = TypeGeneral
	}
	if n.Title == "" || n.UserID == uuid.Nil {
		return ErrInvalidInput
	}
	return nil
}
