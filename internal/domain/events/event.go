package events

import (
	"time"

	"github.com/google/uuid"
)

// Analysis event types
const (
	EventTypeTaskUpdate     = "task_update"
	EventTypeGoalUpdate     = "goal_update"
	EventTypeEvidenceUpdate = "evidence_update"
	EventTypeScoreUpdate    = "score_update"
	EventTypePatternUpdate  = "pattern_update"
)

// AnalysisEvent signals that a user's cached analysis is stale.
type AnalysisEvent struct {
	EventType string      `json:"event_type"`
	UserID    uuid.UUID   `json:"user_id"`
	EntityID  uuid.UUID   `json:"entity_id"`
	Timestamp time.Time   `json:"timestamp"`
	Details   interface{} `json:"details,omitempty"`
}

// Standard analysis event actions
const (
	AnalysisEventCacheInvalidate = "cache_invalidate"
	AnalysisEventRoastReady      = "roast_ready"
)
