package domain

import "time"

// TimelineEventType represents the type of a timeline event.
type TimelineEventType string

// Timeline event types.
const (
	EventTypeCreated            TimelineEventType = "created"
	EventTypeStatusChanged      TimelineEventType = "status_change"
	EventTypeComment            TimelineEventType = "comment"
	EventTypeRunbookStepApplied TimelineEventType = "runbook_step"
)

// IsValid checks if the event type is valid.
func (t TimelineEventType) IsValid() bool {
	switch t {
	case EventTypeCreated, EventTypeStatusChanged, EventTypeComment, EventTypeRunbookStepApplied:
		return true
	}
	return false
}

// TimelineEvent is an immutable record of something that happened to an
// incident. Events are append-only: there is no update or delete.
// Ordering is by created_at ascending, ties broken by insertion order.
type TimelineEvent struct {
	ID         string            `json:"id"`
	IncidentID string            `json:"incident_id"`
	Type       TimelineEventType `json:"type"`
	Body       string            `json:"body"`
	CreatedBy  *string           `json:"created_by,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}
