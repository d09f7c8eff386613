// Package events publishes domain events (match found, match accepted,
// office-day reminders) to the notification pipeline.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types carried on the notification topic.
const (
	EventMatchFound    = "match.found"
	EventMatchAccepted = "match.accepted"
	EventReminderDue   = "reminder.office_day"
)

const eventSource = "pulse-match-service"

// Event is the envelope published for every notification-worthy change.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// NewEvent builds an envelope with a fresh ID and timestamp.
func NewEvent(eventType string, data interface{}) *Event {
	return &Event{
		ID:        uuid.New().String(),
		Type:      eventType,
		Source:    eventSource,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}
}

// EventPublisher abstracts the outbound event bus.
type EventPublisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}
