package models

import (
	"fmt"
	"strings"
	"time"
)

// EventType enumerates calendar event kinds.
type EventType string

const (
	EventTypeMeeting  EventType = "meeting"
	EventTypeDelivery EventType = "delivery"
	EventTypeReminder EventType = "reminder"
	EventTypeOther    EventType = "other"
)

// Valid reports whether t is one of the known event types.
func (t EventType) Valid() bool {
	switch t {
	case EventTypeMeeting, EventTypeDelivery, EventTypeReminder, EventTypeOther:
		return true
	}
	return false
}

// ParseEventType converts user input into an EventType. Empty input maps to
// EventTypeOther.
func ParseEventType(s string) (EventType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return EventTypeOther, nil
	}
	t := EventType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown event type %q", s)
	}
	return t, nil
}

// CalendarEvent is a dated entry on the owner's calendar.
type CalendarEvent struct {
	ID          string    `db:"id" json:"id"`
	OwnerID     string    `db:"user_id" json:"-"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description,omitempty"`
	Date        time.Time `db:"start_date" json:"date"`
	Type        EventType `db:"event_type" json:"type"`
	Color       *string   `db:"color" json:"color,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
	UpdatedAt   time.Time `db:"updated_at" json:"-"`
}

// EventInput is the request to create a calendar event.
type EventInput struct {
	Title       string    `json:"title" binding:"required"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date" binding:"required"`
	Type        string    `json:"type"`
	Color       *string   `json:"color"`
}

// EventPatch is a partial update of a calendar event.
type EventPatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Type        *EventType `json:"type"`
	Color       *string    `json:"color"`
}
