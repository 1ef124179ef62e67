// Package events announces tracker changes to interested consumers. Events
// are notifications only: they carry ids and week coordinates, never the
// shift data itself.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	TypeShiftCreated    = "shift.created"
	TypeShiftUpdated    = "shift.updated"
	TypeSettingsUpdated = "settings.updated"
	TypeBackupImported  = "backup.imported"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	ShiftID    int64     `json:"shiftId,omitempty"`
	Year       int       `json:"year,omitempty"`
	Week       int       `json:"week,omitempty"`
	ShiftCount int       `json:"shiftCount,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NewEvent creates an event of the given type with a fresh id.
func NewEvent(eventType string, now time.Time) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: now.UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON decodes an event published by a Client.
func EventFromJSON(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, err
	}
	return e, nil
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
