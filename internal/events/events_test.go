package events

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewEvent(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600))
	e := NewEvent(TypeShiftUpdated, now)

	if _, err := uuid.Parse(e.ID); err != nil {
		t.Errorf("NewEvent() ID %q is not a UUID: %v", e.ID, err)
	}
	if e.Type != TypeShiftUpdated {
		t.Errorf("NewEvent() Type = %q, want %q", e.Type, TypeShiftUpdated)
	}
	if e.Timestamp.Location() != time.UTC || !e.Timestamp.Equal(now) {
		t.Errorf("NewEvent() Timestamp = %v, want %v in UTC", e.Timestamp, now)
	}
	if other := NewEvent(TypeShiftUpdated, now); other.ID == e.ID {
		t.Error("NewEvent() should generate distinct ids")
	}
}

func TestEvent_JSON(t *testing.T) {
	e := Event{
		ID:        "0b6f7a43-2f9d-4c1e-8a57-1f5b3f3e9d10",
		Type:      TypeShiftCreated,
		ShiftID:   1704106800000,
		Year:      2024,
		Week:      1,
		Timestamp: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}

	data, err := e.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	parsed, err := EventFromJSON(data)
	if err != nil {
		t.Fatalf("EventFromJSON() error = %v", err)
	}
	if !parsed.Timestamp.Equal(e.Timestamp) {
		t.Errorf("Parsed Timestamp = %v, want %v", parsed.Timestamp, e.Timestamp)
	}
	parsed.Timestamp = e.Timestamp
	if parsed != e {
		t.Errorf("EventFromJSON() = %+v, want %+v", parsed, e)
	}
}

func TestEvent_OmitsEmptyFields(t *testing.T) {
	data, err := NewEvent(TypeSettingsUpdated, time.Now()).ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}
	for _, field := range []string{"shiftId", "year", "week", "shiftCount"} {
		if strings.Contains(string(data), `"`+field+`"`) {
			t.Errorf("ToJSON() = %s, should omit %s", data, field)
		}
	}
}

func TestEventFromJSON_Invalid(t *testing.T) {
	if _, err := EventFromJSON([]byte(`{"shiftId": "not_a_number"}`)); err == nil {
		t.Error("EventFromJSON() should fail with invalid JSON")
	}
}

func TestNop(t *testing.T) {
	var p Publisher = Nop{}
	if err := p.Publish(context.Background(), NewEvent(TypeBackupImported, time.Now())); err != nil {
		t.Errorf("Nop.Publish() error = %v", err)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Nop.Close() error = %v", err)
	}
}
