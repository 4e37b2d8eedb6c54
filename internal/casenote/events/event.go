// Package events records case note changes in a transactional outbox and
// relays them to the message broker once the owning transaction commits.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Type is the kind of change an event describes.
type Type string

const (
	TypeCreated Type = "CREATED"
	TypeUpdated Type = "UPDATED"
)

// Event describes one change to a case note.
type Event struct {
	Type             Type      `json:"eventType"`
	PersonIdentifier string    `json:"personIdentifier"`
	NoteID           string    `json:"caseNoteId"`
	LegacyID         *int64    `json:"legacyId,omitempty"`
	TypeCode         string    `json:"type"`
	SubTypeCode      string    `json:"subType"`
	Source           string    `json:"source"`
	SyncedToLegacy   bool      `json:"syncToLegacy"`
	SoftDeleted      bool      `json:"softDeleted,omitempty"`
	OccurredAt       time.Time `json:"occurredAt"`
}

// Record is an event as stored in the outbox.
type Record struct {
	ID          uuid.UUID
	EventType   Type
	AggregateID string
	Payload     []byte
	CreatedAt   time.Time
}

// NewRecord serialises an event into an outbox record.
func NewRecord(e Event, now time.Time) (Record, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return Record{}, fmt.Errorf("marshal case note event: %w", err)
	}
	return Record{
		ID:          uuid.New(),
		EventType:   e.Type,
		AggregateID: e.NoteID,
		Payload:     payload,
		CreatedAt:   now,
	}, nil
}

// Decode reads the event carried by a record.
func (r Record) Decode() (Event, error) {
	var e Event
	if err := json.Unmarshal(r.Payload, &e); err != nil {
		return Event{}, fmt.Errorf("unmarshal case note event %s: %w", r.ID, err)
	}
	return e, nil
}
