package models

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SourceLocal tags notes written by this service.
const SourceLocal = "LOCAL"

// MaxTextLength bounds note and amendment text, matching the legacy system's column size.
const MaxTextLength = 4000

// CaseNote is one entry of a person's case note timeline, owned by exactly one
// store. The kind of ID tells which.
type CaseNote struct {
	ID                 NoteID
	PersonIdentifier   string
	Type               string
	TypeDescription    string
	SubType            string
	SubTypeDescription string
	Source             string
	Text               string
	LocationID         string
	AuthorUsername     string
	AuthorName         string
	AuthorUserID       string
	OccurredAt         time.Time
	CreatedAt          time.Time
	ModifiedAt         time.Time
	Sensitive          bool
	SystemGenerated    bool
	// LegacyID is set when the note is mirrored into the legacy system's id space.
	LegacyID *int64
	// Sequence is generated by the local store on insert.
	Sequence   int64
	Amendments []Amendment
}

// Amendment is an append-only addition to a case note.
type Amendment struct {
	ID             uuid.UUID
	CreatedAt      time.Time
	AuthorUsername string
	AuthorName     string
	AuthorUserID   string
	Text           string
}

// SortAmendments orders amendments oldest first, keeping storage order for equal timestamps.
func (n *CaseNote) SortAmendments() {
	slices.SortStableFunc(n.Amendments, func(a, b Amendment) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
}

// IsLocal reports whether the note is owned by the local store.
func (n *CaseNote) IsLocal() bool {
	return n.ID.Kind() == KindLocal
}

// BelongsTo reports whether the note is on the given person's timeline.
// Person identifiers are compared case-insensitively.
func (n *CaseNote) BelongsTo(personID string) bool {
	return strings.EqualFold(n.PersonIdentifier, personID)
}

// Caller is the authenticated actor of one operation.
type Caller struct {
	Username    string
	UserID      string
	DisplayName string
	Roles       []string
	RequestTime time.Time
}

// CreateRequest carries the fields a caller supplies for a new note.
type CreateRequest struct {
	Type            string
	SubType         string
	OccurredAt      *time.Time
	Text            string
	LocationID      string
	SystemGenerated bool
}

// AmendRequest carries the text appended to an existing note.
type AmendRequest struct {
	Text string
}
