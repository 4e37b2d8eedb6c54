package models

import "time"

// LegacyCaseNote is a case note as returned by the legacy system.
type LegacyCaseNote struct {
	ID                 int64
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
	Amendments         []LegacyAmendment
}

type LegacyAmendment struct {
	CreatedAt      time.Time
	AuthorUsername string
	AuthorName     string
	AuthorUserID   string
	Text           string
}

// LegacyCreateRequest is a note creation delegated to the legacy system.
type LegacyCreateRequest struct {
	Type           string
	SubType        string
	OccurredAt     time.Time
	Text           string
	LocationID     string
	AuthorUsername string
}

// LegacyAmendRequest is an amendment delegated to the legacy system.
type LegacyAmendRequest struct {
	Text           string
	AuthorUsername string
}

// FromLegacy converts a legacy note into the unified shape.
func FromLegacy(l LegacyCaseNote) CaseNote {
	legacyID := l.ID
	note := CaseNote{
		ID:                 NewLegacyID(l.ID),
		PersonIdentifier:   l.PersonIdentifier,
		Type:               l.Type,
		TypeDescription:    l.TypeDescription,
		SubType:            l.SubType,
		SubTypeDescription: l.SubTypeDescription,
		Source:             l.Source,
		Text:               l.Text,
		LocationID:         l.LocationID,
		AuthorUsername:     l.AuthorUsername,
		AuthorName:         l.AuthorName,
		AuthorUserID:       l.AuthorUserID,
		OccurredAt:         l.OccurredAt,
		CreatedAt:          l.CreatedAt,
		LegacyID:           &legacyID,
	}
	if len(l.Amendments) > 0 {
		note.Amendments = make([]Amendment, 0, len(l.Amendments))
		for _, a := range l.Amendments {
			note.Amendments = append(note.Amendments, Amendment{
				CreatedAt:      a.CreatedAt,
				AuthorUsername: a.AuthorUsername,
				AuthorName:     a.AuthorName,
				AuthorUserID:   a.AuthorUserID,
				Text:           a.Text,
			})
		}
		note.SortAmendments()
	}
	return note
}
