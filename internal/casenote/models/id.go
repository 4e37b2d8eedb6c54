package models

import (
	"strconv"

	"github.com/google/uuid"

	dErrors "casenotes/pkg/domain-errors"
)

// NoteKind identifies which store owns a case note.
type NoteKind uint8

const (
	// KindLocal notes live in this service's store and are addressed by UUID.
	KindLocal NoteKind = iota + 1
	// KindLegacy notes live in the legacy system and are addressed by a numeric id.
	KindLegacy
)

func (k NoteKind) String() string {
	switch k {
	case KindLocal:
		return "local"
	case KindLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// NoteID is a case note identifier tagged with its owning store. The zero value
// is not a valid identifier.
type NoteID struct {
	kind   NoteKind
	local  uuid.UUID
	legacy int64
}

// NewLocalID tags a UUID as a local note identifier.
func NewLocalID(id uuid.UUID) NoteID {
	return NoteID{kind: KindLocal, local: id}
}

// NewLegacyID tags a numeric id as a legacy note identifier.
func NewLegacyID(id int64) NoteID {
	return NoteID{kind: KindLegacy, legacy: id}
}

// ParseNoteID classifies a raw identifier by shape: a string made only of
// decimal digits is a legacy id, anything else must be a UUID.
func ParseNoteID(raw string) (NoteID, error) {
	if isDigits(raw) {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return NoteID{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid case note identifier")
		}
		return NewLegacyID(n), nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return NoteID{}, dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid case note identifier")
	}
	return NewLocalID(id), nil
}

func (id NoteID) Kind() NoteKind {
	return id.kind
}

// Local returns the UUID of a local note identifier.
func (id NoteID) Local() (uuid.UUID, bool) {
	return id.local, id.kind == KindLocal
}

// Legacy returns the numeric id of a legacy note identifier.
func (id NoteID) Legacy() (int64, bool) {
	return id.legacy, id.kind == KindLegacy
}

func (id NoteID) IsZero() bool {
	return id.kind == 0
}

func (id NoteID) String() string {
	switch id.kind {
	case KindLocal:
		return id.local.String()
	case KindLegacy:
		return strconv.FormatInt(id.legacy, 10)
	default:
		return ""
	}
}

func (id NoteID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *NoteID) UnmarshalText(text []byte) error {
	parsed, err := ParseNoteID(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
