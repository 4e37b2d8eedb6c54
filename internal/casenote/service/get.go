package service

import (
	"context"
	"errors"

	"casenotes/internal/casenote/models"
	"casenotes/internal/policy"
	dErrors "casenotes/pkg/domain-errors"
	"casenotes/pkg/platform/sentinel"
)

// Get returns one note of personID. Legacy ids are answered by the legacy
// system alone and local ids by the local store alone.
func (s *Service) Get(ctx context.Context, caller models.Caller, personID string, id models.NoteID) (note *models.CaseNote, err error) {
	ctx, span := s.startSpan(ctx, "casenote.Get", personID)
	defer func() { endSpan(span, err) }()

	switch id.Kind() {
	case models.KindLegacy:
		legacyID, _ := id.Legacy()
		return s.getFromLegacy(ctx, personID, legacyID)
	case models.KindLocal:
		localID, _ := id.Local()
		found, err := s.local.FindByID(ctx, localID)
		if err != nil {
			return nil, localError(err)
		}
		return s.visibleTo(caller, personID, found)
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid case note id")
	}
}

// GetByLegacyID prefers a local note mirrored under legacyID and falls back to
// the legacy system.
func (s *Service) GetByLegacyID(ctx context.Context, caller models.Caller, personID string, legacyID int64) (note *models.CaseNote, err error) {
	ctx, span := s.startSpan(ctx, "casenote.GetByLegacyID", personID)
	defer func() { endSpan(span, err) }()

	mirrored, err := s.local.FindByLegacyID(ctx, legacyID)
	switch {
	case err == nil:
		return s.visibleTo(caller, personID, mirrored)
	case errors.Is(err, sentinel.ErrNotFound):
		return s.getFromLegacy(ctx, personID, legacyID)
	default:
		return nil, err
	}
}

func (s *Service) getFromLegacy(ctx context.Context, personID string, legacyID int64) (*models.CaseNote, error) {
	var found *models.LegacyCaseNote
	err := s.callLegacy(ctx, legacyOpGet, func(ctx context.Context) error {
		var err error
		found, err = s.legacy.GetNote(ctx, personID, legacyID)
		return err
	})
	if err != nil {
		return nil, legacyError(err)
	}
	note := models.FromLegacy(*found)
	return &note, nil
}

// visibleTo applies the read gates to a local note. A note of another person
// is reported as missing.
func (s *Service) visibleTo(caller models.Caller, personID string, note *models.CaseNote) (*models.CaseNote, error) {
	if !note.BelongsTo(personID) {
		return nil, dErrors.New(dErrors.CodeNotFound, "case note not found")
	}
	if note.Sensitive && !policy.CanViewSensitive(caller.Roles) {
		return nil, dErrors.New(dErrors.CodeForbidden, "caller may not view sensitive case notes")
	}
	note.SortAmendments()
	return note, nil
}
