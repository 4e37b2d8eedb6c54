package service

import (
	"context"

	"github.com/google/uuid"

	"casenotes/internal/casenote/events"
	"casenotes/internal/casenote/metrics"
	"casenotes/internal/casenote/models"
	"casenotes/internal/policy"
	dErrors "casenotes/pkg/domain-errors"
)

// Amend appends text to an existing note. Earlier amendments are never
// replaced.
func (s *Service) Amend(ctx context.Context, caller models.Caller, personID string, id models.NoteID, req models.AmendRequest) (note *models.CaseNote, err error) {
	ctx, span := s.startSpan(ctx, "casenote.Amend", personID)
	defer func() { endSpan(span, err) }()

	if err := validateText(req.Text); err != nil {
		return nil, err
	}

	switch id.Kind() {
	case models.KindLegacy:
		legacyID, _ := id.Legacy()
		return s.amendInLegacy(ctx, caller, personID, legacyID, req)
	case models.KindLocal:
		localID, _ := id.Local()
		return s.amendLocal(ctx, caller, personID, localID, req)
	default:
		return nil, dErrors.New(dErrors.CodeBadRequest, "invalid case note id")
	}
}

func (s *Service) amendLocal(ctx context.Context, caller models.Caller, personID string, id uuid.UUID, req models.AmendRequest) (*models.CaseNote, error) {
	existing, err := s.local.FindByID(ctx, id)
	if err != nil {
		return nil, localError(err)
	}
	if !existing.BelongsTo(personID) {
		return nil, dErrors.New(dErrors.CodeNotFound, "case note not found")
	}

	ref, err := s.catalog.FindSubType(ctx, existing.Type, existing.SubType)
	if err != nil {
		return nil, err
	}
	if ref.RestrictedUse && !policy.CanCreateOrAmendRestricted(caller.Roles) {
		return nil, dErrors.New(dErrors.CodeForbidden, "caller may not amend restricted case notes")
	}

	amendment := models.Amendment{
		ID:             uuid.New(),
		CreatedAt:      s.clock(caller),
		AuthorUsername: caller.Username,
		AuthorName:     caller.DisplayName,
		AuthorUserID:   caller.UserID,
		Text:           req.Text,
	}

	var amended *models.CaseNote
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		amended, err = s.local.AddAmendment(txCtx, id, amendment)
		if err != nil {
			return err
		}
		return s.events.Publish(txCtx, noteEvent(events.TypeUpdated, amended, false, false))
	})
	if err != nil {
		return nil, localError(err)
	}
	amended.SortAmendments()

	if s.metrics != nil {
		s.metrics.IncrementAmended(metrics.RouteLocal)
	}
	s.logger.InfoContext(ctx, "case note amended",
		"person_id", personID,
		"case_note_id", amended.ID.String(),
		"amendments", len(amended.Amendments),
	)
	return amended, nil
}

func (s *Service) amendInLegacy(ctx context.Context, caller models.Caller, personID string, legacyID int64, req models.AmendRequest) (*models.CaseNote, error) {
	var amended *models.LegacyCaseNote
	err := s.callLegacy(ctx, legacyOpAmend, func(ctx context.Context) error {
		var err error
		amended, err = s.legacy.AmendNote(ctx, personID, legacyID, models.LegacyAmendRequest{
			Text:           req.Text,
			AuthorUsername: caller.Username,
		})
		return err
	})
	if err != nil {
		return nil, legacyError(err)
	}

	note := models.FromLegacy(*amended)
	if s.metrics != nil {
		s.metrics.IncrementAmended(metrics.RouteLegacy)
	}
	return &note, nil
}
