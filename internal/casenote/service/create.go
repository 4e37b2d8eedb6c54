package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"casenotes/internal/casenote/events"
	"casenotes/internal/casenote/metrics"
	"casenotes/internal/casenote/models"
	"casenotes/internal/policy"
	dErrors "casenotes/pkg/domain-errors"
)

// Create records a new note for personID. Sub-types synced to the legacy
// system are created there and never touch the local store; all others are
// saved locally together with a CREATED event.
func (s *Service) Create(ctx context.Context, caller models.Caller, personID string, req models.CreateRequest) (note *models.CaseNote, err error) {
	ctx, span := s.startSpan(ctx, "casenote.Create", personID)
	defer func() { endSpan(span, err) }()

	if err := validateText(req.Text); err != nil {
		return nil, err
	}

	ref, err := s.catalog.FindSubType(ctx, req.Type, req.SubType)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("Unknown Case Note Type %s/%s", req.Type, req.SubType))
		}
		return nil, err
	}

	now := s.clock(caller)
	occurredAt := now
	if req.OccurredAt != nil {
		occurredAt = *req.OccurredAt
	}

	if ref.SyncToLegacy {
		return s.createInLegacy(ctx, caller, personID, req, occurredAt)
	}

	if ref.RestrictedUse && !policy.CanCreateOrAmendRestricted(caller.Roles) {
		return nil, dErrors.New(dErrors.CodeForbidden, "caller may not create restricted case notes")
	}
	if !ref.EffectiveActive() {
		return nil, dErrors.New(dErrors.CodeInvalidState, fmt.Sprintf("Case Note Type %s/%s is not active", req.Type, req.SubType))
	}

	draft := &models.CaseNote{
		ID:                 models.NewLocalID(uuid.New()),
		PersonIdentifier:   personID,
		Type:               ref.TypeCode,
		TypeDescription:    ref.TypeDescription,
		SubType:            ref.Code,
		SubTypeDescription: ref.Description,
		Source:             models.SourceLocal,
		Text:               req.Text,
		LocationID:         req.LocationID,
		AuthorUsername:     caller.Username,
		AuthorName:         caller.DisplayName,
		AuthorUserID:       caller.UserID,
		OccurredAt:         occurredAt,
		CreatedAt:          now,
		ModifiedAt:         now,
		Sensitive:          ref.Sensitive,
		SystemGenerated:    req.SystemGenerated,
	}

	var saved *models.CaseNote
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		saved, err = s.local.Save(txCtx, draft)
		if err != nil {
			return err
		}
		return s.events.Publish(txCtx, noteEvent(events.TypeCreated, saved, false, false))
	})
	if err != nil {
		return nil, err
	}

	saved, err = s.local.Refresh(ctx, saved)
	if err != nil {
		return nil, localError(err)
	}
	saved.SortAmendments()

	if s.metrics != nil {
		s.metrics.IncrementCreated(metrics.RouteLocal)
	}
	s.logger.InfoContext(ctx, "case note created",
		"person_id", personID,
		"case_note_id", saved.ID.String(),
		"type", saved.Type,
		"sub_type", saved.SubType,
	)
	return saved, nil
}

func (s *Service) createInLegacy(ctx context.Context, caller models.Caller, personID string, req models.CreateRequest, occurredAt time.Time) (*models.CaseNote, error) {
	var created *models.LegacyCaseNote
	err := s.callLegacy(ctx, legacyOpCreate, func(ctx context.Context) error {
		var err error
		created, err = s.legacy.CreateNote(ctx, personID, models.LegacyCreateRequest{
			Type:           req.Type,
			SubType:        req.SubType,
			OccurredAt:     occurredAt,
			Text:           req.Text,
			LocationID:     req.LocationID,
			AuthorUsername: caller.Username,
		})
		return err
	})
	if err != nil {
		return nil, legacyError(err)
	}

	note := models.FromLegacy(*created)
	if s.metrics != nil {
		s.metrics.IncrementCreated(metrics.RouteLegacy)
	}
	s.logger.InfoContext(ctx, "case note created in legacy system",
		"person_id", personID,
		"case_note_id", note.ID.String(),
	)
	return &note, nil
}
