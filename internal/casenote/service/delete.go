package service

import (
	"context"

	"casenotes/internal/casenote/events"
	"casenotes/internal/casenote/models"
	"casenotes/internal/policy"
	dErrors "casenotes/pkg/domain-errors"
)

// Delete soft-deletes a local note. Legacy notes cannot be deleted here.
func (s *Service) Delete(ctx context.Context, caller models.Caller, personID string, id models.NoteID) (err error) {
	ctx, span := s.startSpan(ctx, "casenote.Delete", personID)
	defer func() { endSpan(span, err) }()

	if !policy.IsSystemOverride(caller.Roles, policy.RoleDeleteCaseNote) {
		return dErrors.New(dErrors.CodeForbidden, "caller may not delete case notes")
	}
	localID, ok := id.Local()
	if !ok {
		return dErrors.New(dErrors.CodeBadRequest, "legacy case notes cannot be deleted")
	}

	existing, err := s.local.FindByID(ctx, localID)
	if err != nil {
		return localError(err)
	}
	if !existing.BelongsTo(personID) {
		return dErrors.New(dErrors.CodeNotFound, "case note not found")
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.local.SoftDelete(txCtx, localID, s.clock(caller)); err != nil {
			return err
		}
		return s.events.Publish(txCtx, noteEvent(events.TypeUpdated, existing, false, true))
	})
	if err != nil {
		return localError(err)
	}

	if s.metrics != nil {
		s.metrics.IncrementDeleted()
	}
	s.logger.InfoContext(ctx, "case note deleted",
		"person_id", personID,
		"case_note_id", existing.ID.String(),
	)
	return nil
}
