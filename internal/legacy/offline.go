package legacy

import (
	"context"

	"casenotes/internal/casenote/models"
	notetypemodels "casenotes/internal/notetype/models"
	"casenotes/pkg/platform/sentinel"
)

// Offline stands in for the legacy system when no API URL is configured. It
// holds no notes and no types, and rejects writes as unavailable.
type Offline struct{}

func (Offline) CreateNote(context.Context, string, models.LegacyCreateRequest) (*models.LegacyCaseNote, error) {
	return nil, &Error{Category: CategoryTransport, Operation: "create_note", Message: "legacy system not configured"}
}

func (Offline) AmendNote(context.Context, string, int64, models.LegacyAmendRequest) (*models.LegacyCaseNote, error) {
	return nil, &Error{Category: CategoryTransport, Operation: "amend_note", Message: "legacy system not configured"}
}

func (Offline) GetNote(context.Context, string, int64) (*models.LegacyCaseNote, error) {
	return nil, sentinel.ErrNotFound
}

func (Offline) ListNotes(_ context.Context, _ string, _ models.Filter, page models.PageRequest) (*models.Page[models.LegacyCaseNote], error) {
	return &models.Page[models.LegacyCaseNote]{
		Content: []models.LegacyCaseNote{},
		Number:  page.Page,
		Size:    page.Size,
	}, nil
}

func (Offline) ListTypes(context.Context) ([]notetypemodels.NoteType, error) {
	return nil, nil
}
