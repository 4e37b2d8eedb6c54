// Package handler exposes the case note timeline over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"casenotes/internal/casenote/models"
	dErrors "casenotes/pkg/domain-errors"
	"casenotes/pkg/platform/httputil"
	request "casenotes/pkg/platform/middleware/request"
	"casenotes/pkg/requestcontext"
)

// Service defines the case note operations the handler delegates to.
type Service interface {
	Create(ctx context.Context, caller models.Caller, personID string, req models.CreateRequest) (*models.CaseNote, error)
	Get(ctx context.Context, caller models.Caller, personID string, id models.NoteID) (*models.CaseNote, error)
	GetByLegacyID(ctx context.Context, caller models.Caller, personID string, legacyID int64) (*models.CaseNote, error)
	Amend(ctx context.Context, caller models.Caller, personID string, id models.NoteID, req models.AmendRequest) (*models.CaseNote, error)
	List(ctx context.Context, caller models.Caller, personID string, filter models.Filter, page models.PageRequest) (*models.Page[models.CaseNote], error)
	Delete(ctx context.Context, caller models.Caller, personID string, id models.NoteID) error
}

// Handler handles case note endpoints.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New creates a new case note Handler.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register registers the case note routes. Authentication is applied by the
// caller's router group.
func (h *Handler) Register(r chi.Router) {
	r.Get("/case-notes/{personId}", h.handleList)
	r.Post("/case-notes/{personId}", h.handleCreate)
	r.Get("/case-notes/{personId}/legacy/{legacyId}", h.handleGetByLegacyID)
	r.Get("/case-notes/{personId}/{caseNoteId}", h.handleGet)
	r.Put("/case-notes/{personId}/{caseNoteId}", h.handleAmend)
	r.Delete("/case-notes/{personId}/{caseNoteId}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID := chi.URLParam(r, "personId")

	filter, page, err := parseListQuery(r.URL.Query())
	if err != nil {
		h.fail(ctx, w, "invalid case note list request", err)
		return
	}

	result, err := h.service.List(ctx, callerFrom(ctx), personID, filter, page)
	if err != nil {
		h.fail(ctx, w, "failed to list case notes", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toPageResponse(result))
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID := chi.URLParam(r, "personId")

	body, err := httputil.DecodeJSON[CreateCaseNoteRequest](r)
	if err != nil {
		h.fail(ctx, w, "invalid create case note request", err)
		return
	}

	note, err := h.service.Create(ctx, callerFrom(ctx), personID, body.toModel())
	if err != nil {
		h.fail(ctx, w, "failed to create case note", err)
		return
	}
	h.logger.InfoContext(ctx, "case note create served",
		"person_id", personID,
		"case_note_id", note.ID.String(),
		"request_id", request.GetRequestID(ctx),
	)
	httputil.WriteJSON(w, http.StatusCreated, toResponse(note))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID := chi.URLParam(r, "personId")

	id, err := models.ParseNoteID(chi.URLParam(r, "caseNoteId"))
	if err != nil {
		h.fail(ctx, w, "invalid case note id", err)
		return
	}

	note, err := h.service.Get(ctx, callerFrom(ctx), personID, id)
	if err != nil {
		h.fail(ctx, w, "failed to get case note", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(note))
}

func (h *Handler) handleGetByLegacyID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID := chi.URLParam(r, "personId")

	legacyID, err := strconv.ParseInt(chi.URLParam(r, "legacyId"), 10, 64)
	if err != nil {
		h.fail(ctx, w, "invalid legacy case note id", dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid legacy case note identifier"))
		return
	}

	note, err := h.service.GetByLegacyID(ctx, callerFrom(ctx), personID, legacyID)
	if err != nil {
		h.fail(ctx, w, "failed to get case note by legacy id", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(note))
}

func (h *Handler) handleAmend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID := chi.URLParam(r, "personId")

	id, err := models.ParseNoteID(chi.URLParam(r, "caseNoteId"))
	if err != nil {
		h.fail(ctx, w, "invalid case note id", err)
		return
	}
	body, err := httputil.DecodeJSON[AmendCaseNoteRequest](r)
	if err != nil {
		h.fail(ctx, w, "invalid amend case note request", err)
		return
	}

	note, err := h.service.Amend(ctx, callerFrom(ctx), personID, id, models.AmendRequest{Text: body.Text})
	if err != nil {
		h.fail(ctx, w, "failed to amend case note", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(note))
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	personID := chi.URLParam(r, "personId")

	id, err := models.ParseNoteID(chi.URLParam(r, "caseNoteId"))
	if err != nil {
		h.fail(ctx, w, "invalid case note id", err)
		return
	}

	if err := h.service.Delete(ctx, callerFrom(ctx), personID, id); err != nil {
		h.fail(ctx, w, "failed to delete case note", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fail logs and writes err. Client errors are logged at warn level.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	status := httputil.StatusFor(dErrors.CodeOf(err))
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg,
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}

func callerFrom(ctx context.Context) models.Caller {
	p := requestcontext.Principal(ctx)
	return models.Caller{
		Username:    p.Username,
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Roles:       p.Roles,
		RequestTime: requestcontext.Now(ctx),
	}
}
