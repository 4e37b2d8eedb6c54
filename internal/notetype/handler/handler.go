// Package handler serves the case note type catalog.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"casenotes/internal/notetype/models"
	"casenotes/pkg/platform/httputil"
	request "casenotes/pkg/platform/middleware/request"
	"casenotes/pkg/requestcontext"
)

// Service defines the catalog reads the handler needs.
type Service interface {
	ListTypes(ctx context.Context) ([]models.NoteType, error)
	ListCreatableTypes(ctx context.Context, roles []string) ([]models.NoteType, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the type catalog routes.
func (h *Handler) Register(r chi.Router) {
	r.Get("/case-notes/types", h.handleListTypes)
	r.Get("/case-notes/types-for-user", h.handleListTypesForUser)
}

func (h *Handler) handleListTypes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	types, err := h.service.ListTypes(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list case note types",
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, nonNil(types))
}

func (h *Handler) handleListTypesForUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	roles := requestcontext.Principal(ctx).Roles
	types, err := h.service.ListCreatableTypes(ctx, roles)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list creatable case note types",
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, nonNil(types))
}

func nonNil(types []models.NoteType) []models.NoteType {
	if types == nil {
		return []models.NoteType{}
	}
	return types
}
