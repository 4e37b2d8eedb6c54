// Package service is the reconciliation engine behind the case note API. It
// presents one timeline per person over the local store and the legacy system,
// routing each operation by note identifier and sub-type.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"casenotes/internal/casenote/events"
	"casenotes/internal/casenote/metrics"
	"casenotes/internal/casenote/models"
	notetypemodels "casenotes/internal/notetype/models"
	dErrors "casenotes/pkg/domain-errors"
	"casenotes/pkg/platform/sentinel"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// LocalStore persists notes owned by this service. Reads never return
// soft-deleted notes.
type LocalStore interface {
	Save(ctx context.Context, note *models.CaseNote) (*models.CaseNote, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CaseNote, error)
	FindByLegacyID(ctx context.Context, legacyID int64) (*models.CaseNote, error)
	FindByFilter(ctx context.Context, personID string, filter models.Filter) ([]*models.CaseNote, error)
	Refresh(ctx context.Context, note *models.CaseNote) (*models.CaseNote, error)
	AddAmendment(ctx context.Context, id uuid.UUID, amendment models.Amendment) (*models.CaseNote, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) error
}

// LegacyGateway reaches notes owned by the legacy system.
type LegacyGateway interface {
	CreateNote(ctx context.Context, personID string, req models.LegacyCreateRequest) (*models.LegacyCaseNote, error)
	AmendNote(ctx context.Context, personID string, legacyID int64, req models.LegacyAmendRequest) (*models.LegacyCaseNote, error)
	GetNote(ctx context.Context, personID string, legacyID int64) (*models.LegacyCaseNote, error)
	ListNotes(ctx context.Context, personID string, filter models.Filter, page models.PageRequest) (*models.Page[models.LegacyCaseNote], error)
}

// Catalog resolves sub-types. Unknown codes are CodeNotFound.
type Catalog interface {
	FindSubType(ctx context.Context, typeCode, subTypeCode string) (*notetypemodels.SubTypeRef, error)
}

// EventSink records case note changes. Implementations join the transaction
// carried by ctx.
type EventSink interface {
	Publish(ctx context.Context, event events.Event) error
}

// TxRunner runs fn atomically.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	defaultLegacyTimeout     = 10 * time.Second
	defaultMaxLegacyPageSize = 10000
	tracerName               = "casenotes/casenote/service"
)

// Legacy operation labels.
const (
	legacyOpCreate = "create_note"
	legacyOpAmend  = "amend_note"
	legacyOpGet    = "get_note"
	legacyOpList   = "list_notes"
)

// Service routes case note operations across the local store and the legacy
// system.
type Service struct {
	local             LocalStore
	legacy            LegacyGateway
	catalog           Catalog
	tx                TxRunner
	events            EventSink
	logger            *slog.Logger
	metrics           *metrics.Metrics
	tracer            trace.Tracer
	now               func() time.Time
	legacyTimeout     time.Duration
	maxLegacyPageSize int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock overrides the time source used when the caller carries no
// request time.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLegacyTimeout bounds every legacy call.
func WithLegacyTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.legacyTimeout = d
		}
	}
}

// WithMaxLegacyPageSize sets the page size used to pull the legacy side of a
// merged list. Larger legacy timelines are not truncated by the engine.
func WithMaxLegacyPageSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxLegacyPageSize = n
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
}

// New constructs a Service.
func New(local LocalStore, legacy LegacyGateway, catalog Catalog, tx TxRunner, sink EventSink, opts ...Option) *Service {
	s := &Service{
		local:             local,
		legacy:            legacy,
		catalog:           catalog,
		tx:                tx,
		events:            sink,
		logger:            slog.Default(),
		tracer:            otel.Tracer(tracerName),
		now:               time.Now,
		legacyTimeout:     defaultLegacyTimeout,
		maxLegacyPageSize: defaultMaxLegacyPageSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) startSpan(ctx context.Context, name, personID string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, name, trace.WithAttributes(attribute.String("person_id", personID)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}

// clock returns the caller's request time, falling back to the service clock.
func (s *Service) clock(caller models.Caller) time.Time {
	if !caller.RequestTime.IsZero() {
		return caller.RequestTime
	}
	return s.now()
}

// callLegacy runs fn under the legacy timeout and records its latency.
func (s *Service) callLegacy(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.legacyTimeout)
	defer cancel()
	start := time.Now()
	err := fn(ctx)
	if s.metrics != nil {
		s.metrics.ObserveLegacyCall(op, start)
	}
	return err
}

// legacyError translates gateway failures. Not-found keeps its meaning; every
// other failure, timeouts included, is upstream unavailability.
func legacyError(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "case note not found")
	}
	if errors.Is(err, sentinel.ErrRejected) {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "legacy case note system rejected the request")
	}
	return dErrors.Wrap(err, dErrors.CodeUnavailable, "legacy case note system unavailable")
}

// localError translates store not-found and passes every other failure through
// unchanged.
func localError(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "case note not found")
	}
	return err
}

func noteEvent(t events.Type, note *models.CaseNote, syncedToLegacy, softDeleted bool) events.Event {
	return events.Event{
		Type:             t,
		PersonIdentifier: note.PersonIdentifier,
		NoteID:           note.ID.String(),
		LegacyID:         note.LegacyID,
		TypeCode:         note.Type,
		SubTypeCode:      note.SubType,
		Source:           note.Source,
		SyncedToLegacy:   syncedToLegacy,
		SoftDeleted:      softDeleted,
		OccurredAt:       note.OccurredAt,
	}
}

func validateText(text string) error {
	if text == "" {
		return dErrors.New(dErrors.CodeValidation, "text is required")
	}
	if len([]rune(text)) > models.MaxTextLength {
		return dErrors.New(dErrors.CodeValidation, "text exceeds maximum length")
	}
	return nil
}
