// Package service serves the case note type catalog: the local catalog merged
// with the legacy system's types.
package service

import (
	"context"
	"errors"
	"log/slog"

	"casenotes/internal/notetype/metrics"
	"casenotes/internal/notetype/models"
	"casenotes/internal/policy"
	dErrors "casenotes/pkg/domain-errors"
	"casenotes/pkg/platform/sentinel"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

type LocalCatalog interface {
	ListTypes(ctx context.Context) ([]models.NoteType, error)
	FindSubType(ctx context.Context, typeCode, subTypeCode string) (models.SubTypeRef, error)
}

type LegacyTypes interface {
	ListTypes(ctx context.Context) ([]models.NoteType, error)
}

type Cache interface {
	Get(ctx context.Context) ([]models.NoteType, bool, error)
	Set(ctx context.Context, types []models.NoteType) error
}

// Service resolves and lists case note types.
type Service struct {
	local   LocalCatalog
	legacy  LegacyTypes
	cache   Cache
	logger  *slog.Logger
	metrics *metrics.Metrics
}

type Option func(*Service)

func WithCache(c Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

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

// New constructs a Service. legacy may be nil, in which case only the local
// catalog is served.
func New(local LocalCatalog, legacy LegacyTypes, opts ...Option) *Service {
	s := &Service{local: local, legacy: legacy, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FindSubType resolves a sub-type in the local catalog, then in the legacy
// catalog. Sub-types known only to the legacy system are always routed there.
// Unknown codes are CodeNotFound.
func (s *Service) FindSubType(ctx context.Context, typeCode, subTypeCode string) (*models.SubTypeRef, error) {
	ref, err := s.local.FindSubType(ctx, typeCode, subTypeCode)
	if err == nil {
		return &ref, nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load case note type")
	}

	legacy, err := s.legacyTypes(ctx)
	if err != nil {
		return nil, err
	}
	ref, ok := models.Find(legacy, typeCode, subTypeCode)
	if !ok {
		return nil, dErrors.New(dErrors.CodeNotFound, "unknown case note type "+typeCode+"/"+subTypeCode)
	}
	ref.SyncToLegacy = true
	return &ref, nil
}

// ListTypes returns the local catalog merged with the legacy catalog, legacy
// definitions winning on description, active and sensitive.
func (s *Service) ListTypes(ctx context.Context) ([]models.NoteType, error) {
	local, err := s.local.ListTypes(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load case note types")
	}
	legacy, err := s.legacyTypes(ctx)
	if err != nil {
		return nil, err
	}
	return models.Merge(local, legacy), nil
}

// ListCreatableTypes narrows the merged catalog to the active sub-types the
// caller may write. Parents left without sub-types are dropped.
func (s *Service) ListCreatableTypes(ctx context.Context, roles []string) ([]models.NoteType, error) {
	types, err := s.ListTypes(ctx)
	if err != nil {
		return nil, err
	}
	canRestricted := policy.CanCreateOrAmendRestricted(roles)

	out := make([]models.NoteType, 0, len(types))
	for _, t := range types {
		if !t.Active {
			continue
		}
		var subs []models.NoteSubType
		for _, st := range t.SubTypes {
			if !st.Active || (st.RestrictedUse && !canRestricted) {
				continue
			}
			subs = append(subs, st)
		}
		if len(subs) == 0 {
			continue
		}
		t.SubTypes = subs
		out = append(out, t)
	}
	return out, nil
}

func (s *Service) legacyTypes(ctx context.Context) ([]models.NoteType, error) {
	if s.legacy == nil {
		return nil, nil
	}
	if s.cache != nil {
		types, ok, err := s.cache.Get(ctx)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "legacy type cache read failed", "error", err)
		case ok:
			s.recordCache(true)
			return types, nil
		}
		s.recordCache(false)
	}

	types, err := s.legacy.ListTypes(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "legacy case note types unavailable")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, types); err != nil {
			s.logger.WarnContext(ctx, "legacy type cache write failed", "error", err)
		}
	}
	return types, nil
}

func (s *Service) recordCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.IncrementCacheHit()
		return
	}
	s.metrics.IncrementCacheMiss()
}
