package service

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"casenotes/internal/notetype/metrics"
	"casenotes/internal/notetype/models"
	"casenotes/internal/notetype/service/mocks"
	dErrors "casenotes/pkg/domain-errors"
	"casenotes/pkg/platform/sentinel"
)

type ServiceSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	local   *mocks.MockLocalCatalog
	legacy  *mocks.MockLegacyTypes
	cache   *mocks.MockCache
	metrics *metrics.Metrics
	svc     *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.local = mocks.NewMockLocalCatalog(s.ctrl)
	s.legacy = mocks.NewMockLegacyTypes(s.ctrl)
	s.cache = mocks.NewMockCache(s.ctrl)
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.svc = New(s.local, s.legacy, WithCache(s.cache), WithMetrics(s.metrics))
}

var (
	localTypes = []models.NoteType{{
		Code: "POM", Description: "POM", Active: true,
		SubTypes: []models.NoteSubType{
			{Code: "GEN", Description: "General", Active: true, RestrictedUse: true},
			{Code: "OLD", Description: "Old", Active: false},
		},
	}}
	legacyTypes = []models.NoteType{{
		Code: "OBS", Description: "Observation", Active: true,
		SubTypes: []models.NoteSubType{
			{Code: "GEN", Description: "General", Active: true},
		},
	}}
)

func (s *ServiceSuite) TestFindSubType() {
	ctx := context.Background()
	s.Run("resolves local sub-type", func() {
		s.local.EXPECT().FindSubType(ctx, "POM", "GEN").Return(models.SubTypeRef{TypeCode: "POM"}, nil)
		ref, err := s.svc.FindSubType(ctx, "POM", "GEN")
		s.Require().NoError(err)
		s.Equal("POM", ref.TypeCode)
	})
	s.Run("falls back to the legacy catalog", func() {
		s.local.EXPECT().FindSubType(ctx, "OBS", "GEN").Return(models.SubTypeRef{}, sentinel.ErrNotFound)
		s.cache.EXPECT().Get(ctx).Return(legacyTypes, true, nil)
		ref, err := s.svc.FindSubType(ctx, "OBS", "GEN")
		s.Require().NoError(err)
		s.Equal("Observation", ref.TypeDescription)
		s.True(ref.EffectiveActive())
		s.True(ref.SyncToLegacy)
	})
	s.Run("unknown sub-type is not found", func() {
		s.local.EXPECT().FindSubType(ctx, "POM", "NOPE").Return(models.SubTypeRef{}, sentinel.ErrNotFound)
		s.cache.EXPECT().Get(ctx).Return(legacyTypes, true, nil)
		_, err := s.svc.FindSubType(ctx, "POM", "NOPE")
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
	s.Run("legacy catalog failure is unavailable", func() {
		s.local.EXPECT().FindSubType(ctx, "OBS", "GEN").Return(models.SubTypeRef{}, sentinel.ErrNotFound)
		s.cache.EXPECT().Get(ctx).Return(nil, false, nil)
		s.legacy.EXPECT().ListTypes(ctx).Return(nil, sentinel.ErrUnavailable)
		_, err := s.svc.FindSubType(ctx, "OBS", "GEN")
		s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
	s.Run("store failure is internal", func() {
		s.local.EXPECT().FindSubType(ctx, "POM", "GEN").Return(models.SubTypeRef{}, errors.New("db down"))
		_, err := s.svc.FindSubType(ctx, "POM", "GEN")
		s.True(dErrors.HasCode(err, dErrors.CodeInternal))
	})
}

func (s *ServiceSuite) TestListTypesServesCacheHit() {
	ctx := context.Background()
	s.local.EXPECT().ListTypes(ctx).Return(localTypes, nil)
	s.cache.EXPECT().Get(ctx).Return(legacyTypes, true, nil)

	types, err := s.svc.ListTypes(ctx)
	s.Require().NoError(err)
	s.Len(types, 2)
	s.Equal("Observation", types[0].Description, "sorted by description")
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CacheHits))
}

func (s *ServiceSuite) TestListTypesFillsCacheOnMiss() {
	ctx := context.Background()
	s.local.EXPECT().ListTypes(ctx).Return(localTypes, nil)
	s.cache.EXPECT().Get(ctx).Return(nil, false, nil)
	s.legacy.EXPECT().ListTypes(ctx).Return(legacyTypes, nil)
	s.cache.EXPECT().Set(ctx, legacyTypes).Return(nil)

	types, err := s.svc.ListTypes(ctx)
	s.Require().NoError(err)
	s.Len(types, 2)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.CacheMisses))
}

func (s *ServiceSuite) TestListTypesToleratesCacheFailure() {
	ctx := context.Background()
	s.local.EXPECT().ListTypes(ctx).Return(localTypes, nil)
	s.cache.EXPECT().Get(ctx).Return(nil, false, errors.New("redis down"))
	s.legacy.EXPECT().ListTypes(ctx).Return(legacyTypes, nil)
	s.cache.EXPECT().Set(ctx, legacyTypes).Return(errors.New("redis down"))

	_, err := s.svc.ListTypes(ctx)
	s.NoError(err)
}

func (s *ServiceSuite) TestListTypesLegacyUnavailable() {
	ctx := context.Background()
	s.local.EXPECT().ListTypes(ctx).Return(localTypes, nil)
	s.cache.EXPECT().Get(ctx).Return(nil, false, nil)
	s.legacy.EXPECT().ListTypes(ctx).Return(nil, sentinel.ErrUnavailable)

	_, err := s.svc.ListTypes(ctx)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func (s *ServiceSuite) TestListCreatableTypes() {
	ctx := context.Background()

	s.Run("restricted sub-types need an override role", func() {
		s.local.EXPECT().ListTypes(ctx).Return(localTypes, nil)
		s.cache.EXPECT().Get(ctx).Return(legacyTypes, true, nil)

		types, err := s.svc.ListCreatableTypes(ctx, []string{"ROLE_PRISON"})
		s.Require().NoError(err)
		s.Require().Len(types, 1)
		s.Equal("OBS", types[0].Code)
	})

	s.Run("inactive sub-types are never creatable", func() {
		s.local.EXPECT().ListTypes(ctx).Return(localTypes, nil)
		s.cache.EXPECT().Get(ctx).Return(legacyTypes, true, nil)

		types, err := s.svc.ListCreatableTypes(ctx, []string{"ROLE_POM"})
		s.Require().NoError(err)
		s.Require().Len(types, 2)
		pom := types[1]
		s.Equal("POM", pom.Code)
		s.Require().Len(pom.SubTypes, 1)
		s.Equal("GEN", pom.SubTypes[0].Code)
	})
}

func TestServiceWithoutLegacyServesLocalCatalog(t *testing.T) {
	ctrl := gomock.NewController(t)
	local := mocks.NewMockLocalCatalog(ctrl)
	local.EXPECT().ListTypes(gomock.Any()).Return(localTypes, nil)

	types, err := New(local, nil).ListTypes(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(types) != 1 || types[0].Code != "POM" {
		t.Fatalf("expected local catalog only, got %+v", types)
	}
}
