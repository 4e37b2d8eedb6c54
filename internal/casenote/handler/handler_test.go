package handler

import (
	"context"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"

	"casenotes/internal/casenote/events"
	"casenotes/internal/casenote/models"
	"casenotes/internal/casenote/service"
	"casenotes/internal/casenote/store"
	notetypemodels "casenotes/internal/notetype/models"
	notetypeservice "casenotes/internal/notetype/service"
	notetypestore "casenotes/internal/notetype/store"
	"casenotes/pkg/platform/sentinel"
	"casenotes/pkg/platform/tx"
	"casenotes/pkg/testutil"
)

const person = "A1234AA"

// fakeLegacy serves a fixed legacy timeline for one person and a catalog
// holding OBS/GEN.
type fakeLegacy struct {
	mu        sync.Mutex
	notes     []models.LegacyCaseNote
	created   []models.LegacyCreateRequest
	listCalls int
	nextID    int64
}

func (f *fakeLegacy) ListTypes(context.Context) ([]notetypemodels.NoteType, error) {
	return []notetypemodels.NoteType{{
		Code: "OBS", Description: "Observation", Active: true,
		SubTypes: []notetypemodels.NoteSubType{
			{Code: "GEN", Description: "General", Active: true, SyncToLegacy: true},
		},
	}}, nil
}

func (f *fakeLegacy) CreateNote(_ context.Context, personID string, req models.LegacyCreateRequest) (*models.LegacyCaseNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.created = append(f.created, req)
	note := models.LegacyCaseNote{
		ID: f.nextID, PersonIdentifier: personID, Type: req.Type, SubType: req.SubType,
		Text: req.Text, AuthorUsername: req.AuthorUsername, OccurredAt: req.OccurredAt, CreatedAt: req.OccurredAt,
	}
	f.notes = append(f.notes, note)
	return &note, nil
}

func (f *fakeLegacy) AmendNote(_ context.Context, _ string, legacyID int64, req models.LegacyAmendRequest) (*models.LegacyCaseNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.notes {
		if f.notes[i].ID == legacyID {
			f.notes[i].Amendments = append(f.notes[i].Amendments, models.LegacyAmendment{
				CreatedAt: time.Now(), AuthorUsername: req.AuthorUsername, Text: req.Text,
			})
			note := f.notes[i]
			return &note, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (f *fakeLegacy) GetNote(_ context.Context, _ string, legacyID int64) (*models.LegacyCaseNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.notes {
		if n.ID == legacyID {
			return &n, nil
		}
	}
	return nil, sentinel.ErrNotFound
}

func (f *fakeLegacy) ListNotes(_ context.Context, _ string, _ models.Filter, page models.PageRequest) (*models.Page[models.LegacyCaseNote], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	notes := slices.Clone(f.notes)
	return &models.Page[models.LegacyCaseNote]{
		Content:       models.Window(notes, page.Offset(), page.Size),
		TotalElements: len(notes),
		Number:        page.Page,
		Size:          page.Size,
	}, nil
}

type HandlerSuite struct {
	suite.Suite
	router http.Handler
	legacy *fakeLegacy
	outbox *events.MemoryOutbox
	roles  []string
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s.legacy = &fakeLegacy{
		nextID: 100,
		notes: []models.LegacyCaseNote{
			{ID: 1, PersonIdentifier: person, Type: "OBS", SubType: "GEN", Text: "older", OccurredAt: time.Now().Add(-72 * time.Hour)},
			{ID: 2, PersonIdentifier: person, Type: "OBS", SubType: "GEN", Text: "newer", OccurredAt: time.Now().Add(-24 * time.Hour)},
		},
	}
	catalog := notetypestore.NewInMemoryStore(notetypestore.DefaultTypes()...)
	types := notetypeservice.New(catalog, s.legacy, notetypeservice.WithLogger(logger))

	s.outbox = events.NewMemoryOutbox()
	svc := service.New(store.NewInMemoryStore(), s.legacy, types, &tx.LocalRunner{}, s.outbox,
		service.WithLogger(logger),
	)

	s.roles = nil
	r := chi.NewRouter()
	New(svc, logger).Register(r)
	s.router = r
}

func (s *HandlerSuite) as(roles ...string) {
	s.roles = roles
}

func (s *HandlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	req := testutil.NewJSONRequest(s.T(), method, path, body)
	req = testutil.WithPrincipal(req, "JSMITH", s.roles...)
	return testutil.DoRequest(s.router, req)
}

func (s *HandlerSuite) create(body CreateCaseNoteRequest) CaseNoteResponse {
	rec := s.do(http.MethodPost, "/case-notes/"+person, body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return *testutil.UnmarshalResponse[CaseNoteResponse](s.T(), rec)
}

func (s *HandlerSuite) page(query string) PageResponse {
	rec := s.do(http.MethodGet, "/case-notes/"+person+"?"+query, nil)
	testutil.AssertStatusOK(s.T(), rec)
	return *testutil.UnmarshalResponse[PageResponse](s.T(), rec)
}

func (s *HandlerSuite) TestCreateSensitiveNoteAndReadItBack() {
	s.as("ROLE_POM")
	created := s.create(CreateCaseNoteRequest{Type: "OMIC", SubType: "GEN", Text: "sensitive"})
	s.True(created.Sensitive)
	s.Equal("JSMITH", created.AuthorUsername)
	s.Equal("OMiC", created.TypeDescription)
	s.Len(s.outbox.Events(), 1)

	s.as()
	rec := s.do(http.MethodGet, "/case-notes/"+person+"/"+created.CaseNoteID, nil)
	testutil.AssertStatusAndError(s.T(), rec, http.StatusForbidden, "forbidden")

	s.as("VIEW_SENSITIVE_CASE_NOTES")
	rec = s.do(http.MethodGet, "/case-notes/"+person+"/"+created.CaseNoteID, nil)
	testutil.AssertStatusOK(s.T(), rec)

	rec = s.do(http.MethodGet, "/case-notes/B9999BB/"+created.CaseNoteID, nil)
	testutil.AssertStatusAndError(s.T(), rec, http.StatusNotFound, "not_found")
}

func (s *HandlerSuite) TestCreateRestrictedWithoutRoleIsForbidden() {
	rec := s.do(http.MethodPost, "/case-notes/"+person, CreateCaseNoteRequest{Type: "POM", SubType: "GEN", Text: "t"})
	testutil.AssertStatusAndError(s.T(), rec, http.StatusForbidden, "forbidden")
	s.Empty(s.outbox.Events())
}

func (s *HandlerSuite) TestCreateRejectsBadInput() {
	rec := s.do(http.MethodPost, "/case-notes/"+person, "not json")
	testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "bad_request")

	unknownField := testutil.MustMarshal(s.T(), map[string]string{"type": "ACP", "subType": "POPEM", "text": "t", "colour": "red"})
	rec = s.do(http.MethodPost, "/case-notes/"+person, unknownField)
	testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "bad_request")

	rec = s.do(http.MethodPost, "/case-notes/"+person, map[string]string{"type": "ACP", "subType": "POPEM"})
	testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "validation_error")

	rec = s.do(http.MethodPost, "/case-notes/"+person, CreateCaseNoteRequest{Type: "NOPE", SubType: "X", Text: "t"})
	errResp := testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "bad_request")
	s.Equal("Unknown Case Note Type NOPE/X", errResp.Description)

	rec = s.do(http.MethodPost, "/case-notes/"+person, CreateCaseNoteRequest{Type: "ACP", SubType: "ASSESS", Text: "t"})
	testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "invalid_state")
}

func (s *HandlerSuite) TestCreateLegacyCatalogTypeGoesToLegacy() {
	created := s.create(CreateCaseNoteRequest{Type: "OBS", SubType: "GEN", Text: "to legacy"})
	s.Equal("101", created.CaseNoteID)
	s.Require().Len(s.legacy.created, 1)
	s.Equal("JSMITH", s.legacy.created[0].AuthorUsername)
	s.Empty(s.outbox.Events())

	page := s.page("size=10")
	s.Equal(3, page.TotalElements, "no local copy was written")
}

func (s *HandlerSuite) TestListMergesLocalNotesIntoLegacyTimeline() {
	page := s.page("size=2")
	s.Equal(2, page.TotalElements)
	s.Equal(1, s.legacy.listCalls)

	s.create(CreateCaseNoteRequest{Type: "ACP", SubType: "POPEM", Text: "local"})

	page = s.page("size=2&sort=occurrenceDateTime,DESC")
	s.Equal(2, s.legacy.listCalls, "one legacy read per listing")
	s.Equal(3, page.TotalElements)
	s.Equal(2, page.TotalPages)
	s.Require().Len(page.Content, 2)
	s.Equal("local", page.Content[0].Text)
	s.Equal("newer", page.Content[1].Text)

	page = s.page("size=2&page=1")
	s.Require().Len(page.Content, 1)
	s.Equal("older", page.Content[0].Text)
	s.True(page.Last)
}

func (s *HandlerSuite) TestListRejectsBadQuery() {
	overflow := "page=" + strconv.Itoa(math.MaxInt/models.DefaultPageSize+1)
	for _, query := range []string{"from=yesterday", "page=x", "size=5000", "sort=text,ASC", "includeSensitive=maybe", overflow} {
		rec := s.do(http.MethodGet, "/case-notes/"+person+"?"+query, nil)
		testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "bad_request")
	}
}

func (s *HandlerSuite) TestAmendLocalNote() {
	created := s.create(CreateCaseNoteRequest{Type: "ACP", SubType: "POPEM", Text: "local"})

	rec := s.do(http.MethodPut, "/case-notes/"+person+"/"+created.CaseNoteID, AmendCaseNoteRequest{Text: "addendum"})
	testutil.AssertStatusOK(s.T(), rec)
	amended := testutil.UnmarshalResponse[CaseNoteResponse](s.T(), rec)
	s.Require().Len(amended.Amendments, 1)
	s.Equal("addendum", amended.Amendments[0].AdditionalNoteText)
	s.Equal("JSMITH", amended.Amendments[0].AuthorUsername)
	s.Len(s.outbox.Events(), 2)

	rec = s.do(http.MethodPut, "/case-notes/B9999BB/"+created.CaseNoteID, AmendCaseNoteRequest{Text: "addendum"})
	testutil.AssertStatusAndError(s.T(), rec, http.StatusNotFound, "not_found")
}

func (s *HandlerSuite) TestLegacyRoutes() {
	rec := s.do(http.MethodGet, "/case-notes/"+person+"/2", nil)
	testutil.AssertStatusOK(s.T(), rec)

	rec = s.do(http.MethodGet, "/case-notes/"+person+"/legacy/1", nil)
	testutil.AssertStatusOK(s.T(), rec)
	s.Equal("older", testutil.UnmarshalResponse[CaseNoteResponse](s.T(), rec).Text)

	rec = s.do(http.MethodGet, "/case-notes/"+person+"/legacy/999", nil)
	testutil.AssertStatusAndError(s.T(), rec, http.StatusNotFound, "not_found")

	rec = s.do(http.MethodPut, "/case-notes/"+person+"/2", AmendCaseNoteRequest{Text: "legacy addendum"})
	testutil.AssertStatusOK(s.T(), rec)
}

func (s *HandlerSuite) TestMalformedIdentifiers() {
	rec := s.do(http.MethodGet, "/case-notes/"+person+"/not-an-id", nil)
	testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "bad_request")

	rec = s.do(http.MethodGet, "/case-notes/"+person+"/legacy/abc", nil)
	testutil.AssertStatusAndError(s.T(), rec, http.StatusBadRequest, "bad_request")
}

func (s *HandlerSuite) TestDelete() {
	created := s.create(CreateCaseNoteRequest{Type: "ACP", SubType: "POPEM", Text: "local"})

	rec := s.do(http.MethodDelete, "/case-notes/"+person+"/"+created.CaseNoteID, nil)
	testutil.AssertStatusAndError(s.T(), rec, http.StatusForbidden, "forbidden")

	s.as("ROLE_DELETE_CASE_NOTE")
	rec = s.do(http.MethodDelete, "/case-notes/"+person+"/"+created.CaseNoteID, nil)
	testutil.AssertStatus(s.T(), rec, http.StatusNoContent)

	rec = s.do(http.MethodGet, "/case-notes/"+person+"/"+created.CaseNoteID, nil)
	testutil.AssertStatusAndError(s.T(), rec, http.StatusNotFound, "not_found")
	s.True(s.outbox.Events()[len(s.outbox.Events())-1].SoftDeleted)
}
