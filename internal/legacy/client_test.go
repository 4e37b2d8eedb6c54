package legacy

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casenotes/internal/casenote/models"
	"casenotes/pkg/platform/circuit"
	"casenotes/pkg/platform/sentinel"
)

const legacyNoteJSON = `{
	"caseNoteId": 1234,
	"offenderIdentifier": "A1234AA",
	"type": "OBS",
	"typeDescription": "Observation",
	"subType": "GEN",
	"subTypeDescription": "General",
	"source": "INST",
	"creationDateTime": "2024-03-01T10:00:00Z",
	"occurrenceDateTime": "2024-03-01T09:30:00Z",
	"authorName": "Jane Smith",
	"authorUsername": "JSMITH",
	"authorUserId": "42",
	"text": "legacy text",
	"locationId": "MDI",
	"amendments": [
		{"creationDateTime": "2024-03-03T10:00:00Z", "authorUsername": "B", "additionalNoteText": "later"},
		{"creationDateTime": "2024-03-02T10:00:00Z", "authorUsername": "A", "additionalNoteText": "earlier"}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL+"/api", append([]Option{WithToken("secret")}, opts...)...)
	require.NoError(t, err)
	return c
}

func TestNewRejectsRelativeURL(t *testing.T) {
	_, err := New("legacy.local")
	assert.Error(t, err)
}

func TestGetNote(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/case-notes/A1234AA/1234", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(legacyNoteJSON))
	})

	note, err := c.GetNote(context.Background(), "A1234AA", 1234)
	require.NoError(t, err)
	assert.Equal(t, int64(1234), note.ID)
	assert.Equal(t, "Observation", note.TypeDescription)
	assert.Equal(t, time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC), note.OccurredAt)
	require.Len(t, note.Amendments, 2)

	unified := models.FromLegacy(*note)
	assert.Equal(t, "earlier", unified.Amendments[0].Text)
}

func TestGetNoteNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetNote(context.Background(), "A1234AA", 1)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.NotErrorIs(t, err, sentinel.ErrUnavailable)
}

func TestServerErrorIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "database down", http.StatusBadGateway)
	})

	_, err := c.GetNote(context.Background(), "A1234AA", 1)
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
	var legacyErr *Error
	require.True(t, errors.As(err, &legacyErr))
	assert.Equal(t, CategoryServer, legacyErr.Category)
	assert.Equal(t, http.StatusBadGateway, legacyErr.Status)
	assert.Equal(t, "database down", legacyErr.Message)
}

func TestTimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}, WithTimeout(20*time.Millisecond))
	defer close(release)

	_, err := c.GetNote(context.Background(), "A1234AA", 1)
	require.ErrorIs(t, err, sentinel.ErrUnavailable)
	var legacyErr *Error
	require.True(t, errors.As(err, &legacyErr))
	assert.Equal(t, CategoryTimeout, legacyErr.Category)
}

func TestBadBodyIsUnavailable(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	})

	_, err := c.GetNote(context.Background(), "A1234AA", 1)
	var legacyErr *Error
	require.True(t, errors.As(err, &legacyErr))
	assert.Equal(t, CategoryBadData, legacyErr.Category)
}

func TestCircuitOpensAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	breaker := circuit.New("legacy-test", circuit.WithFailureThreshold(2), circuit.WithCooldown(time.Hour))
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}, WithBreaker(breaker))

	for range 2 {
		_, err := c.GetNote(context.Background(), "A1234AA", 1)
		require.ErrorIs(t, err, sentinel.ErrUnavailable)
	}
	require.True(t, breaker.IsOpen())

	_, err := c.GetNote(context.Background(), "A1234AA", 1)
	var legacyErr *Error
	require.True(t, errors.As(err, &legacyErr))
	assert.Equal(t, CategoryCircuitOpen, legacyErr.Category)
	assert.Equal(t, int32(2), calls.Load(), "open circuit does not reach the server")
}

func TestRejectedRequestIsNotAnOutage(t *testing.T) {
	breaker := circuit.New("legacy-test", circuit.WithFailureThreshold(1))
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "text too long", http.StatusBadRequest)
	}, WithBreaker(breaker))

	_, err := c.CreateNote(context.Background(), "A1234AA", models.LegacyCreateRequest{Type: "OBS", SubType: "GEN", Text: "x"})
	require.ErrorIs(t, err, sentinel.ErrRejected)
	assert.NotErrorIs(t, err, sentinel.ErrUnavailable)
	var legacyErr *Error
	require.True(t, errors.As(err, &legacyErr))
	assert.Equal(t, CategoryRejected, legacyErr.Category)
	assert.Equal(t, "text too long", legacyErr.Message)
	assert.False(t, breaker.IsOpen())
}

func TestNotFoundDoesNotTripCircuit(t *testing.T) {
	breaker := circuit.New("legacy-test", circuit.WithFailureThreshold(1))
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, WithBreaker(breaker))

	_, err := c.GetNote(context.Background(), "A1234AA", 1)
	require.ErrorIs(t, err, sentinel.ErrNotFound)
	assert.False(t, breaker.IsOpen())
}

func TestCreateNote(t *testing.T) {
	occurred := time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/case-notes/A1234AA", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "OBS", body["type"])
		assert.Equal(t, "GEN", body["subType"])
		assert.Equal(t, "JSMITH", body["authorUsername"])
		assert.Equal(t, "2024-03-01T09:30:00Z", body["occurrenceDateTime"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(legacyNoteJSON))
	})

	note, err := c.CreateNote(context.Background(), "A1234AA", models.LegacyCreateRequest{
		Type:           "OBS",
		SubType:        "GEN",
		OccurredAt:     occurred,
		Text:           "legacy text",
		AuthorUsername: "JSMITH",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1234), note.ID)
}

func TestAmendNote(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/case-notes/A1234AA/1234", r.URL.Path)
		var body amendDTO
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, amendDTO{Text: "more", AuthorUsername: "JSMITH"}, body)
		_, _ = w.Write([]byte(legacyNoteJSON))
	})

	_, err := c.AmendNote(context.Background(), "A1234AA", 1234, models.LegacyAmendRequest{Text: "more", AuthorUsername: "JSMITH"})
	require.NoError(t, err)
}

func TestListNotesEncodesFilterAndPage(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, []string{"OBS+GEN", "OBS+SP", "POS"}, q["type"])
		assert.Equal(t, "2024-01-01T00:00:00Z", q.Get("from"))
		assert.Empty(t, q.Get("to"))
		assert.Equal(t, "MDI", q.Get("locationId"))
		assert.Equal(t, "2", q.Get("page"))
		assert.Equal(t, "5", q.Get("size"))
		assert.Equal(t, "creationDateTime,ASC", q.Get("sort"))
		_, _ = w.Write([]byte(`{"content": [` + legacyNoteJSON + `], "totalElements": 11, "number": 2, "size": 5}`))
	})

	page, err := c.ListNotes(context.Background(), "A1234AA", models.Filter{
		Types: []models.TypeFilter{
			{Type: "OBS", SubTypes: []string{"GEN", "SP"}},
			{Type: "POS"},
		},
		From:       &from,
		LocationID: "MDI",
	}, models.PageRequest{Page: 2, Size: 5, Sort: models.Sort{Field: models.SortByCreatedAt, Direction: models.Ascending}})
	require.NoError(t, err)
	assert.Equal(t, 11, page.TotalElements)
	assert.Equal(t, 2, page.Number)
	require.Len(t, page.Content, 1)
}

func TestListTypes(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/case-notes/types", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"code": "OBS", "description": "Observation", "activeFlag": "Y", "subCodes": [
				{"code": "GEN", "description": "General", "activeFlag": "Y"},
				{"code": "OLD", "description": "Retired", "activeFlag": "N"}
			]}
		]`))
	})

	types, err := c.ListTypes(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.True(t, types[0].Active)
	require.Len(t, types[0].SubTypes, 2)
	assert.True(t, types[0].SubTypes[0].Active)
	assert.False(t, types[0].SubTypes[1].Active)
	assert.False(t, types[0].SubTypes[1].RestrictedUse)
	assert.True(t, types[0].SubTypes[0].SyncToLegacy, "legacy types are written to the legacy system")
}
