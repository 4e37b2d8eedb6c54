// Package legacy is the HTTP client for the legacy case note system.
//
// Not-found answers surface as sentinel.ErrNotFound. Every other failure is
// an *Error, which matches sentinel.ErrUnavailable. A circuit breaker fails
// calls fast while the legacy system is down.
package legacy

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"casenotes/internal/casenote/models"
	notetypemodels "casenotes/internal/notetype/models"
	"casenotes/pkg/platform/circuit"
	"casenotes/pkg/platform/sentinel"
)

const (
	defaultTimeout  = 10 * time.Second
	maxErrorBodyLen = 512
)

// Client calls the legacy case note API.
type Client struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	timeout    time.Duration
	breaker    *circuit.Breaker
	logger     *slog.Logger
}

type Option func(*Client)

func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every call, in addition to the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse legacy base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("legacy base url %q must be absolute", baseURL)
	}
	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{},
		timeout:    defaultTimeout,
		breaker:    circuit.New("legacy-casenotes"),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) CreateNote(ctx context.Context, personID string, req models.LegacyCreateRequest) (*models.LegacyCaseNote, error) {
	body := createDTO{
		LocationID:         req.LocationID,
		Type:               req.Type,
		SubType:            req.SubType,
		OccurrenceDateTime: req.OccurredAt,
		Text:               req.Text,
		AuthorUsername:     req.AuthorUsername,
	}
	var out caseNoteDTO
	if err := c.do(ctx, "create_note", http.MethodPost, c.notePath(personID), nil, body, &out); err != nil {
		return nil, err
	}
	note := out.toModel()
	return &note, nil
}

func (c *Client) AmendNote(ctx context.Context, personID string, legacyID int64, req models.LegacyAmendRequest) (*models.LegacyCaseNote, error) {
	body := amendDTO{Text: req.Text, AuthorUsername: req.AuthorUsername}
	var out caseNoteDTO
	path := c.notePath(personID, strconv.FormatInt(legacyID, 10))
	if err := c.do(ctx, "amend_note", http.MethodPut, path, nil, body, &out); err != nil {
		return nil, err
	}
	note := out.toModel()
	return &note, nil
}

func (c *Client) GetNote(ctx context.Context, personID string, legacyID int64) (*models.LegacyCaseNote, error) {
	var out caseNoteDTO
	path := c.notePath(personID, strconv.FormatInt(legacyID, 10))
	if err := c.do(ctx, "get_note", http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	note := out.toModel()
	return &note, nil
}

func (c *Client) ListNotes(ctx context.Context, personID string, filter models.Filter, page models.PageRequest) (*models.Page[models.LegacyCaseNote], error) {
	var out pageDTO
	if err := c.do(ctx, "list_notes", http.MethodGet, c.notePath(personID), listQuery(filter, page), nil, &out); err != nil {
		return nil, err
	}
	content := make([]models.LegacyCaseNote, 0, len(out.Content))
	for _, d := range out.Content {
		content = append(content, d.toModel())
	}
	return &models.Page[models.LegacyCaseNote]{
		Content:       content,
		TotalElements: out.TotalElements,
		Number:        out.Number,
		Size:          out.Size,
	}, nil
}

// ListTypes returns the legacy type catalog.
func (c *Client) ListTypes(ctx context.Context) ([]notetypemodels.NoteType, error) {
	var out []typeDTO
	if err := c.do(ctx, "list_types", http.MethodGet, c.path("case-notes", "types"), nil, nil, &out); err != nil {
		return nil, err
	}
	types := make([]notetypemodels.NoteType, 0, len(out))
	for _, d := range out {
		types = append(types, d.toModel())
	}
	return types, nil
}

func (c *Client) notePath(personID string, rest ...string) string {
	return c.path(append([]string{"case-notes", personID}, rest...)...)
}

func (c *Client) path(segments ...string) string {
	escaped := make([]string, len(segments))
	for i, s := range segments {
		escaped[i] = url.PathEscape(s)
	}
	return c.baseURL.Path + "/" + strings.Join(escaped, "/")
}

var legacySortFields = map[models.SortField]string{
	models.SortByOccurredAt: "occurrenceDateTime",
	models.SortByCreatedAt:  "creationDateTime",
}

func listQuery(filter models.Filter, page models.PageRequest) url.Values {
	q := url.Values{}
	for _, tf := range filter.Types {
		if len(tf.SubTypes) == 0 {
			q.Add("type", tf.Type)
			continue
		}
		for _, sub := range tf.SubTypes {
			q.Add("type", tf.Type+"+"+sub)
		}
	}
	if filter.From != nil {
		q.Set("from", filter.From.UTC().Format(time.RFC3339))
	}
	if filter.To != nil {
		q.Set("to", filter.To.UTC().Format(time.RFC3339))
	}
	if filter.LocationID != "" {
		q.Set("locationId", filter.LocationID)
	}
	if filter.AuthorUsername != "" {
		q.Set("authorUsername", filter.AuthorUsername)
	}
	q.Set("page", strconv.Itoa(page.Page))
	q.Set("size", strconv.Itoa(page.Size))
	sort := page.Sort
	if sort.Field == "" {
		sort = models.DefaultSort
	}
	q.Set("sort", legacySortFields[sort.Field]+","+string(sort.Direction))
	return q
}

func (c *Client) do(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	if !c.breaker.Allow() {
		return &Error{Category: CategoryCircuitOpen, Operation: op, Message: "legacy system circuit open"}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	err := c.roundTrip(ctx, op, method, path, query, body, out)
	var legacyErr *Error
	switch {
	case errors.As(err, &legacyErr) && legacyErr.Category != CategoryUnexpected && legacyErr.Category != CategoryRejected:
		if _, change := c.breaker.RecordFailure(); change.Opened {
			c.logger.WarnContext(ctx, "legacy circuit opened", "operation", op, "error", err)
		}
	default:
		if _, change := c.breaker.RecordSuccess(); change.Closed {
			c.logger.InfoContext(ctx, "legacy circuit closed", "operation", op)
		}
	}
	return err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, query url.Values, body, out any) error {
	u := *c.baseURL
	u.Path = path
	u.RawQuery = query.Encode()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal legacy %s request: %w", op, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("build legacy %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		category := CategoryTransport
		if errors.Is(err, context.DeadlineExceeded) {
			category = CategoryTimeout
		}
		return &Error{Category: category, Operation: op, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("legacy %s: %w", op, sentinel.ErrNotFound)
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return &Error{Category: CategoryRejected, Operation: op, Status: resp.StatusCode, Message: readSnippet(resp.Body)}
	case resp.StatusCode >= 500:
		return &Error{Category: CategoryServer, Operation: op, Status: resp.StatusCode, Message: readSnippet(resp.Body)}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &Error{Category: CategoryUnexpected, Operation: op, Status: resp.StatusCode, Message: readSnippet(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Category: CategoryBadData, Operation: op, Status: resp.StatusCode, Err: err}
	}
	return nil
}

func readSnippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, maxErrorBodyLen))
	return strings.TrimSpace(string(b))
}
