package handler

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"casenotes/internal/casenote/models"
	dErrors "casenotes/pkg/domain-errors"
)

// CreateCaseNoteRequest is the HTTP request body for POST /case-notes/{personId}.
type CreateCaseNoteRequest struct {
	Type               string     `json:"type" validate:"required,max=12"`
	SubType            string     `json:"subType" validate:"required,max=12"`
	OccurrenceDateTime *time.Time `json:"occurrenceDateTime"`
	Text               string     `json:"text" validate:"required,max=4000"`
	LocationID         string     `json:"locationId" validate:"max=6"`
	SystemGenerated    bool       `json:"systemGenerated"`
}

func (r CreateCaseNoteRequest) toModel() models.CreateRequest {
	return models.CreateRequest{
		Type:            strings.TrimSpace(r.Type),
		SubType:         strings.TrimSpace(r.SubType),
		OccurredAt:      r.OccurrenceDateTime,
		Text:            r.Text,
		LocationID:      r.LocationID,
		SystemGenerated: r.SystemGenerated,
	}
}

// AmendCaseNoteRequest is the HTTP request body for PUT /case-notes/{personId}/{caseNoteId}.
type AmendCaseNoteRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

// dateLayouts are the accepted forms of the from and to query parameters.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

// parseListQuery reads the filter and page of a list request.
func parseListQuery(q url.Values) (models.Filter, models.PageRequest, error) {
	var filter models.Filter
	types, err := models.ParseTypeFilter(q.Get("type"))
	if err != nil {
		return filter, models.PageRequest{}, err
	}
	filter.Types = types
	if filter.From, err = parseDate(q, "from"); err != nil {
		return filter, models.PageRequest{}, err
	}
	if filter.To, err = parseDate(q, "to"); err != nil {
		return filter, models.PageRequest{}, err
	}
	filter.LocationID = strings.TrimSpace(q.Get("locationId"))
	filter.AuthorUsername = strings.TrimSpace(q.Get("authorUsername"))
	if raw := q.Get("includeSensitive"); raw != "" {
		include, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, models.PageRequest{}, dErrors.New(dErrors.CodeBadRequest, "includeSensitive must be a boolean")
		}
		filter.IncludeSensitive = include
	}

	page := models.PageRequest{Size: models.DefaultPageSize}
	if page.Page, err = parseInt(q, "page", 0); err != nil {
		return filter, page, err
	}
	if page.Size, err = parseInt(q, "size", models.DefaultPageSize); err != nil {
		return filter, page, err
	}
	if page.Size > models.MaxPageSize {
		return filter, page, dErrors.New(dErrors.CodeBadRequest, "size must not exceed "+strconv.Itoa(models.MaxPageSize))
	}
	if page.Sort, err = models.ParseSort(q["sort"]); err != nil {
		return filter, page, err
	}
	return filter, page, nil
}

func parseDate(q url.Values, key string) (*time.Time, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, dErrors.New(dErrors.CodeBadRequest, key+" must be an ISO-8601 date-time")
}

func parseInt(q url.Values, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, dErrors.New(dErrors.CodeBadRequest, key+" must be an integer")
	}
	return n, nil
}
