package models

import (
	"math"
	"slices"
	"strings"

	dErrors "casenotes/pkg/domain-errors"
)

// SortField is a case note attribute lists can be ordered by.
type SortField string

const (
	SortByOccurredAt SortField = "occurredAt"
	SortByCreatedAt  SortField = "createdAt"
)

type Direction string

const (
	Ascending  Direction = "ASC"
	Descending Direction = "DESC"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 1000
)

// Sort is a single-field ordering. Multi-field orderings are not supported.
type Sort struct {
	Field     SortField
	Direction Direction
}

// DefaultSort orders by occurrence time, newest first.
var DefaultSort = Sort{Field: SortByOccurredAt, Direction: Descending}

var sortFieldAliases = map[string]SortField{
	"occurredat":         SortByOccurredAt,
	"occurrencedatetime": SortByOccurredAt,
	"createdat":          SortByCreatedAt,
	"creationdatetime":   SortByCreatedAt,
}

// ParseSort parses Spring-style "field,DIR" values. Only the first value is
// honoured; an empty input yields DefaultSort.
func ParseSort(values []string) (Sort, error) {
	var first string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			first = v
			break
		}
	}
	if first == "" {
		return DefaultSort, nil
	}

	parts := strings.Split(first, ",")
	field, ok := sortFieldAliases[strings.ToLower(strings.TrimSpace(parts[0]))]
	if !ok {
		return Sort{}, dErrors.New(dErrors.CodeBadRequest, "unsupported sort field: "+parts[0])
	}
	sort := Sort{Field: field, Direction: Descending}
	if len(parts) > 1 {
		switch strings.ToUpper(strings.TrimSpace(parts[1])) {
		case "ASC":
			sort.Direction = Ascending
		case "DESC", "":
		default:
			return Sort{}, dErrors.New(dErrors.CodeBadRequest, "unsupported sort direction: "+parts[1])
		}
	}
	return sort, nil
}

// PageRequest selects a window of a sorted list.
type PageRequest struct {
	Page int
	Size int
	Sort Sort
}

// Offset is the index of the first element of the page.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

func (p PageRequest) Validate() error {
	if p.Page < 0 {
		return dErrors.New(dErrors.CodeBadRequest, "page must not be negative")
	}
	if p.Size <= 0 {
		return dErrors.New(dErrors.CodeBadRequest, "page size must be positive")
	}
	if p.Page > math.MaxInt/p.Size {
		return dErrors.New(dErrors.CodeBadRequest, "page is out of range")
	}
	return nil
}

// Page is one window of a list together with the total number of elements.
type Page[T any] struct {
	Content       []T
	TotalElements int
	Number        int
	Size          int
}

// SortCaseNotes orders notes in place by a single field. Equal keys keep their
// relative order.
func SortCaseNotes(notes []CaseNote, s Sort) {
	slices.SortStableFunc(notes, func(a, b CaseNote) int {
		c := a.OccurredAt.Compare(b.OccurredAt)
		if s.Field == SortByCreatedAt {
			c = a.CreatedAt.Compare(b.CreatedAt)
		}
		if s.Direction == Ascending {
			return c
		}
		return -c
	})
}

// Window returns items[offset : offset+size], clamped to the slice bounds.
func Window[T any](items []T, offset, size int) []T {
	offset = max(offset, 0)
	if offset >= len(items) || size <= 0 {
		return []T{}
	}
	end := min(offset+size, len(items))
	return items[offset:end]
}
