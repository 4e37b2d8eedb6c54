package models

import (
	"slices"
	"strings"
	"time"

	dErrors "casenotes/pkg/domain-errors"
	pstrings "casenotes/pkg/platform/strings"
)

// TypeFilter selects a parent type and, optionally, a set of its sub-types.
// An empty SubTypes matches every sub-type of Type.
type TypeFilter struct {
	Type     string
	SubTypes []string
}

// Filter narrows a person's case notes. It is built per request and has no identity.
type Filter struct {
	Types          []TypeFilter
	From           *time.Time
	To             *time.Time
	LocationID     string
	AuthorUsername string
	// IncludeSensitive asks for sensitive notes. Services only honour it for
	// callers allowed to view them.
	IncludeSensitive bool
}

// ParseTypeFilter parses "type+subType,type+subType,type" selections.
// Sub-types of the same parent are grouped in order of first appearance; a bare
// parent selects all of its sub-types. A space is accepted in place of '+'
// because form decoding turns '+' into a space.
func ParseTypeFilter(raw string) ([]TypeFilter, error) {
	entries := pstrings.SplitList(raw)
	if len(entries) == 0 {
		return nil, nil
	}

	var filters []TypeFilter
	index := make(map[string]int)
	wholeType := make(map[string]bool)
	for _, entry := range entries {
		parts := strings.FieldsFunc(entry, func(r rune) bool { return r == '+' || r == ' ' })
		hasSeparator := strings.ContainsAny(entry, "+ ")
		if len(parts) == 0 || len(parts) > 2 || (hasSeparator && len(parts) != 2) {
			return nil, dErrors.New(dErrors.CodeBadRequest, "invalid case note type filter: "+entry)
		}
		typeCode := parts[0]
		i, seen := index[typeCode]
		if !seen {
			i = len(filters)
			index[typeCode] = i
			filters = append(filters, TypeFilter{Type: typeCode})
		}
		if len(parts) == 1 {
			wholeType[typeCode] = true
			continue
		}
		if !slices.Contains(filters[i].SubTypes, parts[1]) {
			filters[i].SubTypes = append(filters[i].SubTypes, parts[1])
		}
	}
	for i := range filters {
		if wholeType[filters[i].Type] {
			filters[i].SubTypes = nil
		}
	}
	return filters, nil
}

// Validate rejects filters that cannot match anything meaningful.
func (f Filter) Validate() error {
	for _, tf := range f.Types {
		if strings.TrimSpace(tf.Type) == "" {
			return dErrors.New(dErrors.CodeBadRequest, "case note type filter requires a type")
		}
	}
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return dErrors.New(dErrors.CodeBadRequest, "from date must not be after to date")
	}
	return nil
}

// Matches applies the filter to a single note, including the sensitivity gate.
func (f Filter) Matches(n *CaseNote) bool {
	if n.Sensitive && !f.IncludeSensitive {
		return false
	}
	if len(f.Types) > 0 && !f.matchesType(n) {
		return false
	}
	if f.From != nil && n.OccurredAt.Before(*f.From) {
		return false
	}
	if f.To != nil && n.OccurredAt.After(*f.To) {
		return false
	}
	if f.LocationID != "" && f.LocationID != n.LocationID {
		return false
	}
	if f.AuthorUsername != "" && !strings.EqualFold(f.AuthorUsername, n.AuthorUsername) {
		return false
	}
	return true
}

func (f Filter) matchesType(n *CaseNote) bool {
	for _, tf := range f.Types {
		if tf.Type != n.Type {
			continue
		}
		if len(tf.SubTypes) == 0 || slices.Contains(tf.SubTypes, n.SubType) {
			return true
		}
	}
	return false
}
