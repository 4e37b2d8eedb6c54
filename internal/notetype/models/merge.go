package models

import (
	"slices"
	"strings"
)

// Merge combines a local catalog (first) with a legacy-supplied catalog
// (second) into one presentation tree.
//
// Parents are keyed by code. A parent present in both lists takes description,
// active and sensitive from second, and its sub-types are merged by sub-code
// with the same precedence. RestrictedUse and SyncToLegacy are definition-time
// metadata and keep the first list's value when a sub-type appears in both.
//
// After merging, every inactive parent forces its sub-types inactive, and
// parents and sub-types are sorted case-insensitively by description (stable).
// Inputs are never modified; nil inputs are treated as empty.
func Merge(first, second []NoteType) []NoteType {
	merged := mergeTypes(first, second)
	for i := range merged {
		if !merged[i].Active {
			for j := range merged[i].SubTypes {
				merged[i].SubTypes[j].Active = false
			}
		}
		sortSubTypes(merged[i].SubTypes)
	}
	slices.SortStableFunc(merged, func(a, b NoteType) int {
		return compareDescriptions(a.Description, b.Description)
	})
	return merged
}

// Normalize sorts a single catalog and propagates inactive parents. It is
// equivalent to merging the catalog with itself.
func Normalize(types []NoteType) []NoteType {
	return Merge(types, nil)
}

func mergeTypes(first, second []NoteType) []NoteType {
	index := make(map[string]int, len(first)+len(second))
	out := make([]NoteType, 0, len(first)+len(second))
	for _, list := range [][]NoteType{first, second} {
		for _, t := range list {
			if i, ok := index[t.Code]; ok {
				out[i] = mergeType(out[i], t)
				continue
			}
			index[t.Code] = len(out)
			out = append(out, t.clone())
		}
	}
	return out
}

func mergeType(base, override NoteType) NoteType {
	return NoteType{
		Code:        base.Code,
		Description: override.Description,
		Active:      override.Active,
		Sensitive:   override.Sensitive,
		SubTypes:    mergeSubTypes(base.SubTypes, override.SubTypes),
	}
}

func mergeSubTypes(base, override []NoteSubType) []NoteSubType {
	index := make(map[string]int, len(base)+len(override))
	out := make([]NoteSubType, 0, len(base)+len(override))
	for _, st := range base {
		if i, ok := index[st.Code]; ok {
			out[i] = mergeSubType(out[i], st)
			continue
		}
		index[st.Code] = len(out)
		out = append(out, st)
	}
	for _, st := range override {
		if i, ok := index[st.Code]; ok {
			out[i] = mergeSubType(out[i], st)
			continue
		}
		index[st.Code] = len(out)
		out = append(out, st)
	}
	return out
}

func mergeSubType(base, override NoteSubType) NoteSubType {
	return NoteSubType{
		Code:          base.Code,
		Description:   override.Description,
		Active:        override.Active,
		Sensitive:     override.Sensitive,
		RestrictedUse: base.RestrictedUse,
		SyncToLegacy:  base.SyncToLegacy,
	}
}

func sortSubTypes(subTypes []NoteSubType) {
	slices.SortStableFunc(subTypes, func(a, b NoteSubType) int {
		return compareDescriptions(a.Description, b.Description)
	})
}

func compareDescriptions(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}
