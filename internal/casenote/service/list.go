package service

import (
	"context"

	"casenotes/internal/casenote/metrics"
	"casenotes/internal/casenote/models"
	"casenotes/internal/policy"
)

// List returns one page of personID's timeline.
//
// The local store is read first and decides the single legacy call. When the
// person has no matching local notes the legacy page for the request is
// returned as is. Otherwise the whole matching legacy timeline is fetched in a
// single page of maxLegacyPageSize, merged with the local notes, sorted on the
// requested field and windowed to the requested page.
func (s *Service) List(ctx context.Context, caller models.Caller, personID string, filter models.Filter, page models.PageRequest) (result *models.Page[models.CaseNote], err error) {
	ctx, span := s.startSpan(ctx, "casenote.List", personID)
	defer func() { endSpan(span, err) }()

	if err := filter.Validate(); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	if page.Sort.Field == "" {
		page.Sort = models.DefaultSort
	}
	filter.IncludeSensitive = filter.IncludeSensitive && policy.CanViewSensitive(caller.Roles)

	local, err := s.local.FindByFilter(ctx, personID, filter)
	if err != nil {
		return nil, err
	}

	if len(local) == 0 {
		legacyPage, err := s.listLegacy(ctx, personID, filter, page)
		if err != nil {
			return nil, err
		}
		if s.metrics != nil {
			s.metrics.ObserveList(metrics.ListModeLegacyOnly, 0)
		}
		return fromLegacyPage(legacyPage), nil
	}

	all, err := s.listLegacy(ctx, personID, filter, models.PageRequest{
		Page: 0,
		Size: s.maxLegacyPageSize,
		Sort: page.Sort,
	})
	if err != nil {
		return nil, err
	}

	combined := make([]models.CaseNote, 0, len(all.Content)+len(local))
	for _, l := range all.Content {
		combined = append(combined, models.FromLegacy(l))
	}
	for _, n := range local {
		note := *n
		note.Amendments = append([]models.Amendment(nil), n.Amendments...)
		note.SortAmendments()
		combined = append(combined, note)
	}
	models.SortCaseNotes(combined, page.Sort)

	if s.metrics != nil {
		s.metrics.ObserveList(metrics.ListModeMerged, len(combined))
	}
	if len(all.Content) < all.TotalElements {
		s.logger.WarnContext(ctx, "legacy timeline exceeds merge page size",
			"person_id", personID,
			"legacy_total", all.TotalElements,
			"fetched", len(all.Content),
		)
	}

	window := models.Window(combined, page.Offset(), page.Size)
	return &models.Page[models.CaseNote]{
		Content:       append([]models.CaseNote(nil), window...),
		TotalElements: all.TotalElements + len(local),
		Number:        page.Page,
		Size:          page.Size,
	}, nil
}

func (s *Service) listLegacy(ctx context.Context, personID string, filter models.Filter, page models.PageRequest) (*models.Page[models.LegacyCaseNote], error) {
	var result *models.Page[models.LegacyCaseNote]
	err := s.callLegacy(ctx, legacyOpList, func(ctx context.Context) error {
		var err error
		result, err = s.legacy.ListNotes(ctx, personID, filter, page)
		return err
	})
	if err != nil {
		return nil, legacyError(err)
	}
	return result, nil
}

func fromLegacyPage(p *models.Page[models.LegacyCaseNote]) *models.Page[models.CaseNote] {
	content := make([]models.CaseNote, 0, len(p.Content))
	for _, l := range p.Content {
		content = append(content, models.FromLegacy(l))
	}
	return &models.Page[models.CaseNote]{
		Content:       content,
		TotalElements: p.TotalElements,
		Number:        p.Number,
		Size:          p.Size,
	}
}
