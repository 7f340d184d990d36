package catalog

import (
	"context"
	"unicode/utf8"

	porthu "github.com/zmolnar/porthu-addon"
	"golang.org/x/sync/errgroup"
)

// enrichRows patches rows that lack a poster by fetching their own detail
// pages, bounded by the per-call quota and the concurrency cap. Hints only
// fill gaps; they never overwrite a present field, so the order in which
// rows complete cannot change the merged result.
func (s *Service) enrichRows(ctx context.Context, rows []porthu.Row) {
	if s.Hints == nil {
		return
	}

	quota := s.EnrichLimit
	if quota <= 0 {
		quota = DefaultEnrichLimit
	}

	var selected []*porthu.Row
	for i := range rows {
		if rows[i].Poster == "" && rows[i].URL != "" {
			selected = append(selected, &rows[i])
			if len(selected) == quota {
				break
			}
		}
	}

	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for _, row := range selected {
		g.Go(func() error {
			applyHint(row, s.Hints.Hint(ctx, row.URL))
			return nil
		})
	}
	_ = g.Wait()
}

// applyHint fills the row's missing fields from a detail hint.
func applyHint(row *porthu.Row, hint porthu.DetailHint) {
	if row.Poster == "" && porthu.IsPosterURL(hint.Poster) {
		row.Poster = hint.Poster
	}
	if row.Description == "" && hint.Description != "" {
		row.Description = hint.Description
	}
	if utf8.RuneCountInString(row.Name) < 2 && hint.Name != "" {
		row.Name = hint.Name
	}
}
