// Package catalog orchestrates the extraction pipeline: it fetches the seed
// listing pages for a content type, runs the extraction strategies, enriches
// rows from detail pages, normalizes and deduplicates the results, and
// serves paginated catalog pages plus single-record lookups.
package catalog

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	porthu "github.com/zmolnar/porthu-addon"
	"golang.org/x/sync/errgroup"
)

// DefaultLimit is the catalog page size used when the caller supplies none.
const DefaultLimit = 50

// reverseLookupLimit is the page size used when FetchMeta has to re-run the
// catalog fetch to locate an id that is not cached.
const reverseLookupLimit = 120

// Defaults for the enrichment fan-out.
const (
	DefaultEnrichLimit = 50
	DefaultConcurrency = 8
)

// DefaultSeeds returns the listing pages scanned per content type, in fetch
// order. Unrecognized types fall back to the movie list.
func DefaultSeeds() map[porthu.Type][]string {
	return map[porthu.Type][]string{
		porthu.TypeMovie:  {"https://port.hu/film", "https://port.hu/mozi", "https://port.hu"},
		porthu.TypeSeries: {"https://port.hu/sorozat", "https://port.hu/tv", "https://port.hu"},
	}
}

// Ensure Service implements porthu.CatalogService at compile time.
var _ porthu.CatalogService = (*Service)(nil)

// Service implements the catalog pipeline. The zero value is not usable;
// populate at least Fetcher and Extractors. All state (meta cache) lives on
// the Service, so concurrent calls on one value are safe and separate
// values are fully independent.
type Service struct {
	Fetcher    porthu.Fetcher
	Extractors []porthu.RowExtractor // run in order; structured before heuristic
	Hints      porthu.HintSource     // optional; nil disables enrichment
	Limiter    porthu.DomainLimiter  // optional

	Seeds       map[porthu.Type][]string // nil means DefaultSeeds()
	RetryDelays []time.Duration          // nil means DefaultRetryDelays()
	Concurrency int                      // enrichment fan-out cap, default 8
	EnrichLimit int                      // detail fetch quota per call, default 50

	mu        sync.Mutex
	metaCache map[string]*porthu.Meta
}

// seedResult holds the outcome of processing a single seed page.
type seedResult struct {
	rows []porthu.Row
	err  error
}

// FetchCatalog fetches all seed pages for the requested type, runs the full
// pipeline, and returns one page of results. A failed seed page contributes
// one warning string and nothing else; partial failure never aborts the
// call.
func (s *Service) FetchCatalog(ctx context.Context, req porthu.CatalogRequest) (*porthu.CatalogResult, error) {
	if req.Skip < 0 {
		req.Skip = 0
	}
	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}

	seeds := s.seedsFor(req.Type)

	// Fan out over seed pages; results are collected by index so row order
	// equals seed-list order regardless of completion order.
	results := make([]seedResult, len(seeds))
	g, gctx := errgroup.WithContext(ctx)
	for i, seedURL := range seeds {
		g.Go(func() error {
			rows, err := s.fetchPage(gctx, seedURL)
			results[i] = seedResult{rows: rows, err: err}
			return nil
		})
	}
	_ = g.Wait()

	var rows []porthu.Row
	var warnings []string
	for i, res := range results {
		if res.err != nil {
			warnings = append(warnings, seeds[i]+": "+res.err.Error())
			continue
		}
		rows = append(rows, res.rows...)
	}

	s.enrichRows(ctx, rows)

	metas := make([]*porthu.Meta, 0, len(rows))
	for _, row := range rows {
		if meta := ToMeta(req.Type, row); meta != nil {
			metas = append(metas, meta)
		}
	}
	metas = DedupeMetas(metas)

	if req.Genre != "" {
		metas = filterByGenre(metas, req.Genre)
	}
	// Display-quality gate: records without an image are unusable in the
	// catalog grid, whatever else they carry.
	metas = filterWithPoster(metas)

	page := paginate(metas, req.Skip, req.Limit)

	s.mu.Lock()
	if s.metaCache == nil {
		s.metaCache = make(map[string]*porthu.Meta)
	}
	for _, meta := range page {
		s.metaCache[meta.ID] = meta
	}
	s.mu.Unlock()

	return &porthu.CatalogResult{
		Source:   porthu.SourceName,
		Type:     req.Type,
		Genre:    req.Genre,
		Skip:     req.Skip,
		Limit:    req.Limit,
		Metas:    page,
		Warnings: warnings,
	}, nil
}

// FetchMeta resolves a single record by id: cache first, then a catalog
// re-fetch for the requested type, then the opposite type. The second pass
// compensates for heuristic type inference during extraction.
func (s *Service) FetchMeta(ctx context.Context, typ porthu.Type, id string) (*porthu.Meta, error) {
	s.mu.Lock()
	cached, ok := s.metaCache[id]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	primary := typ
	if !primary.Valid() {
		primary = porthu.TypeMovie
	}

	for _, t := range []porthu.Type{primary, primary.Opposite()} {
		result, err := s.FetchCatalog(ctx, porthu.CatalogRequest{Type: t, Limit: reverseLookupLimit})
		if err != nil {
			return nil, err
		}
		for _, meta := range result.Metas {
			if meta.ID == id {
				return meta, nil
			}
		}
	}

	return nil, porthu.Errorf(porthu.ENOTFOUND, "meta %q not found", id)
}

// FetchStreams derives the stream list for a record: a single "open
// externally" stream pointing at the record's website, or nothing.
func (s *Service) FetchStreams(ctx context.Context, typ porthu.Type, id string) ([]porthu.Stream, error) {
	meta, err := s.FetchMeta(ctx, typ, id)
	if err != nil {
		if porthu.ErrorCode(err) == porthu.ENOTFOUND {
			return []porthu.Stream{}, nil
		}
		return nil, err
	}
	if meta.Website == "" {
		return []porthu.Stream{}, nil
	}
	return []porthu.Stream{
		{
			Name:        "Port.hu",
			Title:       "Open on Port.hu",
			ExternalURL: meta.Website,
		},
	}, nil
}

// fetchPage retrieves one seed page and runs every extractor over it,
// concatenating the rows in extractor order.
func (s *Service) fetchPage(ctx context.Context, pageURL string) ([]porthu.Row, error) {
	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, domainOf(pageURL)); err != nil {
			return nil, err
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetry(ctx, pageURL, s.Fetcher.Fetch, delays)
	if err != nil {
		return nil, err
	}

	var rows []porthu.Row
	for _, extractor := range s.Extractors {
		part, err := extractor.ExtractRows(html, pageURL)
		if err != nil {
			return nil, err
		}
		rows = append(rows, part...)
	}
	return rows, nil
}

func (s *Service) seedsFor(typ porthu.Type) []string {
	seeds := s.Seeds
	if seeds == nil {
		seeds = DefaultSeeds()
	}
	if list, ok := seeds[typ]; ok {
		return list
	}
	return seeds[porthu.TypeMovie]
}

// filterByGenre keeps metas whose genre list has a case-insensitive
// substring match for the requested genre.
func filterByGenre(metas []*porthu.Meta, genre string) []*porthu.Meta {
	needle := strings.ToLower(genre)
	filtered := metas[:0]
	for _, meta := range metas {
		for _, g := range meta.Genres {
			if strings.Contains(strings.ToLower(g), needle) {
				filtered = append(filtered, meta)
				break
			}
		}
	}
	return filtered
}

func filterWithPoster(metas []*porthu.Meta) []*porthu.Meta {
	filtered := metas[:0]
	for _, meta := range metas {
		if meta.Poster != "" {
			filtered = append(filtered, meta)
		}
	}
	return filtered
}

// paginate slices [skip, skip+limit) with bounds clamping.
func paginate(metas []*porthu.Meta, skip, limit int) []*porthu.Meta {
	if skip >= len(metas) {
		return []*porthu.Meta{}
	}
	end := skip + limit
	if end > len(metas) {
		end = len(metas)
	}
	return metas[skip:end]
}

func domainOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}
