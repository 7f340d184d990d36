package catalog

import (
	"context"
	"sync"

	porthu "github.com/zmolnar/porthu-addon"
	"github.com/zmolnar/porthu-addon/bloom"
	"github.com/zmolnar/porthu-addon/goquery"
)

// expectedDetailURLs sizes the failure filter; the false positive rate keeps
// wrongly-skipped fresh URLs to roughly one in ten thousand.
const (
	expectedDetailURLs = 10000
	failureFPRate      = 0.0001
)

// Ensure DetailService implements porthu.HintSource at compile time.
var _ porthu.HintSource = (*DetailService)(nil)

// DetailService resolves detail hints by fetching a record's own detail page
// and reading its head metadata. Successful hints are cached by canonical
// URL for the service's lifetime. Failed URLs go into a Bloom filter instead
// of the map, so a flood of dead links cannot grow the cache; a hit there
// yields an empty hint without re-fetching.
type DetailService struct {
	Fetcher      porthu.Fetcher
	Limiter      porthu.DomainLimiter        // optional
	Descriptions porthu.DescriptionExtractor // optional fallback when the head has no description

	mu     sync.Mutex
	hints  map[string]porthu.DetailHint
	failed *bloom.Filter
}

// NewDetailService creates a DetailService fetching through fetcher.
func NewDetailService(fetcher porthu.Fetcher) *DetailService {
	return &DetailService{
		Fetcher: fetcher,
		hints:   make(map[string]porthu.DetailHint),
		failed:  bloom.NewFilter(expectedDetailURLs, failureFPRate),
	}
}

// Hint fetches (or retrieves from cache) the detail hint for rawURL.
// Every failure path caches an empty hint and returns it; enrichment
// failures are never fatal.
func (s *DetailService) Hint(ctx context.Context, rawURL string) porthu.DetailHint {
	url := porthu.CanonicalizeURL(rawURL)
	if url == "" {
		return porthu.DetailHint{}
	}

	s.mu.Lock()
	if hint, ok := s.hints[url]; ok {
		s.mu.Unlock()
		return hint
	}
	if s.failed.Test(url) {
		s.mu.Unlock()
		return porthu.DetailHint{}
	}
	s.mu.Unlock()

	if s.Limiter != nil {
		if err := s.Limiter.Wait(ctx, domainOf(url)); err != nil {
			return s.markFailed(url)
		}
	}

	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return s.markFailed(url)
	}

	hint, err := goquery.ParseDetailHint(html, url)
	if err != nil {
		return s.markFailed(url)
	}

	if hint.Description == "" && s.Descriptions != nil {
		hint.Description = s.Descriptions.Description(html)
	}

	s.mu.Lock()
	s.hints[url] = hint
	s.mu.Unlock()
	return hint
}

func (s *DetailService) markFailed(url string) porthu.DetailHint {
	s.mu.Lock()
	s.failed.Add(url)
	s.mu.Unlock()
	return porthu.DetailHint{}
}
