// Package http provides the HTTP edge of the addon: the page fetcher used
// by the extraction pipeline, the sitemap-based seed discovery, and the
// Stremio-facing API server.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	porthu "github.com/zmolnar/porthu-addon"
)

// DefaultFetchTimeout bounds every page request. The scraped site is slow
// under load; 12s matches what its listing pages need on a cold cache.
const DefaultFetchTimeout = 12 * time.Second

// The site serves a consent interstitial to clients it does not recognize
// as browsers, so every request carries a browser header set.
var defaultHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9,hu;q=0.8",
}

// Ensure Fetcher implements porthu.Fetcher at compile time.
var _ porthu.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML pages with a fixed browser-like header set.
// Status codes outside 200-399 are errors.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for page requests.
// Defaults to DefaultFetchTimeout (12s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new page fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	for key, value := range defaultHeaders {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 400 {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
