package porthu

import "context"

// Row is a transient extraction result: one candidate record scraped from a
// listing page, before id assignment and deduplication. Many rows may
// describe the same real-world item.
type Row struct {
	Name        string
	URL         string // possibly relative to the page it was found on
	Poster      string
	Description string
	ReleaseInfo string
	Genre       string // free text, possibly comma-joined
}

// RowExtractor produces candidate rows from a fetched page. Implementations
// are strategies (structured metadata, DOM heuristics) run in order by the
// catalog service; their outputs are concatenated before deduplication.
type RowExtractor interface {
	// ExtractRows parses the page HTML and returns candidate rows.
	// The pageURL is used to resolve relative references.
	ExtractRows(html string, pageURL string) ([]Row, error)
}

// DetailHint holds supplementary fields scraped from a record's own detail
// page. Hints only ever fill gaps; they never override present values.
type DetailHint struct {
	Name        string
	Poster      string
	Description string
}

// Empty reports whether the hint carries no usable field.
func (h DetailHint) Empty() bool {
	return h == DetailHint{}
}

// HintSource resolves detail hints for record URLs.
type HintSource interface {
	// Hint fetches (or retrieves from cache) the detail hint for url.
	// Fetch and parse failures are non-fatal and yield an empty hint;
	// the failure is remembered so the URL is not re-fetched.
	Hint(ctx context.Context, url string) DetailHint
}

// DescriptionExtractor recovers a description from raw detail-page HTML when
// the page head carries no usable metadata.
type DescriptionExtractor interface {
	// Description returns a plain-text description, or an empty string if
	// none can be derived.
	Description(html string) string
}
