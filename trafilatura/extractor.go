// Package trafilatura recovers plain-text descriptions from detail pages
// whose head metadata is missing or unusable.
package trafilatura

import (
	"strings"
	"unicode/utf8"

	"github.com/markusmobius/go-trafilatura"
	porthu "github.com/zmolnar/porthu-addon"
)

// Descriptions longer than this are cut at a word boundary. Stremio meta
// previews only show the first few sentences anyway.
const maxDescriptionLen = 500

// Ensure Extractor implements porthu.DescriptionExtractor at compile time.
var _ porthu.DescriptionExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull the main text out of a detail page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Description extracts the page's main text and returns its first paragraph,
// trimmed to a displayable length. Returns an empty string when the page has
// no extractable content.
func (e *Extractor) Description(html string) string {
	if html == "" {
		return ""
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(html), opts)
	if err != nil {
		return ""
	}

	text := porthu.SanitizeText(firstParagraph(result.ContentText))
	return truncate(text, maxDescriptionLen)
}

func firstParagraph(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.Index(text, "\n\n"); i >= 0 {
		return text[:i]
	}
	return text
}

func truncate(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:max])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
