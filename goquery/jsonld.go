// Package goquery implements the HTML extraction strategies of the addon on
// top of PuerkitoBio/goquery: the structured JSON-LD extractor, the DOM card
// heuristic extractor, and the detail-page hint parser.
package goquery

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
	porthu "github.com/zmolnar/porthu-addon"
)

// Ensure JSONLDExtractor implements porthu.RowExtractor at compile time.
var _ porthu.RowExtractor = (*JSONLDExtractor)(nil)

// JSONLDExtractor yields candidate rows from embedded JSON-LD metadata
// blocks. Malformed blocks are skipped; extraction continues with the rest.
type JSONLDExtractor struct{}

// NewJSONLDExtractor creates a new JSONLDExtractor.
func NewJSONLDExtractor() *JSONLDExtractor {
	return &JSONLDExtractor{}
}

// Entity types that yield a candidate row when they appear as a block's
// @type (scalar or list).
var jsonldEntityTypes = map[string]bool{
	"Movie":        true,
	"TVSeries":     true,
	"CreativeWork": true,
}

// ExtractRows parses the page and returns one row per list element of every
// ItemList block plus one row per matching typed entity.
func (e *JSONLDExtractor) ExtractRows(html string, pageURL string) ([]porthu.Row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, porthu.Errorf(porthu.EINVALID, "failed to parse HTML: %v", err)
	}

	var rows []porthu.Row
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		raw := sel.Text()
		if strings.TrimSpace(raw) == "" {
			return
		}

		var parsed any
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			// Malformed block: skip it, keep scanning.
			return
		}

		for _, entry := range flattenEntries(parsed) {
			rows = append(rows, entryRows(entry, pageURL)...)
		}
	})

	return rows, nil
}

// flattenEntries unwraps the containers a JSON-LD script can carry: a bare
// entity, a top-level array of entities, or an @graph envelope.
func flattenEntries(parsed any) []map[string]any {
	var raw []any
	switch v := parsed.(type) {
	case []any:
		raw = v
	case map[string]any:
		if graph, ok := v["@graph"].([]any); ok {
			raw = graph
		} else {
			raw = []any{v}
		}
	default:
		return nil
	}

	entries := make([]map[string]any, 0, len(raw))
	for _, el := range raw {
		if m, ok := el.(map[string]any); ok {
			entries = append(entries, m)
		}
	}
	return entries
}

// entryRows emits the candidate rows contained in one JSON-LD entry.
func entryRows(entry map[string]any, pageURL string) []porthu.Row {
	var rows []porthu.Row

	if listElements, ok := entry["itemListElement"].([]any); ok {
		for _, el := range listElements {
			listEl, ok := el.(map[string]any)
			if !ok {
				continue
			}
			// A ListItem usually nests its payload under "item", but some
			// pages inline the fields on the element itself.
			item := listEl
			if nested, ok := listEl["item"].(map[string]any); ok {
				item = nested
			}
			rows = append(rows, porthu.Row{
				Name:        porthu.SanitizeText(firstString(item["name"], listEl["name"])),
				URL:         porthu.Absolutize(pageURL, firstString(item["url"], listEl["url"])),
				Poster:      porthu.Absolutize(pageURL, stringValue(item["image"])),
				Description: porthu.SanitizeText(stringValue(item["description"])),
				ReleaseInfo: porthu.SanitizeText(firstString(item["datePublished"], item["releaseDate"])),
				Genre:       porthu.SanitizeText(genreValue(item["genre"])),
			})
		}
	}

	if matchesEntityType(entry["@type"]) {
		rows = append(rows, porthu.Row{
			Name:        porthu.SanitizeText(stringValue(entry["name"])),
			URL:         porthu.Absolutize(pageURL, stringValue(entry["url"])),
			Poster:      porthu.Absolutize(pageURL, stringValue(entry["image"])),
			Description: porthu.SanitizeText(stringValue(entry["description"])),
			ReleaseInfo: porthu.SanitizeText(firstString(entry["datePublished"], entry["releaseDate"])),
			Genre:       porthu.SanitizeText(genreValue(entry["genre"])),
		})
	}

	return rows
}

// matchesEntityType reports whether a @type value (scalar or list) names one
// of the entity types we extract.
func matchesEntityType(typ any) bool {
	switch v := typ.(type) {
	case string:
		return jsonldEntityTypes[v]
	case []any:
		for _, el := range v {
			if s, ok := el.(string); ok && jsonldEntityTypes[s] {
				return true
			}
		}
	}
	return false
}

// genreValue renders a genre field: list values are joined with ", ",
// scalars pass through.
func genreValue(v any) string {
	if list, ok := v.([]any); ok {
		parts := make([]string, 0, len(list))
		for _, el := range list {
			if s := stringValue(el); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	}
	return stringValue(v)
}

// firstString returns the first value that renders to a non-empty string.
func firstString(values ...any) string {
	for _, v := range values {
		if s := stringValue(v); s != "" {
			return s
		}
	}
	return ""
}

// stringValue returns v if it is a string, otherwise an empty string.
func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
