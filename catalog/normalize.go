package catalog

import (
	"strings"

	porthu "github.com/zmolnar/porthu-addon"
)

// ToMeta converts one candidate row into a canonical Meta record for the
// requested catalog type. Returns nil when the row has no derivable name;
// such rows are silently dropped.
func ToMeta(target porthu.Type, row porthu.Row) *porthu.Meta {
	name := porthu.SanitizeText(row.Name)
	if name == "" {
		return nil
	}

	canonical := porthu.CanonicalizeURL(row.URL)
	if canonical == "" {
		// Rows without a URL still need a deterministic identity anchor.
		canonical = "urn:" + porthu.IDNamespace + ":" + row.Name
	}

	typ := normalizeType(target, row)

	return &porthu.Meta{
		ID:          porthu.MakeMetaID(typ, canonical, name),
		Type:        typ,
		Name:        name,
		Poster:      row.Poster,
		Description: row.Description,
		ReleaseInfo: row.ReleaseInfo,
		Genres:      splitGenres(row.Genre),
		Website:     canonical,
	}
}

// normalizeType resolves the effective content type. A requested type wins;
// otherwise series-indicating tokens in the row's URL, name, or genre text
// pick series, and everything else defaults to movie.
func normalizeType(target porthu.Type, row porthu.Row) porthu.Type {
	if target.Valid() {
		return target
	}
	bucket := strings.ToLower(row.URL + " " + row.Name + " " + row.Genre)
	if strings.Contains(bucket, "/adatlap/sorozat/") ||
		strings.Contains(bucket, "sorozat") ||
		strings.Contains(bucket, "series") {
		return porthu.TypeSeries
	}
	return porthu.TypeMovie
}

// splitGenres splits a comma-joined genre string into trimmed values,
// dropping empties. Returns nil for an empty input so the field is omitted
// from JSON output.
func splitGenres(genre string) []string {
	if genre == "" {
		return nil
	}
	var genres []string
	for _, part := range strings.Split(genre, ",") {
		if g := porthu.SanitizeText(part); g != "" {
			genres = append(genres, g)
		}
	}
	return genres
}
