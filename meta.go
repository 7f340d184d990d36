package porthu

import "context"

// Type is a Stremio content type.
type Type string

// Content types served by the addon.
const (
	TypeMovie  Type = "movie"
	TypeSeries Type = "series"
)

// Valid reports whether t is a content type the addon serves.
func (t Type) Valid() bool {
	return t == TypeMovie || t == TypeSeries
}

// Opposite returns the other content type. Used by the meta reverse lookup:
// type inference during extraction is heuristic and may misclassify, so a
// failed lookup retries against the opposite catalog.
func (t Type) Opposite() Type {
	if t == TypeSeries {
		return TypeMovie
	}
	return TypeSeries
}

// Meta is a canonical catalog record in Stremio meta-preview shape.
// Name is non-empty; rows with no derivable name never become a Meta.
type Meta struct {
	ID          string   `json:"id"`
	Type        Type     `json:"type"`
	Name        string   `json:"name"`
	Poster      string   `json:"poster,omitempty"`
	Description string   `json:"description,omitempty"`
	ReleaseInfo string   `json:"releaseInfo,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Website     string   `json:"website,omitempty"`
}

// CatalogResult holds one page of catalog output.
type CatalogResult struct {
	Source   string   `json:"source"`
	Type     Type     `json:"type"`
	Genre    string   `json:"genre,omitempty"`
	Skip     int      `json:"skip"`
	Limit    int      `json:"limit"`
	Metas    []*Meta  `json:"metas"`
	Warnings []string `json:"warnings,omitempty"`
}

// Stream is a Stremio stream record. The addon only ever emits "open
// externally" streams pointing at the record's website.
type Stream struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	ExternalURL string `json:"externalUrl"`
}

// CatalogRequest carries the parameters of a catalog page fetch.
type CatalogRequest struct {
	Type  Type
	Genre string // optional case-insensitive substring filter
	Skip  int
	Limit int
}

// CatalogService produces catalog pages and resolves single records.
type CatalogService interface {
	// FetchCatalog fetches the seed pages for the requested type, extracts
	// and merges candidate records, and returns one page of results.
	// Seed-page failures are reported as warnings, never as an error.
	FetchCatalog(ctx context.Context, req CatalogRequest) (*CatalogResult, error)

	// FetchMeta resolves a single record by id, from cache or by re-running
	// the catalog fetch. Returns ENOTFOUND if no record matches.
	FetchMeta(ctx context.Context, typ Type, id string) (*Meta, error)

	// FetchStreams derives the stream list for a record. Records without a
	// website, and unknown ids, yield an empty list.
	FetchStreams(ctx context.Context, typ Type, id string) ([]Stream, error)
}
