package porthu

// Manifest describes the addon to Stremio clients.
type Manifest struct {
	ID          string    `json:"id"`
	Version     string    `json:"version"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Resources   []string  `json:"resources"`
	Types       []Type    `json:"types"`
	IDPrefixes  []string  `json:"idPrefixes"`
	Catalogs    []Catalog `json:"catalogs"`
}

// Catalog declares one catalog the addon serves.
type Catalog struct {
	Type  Type           `json:"type"`
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Extra []CatalogExtra `json:"extra,omitempty"`
}

// CatalogExtra declares an extra parameter a catalog accepts.
type CatalogExtra struct {
	Name       string `json:"name"`
	IsRequired bool   `json:"isRequired,omitempty"`
}

// CatalogID returns the catalog id the addon registers for a content type.
func CatalogID(typ Type) string {
	return IDNamespace + "-" + string(typ)
}

// DefaultManifest returns the addon manifest.
func DefaultManifest() Manifest {
	return Manifest{
		ID:          "community.porthu.catalog",
		Version:     "1.5.0",
		Name:        "Port.hu Catalog",
		Description: "Stremio catalog addon for Port.hu movie and series listings.",
		Resources:   []string{"catalog", "meta", "stream"},
		Types:       []Type{TypeMovie, TypeSeries},
		IDPrefixes:  []string{"tt", IDNamespace + ":"},
		Catalogs: []Catalog{
			{
				Type:  TypeMovie,
				ID:    CatalogID(TypeMovie),
				Name:  "Port.hu Movies",
				Extra: []CatalogExtra{{Name: "genre"}, {Name: "skip"}},
			},
			{
				Type:  TypeSeries,
				ID:    CatalogID(TypeSeries),
				Name:  "Port.hu Series",
				Extra: []CatalogExtra{{Name: "genre"}, {Name: "skip"}},
			},
		},
	}
}
