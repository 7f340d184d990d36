package catalog

import porthu "github.com/zmolnar/porthu-addon"

// DedupeMetas collapses records sharing an id into one, preserving the
// first-seen order of distinct ids. The merge is append-only enrichment: the
// longer name wins (first seen on ties), every other field keeps the first
// non-absent value and is never overwritten by a later one.
func DedupeMetas(metas []*porthu.Meta) []*porthu.Meta {
	index := make(map[string]int, len(metas))
	var out []*porthu.Meta

	for _, meta := range metas {
		if meta == nil {
			continue
		}
		i, seen := index[meta.ID]
		if !seen {
			index[meta.ID] = len(out)
			out = append(out, meta)
			continue
		}

		prev := out[i]
		if len(meta.Name) > len(prev.Name) {
			prev.Name = meta.Name
		}
		if prev.Poster == "" {
			prev.Poster = meta.Poster
		}
		if prev.Description == "" {
			prev.Description = meta.Description
		}
		if prev.ReleaseInfo == "" {
			prev.ReleaseInfo = meta.ReleaseInfo
		}
		if prev.Genres == nil {
			prev.Genres = meta.Genres
		}
		if prev.Website == "" {
			prev.Website = meta.Website
		}
	}

	return out
}
