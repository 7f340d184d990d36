// Package porthu provides a Stremio catalog addon for port.hu movie and
// series listings. It scrapes the site's listing pages, normalizes the
// extracted records into stable catalog metadata, and serves paginated,
// filterable results with opportunistic detail-page enrichment.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, bloom/).
package porthu

// SourceName identifies the scraped site in catalog results and streams.
const SourceName = "port.hu"

// IDNamespace prefixes every content id produced by this addon.
const IDNamespace = "porthu"
