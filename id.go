package porthu

import (
	"fmt"
	"regexp"

	"github.com/cespare/xxhash/v2"
)

// Entity patterns recognized in detail-page URLs, in priority order.
// A match yields a human-stable id token like "movie-12345".
var entityPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)movie-([0-9]+)`),
	regexp.MustCompile(`(?i)episode-([0-9]+)`),
	regexp.MustCompile(`(?i)event-([0-9]+)`),
}

var entityLabels = []string{"movie", "episode", "event"}

// ExtractEntityID scans a URL for the first recognized entity pattern and
// returns its normalized token ("<label>-<digits>"). Returns an empty string
// if no pattern matches; the caller must then fall back to a hash id.
func ExtractEntityID(url string) string {
	for i, re := range entityPatterns {
		if m := re.FindStringSubmatch(url); m != nil {
			return entityLabels[i] + "-" + m[1]
		}
	}
	return ""
}

// MakeMetaID derives the content id for a record. Recognized entity patterns
// in the canonical URL produce "porthu:<type>:<label>-<digits>"; everything
// else gets a deterministic hash id "porthu:<type>:h-<16 hex>" computed from
// the type plus the canonical URL (or the name, if there is no URL).
func MakeMetaID(typ Type, canonicalURL, name string) string {
	if entityID := ExtractEntityID(canonicalURL); entityID != "" {
		return fmt.Sprintf("%s:%s:%s", IDNamespace, typ, entityID)
	}
	key := canonicalURL
	if key == "" {
		key = name
	}
	hash := xxhash.Sum64String(string(typ) + ":" + key)
	return fmt.Sprintf("%s:%s:h-%016x", IDNamespace, typ, hash)
}
