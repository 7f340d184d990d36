package porthu

import (
	"net/url"
	"strings"
)

// SanitizeText collapses runs of whitespace into single spaces and trims the
// result. Empty and all-whitespace input yields an empty string.
func SanitizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CanonicalizeURL normalizes a URL into a stable comparison key by dropping
// its fragment and query components. If the value cannot be parsed it falls
// back to truncating at the first '#' or '?'. Returns an empty string for
// empty input.
//
// Canonicalizing the same logical URL twice yields the same value regardless
// of query/fragment noise.
func CanonicalizeURL(value string) string {
	if value == "" {
		return ""
	}
	u, err := url.Parse(value)
	if err != nil {
		if i := strings.IndexByte(value, '#'); i != -1 {
			value = value[:i]
		}
		if i := strings.IndexByte(value, '?'); i != -1 {
			value = value[:i]
		}
		return value
	}
	u.Fragment = ""
	u.RawQuery = ""
	return u.String()
}

// Absolutize resolves a possibly-relative URL against the page it was found
// on and canonicalizes the result. Returns an empty string for empty input
// or when neither value parses into something resolvable.
func Absolutize(baseURL, maybeRelative string) string {
	if maybeRelative == "" {
		return ""
	}
	ref, err := url.Parse(maybeRelative)
	if err != nil {
		return ""
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		if ref.IsAbs() {
			return CanonicalizeURL(maybeRelative)
		}
		return ""
	}
	return CanonicalizeURL(base.ResolveReference(ref).String())
}
