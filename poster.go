package porthu

import (
	"regexp"
	"strings"
)

var posterExtRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|webp)(\?|$)`)

// IsPosterURL reports whether a URL plausibly points at a poster image.
// Age-rating badge images are explicitly rejected; everything else passes if
// it has a common image extension or lives under an "/images/" path segment.
func IsPosterURL(url string) bool {
	if url == "" {
		return false
	}
	if strings.Contains(url, "/img/agelimit/") {
		return false
	}
	return posterExtRe.MatchString(url) || strings.Contains(url, "/images/")
}
