package porthu_test

import (
	"testing"

	porthu "github.com/zmolnar/porthu-addon"
	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "A Nagy Film", porthu.SanitizeText("  A   Nagy\n\tFilm "))
	assert.Empty(t, porthu.SanitizeText("   \n\t "))
	assert.Empty(t, porthu.SanitizeText(""))
}

func TestCanonicalizeURL(t *testing.T) {
	t.Parallel()

	t.Run("strips query and fragment", func(t *testing.T) {
		t.Parallel()

		got := porthu.CanonicalizeURL("https://port.hu/adatlap/film/tv/valami/movie-123?tab=cast#top")
		assert.Equal(t, "https://port.hu/adatlap/film/tv/valami/movie-123", got)
	})

	t.Run("query and fragment variants collapse to the same key", func(t *testing.T) {
		t.Parallel()

		variants := []string{
			"https://port.hu/film",
			"https://port.hu/film?page=2",
			"https://port.hu/film#listing",
			"https://port.hu/film?page=2#listing",
		}
		for _, v := range variants {
			assert.Equal(t, "https://port.hu/film", porthu.CanonicalizeURL(v), v)
		}
	})

	t.Run("unparseable input truncates at first separator", func(t *testing.T) {
		t.Parallel()

		got := porthu.CanonicalizeURL("http://port.hu/%zz#frag?x=1")
		assert.Equal(t, "http://port.hu/%zz", got)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, porthu.CanonicalizeURL(""))
	})
}

func TestAbsolutize(t *testing.T) {
	t.Parallel()

	t.Run("resolves relative reference against page URL", func(t *testing.T) {
		t.Parallel()

		got := porthu.Absolutize("https://port.hu/film", "/adatlap/film/tv/valami/movie-9?x=1")
		assert.Equal(t, "https://port.hu/adatlap/film/tv/valami/movie-9", got)
	})

	t.Run("keeps absolute URLs", func(t *testing.T) {
		t.Parallel()

		got := porthu.Absolutize("https://port.hu/film", "https://cdn.port.hu/images/p.jpg#x")
		assert.Equal(t, "https://cdn.port.hu/images/p.jpg", got)
	})

	t.Run("empty input", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, porthu.Absolutize("https://port.hu", ""))
	})
}
