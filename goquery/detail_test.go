package goquery_test

import (
	"testing"

	pq "github.com/zmolnar/porthu-addon/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDetailHint(t *testing.T) {
	t.Parallel()

	t.Run("prefers OpenGraph metadata", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><head>
<meta property="og:title" content="Pontos Cím">
<meta property="og:image" content="/images/posters/42.jpg">
<meta property="og:description" content="OG leírás.">
<meta name="description" content="Sima leírás.">
</head><body><h1>H1 Cím</h1></body></html>`

		hint, err := pq.ParseDetailHint(html, "https://port.hu/adatlap/film/movie-42")

		require.NoError(t, err)
		assert.Equal(t, "Pontos Cím", hint.Name)
		assert.Equal(t, "https://port.hu/images/posters/42.jpg", hint.Poster)
		assert.Equal(t, "OG leírás.", hint.Description)
	})

	t.Run("falls back to meta description and first heading", func(t *testing.T) {
		t.Parallel()

		html := `<head><meta name="description" content="Csak meta."></head>
<body><h1> Fejléc  Cím </h1></body>`

		hint, err := pq.ParseDetailHint(html, "https://port.hu/adatlap/film/movie-1")

		require.NoError(t, err)
		assert.Equal(t, "Fejléc Cím", hint.Name)
		assert.Equal(t, "Csak meta.", hint.Description)
		assert.Empty(t, hint.Poster)
	})

	t.Run("page without metadata yields an empty hint", func(t *testing.T) {
		t.Parallel()

		hint, err := pq.ParseDetailHint("<body><p>semmi</p></body>", "https://port.hu/x")

		require.NoError(t, err)
		assert.True(t, hint.Empty())
	})
}
