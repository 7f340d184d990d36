package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	pq "github.com/zmolnar/porthu-addon/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardExtractor_ExtractRows(t *testing.T) {
	t.Parallel()

	t.Run("extracts a full card", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><body>
<article class="event-card">
  <a href="/adatlap/film/tv/a-nagy-film/movie-203069" title="A Nagy Film"></a>
  <img src="/img/agelimit/16.png">
  <img data-src="/images/posters/203069.jpg">
  <p class="lead">Egy nagyon jó film.</p>
  <time datetime="2023-11-05">2023. november 5.</time>
</article>
</body></html>`

		e := pq.NewCardExtractor()
		rows, err := e.ExtractRows(html, "https://port.hu/film")

		require.NoError(t, err)
		require.Len(t, rows, 1)

		assert.Equal(t, "A Nagy Film", rows[0].Name)
		assert.Equal(t, "https://port.hu/adatlap/film/tv/a-nagy-film/movie-203069", rows[0].URL)
		assert.Equal(t, "https://port.hu/images/posters/203069.jpg", rows[0].Poster)
		assert.Equal(t, "Egy nagyon jó film.", rows[0].Description)
		assert.Equal(t, "2023-11-05", rows[0].ReleaseInfo)
		assert.Empty(t, rows[0].Genre, "card markup carries no genre signal")
	})

	t.Run("name priority falls through title, aria-label, heading, link text", func(t *testing.T) {
		t.Parallel()

		html := `<ul>
<li><a href="/adatlap/film/movie-1" aria-label="Aria Név">x</a></li>
<li><h3>Cím Elem</h3><a href="/adatlap/film/movie-2">x</a></li>
<li><a href="/adatlap/film/movie-3">Link Szöveg</a></li>
</ul>`

		e := pq.NewCardExtractor()
		rows, err := e.ExtractRows(html, "https://port.hu/film")

		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, "Aria Név", rows[0].Name)
		assert.Equal(t, "Cím Elem", rows[1].Name)
		assert.Equal(t, "Link Szöveg", rows[2].Name)
	})

	t.Run("discards links outside detail pages", func(t *testing.T) {
		t.Parallel()

		html := `<article>
<a href="/hirek/cikk-1">Hír</a>
<a href="https://example.org/adatlap-szeru">Külső</a>
</article>`

		e := pq.NewCardExtractor()
		rows, err := e.ExtractRows(html, "https://port.hu")

		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("discards one-character names", func(t *testing.T) {
		t.Parallel()

		html := `<div class="card"><a href="/adatlap/film/movie-5">X</a></div>`

		e := pq.NewCardExtractor()
		rows, err := e.ExtractRows(html, "https://port.hu/film")

		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("skips age-rating badges when picking posters", func(t *testing.T) {
		t.Parallel()

		html := `<div class="item">
<a href="/adatlap/film/movie-6" title="Korhatáros Film"></a>
<img src="https://port.hu/img/agelimit/18.png">
<img src="https://media.port.hu/images/posters/6.webp">
</div>`

		e := pq.NewCardExtractor()
		rows, err := e.ExtractRows(html, "https://port.hu/film")

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "https://media.port.hu/images/posters/6.webp", rows[0].Poster)
	})

	t.Run("release info falls back to year-class element", func(t *testing.T) {
		t.Parallel()

		html := `<div class="card">
<a href="/adatlap/sorozat/movie-8" title="Régi Sorozat"></a>
<span class="release-year">1999</span>
</div>`

		e := pq.NewCardExtractor()
		rows, err := e.ExtractRows(html, "https://port.hu/sorozat")

		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, "1999", rows[0].ReleaseInfo)
	})

	t.Run("stops scanning once the row cap is reached", func(t *testing.T) {
		t.Parallel()

		var b strings.Builder
		for i := 0; i < pq.MaxCardRows+10; i++ {
			fmt.Fprintf(&b, `<div class="card"><a href="/adatlap/film/movie-%d" title="Film %d"></a></div>`, i, i)
		}
		// Links reachable only by the article fallback selector must never
		// be visited once the film selector filled the cap.
		b.WriteString(`<article><a href="/adatlap/egyeb/event-1" title="Esemény"></a></article>`)

		e := pq.NewCardExtractor()
		rows, err := e.ExtractRows(b.String(), "https://port.hu/film")

		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(rows), pq.MaxCardRows)
		for _, row := range rows {
			assert.NotContains(t, row.URL, "event-1")
		}
	})
}
