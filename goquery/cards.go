package goquery

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	porthu "github.com/zmolnar/porthu-addon"
)

// MaxCardRows caps the number of rows one page's card scan may accumulate.
// The cap is checked between selector passes, matching the listing pages'
// practical size; anything past it is duplicate or junk links.
const MaxCardRows = 350

// Link-selection heuristics in priority order: movie detail links, series
// detail links, then a generic article-link fallback.
var cardSelectors = []string{
	`a[href*="/adatlap/film/"]`,
	`a[href*="/adatlap/sorozat/"]`,
	`article a[href]`,
}

// cardAncestors matches the nearest card-like container around a detail link.
const cardAncestors = "article, .event-holder, .event-card, .card, .item, li, div"

// Image source attributes checked in order; listing pages lazy-load posters
// behind several data attributes.
var posterAttrs = []string{"src", "data-src", "data-original", "data-lazy"}

// Ensure CardExtractor implements porthu.RowExtractor at compile time.
var _ porthu.RowExtractor = (*CardExtractor)(nil)

// CardExtractor yields candidate rows from the page's link/card structure
// using positional and textual heuristics. It covers pages where JSON-LD is
// absent or incomplete; the genre field is always left empty because the
// card markup carries no reliable genre signal.
type CardExtractor struct{}

// NewCardExtractor creates a new CardExtractor.
func NewCardExtractor() *CardExtractor {
	return &CardExtractor{}
}

// ExtractRows scans the configured link selectors in order, stopping once
// MaxCardRows candidates have accumulated.
func (e *CardExtractor) ExtractRows(html string, pageURL string) ([]porthu.Row, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, porthu.Errorf(porthu.EINVALID, "failed to parse HTML: %v", err)
	}

	var rows []porthu.Row
	for _, selector := range cardSelectors {
		doc.Find(selector).Each(func(_ int, link *goquery.Selection) {
			if row, ok := cardRow(link, pageURL); ok {
				rows = append(rows, row)
			}
		})

		if len(rows) >= MaxCardRows {
			break
		}
	}

	return rows, nil
}

// cardRow builds one candidate row from a matched detail link.
func cardRow(link *goquery.Selection, pageURL string) (porthu.Row, bool) {
	href, _ := link.Attr("href")
	canonical := porthu.Absolutize(pageURL, href)
	if canonical == "" || !strings.Contains(canonical, "/adatlap/") {
		return porthu.Row{}, false
	}

	card := link.Closest(cardAncestors)

	name := porthu.SanitizeText(cardName(link, card))
	if utf8.RuneCountInString(name) < 2 {
		return porthu.Row{}, false
	}

	return porthu.Row{
		Name:        name,
		URL:         canonical,
		Poster:      cardPoster(card, pageURL),
		Description: porthu.SanitizeText(card.Find(`p, .description, .lead, [class*="desc"]`).First().Text()),
		ReleaseInfo: porthu.SanitizeText(cardReleaseInfo(card)),
	}, true
}

// cardName derives the record name: link title attribute, aria-label, a
// heading or title-class element inside the card, then the link's own text.
func cardName(link, card *goquery.Selection) string {
	if title, ok := link.Attr("title"); ok && title != "" {
		return title
	}
	if label, ok := link.Attr("aria-label"); ok && label != "" {
		return label
	}
	if heading := card.Find("h1, h2, h3, h4, .title").First().Text(); strings.TrimSpace(heading) != "" {
		return heading
	}
	return link.Text()
}

// cardPoster scans the card's images in document order and returns the first
// whose resolved URL passes the poster heuristic.
func cardPoster(card *goquery.Selection, pageURL string) string {
	var poster string
	card.Find("img").EachWithBreak(func(_ int, img *goquery.Selection) bool {
		var src string
		for _, attr := range posterAttrs {
			if v, ok := img.Attr(attr); ok && v != "" {
				src = v
				break
			}
		}
		candidate := porthu.Absolutize(pageURL, src)
		if porthu.IsPosterURL(candidate) {
			poster = candidate
			return false
		}
		return true
	})
	return poster
}

// cardReleaseInfo prefers a <time> element's machine-readable value, then its
// text, then a year/date-class element.
func cardReleaseInfo(card *goquery.Selection) string {
	timeEl := card.Find("time")
	if dt, ok := timeEl.Attr("datetime"); ok && dt != "" {
		return dt
	}
	if text := timeEl.Text(); strings.TrimSpace(text) != "" {
		return text
	}
	return card.Find(`[class*="year"], [class*="date"]`).First().Text()
}
