package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	porthu "github.com/zmolnar/porthu-addon"
)

// ParseDetailHint extracts the enrichment fields from a record's own detail
// page: the OpenGraph image as poster, the OpenGraph or meta description,
// and the OpenGraph title or first heading as name.
func ParseDetailHint(html string, pageURL string) (porthu.DetailHint, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return porthu.DetailHint{}, porthu.Errorf(porthu.EINVALID, "failed to parse HTML: %v", err)
	}

	description := metaContent(doc, `meta[property="og:description"]`)
	if description == "" {
		description = metaContent(doc, `meta[name="description"]`)
	}

	name := metaContent(doc, `meta[property="og:title"]`)
	if name == "" {
		name = doc.Find("h1").First().Text()
	}

	return porthu.DetailHint{
		Name:        porthu.SanitizeText(name),
		Poster:      porthu.Absolutize(pageURL, metaContent(doc, `meta[property="og:image"]`)),
		Description: porthu.SanitizeText(description),
	}, nil
}

func metaContent(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).Attr("content")
	return content
}
