// Package goquery provides a CSS-selector based implementation of
// terraformgpt.Extractor for pulling documentation content out of provider
// doc pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/meronimo/terraformgpt"
)

// Ensure Extractor implements terraformgpt.Extractor at compile time.
var _ terraformgpt.Extractor = (*Extractor)(nil)

// contentSelectors are tried in order; the first non-empty match wins.
// Registry doc pages render the markdown body inside a dedicated container;
// the later entries cover generic docs-site mirrors.
var contentSelectors = []string{
	"div.provider-docs-content",
	"article.markdown",
	"div.markdown",
	"article",
	"main",
	"[role=main]",
}

// Extractor extracts the main documentation content from HTML pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content with site chrome
// removed.
func (e *Extractor) Extract(html string) (*terraformgpt.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return nil, terraformgpt.Errorf(terraformgpt.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, terraformgpt.Errorf(terraformgpt.EINVALID, "failed to parse HTML: %v", err)
	}

	var content *goquery.Selection
	for _, selector := range contentSelectors {
		sel := doc.Find(selector).First()
		if sel.Length() > 0 && strings.TrimSpace(sel.Text()) != "" {
			content = sel
			break
		}
	}
	if content == nil {
		return nil, terraformgpt.Errorf(terraformgpt.EINVALID, "no documentation content found in HTML")
	}

	// Strip navigation and scripts that survive inside the content container.
	content.Find("nav, aside, script, style, footer").Remove()

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, err
	}

	return &terraformgpt.ExtractResult{
		Title:       extractTitle(doc, content),
		ContentHTML: contentHTML,
	}, nil
}

// extractTitle prefers the content's first heading over page metadata, since
// registry page titles carry site branding.
func extractTitle(doc *goquery.Document, content *goquery.Selection) string {
	if h1 := strings.TrimSpace(content.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(og) != "" {
		return strings.TrimSpace(og)
	}
	return strings.TrimSpace(doc.Find("title").Text())
}
