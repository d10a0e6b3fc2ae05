// Package extract turns a fetched page's rendered markup into a PageRecord.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"

	"site-crawler/pkg/models"
	"site-crawler/pkg/utils"
)

// Elements removed before any text extraction, to keep boilerplate out of
// the record content.
var stripSelectors = []string{
	"script", "style", "nav", "footer", "header", "aside", ".advertisement",
}

// Semantic content regions, tried in priority order.
var contentSelectors = []string{
	"main", "article", ".content", "#content", ".main-content",
	".page-content", ".entry-content", ".post-content", "[role=main]",
}

// Extractor builds PageRecords from rendered HTML.
type Extractor struct {
	log *logrus.Entry
}

// NewExtractor creates an Extractor logging through the given entry.
func NewExtractor(log *logrus.Entry) *Extractor {
	return &Extractor{log: log}
}

// Extract parses the rendered markup of the page at pageURL and produces a
// record. ok is false when the page has no usable content after cleaning;
// that outcome is normal and carries no error. A non-nil error means the
// markup itself could not be parsed.
func (e *Extractor) Extract(pageURL, html string) (rec models.PageRecord, ok bool, err error) {
	doc, parseErr := goquery.NewDocumentFromReader(strings.NewReader(html))
	if parseErr != nil {
		return rec, false, fmt.Errorf("%w: parsing HTML from '%s': %w", utils.ErrParsing, pageURL, parseErr)
	}

	// Title comes from the full document: an h1 stripped later (e.g. inside
	// a header region) is still the best title source.
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	for _, sel := range stripSelectors {
		doc.Find(sel).Remove()
	}

	content := e.resolveContent(doc, pageURL)
	content = CleanText(content)
	if content == "" {
		e.log.WithField("url", pageURL).Warn("No content extracted; dropping page")
		return rec, false, nil
	}

	metaDesc, _ := doc.Find(`meta[name="description"]`).First().Attr("content")

	var headings []string
	doc.Find("h1, h2, h3, h4, h5, h6").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			headings = append(headings, text)
		}
	})

	return models.NewPageRecord(pageURL, title, content, headings, metaDesc), true, nil
}

// resolveContent walks the selector priority chain over the stripped
// document and returns the first non-empty region text, falling back to the
// body and finally the whole stripped document.
func (e *Extractor) resolveContent(doc *goquery.Document, pageURL string) string {
	for _, sel := range contentSelectors {
		region := doc.Find(sel).First()
		if region.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(region.Text()); text != "" {
			e.log.WithFields(logrus.Fields{"url": pageURL, "selector": sel}).Debug("Resolved content region")
			return text
		}
	}

	if text := strings.TrimSpace(doc.Find("body").Text()); text != "" {
		return text
	}
	return strings.TrimSpace(doc.Text())
}
