package scraper

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Cabral137/monitor-precos/internal/store"
)

// Extract turns raw page content into a normalized product record following
// the store's profile. It is total: a missing title keeps the TitleNotFound
// sentinel and a missing or unparseable price stays nil, so one product's
// malformed markup never aborts a batch of checks.
func Extract(r io.Reader, profile store.Profile) Product {
	product := Product{Title: TitleNotFound}

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return product
	}

	// Structured data is parsed once when either field needs it.
	var sd *structuredData
	if profile.Title.Kind == store.SelectorStructuredData || profile.Price.Kind == store.SelectorStructuredData {
		sd = parseStructuredData(doc)
	}

	switch profile.Title.Kind {
	case store.SelectorStructuredData:
		if sd != nil && sd.Name != "" {
			product.Title = sd.Name
		}
	case store.SelectorCSS:
		if title := selectText(doc, profile.Title.Query); title != "" {
			product.Title = title
		}
	}

	switch profile.Price.Kind {
	case store.SelectorStructuredData:
		if sd != nil {
			product.Price = sd.offerPrice()
		}
	case store.SelectorCSS:
		if text := selectText(doc, profile.Price.Query); text != "" {
			product.Price = NormalizePrice(text)
		}
	}

	return product
}

// selectText returns the trimmed text of the first element matching the
// query, or "" when the query is empty or nothing matches.
func selectText(doc *goquery.Document, query string) string {
	if query == "" {
		return ""
	}
	sel := doc.Find(query).First()
	if sel.Length() == 0 {
		return ""
	}
	return strings.TrimSpace(sel.Text())
}
