package scraper

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// structuredData is the subset of a schema.org Product entity the extractor
// reads from a page's JSON-LD block.
type structuredData struct {
	Type   string          `json:"@type"`
	Name   string          `json:"name"`
	Offers json.RawMessage `json:"offers"`
}

// parseStructuredData reads the first application/ld+json script in the
// document. Malformed JSON means structured data is absent: fields bound to
// it keep their defaults, and selector-based extraction is not retried.
func parseStructuredData(doc *goquery.Document) *structuredData {
	script := doc.Find(`script[type="application/ld+json"]`).First()
	if script.Length() == 0 {
		return nil
	}

	raw := []byte(strings.TrimSpace(script.Text()))
	if len(raw) == 0 {
		return nil
	}

	// The payload is either a single entity or an array of entities.
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil {
		return pickProduct(list)
	}

	var sd structuredData
	if err := json.Unmarshal(raw, &sd); err != nil {
		return nil
	}
	return &sd
}

// pickProduct selects the first entity typed "Product", falling back to the
// first entity in the array when none matches.
func pickProduct(list []json.RawMessage) *structuredData {
	var first *structuredData
	for _, raw := range list {
		var sd structuredData
		if err := json.Unmarshal(raw, &sd); err != nil {
			continue
		}
		if sd.Type == "Product" {
			return &sd
		}
		if first == nil {
			entity := sd
			first = &entity
		}
	}
	return first
}

// offer carries the single field the engine needs from a schema.org offer.
type offer struct {
	Price json.RawMessage `json:"price"`
}

// offerPrice extracts the numeric price from the offers field, which sites
// publish as either a single offer object or a list of offers. A list is
// unwrapped to its first element.
func (sd *structuredData) offerPrice() *float64 {
	if len(sd.Offers) == 0 {
		return nil
	}

	var o offer
	if err := json.Unmarshal(sd.Offers, &o); err != nil {
		var offers []offer
		if err := json.Unmarshal(sd.Offers, &offers); err != nil || len(offers) == 0 {
			return nil
		}
		o = offers[0]
	}
	return o.priceValue()
}

// priceValue parses the offer price, published as either a JSON number or a
// numeric string depending on the site.
func (o offer) priceValue() *float64 {
	if len(o.Price) == 0 {
		return nil
	}

	var n float64
	if err := json.Unmarshal(o.Price, &n); err == nil {
		return &n
	}

	var s string
	if err := json.Unmarshal(o.Price, &s); err != nil {
		return nil
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &n
}
