package scraper

// TitleNotFound is the sentinel title used when no extraction path succeeds.
const TitleNotFound = "title not found"

// Product is the normalized result of extracting one product page. Price is
// nil when no extraction path yields a parseable amount; the value is in the
// store's local currency (BRL).
type Product struct {
	Title string   `json:"title"`
	Price *float64 `json:"price"`
}

// HasPrice reports whether a price was extracted.
func (p Product) HasPrice() bool {
	return p.Price != nil
}
