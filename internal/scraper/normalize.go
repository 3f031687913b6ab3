package scraper

import (
	"strconv"
	"strings"
)

// brlCleaner strips the currency marker, whitespace and the thousands
// separator from a Brazilian price string ("R$ 1.234,56" -> "1234,56").
var brlCleaner = strings.NewReplacer(
	"R$", "",
	" ", "",
	" ", "",
	".", "",
)

// NormalizePrice parses price text in the Brazilian convention (dot as
// thousands separator, comma as decimal separator). It returns nil when the
// text does not contain a parseable amount.
func NormalizePrice(text string) *float64 {
	cleaned := brlCleaner.Replace(strings.TrimSpace(text))
	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, ",", "."))
	if cleaned == "" {
		return nil
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &price
}
