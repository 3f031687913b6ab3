package store

import "errors"

// ErrStoreNotConfigured is returned by Registry.Lookup when the domain has no
// registered profile. Callers treat it as a skip-and-continue condition.
var ErrStoreNotConfigured = errors.New("store not configured for domain")

// SelectorKind identifies the extraction strategy for a product field.
type SelectorKind int

const (
	// SelectorNone disables extraction for the field.
	SelectorNone SelectorKind = iota
	// SelectorCSS takes the trimmed text of the first element matching a CSS query.
	SelectorCSS
	// SelectorStructuredData reads the field from the page's JSON-LD product block.
	SelectorStructuredData
)

// FieldSelector describes how a single field (title or price) is extracted.
// The two strategies are a tagged variant rather than a magic selector string,
// so dispatch in the extractor is exhaustive.
type FieldSelector struct {
	Kind  SelectorKind
	Query string // CSS query, set only for SelectorCSS
}

// CSSSelector returns a selector that matches elements by CSS query.
func CSSSelector(query string) FieldSelector {
	return FieldSelector{Kind: SelectorCSS, Query: query}
}

// StructuredData returns a selector that reads the page's JSON-LD data.
func StructuredData() FieldSelector {
	return FieldSelector{Kind: SelectorStructuredData}
}

// Profile holds the extraction instructions for one store. Title and price
// selectors are independent: one may use structured data while the other
// uses a CSS query.
type Profile struct {
	Domain      string
	DisplayName string
	Title       FieldSelector
	Price       FieldSelector
	RenderJS    bool
}

// Registry maps network domains to store profiles. It is built once at
// startup and read-only afterwards.
type Registry struct {
	profiles map[string]Profile
}

// NewRegistry creates a registry from the given profiles. A later profile
// with the same domain replaces an earlier one.
func NewRegistry(profiles ...Profile) *Registry {
	r := &Registry{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		r.profiles[p.Domain] = p
	}
	return r
}

// Lookup returns the profile for a domain. Matching is exact and
// case-sensitive: subdomain variants are distinct keys, so "kabum.com.br"
// does not match a profile registered under "www.kabum.com.br". The caller
// strips scheme and path before the lookup.
func (r *Registry) Lookup(domain string) (Profile, error) {
	p, ok := r.profiles[domain]
	if !ok {
		return Profile{}, ErrStoreNotConfigured
	}
	return p, nil
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	return len(r.profiles)
}

// DefaultProfiles returns the stores supported out of the box.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Domain:      "www.kabum.com.br",
			DisplayName: "Kabum",
			Title:       CSSSelector("h1.sc-a1f7a75-1"),
			Price:       StructuredData(),
			RenderJS:    false,
		},
		{
			Domain:      "www.amazon.com.br",
			DisplayName: "Amazon",
			Title:       CSSSelector("span#productTitle"),
			Price:       CSSSelector("span.a-price-whole"),
			RenderJS:    true,
		},
	}
}
