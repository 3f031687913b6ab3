package tracker

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/Cabral137/monitor-precos/internal/scraper"
	"github.com/Cabral137/monitor-precos/internal/store"
	apperrors "github.com/Cabral137/monitor-precos/pkg/errors"
	"github.com/Cabral137/monitor-precos/services/history"
	"github.com/Cabral137/monitor-precos/services/products"
	"github.com/Cabral137/monitor-precos/services/publisher"
)

// Fetcher retrieves raw page content for a product URL.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL string, renderJS bool) (io.Reader, error)
}

// Tracker runs the check pipeline for a tracked product: registry lookup,
// fetch, extraction, history comparison and alert publishing.
type Tracker struct {
	registry  *store.Registry
	fetcher   Fetcher
	history   history.Store
	publisher publisher.Publisher
}

// New creates a tracker. publisher may be nil to disable alert dispatch.
func New(registry *store.Registry, fetcher Fetcher, hist history.Store, pub publisher.Publisher) *Tracker {
	return &Tracker{
		registry:  registry,
		fetcher:   fetcher,
		history:   hist,
		publisher: pub,
	}
}

// CheckResult summarizes one product check.
type CheckResult struct {
	Product  scraper.Product
	Store    string
	Previous *float64
	Alerted  bool
}

// Check runs one check cycle for a product. Lookup misses surface as
// store.ErrStoreNotConfigured and fetch failures as fetch errors; both abort
// only this product. A missing price is not an error: the result carries the
// sentinel title and nil price, nothing is persisted, and no alert fires.
//
// The prior observation is read before the new one is appended, so a price
// is never compared against itself.
func (t *Tracker) Check(ctx context.Context, product products.Product) (*CheckResult, error) {
	domain, err := productDomain(product.URL)
	if err != nil {
		return nil, err
	}

	profile, err := t.registry.Lookup(domain)
	if err != nil {
		return nil, err
	}

	content, err := t.fetcher.Fetch(ctx, product.URL, profile.RenderJS)
	if err != nil {
		return nil, apperrors.NewFetch(profile.DisplayName, "fetch failed for "+product.URL, err)
	}

	extracted := scraper.Extract(content, profile)
	result := &CheckResult{Product: extracted, Store: profile.DisplayName}

	if !extracted.HasPrice() {
		// Failed check: nothing to persist or compare this cycle
		return result, nil
	}

	previous, err := t.history.Latest(ctx, product.ID)
	if err != nil {
		return result, apperrors.NewHistory(profile.DisplayName, "failed to read latest observation", err)
	}
	if previous != nil {
		price := previous.Price
		result.Previous = &price
	}

	if err := t.history.Append(ctx, product.ID, *extracted.Price, time.Now()); err != nil {
		return result, apperrors.NewHistory(profile.DisplayName, "failed to append observation", err)
	}

	if ShouldAlert(extracted.Price, result.Previous) {
		result.Alerted = true
		if t.publisher != nil {
			message := FormatAlert(extracted.Title, *result.Previous, *extracted.Price)
			if err := t.publisher.Publish([]byte(message)); err != nil {
				return result, apperrors.NewPublisher(profile.DisplayName, "failed to publish alert", err)
			}
		}
	}

	return result, nil
}

// productDomain strips scheme and path from a product URL before the
// registry lookup. Subdomains are kept as-is.
func productDomain(pageURL string) (string, error) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("invalid product url %q", pageURL)
	}
	return u.Host, nil
}
