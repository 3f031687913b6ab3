package history

import (
	"context"
	"time"
)

// Observation is a single recorded price for a product.
type Observation struct {
	Price      float64
	ObservedAt time.Time
}

// Store persists product price observations. Observations are append-only
// and ordered by observation time; the comparator only ever reads the single
// most recent prior one.
type Store interface {
	// Latest returns the most recent observation for a product, or nil when
	// the product has no history yet.
	Latest(ctx context.Context, productID string) (*Observation, error)

	// Append records a new observation.
	Append(ctx context.Context, productID string, price float64, observedAt time.Time) error

	// History returns up to limit observations, newest first.
	History(ctx context.Context, productID string, limit int) ([]Observation, error)

	// Close closes the store connection.
	Close() error
}
