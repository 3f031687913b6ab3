package products

import "context"

// Product is one tracked item.
type Product struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Source lists the products to check each cycle.
type Source interface {
	List(ctx context.Context) ([]Product, error)
}
