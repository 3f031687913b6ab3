package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Cabral137/monitor-precos/helpers"
	"github.com/Cabral137/monitor-precos/internal/store"
	"github.com/Cabral137/monitor-precos/internal/tracker"
	"github.com/Cabral137/monitor-precos/services/products"
)

// Checker runs a single product check.
type Checker interface {
	Check(ctx context.Context, product products.Product) (*tracker.CheckResult, error)
}

// Worker periodically checks every tracked product for price drops.
type Worker struct {
	ctx           context.Context
	source        products.Source
	checker       Checker
	logger        helpers.LoggerInterface
	checkInterval time.Duration
}

// NewWorker creates a new worker
func NewWorker(
	ctx context.Context,
	source products.Source,
	checker Checker,
	logger helpers.LoggerInterface,
	checkInterval time.Duration,
) *Worker {
	return &Worker{
		ctx:           ctx,
		source:        source,
		checker:       checker,
		logger:        logger,
		checkInterval: checkInterval,
	}
}

// Start runs check cycles until the context is cancelled.
func (w *Worker) Start() error {
	ticker := time.NewTicker(w.checkInterval)
	defer ticker.Stop()

	for {
		start := time.Now()
		w.runChecks()
		w.logger.LogInfo("check cycle finished in %s", time.Since(start))

		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		case <-ticker.C:
		}
	}
}

// runChecks checks all products in parallel, one goroutine per product. Each
// product's pipeline stays sequential so its history read happens before its
// own write; there is no shared state across products.
func (w *Worker) runChecks() {
	items, err := w.source.List(w.ctx)
	if err != nil {
		w.logger.LogError("ProductSource", err)
		return
	}

	var wg sync.WaitGroup
	for _, item := range items {
		wg.Add(1)
		go func(item products.Product) {
			defer wg.Done()
			w.checkProduct(item)
		}(item)
	}
	wg.Wait()
}

// checkProduct runs one check and logs the outcome. Per-item failures never
// abort the batch.
func (w *Worker) checkProduct(item products.Product) {
	result, err := w.checker.Check(w.ctx, item)
	switch {
	case errors.Is(err, store.ErrStoreNotConfigured):
		w.logger.LogInfo("skipping %s: store not configured", item.URL)
	case err != nil:
		w.logger.LogError(item.URL, err)
	case !result.Product.HasPrice():
		w.logger.LogInfo("no price found for %q (%s)", result.Product.Title, item.URL)
	case result.Alerted:
		w.logger.LogInfo("price drop for %q: R$ %.2f -> R$ %.2f",
			result.Product.Title, *result.Previous, *result.Product.Price)
	default:
		w.logger.LogInfo("checked %q at %s: R$ %.2f",
			result.Product.Title, result.Store, *result.Product.Price)
	}
}
