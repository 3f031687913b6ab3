package worker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cabral137/monitor-precos/helpers"
	"github.com/Cabral137/monitor-precos/internal/scraper"
	"github.com/Cabral137/monitor-precos/internal/store"
	"github.com/Cabral137/monitor-precos/internal/tracker"
	"github.com/Cabral137/monitor-precos/services/products"
)

// MockSource implements the products.Source interface for testing
type MockSource struct {
	items   []products.Product
	listErr error
}

var _ products.Source = (*MockSource)(nil)

func (m *MockSource) List(ctx context.Context) ([]products.Product, error) {
	return m.items, m.listErr
}

// MockChecker implements the Checker interface for testing
type MockChecker struct {
	mu      sync.Mutex
	checked []string
	results map[string]*tracker.CheckResult
	errs    map[string]error
}

var _ Checker = (*MockChecker)(nil)

func NewMockChecker() *MockChecker {
	return &MockChecker{
		results: make(map[string]*tracker.CheckResult),
		errs:    make(map[string]error),
	}
}

func (m *MockChecker) Check(ctx context.Context, product products.Product) (*tracker.CheckResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checked = append(m.checked, product.ID)
	if err, ok := m.errs[product.ID]; ok {
		return nil, err
	}
	if result, ok := m.results[product.ID]; ok {
		return result, nil
	}
	price := 100.0
	return &tracker.CheckResult{
		Product: scraper.Product{Title: product.ID, Price: &price},
		Store:   "Test",
	}, nil
}

func (m *MockChecker) checkedIDs() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.checked...)
}

// MockLogger implements the helpers.LoggerInterface for testing
type MockLogger struct {
	mu     sync.Mutex
	errors []string
	infos  []string
}

var _ helpers.LoggerInterface = (*MockLogger)(nil)

func (m *MockLogger) LogError(itemName string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, fmt.Sprintf("%s: %v", itemName, err))
}

func (m *MockLogger) LogInfo(format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.infos = append(m.infos, fmt.Sprintf(format, args...))
}

func (m *MockLogger) errorLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.errors...)
}

func (m *MockLogger) infoLines() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.infos...)
}

func testProducts(ids ...string) []products.Product {
	items := make([]products.Product, 0, len(ids))
	for _, id := range ids {
		items = append(items, products.Product{
			ID:  id,
			URL: "https://www.kabum.com.br/produto/" + id,
		})
	}
	return items
}

func TestRunChecksAllProducts(t *testing.T) {
	checker := NewMockChecker()
	logger := &MockLogger{}
	source := &MockSource{items: testProducts("a", "b", "c")}
	w := NewWorker(context.Background(), source, checker, logger, time.Hour)

	w.runChecks()

	ids := checker.checkedIDs()
	assert.Len(t, ids, 3)
	assert.ElementsMatch(t, []string{"a", "b", "c"}, ids)
	assert.Empty(t, logger.errorLines())
}

func TestRunChecksSourceError(t *testing.T) {
	checker := NewMockChecker()
	logger := &MockLogger{}
	source := &MockSource{listErr: errors.New("file not found")}
	w := NewWorker(context.Background(), source, checker, logger, time.Hour)

	w.runChecks()

	assert.Empty(t, checker.checkedIDs())
	require.Len(t, logger.errorLines(), 1)
	assert.Contains(t, logger.errorLines()[0], "file not found")
}

func TestCheckProductNotConfiguredIsSkipped(t *testing.T) {
	checker := NewMockChecker()
	checker.errs["unknown"] = store.ErrStoreNotConfigured
	logger := &MockLogger{}
	source := &MockSource{items: testProducts("unknown")}
	w := NewWorker(context.Background(), source, checker, logger, time.Hour)

	w.runChecks()

	// A missing profile is logged as a skip, never as an error
	assert.Empty(t, logger.errorLines())
	require.NotEmpty(t, logger.infoLines())
	assert.Contains(t, logger.infoLines()[0], "store not configured")
}

func TestCheckProductErrorDoesNotAbortBatch(t *testing.T) {
	checker := NewMockChecker()
	checker.errs["broken"] = errors.New("connection refused")
	logger := &MockLogger{}
	source := &MockSource{items: testProducts("broken", "healthy")}
	w := NewWorker(context.Background(), source, checker, logger, time.Hour)

	w.runChecks()

	assert.ElementsMatch(t, []string{"broken", "healthy"}, checker.checkedIDs())
	require.Len(t, logger.errorLines(), 1)
	assert.Contains(t, logger.errorLines()[0], "connection refused")
}

func TestCheckProductNoPrice(t *testing.T) {
	checker := NewMockChecker()
	checker.results["soldout"] = &tracker.CheckResult{
		Product: scraper.Product{Title: scraper.TitleNotFound},
		Store:   "Test",
	}
	logger := &MockLogger{}
	source := &MockSource{items: testProducts("soldout")}
	w := NewWorker(context.Background(), source, checker, logger, time.Hour)

	w.runChecks()

	assert.Empty(t, logger.errorLines())
	found := false
	for _, line := range logger.infoLines() {
		if strings.Contains(line, "no price found") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCheckProductPriceDrop(t *testing.T) {
	previous := 2299.90
	current := 2149.99
	checker := NewMockChecker()
	checker.results["gpu"] = &tracker.CheckResult{
		Product:  scraper.Product{Title: "RTX 4060", Price: &current},
		Store:    "Kabum",
		Previous: &previous,
		Alerted:  true,
	}
	logger := &MockLogger{}
	source := &MockSource{items: testProducts("gpu")}
	w := NewWorker(context.Background(), source, checker, logger, time.Hour)

	w.runChecks()

	found := false
	for _, line := range logger.infoLines() {
		if strings.Contains(line, "price drop") && strings.Contains(line, "RTX 4060") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestStartStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	checker := NewMockChecker()
	logger := &MockLogger{}
	source := &MockSource{items: testProducts("a")}
	w := NewWorker(ctx, source, checker, logger, 10*time.Millisecond)

	done := make(chan error, 1)
	go func() {
		done <- w.Start()
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop after context cancellation")
	}

	// At least the initial cycle ran
	assert.NotEmpty(t, checker.checkedIDs())
}
