package service

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklane/warehouse-api/internal/domain"
	"github.com/stocklane/warehouse-api/internal/repository"
)

// memoryRepo is an in-memory ProductRepository for service tests.
type memoryRepo struct {
	mu       sync.Mutex
	products map[string]domain.Product
}

func newMemoryRepo(products ...domain.Product) *memoryRepo {
	repo := &memoryRepo{products: make(map[string]domain.Product)}
	for _, p := range products {
		repo.products[p.ProductID] = p
	}
	return repo
}

func (r *memoryRepo) List(ctx context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out, nil
}

func (r *memoryRepo) GetByID(ctx context.Context, productID string) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return domain.Product{}, repository.ErrProductNotFound
	}
	return p, nil
}

func (r *memoryRepo) Create(ctx context.Context, p domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[p.ProductID] = p
	return nil
}

func (r *memoryRepo) Update(ctx context.Context, p domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ProductID]; !ok {
		return repository.ErrProductNotFound
	}
	r.products[p.ProductID] = p
	return nil
}

func (r *memoryRepo) Upsert(ctx context.Context, p domain.Product) error {
	return r.Create(ctx, p)
}

func (r *memoryRepo) UpsertBatch(ctx context.Context, products []domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range products {
		r.products[p.ProductID] = p
	}
	return nil
}

func (r *memoryRepo) Delete(ctx context.Context, productID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[productID]; !ok {
		return repository.ErrProductNotFound
	}
	delete(r.products, productID)
	return nil
}

// countingCache records cache traffic for assertions.
type countingCache struct {
	report      *domain.ReorderReport
	sets        int
	hits        int
	misses      int
	invalidates int
}

func (c *countingCache) GetReport(ctx context.Context) (*domain.ReorderReport, bool, error) {
	if c.report == nil {
		c.misses++
		return nil, false, nil
	}
	c.hits++
	return c.report, true, nil
}

func (c *countingCache) SetReport(ctx context.Context, report *domain.ReorderReport) error {
	c.sets++
	c.report = report
	return nil
}

func (c *countingCache) Invalidate(ctx context.Context) error {
	c.invalidates++
	c.report = nil
	return nil
}

var fixedNow = time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func testProduct() domain.Product {
	return domain.Product{
		ProductID:              "PROD001",
		Name:                   "Wireless Headphones",
		CurrentStock:           45,
		AverageDailySales:      8,
		SupplierLeadTime:       7,
		MinimumReorderQuantity: 50,
		CostPerUnit:            75.99,
		CriticalityLevel:       domain.CriticalityHigh,
		SalesHistory:           domain.SalesHistory{},
	}
}

func TestUpdateStockRecordsSale(t *testing.T) {
	repo := newMemoryRepo(testProduct())
	cache := &countingCache{}
	svc := NewInventoryService(repo, cache).WithClock(fixedClock)

	updated, err := svc.UpdateStock(context.Background(), "PROD001", 40)
	require.NoError(t, err)

	assert.Equal(t, 40, updated.CurrentStock)
	require.Len(t, updated.SalesHistory, 1)
	assert.Equal(t, 5, updated.SalesHistory[0].Quantity)
	// 5 / 30 = 0.17
	assert.Equal(t, 0.17, updated.AverageDailySales)
	assert.Equal(t, 1, cache.invalidates)

	// a second same-day sale merges into the existing entry
	updated, err = svc.UpdateStock(context.Background(), "PROD001", 37)
	require.NoError(t, err)
	require.Len(t, updated.SalesHistory, 1)
	assert.Equal(t, 8, updated.SalesHistory[0].Quantity)
	assert.Equal(t, 0.27, updated.AverageDailySales)
}

func TestUpdateStockIncreaseSkipsLedger(t *testing.T) {
	repo := newMemoryRepo(testProduct())
	svc := NewInventoryService(repo, nil).WithClock(fixedClock)

	updated, err := svc.UpdateStock(context.Background(), "PROD001", 300)
	require.NoError(t, err)

	assert.Equal(t, 300, updated.CurrentStock)
	assert.Empty(t, updated.SalesHistory)
	assert.Equal(t, 8.0, updated.AverageDailySales, "replenishment must not touch the average")
}

func TestUpdateStockValidation(t *testing.T) {
	repo := newMemoryRepo(testProduct())
	svc := NewInventoryService(repo, nil)

	_, err := svc.UpdateStock(context.Background(), "PROD001", -1)
	assert.Error(t, err)

	_, err = svc.UpdateStock(context.Background(), "NOPE", 10)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestCreateProductGeneratesID(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewInventoryService(repo, nil).WithClock(fixedClock)

	created, err := svc.CreateProduct(context.Background(), domain.Product{Name: "Unlabeled"})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ProductID)
	assert.Equal(t, domain.CriticalityLow, created.CriticalityLevel)
	assert.Equal(t, fixedNow, created.LastUpdated)
}

func TestCreateProductRejectsUnknownCriticality(t *testing.T) {
	svc := NewInventoryService(newMemoryRepo(), nil)

	_, err := svc.CreateProduct(context.Background(), domain.Product{
		ProductID:        "PROD002",
		CriticalityLevel: "catastrophic",
	})
	assert.Error(t, err)
}

func TestSimulateDemandLeavesStoredProductUntouched(t *testing.T) {
	repo := newMemoryRepo(testProduct())
	svc := NewInventoryService(repo, nil)

	sim, err := svc.SimulateDemand(context.Background(), "PROD001", 2, 7)
	require.NoError(t, err)

	assert.Equal(t, "demand spike simulation: 2x normal sales for 7 days", sim.Reason)

	stored, err := repo.GetByID(context.Background(), "PROD001")
	require.NoError(t, err)
	assert.Equal(t, 8.0, stored.AverageDailySales)

	_, err = svc.SimulateDemand(context.Background(), "NOPE", 2, 7)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestReorderReportUsesCache(t *testing.T) {
	repo := newMemoryRepo(testProduct())
	cache := &countingCache{}
	reports := NewReportService(repo, cache).WithClock(fixedClock)

	first, err := reports.ReorderReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.misses)
	assert.Equal(t, 1, cache.sets)

	second, err := reports.ReorderReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, cache.hits)
	assert.Equal(t, first, second)
}

func TestStockUpdateInvalidatesReport(t *testing.T) {
	repo := newMemoryRepo(testProduct())
	cache := &countingCache{}
	inventory := NewInventoryService(repo, cache).WithClock(fixedClock)
	reports := NewReportService(repo, cache).WithClock(fixedClock)

	_, err := reports.ReorderReport(context.Background())
	require.NoError(t, err)
	require.NotNil(t, cache.report)

	_, err = inventory.UpdateStock(context.Background(), "PROD001", 20)
	require.NoError(t, err)
	assert.Nil(t, cache.report, "stock change must drop the cached report")

	report, err := reports.ReorderReport(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Recommendations, 1)
	assert.Equal(t, 20, report.Recommendations[0].CurrentStock)
}

func TestReorderReportCSV(t *testing.T) {
	repo := newMemoryRepo(testProduct())
	reports := NewReportService(repo, nil).WithClock(fixedClock)

	data, err := reports.ReorderReportCSV(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), "Product ID,Product Name")
	assert.Contains(t, string(data), "PROD001")
}
