package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/stocklane/warehouse-api/internal/cache"
	"github.com/stocklane/warehouse-api/internal/domain"
	"github.com/stocklane/warehouse-api/internal/reorder"
	"github.com/stocklane/warehouse-api/internal/repository"
)

// InventoryService owns product lifecycle and the stock-change contract:
// every stock decrease is recorded into the sales ledger and refreshes the
// rolling daily average before the product is persisted.
type InventoryService struct {
	repo  repository.ProductRepository
	cache cache.ReportCache
	now   func() time.Time
}

func NewInventoryService(repo repository.ProductRepository, cacheImpl cache.ReportCache) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &InventoryService{repo: repo, cache: cacheImpl, now: time.Now}
}

// WithClock overrides the reference clock. Tests use it to pin history
// bucketing to a fixed date.
func (s *InventoryService) WithClock(now func() time.Time) *InventoryService {
	s.now = now
	return s
}

func (s *InventoryService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

func (s *InventoryService) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	return s.repo.GetByID(ctx, productID)
}

func (s *InventoryService) CreateProduct(ctx context.Context, p domain.Product) (domain.Product, error) {
	if strings.TrimSpace(p.ProductID) == "" {
		p.ProductID = uuid.NewString()
	}
	if p.CriticalityLevel == "" {
		p.CriticalityLevel = domain.CriticalityLow
	}
	if !domain.ValidCriticality(p.CriticalityLevel) {
		return domain.Product{}, fmt.Errorf("invalid criticality level %q", p.CriticalityLevel)
	}
	p.LastUpdated = s.now()

	if err := s.repo.Create(ctx, p); err != nil {
		return domain.Product{}, err
	}

	s.invalidateReport(ctx)
	return p, nil
}

func (s *InventoryService) UpdateProduct(ctx context.Context, p domain.Product) error {
	if !domain.ValidCriticality(p.CriticalityLevel) {
		return fmt.Errorf("invalid criticality level %q", p.CriticalityLevel)
	}
	p.LastUpdated = s.now()

	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	s.invalidateReport(ctx)
	return nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, productID string) error {
	if err := s.repo.Delete(ctx, productID); err != nil {
		return err
	}

	s.invalidateReport(ctx)
	return nil
}

// UpdateStock applies the stock-change contract to a single product. A stock
// decrease counts as a sale: the difference is merged into today's ledger
// entry and the 30-day average is recomputed. Increases only replace the
// stock level.
func (s *InventoryService) UpdateStock(ctx context.Context, productID string, newStock int) (domain.Product, error) {
	if newStock < 0 {
		return domain.Product{}, fmt.Errorf("stock cannot be negative, got %d", newStock)
	}

	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return domain.Product{}, err
	}

	asOf := s.now()
	sold := p.CurrentStock - newStock

	updated := domain.SetStock(p, newStock, asOf)
	if sold > 0 {
		updated = domain.RecordSale(updated, sold, asOf)
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return domain.Product{}, err
	}

	s.invalidateReport(ctx)
	return updated, nil
}

// SimulateDemand runs the what-if recomputation against a stored product.
// Parameter validation happens at the HTTP boundary; this only resolves the
// product and delegates to the engine.
func (s *InventoryService) SimulateDemand(ctx context.Context, productID string, multiplier float64, durationDays int) (domain.ReorderRecommendation, error) {
	p, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return domain.ReorderRecommendation{}, err
	}

	return reorder.Simulate(p, multiplier, durationDays), nil
}

func (s *InventoryService) invalidateReport(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("inventory: report cache invalidation failed")
	}
}
