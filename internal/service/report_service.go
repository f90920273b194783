package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stocklane/warehouse-api/internal/cache"
	"github.com/stocklane/warehouse-api/internal/domain"
	"github.com/stocklane/warehouse-api/internal/export"
	"github.com/stocklane/warehouse-api/internal/reorder"
	"github.com/stocklane/warehouse-api/internal/repository"
)

// ReportService produces the batch reorder report over all products.
type ReportService struct {
	repo  repository.ProductRepository
	cache cache.ReportCache
	now   func() time.Time
}

func NewReportService(repo repository.ProductRepository, cacheImpl cache.ReportCache) *ReportService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopReportCache()
	}
	return &ReportService{repo: repo, cache: cacheImpl, now: time.Now}
}

func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// ReorderReport returns the cached report when fresh, otherwise loads every
// product, runs the engine over them, and caches the result.
func (s *ReportService) ReorderReport(ctx context.Context) (*domain.ReorderReport, error) {
	if report, ok, err := s.cache.GetReport(ctx); err == nil && ok {
		return report, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("report: cache get failed")
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	report, err := reorder.GenerateReport(ctx, products, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetReport(ctx, &report); err != nil {
		log.Warn().Err(err).Msg("report: cache set failed")
	}

	return &report, nil
}

// ReorderReportCSV renders the current report in the export format the
// dashboard's download button expects.
func (s *ReportService) ReorderReportCSV(ctx context.Context) ([]byte, error) {
	report, err := s.ReorderReport(ctx)
	if err != nil {
		return nil, err
	}

	return export.ReportCSV(report.Recommendations)
}
