package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/stocklane/warehouse-api/internal/repository"
)

// Service upserts parsed product CSVs into the backing store.
type Service struct {
	repo repository.ProductRepository
	now  func() time.Time
}

func NewService(repo repository.ProductRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Result summarizes a completed ingest run.
type Result struct {
	Ingested    int       `json:"ingested"`
	ProcessedAt time.Time `json:"processedAt"`
}

// IngestCSV parses r and upserts every product it contains in one batch.
// Existing products are overwritten, which is how full warehouse exports
// are refreshed; a parse or write failure leaves the store untouched.
func (s *Service) IngestCSV(ctx context.Context, r io.Reader) (Result, error) {
	asOf := s.now()

	products, err := ParseProducts(r, asOf)
	if err != nil {
		return Result{}, fmt.Errorf("parse product csv: %w", err)
	}

	if err := s.repo.UpsertBatch(ctx, products); err != nil {
		return Result{}, fmt.Errorf("upsert products: %w", err)
	}

	log.Info().Int("products", len(products)).Msg("product csv ingested")

	return Result{Ingested: len(products), ProcessedAt: asOf}, nil
}
