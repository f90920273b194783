// internal/repository/product_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/stocklane/warehouse-api/internal/domain"
)

// ErrProductNotFound is returned when a product lookup by ID matches nothing.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository is the persistence boundary for product snapshots. The
// reorder engine never sees this interface; only the service layer does.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, productID string) (domain.Product, error)
	Create(ctx context.Context, p domain.Product) error
	Update(ctx context.Context, p domain.Product) error
	Upsert(ctx context.Context, p domain.Product) error
	// UpsertBatch writes all products or none of them. Bulk loads
	// (CSV ingest, seeding) go through this so a bad row cannot leave
	// a half-loaded file behind.
	UpsertBatch(ctx context.Context, products []domain.Product) error
	Delete(ctx context.Context, productID string) error
}
