package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stocklane/warehouse-api/internal/domain"
	"github.com/stocklane/warehouse-api/internal/repository"
)

const productColumns = `
	product_id, name, current_stock, average_daily_sales, supplier_lead_time,
	minimum_reorder_quantity, cost_per_unit, criticality_level, last_updated,
	sales_history`

const upsertProductQuery = `
	INSERT INTO products (` + productColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (product_id) DO UPDATE SET
		name = EXCLUDED.name,
		current_stock = EXCLUDED.current_stock,
		average_daily_sales = EXCLUDED.average_daily_sales,
		supplier_lead_time = EXCLUDED.supplier_lead_time,
		minimum_reorder_quantity = EXCLUDED.minimum_reorder_quantity,
		cost_per_unit = EXCLUDED.cost_per_unit,
		criticality_level = EXCLUDED.criticality_level,
		last_updated = EXCLUDED.last_updated,
		sales_history = EXCLUDED.sales_history
`

type productRepository struct {
	db *DB
}

func NewProductRepository(db *DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY product_id`

	var products []domain.Product
	if err := r.db.SelectContext(ctx, &products, query); err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}

	return products, nil
}

func (r *productRepository) GetByID(ctx context.Context, productID string) (domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`

	var p domain.Product
	if err := r.db.GetContext(ctx, &p, query, productID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, repository.ErrProductNotFound
		}
		return domain.Product{}, fmt.Errorf("error getting product %s: %w", productID, err)
	}

	return p, nil
}

func (r *productRepository) Create(ctx context.Context, p domain.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	if _, err := r.db.ExecContext(ctx, query,
		p.ProductID, p.Name, p.CurrentStock, p.AverageDailySales, p.SupplierLeadTime,
		p.MinimumReorderQuantity, p.CostPerUnit, p.CriticalityLevel, p.LastUpdated,
		p.SalesHistory,
	); err != nil {
		return fmt.Errorf("error creating product %s: %w", p.ProductID, err)
	}

	return nil
}

func (r *productRepository) Update(ctx context.Context, p domain.Product) error {
	query := `
		UPDATE products SET
			name = $2,
			current_stock = $3,
			average_daily_sales = $4,
			supplier_lead_time = $5,
			minimum_reorder_quantity = $6,
			cost_per_unit = $7,
			criticality_level = $8,
			last_updated = $9,
			sales_history = $10
		WHERE product_id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		p.ProductID, p.Name, p.CurrentStock, p.AverageDailySales, p.SupplierLeadTime,
		p.MinimumReorderQuantity, p.CostPerUnit, p.CriticalityLevel, p.LastUpdated,
		p.SalesHistory,
	)
	if err != nil {
		return fmt.Errorf("error updating product %s: %w", p.ProductID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking update result: %w", err)
	}
	if rows == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (r *productRepository) Upsert(ctx context.Context, p domain.Product) error {
	if _, err := r.db.ExecContext(ctx, upsertProductQuery,
		p.ProductID, p.Name, p.CurrentStock, p.AverageDailySales, p.SupplierLeadTime,
		p.MinimumReorderQuantity, p.CostPerUnit, p.CriticalityLevel, p.LastUpdated,
		p.SalesHistory,
	); err != nil {
		return fmt.Errorf("error upserting product %s: %w", p.ProductID, err)
	}

	return nil
}

// UpsertBatch upserts all products inside a single transaction, so a bulk
// load either lands completely or rolls back.
func (r *productRepository) UpsertBatch(ctx context.Context, products []domain.Product) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, upsertProductQuery)
		if err != nil {
			return fmt.Errorf("failed to prepare upsert statement: %w", err)
		}
		defer stmt.Close()

		for _, p := range products {
			if _, err := stmt.ExecContext(ctx,
				p.ProductID, p.Name, p.CurrentStock, p.AverageDailySales, p.SupplierLeadTime,
				p.MinimumReorderQuantity, p.CostPerUnit, p.CriticalityLevel, p.LastUpdated,
				p.SalesHistory,
			); err != nil {
				return fmt.Errorf("error upserting product %s: %w", p.ProductID, err)
			}
		}

		return nil
	})
}

func (r *productRepository) Delete(ctx context.Context, productID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return fmt.Errorf("error deleting product %s: %w", productID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("error checking delete result: %w", err)
	}
	if rows == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}
