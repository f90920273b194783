// Package ingest handles bulk product loads from CSV files, either uploaded
// over HTTP or staged on disk by the seed tooling.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/stocklane/warehouse-api/internal/domain"
)

// csvColumns is the required header for product CSV files, in order.
var csvColumns = []string{
	"product_id",
	"name",
	"current_stock",
	"average_daily_sales",
	"supplier_lead_time",
	"minimum_reorder_quantity",
	"cost_per_unit",
	"criticality_level",
}

// ParseProducts reads a product CSV stream into domain records. The header
// row is validated; rows with malformed numbers or unknown criticality
// levels abort the whole parse so a bad file never half-loads.
func ParseProducts(r io.Reader, asOf time.Time) ([]domain.Product, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	if err := validateHeader(header); err != nil {
		return nil, err
	}

	var products []domain.Product
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		line++

		p, err := parseRow(record, asOf)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		products = append(products, p)
	}

	return products, nil
}

func validateHeader(header []string) error {
	if len(header) < len(csvColumns) {
		return fmt.Errorf("expected %d columns, got %d", len(csvColumns), len(header))
	}
	for i, want := range csvColumns {
		if strings.TrimSpace(strings.ToLower(header[i])) != want {
			return fmt.Errorf("expected column %d to be %q, got %q", i, want, header[i])
		}
	}
	return nil
}

func parseRow(record []string, asOf time.Time) (domain.Product, error) {
	if len(record) < len(csvColumns) {
		return domain.Product{}, fmt.Errorf("expected %d fields, got %d", len(csvColumns), len(record))
	}

	productID := strings.TrimSpace(record[0])
	if productID == "" {
		return domain.Product{}, fmt.Errorf("product_id is required")
	}

	currentStock, err := strconv.Atoi(strings.TrimSpace(record[2]))
	if err != nil || currentStock < 0 {
		return domain.Product{}, fmt.Errorf("invalid current_stock %q", record[2])
	}

	avgSales, err := strconv.ParseFloat(strings.TrimSpace(record[3]), 64)
	if err != nil || avgSales < 0 {
		return domain.Product{}, fmt.Errorf("invalid average_daily_sales %q", record[3])
	}

	leadTime, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil || leadTime < 0 {
		return domain.Product{}, fmt.Errorf("invalid supplier_lead_time %q", record[4])
	}

	minReorder, err := strconv.Atoi(strings.TrimSpace(record[5]))
	if err != nil || minReorder < 0 {
		return domain.Product{}, fmt.Errorf("invalid minimum_reorder_quantity %q", record[5])
	}

	costPerUnit, err := strconv.ParseFloat(strings.TrimSpace(record[6]), 64)
	if err != nil || costPerUnit < 0 {
		return domain.Product{}, fmt.Errorf("invalid cost_per_unit %q", record[6])
	}

	criticality := strings.ToLower(strings.TrimSpace(record[7]))
	if !domain.ValidCriticality(criticality) {
		return domain.Product{}, fmt.Errorf("invalid criticality_level %q", record[7])
	}

	return domain.Product{
		ProductID:              productID,
		Name:                   strings.TrimSpace(record[1]),
		CurrentStock:           currentStock,
		AverageDailySales:      avgSales,
		SupplierLeadTime:       leadTime,
		MinimumReorderQuantity: minReorder,
		CostPerUnit:            costPerUnit,
		CriticalityLevel:       criticality,
		LastUpdated:            asOf,
		SalesHistory:           domain.SalesHistory{},
	}, nil
}
