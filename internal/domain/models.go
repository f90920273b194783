// internal/domain/models.go
package domain

import (
	"encoding/json"
	"math"
	"time"
)

// Product is the persisted inventory record the reorder engine operates on.
type Product struct {
	ProductID              string       `json:"productId" db:"product_id"`
	Name                   string       `json:"name" db:"name"`
	CurrentStock           int          `json:"currentStock" db:"current_stock"`
	AverageDailySales      float64      `json:"averageDailySales" db:"average_daily_sales"`
	SupplierLeadTime       int          `json:"supplierLeadTime" db:"supplier_lead_time"`
	MinimumReorderQuantity int          `json:"minimumReorderQuantity" db:"minimum_reorder_quantity"`
	CostPerUnit            float64      `json:"costPerUnit" db:"cost_per_unit"`
	CriticalityLevel       string       `json:"criticalityLevel" db:"criticality_level"`
	LastUpdated            time.Time    `json:"lastUpdated" db:"last_updated"`
	SalesHistory           SalesHistory `json:"salesHistory" db:"sales_history"`
}

// DailySales is one day's recorded sales. At most one entry per calendar day.
type DailySales struct {
	Date     time.Time `json:"date"`
	Quantity int       `json:"quantity"`
}

// SalesHistory is the product's day-bucketed sales ledger, ordered by date.
type SalesHistory []DailySales

// DaysOfStock carries the days-of-stock-remaining metric. It can be +Inf
// when sales velocity is zero; JSON encodes that as null, which is what the
// dashboard consumers already expect.
type DaysOfStock float64

// Unbounded is the sentinel for a product that never runs out at current velocity.
func Unbounded() DaysOfStock { return DaysOfStock(math.Inf(1)) }

func (d DaysOfStock) IsUnbounded() bool { return math.IsInf(float64(d), 1) }

func (d DaysOfStock) MarshalJSON() ([]byte, error) {
	if d.IsUnbounded() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(d))
}

func (d *DaysOfStock) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Unbounded()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*d = DaysOfStock(v)
	return nil
}

// ReorderRecommendation is the engine's output for a single product. It is
// ephemeral: computed on demand, never persisted.
type ReorderRecommendation struct {
	ProductID                string      `json:"productId"`
	ProductName              string      `json:"productName"`
	CurrentStock             int         `json:"currentStock"`
	DaysOfStockRemaining     DaysOfStock `json:"daysOfStockRemaining"`
	NeedsReorder             bool        `json:"needsReorder"`
	SuggestedReorderQuantity float64     `json:"suggestedReorderQuantity"`
	EstimatedCost            float64     `json:"estimatedCost"`
	CriticalityLevel         string      `json:"criticalityLevel"`
	Reason                   string      `json:"reason"`
}

// ReportSummary aggregates a sorted recommendation sequence.
type ReportSummary struct {
	TotalProducts          int     `json:"totalProducts"`
	ProductsNeedingReorder int     `json:"productsNeedingReorder"`
	TotalEstimatedCost     float64 `json:"totalEstimatedCost"`
	UrgentProducts         int     `json:"urgentProducts"`
}

// ReorderReport is the batch report handed to the dashboard.
type ReorderReport struct {
	Recommendations []ReorderRecommendation `json:"recommendations"`
	Summary         ReportSummary           `json:"summary"`
	GeneratedAt     time.Time               `json:"generatedAt"`
}
