package reorder

import (
	"fmt"
	"math"

	"github.com/stocklane/warehouse-api/internal/domain"
)

const (
	// bufferDays is the safety margin added on top of the supplier lead time.
	bufferDays = 5

	// targetDays is the coverage horizon a reorder should restore.
	targetDays = 60
)

// Decision reasons surfaced to the dashboard. The strings are part of the
// API contract; existing consumers match on them.
const (
	ReasonUrgent   = "URGENT: stock exhausts before next delivery"
	ReasonBelow    = "stock below safety threshold"
	ReasonAdequate = "stock levels adequate"
)

// DaysOfStockRemaining returns how many whole days the current stock lasts at
// the given sales velocity. Zero or negative velocity means the product never
// runs out, reported as the unbounded sentinel.
func DaysOfStockRemaining(currentStock int, averageDailySales float64) domain.DaysOfStock {
	if averageDailySales <= 0 {
		return domain.Unbounded()
	}
	return domain.DaysOfStock(math.Floor(float64(currentStock) / averageDailySales))
}

// SafetyStockThreshold is the stock level at which a reorder must be placed:
// expected consumption across the lead time plus the fixed buffer.
func SafetyStockThreshold(averageDailySales float64, supplierLeadTime int) float64 {
	return averageDailySales * float64(supplierLeadTime+bufferDays)
}

// NeedsReorder reports whether the product sits at or below its safety stock
// threshold. Equality counts as needing a reorder.
func NeedsReorder(p domain.Product) bool {
	return float64(p.CurrentStock) <= SafetyStockThreshold(p.AverageDailySales, p.SupplierLeadTime)
}

// ReorderQuantity is the amount needed to restore targetDays of coverage,
// floored by the supplier's minimum order quantity. The supplier floor wins
// even when the computed need is zero.
func ReorderQuantity(currentStock int, averageDailySales float64, minimumReorderQuantity int) float64 {
	requiredStock := averageDailySales * targetDays
	neededQuantity := math.Max(0, requiredStock-float64(currentStock))

	return math.Max(neededQuantity, float64(minimumReorderQuantity))
}

// Recommend computes the full reorder decision for a single product snapshot.
// It is a pure function: no validation, no I/O, no errors. Callers are
// responsible for field-range validation before invoking it.
func Recommend(p domain.Product) domain.ReorderRecommendation {
	daysOfStock := DaysOfStockRemaining(p.CurrentStock, p.AverageDailySales)
	needsReorder := NeedsReorder(p)

	var (
		suggestedQuantity float64
		estimatedCost     float64
		reason            string
	)

	if needsReorder {
		suggestedQuantity = ReorderQuantity(p.CurrentStock, p.AverageDailySales, p.MinimumReorderQuantity)
		estimatedCost = suggestedQuantity * p.CostPerUnit

		if float64(daysOfStock) <= float64(p.SupplierLeadTime) {
			reason = ReasonUrgent
		} else {
			reason = ReasonBelow
		}
	} else {
		reason = ReasonAdequate
	}

	return domain.ReorderRecommendation{
		ProductID:                p.ProductID,
		ProductName:              p.Name,
		CurrentStock:             p.CurrentStock,
		DaysOfStockRemaining:     daysOfStock,
		NeedsReorder:             needsReorder,
		SuggestedReorderQuantity: suggestedQuantity,
		EstimatedCost:            estimatedCost,
		CriticalityLevel:         p.CriticalityLevel,
		Reason:                   reason,
	}
}

// Simulate runs Recommend against a transient copy of the product whose sales
// velocity is scaled by multiplier. The stored product is never touched.
// durationDays is narrative only: it appears in the reason string but does
// not change the arithmetic. Input validation (multiplier > 0,
// durationDays > 0) is the caller's job.
func Simulate(p domain.Product, multiplier float64, durationDays int) domain.ReorderRecommendation {
	spiked := p
	spiked.AverageDailySales = p.AverageDailySales * multiplier

	rec := Recommend(spiked)
	rec.Reason = fmt.Sprintf("demand spike simulation: %gx normal sales for %d days", multiplier, durationDays)
	return rec
}
