package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"time"
)

// salesWindowDays is the trailing window used for the rolling daily average.
const salesWindowDays = 30

// RecordSale merges quantity into the history entry for asOf's calendar day
// (same-day sales accumulate rather than duplicate) and recomputes
// AverageDailySales over the trailing 30-day window. The input product is not
// mutated; the reference date is explicit so callers stay deterministic.
func RecordSale(p Product, quantity int, asOf time.Time) Product {
	day := truncateToDay(asOf)

	history := make(SalesHistory, len(p.SalesHistory))
	copy(history, p.SalesHistory)

	merged := false
	for i, entry := range history {
		if sameDay(entry.Date, day) {
			history[i].Quantity = entry.Quantity + quantity
			merged = true
			break
		}
	}
	if !merged {
		history = append(history, DailySales{Date: day, Quantity: quantity})
	}

	p.SalesHistory = history
	p.AverageDailySales = history.RollingDailyAverage(asOf)
	p.LastUpdated = asOf
	return p
}

// SetStock replaces the on-hand stock without touching the sales ledger.
// The caller composes it with RecordSale when the change is a sale.
func SetStock(p Product, newStock int, asOf time.Time) Product {
	p.CurrentStock = newStock
	p.LastUpdated = asOf
	return p
}

// RollingDailyAverage is the mean quantity per day over the trailing 30-day
// window ending at asOf, rounded to 2 decimal places. The divisor is the full
// window length, not the number of entries.
func (h SalesHistory) RollingDailyAverage(asOf time.Time) float64 {
	cutoff := asOf.AddDate(0, 0, -salesWindowDays)

	total := 0
	for _, entry := range h {
		if entry.Date.After(cutoff) || entry.Date.Equal(cutoff) {
			total += entry.Quantity
		}
	}

	return Round2(float64(total) / salesWindowDays)
}

// Round2 rounds to 2 decimal places, the precision stored for currency and
// sales averages.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// Value serializes the history as JSON for the jsonb column.
func (h SalesHistory) Value() (driver.Value, error) {
	if h == nil {
		return "[]", nil
	}
	data, err := json.Marshal(h)
	if err != nil {
		return nil, fmt.Errorf("encode sales history: %w", err)
	}
	return string(data), nil
}

// Scan reads the history back from a jsonb column.
func (h *SalesHistory) Scan(src interface{}) error {
	if src == nil {
		*h = SalesHistory{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported sales history column type %T", src)
	}

	if err := json.Unmarshal(data, h); err != nil {
		return fmt.Errorf("decode sales history: %w", err)
	}
	return nil
}
