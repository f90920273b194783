package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDay = time.Date(2026, time.March, 14, 15, 30, 0, 0, time.UTC)

func TestRecordSale(t *testing.T) {
	t.Run("appends a new day entry", func(t *testing.T) {
		p := Product{CurrentStock: 100}

		updated := RecordSale(p, 5, testDay)

		require.Len(t, updated.SalesHistory, 1)
		assert.Equal(t, 5, updated.SalesHistory[0].Quantity)
		assert.Equal(t, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), updated.SalesHistory[0].Date)
	})

	t.Run("same-day sales accumulate into one entry", func(t *testing.T) {
		p := Product{}
		p = RecordSale(p, 5, testDay)
		p = RecordSale(p, 3, testDay.Add(2*time.Hour))

		require.Len(t, p.SalesHistory, 1)
		assert.Equal(t, 8, p.SalesHistory[0].Quantity)
	})

	t.Run("recomputes average over trailing 30-day window", func(t *testing.T) {
		p := Product{
			SalesHistory: SalesHistory{
				// outside the window, must be ignored
				{Date: testDay.AddDate(0, 0, -40), Quantity: 1000},
				{Date: testDay.AddDate(0, 0, -10), Quantity: 30},
				{Date: testDay.AddDate(0, 0, -5), Quantity: 25},
			},
		}

		updated := RecordSale(p, 5, testDay)

		// (30 + 25 + 5) / 30 = 2.00
		assert.Equal(t, 2.0, updated.AverageDailySales)
	})

	t.Run("average rounds to 2 decimal places", func(t *testing.T) {
		p := Product{}
		updated := RecordSale(p, 10, testDay)

		// 10 / 30 = 0.333... -> 0.33
		assert.Equal(t, 0.33, updated.AverageDailySales)
	})

	t.Run("does not mutate the input", func(t *testing.T) {
		original := Product{
			SalesHistory: SalesHistory{{Date: testDay, Quantity: 2}},
		}
		snapshot := Product{
			SalesHistory: SalesHistory{{Date: testDay, Quantity: 2}},
		}

		_ = RecordSale(original, 7, testDay)

		assert.Equal(t, snapshot.SalesHistory, original.SalesHistory)
	})
}

func TestSetStock(t *testing.T) {
	p := Product{CurrentStock: 50, SalesHistory: SalesHistory{{Date: testDay, Quantity: 3}}}

	updated := SetStock(p, 80, testDay)

	assert.Equal(t, 80, updated.CurrentStock)
	assert.Equal(t, testDay, updated.LastUpdated)
	// ledger untouched
	assert.Equal(t, p.SalesHistory, updated.SalesHistory)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 6248.05, Round2(6248.049999999999))
	assert.Equal(t, 0.33, Round2(1.0/3.0))
	assert.Equal(t, 2.0, Round2(2))
}

func TestDaysOfStockJSON(t *testing.T) {
	t.Run("finite value round-trips", func(t *testing.T) {
		data, err := json.Marshal(DaysOfStock(12))
		require.NoError(t, err)
		assert.Equal(t, "12", string(data))

		var d DaysOfStock
		require.NoError(t, json.Unmarshal(data, &d))
		assert.Equal(t, DaysOfStock(12), d)
	})

	t.Run("unbounded encodes as null", func(t *testing.T) {
		data, err := json.Marshal(Unbounded())
		require.NoError(t, err)
		assert.Equal(t, "null", string(data))

		var d DaysOfStock
		require.NoError(t, json.Unmarshal(data, &d))
		assert.True(t, d.IsUnbounded())
	})

	t.Run("recommendation with unbounded runway marshals", func(t *testing.T) {
		rec := ReorderRecommendation{
			ProductID:            "PROD001",
			DaysOfStockRemaining: Unbounded(),
		}

		data, err := json.Marshal(rec)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"daysOfStockRemaining":null`)
	})
}

func TestSalesHistoryScanValue(t *testing.T) {
	h := SalesHistory{
		{Date: time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), Quantity: 4},
		{Date: time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC), Quantity: 7},
	}

	value, err := h.Value()
	require.NoError(t, err)

	var scanned SalesHistory
	require.NoError(t, scanned.Scan([]byte(value.(string))))
	assert.Equal(t, h, scanned)

	t.Run("nil column scans to empty ledger", func(t *testing.T) {
		var scanned SalesHistory
		require.NoError(t, scanned.Scan(nil))
		assert.Empty(t, scanned)
	})
}

func TestCriticalityRank(t *testing.T) {
	assert.Greater(t, CriticalityRank(CriticalityHigh), CriticalityRank(CriticalityMedium))
	assert.Greater(t, CriticalityRank(CriticalityMedium), CriticalityRank(CriticalityLow))
	assert.Greater(t, CriticalityRank(CriticalityLow), CriticalityRank("unknown"))

	assert.True(t, ValidCriticality("High"))
	assert.False(t, ValidCriticality("critical"))
}
