// Package export renders reorder reports in the CSV layout consumed by the
// dashboard's download button and downstream spreadsheets.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/stocklane/warehouse-api/internal/domain"
)

// Header is the fixed CSV header row. Column order is part of the contract
// with existing consumers.
var Header = []string{
	"Product ID",
	"Product Name",
	"Current Stock",
	"Days Remaining",
	"Needs Reorder",
	"Suggested Quantity",
	"Estimated Cost",
	"Criticality",
	"Reason",
}

// ReportCSV renders recommendations as a CSV document, header first.
func ReportCSV(recs []domain.ReorderRecommendation) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(Header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, rec := range recs {
		row := []string{
			rec.ProductID,
			rec.ProductName,
			strconv.Itoa(rec.CurrentStock),
			formatDays(rec.DaysOfStockRemaining),
			formatBool(rec.NeedsReorder),
			formatNumber(rec.SuggestedReorderQuantity),
			formatNumber(rec.EstimatedCost),
			rec.CriticalityLevel,
			rec.Reason,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row for %s: %w", rec.ProductID, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func formatDays(d domain.DaysOfStock) string {
	if d.IsUnbounded() {
		return "Infinity"
	}
	return formatNumber(float64(d))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
