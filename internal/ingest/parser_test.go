package ingest

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklane/warehouse-api/internal/domain"
)

const validCSV = `product_id,name,current_stock,average_daily_sales,supplier_lead_time,minimum_reorder_quantity,cost_per_unit,criticality_level
PROD001,Wireless Headphones,45,8,7,50,75.99,high
PROD002,Smartphone Case,120,15,5,100,12.50,medium
`

func TestParseProducts(t *testing.T) {
	asOf := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	products, err := ParseProducts(strings.NewReader(validCSV), asOf)
	require.NoError(t, err)
	require.Len(t, products, 2)

	first := products[0]
	assert.Equal(t, "PROD001", first.ProductID)
	assert.Equal(t, "Wireless Headphones", first.Name)
	assert.Equal(t, 45, first.CurrentStock)
	assert.Equal(t, 8.0, first.AverageDailySales)
	assert.Equal(t, 7, first.SupplierLeadTime)
	assert.Equal(t, 50, first.MinimumReorderQuantity)
	assert.Equal(t, 75.99, first.CostPerUnit)
	assert.Equal(t, domain.CriticalityHigh, first.CriticalityLevel)
	assert.Equal(t, asOf, first.LastUpdated)
	assert.Empty(t, first.SalesHistory)
}

func TestParseProductsRejectsBadData(t *testing.T) {
	asOf := time.Now()

	cases := map[string]string{
		"wrong header": "sku,name\nPROD001,Thing\n",
		"missing product id": validCSV +
			",Nameless,1,1,1,1,1,low\n",
		"negative stock": validCSV +
			"PROD009,Broken,-5,1,1,1,1,low\n",
		"bad criticality": validCSV +
			"PROD010,Odd,5,1,1,1,1,critical\n",
		"malformed number": validCSV +
			"PROD011,Odd,five,1,1,1,1,low\n",
	}

	for name, csvData := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseProducts(strings.NewReader(csvData), asOf)
			assert.Error(t, err)
		})
	}
}
