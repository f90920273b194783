package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stocklane/warehouse-api/internal/domain"
	"github.com/stocklane/warehouse-api/internal/service"
)

func newProductRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	repo := &stubRepo{products: map[string]domain.Product{
		"PROD001": {
			ProductID:         "PROD001",
			Name:              "Wireless Headphones",
			CurrentStock:      45,
			AverageDailySales: 8,
			CriticalityLevel:  domain.CriticalityHigh,
		},
	}}

	handler := NewProductHandler(service.NewInventoryService(repo, nil))

	router := gin.New()
	router.GET("/products/:id", handler.GetProduct)
	router.POST("/products/:id/stock", handler.UpdateStock)
	return router
}

func TestGetProduct(t *testing.T) {
	router := newProductRouter()

	req := httptest.NewRequest(http.MethodGet, "/products/PROD001", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var p domain.Product
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Wireless Headphones", p.Name)

	req = httptest.NewRequest(http.MethodGet, "/products/NOPE", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStockEndpoint(t *testing.T) {
	router := newProductRouter()

	t.Run("applies a sale", func(t *testing.T) {
		w := postJSON(t, router, "/products/PROD001/stock",
			`{"newStock": 40, "reason": "Walk-in sale"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Success bool           `json:"success"`
			Message string         `json:"message"`
			Product domain.Product `json:"product"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Contains(t, resp.Message, "Walk-in sale")
		assert.Equal(t, 40, resp.Product.CurrentStock)
	})

	t.Run("rejects missing newStock", func(t *testing.T) {
		w := postJSON(t, router, "/products/PROD001/stock", `{"reason": "oops"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		w := postJSON(t, router, "/products/PROD001/stock", `{"newStock": -2}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown product", func(t *testing.T) {
		w := postJSON(t, router, "/products/NOPE/stock", `{"newStock": 10}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
