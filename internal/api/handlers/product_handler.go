package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stocklane/warehouse-api/internal/domain"
	"github.com/stocklane/warehouse-api/internal/repository"
	"github.com/stocklane/warehouse-api/internal/service"
)

type ProductHandler struct {
	service *service.InventoryService
}

func NewProductHandler(service *service.InventoryService) *ProductHandler {
	return &ProductHandler{service: service}
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.service.ListProducts(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "Failed to fetch products", err)
		return
	}
	if products == nil {
		products = make([]domain.Product, 0)
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.service.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			errorResponse(c, http.StatusNotFound, "Product not found", err)
			return
		}
		errorResponse(c, http.StatusInternalServerError, "Failed to fetch product", err)
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid product payload", err)
		return
	}

	created, err := h.service.CreateProduct(c.Request.Context(), product)
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "Failed to create product", err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var product domain.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid product payload", err)
		return
	}
	product.ProductID = c.Param("id")

	if err := h.service.UpdateProduct(c.Request.Context(), product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			errorResponse(c, http.StatusNotFound, "Product not found", err)
			return
		}
		errorResponse(c, http.StatusInternalServerError, "Failed to update product", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.service.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			errorResponse(c, http.StatusNotFound, "Product not found", err)
			return
		}
		errorResponse(c, http.StatusInternalServerError, "Failed to delete product", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

type updateStockRequest struct {
	NewStock *int   `json:"newStock" binding:"required"`
	Reason   string `json:"reason"`
}

// UpdateStock applies a stock change to one product. Decreases count as
// sales and feed the sales ledger.
func (h *ProductHandler) UpdateStock(c *gin.Context) {
	var req updateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Missing required parameter: newStock", err)
		return
	}
	if *req.NewStock < 0 {
		errorResponse(c, http.StatusBadRequest, "newStock cannot be negative", nil)
		return
	}

	updated, err := h.service.UpdateStock(c.Request.Context(), c.Param("id"), *req.NewStock)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			errorResponse(c, http.StatusNotFound, "Product not found", err)
			return
		}
		errorResponse(c, http.StatusInternalServerError, "Failed to update stock", err)
		return
	}

	message := "Stock updated for " + updated.Name
	if req.Reason != "" {
		message += ". " + req.Reason
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"product": updated,
	})
}
