package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/stocklane/warehouse-api/internal/repository"
	"github.com/stocklane/warehouse-api/internal/service"
)

type ReportHandler struct {
	reports   *service.ReportService
	inventory *service.InventoryService
}

func NewReportHandler(reports *service.ReportService, inventory *service.InventoryService) *ReportHandler {
	return &ReportHandler{reports: reports, inventory: inventory}
}

func (h *ReportHandler) GetReorderReport(c *gin.Context) {
	report, err := h.reports.ReorderReport(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "Failed to generate reorder report", err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// ExportReorderReport streams the report as a CSV download.
func (h *ReportHandler) ExportReorderReport(c *gin.Context) {
	data, err := h.reports.ReorderReportCSV(c.Request.Context())
	if err != nil {
		errorResponse(c, http.StatusInternalServerError, "Failed to export reorder report", err)
		return
	}

	filename := fmt.Sprintf("reorder-report-%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}

type simulateDemandRequest struct {
	ProductID    string  `json:"productId"`
	Multiplier   float64 `json:"multiplier"`
	DurationDays int     `json:"durationDays"`
}

// SimulateDemand validates the what-if parameters and hands them to the
// engine. The engine itself assumes the preconditions hold, so every reject
// happens here.
func (h *ReportHandler) SimulateDemand(c *gin.Context) {
	var req simulateDemandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, "Invalid simulation payload", err)
		return
	}

	if req.ProductID == "" || req.Multiplier <= 0 || req.DurationDays <= 0 {
		errorResponse(c, http.StatusBadRequest,
			"Missing or invalid parameters: productId, multiplier and durationDays must be positive", nil)
		return
	}

	simulation, err := h.inventory.SimulateDemand(c.Request.Context(), req.ProductID, req.Multiplier, req.DurationDays)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			errorResponse(c, http.StatusNotFound, "Product not found", err)
			return
		}
		errorResponse(c, http.StatusInternalServerError, "Failed to simulate demand", err)
		return
	}

	c.JSON(http.StatusOK, simulation)
}

func errorResponse(c *gin.Context, statusCode int, message string, err error) {
	if err != nil {
		log.Error().Err(err).Msg(message)
	} else {
		log.Error().Msg(message)
	}
	c.JSON(statusCode, gin.H{"error": message})
}
