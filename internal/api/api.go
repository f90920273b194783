// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stocklane/warehouse-api/internal/api/handlers"
	"github.com/stocklane/warehouse-api/internal/api/middleware"
	"github.com/stocklane/warehouse-api/internal/service"
)

type Services struct {
	Inventory *service.InventoryService
	Reports   *service.ReportService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Inventory != nil {
			productHandler := handlers.NewProductHandler(services.Inventory)
			productGroup := apiGroup.Group("/products")
			{
				productGroup.GET("", productHandler.ListProducts)
				productGroup.POST("", productHandler.CreateProduct)
				productGroup.GET("/:id", productHandler.GetProduct)
				productGroup.PUT("/:id", productHandler.UpdateProduct)
				productGroup.DELETE("/:id", productHandler.DeleteProduct)
				productGroup.POST("/:id/stock", productHandler.UpdateStock)
			}
		}

		if services.Reports != nil && services.Inventory != nil {
			reportHandler := handlers.NewReportHandler(services.Reports, services.Inventory)
			reportGroup := apiGroup.Group("/reports")
			{
				reportGroup.GET("/reorder", reportHandler.GetReorderReport)
				reportGroup.GET("/reorder/export", reportHandler.ExportReorderReport)
			}

			apiGroup.POST("/simulate-demand", reportHandler.SimulateDemand)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
