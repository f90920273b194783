// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stocklane/warehouse-api/internal/api"
	"github.com/stocklane/warehouse-api/internal/cache"
	"github.com/stocklane/warehouse-api/internal/config"
	"github.com/stocklane/warehouse-api/internal/repository/postgres"
	"github.com/stocklane/warehouse-api/internal/service"
	"github.com/stocklane/warehouse-api/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize report cache (noop when disabled)
	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("report cache unavailable, continuing without cache")
		reportCache = cache.NewNoopReportCache()
	}

	// Initialize services
	productRepo := postgres.NewProductRepository(db)
	inventoryService := service.NewInventoryService(productRepo, reportCache)
	reportService := service.NewReportService(productRepo, reportCache)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		Inventory: inventoryService,
		Reports:   reportService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
