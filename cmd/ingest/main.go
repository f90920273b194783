package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/stocklane/warehouse-api/internal/config"
	"github.com/stocklane/warehouse-api/internal/ingest"
	"github.com/stocklane/warehouse-api/internal/repository/postgres"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize Database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Repositories and Services
	productRepo := postgres.NewProductRepository(db)
	ingestService := ingest.NewService(productRepo)

	// Create router
	r := mux.NewRouter()

	// Register routes
	ingestHandler := ingest.NewHandler(ingestService)
	ingestHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Ingest.Port)
	log.Printf("Ingest sidecar starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
