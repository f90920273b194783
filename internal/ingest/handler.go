package ingest

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

// Handler exposes the ingest service over the sidecar's HTTP surface.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/ingest/products", h.IngestProducts).Methods("POST")
}

// IngestProducts accepts a product CSV, either as a multipart "file" field
// or as the raw request body.
func (h *Handler) IngestProducts(w http.ResponseWriter, r *http.Request) {
	body := r.Body

	if err := r.ParseMultipartForm(32 << 20); err == nil {
		file, _, ferr := r.FormFile("file")
		if ferr == nil {
			defer file.Close()
			body = file
		}
	}

	result, err := h.service.IngestCSV(r.Context(), body)
	if err != nil {
		http.Error(w, fmt.Sprintf("ingestion failed: %v", err), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
