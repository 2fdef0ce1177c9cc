package handlers

import (
	"log/slog"
	"net/http"
	"time"
)

// Version is reported by the health endpoint; overridden at build time with -ldflags
var Version = "dev"

// HealthHandler provides health check endpoint
type HealthHandler struct {
	catalogSource string
	logger        *slog.Logger
}

// NewHealthHandler creates a new health handler.
// catalogSource names where the catalog is read from ("loyverse" or "memory").
func NewHealthHandler(catalogSource string, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		catalogSource: catalogSource,
		logger:        logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	Version       string    `json:"version"`
	CatalogSource string    `json:"catalog_source"`
}

// ServeHTTP handles health check requests
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().UTC(),
		Version:       Version,
		CatalogSource: h.catalogSource,
	}, h.logger)
}
