package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
)

// catalogService is the read side of the catalog used by the proxy endpoints
type catalogService interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]models.Product, error)
	ListStores(ctx context.Context) ([]models.Store, error)
}

// CatalogHandler exposes categories and products.
// Upstream failures are logged and answered with a generic 500.
type CatalogHandler struct {
	service catalogService
	logger  *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(service catalogService, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger,
	}
}

// ListCategories handles GET /categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch categories", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch categories", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, categories, h.logger)
}

// ListProducts handles GET /products/all
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch products", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch products", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// ListProductsByCategory handles GET /products/by-category?category_id=
func (h *CatalogHandler) ListProductsByCategory(w http.ResponseWriter, r *http.Request) {
	categoryID := r.URL.Query().Get("category_id")
	if categoryID == "" {
		h.logger.Warn("category_id is required")
		WriteError(w, http.StatusBadRequest, "Missing category_id parameter", h.logger)
		return
	}

	products, err := h.service.ListProductsByCategory(r.Context(), categoryID)
	if err != nil {
		h.logger.Error("failed to fetch products", "category_id", categoryID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch products", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, products, h.logger)
}

// ListStores handles GET /stores
func (h *CatalogHandler) ListStores(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.ListStores(r.Context())
	if err != nil {
		h.logger.Error("failed to fetch stores", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch stores", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, stores, h.logger)
}
