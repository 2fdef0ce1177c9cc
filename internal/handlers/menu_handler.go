package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/loyverse"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/menu"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/repository"
	"github.com/go-chi/chi/v5"
)

type menuBuilder interface {
	Build(ctx context.Context) (*menu.Menu, error)
	BuildCategory(ctx context.Context, categoryID string) (*menu.Menu, error)
}

// MenuResponse is the grouped menu as served to clients
type MenuResponse struct {
	Sections []menu.Section `json:"sections"`
	Failures []MenuFailure  `json:"failures"`
}

// MenuFailure names a category that rendered empty because its products could not be loaded
type MenuFailure struct {
	CategoryID string `json:"category_id"`
	Error      string `json:"error"`
}

// MenuHandler serves the aggregated menu
type MenuHandler struct {
	builder menuBuilder
	logger  *slog.Logger
}

// NewMenuHandler creates a new menu handler
func NewMenuHandler(builder menuBuilder, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		builder: builder,
		logger:  logger,
	}
}

// GetMenu handles GET /menu?search=
func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	m, err := h.builder.Build(r.Context())
	if err != nil {
		h.logger.Error("failed to build menu", "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to load menu", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, toMenuResponse(m.Filter(r.URL.Query().Get("search"))), h.logger)
}

// GetCategoryMenu handles GET /menu/{categoryId}
func (h *MenuHandler) GetCategoryMenu(w http.ResponseWriter, r *http.Request) {
	categoryID := chi.URLParam(r, "categoryId")

	m, err := h.builder.BuildCategory(r.Context(), categoryID)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) || errors.Is(err, loyverse.ErrNotFound) {
			h.logger.Info("category not found", "category_id", categoryID)
			WriteError(w, http.StatusNotFound, "Category not found", h.logger)
			return
		}

		h.logger.Error("failed to build category menu", "category_id", categoryID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to load menu", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, toMenuResponse(m), h.logger)
}

func toMenuResponse(m *menu.Menu) MenuResponse {
	resp := MenuResponse{
		Sections: m.Sections(),
		Failures: make([]MenuFailure, 0, len(m.Failures)),
	}
	for _, f := range m.Failures {
		resp.Failures = append(resp.Failures, MenuFailure{
			CategoryID: f.CategoryID,
			Error:      "Failed to fetch products",
		})
	}
	return resp
}
