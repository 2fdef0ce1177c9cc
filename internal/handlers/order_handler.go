package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/loyverse"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/repository"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/service"
	"github.com/go-chi/chi/v5"
)

type orderService interface {
	CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Receipt, error)
	GetOrder(ctx context.Context, id string) (*models.Receipt, error)
}

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService orderService
	log          *slog.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService orderService, log *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		log:          log,
	}
}

// CreateOrder handles POST /orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req models.OrderRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.log.Error("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.log)
		return
	}

	receipt, err := h.orderService.CreateOrder(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingPaymentType):
			h.log.Warn("order rejected", "error", err)
			WriteError(w, http.StatusBadRequest, "Missing payment_type_id", h.log)
		default:
			h.log.Error("failed to create order", "error", err)
			WriteError(w, http.StatusInternalServerError, "Failed to create order", h.log)
		}
		return
	}

	WriteJSON(w, http.StatusCreated, receipt, h.log)
	h.log.Info("order created successfully",
		"receipt_id", receipt.ID,
		"receipt_number", receipt.ReceiptNumber,
		"items_count", len(receipt.LineItems),
	)
}

// GetOrder handles GET /orders/{receiptId}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "receiptId")

	receipt, err := h.orderService.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrReceiptNotFound) || errors.Is(err, loyverse.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Order not found", h.log)
			return
		}

		h.log.Error("failed to get order", "receipt_id", id, "error", err)
		WriteError(w, http.StatusInternalServerError, "Failed to fetch order", h.log)
		return
	}

	WriteJSON(w, http.StatusOK, receipt, h.log)
}
