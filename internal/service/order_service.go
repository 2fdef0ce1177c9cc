package service

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/repository"
)

var (
	ErrMissingPaymentType = errors.New("payment type is required")
)

// OrderService submits orders as upstream receipts
type OrderService struct {
	receipts       repository.ReceiptRepository
	defaultStoreID string
}

// NewOrderService creates a new order service.
// defaultStoreID is used for orders that do not name a store.
func NewOrderService(receipts repository.ReceiptRepository, defaultStoreID string) *OrderService {
	return &OrderService{
		receipts:       receipts,
		defaultStoreID: defaultStoreID,
	}
}

// CreateOrder builds the receipt payload and forwards it upstream
func (s *OrderService) CreateOrder(ctx context.Context, req models.OrderRequest) (*models.Receipt, error) {
	if req.PaymentTypeID == "" {
		return nil, ErrMissingPaymentType
	}

	return s.receipts.CreateReceipt(ctx, BuildReceiptPayload(req, s.defaultStoreID))
}

// GetOrder returns a submitted receipt by ID
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Receipt, error) {
	return s.receipts.GetReceipt(ctx, id)
}
