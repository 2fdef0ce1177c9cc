// Package cart holds the client-local cart that becomes an order request.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyCart       = errors.New("cart is empty")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Submitter sends an order request and returns the created receipt
type Submitter interface {
	SubmitOrder(ctx context.Context, req models.OrderRequest) (*models.Receipt, error)
}

// Cart collects lines for one store. Safe for concurrent use.
type Cart struct {
	mu      sync.Mutex
	storeID string
	lines   []models.CartLine
}

// New creates an empty cart priced for storeID
func New(storeID string) *Cart {
	return &Cart{storeID: storeID}
}

// Add puts quantity units of a product variant in the cart.
// Adding a variant that is already present increases its quantity.
func (c *Cart) Add(product models.Product, variant models.Variant, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].ProductID == product.ID && c.lines[i].VariantID == variant.ID {
			c.lines[i].Quantity += quantity
			return nil
		}
	}

	c.lines = append(c.lines, models.CartLine{
		ProductID: product.ID,
		VariantID: variant.ID,
		Quantity:  quantity,
		Price:     variant.PriceAt(c.storeID),
	})
	return nil
}

// Remove drops the line for variantID. It reports whether a line was removed.
func (c *Cart) Remove(variantID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, line := range c.lines {
		if line.VariantID == variantID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Lines returns a copy of the cart lines in insertion order
func (c *Cart) Lines() []models.CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]models.CartLine, len(c.lines))
	copy(lines, c.lines)
	return lines
}

// Len returns the number of lines
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Total sums price times quantity over all lines
func (c *Cart) Total() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return total(c.lines)
}

// Clear removes every line
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}

// Order builds the order request for the current lines
func (c *Cart) Order(paymentTypeID, note string) (models.OrderRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.lines) == 0 {
		return models.OrderRequest{}, ErrEmptyCart
	}

	items := make([]models.CartLine, len(c.lines))
	copy(items, c.lines)

	return models.OrderRequest{
		StoreID:       c.storeID,
		Items:         items,
		Note:          note,
		Total:         total(items),
		PaymentTypeID: paymentTypeID,
	}, nil
}

// Submit sends the cart through s and clears it once the receipt is created.
// On failure the lines are kept so the order can be retried.
func (c *Cart) Submit(ctx context.Context, s Submitter, paymentTypeID, note string) (*models.Receipt, error) {
	req, err := c.Order(paymentTypeID, note)
	if err != nil {
		return nil, err
	}

	receipt, err := s.SubmitOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}

	c.Clear()
	return receipt, nil
}

func total(lines []models.CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum
}
