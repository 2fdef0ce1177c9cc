package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a receipt
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// CartLine is a client-side line item created by "add to cart"
type CartLine struct {
	ProductID string          `json:"product_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Modifiers []string        `json:"modifiers,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// OrderRequest represents an incoming order submission.
// Total is computed by the caller; PaymentTypeID selects the upstream payment type.
type OrderRequest struct {
	StoreID       string          `json:"store_id,omitempty"`
	CustomerID    string          `json:"customer_id,omitempty"`
	Items         []CartLine      `json:"items"`
	Note          string          `json:"note,omitempty"`
	Total         decimal.Decimal `json:"total"`
	PaymentTypeID string          `json:"payment_type_id"`
}

// ReceiptPayload is the body of the upstream create-receipt call
type ReceiptPayload struct {
	StoreID    string     `json:"store_id"`
	CustomerID string     `json:"customer_id,omitempty"`
	LineItems  []LineItem `json:"line_items"`
	Note       string     `json:"note,omitempty"`
	Payments   []Payment  `json:"payments"`
}

// LineItem is a receipt line as sent to and returned by the upstream API
type LineItem struct {
	ItemID    string          `json:"item_id"`
	VariantID string          `json:"variant_id,omitempty"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Modifiers []string        `json:"modifiers,omitempty"`
	Note      string          `json:"note,omitempty"`
}

// Payment is a single tender applied to a receipt
type Payment struct {
	PaymentTypeID string          `json:"payment_type_id"`
	MoneyAmount   decimal.Decimal `json:"money_amount"`
}

// Receipt represents a submitted order as returned by the upstream API
type Receipt struct {
	ID            string          `json:"id,omitempty"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	StoreID       string          `json:"store_id"`
	CustomerID    string          `json:"customer_id,omitempty"`
	LineItems     []LineItem      `json:"line_items"`
	Payments      []Payment       `json:"payments,omitempty"`
	Note          string          `json:"note,omitempty"`
	TotalMoney    decimal.Decimal `json:"total_money"`
	TotalTax      decimal.Decimal `json:"total_tax"`
	TotalDiscount decimal.Decimal `json:"total_discount"`
	Status        OrderStatus     `json:"status,omitempty"`
	CreatedAt     *time.Time      `json:"created_at,omitempty"`
}

// Customer is an upstream customer record
type Customer struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Address     string `json:"address,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	Note        string `json:"note,omitempty"`
}

// Store is a physical store registered upstream
type Store struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Address     string `json:"address,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
}

// InventoryLevel is the stock of one variant in one store
type InventoryLevel struct {
	VariantID string          `json:"variant_id"`
	StoreID   string          `json:"store_id"`
	InStock   decimal.Decimal `json:"in_stock"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty"`
}

// Inventory groups the stock levels returned for an item
type Inventory struct {
	Levels []InventoryLevel `json:"inventory_levels"`
}
