package repository

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrReceiptNotFound  = errors.New("receipt not found")
	ErrInvalidCursor    = errors.New("invalid cursor")
)

// CatalogRepository defines read access to categories and items.
// *loyverse.Client satisfies it.
type CatalogRepository interface {
	ListCategories(ctx context.Context, q models.PageQuery) (models.CategoryPage, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	ListItems(ctx context.Context, q models.ItemQuery) (models.ItemPage, error)
	ListStores(ctx context.Context, q models.PageQuery) (models.StorePage, error)
}

// ReceiptRepository defines receipt submission and lookup
type ReceiptRepository interface {
	CreateReceipt(ctx context.Context, payload models.ReceiptPayload) (*models.Receipt, error)
	GetReceipt(ctx context.Context, id string) (*models.Receipt, error)
}

// InMemoryStore implements CatalogRepository and ReceiptRepository
// with seeded demo data, for running without upstream credentials
type InMemoryStore struct {
	categories []models.Category
	items      []models.Product
	stores     []models.Store

	mu       sync.RWMutex
	receipts map[string]models.Receipt
	order    []string
}

// NewInMemoryStore creates an in-memory store with seed data
func NewInMemoryStore() *InMemoryStore {
	categories := []models.Category{
		{ID: "waffle", Name: "Waffle", Color: "ORANGE"},
		{ID: "salad", Name: "Salad", Color: "GREEN"},
		{ID: "pizza", Name: "Pizza", Color: "RED"},
		{ID: "burger", Name: "Burger", Color: "BROWN"},
	}

	items := []models.Product{
		seedItem("1", "Chicken Waffle", "waffle", "12.99"),
		seedItem("2", "Belgian Waffle", "waffle", "10.99"),
		seedItem("3", "Chocolate Waffle", "waffle", "11.99"),
		seedItem("4", "Caesar Salad", "salad", "8.99"),
		seedItem("5", "Greek Salad", "salad", "9.49"),
		seedItem("6", "Garden Salad", "salad", "7.99"),
		seedItem("7", "Margherita Pizza", "pizza", "14.99"),
		seedItem("8", "Pepperoni Pizza", "pizza", "16.99"),
		seedItem("9", "Veggie Pizza", "pizza", "15.49"),
		seedItem("10", "Classic Burger", "burger", "13.99"),
	}

	return NewInMemoryStoreWith(categories, items, []models.Store{{ID: "store-1", Name: "Main Store"}})
}

// NewInMemoryStoreWith creates an in-memory store holding exactly the given data
func NewInMemoryStoreWith(categories []models.Category, items []models.Product, stores []models.Store) *InMemoryStore {
	return &InMemoryStore{
		categories: categories,
		items:      items,
		stores:     stores,
		receipts:   make(map[string]models.Receipt),
	}
}

func seedItem(id, name, categoryID, price string) models.Product {
	return models.Product{
		ID:         id,
		Name:       name,
		CategoryID: categoryID,
		Variants: []models.Variant{
			{ID: id + "-regular", ItemID: id, Option1Value: "Regular", DefaultPrice: decimal.RequireFromString(price)},
		},
	}
}

// ListCategories pages through categories in seed order
func (s *InMemoryStore) ListCategories(ctx context.Context, q models.PageQuery) (models.CategoryPage, error) {
	categories, cursor, err := pageOf(s.categories, q)
	if err != nil {
		return models.CategoryPage{}, err
	}
	return models.CategoryPage{Categories: categories, Cursor: cursor}, nil
}

// GetCategory returns a category by its ID
func (s *InMemoryStore) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	for _, c := range s.categories {
		if c.ID == id {
			category := c
			return &category, nil
		}
	}
	return nil, ErrCategoryNotFound
}

// ListItems pages through items in seed order
func (s *InMemoryStore) ListItems(ctx context.Context, q models.ItemQuery) (models.ItemPage, error) {
	matched := make([]models.Product, 0, len(s.items))
	for _, item := range s.items {
		if q.CategoryID == "" || item.CategoryID == q.CategoryID {
			matched = append(matched, item)
		}
	}

	items, cursor, err := pageOf(matched, q.PageQuery)
	if err != nil {
		return models.ItemPage{}, err
	}
	return models.ItemPage{Items: items, Cursor: cursor}, nil
}

// ListStores pages through the seeded stores
func (s *InMemoryStore) ListStores(ctx context.Context, q models.PageQuery) (models.StorePage, error) {
	stores, cursor, err := pageOf(s.stores, q)
	if err != nil {
		return models.StorePage{}, err
	}
	return models.StorePage{Stores: stores, Cursor: cursor}, nil
}

// pageOf returns a copy of one page of all.
// The cursor is the offset of the next element and is empty on the last page.
func pageOf[T any](all []T, q models.PageQuery) ([]T, string, error) {
	offset := 0
	if q.Cursor != "" {
		n, err := strconv.Atoi(q.Cursor)
		if err != nil || n < 0 {
			return nil, "", ErrInvalidCursor
		}
		offset = n
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 100
	}

	if offset >= len(all) {
		return []T{}, "", nil
	}

	end := offset + limit
	cursor := ""
	if end < len(all) {
		cursor = strconv.Itoa(end)
	} else {
		end = len(all)
	}
	return append([]T{}, all[offset:end]...), cursor, nil
}

// CreateReceipt stores a receipt and computes its total from the line items
func (s *InMemoryStore) CreateReceipt(ctx context.Context, payload models.ReceiptPayload) (*models.Receipt, error) {
	total := decimal.Zero
	for _, line := range payload.LineItems {
		total = total.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	now := time.Now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	receipt := models.Receipt{
		ID:            uuid.New().String(),
		ReceiptNumber: "1-" + strconv.Itoa(1001+len(s.order)),
		StoreID:       payload.StoreID,
		CustomerID:    payload.CustomerID,
		LineItems:     payload.LineItems,
		Payments:      payload.Payments,
		Note:          payload.Note,
		TotalMoney:    total,
		Status:        models.OrderCompleted,
		CreatedAt:     &now,
	}
	s.receipts[receipt.ID] = receipt
	s.order = append(s.order, receipt.ID)

	return &receipt, nil
}

// GetReceipt returns a stored receipt by its ID
func (s *InMemoryStore) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	receipt, exists := s.receipts[id]
	if !exists {
		return nil, ErrReceiptNotFound
	}
	return &receipt, nil
}

// Receipts returns stored receipts in submission order
func (s *InMemoryStore) Receipts() []models.Receipt {
	s.mu.RLock()
	defer s.mu.RUnlock()

	receipts := make([]models.Receipt, 0, len(s.order))
	for _, id := range s.order {
		receipts = append(receipts, s.receipts[id])
	}
	return receipts
}
