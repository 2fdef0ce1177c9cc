package loyverse

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
)

// CreateCustomer registers a new customer upstream
func (c *Client) CreateCustomer(ctx context.Context, customer models.Customer) (*models.Customer, error) {
	var created models.Customer
	if err := c.do(ctx, http.MethodPost, "/customers", nil, customer, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetCustomer returns a customer by id
func (c *Client) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var customer models.Customer
	if err := c.do(ctx, http.MethodGet, "/customers/"+url.PathEscape(id), nil, nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}

// SearchCustomers returns one page of customers matching a free-text query
func (c *Client) SearchCustomers(ctx context.Context, query string, q models.PageQuery) (models.CustomerPage, error) {
	values := pageValues(url.Values{"query": {query}}, q.Limit, q.Cursor)

	var page models.CustomerPage
	if err := c.do(ctx, http.MethodGet, "/customers", values, nil, &page); err != nil {
		return models.CustomerPage{}, err
	}
	return page, nil
}

// CreateReceipt submits a receipt payload
func (c *Client) CreateReceipt(ctx context.Context, payload models.ReceiptPayload) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := c.do(ctx, http.MethodPost, "/receipts", nil, payload, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// GetReceipt returns a receipt by id
func (c *Client) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := c.do(ctx, http.MethodGet, "/receipts/"+url.PathEscape(id), nil, nil, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// ListReceipts returns one page of receipts, newest first as upstream orders them
func (c *Client) ListReceipts(ctx context.Context, q models.PageQuery) (models.ReceiptPage, error) {
	if q.Limit <= 0 {
		q.Limit = 50
	}
	var page models.ReceiptPage
	if err := c.do(ctx, http.MethodGet, "/receipts", pageValues(nil, q.Limit, q.Cursor), nil, &page); err != nil {
		return models.ReceiptPage{}, err
	}
	return page, nil
}

// GetInventory returns stock levels for an item, optionally for one store
func (c *Client) GetInventory(ctx context.Context, itemID, storeID string) (*models.Inventory, error) {
	var values url.Values
	if storeID != "" {
		values = url.Values{"store_id": {storeID}}
	}
	var inv models.Inventory
	if err := c.do(ctx, http.MethodGet, "/inventory/"+url.PathEscape(itemID), values, nil, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// ListStores returns one page of the account's stores
func (c *Client) ListStores(ctx context.Context, q models.PageQuery) (models.StorePage, error) {
	var page models.StorePage
	if err := c.do(ctx, http.MethodGet, "/stores", pageValues(nil, q.Limit, q.Cursor), nil, &page); err != nil {
		return models.StorePage{}, err
	}
	return page, nil
}
