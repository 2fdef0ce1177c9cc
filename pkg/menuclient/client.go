// Package menuclient is a Go client for the ordering proxy's HTTP endpoints.
// It implements menu.Source so menus can be assembled on the client side.
package menuclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrRequest  = errors.New("proxy request failed")
	ErrNotFound = errors.New("not found")
)

// Client talks to a running proxy
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// Option configures a Client
type Option func(*Client)

// WithAPIKey sets the key sent in the api_key header on order calls
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for the proxy at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if _, err := url.ParseRequestURI(baseURL); err != nil || baseURL == "" {
		return nil, fmt.Errorf("invalid proxy URL %q", baseURL)
	}

	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// APIError is a non-2xx answer from the proxy
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: status=%d: %s", ErrRequest, e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	if target == ErrRequest {
		return true
	}
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// ListCategories calls GET /categories
func (c *Client) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := c.do(ctx, http.MethodGet, "/categories", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory finds a category by ID among the listed categories.
// The proxy has no single-category endpoint.
func (c *Client) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	categories, err := c.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		if category.ID == id {
			return &category, nil
		}
	}
	return nil, fmt.Errorf("category %s: %w", id, ErrNotFound)
}

// ListProducts calls GET /products/all
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/products/all", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListProductsByCategory calls GET /products/by-category
func (c *Client) ListProductsByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	var products []models.Product
	q := url.Values{"category_id": {categoryID}}
	if err := c.do(ctx, http.MethodGet, "/products/by-category", q, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListStores calls GET /stores
func (c *Client) ListStores(ctx context.Context) ([]models.Store, error) {
	var stores []models.Store
	if err := c.do(ctx, http.MethodGet, "/stores", nil, nil, &stores); err != nil {
		return nil, err
	}
	return stores, nil
}

// SubmitOrder calls POST /orders
func (c *Client) SubmitOrder(ctx context.Context, req models.OrderRequest) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := c.do(ctx, http.MethodPost, "/orders", nil, req, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// GetOrder calls GET /orders/{receiptId}
func (c *Client) GetOrder(ctx context.Context, id string) (*models.Receipt, error) {
	var receipt models.Receipt
	if err := c.do(ctx, http.MethodGet, "/orders/"+url.PathEscape(id), nil, nil, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrRequest, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("api_key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRequest, method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s response: %v", ErrRequest, path, err)
	}
	return nil
}

// decodeError reads {"error": "..."} bodies, falling back to the raw text
// written by middleware such as the API key check
func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))

	var body struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if err := json.Unmarshal(raw, &body); err == nil && body.Error != "" {
		msg = body.Error
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}
