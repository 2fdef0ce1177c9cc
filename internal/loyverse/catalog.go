package loyverse

import (
	"context"
	"net/http"
	"net/url"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
)

// ListCategories returns one page of categories
func (c *Client) ListCategories(ctx context.Context, q models.PageQuery) (models.CategoryPage, error) {
	var page models.CategoryPage
	if err := c.do(ctx, http.MethodGet, "/categories", pageValues(nil, q.Limit, q.Cursor), nil, &page); err != nil {
		return models.CategoryPage{}, err
	}
	return page, nil
}

// GetCategory returns a single category
func (c *Client) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := c.do(ctx, http.MethodGet, "/categories/"+url.PathEscape(id), nil, nil, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// ListItems returns one page of items.
// When q.CategoryID is set, filtering is done upstream via the category_id parameter.
func (c *Client) ListItems(ctx context.Context, q models.ItemQuery) (models.ItemPage, error) {
	values := url.Values{}
	if q.CategoryID != "" {
		values.Set("category_id", q.CategoryID)
	}
	values = pageValues(values, q.Limit, q.Cursor)

	var page models.ItemPage
	if err := c.do(ctx, http.MethodGet, "/items", values, nil, &page); err != nil {
		return models.ItemPage{}, err
	}
	return page, nil
}

// GetItem returns a single item with its variants
func (c *Client) GetItem(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodGet, "/items/"+url.PathEscape(id), nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}
