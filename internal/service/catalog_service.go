package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/repository"
)

// pageSize is the upstream maximum, to keep the number of round trips low
const pageSize = 250

var ErrCursorLoop = errors.New("upstream returned a repeated cursor")

// CatalogService handles read access to the catalog.
// It walks cursor pagination so callers always get complete lists.
type CatalogService struct {
	repo   repository.CatalogRepository
	logger *slog.Logger
}

// NewCatalogService creates a new catalog service logging through slog.Default
func NewCatalogService(repo repository.CatalogRepository) *CatalogService {
	return &CatalogService{
		repo:   repo,
		logger: slog.Default(),
	}
}

// ListCategories returns all categories across all pages, in upstream order
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return walk(ctx, func(ctx context.Context, cursor string) ([]models.Category, string, error) {
		page, err := s.repo.ListCategories(ctx, models.PageQuery{Limit: pageSize, Cursor: cursor})
		return page.Categories, page.Cursor, err
	})
}

// GetCategory returns a category by ID
func (s *CatalogService) GetCategory(ctx context.Context, id string) (*models.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

// ListProducts returns every product across all pages
func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.listItems(ctx, "")
}

// ListProductsByCategory returns every product of one category.
// Filtering happens upstream through the category_id parameter; items that
// come back with another category are dropped.
func (s *CatalogService) ListProductsByCategory(ctx context.Context, categoryID string) ([]models.Product, error) {
	products, err := s.listItems(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	kept := products[:0]
	dropped := 0
	for _, p := range products {
		if p.CategoryID != categoryID {
			dropped++
			continue
		}
		kept = append(kept, p)
	}
	if dropped > 0 {
		s.logger.Warn("upstream returned items outside the requested category",
			"category_id", categoryID,
			"dropped", dropped,
		)
	}
	return kept, nil
}

// ListStores returns all stores across all pages
func (s *CatalogService) ListStores(ctx context.Context) ([]models.Store, error) {
	return walk(ctx, func(ctx context.Context, cursor string) ([]models.Store, string, error) {
		page, err := s.repo.ListStores(ctx, models.PageQuery{Limit: pageSize, Cursor: cursor})
		return page.Stores, page.Cursor, err
	})
}

func (s *CatalogService) listItems(ctx context.Context, categoryID string) ([]models.Product, error) {
	return walk(ctx, func(ctx context.Context, cursor string) ([]models.Product, string, error) {
		page, err := s.repo.ListItems(ctx, models.ItemQuery{
			PageQuery:  models.PageQuery{Limit: pageSize, Cursor: cursor},
			CategoryID: categoryID,
		})
		return page.Items, page.Cursor, err
	})
}

// walk follows cursors until a page comes back without one.
// The result is never nil on success.
func walk[T any](ctx context.Context, fetch func(ctx context.Context, cursor string) ([]T, string, error)) ([]T, error) {
	all := []T{}
	seen := make(map[string]bool)
	cursor := ""

	for {
		items, next, err := fetch(ctx, cursor)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)

		if next == "" {
			return all, nil
		}
		if seen[next] {
			return nil, fmt.Errorf("%w: %q", ErrCursorLoop, next)
		}
		seen[next] = true
		cursor = next
	}
}
