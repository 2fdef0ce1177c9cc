// Package menu assembles the catalog into a category-grouped menu.
package menu

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
)

// Source provides the catalog reads the aggregator needs.
// Both the catalog service and the proxy HTTP client implement it.
type Source interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
	GetCategory(ctx context.Context, id string) (*models.Category, error)
	ListProductsByCategory(ctx context.Context, categoryID string) ([]models.Product, error)
}

// Failure records a category whose products could not be loaded
type Failure struct {
	CategoryID string
	Err        error
}

// Menu maps each category to its products.
// Products has exactly one key per entry in Categories.
type Menu struct {
	Categories []models.Category
	Products   map[string][]models.Product
	Failures   []Failure
}

// Aggregator builds menus one category at a time, in category order
type Aggregator struct {
	source          Source
	categoryTimeout time.Duration
	logger          *slog.Logger
}

// NewAggregator creates an aggregator.
// A categoryTimeout of zero leaves per-category fetches bounded only by the caller's context.
func NewAggregator(source Source, categoryTimeout time.Duration, logger *slog.Logger) *Aggregator {
	return &Aggregator{
		source:          source,
		categoryTimeout: categoryTimeout,
		logger:          logger,
	}
}

// Build loads every category and its products.
// Only a failure to list categories is returned; a failed category maps to an empty list
// and is recorded in Menu.Failures.
func (a *Aggregator) Build(ctx context.Context) (*Menu, error) {
	categories, err := a.source.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return a.assemble(ctx, categories), nil
}

// BuildCategory loads a single category and its products
func (a *Aggregator) BuildCategory(ctx context.Context, categoryID string) (*Menu, error) {
	category, err := a.source.GetCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("get category %s: %w", categoryID, err)
	}
	return a.assemble(ctx, []models.Category{*category}), nil
}

func (a *Aggregator) assemble(ctx context.Context, categories []models.Category) *Menu {
	m := &Menu{
		Categories: make([]models.Category, 0, len(categories)),
		Products:   make(map[string][]models.Product, len(categories)),
	}

	for _, category := range categories {
		if _, dup := m.Products[category.ID]; dup {
			a.logger.Warn("skipping repeated category", "category_id", category.ID)
			continue
		}
		m.Categories = append(m.Categories, category)

		products, err := a.fetch(ctx, category.ID)
		if err != nil {
			a.logger.Warn("failed to load category products",
				"category_id", category.ID,
				"error", err,
			)
			m.Failures = append(m.Failures, Failure{CategoryID: category.ID, Err: err})
			products = []models.Product{}
		}
		if products == nil {
			products = []models.Product{}
		}
		m.Products[category.ID] = products
	}

	if len(m.Failures) > 0 {
		a.logger.Info("menu built with failures",
			"categories", len(m.Categories),
			"failed", len(m.Failures),
		)
	}

	return m
}

func (a *Aggregator) fetch(ctx context.Context, categoryID string) ([]models.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.categoryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.categoryTimeout)
		defer cancel()
	}
	return a.source.ListProductsByCategory(ctx, categoryID)
}
