package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/config"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterConfig carries everything NewRouter wires together
type RouterConfig struct {
	Health         *HealthHandler
	Catalog        *CatalogHandler
	Menu           *MenuHandler
	Orders         *OrderHandler
	Auth           config.AuthConfig
	AllowedOrigins []string
	RequestTimeout time.Duration
	Logger         *slog.Logger
}

// NewRouter builds the HTTP routes of the proxy
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "api_key"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", cfg.Health.ServeHTTP)

	// Catalog proxy endpoints
	r.Get("/categories", cfg.Catalog.ListCategories)
	r.Get("/products/all", cfg.Catalog.ListProducts)
	r.Get("/products/by-category", cfg.Catalog.ListProductsByCategory)
	r.Get("/stores", cfg.Catalog.ListStores)

	// Aggregated menu
	r.Get("/menu", cfg.Menu.GetMenu)
	r.Get("/menu/{categoryId}", cfg.Menu.GetCategoryMenu)

	// Orders
	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(cfg.Auth))
		r.Post("/orders", cfg.Orders.CreateOrder)
		r.Get("/orders/{receiptId}", cfg.Orders.GetOrder)
	})

	return r
}
