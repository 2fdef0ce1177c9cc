package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/config"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/handlers"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/loyverse"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/menu"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/repository"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/service"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; the process environment still applies
	_ = godotenv.Load()

	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting loyverse ordering proxy",
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"catalog_source", cfg.Catalog.Source,
		"log_level", cfg.LogLevel,
	)

	// Initialize repositories
	catalogRepo, receiptRepo, err := newRepositories(cfg)
	if err != nil {
		log.Error("failed to initialize catalog source", "error", err)
		os.Exit(1)
	}

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo)
	orderService := service.NewOrderService(receiptRepo, cfg.Loyverse.DefaultStoreID)
	aggregator := menu.NewAggregator(catalogService, cfg.Catalog.CategoryTimeout, log)

	// Create router
	r := handlers.NewRouter(handlers.RouterConfig{
		Health:         handlers.NewHealthHandler(cfg.Catalog.Source, log),
		Catalog:        handlers.NewCatalogHandler(catalogService, log),
		Menu:           handlers.NewMenuHandler(aggregator, log),
		Orders:         handlers.NewOrderHandler(orderService, log),
		Auth:           cfg.Auth,
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		RequestTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		Logger:         log,
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// newRepositories selects the catalog backend named by CATALOG_SOURCE
func newRepositories(cfg *config.Config) (repository.CatalogRepository, repository.ReceiptRepository, error) {
	switch cfg.Catalog.Source {
	case config.CatalogSourceMemory:
		store := repository.NewInMemoryStore()
		return store, store, nil
	default:
		client, err := loyverse.New(loyverse.Config{
			BaseURL:  cfg.Loyverse.BaseURL,
			APIToken: cfg.Loyverse.APIToken,
			Timeout:  cfg.Loyverse.Timeout,
		})
		if err != nil {
			return nil, nil, err
		}
		return client, client, nil
	}
}
