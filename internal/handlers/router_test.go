package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/config"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/menu"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/repository"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/service"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/pkg/logger"
)

func newTestRouter(apiKeys []string) (http.Handler, *repository.InMemoryStore) {
	log := logger.New("error")
	store := repository.NewInMemoryStore()
	catalog := service.NewCatalogService(store)

	return NewRouter(RouterConfig{
		Health:         NewHealthHandler(config.CatalogSourceMemory, log),
		Catalog:        NewCatalogHandler(catalog, log),
		Menu:           NewMenuHandler(menu.NewAggregator(catalog, time.Second, log), log),
		Orders:         NewOrderHandler(service.NewOrderService(store, "store-1"), log),
		Auth:           config.AuthConfig{APIKeys: apiKeys},
		RequestTimeout: 5 * time.Second,
		Logger:         log,
	}), store
}

func TestRouter_Health(t *testing.T) {
	r, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "healthy" || resp.CatalogSource != "memory" {
		t.Errorf("unexpected health response: %+v", resp)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %q", ct)
	}
}

func TestRouter_CatalogRoutes(t *testing.T) {
	r, _ := newTestRouter(nil)

	tests := []struct {
		path           string
		expectedStatus int
	}{
		{"/categories", http.StatusOK},
		{"/products/all", http.StatusOK},
		{"/products/by-category?category_id=salad", http.StatusOK},
		{"/products/by-category", http.StatusBadRequest},
		{"/stores", http.StatusOK},
		{"/menu", http.StatusOK},
		{"/menu/burger", http.StatusOK},
		{"/menu/unknown", http.StatusNotFound},
		{"/api/product", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("GET %s: expected status %d, got %d", tt.path, tt.expectedStatus, w.Code)
			}
		})
	}
}

func TestRouter_OrderAuthentication(t *testing.T) {
	r, store := newTestRouter([]string{"apitest"})

	body := `{"items":[{"product_id":"7","variant_id":"7-regular","quantity":1,"price":15.99}],"total":15.99,"payment_type_id":"cash"}`

	tests := []struct {
		name           string
		apiKey         string
		expectedStatus int
	}{
		{"no key", "", http.StatusUnauthorized},
		{"wrong key", "nope", http.StatusForbidden},
		{"valid key", "apitest", http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.apiKey != "" {
				req.Header.Set("api_key", tt.apiKey)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
		})
	}

	receipts := store.Receipts()
	if len(receipts) != 1 {
		t.Fatalf("expected exactly one stored receipt, got %d", len(receipts))
	}

	req := httptest.NewRequest(http.MethodGet, "/orders/"+receipts[0].ID, nil)
	req.Header.Set("api_key", "apitest")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 fetching order, got %d", w.Code)
	}
}

func TestRouter_CatalogIsPublic(t *testing.T) {
	r, _ := newTestRouter([]string{"apitest"})

	req := httptest.NewRequest(http.MethodGet, "/categories", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected catalog routes without api key, got %d", w.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	r, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodOptions, "/orders", nil)
	req.Header.Set("Origin", "http://localhost:19006")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected Access-Control-Allow-Origin *, got %q", got)
	}
}
