package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/config"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/handlers"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/menu"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/repository"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/service"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/pkg/logger"
	"github.com/shopspring/decimal"
)

func newProxy(t *testing.T) (*httptest.Server, *repository.InMemoryStore) {
	t.Helper()

	log := logger.New("error")
	store := repository.NewInMemoryStore()
	catalog := service.NewCatalogService(store)

	srv := httptest.NewServer(handlers.NewRouter(handlers.RouterConfig{
		Health:  handlers.NewHealthHandler(config.CatalogSourceMemory, log),
		Catalog: handlers.NewCatalogHandler(catalog, log),
		Menu:    handlers.NewMenuHandler(menu.NewAggregator(catalog, time.Second, log), log),
		Orders:  handlers.NewOrderHandler(service.NewOrderService(store, "store-1"), log),
		Auth:    config.AuthConfig{APIKeys: []string{"apitest"}},
		Logger:  log,
	}))
	t.Cleanup(srv.Close)

	return srv, store
}

func TestParseCartItems(t *testing.T) {
	tests := []struct {
		raw      string
		expected []cartItem
		wantErr  bool
	}{
		{"", nil, false},
		{"1-regular", []cartItem{{"1-regular", 1}}, false},
		{"1-regular:3, 4-regular", []cartItem{{"1-regular", 3}, {"4-regular", 1}}, false},
		{"a:2,,b:1,", []cartItem{{"a", 2}, {"b", 1}}, false},
		{"a:0", nil, true},
		{"a:x", nil, true},
		{":2", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := parseCartItems(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseCartItems(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseCartItems(%q) = %v, want %v", tt.raw, got, tt.expected)
			}
		})
	}
}

func TestRun_PrintsGroupedMenu(t *testing.T) {
	srv, _ := newProxy(t)

	var out bytes.Buffer
	if err := run(context.Background(), []string{"-api", srv.URL}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	for _, want := range []string{"Waffle\n", "Salad\n", "Pizza\n", "Burger\n", "Classic Burger", "13.99", "[10-regular]"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if strings.Index(text, "Waffle\n") > strings.Index(text, "Burger\n") {
		t.Error("categories should print in upstream order")
	}
}

func TestRun_Search(t *testing.T) {
	srv, _ := newProxy(t)

	var out bytes.Buffer
	if err := run(context.Background(), []string{"-api", srv.URL, "-search", "PIZZA"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	text := out.String()
	if !strings.Contains(text, "Veggie Pizza") {
		t.Errorf("expected pizzas in output:\n%s", text)
	}
	if strings.Contains(text, "Waffle") || strings.Contains(text, "Salad") {
		t.Errorf("non-matching categories should be omitted:\n%s", text)
	}
}

func TestRun_SubmitOrder(t *testing.T) {
	srv, store := newProxy(t)

	var out bytes.Buffer
	args := []string{"-api", srv.URL, "-api-key", "apitest", "-category", "pizza", "-add", "7-regular:2,9-regular", "-payment-type", "cash"}
	if err := run(context.Background(), args, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	if !strings.Contains(out.String(), "Order placed") {
		t.Errorf("expected confirmation in output:\n%s", out.String())
	}

	receipts := store.Receipts()
	if len(receipts) != 1 {
		t.Fatalf("expected 1 receipt, got %d", len(receipts))
	}
	r := receipts[0]
	if len(r.LineItems) != 2 || r.LineItems[0].Quantity != 2 || r.LineItems[1].VariantID != "9-regular" {
		t.Errorf("unexpected line items: %+v", r.LineItems)
	}
	if len(r.Payments) != 1 || r.Payments[0].PaymentTypeID != "cash" {
		t.Errorf("unexpected payments: %+v", r.Payments)
	}
	if r.TotalMoney.StringFixed(2) != "45.47" {
		t.Errorf("total = %s, want 45.47", r.TotalMoney.StringFixed(2))
	}
}

func TestRun_Errors(t *testing.T) {
	srv, store := newProxy(t)

	tests := []struct {
		name string
		args []string
	}{
		{"missing payment type", []string{"-api", srv.URL, "-add", "1-regular"}},
		{"unknown variant", []string{"-api", srv.URL, "-api-key", "apitest", "-add", "nope", "-payment-type", "cash"}},
		{"rejected api key", []string{"-api", srv.URL, "-api-key", "wrong", "-add", "1-regular", "-payment-type", "cash"}},
		{"unknown category", []string{"-api", srv.URL, "-category", "sushi"}},
		{"bad flag", []string{"-bogus"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := run(context.Background(), tt.args, &out); err == nil {
				t.Error("expected an error")
			}
		})
	}

	if len(store.Receipts()) != 0 {
		t.Errorf("no order should have been stored, got %d", len(store.Receipts()))
	}
}

func TestPrintMenu_StorePrice(t *testing.T) {
	override := decimal.RequireFromString("3.25")
	m := &menu.Menu{
		Categories: []models.Category{{ID: "A", Name: "Drinks"}},
		Products: map[string][]models.Product{
			"A": {{
				ID:   "p1",
				Name: "Latte",
				Variants: []models.Variant{{
					ID:           "v1",
					DefaultPrice: decimal.RequireFromString("4.00"),
					Stores:       []models.VariantStore{{StoreID: "store-2", Price: &override}},
				}},
			}},
		},
	}

	tests := []struct {
		storeID string
		want    string
	}{
		{"store-2", "3.25"},
		{"store-1", "4.00"},
		{"", "4.00"},
	}

	for _, tt := range tests {
		t.Run(tt.storeID, func(t *testing.T) {
			var out bytes.Buffer
			printMenu(&out, m, tt.storeID)

			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("expected price %s in output:\n%s", tt.want, out.String())
			}
		})
	}
}
