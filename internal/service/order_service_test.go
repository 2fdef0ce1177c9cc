package service

import (
	"context"
	"reflect"
	"testing"

	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"
	"github.com/Lixing-Zhang/loyverse-ordering/backend/internal/repository"
	"github.com/shopspring/decimal"
)

func TestBuildReceiptPayload(t *testing.T) {
	items := []models.CartLine{
		{ProductID: "p1", VariantID: "v1", Quantity: 2, Price: decimal.RequireFromString("3.50"), Modifiers: []string{"m1"}, Note: "no sugar"},
		{ProductID: "p2", Quantity: 1, Price: decimal.RequireFromString("10")},
		{ProductID: "p3", VariantID: "v3", Quantity: 5, Price: decimal.RequireFromString("0.99")},
	}

	tests := []struct {
		name      string
		req       models.OrderRequest
		wantStore string
	}{
		{
			name: "explicit store",
			req: models.OrderRequest{
				StoreID: "s1", CustomerID: "c1", Items: items, Note: "table 4",
				Total: decimal.RequireFromString("21.95"), PaymentTypeID: "cash",
			},
			wantStore: "s1",
		},
		{
			name: "default store",
			req: models.OrderRequest{
				Items: items, Total: decimal.RequireFromString("21.95"), PaymentTypeID: "card",
			},
			wantStore: "default-store",
		},
		{
			name: "empty items pass through",
			req: models.OrderRequest{
				Items: nil, Total: decimal.Zero, PaymentTypeID: "cash",
			},
			wantStore: "default-store",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := BuildReceiptPayload(tt.req, "default-store")

			if payload.StoreID != tt.wantStore {
				t.Errorf("store = %q, want %q", payload.StoreID, tt.wantStore)
			}
			if payload.CustomerID != tt.req.CustomerID {
				t.Errorf("customer = %q, want %q", payload.CustomerID, tt.req.CustomerID)
			}
			if payload.Note != tt.req.Note {
				t.Errorf("note = %q, want %q", payload.Note, tt.req.Note)
			}

			if len(payload.LineItems) != len(tt.req.Items) {
				t.Fatalf("expected %d line items, got %d", len(tt.req.Items), len(payload.LineItems))
			}
			for i, line := range tt.req.Items {
				got := payload.LineItems[i]
				want := models.LineItem{
					ItemID:    line.ProductID,
					VariantID: line.VariantID,
					Quantity:  line.Quantity,
					Price:     line.Price,
					Modifiers: line.Modifiers,
					Note:      line.Note,
				}
				if !reflect.DeepEqual(got, want) {
					t.Errorf("line %d = %+v, want %+v", i, got, want)
				}
			}

			if len(payload.Payments) != 1 {
				t.Fatalf("expected exactly one payment, got %d", len(payload.Payments))
			}
			if !payload.Payments[0].MoneyAmount.Equal(tt.req.Total) {
				t.Errorf("payment amount = %s, want %s", payload.Payments[0].MoneyAmount, tt.req.Total)
			}
			if payload.Payments[0].PaymentTypeID != tt.req.PaymentTypeID {
				t.Errorf("payment type = %q, want %q", payload.Payments[0].PaymentTypeID, tt.req.PaymentTypeID)
			}
		})
	}
}

type recordingReceipts struct {
	calls   int
	payload models.ReceiptPayload
}

func (r *recordingReceipts) CreateReceipt(ctx context.Context, payload models.ReceiptPayload) (*models.Receipt, error) {
	r.calls++
	r.payload = payload
	return &models.Receipt{ID: "r1", StoreID: payload.StoreID, LineItems: payload.LineItems}, nil
}

func (r *recordingReceipts) GetReceipt(ctx context.Context, id string) (*models.Receipt, error) {
	return nil, repository.ErrReceiptNotFound
}

func TestOrderService_CreateOrder(t *testing.T) {
	tests := []struct {
		name      string
		req       models.OrderRequest
		wantErr   error
		wantCalls int
	}{
		{
			name: "valid order",
			req: models.OrderRequest{
				Items:         []models.CartLine{{ProductID: "1", Quantity: 2, Price: decimal.RequireFromString("12.99")}},
				Total:         decimal.RequireFromString("25.98"),
				PaymentTypeID: "cash",
			},
			wantCalls: 1,
		},
		{
			name: "missing payment type",
			req: models.OrderRequest{
				Items: []models.CartLine{{ProductID: "1", Quantity: 1}},
			},
			wantErr:   ErrMissingPaymentType,
			wantCalls: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receipts := &recordingReceipts{}
			svc := NewOrderService(receipts, "store-1")

			receipt, err := svc.CreateOrder(context.Background(), tt.req)
			if err != tt.wantErr {
				t.Fatalf("CreateOrder() error = %v, wantErr %v", err, tt.wantErr)
			}
			if receipts.calls != tt.wantCalls {
				t.Errorf("upstream calls = %d, want %d", receipts.calls, tt.wantCalls)
			}
			if tt.wantErr != nil {
				return
			}

			if receipt.ID == "" {
				t.Error("receipt ID is empty")
			}
			if receipts.payload.StoreID != "store-1" {
				t.Errorf("store = %q, want store-1", receipts.payload.StoreID)
			}
		})
	}
}

func TestOrderService_InMemoryRoundTrip(t *testing.T) {
	store := repository.NewInMemoryStore()
	svc := NewOrderService(store, "store-1")
	ctx := context.Background()

	created, err := svc.CreateOrder(ctx, models.OrderRequest{
		Items:         []models.CartLine{{ProductID: "7", VariantID: "7-regular", Quantity: 1, Price: decimal.RequireFromString("14.99")}},
		Total:         decimal.RequireFromString("14.99"),
		PaymentTypeID: "cash",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fetched, err := svc.GetOrder(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.StoreID != "store-1" {
		t.Errorf("store = %q, want store-1", fetched.StoreID)
	}
	if len(fetched.LineItems) != 1 || fetched.LineItems[0].ItemID != "7" {
		t.Errorf("unexpected line items: %+v", fetched.LineItems)
	}
}
