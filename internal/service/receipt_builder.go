package service

import "github.com/Lixing-Zhang/loyverse-ordering/backend/internal/models"

// BuildReceiptPayload converts an order into the upstream create-receipt shape.
//
// Lines are copied verbatim; prices and totals are not recomputed here.
// The order total becomes a single payment of req.PaymentTypeID.
// An empty item list is passed through for upstream to reject.
func BuildReceiptPayload(req models.OrderRequest, defaultStoreID string) models.ReceiptPayload {
	storeID := req.StoreID
	if storeID == "" {
		storeID = defaultStoreID
	}

	lineItems := make([]models.LineItem, 0, len(req.Items))
	for _, line := range req.Items {
		lineItems = append(lineItems, models.LineItem{
			ItemID:    line.ProductID,
			VariantID: line.VariantID,
			Quantity:  line.Quantity,
			Price:     line.Price,
			Modifiers: line.Modifiers,
			Note:      line.Note,
		})
	}

	return models.ReceiptPayload{
		StoreID:    storeID,
		CustomerID: req.CustomerID,
		LineItems:  lineItems,
		Note:       req.Note,
		Payments: []models.Payment{
			{PaymentTypeID: req.PaymentTypeID, MoneyAmount: req.Total},
		},
	}
}
