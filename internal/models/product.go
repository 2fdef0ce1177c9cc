package models

import "github.com/shopspring/decimal"

func init() {
	// Loyverse sends and expects prices as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Category is a named grouping of products in the catalog
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Product represents a sellable catalog item.
// Field names follow the Loyverse items resource.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"item_name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CategoryID  string    `json:"category_id,omitempty"`
	TrackStock  bool      `json:"track_stock"`
	Variants    []Variant `json:"variants,omitempty"`
}

// Variant is a specific sellable configuration of a product with its own price
type Variant struct {
	ID           string           `json:"variant_id"`
	ItemID       string           `json:"item_id"`
	Option1Value string           `json:"option1_value,omitempty"`
	Option2Value string           `json:"option2_value,omitempty"`
	Option3Value string           `json:"option3_value,omitempty"`
	DefaultPrice decimal.Decimal  `json:"default_price"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	Stores       []VariantStore   `json:"stores,omitempty"`
}

// VariantStore carries per-store pricing and availability overrides
type VariantStore struct {
	StoreID          string           `json:"store_id"`
	PricingType      string           `json:"pricing_type,omitempty"`
	Price            *decimal.Decimal `json:"price,omitempty"`
	AvailableForSale bool             `json:"available_for_sale"`
}

// Label joins the non-empty option values, e.g. "Large / Iced"
func (v Variant) Label() string {
	label := ""
	for _, opt := range []string{v.Option1Value, v.Option2Value, v.Option3Value} {
		if opt == "" {
			continue
		}
		if label != "" {
			label += " / "
		}
		label += opt
	}
	return label
}

// PriceAt returns the variant price in a store, falling back to the default price
// when the store has no override
func (v Variant) PriceAt(storeID string) decimal.Decimal {
	for _, s := range v.Stores {
		if s.StoreID == storeID && s.Price != nil {
			return *s.Price
		}
	}
	return v.DefaultPrice
}
