package models

// PageQuery selects one page of a cursor-paginated list.
// An empty Cursor requests the first page.
type PageQuery struct {
	Limit  int
	Cursor string
}

// ItemQuery selects a page of items, optionally filtered by category
type ItemQuery struct {
	PageQuery
	CategoryID string
}

// ItemPage is one page of items plus the cursor for the next page.
// Cursor is empty on the last page.
type ItemPage struct {
	Items  []Product `json:"items"`
	Cursor string    `json:"cursor,omitempty"`
}

// CategoryPage is one page of categories
type CategoryPage struct {
	Categories []Category `json:"categories"`
	Cursor     string     `json:"cursor,omitempty"`
}

// StorePage is one page of stores
type StorePage struct {
	Stores []Store `json:"stores"`
	Cursor string  `json:"cursor,omitempty"`
}

// CustomerPage is one page of customers
type CustomerPage struct {
	Customers []Customer `json:"customers"`
	Cursor    string     `json:"cursor,omitempty"`
}

// ReceiptPage is one page of receipts
type ReceiptPage struct {
	Receipts []Receipt `json:"receipts"`
	Cursor   string    `json:"cursor,omitempty"`
}
