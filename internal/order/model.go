package order

import "github.com/shopspring/decimal"

type Order struct {
	ID        int
	Login     string
	StoreID   int
	Total     decimal.Decimal
	Timestamp string
	Status    Status
}

// Line is one distinct item in an order.
type Line struct {
	ItemName string
	Quantity int
}

// Cart is the in-memory list of lines accumulated during order placement
// before anything is persisted.
type Cart []Line
