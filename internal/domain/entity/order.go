package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a partner order. Line unit prices are the personalized price at
// creation time, rounded to the currency's minor unit; the product row's
// base price is never overwritten.
type Order struct {
	ID        string
	FirmaID   string
	Status    string // see workflow.OrderStatuses
	Note      string // audit trail; reasons are appended, never overwritten
	Total     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OrderLine is one ordered product with its personalized unit price snapshot.
type OrderLine struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal // personalized, rounded half away from zero to 2 decimals
	LineTotal decimal.Decimal
}
