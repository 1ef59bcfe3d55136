package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOrderRequest payload for a partner order. Line prices are computed
// server-side from the caller's firma discount.
type CreateOrderRequest struct {
	Items []RequestItem `json:"items"`
	Note  string        `json:"note,omitempty"`
}

// OrderLineResponse one order line with the personalized unit price snapshot.
type OrderLineResponse struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderResponse order representation.
type OrderResponse struct {
	ID        string              `json:"id"`
	FirmaID   string              `json:"firma_id"`
	Status    string              `json:"status"`
	Note      string              `json:"note,omitempty"`
	Total     decimal.Decimal     `json:"total"`
	Lines     []OrderLineResponse `json:"lines,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// OrderListResponse paged order list.
type OrderListResponse struct {
	Items []OrderResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
