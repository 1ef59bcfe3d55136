package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateFirmaRequest payload for creating a business account.
type CreateFirmaRequest struct {
	Name            string          `json:"name"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Tags            []string        `json:"tags,omitempty"`
	PriorityTier    string          `json:"priority_tier"`
}

// UpdateFirmaRequest partial update.
type UpdateFirmaRequest struct {
	Name            *string          `json:"name,omitempty"`
	OwnerProfileID  *string          `json:"owner_profile_id,omitempty"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	Tags            []string         `json:"tags,omitempty"`
	PriorityTier    *string          `json:"priority_tier,omitempty"`
}

// FirmaResponse account representation in responses.
type FirmaResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	OwnerProfileID  string          `json:"owner_profile_id,omitempty"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Tags            []string        `json:"tags,omitempty"`
	PriorityTier    string          `json:"priority_tier"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// FirmaListResponse paged account list.
type FirmaListResponse struct {
	Items []FirmaResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
