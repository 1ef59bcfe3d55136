package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest payload for creating a product.
type CreateProductRequest struct {
	NameEN       string          `json:"name_en"`
	NameDE       string          `json:"name_de"`
	NameTR       string          `json:"name_tr"`
	CategorySlug string          `json:"category_slug,omitempty"`
	BasePrice    decimal.Decimal `json:"base_price"`
	MainImageURL string          `json:"main_image_url,omitempty"`
	Gallery      []string        `json:"gallery,omitempty"`
	Attributes   json.RawMessage `json:"attributes,omitempty"`
}

// UpdateProductRequest partial update.
type UpdateProductRequest struct {
	NameEN       *string          `json:"name_en,omitempty"`
	NameDE       *string          `json:"name_de,omitempty"`
	NameTR       *string          `json:"name_tr,omitempty"`
	CategorySlug *string          `json:"category_slug,omitempty"`
	BasePrice    *decimal.Decimal `json:"base_price,omitempty"`
	Active       *bool            `json:"active,omitempty"`
	MainImageURL *string          `json:"main_image_url,omitempty"`
	Gallery      []string         `json:"gallery,omitempty"`
	Attributes   json.RawMessage  `json:"attributes,omitempty"`
}

// ProductResponse admin/storefront product representation (base price).
type ProductResponse struct {
	ID           string          `json:"id"`
	Slug         string          `json:"slug"`
	NameEN       string          `json:"name_en,omitempty"`
	NameDE       string          `json:"name_de,omitempty"`
	NameTR       string          `json:"name_tr,omitempty"`
	CategoryID   string          `json:"category_id,omitempty"`
	BasePrice    decimal.Decimal `json:"base_price"`
	Active       bool            `json:"active"`
	MainImageURL string          `json:"main_image_url,omitempty"`
	Gallery      []string        `json:"gallery,omitempty"`
	Attributes   json.RawMessage `json:"attributes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse paged product list.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CatalogItemResponse partner-facing product with the personalized price.
// The personalized price is a view-time derivation, never persisted.
type CatalogItemResponse struct {
	ID              string          `json:"id"`
	Slug            string          `json:"slug"`
	Name            string          `json:"name"`
	CategoryID      string          `json:"category_id,omitempty"`
	BasePrice       decimal.Decimal `json:"base_price"`
	YourPrice       decimal.Decimal `json:"your_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	MainImageURL    string          `json:"main_image_url,omitempty"`
	Attributes      json.RawMessage `json:"attributes,omitempty"`
}

// CatalogResponse personalized catalog listing for a partner.
type CatalogResponse struct {
	Items []CatalogItemResponse `json:"items"`
}
