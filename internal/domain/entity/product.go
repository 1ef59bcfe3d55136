package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog item. BasePrice is the shared list price; the price a
// partner sees is always derived at read time from their firma's discount and
// never written back onto the row.
type Product struct {
	ID           string
	Slug         string
	NameEN       string
	NameDE       string
	NameTR       string
	CategoryID   string // empty when unassigned; public visibility policy expects it set
	BasePrice    decimal.Decimal
	Active       bool
	MainImageURL string
	Gallery      []string
	Attributes   json.RawMessage // technical attributes (weight, shelf life, packaging...)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Visible reports whether the product is eligible for public display:
// active, with a main image, and assigned to a category.
func (p *Product) Visible() bool {
	return p.Active && p.MainImageURL != "" && p.CategoryID != ""
}

// Name returns the preferred display name: en, then de, then tr.
func (p *Product) Name() string {
	if p.NameEN != "" {
		return p.NameEN
	}
	if p.NameDE != "" {
		return p.NameDE
	}
	return p.NameTR
}
