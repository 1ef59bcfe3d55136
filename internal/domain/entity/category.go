package entity

import "time"

// Category is a storefront category. The tree is two levels deep at most:
// a category with a non-empty ParentID is a subcategory and its parent must
// itself be a root category.
type Category struct {
	ID           string
	Slug         string // globally unique, assigned once at creation or backfill
	NameEN       string
	NameDE       string
	NameTR       string
	ParentID     string // empty for root categories
	DisplayOrder int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsRoot reports whether the category sits at the top level of the tree.
func (c *Category) IsRoot() bool {
	return c.ParentID == ""
}

// Name returns the preferred display name: en, then de, then tr.
func (c *Category) Name() string {
	if c.NameEN != "" {
		return c.NameEN
	}
	if c.NameDE != "" {
		return c.NameDE
	}
	return c.NameTR
}
