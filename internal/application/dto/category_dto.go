package dto

import "time"

// CreateCategoryRequest payload for creating a category. At least one
// localized name is required; the slug is derived server-side.
type CreateCategoryRequest struct {
	NameEN       string `json:"name_en"`
	NameDE       string `json:"name_de"`
	NameTR       string `json:"name_tr"`
	ParentSlug   string `json:"parent_slug,omitempty"` // empty = root category
	DisplayOrder int    `json:"display_order"`
}

// UpdateCategoryRequest partial update; the slug is immutable here.
type UpdateCategoryRequest struct {
	NameEN       *string `json:"name_en,omitempty"`
	NameDE       *string `json:"name_de,omitempty"`
	NameTR       *string `json:"name_tr,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
}

// CategoryResponse category representation in responses.
type CategoryResponse struct {
	ID           string    `json:"id"`
	Slug         string    `json:"slug"`
	NameEN       string    `json:"name_en,omitempty"`
	NameDE       string    `json:"name_de,omitempty"`
	NameTR       string    `json:"name_tr,omitempty"`
	ParentID     string    `json:"parent_id,omitempty"`
	DisplayOrder int       `json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryTreeNode a root category with its subcategories, display-order sorted.
type CategoryTreeNode struct {
	CategoryResponse
	Children []CategoryResponse `json:"children"`
}

// CategoryTreeResponse full two-level storefront tree.
type CategoryTreeResponse struct {
	Roots []CategoryTreeNode `json:"roots"`
}
