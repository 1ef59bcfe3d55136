package repository

import "github.com/lokumhouse/sweets-api/internal/domain/entity"

// ProductRepository defines the persistence port for Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySlug(slug string) (*entity.Product, error)
	Update(product *entity.Product) error
	SetActive(id string, active bool) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Product, error)
	// ListPublicByCategory returns products eligible for the storefront:
	// active, with a main image, assigned to the category.
	ListPublicByCategory(categoryID string) ([]*entity.Product, error)
	// ListPublic returns every storefront-eligible product, for the sitemap.
	ListPublic() ([]*entity.Product, error)
	ListByCategory(categoryID string) ([]*entity.Product, error)
	ListUsedSlugs() ([]string, error)

	// Visibility sweep support. The OR-of-two-predicates update is split into
	// a NULL branch and an empty-string branch so each reports independently.
	CountMissingImage() (nullCount, emptyCount int, err error)
	DeactivateMissingImageNull() (int64, error)
	DeactivateMissingImageEmpty() (int64, error)

	// ReassignCategory moves every product from one category to another and
	// returns the number of rows moved.
	ReassignCategory(fromCategoryID, toCategoryID string) (int64, error)
}
