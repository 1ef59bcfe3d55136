package repository

import "github.com/lokumhouse/sweets-api/internal/domain/entity"

// CategoryRepository defines the persistence port for Category (DIP).
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetBySlug(slug string) (*entity.Category, error)
	ListRoots() ([]*entity.Category, error)
	ListChildren(parentID string) ([]*entity.Category, error)
	ListAll() ([]*entity.Category, error)
	// ListUsedSlugs returns every non-blank slug, for seeding a slug.Assigner.
	ListUsedSlugs() ([]string, error)
	// ListMissingSlug returns categories whose slug is NULL or blank.
	ListMissingSlug() ([]*entity.Category, error)
	UpdateSlug(id, slug string) error
	Update(category *entity.Category) error
	Delete(id string) error
	// CountProducts counts products still referencing the category.
	CountProducts(categoryID string) (int, error)
}
