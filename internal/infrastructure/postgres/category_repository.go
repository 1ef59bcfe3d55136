package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo PostgreSQL implementation of CategoryRepository (usable with pool or tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryCols = `id, slug, name_en, name_de, name_tr, parent_id, display_order, created_at, updated_at`

// Create persists a new category. The slug unique constraint is the
// authoritative guard against concurrent same-name creations.
func (r *CategoryRepo) Create(category *entity.Category) error {
	query := `
		INSERT INTO categories (id, slug, name_en, name_de, name_tr, parent_id, display_order, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		category.ID, category.Slug, category.NameEN, category.NameDE, category.NameTR,
		nullable(category.ParentID), category.DisplayOrder, category.CreatedAt, category.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) scanOne(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	var parentID *string
	err := row.Scan(&c.ID, &c.Slug, &c.NameEN, &c.NameDE, &c.NameTR, &parentID, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	c.ParentID = fromNullable(parentID)
	return &c, nil
}

// GetByID returns one category by ID.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+categoryCols+` FROM categories WHERE id = $1`, id)
	return r.scanOne(row)
}

// GetBySlug returns one category by slug.
func (r *CategoryRepo) GetBySlug(slug string) (*entity.Category, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+categoryCols+` FROM categories WHERE slug = $1`, slug)
	return r.scanOne(row)
}

func (r *CategoryRepo) list(query string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		var c entity.Category
		var parentID *string
		if err := rows.Scan(&c.ID, &c.Slug, &c.NameEN, &c.NameDE, &c.NameTR, &parentID, &c.DisplayOrder, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.ParentID = fromNullable(parentID)
		list = append(list, &c)
	}
	return list, rows.Err()
}

// ListRoots lists top-level categories ordered for display.
func (r *CategoryRepo) ListRoots() ([]*entity.Category, error) {
	return r.list(`SELECT ` + categoryCols + ` FROM categories WHERE parent_id IS NULL ORDER BY display_order, slug`)
}

// ListChildren lists the subcategories of one root.
func (r *CategoryRepo) ListChildren(parentID string) ([]*entity.Category, error) {
	return r.list(`SELECT `+categoryCols+` FROM categories WHERE parent_id = $1 ORDER BY display_order, slug`, parentID)
}

// ListAll lists every category.
func (r *CategoryRepo) ListAll() ([]*entity.Category, error) {
	return r.list(`SELECT ` + categoryCols + ` FROM categories ORDER BY display_order, slug`)
}

// ListUsedSlugs returns every non-blank category slug.
func (r *CategoryRepo) ListUsedSlugs() ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT slug FROM categories WHERE slug IS NOT NULL AND slug <> ''`)
	if err != nil {
		return nil, fmt.Errorf("list used slugs: %w", err)
	}
	defer rows.Close()
	var slugs []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan slug: %w", err)
		}
		slugs = append(slugs, s)
	}
	return slugs, rows.Err()
}

// ListMissingSlug returns categories whose slug is NULL or blank, in
// arbitrary order, for the backfill job.
func (r *CategoryRepo) ListMissingSlug() ([]*entity.Category, error) {
	return r.list(`SELECT ` + categoryCols + ` FROM categories WHERE slug IS NULL OR slug = ''`)
}

// UpdateSlug assigns a slug to one category (backfill only; otherwise immutable).
func (r *CategoryRepo) UpdateSlug(id, slug string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE categories SET slug = $2, updated_at = now() WHERE id = $1`, id, slug)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category slug: %w", err)
	}
	return nil
}

// Update updates names and display order; the slug column is untouched.
func (r *CategoryRepo) Update(category *entity.Category) error {
	_, err := r.q.Exec(context.Background(), `
		UPDATE categories SET name_en = $2, name_de = $3, name_tr = $4, display_order = $5, updated_at = $6
		WHERE id = $1`,
		category.ID, category.NameEN, category.NameDE, category.NameTR, category.DisplayOrder, category.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category by ID.
func (r *CategoryRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// CountProducts counts products still referencing the category.
func (r *CategoryRepo) CountProducts(categoryID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE category_id = $1`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count category products: %w", err)
	}
	return count, nil
}
