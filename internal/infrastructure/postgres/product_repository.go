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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo PostgreSQL implementation of ProductRepository (usable with pool or tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productCols = `id, slug, name_en, name_de, name_tr, category_id, base_price, active, main_image_url, gallery, attributes, created_at, updated_at`

// visibleWhere is the read-side of the visibility invariant: active, image
// present, category assigned.
const visibleWhere = `active = true AND main_image_url IS NOT NULL AND main_image_url <> '' AND category_id IS NOT NULL`

// Create persists a new product.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (id, slug, name_en, name_de, name_tr, category_id, base_price, active, main_image_url, gallery, attributes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Slug, product.NameEN, product.NameDE, product.NameTR,
		nullable(product.CategoryID), product.BasePrice, product.Active,
		nullable(product.MainImageURL), product.Gallery, product.Attributes,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var categoryID, mainImage *string
	err := row.Scan(&p.ID, &p.Slug, &p.NameEN, &p.NameDE, &p.NameTR, &categoryID,
		&p.BasePrice, &p.Active, &mainImage, &p.Gallery, &p.Attributes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	p.CategoryID = fromNullable(categoryID)
	p.MainImageURL = fromNullable(mainImage)
	return &p, nil
}

// GetByID returns one product by ID.
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+productCols+` FROM products WHERE id = $1`, id)
	return r.scanOne(row)
}

// GetBySlug returns one product by slug.
func (r *ProductRepo) GetBySlug(slug string) (*entity.Product, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+productCols+` FROM products WHERE slug = $1`, slug)
	return r.scanOne(row)
}

// Update updates an editable product in full.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name_en = $2, name_de = $3, name_tr = $4, category_id = $5, base_price = $6,
			active = $7, main_image_url = $8, gallery = $9, attributes = $10, updated_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.NameEN, product.NameDE, product.NameTR, nullable(product.CategoryID),
		product.BasePrice, product.Active, nullable(product.MainImageURL), product.Gallery,
		product.Attributes, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetActive flips only the active flag (manual admin reactivation path).
func (r *ProductRepo) SetActive(id string, active bool) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET active = $2, updated_at = now() WHERE id = $1`, id, active)
	if err != nil {
		return fmt.Errorf("set product active: %w", err)
	}
	return nil
}

// Delete removes a product by ID.
func (r *ProductRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

func (r *ProductRepo) list(query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		var categoryID, mainImage *string
		if err := rows.Scan(&p.ID, &p.Slug, &p.NameEN, &p.NameDE, &p.NameTR, &categoryID,
			&p.BasePrice, &p.Active, &mainImage, &p.Gallery, &p.Attributes, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.CategoryID = fromNullable(categoryID)
		p.MainImageURL = fromNullable(mainImage)
		list = append(list, &p)
	}
	return list, rows.Err()
}

// List lists products with pagination (admin view).
func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	return r.list(`SELECT `+productCols+` FROM products ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
}

// ListPublicByCategory lists storefront-visible products of one category.
func (r *ProductRepo) ListPublicByCategory(categoryID string) ([]*entity.Product, error) {
	return r.list(`SELECT `+productCols+` FROM products WHERE category_id = $1 AND `+visibleWhere+` ORDER BY slug`, categoryID)
}

// ListPublic lists every storefront-visible product.
func (r *ProductRepo) ListPublic() ([]*entity.Product, error) {
	return r.list(`SELECT ` + productCols + ` FROM products WHERE ` + visibleWhere + ` ORDER BY slug`)
}

// ListByCategory lists every product of one category regardless of visibility.
func (r *ProductRepo) ListByCategory(categoryID string) ([]*entity.Product, error) {
	return r.list(`SELECT `+productCols+` FROM products WHERE category_id = $1 ORDER BY slug`, categoryID)
}

// ListUsedSlugs returns every non-blank product slug.
func (r *ProductRepo) ListUsedSlugs() ([]string, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT slug FROM products WHERE slug IS NOT NULL AND slug <> ''`)
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

// CountMissingImage counts active products per missing-image predicate,
// for the sweep's dry-run report.
func (r *ProductRepo) CountMissingImage() (nullCount, emptyCount int, err error) {
	err = r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE active = true AND main_image_url IS NULL`).Scan(&nullCount)
	if err != nil {
		return 0, 0, fmt.Errorf("count null-image products: %w", err)
	}
	err = r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM products WHERE active = true AND main_image_url = ''`).Scan(&emptyCount)
	if err != nil {
		return 0, 0, fmt.Errorf("count empty-image products: %w", err)
	}
	return nullCount, emptyCount, nil
}

// DeactivateMissingImageNull deactivates active products whose image is NULL.
// One branch of the sweep; the empty-string branch runs separately so each
// reports on its own.
func (r *ProductRepo) DeactivateMissingImageNull() (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET active = false, updated_at = now() WHERE active = true AND main_image_url IS NULL`)
	if err != nil {
		return 0, fmt.Errorf("deactivate null-image products: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// DeactivateMissingImageEmpty deactivates active products whose image is ''.
func (r *ProductRepo) DeactivateMissingImageEmpty() (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET active = false, updated_at = now() WHERE active = true AND main_image_url = ''`)
	if err != nil {
		return 0, fmt.Errorf("deactivate empty-image products: %w", err)
	}
	return cmd.RowsAffected(), nil
}

// ReassignCategory moves every product from one category to another.
func (r *ProductRepo) ReassignCategory(fromCategoryID, toCategoryID string) (int64, error) {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE products SET category_id = $2, updated_at = now() WHERE category_id = $1`,
		fromCategoryID, toCategoryID)
	if err != nil {
		return 0, fmt.Errorf("reassign products: %w", err)
	}
	return cmd.RowsAffected(), nil
}
