package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/entity"
	"github.com/lokumhouse/sweets-api/internal/domain/repository"
)

var _ repository.FirmaRepository = (*FirmaRepo)(nil)

// FirmaRepo PostgreSQL implementation of FirmaRepository (usable with pool or tx).
type FirmaRepo struct {
	q Querier
}

// NewFirmaRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewFirmaRepository(q Querier) *FirmaRepo {
	return &FirmaRepo{q: q}
}

const firmaCols = `id, name, owner_profile_id, discount_percent, tags, priority_tier, created_at, updated_at`

// Create persists a new account.
func (r *FirmaRepo) Create(firma *entity.Firma) error {
	query := `
		INSERT INTO firmas (id, name, owner_profile_id, discount_percent, tags, priority_tier, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		firma.ID, firma.Name, nullable(firma.OwnerProfileID), firma.DiscountPercent,
		firma.Tags, firma.PriorityTier, firma.CreatedAt, firma.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert firma: %w", err)
	}
	return nil
}

func (r *FirmaRepo) scanOne(row pgx.Row) (*entity.Firma, error) {
	var f entity.Firma
	var ownerID *string
	err := row.Scan(&f.ID, &f.Name, &ownerID, &f.DiscountPercent, &f.Tags, &f.PriorityTier, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get firma: %w", err)
	}
	f.OwnerProfileID = fromNullable(ownerID)
	return &f, nil
}

// GetByID returns one account by ID.
func (r *FirmaRepo) GetByID(id string) (*entity.Firma, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+firmaCols+` FROM firmas WHERE id = $1`, id)
	return r.scanOne(row)
}

// Update updates an account in full.
func (r *FirmaRepo) Update(firma *entity.Firma) error {
	query := `
		UPDATE firmas SET name = $2, owner_profile_id = $3, discount_percent = $4, tags = $5, priority_tier = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		firma.ID, firma.Name, nullable(firma.OwnerProfileID), firma.DiscountPercent,
		firma.Tags, firma.PriorityTier, firma.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update firma: %w", err)
	}
	return nil
}

// Delete removes an account by ID.
func (r *FirmaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM firmas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete firma: %w", err)
	}
	return nil
}

func (r *FirmaRepo) list(query string, args ...any) ([]*entity.Firma, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list firmas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Firma
	for rows.Next() {
		var f entity.Firma
		var ownerID *string
		if err := rows.Scan(&f.ID, &f.Name, &ownerID, &f.DiscountPercent, &f.Tags, &f.PriorityTier, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan firma: %w", err)
		}
		f.OwnerProfileID = fromNullable(ownerID)
		list = append(list, &f)
	}
	return list, rows.Err()
}

// List lists accounts with pagination.
func (r *FirmaRepo) List(limit, offset int) ([]*entity.Firma, error) {
	return r.list(`SELECT `+firmaCols+` FROM firmas ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
}

// ListInvalidTiers returns accounts whose tier is outside the given set.
func (r *FirmaRepo) ListInvalidTiers(allowed []string) ([]*entity.Firma, error) {
	return r.list(`SELECT `+firmaCols+` FROM firmas WHERE NOT (priority_tier = ANY($1))`, allowed)
}

// MigrateTierConstraint swaps the priority_tier CHECK constraint to the given
// allowed set. DDL cannot be parameterized, so the values are validated to be
// single upper-case letters before being inlined.
func (r *FirmaRepo) MigrateTierConstraint(allowed []string) error {
	quoted := make([]string, 0, len(allowed))
	for _, tier := range allowed {
		if len(tier) != 1 || tier[0] < 'A' || tier[0] > 'Z' {
			return domain.ErrInvalidTier
		}
		quoted = append(quoted, "'"+tier+"'")
	}
	ctx := context.Background()
	if _, err := r.q.Exec(ctx, `ALTER TABLE firmas DROP CONSTRAINT IF EXISTS firmas_priority_tier_check`); err != nil {
		return fmt.Errorf("drop tier constraint: %w", err)
	}
	ddl := fmt.Sprintf(`ALTER TABLE firmas ADD CONSTRAINT firmas_priority_tier_check CHECK (priority_tier IN (%s))`,
		strings.Join(quoted, ", "))
	if _, err := r.q.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("add tier constraint: %w", err)
	}
	return nil
}
