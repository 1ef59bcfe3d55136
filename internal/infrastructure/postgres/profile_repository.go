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

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

// ProfileRepo PostgreSQL implementation of ProfileRepository (usable with pool or tx).
type ProfileRepo struct {
	q Querier
}

// NewProfileRepository builds the persistence adapter. Pass pool or tx (Querier).
func NewProfileRepository(q Querier) *ProfileRepo {
	return &ProfileRepo{q: q}
}

const profileCols = `id, firma_id, email, password_hash, name, role, status, created_at, updated_at`

// Create persists a new profile.
func (r *ProfileRepo) Create(profile *entity.Profile) error {
	query := `
		INSERT INTO profiles (id, firma_id, email, password_hash, name, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		profile.ID, nullable(profile.FirmaID), profile.Email, profile.PasswordHash,
		profile.Name, profile.Role, profile.Status, profile.CreatedAt, profile.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *ProfileRepo) scanOne(row pgx.Row) (*entity.Profile, error) {
	var p entity.Profile
	var firmaID *string
	err := row.Scan(&p.ID, &firmaID, &p.Email, &p.PasswordHash, &p.Name, &p.Role, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	p.FirmaID = fromNullable(firmaID)
	return &p, nil
}

// GetByID returns one profile by ID.
func (r *ProfileRepo) GetByID(id string) (*entity.Profile, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+profileCols+` FROM profiles WHERE id = $1`, id)
	return r.scanOne(row)
}

// FindByEmail returns one profile by email.
func (r *ProfileRepo) FindByEmail(email string) (*entity.Profile, error) {
	row := r.q.QueryRow(context.Background(),
		`SELECT `+profileCols+` FROM profiles WHERE email = $1`, email)
	return r.scanOne(row)
}

func (r *ProfileRepo) listIDs(query string, args ...any) ([]string, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list profile ids: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan profile id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ListIDsByRoles resolves a role-set fanout target at call time.
func (r *ProfileRepo) ListIDsByRoles(roles []string) ([]string, error) {
	if len(roles) == 0 {
		return nil, domain.ErrInvalidInput
	}
	return r.listIDs(`SELECT id FROM profiles WHERE role = ANY($1) AND status = 'active'`, roles)
}

// ListIDsByFirma resolves a tenant fanout target at call time.
func (r *ProfileRepo) ListIDsByFirma(firmaID string) ([]string, error) {
	return r.listIDs(`SELECT id FROM profiles WHERE firma_id = $1 AND status = 'active'`, firmaID)
}
