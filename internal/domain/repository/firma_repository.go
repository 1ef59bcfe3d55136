package repository

import "github.com/lokumhouse/sweets-api/internal/domain/entity"

// FirmaRepository defines the persistence port for Firma (DIP).
type FirmaRepository interface {
	Create(firma *entity.Firma) error
	GetByID(id string) (*entity.Firma, error)
	Update(firma *entity.Firma) error
	Delete(id string) error
	List(limit, offset int) ([]*entity.Firma, error)

	// ListInvalidTiers returns firmas whose tier falls outside the given set,
	// used to validate before a tier-set migration.
	ListInvalidTiers(allowed []string) ([]*entity.Firma, error)
	// MigrateTierConstraint swaps the store's CHECK constraint to the given
	// allowed set. Explicit migration step; never called from request paths.
	MigrateTierConstraint(allowed []string) error
}
