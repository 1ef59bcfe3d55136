package repository

import "github.com/lokumhouse/sweets-api/internal/domain/entity"

// ProfileRepository defines the persistence port for Profile (DIP).
type ProfileRepository interface {
	Create(profile *entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
	FindByEmail(email string) (*entity.Profile, error)
	// ListIDsByRoles resolves a role-set fanout target at call time.
	ListIDsByRoles(roles []string) ([]string, error)
	// ListIDsByFirma resolves a tenant fanout target at call time.
	ListIDsByFirma(firmaID string) ([]string, error)
}
