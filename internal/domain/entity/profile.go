package entity

import "time"

// Valid roles for Profile.
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RolePartner = "partner"
)

// AdminCapableRoles is the role set a broadcast notification resolves to.
var AdminCapableRoles = []string{RoleAdmin, RoleStaff}

// Profile is a portal login. Partner profiles belong to a Firma; back-office
// profiles (admin, staff) have no tenant.
type Profile struct {
	ID           string
	FirmaID      string // empty for back-office profiles
	Email        string
	PasswordHash string // bcrypt hash, never plaintext in the domain after persisting
	Name         string
	Role         string // admin, staff, partner
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
