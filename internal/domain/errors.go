package domain

import "errors"

// Domain errors (no external dependencies). Handlers map these to HTTP codes;
// user-visible errors stay message strings.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrProfileNotFound   = errors.New("profile not found")
	ErrEmailAlreadyExists = errors.New("email is already registered")
	ErrInvalidInput      = errors.New("invalid input")
	ErrDuplicate         = errors.New("duplicate resource")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("access denied")
	ErrConflict          = errors.New("conflict with current state")

	// Validation errors, rejected before any write.
	ErrMissingName       = errors.New("no localized name provided")
	ErrEmptyItems        = errors.New("request needs at least one item")
	ErrMissingOrigin     = errors.New("request needs an originating account or lead")
	ErrProfileResolution = errors.New("caller profile has no tenant")
	ErrInvalidTier       = errors.New("priority tier not in the active set")

	// Workflow errors.
	ErrInvalidTransition = errors.New("status transition not allowed")
)
