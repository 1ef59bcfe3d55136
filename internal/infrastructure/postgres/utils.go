package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation checks whether an error is a unique-constraint violation
// (23505). The slug pre-check races under concurrency; this is how the
// store's authoritative rejection is recognized and mapped to ErrDuplicate.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// nullable maps an empty string to NULL for optional FK/text columns.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// fromNullable maps a NULL column back to the empty string.
func fromNullable(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
