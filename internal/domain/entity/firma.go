package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// TierVersions is the history of allowed priority-tier sets. The persisted
// CHECK constraint must match exactly one version; validation always checks
// the latest. Moving the store between versions is an explicit maintenance
// step (migrate-tiers), never an implicit runtime alteration.
var TierVersions = [][]string{
	{"A", "B", "C"},      // v1
	{"A", "B", "C", "D"}, // v2 (current)
}

// CurrentTiers returns the latest allowed priority-tier set.
func CurrentTiers() []string {
	return TierVersions[len(TierVersions)-1]
}

// ValidTier reports whether tier belongs to the active set.
func ValidTier(tier string) bool {
	for _, t := range CurrentTiers() {
		if t == tier {
			return true
		}
	}
	return false
}

// Firma is a business account/tenant: a reseller, customer or sub-dealer with
// its own portal login, discount terms and order history.
type Firma struct {
	ID              string
	Name            string
	OwnerProfileID  string // empty when the account has no portal login yet
	DiscountPercent decimal.Decimal
	Tags            []string
	PriorityTier    string // see TierVersions
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
