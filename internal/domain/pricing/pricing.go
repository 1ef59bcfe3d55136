// Package pricing derives the buyer-specific price from a shared base price
// and the buying firma's discount percentage. Prices are always computed at
// read/order time so they reflect the account's current discount; nothing
// here is ever written back onto a product row.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Personalize computes base * (1 - discountPercent/100).
//
// A missing financial profile means discountPercent 0, handled by callers.
// Values outside [0,100] pass through unvalidated here; the admin write path
// rejects them, but historical rows keep computing whatever they carry.
func Personalize(base, discountPercent decimal.Decimal) decimal.Decimal {
	return base.Mul(hundred.Sub(discountPercent)).Div(hundred)
}

// RoundForOrderLine rounds a personalized price to the currency's minor unit
// (2 decimals, half away from zero). Applied only when a price is persisted
// into an order line or displayed as a final amount; catalog listings carry
// the unrounded derivation.
func RoundForOrderLine(p decimal.Decimal) decimal.Decimal {
	return p.Round(2)
}

// ValidDiscount reports whether a discount percentage is inside [0,100].
// Used by the firma write path so new data cannot drift out of range.
func ValidDiscount(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(hundred)
}
