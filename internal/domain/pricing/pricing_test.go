package pricing_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/lokumhouse/sweets-api/internal/domain/pricing"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// ──────────────────────────────────────────────────────────────────────────────
// Personalize
// ──────────────────────────────────────────────────────────────────────────────

func TestPersonalize_KnownVectors(t *testing.T) {
	cases := []struct {
		base, discount, want string
	}{
		{"20.00", "15", "17.00"},
		{"100", "0", "100"},
		{"100", "100", "0"},
		{"9.99", "10", "8.991"},
		{"12.50", "25", "9.375"},
	}
	for _, tc := range cases {
		got := pricing.Personalize(d(tc.base), d(tc.discount))
		assert.True(t, d(tc.want).Equal(got),
			"base %s at %s%% should be %s, got %s", tc.base, tc.discount, tc.want, got)
	}
}

func TestPersonalize_ZeroDiscountIsIdentity(t *testing.T) {
	base := d("34.75")
	assert.True(t, base.Equal(pricing.Personalize(base, decimal.Zero)),
		"0%% discount must return the base price exactly")
}

func TestPersonalize_FullDiscountIsZero(t *testing.T) {
	assert.True(t, pricing.Personalize(d("250.00"), d("100")).IsZero())
}

// A larger discount must never produce a higher price.
func TestPersonalize_MonotonicInDiscount(t *testing.T) {
	base := d("50.00")
	prev := pricing.Personalize(base, decimal.Zero)
	for _, disc := range []string{"5", "10", "37.5", "80", "100"} {
		cur := pricing.Personalize(base, d(disc))
		assert.True(t, cur.LessThanOrEqual(prev),
			"price at %s%% (%s) exceeds price at a smaller discount (%s)", disc, cur, prev)
		prev = cur
	}
}

// Historical rows may carry out-of-range discounts; the derivation keeps
// computing rather than clamping. The write path is the guard, not this.
func TestPersonalize_OutOfRangePassesThrough(t *testing.T) {
	assert.True(t, d("-10").Equal(pricing.Personalize(d("10"), d("200"))),
		"discount over 100 yields a negative price, unclamped")
	assert.True(t, d("11").Equal(pricing.Personalize(d("10"), d("-10"))),
		"negative discount yields a surcharge, unclamped")
}

// ──────────────────────────────────────────────────────────────────────────────
// RoundForOrderLine
// ──────────────────────────────────────────────────────────────────────────────

func TestRoundForOrderLine_HalfAwayFromZero(t *testing.T) {
	cases := []struct{ in, want string }{
		{"8.991", "8.99"},
		{"8.995", "9.00"},
		{"8.994", "8.99"},
		{"17", "17"},
		{"-2.005", "-2.01"},
	}
	for _, tc := range cases {
		got := pricing.RoundForOrderLine(d(tc.in))
		assert.True(t, d(tc.want).Equal(got), "%s should round to %s, got %s", tc.in, tc.want, got)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ValidDiscount
// ──────────────────────────────────────────────────────────────────────────────

func TestValidDiscount_Range(t *testing.T) {
	assert.True(t, pricing.ValidDiscount(decimal.Zero))
	assert.True(t, pricing.ValidDiscount(d("100")))
	assert.True(t, pricing.ValidDiscount(d("12.5")))
	assert.False(t, pricing.ValidDiscount(d("-0.01")))
	assert.False(t, pricing.ValidDiscount(d("100.01")))
}
