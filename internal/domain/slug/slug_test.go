package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lokumhouse/sweets-api/internal/domain"
	"github.com/lokumhouse/sweets-api/internal/domain/slug"
)

// ──────────────────────────────────────────────────────────────────────────────
// Slugify: normalization
// ──────────────────────────────────────────────────────────────────────────────

func TestSlugify_BasicNormalization(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Cold Drinks", "cold-drinks"},
		{"  Cold   Drinks  ", "cold-drinks"},
		{"Cold_Drinks!", "cold-drinks"},
		{"Turkish Delight & Lokum", "turkish-delight-and-lokum"},
		{"100% Pistachio", "100-pistachio"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slug.Slugify(tc.in), "input %q", tc.in)
	}
}

// Turkish and German names are the platform's bread and butter; the
// transliteration table must cover their full diacritic set.
func TestSlugify_TurkishAndGermanDiacritics(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Çifte Kavrulmuş", "cifte-kavrulmus"},
		{"Fıstıklı Lokum", "fistikli-lokum"},
		{"Şekerleme", "sekerleme"},
		{"Gül Lokumu", "gul-lokumu"},
		{"Ağız Tadı", "agiz-tadi"},
		{"İncir", "incir"},
		{"Süßigkeiten", "sussigkeiten"},
		{"Hausgemachtes Nougat & Früchte", "hausgemachtes-nougat-and-fruchte"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, slug.Slugify(tc.in), "input %q", tc.in)
	}
}

func TestSlugify_IdempotentOnNormalizedInput(t *testing.T) {
	once := slug.Slugify("Çifte Kavrulmuş Fıstıklı")
	twice := slug.Slugify(once)
	assert.Equal(t, once, twice, "a slug run through Slugify again must not change")
}

func TestSlugify_EmptyResultFallsBack(t *testing.T) {
	assert.Equal(t, slug.Fallback, slug.Slugify(""), "empty input uses the fallback")
	assert.Equal(t, slug.Fallback, slug.Slugify("!!! ???"), "symbol-only input uses the fallback")
}

func TestSlugify_TruncatesToMaxLen(t *testing.T) {
	long := strings.Repeat("lokum ", 30)
	out := slug.Slugify(long)
	assert.LessOrEqual(t, len(out), slug.MaxLen)
	assert.False(t, strings.HasSuffix(out, "-"), "truncation must not leave a trailing hyphen")
}

// ──────────────────────────────────────────────────────────────────────────────
// FromLocalized: source name preference
// ──────────────────────────────────────────────────────────────────────────────

func TestFromLocalized_PrefersEnglishThenGermanThenTurkish(t *testing.T) {
	s, err := slug.FromLocalized("Soft Candy", "Weichbonbons", "Yumuşak Şeker")
	require.NoError(t, err)
	assert.Equal(t, "soft-candy", s, "English wins when present")

	s, err = slug.FromLocalized("", "Weichbonbons", "Yumuşak Şeker")
	require.NoError(t, err)
	assert.Equal(t, "weichbonbons", s, "German is the second choice")

	s, err = slug.FromLocalized("", "", "Yumuşak Şeker")
	require.NoError(t, err)
	assert.Equal(t, "yumusak-seker", s, "Turkish is the last resort")
}

func TestFromLocalized_AllEmptyIsAnError(t *testing.T) {
	_, err := slug.FromLocalized("", "  ", "")
	assert.ErrorIs(t, err, domain.ErrMissingName,
		"a row with no usable name must be rejected, not silently slugged")
}

// ──────────────────────────────────────────────────────────────────────────────
// Assigner: uniqueness under collision
// ──────────────────────────────────────────────────────────────────────────────

func TestAssigner_SuffixesOnCollision(t *testing.T) {
	a := slug.NewAssigner([]string{"cold-drinks"})

	assert.Equal(t, "cold-drinks-2", a.Assign("cold-drinks"),
		"first collision gets the -2 suffix")
	assert.Equal(t, "cold-drinks-3", a.Assign("cold-drinks"),
		"second collision continues counting")
	assert.Equal(t, "hot-drinks", a.Assign("hot-drinks"),
		"a free base passes through untouched")
}

// A batch backfill seeds the assigner once and assigns many; two identical
// names inside the same batch must not collide with each other.
func TestAssigner_BatchDoesNotSelfCollide(t *testing.T) {
	a := slug.NewAssigner(nil)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		s := a.Assign("lokum")
		assert.False(t, seen[s], "assigner handed out %q twice", s)
		seen[s] = true
	}
	assert.True(t, seen["lokum"] && seen["lokum-2"] && seen["lokum-5"])
}

func TestAssigner_Taken(t *testing.T) {
	a := slug.NewAssigner([]string{"baklava"})
	assert.True(t, a.Taken("baklava"))
	assert.False(t, a.Taken("kadayif"))
	a.Assign("kadayif")
	assert.True(t, a.Taken("kadayif"), "Assign must record its result as used")
}
