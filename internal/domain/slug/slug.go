// Package slug turns free-text category and product names into unique,
// URL-safe identifiers. Slugify is pure; callers persist the result. The
// uniqueness loop here is the first line of defense, the store's unique
// constraint is the authoritative one (concurrent creators can race past the
// in-memory check).
package slug

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/lokumhouse/sweets-api/internal/domain"
)

// MaxLen is the slug length cap.
const MaxLen = 60

// Fallback is used when normalization empties the name entirely.
const Fallback = "category"

// translit maps characters that NFD decomposition does not handle
// (Turkish dotless ı, ß) plus the common Turkish/German diacritics, so the
// output is stable even for inputs the generic stripper would mangle.
var translit = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ı", "i", "İ", "i",
	"ö", "o", "Ö", "o",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
	"ä", "a", "Ä", "a",
	"ß", "ss",
	"&", " and ",
)

// stripMarks removes remaining combining marks after NFD decomposition
// (é -> e, ñ -> n, ...).
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify normalizes a display name into a URL-safe slug: transliterate known
// diacritics, lower-case, collapse every non [a-z0-9] run into a single
// hyphen, trim hyphens and truncate to MaxLen. An empty result becomes
// Fallback. Idempotent on already-normalized input.
func Slugify(name string) string {
	s := translit.Replace(name)
	s = strings.ToLower(s)
	if out, _, err := transform.String(stripMarks, s); err == nil {
		s = out
	}

	var b strings.Builder
	b.Grow(len(s))
	lastHyphen := true // suppress leading hyphens
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	out := strings.TrimRight(b.String(), "-")
	if len(out) > MaxLen {
		out = strings.TrimRight(out[:MaxLen], "-")
	}
	if out == "" {
		return Fallback
	}
	return out
}

// FromLocalized picks the source name in preference order en, de, tr and
// slugifies it. Returns ErrMissingName when every field is empty.
func FromLocalized(en, de, tr string) (string, error) {
	for _, name := range []string{en, de, tr} {
		if strings.TrimSpace(name) != "" {
			return Slugify(name), nil
		}
	}
	return "", domain.ErrMissingName
}

// Assigner hands out unique slugs against a used-set, updating the set after
// each assignment so a single batch never collides with itself.
type Assigner struct {
	used map[string]struct{}
}

// NewAssigner builds an assigner seeded with the slugs already taken.
func NewAssigner(used []string) *Assigner {
	a := &Assigner{used: make(map[string]struct{}, len(used))}
	for _, s := range used {
		a.used[s] = struct{}{}
	}
	return a
}

// Assign returns base if free, otherwise base-2, base-3, ... (first free
// integer >= 2), and records the result as used.
func (a *Assigner) Assign(base string) string {
	candidate := base
	for n := 2; ; n++ {
		if _, taken := a.used[candidate]; !taken {
			a.used[candidate] = struct{}{}
			return candidate
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

// Taken reports whether a slug is already in the used-set.
func (a *Assigner) Taken(s string) bool {
	_, ok := a.used[s]
	return ok
}
