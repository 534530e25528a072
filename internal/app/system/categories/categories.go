// internal/app/system/categories/categories.go
package categories

import "strings"

// Language categories. Every content item and grouping entity carries
// exactly one; it is the primary filtering dimension across the site.
const (
	English = "English"
	Hausa   = "Hausa"
	Arabic  = "Arabic"
)

// All returns the categories in display order.
func All() []string {
	return []string{English, Hausa, Arabic}
}

// IsValid reports whether s names a known category (case-insensitive).
func IsValid(s string) bool {
	_, ok := normalize(s)
	return ok
}

// Canonical returns the canonical spelling for s, or "" when s is not a
// known category. Accepts any casing and surrounding whitespace.
func Canonical(s string) string {
	c, _ := normalize(s)
	return c
}

func normalize(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "english":
		return English, true
	case "hausa":
		return Hausa, true
	case "arabic":
		return Arabic, true
	}
	return "", false
}
