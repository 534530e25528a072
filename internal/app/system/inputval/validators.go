// internal/app/system/inputval/validators.go
package inputval

import (
	"net/mail"
	"net/url"
	"strings"

	"github.com/almanarfoundation/manarhub/internal/app/system/categories"
)

// IsValidEmail reports whether s parses as a bare RFC 5322 address
// (display-name forms like "Name <a@b>" are rejected).
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	// ParseAddress accepts "Name <a@b>"; we only want the bare address.
	if addr.Address != s {
		return false
	}
	local, _, ok := strings.Cut(s, "@")
	if !ok || local == "" {
		return false
	}
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(s, "..") {
		return false
	}
	return true
}

// IsValidHTTPURL reports whether s is an absolute http(s) URL.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// IsValidObjectID reports whether s is a 24-character hex string.
func IsValidObjectID(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 24 {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return false
		}
	}
	return true
}

// IsValidCategory reports whether s is a known language category.
func IsValidCategory(s string) bool {
	return categories.IsValid(s)
}
