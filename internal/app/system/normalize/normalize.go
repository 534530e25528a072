// internal/app/system/normalize/normalize.go
//
// Package normalize provides small helpers that bring user input into
// canonical form before validation and storage. Handlers should run
// every form/JSON field through the matching helper so stores never see
// stray whitespace or mixed-case enum values.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a person or organization name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Title trims a content title, preserving case (titles may be
// right-to-left Arabic script; only surrounding whitespace is removed).
func Title(s string) string {
	return strings.TrimSpace(s)
}

// Status lowercases and trims a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Visibility lowercases and trims a visibility value.
func Visibility(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// QueryParam trims a free-text query parameter.
func QueryParam(s string) string {
	return strings.TrimSpace(s)
}
