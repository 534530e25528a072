// internal/app/system/status/status.go
package status

import "strings"

// Publication statuses for content, articles, and programs.
const (
	Draft     = "draft"
	Published = "published"
)

// Account statuses for dashboard users.
const (
	Active   = "active"
	Disabled = "disabled"
)

// IsValid reports whether s is a known publication status.
func IsValid(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case Draft, Published:
		return true
	}
	return false
}

// IsValidAccount reports whether s is a known account status.
func IsValidAccount(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case Active, Disabled:
		return true
	}
	return false
}
