// internal/app/system/htmlsanitize/htmlsanitize.go
//
// Package htmlsanitize strips dangerous markup from article bodies
// before they are stored. Articles are written in the dashboard's rich
// text editor, so the policy allows common formatting plus images and
// links, but never scripts or event handlers.
package htmlsanitize

import (
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.UGCPolicy()

// Sanitize returns body with unsafe HTML removed.
func Sanitize(body string) string {
	if body == "" {
		return ""
	}
	return policy.Sanitize(body)
}
