// internal/app/system/htmlsanitize/htmlsanitize.go

// Package htmlsanitize strips dangerous markup from user-supplied text
// before it is stored. Meeting fields end up in notification emails and
// browser calendars, so script injection here would ride the notification
// pipeline straight into every client.
package htmlsanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	richPolicy = bluemonday.UGCPolicy()
	textPolicy = bluemonday.StrictPolicy()
)

// Sanitize keeps safe formatting markup (paragraphs, emphasis, lists,
// links) and removes scripts, event handlers and javascript: URLs. Used for
// the meeting description.
func Sanitize(s string) string {
	return richPolicy.Sanitize(s)
}

// Text strips all markup, leaving plain text. Used for single-line fields
// like the meeting title and location.
func Text(s string) string {
	return strings.TrimSpace(textPolicy.Sanitize(s))
}
