// internal/app/system/normalize/normalize.go

// Package normalize centralizes field cleanup so stores never persist
// look-alike duplicates that differ only in case or whitespace.
package normalize

import "strings"

// Email lowercases and trims an email address.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// UserName lowercases and trims a login name. Login names are
// case-insensitive identifiers, unlike display names.
func UserName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Phone strips spaces and dashes from a phone number. No format validation
// happens here; the input boundary owns that.
func Phone(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	return s
}
