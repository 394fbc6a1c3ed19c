// Package normalize provides canonical forms for user-entered values before
// they are compared or persisted.
package normalize

import "strings"

// Email lowercases and trims an email address. Emails are the human lookup
// key for linking employees, so every comparison goes through this form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims a display name, preserving case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Tag trims a tag value (skill, challenge, tool), preserving case. Tag
// values are compared exactly after trimming.
func Tag(s string) string {
	return strings.TrimSpace(s)
}

// Notes trims free-text notes and caps them at max characters (runes).
// A max of zero means no cap.
func Notes(s string, max int) string {
	s = strings.TrimSpace(s)
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
