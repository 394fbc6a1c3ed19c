// Package htmlsanitize cleans user-supplied text before it is stored or
// rendered. Supervisor notes and self-assessment free text pass through
// here so that markup submitted by a browser extension or a pasted
// document cannot smuggle script into the dashboard.
package htmlsanitize

import (
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// policy permits common formatting (paragraphs, emphasis, lists, links,
// images, tables) and strips everything executable.
var policy = bluemonday.UGCPolicy()

// strict strips all markup, leaving escaped text.
var strict = bluemonday.StrictPolicy()

// Sanitize removes dangerous HTML from the input, preserving common
// formatting elements.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	return policy.Sanitize(s)
}

// SanitizeToHTML sanitizes the input and returns it as template.HTML,
// ready for rendering without further escaping.
func SanitizeToHTML(s string) template.HTML {
	return template.HTML(Sanitize(s))
}

// StripTags removes all markup from the input. Used for fields that are
// stored and displayed as plain text, such as annotation notes.
func StripTags(s string) string {
	if s == "" {
		return ""
	}
	return strict.Sanitize(s)
}

// IsPlainText reports whether the input contains no HTML tags.
// A lone < or > (e.g. "5 < 10") does not count as markup.
func IsPlainText(s string) bool {
	return !(strings.Contains(s, "<") && strings.Contains(s, ">"))
}

// PlainTextToHTML converts plain text to simple HTML: entities are
// escaped, newlines become <br>, and the result is wrapped in <p>.
func PlainTextToHTML(s string) string {
	if s == "" {
		return ""
	}
	escaped := template.HTMLEscapeString(s)
	return "<p>" + strings.ReplaceAll(escaped, "\n", "<br>") + "</p>"
}

// PrepareForDisplay renders stored text for a page. Plain text is
// converted to simple HTML; anything containing markup is sanitized.
func PrepareForDisplay(s string) template.HTML {
	if s == "" {
		return ""
	}
	if IsPlainText(s) {
		return template.HTML(PlainTextToHTML(s))
	}
	return SanitizeToHTML(s)
}
