package md2pub

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	codeEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"`", "&#96;",
	)
)

// htmlEscape escapes text content.
func htmlEscape(s string) string { return textEscaper.Replace(s) }

// attrEscape escapes an attribute value for use inside double quotes.
func attrEscape(s string) string { return attrEscaper.Replace(s) }

// escapeCode escapes inline code literals: ampersand, angle brackets,
// quotes, and backtick.
func escapeCode(s string) string { return codeEscaper.Replace(s) }
