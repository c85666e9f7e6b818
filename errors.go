package md2pub

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")
	ErrRenderFailed  = errors.New("markdown rendering failed")

	// Configuration validation errors.
	ErrInvalidFontSize  = errors.New("invalid font size")
	ErrInvalidLegend    = errors.New("invalid image legend policy")
	ErrInvalidThemeMode = errors.New("invalid theme mode")
	ErrInvalidCodeTheme = errors.New("invalid code theme")

	// Inlining errors. These are fatal: without a working inliner the
	// output is useless on style-stripping consumers.
	ErrCSSParse  = errors.New("CSS parsing failed: the stylesheet could not be parsed for inlining")
	ErrHTMLParse = errors.New("HTML parsing failed: the document could not be parsed for inlining")
)
