package md2pub

import (
	"fmt"
	"strings"
)

// Image legend policy constants. The policy selects which of an image's
// alt text or title becomes its visible caption.
const (
	LegendTitleAlt = "title-alt"
	LegendAltTitle = "alt-title"
	LegendTitle    = "title"
	LegendAlt      = "alt"
	LegendNone     = "none"
)

// Theme mode constants.
const (
	ThemeModeLight = "light"
	ThemeModeDark  = "dark"
)

// DefaultTheme is used when no theme is configured.
const DefaultTheme = "default"

// RenderOptions configures one render pass.
type RenderOptions struct {
	Legend         string // image caption policy: title-alt, alt-title, title, alt, none
	CiteStatus     bool   // convert external links to numbered footnotes
	CountStatus    bool   // emit word-count / reading-time banner
	MacCodeBlock   bool   // decorative mac-style code block header
	ShowLineNumber bool   // line-number gutter in code blocks
	ThemeMode      string // "light" or "dark"
	KeepTitle      bool   // retain the leading H1 in the body
}

// DefaultRenderOptions returns render options with default values.
func DefaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Legend:       LegendTitleAlt,
		MacCodeBlock: true,
		ThemeMode:    ThemeModeLight,
	}
}

// Validate checks that enumerated option values are valid.
// Returns nil if o is nil (nil means use defaults).
func (o *RenderOptions) Validate() error {
	if o == nil {
		return nil
	}

	switch o.Legend {
	case LegendTitleAlt, LegendAltTitle, LegendTitle, LegendAlt, LegendNone:
	default:
		return fmt.Errorf("%w: %q (must be %s)", ErrInvalidLegend, o.Legend,
			strings.Join([]string{LegendTitleAlt, LegendAltTitle, LegendTitle, LegendAlt, LegendNone}, ", "))
	}

	switch o.ThemeMode {
	case ThemeModeLight, ThemeModeDark:
	default:
		return fmt.Errorf("%w: %q (must be light or dark)", ErrInvalidThemeMode, o.ThemeMode)
	}

	return nil
}

// Input contains conversion parameters.
type Input struct {
	Markdown   string // Markdown content (required)
	OutputName string // output file name, used as the final title fallback (optional)
}

// ConvertResult contains the rendered document and the metadata gathered
// while producing it.
type ConvertResult struct {
	HTML      []byte
	Meta      DocumentMeta
	WordCount int
	Minutes   int
	Footnotes []Footnote
}

// Logger receives non-fatal pipeline diagnostics (malformed front matter,
// failed remote code-theme fetches). The zero value drops them.
type Logger func(format string, args ...any)
