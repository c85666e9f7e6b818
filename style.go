package md2pub

import (
	"fmt"
	"sort"
	"strings"
)

// StyleConfig is the concrete style input for CSS assembly. Every field
// holds a CSS-legal string value.
type StyleConfig struct {
	PrimaryColor         string
	FontFamily           string
	FontSize             string
	ForegroundColor      string
	BlockquoteBackground string
	AccentColor          string
	ContainerBackground  string
}

// StyleOverride is a partial StyleConfig: empty fields leave the lower
// layer untouched.
type StyleOverride struct {
	PrimaryColor         string
	FontFamily           string
	FontSize             string
	ForegroundColor      string
	BlockquoteBackground string
	AccentColor          string
	ContainerBackground  string
}

// DefaultStyle returns the built-in style values.
func DefaultStyle() StyleConfig {
	return StyleConfig{
		PrimaryColor:         colorPresets["blue"],
		FontFamily:           fontPresets["sans"],
		FontSize:             "15px",
		ForegroundColor:      "#3f3f3f",
		BlockquoteBackground: "#f7f7f7",
		AccentColor:          "#3594f7",
		ContainerBackground:  "#ffffff",
	}
}

// ResolveStyle folds override layers left to right over the defaults,
// field by field. Later layers win.
func ResolveStyle(layers ...StyleOverride) StyleConfig {
	style := DefaultStyle()
	for _, layer := range layers {
		if layer.PrimaryColor != "" {
			style.PrimaryColor = layer.PrimaryColor
		}
		if layer.FontFamily != "" {
			style.FontFamily = layer.FontFamily
		}
		if layer.FontSize != "" {
			style.FontSize = layer.FontSize
		}
		if layer.ForegroundColor != "" {
			style.ForegroundColor = layer.ForegroundColor
		}
		if layer.BlockquoteBackground != "" {
			style.BlockquoteBackground = layer.BlockquoteBackground
		}
		if layer.AccentColor != "" {
			style.AccentColor = layer.AccentColor
		}
		if layer.ContainerBackground != "" {
			style.ContainerBackground = layer.ContainerBackground
		}
	}
	return style
}

// Named primary-color presets.
var colorPresets = map[string]string{
	"blue":   "#0f4c81", // classic blue
	"green":  "#009874", // jade green
	"orange": "#d75536", // persimmon orange
	"red":    "#bb2649", // rose red
	"violet": "#813c85", // orchid violet
}

// Named font-family presets. Values use single quotes only: double quotes
// would not survive the post-inlining attribute substitution.
var fontPresets = map[string]string{
	"sans":  "-apple-system-font, BlinkMacSystemFont, 'Helvetica Neue', 'PingFang SC', 'Hiragino Sans GB', 'Microsoft YaHei', Arial, sans-serif",
	"serif": "Optima-Regular, Optima, 'PingFang SC', 'Hiragino Sans GB', 'Microsoft YaHei', serif",
	"mono":  "Menlo, 'Operator Mono', Consolas, Monaco, monospace",
}

// fontSizeChoices is the fixed allow-list for the font size option.
var fontSizeChoices = []string{"12px", "13px", "14px", "15px", "16px"}

// ColorPresetNames returns the named color presets for help output.
func ColorPresetNames() []string {
	return sortedKeys(colorPresets)
}

// FontPresetNames returns the named font presets for help output.
func FontPresetNames() []string {
	return sortedKeys(fontPresets)
}

// FontSizeChoices returns the fixed font-size allow-list.
func FontSizeChoices() []string {
	out := make([]string, len(fontSizeChoices))
	copy(out, fontSizeChoices)
	return out
}

// ResolvePrimaryColor maps a preset name to its value; a literal CSS
// color passes through unchanged.
func ResolvePrimaryColor(v string) string {
	if c, ok := colorPresets[v]; ok {
		return c
	}
	return v
}

// ResolveFontFamily maps a preset name to its font stack; a literal CSS
// value passes through with double quotes normalized to single quotes.
func ResolveFontFamily(v string) string {
	if f, ok := fontPresets[v]; ok {
		return f
	}
	return strings.ReplaceAll(v, `"`, "'")
}

// NormalizeFontSize validates a size against the allow-list, appending
// the px suffix to a bare number first. Empty input stays empty (no
// override).
func NormalizeFontSize(v string) (string, error) {
	if v == "" {
		return "", nil
	}
	if !strings.HasSuffix(v, "px") {
		v += "px"
	}
	for _, s := range fontSizeChoices {
		if s == v {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be one of %s)", ErrInvalidFontSize, v, strings.Join(fontSizeChoices, ", "))
}

// themeOverrides are the theme-specific partial style overrides applied
// between the defaults and explicit values.
var themeOverrides = map[string]StyleOverride{
	"default": {},
	"grace": {
		BlockquoteBackground: "#f8f4ed",
		AccentColor:          "#bf4e4e",
		ForegroundColor:      "#46433f",
	},
	"simple": {
		BlockquoteBackground: "#f2f6fc",
		AccentColor:          "#4a6fa5",
	},
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
