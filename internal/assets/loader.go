package assets

// ThemePair is one loadable theme: the shared base stylesheet plus the
// theme's own stylesheet.
type ThemePair struct {
	Name  string // theme identifier
	Base  string // shared layout CSS
	Theme string // theme-specific CSS
}

// ThemeLoader defines the contract for loading theme stylesheets.
// Implementations may load from embedded assets, filesystem, or elsewhere.
type ThemeLoader interface {
	// LoadTheme loads a theme by name (without .css extension).
	// Returns ErrThemeNotFound if the theme doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTheme(name string) (*ThemePair, error)

	// ThemeNames lists the available theme names, sorted.
	ThemeNames() []string
}
