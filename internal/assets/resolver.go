package assets

import "sort"

// ThemeResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls
// back to embedded if the theme is not found in the custom location.
type ThemeResolver struct {
	custom   ThemeLoader // nil if no custom path configured
	embedded ThemeLoader
}

// NewThemeResolver creates a ThemeResolver.
// If customBasePath is empty, only embedded themes are used.
// If customBasePath is set, custom themes take precedence with fallback
// to embedded. Returns error if customBasePath is set but invalid.
func NewThemeResolver(customBasePath string) (*ThemeResolver, error) {
	resolver := &ThemeResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTheme loads a theme, trying the custom loader first if available.
func (r *ThemeResolver) LoadTheme(name string) (*ThemePair, error) {
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}

	pair, err := r.custom.LoadTheme(name)
	if err == nil {
		return pair, nil
	}

	// Only fall back for "not found" errors, not validation or I/O errors
	if !isNotFound(err) {
		return nil, err
	}

	return r.embedded.LoadTheme(name)
}

// ThemeNames returns the union of custom and embedded theme names.
func (r *ThemeResolver) ThemeNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, loader := range []ThemeLoader{r.custom, r.embedded} {
		if loader == nil {
			continue
		}
		for _, name := range loader.ThemeNames() {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// HasCustomLoader returns true if a custom theme loader is configured.
func (r *ThemeResolver) HasCustomLoader() bool {
	return r.custom != nil
}

// Compile-time interface check.
var _ ThemeLoader = (*ThemeResolver)(nil)
