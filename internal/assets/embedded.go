package assets

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed styles/*
var styles embed.FS

// baseStyleName is the shared stylesheet paired with every theme.
const baseStyleName = "base"

// EmbeddedLoader loads themes from the embedded filesystem.
// Implements ThemeLoader interface.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadTheme loads an embedded theme by name.
// The name should not include the .css extension.
func (e *EmbeddedLoader) LoadTheme(name string) (*ThemePair, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	theme, err := styles.ReadFile("styles/" + name + ".css")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrThemeNotFound, name)
	}

	base, err := e.baseCSS()
	if err != nil {
		return nil, err
	}

	return &ThemePair{
		Name:  name,
		Base:  base,
		Theme: string(theme),
	}, nil
}

func (e *EmbeddedLoader) baseCSS() (string, error) {
	base, err := styles.ReadFile("styles/" + baseStyleName + ".css")
	if err != nil {
		return "", fmt.Errorf("%w: reading base stylesheet: %v", ErrAssetRead, err)
	}
	return string(base), nil
}

// ThemeNames lists the embedded theme names. The shared base stylesheet
// is not itself a theme.
func (e *EmbeddedLoader) ThemeNames() []string {
	entries, err := styles.ReadDir("styles")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		name, ok := strings.CutSuffix(entry.Name(), ".css")
		if !ok || name == baseStyleName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ ThemeLoader = (*EmbeddedLoader)(nil)
