package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FilesystemLoader loads themes from a directory on the filesystem.
// Implements ThemeLoader interface.
type FilesystemLoader struct {
	basePath string
	embedded *EmbeddedLoader // supplies base.css when the directory has none
}

// NewFilesystemLoader creates a FilesystemLoader for the given base path.
// Returns ErrInvalidBasePath if the path is not a valid, readable directory.
func NewFilesystemLoader(basePath string) (*FilesystemLoader, error) {
	if basePath == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	// Clean and resolve to absolute path
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}

	// Resolve symlinks in base path for consistent comparisons
	// This ensures path containment checks work when basePath contains symlinks
	realPath, err := filepath.EvalSymlinks(absPath)
	if err == nil {
		absPath = realPath
	}

	// Verify it's a readable directory
	info, err := os.Stat(absPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, absPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, absPath)
	}

	// Verify read access by attempting to read directory
	if _, err := os.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{basePath: absPath, embedded: NewEmbeddedLoader()}, nil
}

// LoadTheme loads a theme from the filesystem.
// Looks for {basePath}/styles/{name}.css; a custom base.css in the same
// directory overrides the embedded one.
func (f *FilesystemLoader) LoadTheme(name string) (*ThemePair, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	theme, err := f.readStyle(name)
	if err != nil {
		return nil, err
	}

	base, err := f.readStyle(baseStyleName)
	if err != nil {
		if !isNotFound(err) {
			return nil, err
		}
		base, err = f.embedded.baseCSS()
		if err != nil {
			return nil, err
		}
	}

	return &ThemePair{Name: name, Base: base, Theme: theme}, nil
}

func (f *FilesystemLoader) readStyle(name string) (string, error) {
	filePath := filepath.Join(f.basePath, "styles", name+".css")

	// Path containment check: ensure resolved path is within basePath
	if err := f.verifyPathContainment(filePath); err != nil {
		return "", err
	}

	content, err := os.ReadFile(filePath) // #nosec G304 -- path validated above
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %q", ErrThemeNotFound, name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	return string(content), nil
}

// ThemeNames lists the theme files under {basePath}/styles.
func (f *FilesystemLoader) ThemeNames() []string {
	entries, err := os.ReadDir(filepath.Join(f.basePath, "styles"))
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := strings.CutSuffix(entry.Name(), ".css")
		if !ok || name == baseStyleName {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// verifyPathContainment ensures the resolved file path is within basePath.
// Prevents path traversal attacks even if name validation is bypassed.
// Resolves symlinks to prevent escape via symlink pointing outside basePath.
func (f *FilesystemLoader) verifyPathContainment(filePath string) error {
	absFilePath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("%w: cannot resolve path", ErrPathTraversal)
	}

	// Resolve symlinks to get the real path
	// This prevents symlink-based escape attacks
	realPath, err := filepath.EvalSymlinks(absFilePath)
	if err == nil {
		absFilePath = realPath
	}
	// If EvalSymlinks fails (e.g., file doesn't exist yet), continue with
	// absFilePath; the file will fail to open anyway, and the prefix check
	// still applies

	if !strings.HasPrefix(absFilePath, f.basePath+string(filepath.Separator)) {
		return fmt.Errorf("%w: path escapes base directory", ErrPathTraversal)
	}

	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrThemeNotFound)
}

// Compile-time interface check.
var _ ThemeLoader = (*FilesystemLoader)(nil)
