package main

import (
	"errors"
	"os"

	md2pub "github.com/alnah/go-md2pub"
	"github.com/alnah/go-md2pub/internal/assets"
	"github.com/alnah/go-md2pub/internal/config"
	"github.com/alnah/go-md2pub/internal/fileutil"
)

// Exit codes for md2pub CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, 3=I/O.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteHTML) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, fileutil.ErrBackupFailed) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, md2pub.ErrEmptyMarkdown) ||
		errors.Is(err, md2pub.ErrInvalidFontSize) ||
		errors.Is(err, md2pub.ErrInvalidLegend) ||
		errors.Is(err, md2pub.ErrInvalidThemeMode) ||
		errors.Is(err, md2pub.ErrInvalidCodeTheme) ||
		errors.Is(err, assets.ErrThemeNotFound) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, fileutil.ErrNotMarkdown) {
		return ExitUsage
	}

	return ExitGeneral
}
