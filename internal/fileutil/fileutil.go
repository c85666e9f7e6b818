// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Sentinel errors for file utility operations.
var (
	ErrNotMarkdown  = errors.New("input file must have a .md or .markdown extension")
	ErrBackupFailed = errors.New("failed to back up existing output file")
)

// markdownExtensions are the accepted input extensions.
var markdownExtensions = []string{".md", ".markdown"}

// ValidateMarkdownPath checks that the path carries a Markdown extension.
func ValidateMarkdownPath(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range markdownExtensions {
		if ext == e {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrNotMarkdown, path)
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "grace" -> false (name)
//   - "./custom.css" -> true (relative path)
//   - "../shared/style.css" -> true (parent path)
//   - "/absolute/path.css" -> true (absolute)
//   - "C:\windows\path.css" -> true (Windows)
//   - "my-theme" -> false (hyphenated name)
//   - "sub/dir" -> true (contains separator)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsURL returns true if the string looks like a URL.
func IsURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// backupTimeFormat stamps backup file names down to the second.
const backupTimeFormat = "20060102150405"

// BackupName returns the backup path for an output file at the given time.
func BackupName(path string, now time.Time) string {
	return path + ".bak-" + now.Format(backupTimeFormat)
}

// BackupExisting renames an existing file at path to a timestamped backup
// and returns the backup path. If no file exists, it returns "" and nil.
func BackupExisting(path string, now time.Time) (string, error) {
	if !FileExists(path) {
		return "", nil
	}
	backup := BackupName(path, now)
	if err := os.Rename(path, backup); err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackupFailed, err)
	}
	return backup, nil
}

// OutputPath derives the HTML output path from a Markdown input path.
func OutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	return strings.TrimSuffix(inputPath, ext) + ".html"
}
