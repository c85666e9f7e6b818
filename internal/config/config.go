// Package config loads tool configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2pub/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds conversion defaults loaded from a config file. Pointer
// fields distinguish "unset" from an explicit false, so a config file can
// turn a default-on option off without flags overriding it back.
type Config struct {
	Theme        string `yaml:"theme"`        // theme name (default, grace, simple, or custom)
	ThemeDir     string `yaml:"themeDir"`     // custom theme directory
	Color        string `yaml:"color"`        // primary color preset name or CSS value
	Font         string `yaml:"font"`         // font preset name or CSS font stack
	FontSize     string `yaml:"fontSize"`     // 12-16, with or without px suffix
	CodeTheme    string `yaml:"codeTheme"`    // highlighting style name or stylesheet URL
	Legend       string `yaml:"legend"`       // image caption policy
	Cite         *bool  `yaml:"cite"`         // footnote citation mode
	Count        *bool  `yaml:"count"`        // word-count banner
	MacCodeBlock *bool  `yaml:"macCodeBlock"` // decorative code block header
	LineNumbers  *bool  `yaml:"lineNumbers"`  // code line numbers
	KeepTitle    *bool  `yaml:"keepTitle"`    // retain leading H1 in the body
	ThemeMode    string `yaml:"themeMode"`    // light or dark
}

// DefaultConfig returns an empty configuration: every field unset.
func DefaultConfig() *Config {
	return &Config{}
}

// configFileNames are searched in order in each location.
var configFileNames = []string{".md2pub.yml", ".md2pub.yaml"}

// Find locates the config file: an explicit path wins, then the current
// directory, then the user config directory. Returns "" with no error
// when nothing is found and no explicit path was given.
func Find(explicitPath string) (string, error) {
	if explicitPath != "" {
		if !fileExists(explicitPath) {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, explicitPath)
		}
		return explicitPath, nil
	}

	for _, name := range configFileNames {
		if fileExists(name) {
			return name, nil
		}
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, name := range configFileNames {
			path := filepath.Join(userConfigDir, "md2pub", strings.TrimPrefix(name, "."))
			if fileExists(path) {
				return path, nil
			}
		}
	}

	return "", nil
}

// Load reads and parses the config file at path.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, ErrEmptyConfigName
	}

	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	return &cfg, nil
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
