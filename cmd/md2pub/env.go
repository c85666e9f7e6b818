package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-md2pub/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MD2PUB_CONFIG: config file path
	Theme      string // MD2PUB_THEME: theme name
	ThemeDir   string // MD2PUB_THEME_DIR: custom theme directory
	Color      string // MD2PUB_COLOR: primary color preset or value
	Font       string // MD2PUB_FONT: font preset or stack
	FontSize   string // MD2PUB_FONT_SIZE: base font size
	CodeTheme  string // MD2PUB_CODE_THEME: highlighting style or URL
}

// knownEnvVars lists valid MD2PUB_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2PUB_CONFIG":     true,
	"MD2PUB_THEME":      true,
	"MD2PUB_THEME_DIR":  true,
	"MD2PUB_COLOR":      true,
	"MD2PUB_FONT":       true,
	"MD2PUB_FONT_SIZE":  true,
	"MD2PUB_CODE_THEME": true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		ConfigPath: os.Getenv("MD2PUB_CONFIG"),
		Theme:      os.Getenv("MD2PUB_THEME"),
		ThemeDir:   os.Getenv("MD2PUB_THEME_DIR"),
		Color:      os.Getenv("MD2PUB_COLOR"),
		Font:       os.Getenv("MD2PUB_FONT"),
		FontSize:   os.Getenv("MD2PUB_FONT_SIZE"),
		CodeTheme:  os.Getenv("MD2PUB_CODE_THEME"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized MD2PUB_* variables.
// Helps catch typos like MD2PUB_TEME instead of MD2PUB_THEME.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MD2PUB_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overlays environment variable values on the config.
// A set env var overrides the config file value, giving the precedence
// chain: CLI flags > env vars > config file > defaults.
// (CLI flags are applied later via mergeFlags)
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Theme != "" {
		cfg.Theme = env.Theme
	}
	if env.ThemeDir != "" {
		cfg.ThemeDir = env.ThemeDir
	}
	if env.Color != "" {
		cfg.Color = env.Color
	}
	if env.Font != "" {
		cfg.Font = env.Font
	}
	if env.FontSize != "" {
		cfg.FontSize = env.FontSize
	}
	if env.CodeTheme != "" {
		cfg.CodeTheme = env.CodeTheme
	}
}
