// Package assets provides the theme stylesheets for document generation.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	ThemeLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in themes)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── ThemeResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in themes (default, grace, simple)
// embedded at compile time, each paired with the shared base stylesheet.
//
// FilesystemLoader allows users to provide custom themes from a directory,
// with path traversal protection and symlink resolution.
//
// ThemeResolver is the primary loader used by the converter. It tries the
// custom FilesystemLoader first, falling back to EmbeddedLoader if the
// theme is not found. This enables overriding specific themes while
// keeping the defaults.
//
// # Directory Structure
//
// A custom theme directory mirrors the embedded layout:
//
//	{basePath}/
//	└── styles/
//	    ├── base.css             # shared layout rules (optional override)
//	    └── {name}.css           # theme stylesheet
//
// # Security
//
// Theme names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
