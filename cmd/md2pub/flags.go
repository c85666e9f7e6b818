package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// convertFlags holds all CLI flags.
type convertFlags struct {
	config   string
	output   string
	theme    string
	themeDir string
	color    string
	font     string
	fontSize string

	codeTheme   string
	legend      string
	cite        bool
	count       bool
	noMac       bool
	lineNumbers bool
	keepTitle   bool
	dark        bool

	listThemes bool
	version    bool
	quiet      bool
	verbose    bool
}

// parseFlags parses CLI flags. The returned FlagSet is kept so callers
// can distinguish explicitly set flags from defaults via Changed().
func parseFlags(args []string) (*convertFlags, *flag.FlagSet, error) {
	fs := flag.NewFlagSet("md2pub", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.config, "config", "c", "", "config file path")
	fs.StringVarP(&f.output, "output", "o", "", "output HTML file path")
	fs.StringVarP(&f.theme, "theme", "t", "", "theme name (default, grace, simple, or custom)")
	fs.StringVar(&f.themeDir, "theme-dir", "", "custom theme directory")
	fs.StringVar(&f.color, "color", "", "primary color preset or CSS value")
	fs.StringVar(&f.font, "font", "", "font preset (sans, serif, mono) or CSS font stack")
	fs.StringVarP(&f.fontSize, "font-size", "s", "", "base font size (12-16, px optional)")

	fs.StringVar(&f.codeTheme, "code-theme", "", "code highlighting style name or stylesheet URL")
	fs.StringVar(&f.legend, "legend", "", "image caption policy: title-alt, alt-title, title, alt, none")
	fs.BoolVar(&f.cite, "cite", false, "convert external links to numbered footnotes")
	fs.BoolVar(&f.count, "count", false, "show word count and reading time banner")
	fs.BoolVar(&f.noMac, "no-mac", false, "disable mac-style code block header")
	fs.BoolVar(&f.lineNumbers, "line-numbers", false, "show line numbers in code blocks")
	fs.BoolVar(&f.keepTitle, "keep-title", false, "keep the leading H1 in the body")
	fs.BoolVar(&f.dark, "dark", false, "dark theme mode")

	fs.BoolVar(&f.listThemes, "list-themes", false, "list available themes and exit")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")

	fs.Usage = func() { printUsage(os.Stderr) }

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return f, fs, nil
}
