package main

import (
	"fmt"
	"io"
	"strings"

	md2pub "github.com/alnah/go-md2pub"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2pub <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Markdown file to styled, self-contained HTML.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file (.md or .markdown)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML file (default: input with .html)")
	fmt.Fprintln(w, "  -c, --config <path>       Config file path (default: .md2pub.yml)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Style:")
	fmt.Fprintln(w, "  -t, --theme <name>        Theme: default, grace, simple, or custom")
	fmt.Fprintln(w, "      --theme-dir <path>    Custom theme directory")
	fmt.Fprintf(w, "      --color <s>           Primary color preset (%s) or CSS value\n",
		strings.Join(md2pub.ColorPresetNames(), ", "))
	fmt.Fprintf(w, "      --font <s>            Font preset (%s) or CSS font stack\n",
		strings.Join(md2pub.FontPresetNames(), ", "))
	fmt.Fprintf(w, "  -s, --font-size <s>       Base font size: %s\n",
		strings.Join(md2pub.FontSizeChoices(), ", "))
	fmt.Fprintln(w, "      --code-theme <s>      Highlighting style name or stylesheet URL")
	fmt.Fprintln(w, "      --dark                Dark theme mode")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --legend <s>          Image caption: title-alt, alt-title, title, alt, none")
	fmt.Fprintln(w, "      --cite                Convert external links to numbered footnotes")
	fmt.Fprintln(w, "      --count               Show word count and reading time banner")
	fmt.Fprintln(w, "      --no-mac              Disable mac-style code block header")
	fmt.Fprintln(w, "      --line-numbers        Show line numbers in code blocks")
	fmt.Fprintln(w, "      --keep-title          Keep the leading H1 in the body")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Other:")
	fmt.Fprintln(w, "      --list-themes         List available themes and exit")
	fmt.Fprintln(w, "      --version             Print version and exit")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed progress")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2PUB_CONFIG, MD2PUB_THEME, MD2PUB_THEME_DIR, MD2PUB_COLOR,")
	fmt.Fprintln(w, "  MD2PUB_FONT, MD2PUB_FONT_SIZE, MD2PUB_CODE_THEME")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0  success")
	fmt.Fprintln(w, "  1  unexpected error")
	fmt.Fprintln(w, "  2  invalid flags, config, or input")
	fmt.Fprintln(w, "  3  I/O error")
}
