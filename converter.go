package md2pub

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2pub/internal/assets"
)

// converterConfig holds the settings applied through Options.
type converterConfig struct {
	theme        string
	themeDir     string
	primaryColor string
	fontFamily   string
	fontSize     string
	codeTheme    string
	opts         *RenderOptions
	logger       Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithTheme selects a theme by name (default, grace, simple, or a custom
// theme from the configured theme directory).
func WithTheme(name string) Option {
	return func(c *Converter) { c.cfg.theme = name }
}

// WithThemeDir points the loader at a custom theme directory. Themes
// found there take precedence over the embedded ones.
func WithThemeDir(path string) Option {
	return func(c *Converter) { c.cfg.themeDir = path }
}

// WithPrimaryColor sets the primary color: a preset name or a literal
// CSS color value.
func WithPrimaryColor(v string) Option {
	return func(c *Converter) { c.cfg.primaryColor = v }
}

// WithFontFamily sets the body font: a preset name or a literal CSS
// font stack.
func WithFontFamily(v string) Option {
	return func(c *Converter) { c.cfg.fontFamily = v }
}

// WithFontSize sets the base font size (12-16, px suffix optional).
func WithFontSize(v string) Option {
	return func(c *Converter) { c.cfg.fontSize = v }
}

// WithCodeTheme selects the syntax-highlighting style by name, or a
// stylesheet URL fetched once at construction.
func WithCodeTheme(v string) Option {
	return func(c *Converter) { c.cfg.codeTheme = v }
}

// WithRenderOptions replaces the default render options.
func WithRenderOptions(opts *RenderOptions) Option {
	return func(c *Converter) { c.cfg.opts = opts }
}

// WithLogger installs a sink for non-fatal diagnostics.
func WithLogger(logger Logger) Option {
	return func(c *Converter) { c.cfg.logger = logger }
}

// Converter orchestrates the Markdown-to-HTML publishing pipeline.
// Create with NewConverter, then call Convert per document. A Converter
// is not safe for concurrent use: rendering state is per-instance.
type Converter struct {
	cfg          converterConfig
	themeLoader  assets.ThemeLoader
	engine       *Engine
	css          string
	codeThemeCSS string
}

// NewConverter creates a Converter, loading the theme and resolving all
// style inputs up front. Configuration errors (unknown theme, invalid
// font size, unknown code theme) fail here rather than per conversion.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			theme: DefaultTheme,
			opts:  DefaultRenderOptions(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.cfg.opts == nil {
		c.cfg.opts = DefaultRenderOptions()
	}
	if err := c.cfg.opts.Validate(); err != nil {
		return nil, err
	}

	resolver, err := assets.NewThemeResolver(c.cfg.themeDir)
	if err != nil {
		return nil, fmt.Errorf("loading theme assets: %w", err)
	}
	c.themeLoader = resolver

	pair, err := c.themeLoader.LoadTheme(c.cfg.theme)
	if err != nil {
		return nil, fmt.Errorf("loading theme %q: %w", c.cfg.theme, err)
	}

	fontSize, err := NormalizeFontSize(c.cfg.fontSize)
	if err != nil {
		return nil, err
	}
	style := ResolveStyle(
		themeOverrides[c.cfg.theme],
		StyleOverride{
			PrimaryColor: ResolvePrimaryColor(c.cfg.primaryColor),
			FontFamily:   ResolveFontFamily(c.cfg.fontFamily),
			FontSize:     fontSize,
		},
	)
	c.css = AssembleCSS(style, pair.Base, pair.Theme)

	c.codeThemeCSS, err = resolveCodeThemeCSS(context.Background(), c.cfg.codeTheme, c.cfg.logger)
	if err != nil {
		return nil, err
	}

	c.engine = NewEngine(c.cfg.opts)
	return c, nil
}

// ThemeNames lists the themes available to this Converter.
func (c *Converter) ThemeNames() []string {
	return c.themeLoader.ThemeNames()
}

// Convert runs the full pipeline on one document. The context is used
// for cancellation between stages. Recovers from internal panics to
// prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if strings.TrimSpace(input.Markdown) == "" {
		return nil, ErrEmptyMarkdown
	}

	meta, body, err := SplitFrontMatter(input.Markdown)
	if err != nil {
		// Malformed front matter is treated as content, not a failure.
		c.logf("front matter ignored: %v", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	docMeta, body := c.resolveDocumentMeta(meta, body, input.OutputName)

	normalized := NormalizeEmphasis(body)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	c.engine.Reset()
	rendered, err := c.engine.Render(ctx, normalized)
	if err != nil {
		return nil, err
	}

	words := CountWords(body)
	minutes := ReadingTime(words)

	fragment := PostProcess(rendered, c.engine.Session(), words, minutes)
	fragment = RepairNestedLists(fragment)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	doc := BuildDocument(docMeta, c.css, c.codeThemeCSS, fragment)
	inlined, err := InlineCSS(doc)
	if err != nil {
		return nil, err
	}
	final := NormalizeCSSVariables(inlined)

	return &ConvertResult{
		HTML:      []byte(final),
		Meta:      docMeta,
		WordCount: words,
		Minutes:   minutes,
		Footnotes: c.engine.Session().Footnotes(),
	}, nil
}

// resolveDocumentMeta derives the shell metadata. The title falls back
// front matter -> leading H1 -> output file base name -> "Untitled".
// Unless KeepTitle is set, a leading H1 used as the title is removed
// from the body.
func (c *Converter) resolveDocumentMeta(fm FrontMatter, body, outputName string) (DocumentMeta, string) {
	meta := DocumentMeta{
		Title:       StripWrappingQuotes(fm.String("title")),
		Author:      StripWrappingQuotes(fm.String("author")),
		Description: StripWrappingQuotes(fm.String("description")),
	}

	heading, rest := splitLeadingHeading(body)
	if heading != "" && !c.cfg.opts.KeepTitle {
		body = rest
	}
	if meta.Title == "" {
		meta.Title = heading
	}
	if meta.Title == "" && outputName != "" {
		base := filepath.Base(outputName)
		meta.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	if meta.Title == "" {
		meta.Title = "Untitled"
	}
	return meta, body
}

// splitLeadingHeading returns the text of a document-leading H1 and the
// body without it. No leading H1 returns ("", body).
func splitLeadingHeading(body string) (string, string) {
	rest := body
	var leadingBlank strings.Builder
	for {
		line, remainder, found := strings.Cut(rest, "\n")
		if strings.TrimSpace(line) == "" {
			if !found {
				return "", body
			}
			leadingBlank.WriteString(line)
			leadingBlank.WriteString("\n")
			rest = remainder
			continue
		}
		title, ok := strings.CutPrefix(line, "# ")
		if !ok {
			return "", body
		}
		return strings.TrimSpace(title), leadingBlank.String() + remainder
	}
}

func (c *Converter) logf(format string, args ...any) {
	if c.cfg.logger != nil {
		c.cfg.logger(format, args...)
	}
}
