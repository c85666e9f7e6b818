package md2pub

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-md2pub/internal/assets"
)

func mustConverter(t *testing.T, opts ...Option) *Converter {
	t.Helper()
	c, err := NewConverter(opts...)
	if err != nil {
		t.Fatalf("NewConverter: %v", err)
	}
	return c
}

func TestNewConverterValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{
			name:    "unknown theme",
			opts:    []Option{WithTheme("nope")},
			wantErr: assets.ErrThemeNotFound,
		},
		{
			name:    "invalid font size",
			opts:    []Option{WithFontSize("42")},
			wantErr: ErrInvalidFontSize,
		},
		{
			name:    "invalid code theme",
			opts:    []Option{WithCodeTheme("not-a-style")},
			wantErr: ErrInvalidCodeTheme,
		},
		{
			name: "invalid legend",
			opts: []Option{WithRenderOptions(&RenderOptions{
				Legend: "bogus", ThemeMode: ThemeModeLight,
			})},
			wantErr: ErrInvalidLegend,
		},
		{
			name: "invalid theme mode",
			opts: []Option{WithRenderOptions(&RenderOptions{
				Legend: LegendTitleAlt, ThemeMode: "sepia",
			})},
			wantErr: ErrInvalidThemeMode,
		},
		{
			name:    "bad theme dir",
			opts:    []Option{WithThemeDir("/nonexistent/theme/dir")},
			wantErr: assets.ErrInvalidBasePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewConverter(tt.opts...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConverterThemes(t *testing.T) {
	t.Parallel()

	c := mustConverter(t)
	names := c.ThemeNames()
	for _, want := range []string{"default", "grace", "simple"} {
		found := false
		for _, n := range names {
			if n == want {
				found = true
			}
		}
		if !found {
			t.Errorf("ThemeNames() = %v, missing %q", names, want)
		}
	}

	// Each built-in theme must load and convert.
	for _, theme := range []string{"default", "grace", "simple"} {
		c := mustConverter(t, WithTheme(theme))
		res, err := c.Convert(context.Background(), Input{Markdown: "# T\n\nbody"})
		if err != nil {
			t.Errorf("theme %s: Convert failed: %v", theme, err)
			continue
		}
		if len(res.HTML) == 0 {
			t.Errorf("theme %s: empty output", theme)
		}
	}
}

func TestConvert(t *testing.T) {
	t.Parallel()

	markdown := `---
title: "文章标题"
author: 作者
---
# 忽略的正文标题

段落**加粗**文字，配一个[链接](https://example.com)。

- 甲
- 乙
`
	c := mustConverter(t)
	res, err := c.Convert(context.Background(), Input{Markdown: markdown})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	html := string(res.HTML)

	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>文章标题</title>",
		`<meta name="author" content="作者"`,
		"<strong", "加粗",
		"• 甲",
		`href="https://example.com"`,
		"style=", // declarations moved inline
	} {
		if !strings.Contains(html, want) {
			t.Errorf("output missing %q", want)
		}
	}
	for _, not := range []string{
		"var(",      // custom properties fully normalized
		"#output ",  // scope rewritten at assembly
		"忽略的正文标题", // leading H1 stripped when the title comes from front matter
	} {
		if strings.Contains(html, not) {
			t.Errorf("output should not contain %q", not)
		}
	}

	if res.Meta.Title != "文章标题" {
		t.Errorf("Meta.Title = %q", res.Meta.Title)
	}
	if res.WordCount == 0 || res.Minutes == 0 {
		t.Errorf("word count = %d, minutes = %d", res.WordCount, res.Minutes)
	}
}

func TestConvertTitleFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		markdown  string
		output    string
		keepTitle bool
		wantTitle string
		wantBody  string // substring expected in the HTML body
		wantNot   string
	}{
		{
			name:      "h1 becomes title and leaves body",
			markdown:  "# 大标题\n\n正文",
			wantTitle: "大标题",
			wantNot:   `data-heading="true">大标题`,
		},
		{
			name:      "keep title retains h1",
			markdown:  "# 大标题\n\n正文",
			keepTitle: true,
			wantTitle: "大标题",
			wantBody:  `data-heading="true">大标题`,
		},
		{
			name:      "output name fallback",
			markdown:  "正文而已",
			output:    "/tmp/articles/my-post.html",
			wantTitle: "my-post",
		},
		{
			name:      "untitled fallback",
			markdown:  "正文而已",
			wantTitle: "Untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			opts := DefaultRenderOptions()
			opts.KeepTitle = tt.keepTitle
			c := mustConverter(t, WithRenderOptions(opts))
			res, err := c.Convert(context.Background(), Input{Markdown: tt.markdown, OutputName: tt.output})
			if err != nil {
				t.Fatalf("Convert: %v", err)
			}
			if res.Meta.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", res.Meta.Title, tt.wantTitle)
			}
			html := string(res.HTML)
			if tt.wantBody != "" && !strings.Contains(html, tt.wantBody) {
				t.Errorf("body missing %q", tt.wantBody)
			}
			if tt.wantNot != "" && strings.Contains(html, tt.wantNot) {
				t.Errorf("body should not contain %q", tt.wantNot)
			}
		})
	}
}

func TestConvertEmptyMarkdown(t *testing.T) {
	t.Parallel()

	c := mustConverter(t)
	for _, input := range []string{"", "   \n\t\n"} {
		if _, err := c.Convert(context.Background(), Input{Markdown: input}); !errors.Is(err, ErrEmptyMarkdown) {
			t.Errorf("Convert(%q) error = %v, want ErrEmptyMarkdown", input, err)
		}
	}
}

func TestConvertCitationMode(t *testing.T) {
	t.Parallel()

	opts := DefaultRenderOptions()
	opts.CiteStatus = true
	c := mustConverter(t, WithRenderOptions(opts))

	res, err := c.Convert(context.Background(), Input{
		Markdown: "见[甲](https://a.example)与[乙](https://b.example)。",
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	html := string(res.HTML)

	if !strings.Contains(html, "引用链接") {
		t.Error("missing footnote block")
	}
	if len(res.Footnotes) != 2 {
		t.Errorf("footnotes = %d, want 2", len(res.Footnotes))
	}
}

func TestConvertCountBanner(t *testing.T) {
	t.Parallel()

	opts := DefaultRenderOptions()
	opts.CountStatus = true
	c := mustConverter(t, WithRenderOptions(opts))

	res, err := c.Convert(context.Background(), Input{Markdown: "一段中文内容。"})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(string(res.HTML), "字数") {
		t.Error("missing word count banner")
	}
}

func TestConvertMermaidNeverHighlighted(t *testing.T) {
	t.Parallel()

	c := mustConverter(t)
	res, err := c.Convert(context.Background(), Input{
		Markdown: "# T\n\n```mermaid\ngraph TD;\nA-->B;\n```",
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	html := string(res.HTML)
	if !strings.Contains(html, "graph TD;") {
		t.Error("mermaid source lost")
	}
	if strings.Contains(html, "language-mermaid") {
		t.Error("mermaid block must not go through the highlighter")
	}
}

func TestConvertCodeTheme(t *testing.T) {
	t.Parallel()

	c := mustConverter(t, WithCodeTheme("monokai"))
	res, err := c.Convert(context.Background(), Input{
		Markdown: "# T\n\n```go\nfunc main() {}\n```",
	})
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !strings.Contains(string(res.HTML), "chroma") {
		t.Error("missing highlighting classes")
	}
}

func TestConvertCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := mustConverter(t)
	if _, err := c.Convert(ctx, Input{Markdown: "# x"}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestConvertSequentialReuse(t *testing.T) {
	t.Parallel()

	opts := DefaultRenderOptions()
	opts.CiteStatus = true
	c := mustConverter(t, WithRenderOptions(opts))

	first, err := c.Convert(context.Background(), Input{Markdown: "[a](https://a.example)"})
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := c.Convert(context.Background(), Input{Markdown: "[b](https://b.example)"})
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if len(first.Footnotes) != 1 || len(second.Footnotes) != 1 {
		t.Errorf("footnotes leaked across conversions: %d then %d",
			len(first.Footnotes), len(second.Footnotes))
	}
	if second.Footnotes[0].Link != "https://b.example" {
		t.Errorf("stale footnote: %+v", second.Footnotes[0])
	}
}

func TestSplitLeadingHeading(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		wantTitle string
		wantRest  string
	}{
		{name: "leading h1", input: "# Title\nbody", wantTitle: "Title", wantRest: "body"},
		{name: "blank lines before h1", input: "\n\n# Title\nbody", wantTitle: "Title", wantRest: "\n\nbody"},
		{name: "no h1", input: "body first\n# Title", wantRest: "body first\n# Title"},
		{name: "h2 is not a title", input: "## Sub\nbody", wantRest: "## Sub\nbody"},
		{name: "empty", input: "", wantRest: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			title, rest := splitLeadingHeading(tt.input)
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
			if rest != tt.wantRest {
				t.Errorf("rest = %q, want %q", rest, tt.wantRest)
			}
		})
	}
}
