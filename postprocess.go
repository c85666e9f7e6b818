package md2pub

import (
	"fmt"
	"strings"
)

// PostProcess assembles the final fragment around the rendered body:
// reading-time banner, footnote block, fixed auxiliary styles, and the
// root output section.
func PostProcess(body string, session *Session, words, minutes int) string {
	opts := session.Options()
	var b strings.Builder

	if opts.CountStatus && words > 0 {
		b.WriteString(buildReadingBanner(words, minutes))
	}
	b.WriteString(body)
	if notes := session.Footnotes(); len(notes) > 0 {
		b.WriteString(buildFootnoteBlock(notes))
	}
	b.WriteString(buildAuxStyles(opts.MacCodeBlock))

	open := `<section id="output">`
	if opts.ThemeMode == ThemeModeDark {
		open = `<section id="output" class="dark">`
	}
	return open + b.String() + "</section>"
}

// buildReadingBanner emits the word-count banner shown before the body.
func buildReadingBanner(words, minutes int) string {
	return fmt.Sprintf(
		`<blockquote class="blockquote"><p class="p">字数 %d，阅读大约需 %d 分钟</p></blockquote>`,
		words, minutes)
}

// buildFootnoteBlock renders the citation list appended after the body.
// Entries are sequential from [1]; an entry whose link equals its title
// is shown without repeating the link.
func buildFootnoteBlock(notes []Footnote) string {
	var b strings.Builder
	b.WriteString(`<h4 class="h4" data-heading="true">引用链接</h4><p class="footnotes">`)
	for i, n := range notes {
		if i > 0 {
			b.WriteString("<br/>")
		}
		if n.Title == n.Link {
			fmt.Fprintf(&b, "[%d] %s", n.Index, htmlEscape(n.Title))
		} else {
			fmt.Fprintf(&b, "[%d] %s: <em>%s</em>", n.Index, htmlEscape(n.Title), htmlEscape(n.Link))
		}
	}
	b.WriteString("</p>")
	return b.String()
}

// buildAuxStyles appends the fixed decorative style blocks: the mac-sign
// visibility toggle and the heading-embedded strong color inherit.
func buildAuxStyles(macCodeBlock bool) string {
	display := "none"
	if macCodeBlock {
		display = "flex"
	}
	return fmt.Sprintf(`<style>.code-pre .mac-sign{display:%s;}</style>`, display) +
		`<style>h1 strong,h2 strong,h3 strong,h4 strong,h5 strong,h6 strong{color:inherit;}</style>`
}
