package md2pub

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/util"
)

// mermaidPrefix marks fenced blocks that render client-side as diagrams.
// They must never receive highlighting markup.
const mermaidPrefix = "mermaid"

// codeHighlighter renders fenced and indented code blocks: mermaid
// passthrough, chroma class-based highlighting for registered languages,
// and a plain fallback tagged with the declared language name so a later
// enrichment step could retroactively highlight it.
type codeHighlighter struct {
	formatter *chromahtml.Formatter
}

func newCodeHighlighter() *codeHighlighter {
	return &codeHighlighter{
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}
}

// writeCodeBlock emits the full markup for one code block.
func (h *codeHighlighter) writeCodeBlock(w util.BufWriter, lang, code string, opts *RenderOptions) {
	code = strings.TrimSuffix(code, "\n")

	if strings.HasPrefix(lang, mermaidPrefix) {
		_, _ = w.WriteString(`<pre class="mermaid">`)
		_, _ = w.WriteString(htmlEscape(code))
		_, _ = w.WriteString("</pre>")
		return
	}

	lexer := lexers.Get(lang)
	registered := lexer != nil
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	langClass := lang
	if langClass == "" {
		langClass = "text"
	}

	_, _ = w.WriteString(`<pre class="` + styleClass("code_pre") + `">`)
	if opts.MacCodeBlock {
		_, _ = w.WriteString(`<span class="` + styleClass("mac_sign") + `"><span></span><span></span><span></span></span>`)
	}
	_, _ = w.WriteString(`<code class="` + styleClass("code") + ` chroma language-` + attrEscape(langClass) + `"`)
	if !registered && lang != "" {
		// Unhighlighted, but tagged for potential later enrichment.
		_, _ = w.WriteString(` data-language="` + attrEscape(lang) + `"`)
	}
	_, _ = w.WriteString(">")
	h.writeHighlighted(w, lexer, code, opts.ShowLineNumber)
	_, _ = w.WriteString("</code></pre>")
}

// writeHighlighted tokenizes and formats the source. When the gutter is
// enabled, tokens are split per line so highlight spans never straddle a
// line-number marker. Tokenizer or formatter failures degrade to escaped
// plain text.
func (h *codeHighlighter) writeHighlighted(w util.BufWriter, lexer chroma.Lexer, code string, lineNumbers bool) {
	iter, err := lexer.Tokenise(nil, code)
	if err != nil {
		_, _ = w.WriteString(htmlEscape(code))
		return
	}

	if !lineNumbers {
		if err := h.formatter.Format(w, styles.Fallback, iter); err != nil {
			_, _ = w.WriteString(htmlEscape(code))
		}
		return
	}

	for i, line := range chroma.SplitTokensIntoLines(iter.Tokens()) {
		fmt.Fprintf(w, `<span class="%s">%d</span>`, styleClass("code_line_number"), i+1)
		if err := h.formatter.Format(w, styles.Fallback, chroma.Literator(line...)); err != nil {
			_, _ = w.WriteString(htmlEscape(code))
			return
		}
	}
}
