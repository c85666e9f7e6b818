package md2pub

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// platformLinkPrefix marks links internal to the publishing platform.
// They survive as plain anchors even in citation mode.
const platformLinkPrefix = "https://mp.weixin.qq.com"

// Engine converts tokenized Markdown into semantic HTML fragments using
// one rendering rule per node kind. An Engine carries per-document state
// (footnote registry, list-nesting stacks) and is not safe for concurrent
// use: one render pass is strictly sequential over a single Session.
type Engine struct {
	md      goldmark.Markdown
	session *Session
}

// NewEngine creates an Engine with a fresh session for the given options.
func NewEngine(opts *RenderOptions) *Engine {
	session := NewSession(opts)
	e := &Engine{session: session}
	e.md = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.CJK),
		goldmark.WithRendererOptions(
			renderer.WithNodeRenderers(
				util.Prioritized(&nodeRenderer{session: session, hl: newCodeHighlighter()}, 100),
			),
			html.WithHardWraps(), // soft line breaks become <br>
			html.WithXHTML(),
			html.WithUnsafe(), // emphasis spans arrive as raw inline HTML
		),
	)
	return e
}

// Session exposes the render session for post-processing.
func (e *Engine) Session() *Session { return e.session }

// Reset clears per-document state. Required between sequential renders
// on the same instance.
func (e *Engine) Reset() { e.session.Reset() }

// Render converts Markdown into an HTML fragment.
func (e *Engine) Render(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := e.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}
	return buf.String(), nil
}

// styleClass converts a style label to its CSS class: underscores become
// hyphens.
func styleClass(label string) string { return strings.ReplaceAll(label, "_", "-") }

// nodeRenderer implements goldmark's renderer.NodeRenderer with one rule
// per node kind. It registers below the default HTML renderer's priority
// so these rules win for the kinds they cover; untouched kinds (text,
// raw HTML, task-list checkboxes) keep the default behavior.
type nodeRenderer struct {
	session *Session
	hl      *codeHighlighter
}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	// blocks
	reg.Register(ast.KindHeading, r.renderHeading)
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindBlockquote, r.renderBlockquote)
	reg.Register(ast.KindFencedCodeBlock, r.renderFencedCodeBlock)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindList, r.renderList)
	reg.Register(ast.KindListItem, r.renderListItem)
	reg.Register(ast.KindThematicBreak, r.renderThematicBreak)
	// inlines
	reg.Register(ast.KindCodeSpan, r.renderCodeSpan)
	reg.Register(ast.KindEmphasis, r.renderEmphasis)
	reg.Register(ast.KindImage, r.renderImage)
	reg.Register(ast.KindLink, r.renderLink)
	reg.Register(ast.KindAutoLink, r.renderAutoLink)
	// GFM tables
	reg.Register(extast.KindTable, r.renderTable)
	reg.Register(extast.KindTableHeader, r.renderTableHeader)
	reg.Register(extast.KindTableRow, r.renderTableRow)
	reg.Register(extast.KindTableCell, r.renderTableCell)
}

func (r *nodeRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if entering {
		fmt.Fprintf(w, `<h%d class="%s" data-heading="true">`, n.Level, styleClass(fmt.Sprintf("h%d", n.Level)))
	} else {
		fmt.Fprintf(w, "</h%d>", n.Level)
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderParagraph(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	// Inside a list item the content renders inline; the wrapping <p> is
	// stripped. Image-only paragraphs pass through unwrapped because the
	// figure already supplies block-level markup.
	if isListItemContent(node) || isImageOnlyParagraph(node) {
		return ast.WalkContinue, nil
	}
	if !node.HasChildren() {
		return ast.WalkContinue, nil
	}
	if entering {
		_, _ = w.WriteString(`<p class="` + styleClass("p") + `">`)
	} else {
		_, _ = w.WriteString("</p>")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderBlockquote(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<blockquote class="` + styleClass("blockquote") + `">`)
	} else {
		_, _ = w.WriteString("</blockquote>")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderFencedCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	r.hl.writeCodeBlock(w, string(n.Language(source)), blockLines(node, source), r.session.opts)
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	r.hl.writeCodeBlock(w, "", blockLines(node, source), r.session.opts)
	return ast.WalkSkipChildren, nil
}

func (r *nodeRenderer) renderCodeSpan(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<code class="` + styleClass("codespan") + `">`)
		_, _ = w.WriteString(escapeCode(flattenSourceText(node, source)))
		return ast.WalkSkipChildren, nil
	}
	_, _ = w.WriteString("</code>")
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderEmphasis(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Emphasis)
	tag := "em"
	if n.Level >= 2 {
		tag = "strong"
	}
	if entering {
		fmt.Fprintf(w, `<%s class="%s">`, tag, styleClass(tag))
	} else {
		fmt.Fprintf(w, "</%s>", tag)
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderList(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.List)
	tag := "ul"
	if n.IsOrdered() {
		tag = "ol"
	}
	if entering {
		start := 1
		if n.IsOrdered() && n.Start > 0 {
			start = n.Start
		}
		r.session.pushList(n.IsOrdered(), start)
		fmt.Fprintf(w, `<%s class="%s">`, tag, styleClass(tag))
	} else {
		r.session.popList()
		fmt.Fprintf(w, "</%s>", tag)
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderListItem(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<li class="` + styleClass("listitem") + `">`)
		_, _ = w.WriteString(r.session.nextItemPrefix())
	} else {
		_, _ = w.WriteString("</li>")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderThematicBreak(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<hr class="` + styleClass("hr") + `" />`)
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderImage(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.Image)
	alt := flattenSourceText(n, source)
	title := string(n.Title)

	_, _ = w.WriteString(`<figure class="` + styleClass("figure") + `">`)
	_, _ = w.WriteString(`<img class="` + styleClass("image") + `" src="` + attrEscape(string(n.Destination)) + `" alt="` + attrEscape(alt) + `"`)
	if title != "" {
		_, _ = w.WriteString(` title="` + attrEscape(title) + `"`)
	}
	_, _ = w.WriteString(" />")
	if caption := resolveLegend(r.session.opts.Legend, alt, title); caption != "" {
		_, _ = w.WriteString(`<figcaption class="` + styleClass("figcaption") + `">` + htmlEscape(caption) + `</figcaption>`)
	}
	_, _ = w.WriteString("</figure>")
	return ast.WalkSkipChildren, nil
}

// resolveLegend picks the image caption per the legend policy: the policy
// splits on "-" into ordered tokens and the first token with a non-empty
// value wins. "none" (and any unmatched token) yields no caption.
func resolveLegend(policy, alt, title string) string {
	for token := range strings.SplitSeq(policy, "-") {
		switch token {
		case "alt":
			if alt != "" {
				return alt
			}
		case "title":
			if title != "" {
				return title
			}
		}
	}
	return ""
}

func (r *nodeRenderer) renderLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Link)
	dest := string(n.Destination)
	label := flattenSourceText(n, source)

	// Platform-internal links pass through unmodified.
	if strings.HasPrefix(dest, platformLinkPrefix) {
		r.writeAnchor(w, n, entering)
		return ast.WalkContinue, nil
	}

	// A link whose visible text is its URL renders as plain text, in both
	// citation and non-citation modes.
	if label == dest {
		if entering {
			_, _ = w.WriteString(htmlEscape(dest))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	}

	if r.session.opts.CiteStatus {
		if !entering {
			title := string(n.Title)
			if title == "" {
				title = label
			}
			idx := r.session.AddFootnote(title, dest)
			fmt.Fprintf(w, `<sup class="%s">[%d]</sup>`, styleClass("footnote_ref"), idx)
		}
		return ast.WalkContinue, nil
	}

	r.writeAnchor(w, n, entering)
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) writeAnchor(w util.BufWriter, n *ast.Link, entering bool) {
	if !entering {
		_, _ = w.WriteString("</a>")
		return
	}
	_, _ = w.WriteString(`<a class="` + styleClass("link") + `" href="` + attrEscape(string(n.Destination)) + `"`)
	if len(n.Title) > 0 {
		_, _ = w.WriteString(` title="` + attrEscape(string(n.Title)) + `"`)
	}
	_, _ = w.WriteString(">")
}

func (r *nodeRenderer) renderAutoLink(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	// Autolink text always equals its URL, so it is unwrapped to plain text.
	if entering {
		n := node.(*ast.AutoLink)
		_, _ = w.WriteString(htmlEscape(string(n.URL(source))))
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderTable(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<section class="` + styleClass("table_container") + `"><table class="` + styleClass("table") + `">`)
	} else {
		_, _ = w.WriteString("</table></section>")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderTableHeader(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<thead class="` + styleClass("thead") + `"><tr>`)
	} else {
		_, _ = w.WriteString("</tr></thead>")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderTableRow(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if entering {
		_, _ = w.WriteString(`<tr class="` + styleClass("tr") + `">`)
	} else {
		_, _ = w.WriteString("</tr>")
	}
	return ast.WalkContinue, nil
}

func (r *nodeRenderer) renderTableCell(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*extast.TableCell)
	tag := "td"
	if node.Parent() != nil && node.Parent().Kind() == extast.KindTableHeader {
		tag = "th"
	}
	if entering {
		fmt.Fprintf(w, `<%s class="%s"`, tag, styleClass(tag))
		if n.Alignment != extast.AlignNone {
			fmt.Fprintf(w, ` style="text-align:%s"`, n.Alignment.String())
		}
		_, _ = w.WriteString(">")
	} else {
		fmt.Fprintf(w, "</%s>", tag)
	}
	return ast.WalkContinue, nil
}

// isListItemContent reports whether node is the direct content block of a
// list item.
func isListItemContent(n ast.Node) bool {
	return n.Parent() != nil && n.Parent().Kind() == ast.KindListItem
}

// isImageOnlyParagraph reports whether every child of the paragraph is an
// image.
func isImageOnlyParagraph(n ast.Node) bool {
	if !n.HasChildren() {
		return false
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() != ast.KindImage {
			return false
		}
	}
	return true
}

// blockLines concatenates the source lines of a code block.
func blockLines(n ast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}
