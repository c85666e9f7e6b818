package md2pub

import (
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// emphasisEdit is one source-range replacement produced by the tree walk.
type emphasisEdit struct {
	start, stop int
	replacement string
}

// NormalizeEmphasis rewrites strong and emphasis spans as literal
// <strong>/<em> inline HTML so the downstream renderer cannot mis-scope
// emphasis markers sitting directly against CJK text.
//
// The body is parsed once with a CJK-aware grammar. Every outermost
// emphasis node is replaced by splicing its flattened text content,
// wrapped in the literal tag, back into the source at the node's
// offsets. Nothing else in the source is touched, so CJK punctuation
// round-trips as literal characters with no entity escaping.
func NormalizeEmphasis(source string) string {
	src := []byte(source)
	md := goldmark.New(goldmark.WithExtensions(extension.GFM, extension.CJK))
	root := md.Parser().Parse(text.NewReader(src))

	var edits []emphasisEdit
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Kind() != ast.KindEmphasis {
			return ast.WalkContinue, nil
		}
		em := n.(*ast.Emphasis)
		start, stop, ok := emphasisSpan(em, src)
		if !ok {
			return ast.WalkSkipChildren, nil
		}
		tag := "em"
		if em.Level >= 2 {
			tag = "strong"
		}
		edits = append(edits, emphasisEdit{
			start:       start,
			stop:        stop,
			replacement: "<" + tag + ">" + flattenSourceText(em, src) + "</" + tag + ">",
		})
		// Nested emphasis is flattened into the outermost span.
		return ast.WalkSkipChildren, nil
	})

	if len(edits) == 0 {
		return source
	}

	// Apply back to front so earlier offsets stay valid.
	sort.Slice(edits, func(i, j int) bool { return edits[i].start > edits[j].start })
	out := source
	for _, e := range edits {
		if e.start < 0 || e.stop > len(out) || e.start >= e.stop {
			continue
		}
		out = out[:e.start] + e.replacement + out[e.stop:]
	}
	return out
}

// emphasisSpan locates the full source range of an emphasis node,
// delimiters included. The node's text segments give the inner range;
// the marker run on each side is consumed symmetrically, which also
// covers nested spans like ***strong em*** whose markers stack.
func emphasisSpan(n ast.Node, src []byte) (start, stop int, ok bool) {
	first, last := -1, -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, isText := c.(*ast.Text); isText {
			if first == -1 || t.Segment.Start < first {
				first = t.Segment.Start
			}
			if t.Segment.Stop > last {
				last = t.Segment.Stop
			}
		}
		return ast.WalkContinue, nil
	})
	if first < 0 || last <= first || last > len(src) {
		return 0, 0, false
	}

	before := 0
	for first-before > 0 && isEmphasisMarker(src[first-before-1]) {
		before++
	}
	after := 0
	for last+after < len(src) && isEmphasisMarker(src[last+after]) {
		after++
	}
	markers := min(before, after)
	if markers == 0 {
		return 0, 0, false
	}
	return first - markers, last + markers, true
}

func isEmphasisMarker(b byte) bool { return b == '*' || b == '_' }

// flattenSourceText concatenates the source text of every text descendant,
// dropping nested markup.
func flattenSourceText(n ast.Node, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if t, isText := c.(*ast.Text); isText {
			b.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
