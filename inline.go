package md2pub

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"
)

// InlineCSS moves the document's stylesheet rules onto the elements they
// match as style attributes. Publishing editors strip <style> blocks on
// paste, so every portable declaration must live inline. Rules that
// cannot be inlined stay behind in a residual <style> block: at-rules,
// pseudo-element selectors, and custom-property declarations.
func InlineCSS(doc string) (string, error) {
	root, err := html.Parse(strings.NewReader(doc))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}

	cssText := detachStyleBlocks(root)
	sheet, err := parser.Parse(cssText)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCSSParse, err)
	}

	matchers, residual := splitRules(sheet)
	inlineTree(root, matchers)

	if len(residual) > 0 {
		appendResidualStyle(root, strings.Join(residual, "\n"))
	}

	var b strings.Builder
	if err := html.Render(&b, root); err != nil {
		return "", fmt.Errorf("%w: %v", ErrHTMLParse, err)
	}
	return b.String(), nil
}

// ruleMatcher is one parsed selector with the declarations it applies.
type ruleMatcher struct {
	sel   cascadia.Sel
	decls []*css.Declaration
	order int
}

// splitRules parses each selector and partitions the stylesheet into
// inlinable matchers and residual rule text.
func splitRules(sheet *css.Stylesheet) ([]ruleMatcher, []string) {
	var matchers []ruleMatcher
	var residual []string

	for order, rule := range sheet.Rules {
		if rule.Kind == css.AtRule {
			residual = append(residual, rule.String())
			continue
		}

		inlinable, custom := partitionDeclarations(rule.Declarations)
		for _, selText := range rule.Selectors {
			sel, err := cascadia.ParseWithPseudoElement(selText)
			if err != nil {
				residual = append(residual, formatRule(selText, rule.Declarations))
				continue
			}
			if sel.PseudoElement() != "" {
				residual = append(residual, formatRule(selText, rule.Declarations))
				continue
			}
			if len(custom) > 0 {
				residual = append(residual, formatRule(selText, custom))
			}
			if len(inlinable) > 0 {
				matchers = append(matchers, ruleMatcher{sel: sel, decls: inlinable, order: order})
			}
		}
	}
	return matchers, residual
}

// partitionDeclarations splits off custom-property declarations. Those
// never become style attributes: they are resolved textually after
// rendering, and the definitions must survive in a <style> block until
// then.
func partitionDeclarations(decls []*css.Declaration) (inlinable, custom []*css.Declaration) {
	for _, d := range decls {
		if strings.HasPrefix(d.Property, "--") {
			custom = append(custom, d)
		} else {
			inlinable = append(inlinable, d)
		}
	}
	return inlinable, custom
}

func formatRule(selector string, decls []*css.Declaration) string {
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" { ")
	for _, d := range decls {
		b.WriteString(d.StringWithImportant(d.Important))
		b.WriteString(" ")
	}
	b.WriteString("}")
	return b.String()
}

func inlineTree(n *html.Node, matchers []ruleMatcher) {
	if n.Type == html.ElementNode {
		applyMatchers(n, matchers)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		inlineTree(c, matchers)
	}
}

// declCandidate is one declaration competing for a property slot.
type declCandidate struct {
	value     string
	important bool
	spec      cascadia.Specificity
	order     int
}

// beats reports whether a wins the cascade over b: importance first,
// then specificity, then source order.
func (a declCandidate) beats(b declCandidate) bool {
	if a.important != b.important {
		return a.important
	}
	if a.spec != b.spec {
		return b.spec.Less(a.spec)
	}
	return a.order >= b.order
}

// inlineSpecificity ranks a pre-existing style attribute above any
// selector match of equal importance.
var inlineSpecificity = cascadia.Specificity{1 << 14, 0, 0}

func applyMatchers(n *html.Node, matchers []ruleMatcher) {
	winners := make(map[string]declCandidate)
	var propOrder []string

	record := func(prop string, cand declCandidate) {
		cur, ok := winners[prop]
		if !ok {
			winners[prop] = cand
			propOrder = append(propOrder, prop)
			return
		}
		if cand.beats(cur) {
			winners[prop] = cand
		}
	}

	for _, m := range matchers {
		if !m.sel.Match(n) {
			continue
		}
		spec := m.sel.Specificity()
		for _, d := range m.decls {
			record(d.Property, declCandidate{
				value:     d.Value,
				important: d.Important,
				spec:      spec,
				order:     m.order,
			})
		}
	}
	if len(winners) == 0 {
		return
	}

	for _, d := range inlineDeclarations(getAttr(n, "style")) {
		record(d.prop, declCandidate{
			value:     d.value,
			important: d.important,
			spec:      inlineSpecificity,
			order:     len(matchers),
		})
	}

	var b strings.Builder
	for i, prop := range propOrder {
		if i > 0 {
			b.WriteString(";")
		}
		w := winners[prop]
		b.WriteString(prop)
		b.WriteString(":")
		b.WriteString(w.value)
		if w.important {
			b.WriteString(" !important")
		}
	}
	setAttr(n, "style", b.String())
}

type inlineDecl struct {
	prop      string
	value     string
	important bool
}

// inlineDeclarations parses the declarations of a style attribute value.
func inlineDeclarations(style string) []inlineDecl {
	var decls []inlineDecl
	for part := range strings.SplitSeq(style, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.TrimSpace(prop)
		value = strings.TrimSpace(value)
		if prop == "" || value == "" {
			continue
		}
		important := false
		if rest, found := strings.CutSuffix(value, "!important"); found {
			important = true
			value = strings.TrimSpace(rest)
		}
		decls = append(decls, inlineDecl{prop: prop, value: value, important: important})
	}
	return decls
}

func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// detachStyleBlocks removes every <style> element from the tree and
// returns their concatenated text.
func detachStyleBlocks(root *html.Node) string {
	var blocks []string
	var styleNodes []*html.Node

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "style" {
			var text strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					text.WriteString(c.Data)
				}
			}
			blocks = append(blocks, text.String())
			styleNodes = append(styleNodes, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	for _, n := range styleNodes {
		n.Parent.RemoveChild(n)
	}
	return strings.Join(blocks, "\n")
}

// appendResidualStyle places the residual rules back as a single <style>
// element in <head>, or under the root when no head exists.
func appendResidualStyle(root *html.Node, cssText string) {
	style := &html.Node{Type: html.ElementNode, Data: "style"}
	style.AppendChild(&html.Node{Type: html.TextNode, Data: "\n" + sanitizeCSS(cssText) + "\n"})

	if head := findElement(root, "head"); head != nil {
		head.AppendChild(style)
		return
	}
	root.AppendChild(style)
}

func findElement(n *html.Node, name string) *html.Node {
	if n.Type == html.ElementNode && n.Data == name {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, name); found != nil {
			return found
		}
	}
	return nil
}

// Custom-property syntax handled textually after rendering. Values never
// contain braces, semicolons, or parentheses, which the theme
// stylesheets are written to guarantee.
var (
	cssVarDefPattern = regexp.MustCompile(`(--[A-Za-z0-9_-]+)\s*:\s*([^;}{]+);?`)
	cssVarUsePattern = regexp.MustCompile(`var\(\s*(--[A-Za-z0-9_-]+)\s*(?:,\s*([^()]+))?\)`)
)

// maxVarResolutionPasses bounds substitution of variables that reference
// other variables.
const maxVarResolutionPasses = 10

// NormalizeCSSVariables substitutes every var() reference in the
// rendered document with its declared value, then strips the
// declarations themselves. Publishing surfaces ignore custom properties,
// so none may survive. The first declaration of a name wins; resolution
// is scope-free.
func NormalizeCSSVariables(doc string) string {
	defs := make(map[string]string)
	for _, m := range cssVarDefPattern.FindAllStringSubmatch(doc, -1) {
		if _, ok := defs[m[1]]; !ok {
			defs[m[1]] = strings.TrimSpace(m[2])
		}
	}

	for range maxVarResolutionPasses {
		next := cssVarUsePattern.ReplaceAllStringFunc(doc, func(use string) string {
			m := cssVarUsePattern.FindStringSubmatch(use)
			if v, ok := defs[m[1]]; ok {
				return v
			}
			if m[2] != "" {
				return strings.TrimSpace(m[2])
			}
			return use
		})
		if next == doc {
			break
		}
		doc = next
	}

	return cssVarDefPattern.ReplaceAllString(doc, "")
}
