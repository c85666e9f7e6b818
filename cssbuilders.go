package md2pub

import (
	"fmt"
	"regexp"
	"strings"
)

// cssVariableNames lists the custom properties in declaration order.
var cssVariableNames = []string{
	"--primary-color",
	"--font-family",
	"--font-size",
	"--foreground",
	"--blockquote-background",
	"--accent-color",
	"--container-background",
}

// styleVariables maps StyleConfig fields to the custom properties the
// theme stylesheets consume.
func styleVariables(s StyleConfig) map[string]string {
	return map[string]string{
		"--primary-color":         s.PrimaryColor,
		"--font-family":           s.FontFamily,
		"--font-size":             s.FontSize,
		"--foreground":            s.ForegroundColor,
		"--blockquote-background": s.BlockquoteBackground,
		"--accent-color":          s.AccentColor,
		"--container-background":  s.ContainerBackground,
	}
}

// buildCSSVariables emits the variable declaration block plus the fixed
// body and container layout rules.
func buildCSSVariables(s StyleConfig) string {
	vars := styleVariables(s)
	var b strings.Builder

	b.WriteString("body {\n")
	for _, name := range cssVariableNames {
		fmt.Fprintf(&b, "  %s: %s;\n", name, vars[name])
	}
	b.WriteString("}\n")

	b.WriteString(`
body {
  margin: 0;
  padding: 0;
  font-family: var(--font-family);
  font-size: var(--font-size);
  color: var(--foreground);
}
.container {
  margin: 0 auto;
  max-width: 677px;
  padding: 20px;
  background: var(--container-background);
}
`)
	return b.String()
}

// AssembleCSS concatenates the variable block, the shared base
// stylesheet, and the theme stylesheet, then retargets #output-scoped
// selectors at body: the content root may not carry that literal id once
// the fragment is embedded elsewhere.
func AssembleCSS(style StyleConfig, baseCSS, themeCSS string) string {
	css := buildCSSVariables(style) + "\n" + baseCSS + "\n" + themeCSS
	return RetargetOutputScope(css)
}

// #output directly followed by a class, pseudo-class, id, or attribute
// part is a compound selector: the scope prefix is stripped. A bare
// #output (typically followed by a descendant combinator) becomes body.
var (
	outputCompoundPattern = regexp.MustCompile(`#output([.:#\[])`)
	outputScopePattern    = regexp.MustCompile(`#output\b`)
)

// RetargetOutputScope rewrites #output-scoped selectors to target body.
func RetargetOutputScope(css string) string {
	css = outputCompoundPattern.ReplaceAllString(css, "$1")
	return outputScopePattern.ReplaceAllString(css, "body")
}

// sanitizeCSS escapes sequences that could break out of a <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
