package md2pub

import (
	"fmt"
	"strings"
)

// documentTemplate is the standalone HTML5 shell. Slots: title, optional
// meta tags, assembled CSS, optional code-theme style block, content.
const documentTemplate = `<!DOCTYPE html>
<html lang="zh">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1.0" />
<title>%s</title>
%s<style>
%s
</style>
%s</head>
<body>
<div class="container">
%s
</div>
</body>
</html>`

// DocumentMeta carries the shell metadata resolved from front matter.
type DocumentMeta struct {
	Title       string
	Author      string
	Description string
}

// BuildDocument wraps the rendered fragment and the assembled CSS into a
// complete standalone HTML document.
func BuildDocument(meta DocumentMeta, css, codeThemeCSS, fragment string) string {
	var metaTags strings.Builder
	if meta.Author != "" {
		metaTags.WriteString(`<meta name="author" content="` + attrEscape(meta.Author) + "\" />\n")
	}
	if meta.Description != "" {
		metaTags.WriteString(`<meta name="description" content="` + attrEscape(meta.Description) + "\" />\n")
	}

	var codeStyle string
	if codeThemeCSS != "" {
		codeStyle = "<style>\n" + sanitizeCSS(codeThemeCSS) + "\n</style>\n"
	}

	return fmt.Sprintf(documentTemplate,
		htmlEscape(meta.Title),
		metaTags.String(),
		sanitizeCSS(css),
		codeStyle,
		fragment,
	)
}

// quotePairs are the wrapping quote characters stripped from metadata
// values: ASCII plus CJK curly and corner quotes.
var quotePairs = [][2]string{
	{`"`, `"`},
	{"'", "'"},
	{"“", "”"}, // “ ”
	{"‘", "’"}, // ‘ ’
	{"「", "」"}, // 「 」
}

// StripWrappingQuotes removes one pair of matching wrapping quotes.
func StripWrappingQuotes(s string) string {
	for _, p := range quotePairs {
		if len(s) >= len(p[0])+len(p[1]) && strings.HasPrefix(s, p[0]) && strings.HasSuffix(s, p[1]) {
			return strings.TrimSuffix(strings.TrimPrefix(s, p[0]), p[1])
		}
	}
	return s
}
