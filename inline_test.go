package md2pub

import (
	"strings"
	"testing"
)

func wrapDoc(css, body string) string {
	return `<!DOCTYPE html><html><head><style>` + css + `</style></head><body>` + body + `</body></html>`
}

func TestInlineCSS(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		css          string
		body         string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "declaration moves onto matching element",
			css:          "p { color: red; }",
			body:         "<p>hi</p>",
			wantContains: []string{`<p style="color:red">hi</p>`},
			wantNot:      []string{"<style>"},
		},
		{
			name:         "higher specificity wins",
			css:          "p { color: red; } p.x { color: blue; }",
			body:         `<p class="x">hi</p>`,
			wantContains: []string{`style="color:blue"`},
		},
		{
			name:         "important beats specificity",
			css:          "p.x { color: blue; } p { color: red !important; }",
			body:         `<p class="x">hi</p>`,
			wantContains: []string{"color:red !important"},
		},
		{
			name:         "later rule wins at equal specificity",
			css:          "p { color: red; } p { color: blue; }",
			body:         "<p>hi</p>",
			wantContains: []string{`style="color:blue"`},
		},
		{
			name:         "existing inline style wins",
			css:          "p { color: red; }",
			body:         `<p style="color:green">hi</p>`,
			wantContains: []string{`style="color:green"`},
			wantNot:      []string{"color:red"},
		},
		{
			name:         "pseudo-element rule stays in residual style",
			css:          "p { margin: 0; } p::first-line { color: blue; }",
			wantNot:      []string{},
			body:         "<p>hi</p>",
			wantContains: []string{`style="margin:0"`, "::first-line", "<style>"},
		},
		{
			name:         "at-rule stays in residual style",
			css:          "@media print { p { display: none; } }",
			body:         "<p>hi</p>",
			wantContains: []string{"@media print"},
		},
		{
			name:         "custom properties are never inlined",
			css:          "body { --c: red; } p { color: var(--c); }",
			body:         "<p>hi</p>",
			wantContains: []string{`style="color:var(--c)"`, "--c: red"},
		},
		{
			name:         "descendant selector",
			css:          "blockquote p { color: gray; }",
			body:         "<blockquote><p>hi</p></blockquote><p>out</p>",
			wantContains: []string{`<p style="color:gray">hi</p>`, "<p>out</p>"},
		},
		{
			name:         "multiple properties keep first-seen order",
			css:          "p { color: red; margin: 0; }",
			body:         "<p>hi</p>",
			wantContains: []string{`style="color:red;margin:0"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := InlineCSS(wrapDoc(tt.css, tt.body))
			if err != nil {
				t.Fatalf("InlineCSS: %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q in:\n%s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("should not contain %q:\n%s", not, got)
				}
			}
		})
	}
}

func TestNormalizeCSSVariables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "substitutes declared value",
			input:        `<style>body { --a: red; }</style><p style="color:var(--a)">x</p>`,
			wantContains: []string{`style="color:red"`},
			wantNot:      []string{"var(", "--a:"},
		},
		{
			name:         "fallback used for undeclared variable",
			input:        `<p style="color:var(--missing, blue)">x</p>`,
			wantContains: []string{`style="color:blue"`},
			wantNot:      []string{"var("},
		},
		{
			name:         "undeclared without fallback survives",
			input:        `<p style="color:var(--missing)">x</p>`,
			wantContains: []string{"var(--missing)"},
		},
		{
			name:         "chained variables resolve",
			input:        `<style>body { --a: var(--b); --b: red; }</style><p style="color:var(--a)">x</p>`,
			wantContains: []string{`style="color:red"`},
			wantNot:      []string{"var("},
		},
		{
			name:         "first declaration wins",
			input:        `<style>body { --a: red; } div { --a: blue; }</style><p style="color:var(--a)">x</p>`,
			wantContains: []string{`style="color:red"`},
		},
		{
			name:         "value with quotes survives",
			input:        `<style>body { --f: 'PingFang SC', sans-serif; }</style><p style="font-family:var(--f)">x</p>`,
			wantContains: []string{`font-family:'PingFang SC', sans-serif`},
			wantNot:      []string{"var("},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizeCSSVariables(tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q in:\n%s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("should not contain %q:\n%s", not, got)
				}
			}
		})
	}
}

func TestInlineDeclarations(t *testing.T) {
	t.Parallel()

	decls := inlineDeclarations("color: red; margin:0 ; border: 1px solid blue !important;;")
	if len(decls) != 3 {
		t.Fatalf("decls = %+v, want 3", decls)
	}
	if decls[0].prop != "color" || decls[0].value != "red" || decls[0].important {
		t.Errorf("first = %+v", decls[0])
	}
	if decls[2].prop != "border" || decls[2].value != "1px solid blue" || !decls[2].important {
		t.Errorf("third = %+v", decls[2])
	}
}
