package md2pub

import (
	"strings"
	"testing"
)

func TestRepairNestedLists(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:  "sub-ul moves out of li",
			input: `<ul class="ul"><li class="listitem">a<ul class="ul"><li class="listitem">b</li></ul></li></ul>`,
			wantContains: []string{
				`<li class="listitem">a</li><ul class="ul"><li class="listitem">b</li></ul>`,
			},
		},
		{
			name:  "sub-ol moves out of li",
			input: `<ol class="ol"><li class="listitem">a<ol class="ol"><li class="listitem">b</li></ol></li></ol>`,
			wantContains: []string{
				`<li class="listitem">a</li><ol class="ol"><li class="listitem">b</li></ol>`,
			},
		},
		{
			name:  "whitespace before closing li",
			input: "<ul><li>a<ul><li>b</li></ul>\n  </li></ul>",
			wantContains: []string{
				"<li>a</li><ul><li>b</li></ul>",
			},
		},
		{
			name:         "already flat is unchanged",
			input:        `<ul><li>a</li></ul><ul><li>b</li></ul>`,
			wantContains: []string{`<ul><li>a</li></ul><ul><li>b</li></ul>`},
		},
		{
			name:         "plain html untouched",
			input:        `<p>no lists here</p>`,
			wantContains: []string{`<p>no lists here</p>`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := RepairNestedLists(tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("output missing %q:\n%s", want, got)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("output should not contain %q:\n%s", not, got)
				}
			}
		})
	}
}

func TestRepairNestedListsIdempotent(t *testing.T) {
	t.Parallel()

	input := `<ul><li>a<ul><li>b<ul><li>c</li></ul></li></ul></li></ul>`
	once := RepairNestedLists(input)
	twice := RepairNestedLists(once)
	if once != twice {
		t.Errorf("not idempotent:\nonce:  %s\ntwice: %s", once, twice)
	}
	if strings.Contains(twice, "<ul><li>a<ul>") {
		t.Errorf("nesting survived: %s", twice)
	}
}
