package md2pub

import (
	"strings"
	"testing"
)

func TestNormalizeEmphasis(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		input        string
		wantContains []string
		wantNot      []string
	}{
		{
			name:         "cjk bold without surrounding spaces",
			input:        "周围**加粗**文本",
			wantContains: []string{"周围<strong>加粗</strong>文本"},
			wantNot:      []string{"**"},
		},
		{
			name:         "cjk italic",
			input:        "这是*强调*内容",
			wantContains: []string{"<em>强调</em>"},
			wantNot:      []string{"*强调*"},
		},
		{
			name:         "latin bold",
			input:        "some **bold** text",
			wantContains: []string{"<strong>bold</strong>"},
		},
		{
			name:         "underscore emphasis",
			input:        "前，_斜体_。后",
			wantContains: []string{"<em>斜体</em>"},
		},
		{
			name:         "plain text unchanged",
			input:        "没有强调的文本",
			wantContains: []string{"没有强调的文本"},
			wantNot:      []string{"<strong>", "<em>"},
		},
		{
			name:         "code span markers untouched",
			input:        "`**not bold**`",
			wantContains: []string{"`**not bold**`"},
			wantNot:      []string{"<strong>"},
		},
		{
			name:         "multiple spans in one line",
			input:        "甲**乙**丙**丁**戊",
			wantContains: []string{"<strong>乙</strong>", "<strong>丁</strong>"},
		},
		{
			name:         "bold across punctuation",
			input:        "**重点：这里**其余",
			wantContains: []string{"<strong>重点：这里</strong>其余"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizeEmphasis(tt.input)
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("NormalizeEmphasis(%q) = %q, missing %q", tt.input, got, want)
				}
			}
			for _, not := range tt.wantNot {
				if strings.Contains(got, not) {
					t.Errorf("NormalizeEmphasis(%q) = %q, should not contain %q", tt.input, got, not)
				}
			}
		})
	}
}

func TestNormalizeEmphasisPreservesStructure(t *testing.T) {
	t.Parallel()

	// Block structure around the emphasis must survive untouched.
	input := "# 标题\n\n段落**加粗**结尾\n\n- 列表项\n"
	got := NormalizeEmphasis(input)
	for _, want := range []string{"# 标题", "- 列表项", "<strong>加粗</strong>"} {
		if !strings.Contains(got, want) {
			t.Errorf("result %q missing %q", got, want)
		}
	}
}
