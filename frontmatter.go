package md2pub

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/alnah/go-md2pub/internal/yamlutil"
)

// ErrMalformedFrontMatter reports a metadata block that could not be
// parsed. It is never fatal: callers log it and treat the whole input as
// the body.
var ErrMalformedFrontMatter = errors.New("malformed front matter")

// wordsPerMinute is the reading speed used by the reading-time estimate.
// Tuned for mixed CJK/Latin prose where each CJK rune counts as a word.
const wordsPerMinute = 300

// FrontMatter is the parsed metadata mapping of a document.
type FrontMatter map[string]any

// String returns the value for key if it is a scalar string, else "".
func (m FrontMatter) String(key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// SplitFrontMatter separates a leading YAML metadata block from the body.
// Inputs without a block return an empty mapping and the body unchanged.
// A malformed block is non-fatal: the whole input becomes the body, the
// mapping stays empty, and an ErrMalformedFrontMatter is returned for the
// caller to log.
func SplitFrontMatter(content string) (FrontMatter, string, error) {
	block, body, found := extractFrontMatterBlock(content)
	if !found {
		return FrontMatter{}, content, nil
	}

	meta := FrontMatter{}
	if err := yamlutil.Unmarshal([]byte(block), &meta); err != nil {
		return FrontMatter{}, content, fmt.Errorf("%w: %v", ErrMalformedFrontMatter, err)
	}
	return meta, body, nil
}

// extractFrontMatterBlock returns the raw YAML text between the opening
// and closing "---" lines, and the remaining body. An unclosed block does
// not count as front matter.
func extractFrontMatterBlock(content string) (block, body string, found bool) {
	rest, ok := strings.CutPrefix(content, "---\n")
	if !ok {
		rest, ok = strings.CutPrefix(content, "---\r\n")
	}
	if !ok {
		return "", content, false
	}

	lines := strings.SplitAfter(rest, "\n")
	offset := 0
	for _, line := range lines {
		if strings.TrimRight(line, "\r\n") == "---" {
			return rest[:offset], rest[offset+len(line):], true
		}
		offset += len(line)
	}
	return "", content, false
}

// CountWords estimates the word count of a Markdown body. Each CJK rune
// counts as one word; Latin-script runs count by whitespace separation.
func CountWords(body string) int {
	words := 0
	inWord := false
	for _, r := range body {
		switch {
		case isCJK(r):
			if inWord {
				words++
				inWord = false
			}
			words++
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			inWord = true
		default:
			if inWord {
				words++
				inWord = false
			}
		}
	}
	if inWord {
		words++
	}
	return words
}

// ReadingTime returns the rounded-up reading estimate in minutes.
// Non-empty bodies read for at least one minute.
func ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// isCJK reports whether r belongs to a Chinese, Japanese, or Korean script.
func isCJK(r rune) bool {
	return unicode.Is(unicode.Han, r) ||
		unicode.Is(unicode.Hangul, r) ||
		unicode.Is(unicode.Hiragana, r) ||
		unicode.Is(unicode.Katakana, r)
}
