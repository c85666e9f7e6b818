package md2pub

import (
	"strings"
	"testing"
)

func TestPostProcess(t *testing.T) {
	t.Parallel()

	t.Run("wraps body in output section", func(t *testing.T) {
		t.Parallel()
		session := NewSession(nil)
		got := PostProcess("<p>body</p>", session, 0, 0)
		if !strings.HasPrefix(got, `<section id="output">`) {
			t.Errorf("missing output section prefix: %s", got)
		}
		if !strings.HasSuffix(got, "</section>") {
			t.Errorf("missing closing section: %s", got)
		}
		if !strings.Contains(got, "<p>body</p>") {
			t.Errorf("body lost: %s", got)
		}
	})

	t.Run("dark mode adds class", func(t *testing.T) {
		t.Parallel()
		opts := DefaultRenderOptions()
		opts.ThemeMode = ThemeModeDark
		session := NewSession(opts)
		got := PostProcess("x", session, 0, 0)
		if !strings.Contains(got, `<section id="output" class="dark">`) {
			t.Errorf("missing dark class: %s", got)
		}
	})

	t.Run("word count banner", func(t *testing.T) {
		t.Parallel()
		opts := DefaultRenderOptions()
		opts.CountStatus = true
		session := NewSession(opts)
		got := PostProcess("<p>x</p>", session, 450, 2)
		if !strings.Contains(got, "字数 450") || !strings.Contains(got, "2 分钟") {
			t.Errorf("missing banner values: %s", got)
		}
		// Banner precedes the body.
		if strings.Index(got, "字数") > strings.Index(got, "<p>x</p>") {
			t.Errorf("banner must precede body: %s", got)
		}
	})

	t.Run("no banner without count status", func(t *testing.T) {
		t.Parallel()
		session := NewSession(nil)
		got := PostProcess("x", session, 450, 2)
		if strings.Contains(got, "字数") {
			t.Errorf("unexpected banner: %s", got)
		}
	})

	t.Run("no banner for empty body", func(t *testing.T) {
		t.Parallel()
		opts := DefaultRenderOptions()
		opts.CountStatus = true
		session := NewSession(opts)
		got := PostProcess("", session, 0, 0)
		if strings.Contains(got, "字数") {
			t.Errorf("unexpected banner for zero words: %s", got)
		}
	})

	t.Run("footnote block", func(t *testing.T) {
		t.Parallel()
		session := NewSession(nil)
		session.AddFootnote("甲站", "https://a.example")
		session.AddFootnote("https://b.example", "https://b.example")
		got := PostProcess("x", session, 0, 0)

		if !strings.Contains(got, "引用链接") {
			t.Errorf("missing footnote heading: %s", got)
		}
		if !strings.Contains(got, "[1] 甲站: <em>https://a.example</em>") {
			t.Errorf("missing titled entry: %s", got)
		}
		// Title equal to link is shown once.
		if !strings.Contains(got, "[2] https://b.example") ||
			strings.Contains(got, "[2] https://b.example: <em>") {
			t.Errorf("self-titled entry must not repeat the link: %s", got)
		}
		if !strings.Contains(got, "<br/>") {
			t.Errorf("entries must be separated by <br/>: %s", got)
		}
	})

	t.Run("mac sign toggle", func(t *testing.T) {
		t.Parallel()
		session := NewSession(nil) // defaults have MacCodeBlock on
		got := PostProcess("x", session, 0, 0)
		if !strings.Contains(got, ".code-pre .mac-sign{display:flex;}") {
			t.Errorf("missing flex toggle: %s", got)
		}

		opts := DefaultRenderOptions()
		opts.MacCodeBlock = false
		got = PostProcess("x", NewSession(opts), 0, 0)
		if !strings.Contains(got, ".code-pre .mac-sign{display:none;}") {
			t.Errorf("missing none toggle: %s", got)
		}
	})

	t.Run("heading strong inherits color", func(t *testing.T) {
		t.Parallel()
		got := PostProcess("x", NewSession(nil), 0, 0)
		if !strings.Contains(got, "h1 strong") || !strings.Contains(got, "color:inherit") {
			t.Errorf("missing heading strong style: %s", got)
		}
	})
}
