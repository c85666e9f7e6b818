package md2pub

import "fmt"

// Footnote is one registered citation: a dense 1-based index assigned in
// first-seen order, the citation title, and the cited link.
type Footnote struct {
	Index int
	Title string
	Link  string
}

// Session carries the mutable cross-node state of one render pass: the
// footnote registry and the list-nesting stacks. A Session must not be
// shared between concurrent renders, and must be Reset between
// sequential reuses on the same instance.
type Session struct {
	opts *RenderOptions

	footnotes []Footnote
	byLink    map[string]int

	// Parallel stacks; depth equals the current list nesting depth.
	listOrdered  []bool
	listCounters []int
}

// NewSession creates a fresh session for one document.
func NewSession(opts *RenderOptions) *Session {
	if opts == nil {
		opts = DefaultRenderOptions()
	}
	return &Session{opts: opts, byLink: map[string]int{}}
}

// Options returns the options governing this session.
func (s *Session) Options() *RenderOptions { return s.opts }

// SetOptions merges new options into the session. Changing options
// mid-render invalidates accumulated state, so the session is cleared.
func (s *Session) SetOptions(opts *RenderOptions) {
	if opts != nil {
		s.opts = opts
	}
	s.Reset()
}

// Reset clears footnotes and list state so the session can run another pass.
func (s *Session) Reset() {
	s.footnotes = nil
	s.byLink = map[string]int{}
	s.listOrdered = s.listOrdered[:0]
	s.listCounters = s.listCounters[:0]
}

// AddFootnote registers a cited link and returns its 1-based index.
// Re-citing a known link returns the original index without appending.
func (s *Session) AddFootnote(title, link string) int {
	if idx, ok := s.byLink[link]; ok {
		return idx
	}
	idx := len(s.footnotes) + 1
	s.footnotes = append(s.footnotes, Footnote{Index: idx, Title: title, Link: link})
	s.byLink[link] = idx
	return idx
}

// Footnotes returns the registry in first-seen order.
func (s *Session) Footnotes() []Footnote { return s.footnotes }

// pushList opens a nesting frame on list entry.
func (s *Session) pushList(ordered bool, start int) {
	s.listOrdered = append(s.listOrdered, ordered)
	s.listCounters = append(s.listCounters, start)
}

// popList closes the frame on list exit.
func (s *Session) popList() {
	if len(s.listOrdered) == 0 {
		return
	}
	s.listOrdered = s.listOrdered[:len(s.listOrdered)-1]
	s.listCounters = s.listCounters[:len(s.listCounters)-1]
}

// nextItemPrefix reads the top-of-stack frame and returns the textual
// prefix for the next list item, incrementing the counter when ordered.
func (s *Session) nextItemPrefix() string {
	if len(s.listOrdered) == 0 {
		return ""
	}
	top := len(s.listOrdered) - 1
	if s.listOrdered[top] {
		n := s.listCounters[top]
		s.listCounters[top]++
		return fmt.Sprintf("%d. ", n)
	}
	return "• "
}

// listDepth reports the current nesting depth.
func (s *Session) listDepth() int { return len(s.listOrdered) }
