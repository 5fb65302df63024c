package browser

import (
	"sshgo/pkg/debug"
	"sshgo/pkg/hosttree"
)

// Mode is the state of a browsing session.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeExited
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSearch:
		return "search"
	case ModeExited:
		return "exited"
	default:
		return "unknown"
	}
}

// LaunchRequest asks the caller to hand the terminal over to a connection client.
type LaunchRequest struct {
	Line    int      // source line of the selected leaf
	Text    string   // full leaf text, comment included
	Command string   // leaf text without its '#' comment
	Args    []string // whitespace-split Command
}

// Outcome is the result of activating the highlighted row.
type Outcome struct {
	// Toggled is set when a group was expanded or collapsed.
	Toggled bool
	// Launch is set when a leaf was selected; the session is then exited.
	Launch *LaunchRequest
}

// Session is the whole interactive state: the tree, the cursor, and the search keyword.
// It is not safe for concurrent use; the UI loop owns it.
type Session struct {
	tree    *hosttree.Tree
	view    Viewport
	mode    Mode
	keyword string
}

// NewSession starts a session in normal mode with the cursor on the first row.
func NewSession(tree *hosttree.Tree) *Session {
	if tree == nil {
		tree = &hosttree.Tree{}
	}
	return &Session{tree: tree}
}

func (s *Session) Tree() *hosttree.Tree { return s.tree }
func (s *Session) Mode() Mode           { return s.mode }
func (s *Session) Keyword() string      { return s.keyword }
func (s *Session) Viewport() Viewport   { return s.view }
func (s *Session) Searching() bool      { return s.mode == ModeSearch }

// Lines returns the current display list.
func (s *Session) Lines() []hosttree.NodeID {
	return s.tree.Lines(s.keyword, s.Searching())
}

// EnterSearch switches to search mode with keyword, replacing any previous keyword.
// The cursor is not reset; the next frame clamps it to the result list.
func (s *Session) EnterSearch(keyword string) {
	if s.mode == ModeExited {
		return
	}
	s.keyword = keyword
	s.mode = ModeSearch
	debug.Log("search %q: %d matches", keyword, len(s.Lines()))
}

// Exit leaves search mode, or ends the session when not searching.
// It reports whether the session is now exited.
func (s *Session) Exit() bool {
	switch s.mode {
	case ModeSearch:
		s.keyword = ""
		s.mode = ModeNormal
		return false
	default:
		s.mode = ModeExited
		return true
	}
}

// Frame is everything a renderer needs for one paint.
type Frame struct {
	Lines     []hosttree.NodeID // whole display list
	Viewport  Viewport          // clamped offsets
	Start     int               // first painted index into Lines
	End       int               // one past the last painted index
	ScrollBar ScrollBar
	HasBar    bool
	Searching bool
	Keyword   string
}

// Frame clamps the cursor against the current display list and returns the page to paint.
func (s *Session) Frame(height int) Frame {
	lines := s.Lines()
	s.view.Clamp(len(lines), height)
	start, end := s.view.Page(len(lines), height)
	sb, ok := ComputeScrollBar(len(lines), height, s.view)
	return Frame{
		Lines:     lines,
		Viewport:  s.view,
		Start:     start,
		End:       end,
		ScrollBar: sb,
		HasBar:    ok,
		Searching: s.Searching(),
		Keyword:   s.keyword,
	}
}

// Selected returns the highlighted node, if any.
func (s *Session) Selected(height int) (hosttree.NodeID, bool) {
	lines := s.Lines()
	s.view.Clamp(len(lines), height)
	i := s.view.Selected()
	if len(lines) == 0 || i < 0 || i >= len(lines) {
		return hosttree.Root, false
	}
	return lines[i], true
}

func (s *Session) Move(d Direction, height int) { s.view.Move(d, len(s.Lines()), height) }
func (s *Session) PageUp(height int)            { s.view.PageUp(len(s.Lines()), height) }
func (s *Session) PageDown(height int)          { s.view.PageDown(len(s.Lines()), height) }
func (s *Session) Top()                         { s.view.JumpTop() }
func (s *Session) Bottom(height int)            { s.view.JumpBottom(len(s.Lines()), height) }

// ExpandSelected expands the highlighted group and everything below it.
func (s *Session) ExpandSelected(height int) {
	if id, ok := s.Selected(height); ok {
		s.tree.ExpandSubtree(id)
	}
}

// CollapseSelected collapses the highlighted group and everything below it.
func (s *Session) CollapseSelected(height int) {
	if id, ok := s.Selected(height); ok {
		s.tree.CollapseSubtree(id)
	}
}

func (s *Session) ExpandAll()   { s.tree.ExpandAll() }
func (s *Session) CollapseAll() { s.tree.CollapseAll() }

// Activate toggles the highlighted group, or selects the highlighted leaf.
// Selecting a leaf with an empty command does nothing.
func (s *Session) Activate(height int) Outcome {
	id, ok := s.Selected(height)
	if !ok {
		return Outcome{}
	}
	n := s.tree.Node(id)
	if !n.IsLeaf() {
		s.tree.Toggle(id)
		return Outcome{Toggled: true}
	}
	args := hosttree.Args(n.Text)
	if len(args) == 0 {
		return Outcome{}
	}
	s.mode = ModeExited
	debug.Log("launch line %d: %v", n.Line, args)
	return Outcome{Launch: &LaunchRequest{
		Line:    n.Line,
		Text:    n.Text,
		Command: hosttree.Command(n.Text),
		Args:    args,
	}}
}
