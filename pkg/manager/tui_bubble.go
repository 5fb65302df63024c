package manager

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sshgo/pkg/browser"
	"sshgo/pkg/debug"
)

// UIOptions controls the browser.
type UIOptions struct {
	// InitialQuery starts the browser in search mode with this keyword.
	InitialQuery string
	ShowComments bool
	Theme        Theme
}

// RunTUI runs the browser until the user quits or selects a leaf. A non-nil
// LaunchRequest means a leaf was selected; the terminal has been released by then.
func RunTUI(s *browser.Session, opts UIOptions) (*browser.LaunchRequest, error) {
	if s == nil {
		return nil, fmt.Errorf("nil session")
	}
	m := newModel(s, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	if fm, ok := final.(model); ok {
		return fm.launch, nil
	}
	return nil, nil
}

type model struct {
	session *browser.Session
	opts    UIOptions
	keys    KeyMap
	help    help.Model

	// search keyword capture; while capturing, keys go to the input only
	input     textinput.Model
	capturing bool

	showHelp bool

	width    int
	height   int
	ready    bool
	quitting bool

	launch *browser.LaunchRequest
}

func newModel(s *browser.Session, opts UIOptions) model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "search hosts..."
	ti.CharLimit = 256
	ti.PromptStyle = opts.Theme.Prompt

	h := help.New()
	h.ShortSeparator = " · "

	if q := strings.TrimSpace(opts.InitialQuery); q != "" {
		s.EnterSearch(q)
	}

	return model{
		session: s,
		opts:    opts,
		keys:    DefaultKeyMap(),
		help:    h,
		input:   ti,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

// listHeight is the viewport height handed to the navigator: the terminal minus
// the footer line.
func (m model) listHeight() int {
	return max(m.height-1, 0)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m.quit()
		}
		if m.capturing {
			return m.updateCapture(msg)
		}
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		return m.updateBrowse(msg)
	}

	if m.capturing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) updateCapture(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.capturing = false
		m.input.Blur()
		m.session.EnterSearch(m.input.Value())
		return m, nil
	case tea.KeyEsc:
		m.capturing = false
		m.input.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := m.session
	h := m.listHeight()

	switch {
	case key.Matches(msg, m.keys.Up):
		s.Move(browser.Up, h)
	case key.Matches(msg, m.keys.Down):
		s.Move(browser.Down, h)
	case key.Matches(msg, m.keys.PageUp):
		s.PageUp(h)
	case key.Matches(msg, m.keys.PageDown):
		s.PageDown(h)
	case key.Matches(msg, m.keys.Top):
		s.Top()
	case key.Matches(msg, m.keys.Bottom):
		s.Bottom(h)
	case key.Matches(msg, m.keys.ExpandAll):
		s.ExpandAll()
	case key.Matches(msg, m.keys.CollapseAll):
		s.CollapseAll()
	case key.Matches(msg, m.keys.Expand):
		s.ExpandSelected(h)
	case key.Matches(msg, m.keys.Collapse):
		s.CollapseSelected(h)
	case key.Matches(msg, m.keys.Activate):
		out := s.Activate(h)
		if out.Launch != nil {
			m.launch = out.Launch
			return m.quit()
		}
	case key.Matches(msg, m.keys.Search):
		m.capturing = true
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.Back):
		if s.Exit() {
			return m.quit()
		}
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	}
	return m, nil
}

func (m model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	debug.Log("quit (launch=%v)", m.launch != nil)
	return m, tea.Quit
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "sshgo: loading...\n"
	}
	if m.showHelp {
		return m.viewHelp()
	}

	h := m.listHeight()
	f := m.session.Frame(h)

	var b strings.Builder
	b.WriteString(renderFrame(m.session.Tree(), f, renderOptions{
		Width:        m.width,
		Height:       h,
		ShowComments: m.opts.ShowComments,
		Theme:        m.opts.Theme,
	}))
	b.WriteString(m.footer(f))
	return b.String()
}

// footer is a single line: the search input while capturing, the active keyword
// in search mode, or short key help.
func (m model) footer(f browser.Frame) string {
	if m.capturing {
		return m.input.View()
	}
	if f.Searching {
		line := fmt.Sprintf("/%s  %d match", f.Keyword, len(f.Lines))
		if len(f.Lines) != 1 {
			line += "es"
		}
		if sel := f.Viewport.Selected(); sel < len(f.Lines) {
			if path := m.session.Tree().Path(f.Lines[sel]); len(path) > 0 {
				line += "  in " + strings.Join(path, " / ")
			}
		}
		line += "  (esc: back)"
		return m.opts.Theme.Footer.Render(fit(line, m.width, "…"))
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m model) viewHelp() string {
	var b strings.Builder
	b.WriteString(m.opts.Theme.Prompt.Render("sshgo keys"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(m.opts.Theme.Footer.Render("press any key to return"))
	return b.String()
}
