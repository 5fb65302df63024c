package manager

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the browser's key bindings. The vi-style letters match the
// classic sshgo layout.
type KeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Top         key.Binding
	Bottom      key.Binding
	Activate    key.Binding
	Expand      key.Binding
	Collapse    key.Binding
	ExpandAll   key.Binding
	CollapseAll key.Binding
	Search      key.Binding
	Back        key.Binding
	Help        key.Binding
	ForceQuit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("u", "pgup"),
			key.WithHelp("u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("d", "pgdown"),
			key.WithHelp("d", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter", " ", "space"),
			key.WithHelp("enter/space", "toggle/connect"),
		),
		Expand: key.NewBinding(
			key.WithKeys("o", "m"),
			key.WithHelp("o", "open subtree"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("c", "r"),
			key.WithHelp("c", "close subtree"),
		),
		ExpandAll: key.NewBinding(
			key.WithKeys("O", "M"),
			key.WithHelp("O", "open all"),
		),
		CollapseAll: key.NewBinding(
			key.WithKeys("C", "R"),
			key.WithHelp("C", "close all"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("q/esc", "back/quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Activate, k.Search, k.Back, k.Help}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom},
		{k.Activate, k.Expand, k.Collapse, k.ExpandAll, k.CollapseAll},
		{k.Search, k.Back, k.Help},
	}
}
