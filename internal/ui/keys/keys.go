package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the application key bindings
type KeyMap struct {
	Quit   key.Binding
	Back   key.Binding
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Enter  key.Binding
	Tab    key.Binding
	Help   key.Binding
	New    key.Binding
	Edit   key.Binding
	Delete key.Binding

	Today   key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Groups  key.Binding
	AI      key.Binding
	Share   key.Binding
	Export  key.Binding
	Summary key.Binding
	Title   key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "scroll left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "scroll right"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "new task"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit selected"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete selected"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "jump to today"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "zoom out"),
		),
		Groups: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "manage groups"),
		),
		AI: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "generate from text"),
		),
		Share: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "copy share token"),
		),
		Export: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "export csv+json"),
		),
		Summary: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "day summary"),
		),
		Title: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "edit title"),
		),
	}
}
