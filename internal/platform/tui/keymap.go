package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tetrion/internal/core"
)

// KeyMap defines the key bindings of the play screen. Each binding maps
// onto one core.Action, except Exit and Shot which are handled by the UI.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Button1 key.Binding
	Button2 key.Binding
	Button3 key.Binding
	Start   key.Binding
	Quit    key.Binding
	Exit    key.Binding
	Shot    key.Binding
}

// DefaultKeyMap returns the default play bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "drop"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "soft drop"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		Button1: key.NewBinding(
			key.WithKeys("z", "j"),
			key.WithHelp("z", "rotate ⟲"),
		),
		Button2: key.NewBinding(
			key.WithKeys("x", "k"),
			key.WithHelp("x", "rotate ⟳"),
		),
		Button3: key.NewBinding(
			key.WithKeys("c", "l"),
			key.WithHelp("c", "rotate ⟲"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter", "restart"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		Exit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "exit"),
		),
		Shot: key.NewBinding(
			key.WithKeys("f2"),
			key.WithHelp("f2", "screenshot"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Up, k.Down, k.Button1, k.Button2, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Button1, k.Button2, k.Button3},
		{k.Start, k.Quit, k.Shot, k.Exit},
	}
}

// Action translates a key message into a playfield action.
// ok is false for keys that are not bound to one.
func (k KeyMap) Action(msg tea.KeyMsg) (a core.Action, ok bool) {
	bindings := [...]struct {
		binding key.Binding
		action  core.Action
	}{
		{k.Up, core.ActionUp},
		{k.Down, core.ActionDown},
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.Button1, core.ActionButton1},
		{k.Button2, core.ActionButton2},
		{k.Button3, core.ActionButton3},
		{k.Start, core.ActionStart},
		{k.Quit, core.ActionQuit},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.action, true
		}
	}
	return 0, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionScoreboard
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
