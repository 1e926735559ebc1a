package ui

import "github.com/charmbracelet/bubbles/key"

// GlobalKeyMap defines keys available in Normal mode regardless of
// which pane holds focus.
type GlobalKeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	Tab         key.Binding
	ToggleView  key.Binding
	ToggleSide  key.Binding
	ToggleOld   key.Binding
	ToggleNew   key.Binding
	ToggleViewed key.Binding
	Reload      key.Binding
	Theme       key.Binding
}

var GlobalKeys = GlobalKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	ToggleView: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "hunks/full file"),
	),
	ToggleSide: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "both panes"),
	),
	ToggleOld: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "old only"),
	),
	ToggleNew: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "new only"),
	),
	ToggleViewed: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "toggle viewed"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
}

// SidebarKeyMap defines keys active when the sidebar has focus.
type SidebarKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Enter  key.Binding
	Filter key.Binding
}

var SidebarKeys = SidebarKeyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "prev file")),
	Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "next file")),
	Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "focus diff")),
	Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter files")),
}

// DiffKeyMap defines keys active when the diff pane has focus.
type DiffKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Left        key.Binding
	Right       key.Binding
	Top         key.Binding
	Bottom      key.Binding
	NextHunk    key.Binding
	PrevHunk    key.Binding
	AddComment  key.Binding
	ViewComments key.Binding
	CopyPath    key.Binding
	OpenEditor  key.Binding
	PR          key.Binding
}

var DiffKeys = DiffKeyMap{
	Up:           key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "scroll up")),
	Down:         key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "scroll down")),
	PageUp:       key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "page up")),
	PageDown:     key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "page down")),
	Left:         key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "scroll left")),
	Right:        key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "scroll right")),
	Top:          key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "top")),
	Bottom:       key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "bottom")),
	NextHunk:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next hunk")),
	PrevHunk:     key.NewBinding(key.WithKeys("N"), key.WithHelp("N", "prev hunk")),
	AddComment:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "add comment")),
	ViewComments: key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "view comments")),
	CopyPath:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
	OpenEditor:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "open in editor")),
	PR:           key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "PR actions")),
}
