package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Enter     key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Tab       key.Binding
	ShiftTab  key.Binding
	Apology   key.Binding
	Favorite  key.Binding
	Download  key.Binding
	Audio     key.Binding
	Email     key.Binding
	Copy      key.Binding
	Share     key.Binding
	History   key.Binding
	ClearHist key.Binding
	ClearFavs key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "back/quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "run"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("up", "previous field"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("down", "next field"),
	),
	Left: key.NewBinding(
		key.WithKeys("left"),
		key.WithHelp("left", "previous value"),
	),
	Right: key.NewBinding(
		key.WithKeys("right"),
		key.WithHelp("right", "next value"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next panel"),
	),
	ShiftTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous panel"),
	),
	Apology: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "apology"),
	),
	Favorite: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "save favorite"),
	),
	Download: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "download"),
	),
	Audio: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "save audio"),
	),
	Email: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "email template"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy"),
	),
	Share: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "WhatsApp link"),
	),
	History: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "download history"),
	),
	ClearHist: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "clear history"),
	),
	ClearFavs: key.NewBinding(
		key.WithKeys("X"),
		key.WithHelp("X", "clear favorites"),
	),
}
