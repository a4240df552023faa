package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

type keyMap struct {
	Increment key.Binding
	Decrement key.Binding
	Reset     key.Binding
	Next      key.Binding
	Prev      key.Binding
	Sessions  []key.Binding
	Preset    key.Binding
	Custom    key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Increment: key.NewBinding(
			key.WithKeys(" ", "+", "enter"),
			key.WithHelp("space", "count up"),
		),
		Decrement: key.NewBinding(
			key.WithKeys("-", "backspace"),
			key.WithHelp("-", "reduce"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("→", "next exercise"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("←", "previous exercise"),
		),
		Sessions: []key.Binding{
			key.NewBinding(key.WithKeys("1"), key.WithHelp("1-3", "pick exercise")),
			key.NewBinding(key.WithKeys("2")),
			key.NewBinding(key.WithKeys("3")),
		},
		Preset: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "rest preset"),
		),
		Custom: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "custom rest"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Increment, k.Decrement, k.Reset, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Increment, k.Decrement, k.Reset},
		{k.Next, k.Prev, k.Sessions[0]},
		{k.Preset, k.Custom},
		{k.Help, k.Quit},
	}
}
