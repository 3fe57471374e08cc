package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Cancel  key.Binding
	Dismiss key.Binding
	Restart key.Binding
	Loop    key.Binding
	More    key.Binding
	Less    key.Binding
	Scale   key.Binding
	New     key.Binding
	Remove  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "start/pause")),
		Cancel:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "cancel")),
		Dismiss: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dismiss")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart")),
		Loop:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "loop")),
		More:    key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "add 1m")),
		Less:    key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "remove 1m")),
		Scale:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "next face")),
		New:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new timer")),
		Remove:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "remove")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (keys keyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Toggle, keys.More, keys.Less, keys.New, keys.Help, keys.Quit}
}

func (keys keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.Toggle, keys.Cancel},
		{keys.Dismiss, keys.Restart, keys.Loop, keys.Scale},
		{keys.More, keys.Less, keys.New, keys.Remove},
		{keys.Help, keys.Quit},
	}
}
