package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the dashboard key bindings.
type keyMap struct {
	Tab       key.Binding
	Enter     key.Binding
	Refresh   key.Binding
	Layout    key.Binding
	Timeframe key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Tab:       key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "switch panel")),
		Enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "detail")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Layout:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "layout")),
		Timeframe: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "timeframe")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// shortHelp lists the bindings shown in the status bar
func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Enter, k.Refresh, k.Layout, k.Timeframe, k.Quit}
}
