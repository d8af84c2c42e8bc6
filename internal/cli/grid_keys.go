package cli

import "github.com/charmbracelet/bubbles/key"

type gridKeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	EditCell      key.Binding
	EditLabel     key.Binding
	AddItem       key.Binding
	AddSub        key.Binding
	Delete        key.Binding
	Undo          key.Binding
	Redo          key.Binding
	Save          key.Binding
	Forecast      key.Binding
	ClearForecast key.Binding
	Monthly       key.Binding
	Quit          key.Binding
}

var gridKeys = gridKeyMap{
	Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:          key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
	Right:         key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
	EditCell:      key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "edit cell")),
	EditLabel:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename")),
	AddItem:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add item")),
	AddSub:        key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "add sub-item")),
	Delete:        key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Undo:          key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	Redo:          key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "redo")),
	Save:          key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
	Forecast:      key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "forecast")),
	ClearForecast: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear forecast")),
	Monthly:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "monthly view")),
	Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
