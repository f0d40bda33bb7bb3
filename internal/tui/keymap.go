package tui

import "github.com/charmbracelet/bubbles/key"

// ListKeyMap defines the key bindings for the project list.
type ListKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	New     key.Binding
	Create  key.Binding
	Filter  key.Binding
	Refresh key.Binding
	Browse  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultListKeyMap returns the default project list bindings.
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous project"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next project"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open project"),
		),
		New: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "quick create"),
		),
		Create: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "create form"),
		),
		Filter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "cycle status filter"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Browse: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings to be shown in the mini help view.
func (k ListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.New, k.Filter, k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k ListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Open},
		{k.New, k.Create, k.Filter},
		{k.Refresh, k.Browse, k.Help, k.Quit},
	}
}

// DetailKeyMap defines the key bindings for the project detail view.
type DetailKeyMap struct {
	Up            key.Binding
	Down          key.Binding
	PageDown      key.Binding
	PageUp        key.Binding
	Status        key.Binding
	NewTask       key.Binding
	Comment       key.Binding
	DeleteTask    key.Binding
	DeleteProject key.Binding
	Refresh       key.Binding
	Browse        key.Binding
	Back          key.Binding
	Help          key.Binding
	Confirm       key.Binding
	Cancel        key.Binding
}

// DefaultDetailKeyMap returns the default detail bindings.
func DefaultDetailKeyMap() DetailKeyMap {
	return DetailKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous task"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next task"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "scroll up"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "advance status"),
		),
		NewTask: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "new task"),
		),
		Comment: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "comment"),
		),
		DeleteTask: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "delete task"),
		),
		DeleteProject: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete project"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Browse: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in browser"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "q", "backspace"),
			key.WithHelp("esc/q", "back"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
		),
	}
}

// ShortHelp returns key bindings to be shown in the mini help view.
func (k DetailKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Status, k.NewTask, k.Comment, k.Back, k.Help}
}

// FullHelp returns key bindings for the expanded help view.
func (k DetailKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageDown, k.PageUp},
		{k.Status, k.NewTask, k.Comment, k.DeleteTask},
		{k.DeleteProject, k.Refresh, k.Browse, k.Back, k.Help},
	}
}

// FormKeyMap defines the key bindings shared by every form.
type FormKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
	Cycle  key.Binding
}

// DefaultFormKeyMap returns the default form bindings.
func DefaultFormKeyMap() FormKeyMap {
	return FormKeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("shift+tab", "previous field"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Cycle: key.NewBinding(
			key.WithKeys("left", "right", " "),
			key.WithHelp("←/→", "change option"),
		),
	}
}

// ShortHelp returns key bindings to be shown in the mini help view.
func (k FormKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Cycle, k.Submit, k.Cancel}
}

// FullHelp returns key bindings for the expanded help view.
func (k FormKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
