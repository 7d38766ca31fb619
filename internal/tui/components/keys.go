package components

import "github.com/charmbracelet/bubbles/key"

// ListKeyMap holds the bindings a focused feed list reacts to. While the
// filter prompt has focus only ClearFilter and KeepFilter apply.
type ListKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	First    key.Binding
	Last     key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	Filter      key.Binding
	ClearFilter key.Binding
	KeepFilter  key.Binding
}

// DefaultListKeyMap returns the vim-style bindings used by every feed
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "previous item")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "next item")),
		First:       key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first item")),
		Last:        key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "last item")),
		PageUp:      key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("C-u", "scroll up")),
		PageDown:    key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("C-d", "scroll down")),
		Filter:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search feed")),
		ClearFilter: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "show all items")),
		KeepFilter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "keep matches")),
	}
}

// ShortHelp implements help.KeyMap
func (k ListKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.Up, k.Filter}
}

// FullHelp implements help.KeyMap
func (k ListKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.First, k.Last},
		{k.PageUp, k.PageDown},
		{k.Filter, k.ClearFilter, k.KeepFilter},
	}
}

// ListKeys is shared by every ListColumn and the help screen
var ListKeys = DefaultListKeyMap()
