package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	yes     key.Binding
	no      key.Binding
	movies  key.Binding
	user    key.Binding
	admin   key.Binding
	edit    key.Binding
	add     key.Binding
	delete  key.Binding
	open    key.Binding
	logout  key.Binding
	destroy key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		movies:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "movies")),
		user:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "profile")),
		admin:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "admin")),
		edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		add:     key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "add new")),
		delete:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		open:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open poster")),
		logout:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "logout")),
		destroy: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete account")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.movies, k.user, k.admin},
		{k.edit, k.add, k.delete, k.open},
		{k.logout, k.destroy, k.quit},
	}
}
