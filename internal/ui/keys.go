package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings shown in the file picker's help. Movement and
// fuzzy search are handled by the list component; the entries here only
// document them. CycleExt, Print, ToggleHelp and Quit are acted on by Model.
type KeyMap struct {
	// Movement through the file list
	PrevFile  key.Binding
	NextFile  key.Binding
	PrevPage  key.Binding
	NextPage  key.Binding
	FirstFile key.Binding
	LastFile  key.Binding

	// Narrowing the list
	Search   key.Binding
	CycleExt key.Binding

	// Leaving the picker
	Print      key.Binding
	ToggleHelp key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the picker's bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		PrevFile:  key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous file")),
		NextFile:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next file")),
		PrevPage:  key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "previous page")),
		NextPage:  key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "next page")),
		FirstFile: key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first file")),
		LastFile:  key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last file")),

		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search paths")),
		CycleExt: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "next extension")),

		Print:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "print path and exit")),
		ToggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "all keys")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "exit without printing")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Print, k.CycleExt, k.Search, k.ToggleHelp, k.Quit}
}

// FullHelp implements help.KeyMap. One column per group.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevFile, k.NextFile, k.FirstFile, k.LastFile},
		{k.PrevPage, k.NextPage},
		{k.Search, k.CycleExt},
		{k.Print, k.ToggleHelp, k.Quit},
	}
}
