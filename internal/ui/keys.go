package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	Generate   key.Binding
	ToggleAuto key.Binding
	Edit       key.Binding
	ClearText  key.Binding
	CycleTheme key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Generate: key.NewBinding(
			key.WithKeys("g", "enter"),
			key.WithHelp("g", "Generate now"),
		),
		ToggleAuto: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Toggle auto-refresh"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "s"),
			key.WithHelp("e", "Edit settings"),
		),
		ClearText: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear custom prompt"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?", "h"),
			key.WithHelp("?", "Toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// ShortHelp returns key bindings for the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Generate, k.ToggleAuto, k.Edit, k.CycleTheme, k.Help, k.Quit}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Generate, k.ToggleAuto},
		{k.Edit, k.ClearText},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
