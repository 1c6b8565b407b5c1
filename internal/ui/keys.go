package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	ForceQuit  key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Escape     key.Binding
	Logs       key.Binding

	// Form
	EditText  key.Binding
	PickLogo  key.Binding
	NextStyle key.Binding
	PrevStyle key.Binding
	Submit    key.Binding
	Draft     key.Binding
	Check     key.Binding

	// Draft modal
	Generate    key.Binding
	SwitchField key.Binding
	Example1    key.Binding
	Example2    key.Binding
	Example3    key.Binding

	// Logs overlay
	WarnOnly key.Binding
	Reload   key.Binding

	// Input
	Confirm key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close / stop editing"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "Client log"),
		),

		// Form
		EditText: key.NewBinding(
			key.WithKeys("e", "i"),
			key.WithHelp("e", "Edit text"),
		),
		PickLogo: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "Choose logo"),
		),
		NextStyle: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("→/tab", "Next style"),
		),
		PrevStyle: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←/shift+tab", "Previous style"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter", "ctrl+s"),
			key.WithHelp("enter", "Generate document"),
		),
		Draft: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "AI drafting"),
		),
		Check: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Check backend"),
		),

		// Draft modal
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g", "ctrl+s"),
			key.WithHelp("ctrl+g", "Generate text"),
		),
		SwitchField: key.NewBinding(
			key.WithKeys("tab", "shift+tab"),
			key.WithHelp("tab", "Prompt/context"),
		),
		Example1: key.NewBinding(
			key.WithKeys("alt+1", "f1"),
			key.WithHelp("alt+1", "Example 1"),
		),
		Example2: key.NewBinding(
			key.WithKeys("alt+2", "f2"),
			key.WithHelp("alt+2", "Example 2"),
		),
		Example3: key.NewBinding(
			key.WithKeys("alt+3", "f3"),
			key.WithHelp("alt+3", "Example 3"),
		),

		// Logs overlay
		WarnOnly: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "Warnings only"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reload"),
		),

		// Input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PickLogo, k.EditText, k.NextStyle, k.Draft, k.Submit, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Form
		{k.PickLogo, k.EditText, k.NextStyle, k.PrevStyle, k.Submit, k.Check},
		// Drafting
		{k.Draft, k.SwitchField, k.Generate, k.Example1, k.Example2, k.Example3},
		// Logs
		{k.Logs, k.WarnOnly, k.Reload},
		// General
		{k.CycleTheme, k.Escape, k.Help, k.Quit},
	}
}
