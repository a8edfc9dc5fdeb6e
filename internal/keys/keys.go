package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the global keybindings for the application.
type KeyMap struct {
	// Navigation
	Down key.Binding
	Up   key.Binding

	// Selection
	Select key.Binding

	// Back / Quit
	Back key.Binding
	Quit key.Binding

	// Page navigation sequences
	GoHome     key.Binding
	GoChat     key.Binding
	GoProjects key.Binding
	GoSearch   key.Binding

	// Global combos
	Search   key.Binding
	QuickAdd key.Binding

	// Help toggle
	Help key.Binding

	// Appearance
	Theme    key.Binding
	Language key.Binding

	// Notifications
	Notifications key.Binding

	// Project actions
	NewProject key.Binding
	Pin        key.Binding
	Complete   key.Binding
	Delete     key.Binding
	Export     key.Binding

	// Chat actions
	Voice     key.Binding
	PlayPause key.Binding
	StopVoice key.Binding
	Copy      key.Binding
	NewChat   key.Binding
	Summarize key.Binding
}

// DefaultKeyMap returns the default set of keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		GoHome: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g h", "home"),
		),
		GoChat: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g c", "chat"),
		),
		GoProjects: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g p", "projects"),
		),
		GoSearch: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g s", "search"),
		),
		Search: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "search"),
		),
		QuickAdd: key.NewBinding(
			key.WithKeys("ctrl+A"),
			key.WithHelp("ctrl+shift+a", "quick add"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Theme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "toggle theme"),
		),
		Language: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "toggle language"),
		),
		Notifications: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notifications"),
		),
		NewProject: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "new project"),
		),
		Pin: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pin/unpin"),
		),
		Complete: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "complete/reopen"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "export"),
		),
		Voice: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "voice input"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "play/pause"),
		),
		StopVoice: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "stop audio"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy answer"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "new chat"),
		),
		Summarize: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "summarize"),
		),
	}
}

// ShortHelp returns the most essential keybindings for the compact help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Down, k.Select, k.Back,
		k.Quit, k.Help, k.Search,
	}
}

// FullHelp returns all keybindings grouped by category for the expanded
// help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.Back, k.Quit},
		{k.GoHome, k.GoChat, k.GoProjects, k.GoSearch},
		{k.Search, k.QuickAdd, k.Theme, k.Language, k.Notifications},
		{k.NewProject, k.Pin, k.Complete, k.Delete, k.Export},
		{k.Voice, k.PlayPause, k.StopVoice, k.Copy, k.NewChat, k.Summarize},
	}
}
