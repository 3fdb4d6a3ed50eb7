package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the playground bindings. Ctrl bindings work in both modes;
// the single-letter ones only in CMD mode.
type KeyMap struct {
	Insert      key.Binding
	Command     key.Binding
	Save        key.Binding
	NextFile    key.Binding
	PrevFile    key.Binding
	Preview     key.Binding
	DiffView    key.Binding
	Wrap        key.Binding
	Share       key.Binding
	Orientation key.Binding
	ResetSplit  key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

// ShortHelp returns keybindings to show in compact help.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Insert, k.Save, k.NextFile, k.Preview, k.Help, k.Quit}
}

// FullHelp returns keybindings for expanded help.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Insert, k.Command, k.Save, k.Share},
		{k.NextFile, k.PrevFile, k.ScrollUp, k.ScrollDown, k.PageUp, k.PageDown},
		{k.Preview, k.DiffView, k.Wrap},
		{k.Orientation, k.ResetSplit},
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Insert: key.NewBinding(
			key.WithKeys("i", "enter"),
			key.WithHelp("i", "edit"),
		),
		Command: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop editing / quit"),
		),
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		NextFile: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("ctrl+n", "next file"),
		),
		PrevFile: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "prev file"),
		),
		Preview: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "render/diff"),
		),
		DiffView: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "unified/side-by-side"),
		),
		Wrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wrap on/off"),
		),
		Share: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "copy share url"),
		),
		Orientation: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "flip split"),
		),
		ResetSplit: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "reset split"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll preview"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll preview"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "page down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
	}
}
