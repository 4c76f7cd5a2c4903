package player

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the player bindings. It satisfies help.KeyMap so the footer
// can be rendered by the bubbles help component.
type KeyMap struct {
	Toggle      key.Binding
	SeekBack    key.Binding
	SeekForward key.Binding
	NudgeBack   key.Binding
	NudgeAhead  key.Binding
	ShiftBack   key.Binding
	ShiftAhead  key.Binding
	Reset       key.Binding
	Theme       key.Binding
	GoTo        key.Binding
	SetOffset   key.Binding
	Reload      key.Binding
	Quit        key.Binding

	// used only while a time prompt is open
	Confirm key.Binding
	Cancel  key.Binding
}

var DefaultKeyMap = KeyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "play/pause"),
	),
	SeekBack: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←", "-5s"),
	),
	SeekForward: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→", "+5s"),
	),
	NudgeBack: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "offset -100ms"),
	),
	NudgeAhead: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "offset +100ms"),
	),
	ShiftBack: key.NewBinding(
		key.WithKeys("{"),
		key.WithHelp("{", "offset -1s"),
	),
	ShiftAhead: key.NewBinding(
		key.WithKeys("}"),
		key.WithHelp("}", "offset +1s"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	GoTo: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "go to time"),
	),
	SetOffset: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "set offset"),
	),
	Reload: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "apply"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.SeekBack, k.SeekForward, k.NudgeBack, k.NudgeAhead, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.SeekBack, k.SeekForward},
		{k.GoTo, k.NudgeBack, k.NudgeAhead, k.ShiftBack, k.ShiftAhead, k.SetOffset},
		{k.Reset, k.Theme, k.Reload, k.Quit},
	}
}
