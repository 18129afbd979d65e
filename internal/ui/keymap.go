package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds every binding the client reacts to. The input line is always
// focused, so plain letters type; chords carry everything else.
type keyMap struct {
	ChannelUp   key.Binding
	ChannelDown key.Binding
	PageUp      key.Binding
	PageDown    key.Binding
	Submit      key.Binding

	Left         key.Binding
	Right        key.Binding
	WordLeft     key.Binding
	WordRight    key.Binding
	Home         key.Binding
	End          key.Binding
	Backspace    key.Binding
	DeleteWord   key.Binding
	DeleteSuffix key.Binding

	Copy           key.Binding
	Switcher       key.Binding
	ToggleMarkdown key.Binding
	Quit           key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		ChannelUp:   key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev channel")),
		ChannelDown: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next channel")),
		PageUp:      key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "older messages")),
		PageDown:    key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "newer messages")),
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),

		Left:         key.NewBinding(key.WithKeys("left")),
		Right:        key.NewBinding(key.WithKeys("right")),
		WordLeft:     key.NewBinding(key.WithKeys("alt+left", "alt+b")),
		WordRight:    key.NewBinding(key.WithKeys("alt+right", "alt+f")),
		Home:         key.NewBinding(key.WithKeys("home", "ctrl+a")),
		End:          key.NewBinding(key.WithKeys("end", "ctrl+e")),
		Backspace:    key.NewBinding(key.WithKeys("backspace")),
		DeleteWord:   key.NewBinding(key.WithKeys("ctrl+w")),
		DeleteSuffix: key.NewBinding(key.WithKeys("ctrl+k")),

		Copy:           key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy last message")),
		Switcher:       key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "switch channel")),
		ToggleMarkdown: key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "toggle markdown")),
		// The input line is always focused, so esc stays free for closing
		// overlays; only the chord quits.
		Quit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}
