package app

import "murmur/internal/signal"

// Event is one unit of the engine's serialized input stream. UI intents and
// network arrivals share the same closed set; Apply type-switches over it.
type Event interface{ isEvent() }

// Editing events.

type InputRune struct{ Rune rune }

type CursorLeft struct{}

type CursorRight struct{}

type CursorWordLeft struct{}

type CursorWordRight struct{}

type CursorHome struct{}

type CursorEnd struct{}

type Backspace struct{}

type DeleteWord struct{}

type DeleteSuffix struct{}

type Submit struct{}

// Navigation events.

type ChannelUp struct{}

type ChannelDown struct{}

type PageUp struct{}

type PageDown struct{}

// SelectChannel jumps the selection directly, as from a mouse click or the
// channel switcher.
type SelectChannel struct{ Index int }

// Network events.

// ChannelsLoaded carries the result of a directory fetch.
type ChannelsLoaded struct {
	Groups   []signal.Group
	Contacts []signal.Contact
}

// MessageReceived carries one decoded inbound envelope.
type MessageReceived struct{ Message signal.InboundMessage }

// NameResolved reports a display name learned for an identity after the
// fact, so raw identifiers already on screen can be rewritten.
type NameResolved struct {
	Identity string
	Name     string
}

// Resize reports the new sidebar height in rows.
type Resize struct{ Rows int }

type Quit struct{}

func (InputRune) isEvent()       {}
func (CursorLeft) isEvent()      {}
func (CursorRight) isEvent()     {}
func (CursorWordLeft) isEvent()  {}
func (CursorWordRight) isEvent() {}
func (CursorHome) isEvent()      {}
func (CursorEnd) isEvent()       {}
func (Backspace) isEvent()       {}
func (DeleteWord) isEvent()      {}
func (DeleteSuffix) isEvent()    {}
func (Submit) isEvent()          {}
func (ChannelUp) isEvent()       {}
func (ChannelDown) isEvent()     {}
func (PageUp) isEvent()          {}
func (PageDown) isEvent()        {}
func (SelectChannel) isEvent()   {}
func (ChannelsLoaded) isEvent()  {}
func (MessageReceived) isEvent() {}
func (NameResolved) isEvent()    {}
func (Resize) isEvent()          {}
func (Quit) isEvent()            {}
