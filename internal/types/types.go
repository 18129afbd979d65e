package types

import "time"

// Channel is one conversation thread, keyed by a contact phone number/uuid or
// a group id. At most one channel exists per (ID, IsGroup) pair. Channels are
// never deleted during a session; snapshot order is most-recently-active
// first.
type Channel struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	IsGroup  bool      `json:"is_group"`
	Messages []Message `json:"messages"`
	Unread   int       `json:"unread"`
}

// Message is immutable once stored, except that FromName is rewritten in
// place when a contact's real name resolves after the fact.
type Message struct {
	ID          string       `json:"id"`
	From        string       `json:"from"`
	FromName    string       `json:"from_name"`
	Text        string       `json:"text,omitempty"`
	Attachments []Attachment `json:"attachments,omitempty"`
	ArrivedAt   time.Time    `json:"arrived_at"`
}

// Attachment describes a received file; the engine never opens its bytes.
type Attachment struct {
	ContentType string `json:"content_type,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// Snapshot is the persisted form of the application state: plain channel
// records plus the raw input buffer. Selection, viewport, and cursor state
// are transient and rebuilt at load.
type Snapshot struct {
	Channels []Channel `json:"channels"`
	Input    string    `json:"input"`
}
