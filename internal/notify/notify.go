// Package notify delivers desktop notifications for incoming messages.
package notify

import (
	"strings"

	"github.com/gen2brain/beeep"

	"murmur/internal/sanitize"
)

// Notification daemons clip long bodies anyway; clipping here keeps the
// ellipsis under our control.
const maxBodyRunes = 120

// send is swapped in tests.
var send = func(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Desktop shows messages through the platform notification service. The zero
// value is disabled.
type Desktop struct {
	enabled bool
}

func NewDesktop(enabled bool) *Desktop {
	return &Desktop{enabled: enabled}
}

// Notify shows one notification. Text is flattened and clipped so escape
// sequences and runaway bodies never reach the notification daemon.
func (d *Desktop) Notify(title, body string) error {
	if d == nil || !d.enabled {
		return nil
	}
	return send(sanitize.Line(title), clip(sanitize.Line(body)))
}

func clip(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= maxBodyRunes {
		return s
	}
	return string(runes[:maxBodyRunes-1]) + "…"
}
