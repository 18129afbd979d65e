// Package sanitize strips terminal escape sequences and control characters
// from untrusted message text before it reaches the terminal or a desktop
// notification.
package sanitize

import (
	"regexp"
	"strings"
)

// Escape sequence shapes that survive a trip through a message body. The
// orphaned mouse form shows up when a reporting sequence loses its ESC byte
// in transit.
var escapePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\x1b\[[<>?=]?[0-9;]*[A-Za-z@^` + "`" + `~{|}!]`), // CSI
	regexp.MustCompile(`\x1b\][^\x07\x1b]*(?:\x07|\x1b\\)`),             // OSC
	regexp.MustCompile(`\x1b[()][AB012]`),                               // charset designation
	regexp.MustCompile(`\[<[0-9]+;[0-9]+;[0-9]+[Mm]`),                   // orphaned mouse report
}

// Body cleans multi-line message text for the message pane. Newlines survive,
// tabs become a single space, every other control character and escape
// sequence is removed.
func Body(s string) string {
	return clean(s, true)
}

// Line cleans text destined for a single terminal row or a notification:
// Body with newlines flattened to spaces.
func Line(s string) string {
	return clean(s, false)
}

func clean(s string, keepNewlines bool) string {
	if s == "" {
		return s
	}
	for _, p := range escapePatterns {
		s = p.ReplaceAllString(s, "")
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r == '\n':
			if keepNewlines {
				b.WriteRune(r)
			} else {
				b.WriteByte(' ')
			}
		case r == '\t':
			b.WriteByte(' ')
		case r < 32 || r == 127:
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
