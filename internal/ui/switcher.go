package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

const switcherMaxRows = 8

// switcher is the fuzzy channel-jump overlay. It filters channel names as
// the query grows and resolves the highlighted match back to a channel list
// index on confirm.
type switcher struct {
	query     string
	names     []string
	matches   []switchMatch
	highlight int
}

// switchMatch pairs a display label with its channel list index.
type switchMatch struct {
	Label string
	Index int
}

func newSwitcher(names []string) *switcher {
	s := &switcher{names: names}
	s.refilter()
	return s
}

func (s *switcher) typeRune(r rune) {
	s.query += string(r)
	s.refilter()
}

func (s *switcher) backspace() {
	if s.query == "" {
		return
	}
	runes := []rune(s.query)
	s.query = string(runes[:len(runes)-1])
	s.refilter()
}

func (s *switcher) moveUp() {
	if s.highlight > 0 {
		s.highlight--
	}
}

func (s *switcher) moveDown() {
	if s.highlight < len(s.matches)-1 {
		s.highlight++
	}
}

// selected returns the channel index under the highlight, or -1 when the
// filter matched nothing.
func (s *switcher) selected() int {
	if s.highlight < 0 || s.highlight >= len(s.matches) {
		return -1
	}
	return s.matches[s.highlight].Index
}

func (s *switcher) refilter() {
	s.highlight = 0
	s.matches = filterChannels(s.query, s.names)
}

// filterChannels ranks channel names against the query. An empty query keeps
// the list order; otherwise sahilm/fuzzy supplies the ranking.
func filterChannels(query string, names []string) []switchMatch {
	query = strings.TrimSpace(query)
	if query == "" {
		out := make([]switchMatch, len(names))
		for i, name := range names {
			out[i] = switchMatch{Label: name, Index: i}
		}
		return out
	}
	ranked := fuzzy.Find(query, names)
	out := make([]switchMatch, 0, len(ranked))
	for _, m := range ranked {
		out = append(out, switchMatch{Label: m.Str, Index: m.Index})
	}
	return out
}
