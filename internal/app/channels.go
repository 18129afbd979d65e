package app

import (
	"sort"

	"murmur/internal/signal"
	"murmur/internal/statelist"
	"murmur/internal/types"
)

// Channel is the live form of a conversation: the persisted record fields
// plus the transient message selection used for scrollback.
type Channel struct {
	ID       string
	Name     string
	IsGroup  bool
	Messages *statelist.List[types.Message]
	Unread   int
}

func liveChannel(rec types.Channel) Channel {
	return Channel{
		ID:       rec.ID,
		Name:     rec.Name,
		IsGroup:  rec.IsGroup,
		Messages: statelist.New(rec.Messages...),
		Unread:   rec.Unread,
	}
}

func (c *Channel) record() types.Channel {
	return types.Channel{
		ID:       c.ID,
		Name:     c.Name,
		IsGroup:  c.IsGroup,
		Messages: c.Messages.Items(),
		Unread:   c.Unread,
	}
}

// LastMessage returns the newest message of the channel.
func (c *Channel) LastMessage() (types.Message, bool) {
	items := c.Messages.Items()
	if len(items) == 0 {
		return types.Message{}, false
	}
	return items[len(items)-1], true
}

// channelIndex finds the channel keyed by (id, isGroup), or -1.
func (a *App) channelIndex(id string, isGroup bool) int {
	for i, ch := range a.channels.Items() {
		if ch.ID == id && ch.IsGroup == isGroup {
			return i
		}
	}
	return -1
}

func (a *App) appendChannel(id, name string, isGroup bool) int {
	a.channels.PushBack(Channel{
		ID:       id,
		Name:     name,
		IsGroup:  isGroup,
		Messages: statelist.New[types.Message](),
	})
	return a.channels.Len() - 1
}

// mergeRemote appends directory entries not yet known locally: groups first,
// then contacts, each sorted by display name. Existing channels are never
// touched or reordered. Reports whether the list changed.
func (a *App) mergeRemote(groups []signal.Group, contacts []signal.Contact) bool {
	known := make(map[string]struct{}, a.channels.Len())
	for _, ch := range a.channels.Items() {
		known[ch.ID] = struct{}{}
	}

	groups = append([]signal.Group(nil), groups...)
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	contacts = append([]signal.Contact(nil), contacts...)
	sort.Slice(contacts, func(i, j int) bool { return contacts[i].Name < contacts[j].Name })

	changed := false
	for _, g := range groups {
		if g.ID == "" {
			continue
		}
		if _, ok := known[g.ID]; ok {
			continue
		}
		name := g.Name
		if name == "" {
			name = g.ID
		}
		a.appendChannel(g.ID, name, true)
		known[g.ID] = struct{}{}
		changed = true
	}
	for _, c := range contacts {
		if c.Number == "" {
			continue
		}
		if _, ok := known[c.Number]; ok {
			continue
		}
		name := c.Name
		if name == "" {
			name = c.Number
		}
		a.appendChannel(c.Number, name, false)
		known[c.Number] = struct{}{}
		changed = true
	}

	if _, ok := a.channels.Selected(); !ok && a.channels.Len() > 0 {
		a.channels.Select(0)
	}
	return changed
}

// resolveContactName maps a sender identity to a display name: the local
// user's own name for self, a previously learned channel name, a collaborator
// lookup otherwise. Any successful resolution is backfilled across history;
// the raw identity is the fallback.
func (a *App) resolveContactName(identity string) string {
	var existing *Channel
	channels := a.channels.Items()
	for i := range channels {
		if channels[i].ID == identity && !channels[i].IsGroup {
			existing = &channels[i]
			break
		}
	}

	var name string
	switch {
	case identity == a.selfID:
		name = a.selfName
	case existing != nil && existing.Name != existing.ID:
		name = existing.Name
	default:
		name = a.client.ContactName(identity)
	}
	if name == "" {
		return identity
	}
	a.backfillName(identity, name)
	return name
}

// backfillName rewrites the display name for an identity across history:
// the sender name on every stored message from it and the name of the
// channel keyed by it. Reports whether anything changed.
func (a *App) backfillName(identity, name string) bool {
	changed := false
	channels := a.channels.Items()
	for i := range channels {
		ch := &channels[i]
		msgs := ch.Messages.Items()
		for j := range msgs {
			if msgs[j].From == identity && msgs[j].FromName != name {
				msgs[j].FromName = name
				changed = true
			}
		}
		if ch.ID == identity && ch.Name != name {
			ch.Name = name
			changed = true
		}
	}
	return changed
}

// backfillUnresolved is backfillName restricted to entries still showing the
// raw identity, so names the user already knows are never overwritten by a
// late directory answer.
func (a *App) backfillUnresolved(identity, name string) bool {
	changed := false
	channels := a.channels.Items()
	for i := range channels {
		ch := &channels[i]
		msgs := ch.Messages.Items()
		for j := range msgs {
			if msgs[j].From == identity && msgs[j].FromName == identity {
				msgs[j].FromName = name
				changed = true
			}
		}
		if ch.ID == identity && ch.Name == identity {
			ch.Name = name
			changed = true
		}
	}
	return changed
}

// bubbleUp moves the channel at idx to the front of the list by adjacent
// swaps, preserving the relative order of everything else, then re-points
// the selection at the same logical channel.
func (a *App) bubbleUp(idx int) {
	for i := idx; i > 0; i-- {
		a.channels.Swap(i-1, i)
	}
	selected, ok := a.channels.Selected()
	switch {
	case !ok:
	case selected == idx:
		a.channels.Select(0)
	case selected < idx:
		a.channels.Select(selected + 1)
	}
}
