// Package app implements the chat engine: the ordered channel list, each
// channel's message history, the input draft, and the sidebar viewport,
// reconciled against UI and network events arriving on one serialized
// stream.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"murmur/internal/logging"
	"murmur/internal/signal"
	"murmur/internal/statelist"
	"murmur/internal/store"
	"murmur/internal/types"
)

// ErrGroupSendUnsupported marks the outgoing-send path for group channels,
// which is not implemented. The check runs before any state changes.
var ErrGroupSendUnsupported = errors.New("sending to group channels is not supported")

// Notifier emits a user-visible notification outside the terminal.
type Notifier interface {
	Notify(title, body string) error
}

type Options struct {
	Client   signal.Client
	Store    store.SnapshotStore
	Notifier Notifier
	Logger   logging.Logger
	SelfName string
}

// App is the engine. It owns all mutable client state and is driven
// exclusively through Apply on one goroutine; the only operation that
// escapes is the outgoing network send, detached after the local mutation
// has already been applied and persisted.
type App struct {
	client   signal.Client
	store    store.SnapshotStore
	notifier Notifier
	log      logging.Logger

	selfID   string
	selfName string

	channels *statelist.List[Channel]
	viewport Viewport
	input    Input
	rows     int

	quitting bool
	now      func() time.Time
}

func New(opts Options) *App {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	selfID := opts.Client.SelfIdentity()
	selfName := opts.Client.ContactName(selfID)
	if selfName == "" {
		selfName = strings.TrimSpace(opts.SelfName)
	}
	if selfName == "" {
		selfName = "You"
	}
	return &App{
		client:   opts.Client,
		store:    opts.Store,
		notifier: opts.Notifier,
		log:      log,
		selfID:   selfID,
		selfName: selfName,
		channels: statelist.New[Channel](),
		now:      time.Now,
	}
}

// Load restores the persisted snapshot: channel records become live lists,
// the input cursor parks at the end of the restored draft, and the first
// channel is selected. A missing snapshot surfaces as
// store.ErrSnapshotNotFound so the caller can seed from the directory
// instead.
func (a *App) Load(ctx context.Context) error {
	snap, err := a.store.Load(ctx)
	if err != nil {
		return err
	}
	list := statelist.New[Channel]()
	for _, rec := range snap.Channels {
		list.PushBack(liveChannel(rec))
	}
	a.channels = list
	if a.channels.Len() > 0 {
		a.channels.Select(0)
	}
	a.input.SetText(snap.Input)
	return nil
}

// Apply reduces one event against the engine state. Errors are fatal to the
// triggering operation only; edge conditions (cursor at a buffer end, empty
// channel list) are not errors.
func (a *App) Apply(ctx context.Context, ev Event) error {
	switch ev := ev.(type) {
	case InputRune:
		a.input.InsertRune(ev.Rune)
	case CursorLeft:
		a.input.MoveLeft()
	case CursorRight:
		a.input.MoveRight()
	case CursorWordLeft:
		a.input.MoveWordLeft()
	case CursorWordRight:
		a.input.MoveWordRight()
	case CursorHome:
		a.input.Home()
	case CursorEnd:
		a.input.End()
	case Backspace:
		a.input.DeleteLeft()
	case DeleteWord:
		a.input.DeleteWordLeft()
	case DeleteSuffix:
		a.input.TruncateFromCursor()
	case Submit:
		return a.submit(ctx)
	case ChannelUp:
		return a.channelUp(ctx)
	case ChannelDown:
		return a.channelDown(ctx)
	case PageUp:
		a.pageUp()
	case PageDown:
		a.pageDown()
	case SelectChannel:
		return a.selectChannel(ctx, ev.Index)
	case ChannelsLoaded:
		return a.applyChannelsLoaded(ctx, ev)
	case MessageReceived:
		return a.applyMessage(ctx, ev.Message)
	case NameResolved:
		return a.applyNameResolved(ctx, ev)
	case Resize:
		a.resize(ev.Rows)
	case Quit:
		a.quitting = true
	}
	return nil
}

// submit sends the input draft to the selected channel: optimistic local
// echo plus a detached network send. Empty drafts and missing selections are
// no-ops; group sends fail before anything mutates.
func (a *App) submit(ctx context.Context) error {
	idx, ok := a.channels.Selected()
	if !ok || a.input.Len() == 0 {
		return nil
	}
	ch := &a.channels.Items()[idx]
	if ch.IsGroup {
		return ErrGroupSendUnsupported
	}

	body := a.input.Drain()
	now := a.now().UTC()
	recipient := ch.ID

	// Detached from ctx so quitting does not cancel an in-flight send.
	go func() {
		if err := a.client.Send(context.Background(), recipient, body, now.UnixMilli()); err != nil {
			a.log.Error("send failed", logging.F("recipient", recipient), logging.F("error", err))
		}
	}()

	ch.Messages.PushBack(types.Message{
		ID:        uuid.NewString(),
		From:      a.selfID,
		FromName:  a.selfName,
		Text:      body,
		ArrivedAt: now,
	})
	ch.Unread = 0
	a.bubbleUp(idx)
	return a.persist(ctx)
}

// channelUp moves the selection up one channel, clearing the unread count of
// the channel being left and transitioning the viewport before the wrap.
func (a *App) channelUp(ctx context.Context) error {
	if a.channels.Len() == 0 {
		return nil
	}
	if err := a.clearSelectedUnread(ctx); err != nil {
		return err
	}
	if sel, ok := a.channels.Selected(); ok {
		a.viewport.OnUp(sel, a.channels.Len())
	}
	a.channels.Previous()
	return nil
}

// channelDown mirrors channelUp; the wrap back to index 0 is detected after
// the move and snaps the window to the top.
func (a *App) channelDown(ctx context.Context) error {
	if a.channels.Len() == 0 {
		return nil
	}
	if err := a.clearSelectedUnread(ctx); err != nil {
		return err
	}
	if _, ok := a.channels.Selected(); ok {
		a.viewport.OnDown()
	}
	a.channels.Next()
	if sel, ok := a.channels.Selected(); ok && sel == 0 {
		a.viewport.SnapTop()
	}
	return nil
}

func (a *App) pageUp() {
	if ch, ok := a.selectedLive(); ok {
		ch.Messages.Next()
	}
}

func (a *App) pageDown() {
	if ch, ok := a.selectedLive(); ok {
		ch.Messages.Previous()
	}
}

// selectChannel jumps the selection directly, clearing the unread count of
// the channel being left and re-deriving the viewport window.
func (a *App) selectChannel(ctx context.Context, idx int) error {
	if idx < 0 || idx >= a.channels.Len() {
		return nil
	}
	if err := a.clearSelectedUnread(ctx); err != nil {
		return err
	}
	a.channels.Select(idx)
	a.viewport.Rederive(idx, a.rows)
	return nil
}

func (a *App) applyChannelsLoaded(ctx context.Context, ev ChannelsLoaded) error {
	if !a.mergeRemote(ev.Groups, ev.Contacts) {
		return nil
	}
	return a.persist(ctx)
}

// applyMessage reconciles one inbound message: resolve the target channel by
// identity (creating it when absent), resolve the sender's display name,
// notify, append, and bubble the channel to the front.
func (a *App) applyMessage(ctx context.Context, msg signal.InboundMessage) error {
	fromSelf := msg.Source == a.selfID

	id := msg.GroupID
	isGroup := id != ""
	if id == "" {
		if fromSelf {
			id = msg.Destination
		} else {
			id = msg.Source
		}
	}
	if id == "" {
		a.log.Debug("dropping message with no channel identity", logging.F("source", msg.Source))
		return nil
	}

	senderName := a.resolveContactName(msg.Source)

	idx := a.channelIndex(id, isGroup)
	if idx < 0 {
		// The channel is named after its own identity, not the sender: a
		// sync copy of a message sent to +B must not surface as a channel
		// named after the local user.
		var name string
		switch {
		case isGroup:
			name = a.client.GroupName(id)
		case id == msg.Source:
			name = senderName
		default:
			name = a.client.ContactName(id)
		}
		if name == "" {
			name = id
		}
		idx = a.appendChannel(id, name, isGroup)
	}
	ch := &a.channels.Items()[idx]

	if !fromSelf && msg.Text != "" && a.notifier != nil {
		title := senderName
		if isGroup {
			title = fmt.Sprintf("%s in %s", senderName, ch.Name)
		}
		if err := a.notifier.Notify(title, msg.Text); err != nil {
			a.log.Error("notification failed", logging.F("error", err))
		}
	}

	ch.Messages.PushBack(types.Message{
		ID:          uuid.NewString(),
		From:        msg.Source,
		FromName:    senderName,
		Text:        msg.Text,
		Attachments: msg.Attachments,
		ArrivedAt:   msg.Timestamp,
	})
	if sel, ok := a.channels.Selected(); ok && sel == idx {
		ch.Unread = 0
	} else {
		ch.Unread++
	}

	a.bubbleUp(idx)
	return a.persist(ctx)
}

func (a *App) applyNameResolved(ctx context.Context, ev NameResolved) error {
	name := strings.TrimSpace(ev.Name)
	if name == "" || name == ev.Identity {
		return nil
	}
	if !a.backfillUnresolved(ev.Identity, name) {
		return nil
	}
	return a.persist(ctx)
}

func (a *App) resize(rows int) {
	a.rows = rows
	sel := -1
	if idx, ok := a.channels.Selected(); ok {
		sel = idx
	}
	a.viewport.Rederive(sel, rows)
}

// clearSelectedUnread zeroes the unread count of the selected channel,
// persisting only when the count actually changed.
func (a *App) clearSelectedUnread(ctx context.Context) error {
	ch, ok := a.selectedLive()
	if !ok || ch.Unread == 0 {
		return nil
	}
	ch.Unread = 0
	return a.persist(ctx)
}

func (a *App) selectedLive() (*Channel, bool) {
	idx, ok := a.channels.Selected()
	if !ok {
		return nil, false
	}
	return &a.channels.Items()[idx], true
}

// persist writes the full snapshot synchronously. Failures propagate;
// in-memory and on-disk state must not diverge silently.
func (a *App) persist(ctx context.Context) error {
	channels := a.channels.Items()
	records := make([]types.Channel, 0, len(channels))
	for i := range channels {
		records = append(records, channels[i].record())
	}
	snap := &types.Snapshot{Channels: records, Input: a.input.Text()}
	if err := a.store.Save(ctx, snap); err != nil {
		return fmt.Errorf("persist snapshot: %w", err)
	}
	return nil
}

// Read-only accessors for the render layer. Reads happen between event
// applications, never concurrently with one.

func (a *App) Channels() []Channel { return a.channels.Items() }

func (a *App) SelectedIndex() (int, bool) { return a.channels.Selected() }

func (a *App) SelectedChannel() (Channel, bool) {
	idx, ok := a.channels.Selected()
	if !ok {
		return Channel{}, false
	}
	return a.channels.Items()[idx], true
}

func (a *App) Window() Viewport { return a.viewport }

func (a *App) InputText() string { return a.input.Text() }

// InputColumn is the terminal column of the input cursor.
func (a *App) InputColumn() int { return a.input.CharOffset() }

// InputByteOffset is the cursor position in bytes into InputText, always a
// rune boundary.
func (a *App) InputByteOffset() int { return a.input.ByteOffset() }

func (a *App) SelfName() string { return a.selfName }

func (a *App) Quitting() bool { return a.quitting }
