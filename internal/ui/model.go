// Package ui renders the chat engine as a bubbletea program. The model owns
// no conversation state of its own: every intent becomes an engine event and
// every frame is drawn from the engine's read accessors.
package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"

	"murmur/internal/app"
	"murmur/internal/logging"
	"murmur/internal/signal"
)

// chromeRows is the number of terminal rows not available to the channel
// sidebar: the input line and the status line.
const chromeRows = 2

type Options struct {
	Engine   *app.App
	Client   signal.Client
	Logger   logging.Logger
	Seed     bool
	Markdown bool
	Sidebar  int
}

type Model struct {
	engine *app.App
	client signal.Client
	log    logging.Logger
	keys   keyMap
	zones  *zone.Manager
	spin   spinner.Model

	width        int
	height       int
	sidebarWidth int
	markdown     bool
	seeding      bool

	status      string
	statusError bool
	switcher    *switcher
	fatal       error
}

// seededMsg carries the first-run directory fetch result.
type seededMsg struct {
	groups   []signal.Group
	contacts []signal.Contact
	err      error
}

// minuteTickMsg re-renders relative timestamps.
type minuteTickMsg time.Time

func New(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = statusStyle
	sidebar := opts.Sidebar
	if sidebar <= 0 {
		sidebar = 28
	}
	return &Model{
		engine:       opts.Engine,
		client:       opts.Client,
		log:          log,
		keys:         defaultKeyMap(),
		zones:        zone.New(),
		spin:         sp,
		sidebarWidth: sidebar,
		markdown:     opts.Markdown,
		seeding:      opts.Seed,
	}
}

// Err reports the engine failure that terminated the program, if any.
func (m *Model) Err() error { return m.fatal }

func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{minuteTick()}
	if m.seeding {
		cmds = append(cmds, m.spin.Tick, m.seedCmd())
	}
	return tea.Batch(cmds...)
}

// seedCmd runs the one-time directory fetch that populates an empty channel
// list on first run.
func (m *Model) seedCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		groups, err := m.client.ListGroups(ctx)
		if err != nil {
			return seededMsg{err: err}
		}
		contacts, err := m.client.ListContacts(ctx)
		if err != nil {
			return seededMsg{err: err}
		}
		return seededMsg{groups: groups, contacts: contacts}
	}
}

func minuteTick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return minuteTickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.apply(app.Resize{Rows: max(msg.Height-chromeRows, 0)})

	case seededMsg:
		m.seeding = false
		if msg.err != nil {
			m.log.Error("directory fetch failed", logging.F("error", msg.err))
			m.setError("could not load contacts: " + msg.err.Error())
			return m, nil
		}
		if cmd := m.apply(app.ChannelsLoaded{Groups: msg.groups, Contacts: msg.contacts}); cmd != nil {
			return m, cmd
		}
		// Names learned by the fetch also correct raw identifiers already
		// on screen from earlier sessions.
		for _, c := range msg.contacts {
			if c.Name == "" {
				continue
			}
			if cmd := m.apply(app.NameResolved{Identity: c.Number, Name: c.Name}); cmd != nil {
				return m, cmd
			}
		}
		return m, nil

	case spinner.TickMsg:
		if !m.seeding {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case minuteTickMsg:
		return m, minuteTick()

	case app.Event:
		// Network arrivals delivered through Program.Send.
		return m, m.apply(msg)
	}
	return m, nil
}

// apply reduces one event against the engine. Unsupported-operation errors
// land in the status line; anything else is fatal, because a failed persist
// means memory and disk have diverged.
func (m *Model) apply(ev app.Event) tea.Cmd {
	err := m.engine.Apply(context.Background(), ev)
	switch {
	case err == nil:
	case errors.Is(err, app.ErrGroupSendUnsupported):
		m.setError("sending to groups is not supported yet")
		return nil
	default:
		m.fatal = err
		m.log.Error("engine failure", logging.F("error", err))
		return tea.Quit
	}
	if m.engine.Quitting() {
		return tea.Quit
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.switcher != nil {
		return m.handleSwitcherKey(msg)
	}
	m.clearStatus()

	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, m.apply(app.Quit{})
	case key.Matches(msg, keys.ChannelUp):
		return m, m.apply(app.ChannelUp{})
	case key.Matches(msg, keys.ChannelDown):
		return m, m.apply(app.ChannelDown{})
	case key.Matches(msg, keys.PageUp):
		return m, m.apply(app.PageUp{})
	case key.Matches(msg, keys.PageDown):
		return m, m.apply(app.PageDown{})
	case key.Matches(msg, keys.Submit):
		return m, m.apply(app.Submit{})
	case key.Matches(msg, keys.Left):
		return m, m.apply(app.CursorLeft{})
	case key.Matches(msg, keys.Right):
		return m, m.apply(app.CursorRight{})
	case key.Matches(msg, keys.WordLeft):
		return m, m.apply(app.CursorWordLeft{})
	case key.Matches(msg, keys.WordRight):
		return m, m.apply(app.CursorWordRight{})
	case key.Matches(msg, keys.Home):
		return m, m.apply(app.CursorHome{})
	case key.Matches(msg, keys.End):
		return m, m.apply(app.CursorEnd{})
	case key.Matches(msg, keys.Backspace):
		return m, m.apply(app.Backspace{})
	case key.Matches(msg, keys.DeleteWord):
		return m, m.apply(app.DeleteWord{})
	case key.Matches(msg, keys.DeleteSuffix):
		return m, m.apply(app.DeleteSuffix{})
	case key.Matches(msg, keys.Copy):
		m.copyLastMessage()
		return m, nil
	case key.Matches(msg, keys.Switcher):
		m.openSwitcher()
		return m, nil
	case key.Matches(msg, keys.ToggleMarkdown):
		m.markdown = !m.markdown
		return m, nil
	}

	switch msg.Type {
	case tea.KeySpace:
		return m, m.apply(app.InputRune{Rune: ' '})
	case tea.KeyRunes:
		if msg.Alt {
			return m, nil
		}
		var cmd tea.Cmd
		for _, r := range msg.Runes {
			if cmd = m.apply(app.InputRune{Rune: r}); cmd != nil {
				break
			}
		}
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleSwitcherKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sw := m.switcher
	switch msg.Type {
	case tea.KeyEsc, tea.KeyCtrlC:
		m.switcher = nil
		return m, nil
	case tea.KeyEnter:
		idx := sw.selected()
		m.switcher = nil
		if idx < 0 {
			return m, nil
		}
		return m, m.apply(app.SelectChannel{Index: idx})
	case tea.KeyUp:
		sw.moveUp()
		return m, nil
	case tea.KeyDown:
		sw.moveDown()
		return m, nil
	case tea.KeyBackspace:
		sw.backspace()
		return m, nil
	case tea.KeySpace:
		sw.typeRune(' ')
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			sw.typeRune(r)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	win := m.engine.Window()
	total := len(m.engine.Channels())
	rows := max(m.height-chromeRows, 0)
	for row := 0; row < rows; row++ {
		idx := win.Top + row
		if idx >= total {
			break
		}
		if m.zones.Get(channelZoneID(idx)).InBounds(msg) {
			return m, m.apply(app.SelectChannel{Index: idx})
		}
	}
	return m, nil
}

func (m *Model) openSwitcher() {
	channels := m.engine.Channels()
	if len(channels) == 0 {
		return
	}
	names := make([]string, len(channels))
	for i := range channels {
		names[i] = channels[i].Name
	}
	m.switcher = newSwitcher(names)
}

func (m *Model) copyLastMessage() {
	ch, ok := m.engine.SelectedChannel()
	if !ok {
		return
	}
	msg, ok := ch.LastMessage()
	if !ok || msg.Text == "" {
		m.setError("nothing to copy")
		return
	}
	if err := copyToClipboard(msg.Text); err != nil {
		m.log.Error("clipboard copy failed", logging.F("error", err))
		m.setError("copy failed: " + err.Error())
		return
	}
	m.setStatus(fmt.Sprintf("copied message from %s", msg.FromName))
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusError = false
}

func (m *Model) setError(s string) {
	m.status = s
	m.statusError = true
}

func (m *Model) clearStatus() {
	m.status = ""
	m.statusError = false
}

func channelZoneID(idx int) string {
	return fmt.Sprintf("channel-%d", idx)
}
