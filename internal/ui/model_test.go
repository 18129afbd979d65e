package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"murmur/internal/app"
	"murmur/internal/logging"
	"murmur/internal/signal"
	"murmur/internal/store"
)

type fakeClient struct {
	self     string
	names    map[string]string
	groups   []signal.Group
	contacts []signal.Contact
}

func (f *fakeClient) ListGroups(ctx context.Context) ([]signal.Group, error) {
	return f.groups, nil
}

func (f *fakeClient) ListContacts(ctx context.Context) ([]signal.Contact, error) {
	return f.contacts, nil
}

func (f *fakeClient) Send(ctx context.Context, recipient, body string, ts int64) error {
	return nil
}

func (f *fakeClient) ContactName(identity string) string { return f.names[identity] }

func (f *fakeClient) GroupName(groupID string) string { return "" }

func (f *fakeClient) SelfIdentity() string { return f.self }

func newTestModel(t *testing.T, client *fakeClient) *Model {
	t.Helper()
	if client == nil {
		client = &fakeClient{self: "+15550001"}
	}
	engine := app.New(app.Options{
		Client:   client,
		Store:    store.NewFileSnapshotStore(filepath.Join(t.TempDir(), "snapshot.json")),
		Logger:   logging.Nop(),
		SelfName: "Me",
	})
	m := New(Options{Engine: engine, Client: client, Logger: logging.Nop(), Sidebar: 24})
	m.width = 80
	m.height = 24
	return m
}

func update(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(*Model)
	if !ok {
		t.Fatalf("Update returned %T, want *Model", next)
	}
	return out
}

func seed(t *testing.T, m *Model, contacts ...signal.Contact) {
	t.Helper()
	update(t, m, seededMsg{contacts: contacts})
}

func TestKeystrokesReachInputBuffer(t *testing.T) {
	m := newTestModel(t, nil)
	for _, r := range "hi" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("there")})
	if got := m.engine.InputText(); got != "hi there" {
		t.Fatalf("input = %q, want %q", got, "hi there")
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	if got := m.engine.InputText(); got != "hi ther" {
		t.Fatalf("input after backspace = %q, want %q", got, "hi ther")
	}
}

func TestSeededMsgPopulatesChannels(t *testing.T) {
	m := newTestModel(t, nil)
	m.seeding = true
	seed(t, m,
		signal.Contact{Number: "+15550002", Name: "Alice"},
		signal.Contact{Number: "+15550003", Name: "Bob"},
	)
	if m.seeding {
		t.Fatal("seeding flag still set after seededMsg")
	}
	channels := m.engine.Channels()
	if len(channels) != 2 {
		t.Fatalf("channels = %d, want 2", len(channels))
	}
	if channels[0].Name != "Alice" || channels[1].Name != "Bob" {
		t.Fatalf("channel order = %q, %q", channels[0].Name, channels[1].Name)
	}
}

func TestArrowKeysNavigateChannels(t *testing.T) {
	m := newTestModel(t, nil)
	seed(t, m,
		signal.Contact{Number: "+15550002", Name: "Alice"},
		signal.Contact{Number: "+15550003", Name: "Bob"},
	)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if idx, _ := m.engine.SelectedIndex(); idx != 1 {
		t.Fatalf("selected = %d, want 1", idx)
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if idx, _ := m.engine.SelectedIndex(); idx != 0 {
		t.Fatalf("selected after wrap = %d, want 0", idx)
	}
}

func TestNetworkEventAppliedThroughUpdate(t *testing.T) {
	m := newTestModel(t, nil)
	m = update(t, m, app.MessageReceived{Message: signal.InboundMessage{
		Source:    "+15550009",
		Text:      "hello",
		Timestamp: time.Now().UTC(),
	}})
	channels := m.engine.Channels()
	if len(channels) != 1 {
		t.Fatalf("channels = %d, want 1", len(channels))
	}
	// Nothing was selected when the message arrived, so the count ticked up.
	if channels[0].Unread != 1 {
		t.Fatalf("unread = %d, want 1", channels[0].Unread)
	}
}

func TestGroupSendShowsStatusInsteadOfQuitting(t *testing.T) {
	m := newTestModel(t, &fakeClient{self: "+15550001"})
	update(t, m, seededMsg{groups: []signal.Group{{ID: "g1", Name: "Team"}}})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Err() != nil {
		t.Fatalf("group send marked fatal: %v", m.Err())
	}
	if !m.statusError || m.status == "" {
		t.Fatalf("status = %q (error=%v), want an error message", m.status, m.statusError)
	}
	if got := m.engine.InputText(); got != "x" {
		t.Fatalf("input = %q, want draft kept after failed group send", got)
	}
}

func TestSwitcherJumpRederivesViewport(t *testing.T) {
	m := newTestModel(t, nil)
	seed(t, m,
		signal.Contact{Number: "+15550002", Name: "Alice"},
		signal.Contact{Number: "+15550003", Name: "Bob"},
		signal.Contact{Number: "+15550004", Name: "Carol"},
	)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	if m.switcher == nil {
		t.Fatal("switcher did not open")
	}
	for _, r := range "carol" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.switcher != nil {
		t.Fatal("switcher still open after enter")
	}
	idx, ok := m.engine.SelectedIndex()
	if !ok || idx != 2 {
		t.Fatalf("selected = %d (%v), want 2", idx, ok)
	}
	win := m.engine.Window()
	if win.Top+win.Upside != idx {
		t.Fatalf("viewport top %d + upside %d != selected %d", win.Top, win.Upside, idx)
	}
}

func TestViewRendersChannelsAndInput(t *testing.T) {
	m := newTestModel(t, nil)
	seed(t, m, signal.Contact{Number: "+15550002", Name: "Alice"})
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	for _, r := range "draft" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	out := m.View()
	if !strings.Contains(out, "Alice") {
		t.Fatalf("view does not show the channel name:\n%s", out)
	}
	if !strings.Contains(out, "draft") {
		t.Fatalf("view does not show the input draft:\n%s", out)
	}
}

func TestEscDoesNotQuitWhileComposing(t *testing.T) {
	m := newTestModel(t, nil)
	for _, r := range "draft" {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.engine.Quitting() {
		t.Fatal("esc must not quit while the input line is focused")
	}
	if got := m.engine.InputText(); got != "draft" {
		t.Fatalf("input = %q, want draft preserved", got)
	}
}

func TestQuitKeyQuits(t *testing.T) {
	m := newTestModel(t, nil)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c produced no command")
	}
	if msg := cmd(); msg == nil {
		t.Fatal("ctrl+c command produced no message")
	}
	if !m.engine.Quitting() {
		t.Fatal("engine not marked quitting")
	}
}
