package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"

	"murmur/internal/app"
	"murmur/internal/sanitize"
	"murmur/internal/types"
)

func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	paneRows := max(m.height-chromeRows, 1)

	sidebar := m.viewSidebar(paneRows)
	messages := m.viewMessages(paneRows)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, messages)

	out := lipgloss.JoinVertical(lipgloss.Left,
		body,
		m.viewInput(),
		m.viewStatus(),
	)
	if m.switcher != nil {
		out = m.overlaySwitcher(out)
	}
	return m.zones.Scan(out)
}

// viewSidebar draws the visible window of the channel list, anchored at the
// viewport tracker's top offset.
func (m *Model) viewSidebar(rows int) string {
	width := m.sidebarWidth
	if width >= m.width {
		width = m.width / 3
	}
	inner := max(width-1, 1) // right border column

	channels := m.engine.Channels()
	selected, hasSelection := m.engine.SelectedIndex()
	win := m.engine.Window()

	lines := make([]string, 0, rows)
	for row := 0; row < rows; row++ {
		idx := win.Top + row
		if idx >= len(channels) {
			lines = append(lines, strings.Repeat(" ", inner))
			continue
		}
		lines = append(lines, m.sidebarRow(channels[idx], idx, inner, hasSelection && idx == selected))
	}
	return sidebarStyle.Render(strings.Join(lines, "\n"))
}

func (m *Model) sidebarRow(ch app.Channel, idx, width int, selected bool) string {
	badge := ""
	if ch.Unread > 0 {
		badge = fmt.Sprintf(" (%d)", ch.Unread)
	}
	name := sanitize.Line(ch.Name)
	label := xansi.Truncate(name, max(width-lipgloss.Width(badge), 1), "…")

	style := channelStyle
	if ch.IsGroup {
		style = channelGroupStyle
	}
	if selected {
		style = selectedStyle
	}
	row := style.Render(label)
	if badge != "" {
		row += unreadStyle.Render(badge)
	}
	if pad := width - lipgloss.Width(row); pad > 0 {
		if selected {
			row += selectedStyle.Render(strings.Repeat(" ", pad))
		} else {
			row += strings.Repeat(" ", pad)
		}
	}
	return m.zones.Mark(channelZoneID(idx), row)
}

// viewMessages draws the selected channel's history, ending at the paging
// anchor when one is set and at the newest message otherwise.
func (m *Model) viewMessages(rows int) string {
	width := max(m.width-m.sidebarWidth-1, 10)

	if m.seeding {
		return lipgloss.Place(width, rows, lipgloss.Center, lipgloss.Center,
			m.spin.View()+" loading contacts and groups…")
	}
	ch, ok := m.engine.SelectedChannel()
	if !ok {
		return lipgloss.Place(width, rows, lipgloss.Center, lipgloss.Center,
			emptyPaneStyle.Render("no conversations yet"))
	}

	msgs := ch.Messages.Items()
	end := len(msgs)
	if anchor, ok := ch.Messages.Selected(); ok && anchor+1 < end {
		end = anchor + 1
	}

	var b strings.Builder
	for i := 0; i < end; i++ {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(m.renderMessage(msgs[i], width))
	}
	lines := strings.Split(b.String(), "\n")
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}
	for len(lines) < rows {
		lines = append([]string{""}, lines...)
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (m *Model) renderMessage(msg types.Message, width int) string {
	sender := senderStyle
	if msg.FromName == m.engine.SelfName() {
		sender = selfSenderStyle
	}
	header := sender.Render(sanitize.Line(msg.FromName)) + " " +
		timestampStyle.Render(humanize.Time(msg.ArrivedAt))

	var parts []string
	parts = append(parts, header)
	if msg.Text != "" {
		body := sanitize.Body(msg.Text)
		if m.markdown {
			body = renderMarkdown(body, width)
		} else {
			body = wordwrap.String(body, width)
		}
		parts = append(parts, body)
	}
	for _, att := range msg.Attachments {
		name := att.Filename
		if name == "" {
			name = att.ContentType
		}
		line := fmt.Sprintf("⎘ %s", sanitize.Line(name))
		if att.Size > 0 {
			line += fmt.Sprintf(" (%s)", humanize.Bytes(uint64(att.Size)))
		}
		parts = append(parts, attachmentStyle.Render(line))
	}
	return strings.Join(parts, "\n")
}

// viewInput draws the draft line with a block cursor at the engine's byte
// offset. The reverse-video cell stands in for the terminal cursor.
func (m *Model) viewInput() string {
	prompt := inputPromptStyle.Render("> ")
	text := m.engine.InputText()
	at := m.engine.InputByteOffset()

	before := text[:at]
	under := " "
	after := ""
	if at < len(text) {
		rest := []rune(text[at:])
		under = string(rest[0])
		after = string(rest[1:])
	}
	line := prompt + before + cursorStyle.Render(under) + after
	return xansi.Truncate(line, max(m.width, 1), "")
}

func (m *Model) viewStatus() string {
	if m.status != "" {
		if m.statusError {
			return statusErrorStyle.Render(xansi.Truncate(m.status, max(m.width, 1), "…"))
		}
		return statusStyle.Render(xansi.Truncate(m.status, max(m.width, 1), "…"))
	}
	help := "↑/↓ channels · enter send · pgup/pgdn scroll · ctrl+p switch · ctrl+y copy · ctrl+c quit"
	return helpStyle.Render(xansi.Truncate(help, max(m.width, 1), "…"))
}

// overlaySwitcher centers the fuzzy switcher box over the frame.
func (m *Model) overlaySwitcher(_ string) string {
	sw := m.switcher
	width := min(max(m.width-10, 20), 60)

	var b strings.Builder
	b.WriteString(titleStyle.Render("switch channel"))
	b.WriteString("\n")
	b.WriteString("/ " + sw.query + cursorStyle.Render(" "))
	shown := sw.matches
	if len(shown) > switcherMaxRows {
		shown = shown[:switcherMaxRows]
	}
	for i, match := range shown {
		b.WriteString("\n")
		label := xansi.Truncate(sanitize.Line(match.Label), width-4, "…")
		if i == sw.highlight {
			b.WriteString(switcherMatchStyle.Render("▸ " + label))
		} else {
			b.WriteString("  " + label)
		}
	}
	if len(sw.matches) == 0 {
		b.WriteString("\n" + emptyPaneStyle.Render("no matches"))
	}
	box := switcherBoxStyle.Width(width).Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
