package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle         = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	sidebarStyle       = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderRight(true).BorderForeground(lipgloss.Color("238"))
	channelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	channelGroupStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	selectedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236")).Bold(true)
	unreadStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true)
	senderStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Bold(true)
	selfSenderStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	timestampStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	attachmentStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("180")).Italic(true)
	inputPromptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	cursorStyle        = lipgloss.NewStyle().Reverse(true)
	statusStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusErrorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	helpStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	switcherBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("63")).Padding(0, 1)
	switcherMatchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	emptyPaneStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
)
