package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#24292f")).
			Background(lipgloss.Color("#d0d7de")).
			Padding(0, 1)

	userStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedUserStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))

	repoNameStyle = lipgloss.NewStyle().Bold(true)
	starStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("196")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)
