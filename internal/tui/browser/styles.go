package browser

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))

	folderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

	noteStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))

	countStyle = lipgloss.NewStyle().Faint(true)

	grabbedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Italic(true)

	dropTargetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

	infoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	promptStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)
)
