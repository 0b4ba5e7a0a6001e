package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3498db"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9b59b6"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#2ecc71"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e74c3c"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7f8c8d"))

	goldStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f1c40f"))
	silverStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#bdc3c7"))
	bronzeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e67e22"))

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")).
			Background(lipgloss.Color("#34495e")).
			Padding(0, 1)
)

// medalStyle picks the podium color for a zero-based index, falling
// back to the plain value style past third place.
func medalStyle(i int) lipgloss.Style {
	switch i {
	case 0:
		return goldStyle
	case 1:
		return silverStyle
	case 2:
		return bronzeStyle
	default:
		return valueStyle
	}
}
