package tui

import "github.com/charmbracelet/lipgloss"

var (
	// HeaderStyle styles the column header row.
	HeaderStyle = lipgloss.NewStyle().Bold(true)

	// LabelStyle styles the key column of the status table.
	LabelStyle = lipgloss.NewStyle().Faint(true)

	statusStyles = map[string]lipgloss.Style{
		// Terminal states
		"installed":  lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"downloaded": lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"cached":     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"cache":      lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		"override":   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),

		// Active states
		"resolving":   lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
		"downloading": lipgloss.NewStyle().Foreground(lipgloss.Color("4")),

		// Degraded
		"stale":   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		"missing": lipgloss.NewStyle().Foreground(lipgloss.Color("3")),

		"error": lipgloss.NewStyle().Foreground(lipgloss.Color("1")),

		"pending": lipgloss.NewStyle().Faint(true),
	}
)

// StatusStyle returns the lipgloss style for the given status string.
func StatusStyle(status string) lipgloss.Style {
	if s, ok := statusStyles[status]; ok {
		return s
	}
	return lipgloss.NewStyle()
}
