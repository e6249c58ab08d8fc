package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gdscriptmcp/internal/tools"
)

// RenderStatus formats the formatter cache state as a two-column table.
// styled is false for non-terminal output.
func RenderStatus(status tools.Status, styled bool) string {
	installed := "no"
	if status.Installed {
		installed = "yes"
	}
	rows := [][2]string{
		{"platform", NonEmptyOrDash(status.Platform)},
		{"cache root", NonEmptyOrDash(status.CacheRoot)},
		{"binary", NonEmptyOrDash(status.Path)},
		{"source", string(status.Source)},
		{"installed", installed},
		{"release", NonEmptyOrDash(status.Version)},
		{"reported version", NonEmptyOrDash(status.BinaryVersion)},
	}
	if status.Error != "" {
		rows = append(rows, [2]string{"error", status.Error})
	}

	width := 0
	for _, row := range rows {
		width = max(width, len(row[0]))
	}

	var b strings.Builder
	for _, row := range rows {
		label, value := pad(row[0], width), row[1]
		if styled {
			label = LabelStyle.Render(label)
			switch row[0] {
			case "source":
				value = StatusStyle(value).Render(value)
			case "error":
				value = StatusStyle("error").Render(value)
			}
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, label, "  ", value))
		b.WriteByte('\n')
	}
	return b.String()
}
