package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	tickInterval = 150 * time.Millisecond
	marqueeGap   = "   "
	detailWidth  = 56
	statusWidth  = 11
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// tickMsg drives animation (spinner, marquee).
type tickMsg time.Time

// InstallModel renders a single progress row for the formatter acquisition:
// the platform, the current stage and its detail.
type InstallModel struct {
	platform string
	stage    string
	detail   string
	history  []string
	done     bool
	err      error

	tick int
}

// NewInstallModel creates a model for the given platform key.
func NewInstallModel(platform string) InstallModel {
	return InstallModel{platform: platform, stage: "pending"}
}

func scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init satisfies the tea.Model interface.
func (m InstallModel) Init() tea.Cmd {
	return scheduleTick()
}

// Update satisfies the tea.Model interface.
func (m InstallModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.tick++
		if m.done {
			return m, nil
		}
		return m, scheduleTick()

	case StageMsg:
		m.stage = msg.Stage
		m.detail = msg.Detail
		m.history = append(m.history, msg.Stage)
		return m, nil

	case WorkDoneMsg:
		m.done = true
		return m, tea.Quit

	case ErrorMsg:
		m.err = msg.Err
		m.done = true
		return m, tea.Quit

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View satisfies the tea.Model interface.
func (m InstallModel) View() string {
	if m.done && m.err != nil {
		return fmt.Sprintf("Error: %v\n", m.err)
	}

	platformWidth := max(len("PLATFORM"), len(m.platform))

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(pad("PLATFORM", platformWidth)))
	b.WriteString("  ")
	b.WriteString(HeaderStyle.Render(pad("STATUS", statusWidth)))
	b.WriteString("  ")
	b.WriteString(HeaderStyle.Render("DETAIL"))
	b.WriteByte('\n')

	detail := m.detail
	if !m.done && len(strings.TrimSpace(detail)) > detailWidth {
		detail = marqueeText(detail, detailWidth, m.tick)
	} else {
		detail = TruncateWithEllipsis(detail, detailWidth)
	}
	b.WriteString(pad(m.platform, platformWidth))
	b.WriteString("  ")
	b.WriteString(StatusStyle(m.stage).Render(pad(m.stage, statusWidth)))
	b.WriteString("  ")
	b.WriteString(NonEmptyOrDash(detail))
	b.WriteByte('\n')

	if !m.done {
		spinner := spinnerFrames[m.tick%len(spinnerFrames)]
		fmt.Fprintf(&b, "\n%s Preparing gdscript-formatter...\n", spinner)
	}
	return b.String()
}

// Stage returns the most recent stage.
func (m InstallModel) Stage() string {
	return m.stage
}

// History lists every stage received, in order.
func (m InstallModel) History() []string {
	return m.history
}

// Done returns whether the model has finished (work done or error).
func (m InstallModel) Done() bool {
	return m.done
}

// Err returns any fatal error that occurred.
func (m InstallModel) Err() error {
	return m.err
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// marqueeText renders a scrolling window over text that exceeds the given width.
func marqueeText(text string, width, tick int) string {
	text = strings.TrimSpace(text)
	if width <= 0 {
		return ""
	}
	if len(text) <= width {
		return text
	}
	cycle := text + marqueeGap
	offset := tick % len(cycle)
	doubled := cycle + cycle
	return doubled[offset : offset+width]
}

// NonEmptyOrDash returns "-" for empty/whitespace strings.
func NonEmptyOrDash(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "-"
	}
	return value
}

// TruncateWithEllipsis shortens value to limit bytes, marking the cut.
func TruncateWithEllipsis(value string, limit int) string {
	if limit <= 0 {
		return ""
	}
	value = strings.TrimSpace(value)
	if len(value) <= limit {
		return value
	}
	if limit <= 3 {
		return value[:limit]
	}
	return value[:limit-3] + "..."
}
