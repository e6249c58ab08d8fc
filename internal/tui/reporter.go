package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"gdscriptmcp/internal/tools"
)

// StageReporter returns a callback suitable for tools.Options.OnStage that
// forwards each stage to a running program.
func StageReporter(send func(tea.Msg)) func(tools.Stage, string) {
	return func(stage tools.Stage, detail string) {
		send(StageMsg{Stage: string(stage), Detail: detail})
	}
}
