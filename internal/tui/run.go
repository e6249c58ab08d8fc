package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// RunWithWork creates a bubbletea program, launches workFn in a goroutine,
// and blocks until the program exits. workFn's error, if any, is shown by the
// model and returned.
func RunWithWork(out io.Writer, model InstallModel, workFn func(send func(tea.Msg)) error) error {
	p := tea.NewProgram(model, tea.WithOutput(out), tea.WithInput(nil))

	go func() {
		// Let bubbletea start its event loop and render the initial frame.
		time.Sleep(50 * time.Millisecond)

		if err := workFn(p.Send); err != nil {
			p.Send(ErrorMsg{Err: err})
			return
		}
		p.Send(WorkDoneMsg{})
	}()

	finalModel, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := finalModel.(InstallModel); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}
