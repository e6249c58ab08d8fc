package tui

// StageMsg reports a step of the formatter acquisition.
type StageMsg struct {
	Stage  string
	Detail string
}

// WorkDoneMsg signals that all background work has completed.
type WorkDoneMsg struct{}

// ErrorMsg signals a fatal error; the TUI should quit.
type ErrorMsg struct {
	Err error
}
