package executor

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// RunResult is the captured output of a finished child process.
type RunResult struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Success reports a zero exit status.
func (r RunResult) Success() bool {
	return r.ExitCode == 0
}

// Runner starts the formatter executable. The returned error is reserved for
// processes that could not be spawned; a nonzero exit is reported through
// RunResult.ExitCode.
type Runner interface {
	Run(ctx context.Context, command string, args []string) (RunResult, error)
}

type CmdRunner struct{}

func (CmdRunner) Run(ctx context.Context, command string, args []string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, command, args...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	result := RunResult{Stdout: stdoutBuf.Bytes(), Stderr: stderrBuf.Bytes()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// ExitCode is -1 when the process was terminated by a signal.
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}
	return result, nil
}

var _ Runner = CmdRunner{}
