// Package executor runs the formatter executable for the gdscript_format and
// gdscript_lint tools and shapes its output into tool results.
package executor

import (
	"context"

	"github.com/go-logr/logr"
)

// BinaryResolver yields the path of a runnable formatter executable.
type BinaryResolver interface {
	EnsureBinary(ctx context.Context) (string, error)
}

// Executor runs tool invocations one at a time.
type Executor struct {
	resolver BinaryResolver
	runner   Runner
	log      logr.Logger
}

// New builds an Executor. A nil runner runs real processes.
func New(resolver BinaryResolver, runner Runner, log logr.Logger) *Executor {
	if runner == nil {
		runner = CmdRunner{}
	}
	return &Executor{resolver: resolver, runner: runner, log: log}
}
