package executor

import (
	"context"
	"fmt"
	"strconv"

	"gdscriptmcp/internal/normalize"
)

// DefaultMaxDiagnostics caps the diagnostics listed in a lint payload when
// the caller sets no limit.
const DefaultMaxDiagnostics = 500

type LintOptions struct {
	DisableRules     string
	HasDisableRules  bool
	MaxLineLength    int64
	HasMaxLineLength bool
	ListRules        bool
	Pretty           bool
	IncludeRawOutput bool
	MaxDiagnostics   int
}

// Args renders the lint subcommand line for files.
func (o LintOptions) Args(files []string) []string {
	args := []string{"lint"}
	if o.HasDisableRules {
		args = append(args, "--disable", o.DisableRules)
	}
	if o.HasMaxLineLength {
		args = append(args, "--max-line-length", strconv.FormatInt(o.MaxLineLength, 10))
	}
	if o.ListRules {
		args = append(args, "--list-rules")
	}
	if o.Pretty {
		args = append(args, "--pretty")
	}
	return append(args, files...)
}

// LintResult is the outcome of one lint run over all target files.
type LintResult struct {
	Success          bool
	ExitCode         int
	Stdout           string
	Stderr           string
	Diagnostics      []normalize.Diagnostic
	ErrorCount       int
	WarningCount     int
	MaxDiagnostics   int
	IncludeRawOutput bool
}

func (r LintResult) Summary() string {
	status := "failed"
	if r.Success {
		status = "completed successfully"
	}
	return fmt.Sprintf("Lint %s. diagnostics: total=%d, errors=%d, warnings=%d",
		status, len(r.Diagnostics), r.ErrorCount, r.WarningCount)
}

// LintPayload is the structured content of a gdscript_lint result.
type LintPayload struct {
	OK                   bool                   `json:"ok"`
	ExitCode             int                    `json:"exit_code"`
	TotalDiagnostics     int                    `json:"total_diagnostics"`
	ErrorCount           int                    `json:"error_count"`
	WarningCount         int                    `json:"warning_count"`
	MaxDiagnostics       int                    `json:"max_diagnostics"`
	DiagnosticsTruncated bool                   `json:"diagnostics_truncated"`
	Diagnostics          []normalize.Diagnostic `json:"diagnostics"`
	RawStdout            *string                `json:"raw_stdout,omitempty"`
	RawStderr            *string                `json:"raw_stderr,omitempty"`
}

func (r LintResult) Payload() LintPayload {
	diagnostics, truncated := normalize.Truncate(r.Diagnostics, r.MaxDiagnostics)
	payload := LintPayload{
		OK:                   r.Success,
		ExitCode:             r.ExitCode,
		TotalDiagnostics:     len(r.Diagnostics),
		ErrorCount:           r.ErrorCount,
		WarningCount:         r.WarningCount,
		MaxDiagnostics:       r.MaxDiagnostics,
		DiagnosticsTruncated: truncated,
		Diagnostics:          diagnostics,
	}
	if r.IncludeRawOutput {
		stdout, stderr := r.Stdout, r.Stderr
		payload.RawStdout = &stdout
		payload.RawStderr = &stderr
	}
	return payload
}

// LintErrorPayload describes a call that failed before the linter produced
// any output. The error text doubles as the summary.
func LintErrorPayload() LintPayload {
	return LintPayload{
		ExitCode:       -1,
		MaxDiagnostics: DefaultMaxDiagnostics,
		Diagnostics:    []normalize.Diagnostic{},
	}
}

func parseLintOptions(args Arguments) (LintOptions, error) {
	opts := LintOptions{MaxDiagnostics: DefaultMaxDiagnostics}
	var err error

	if opts.DisableRules, opts.HasDisableRules, err = args.String("disable_rules"); err != nil {
		return opts, err
	}
	if opts.MaxLineLength, opts.HasMaxLineLength, err = args.Int("max_line_length"); err != nil {
		return opts, err
	}
	if opts.ListRules, err = args.Bool("list_rules"); err != nil {
		return opts, err
	}
	if opts.Pretty, err = args.Bool("pretty"); err != nil {
		return opts, err
	}
	if opts.IncludeRawOutput, err = args.Bool("include_raw_output"); err != nil {
		return opts, err
	}
	if limit, present, err := args.Count("max_diagnostics"); err != nil {
		return opts, err
	} else if present {
		opts.MaxDiagnostics = limit
	}

	if opts.HasMaxLineLength && opts.MaxLineLength < 1 {
		return opts, usageErrorf("`max_line_length` must be at least 1")
	}
	return opts, nil
}

// Lint runs a single lint process over every target file. A nonzero exit is
// a result, not an error.
func (e *Executor) Lint(ctx context.Context, args Arguments) (LintResult, error) {
	files, err := args.resolveTargets(false)
	if err != nil {
		return LintResult{}, err
	}
	opts, err := parseLintOptions(args)
	if err != nil {
		return LintResult{}, err
	}
	if len(files) == 0 && !opts.ListRules {
		return LintResult{}, usageErrorf("Either `files` or `dir` must resolve to at least one file unless `list_rules` is true")
	}

	binary, err := e.resolver.EnsureBinary(ctx)
	if err != nil {
		return LintResult{}, err
	}

	res, err := e.runner.Run(ctx, binary, opts.Args(files))
	if err != nil {
		return LintResult{}, fmt.Errorf("Failed to execute linter: %w", err)
	}

	stdout := string(res.Stdout)
	diagnostics := normalize.ParseDiagnostics(stdout)
	errorCount, warningCount := normalize.CountSeverities(diagnostics)
	e.log.V(1).Info("lint finished", "files", len(files), "exit_code", res.ExitCode, "diagnostics", len(diagnostics))

	return LintResult{
		Success:          res.Success(),
		ExitCode:         res.ExitCode,
		Stdout:           stdout,
		Stderr:           string(res.Stderr),
		Diagnostics:      diagnostics,
		ErrorCount:       errorCount,
		WarningCount:     warningCount,
		MaxDiagnostics:   opts.MaxDiagnostics,
		IncludeRawOutput: opts.IncludeRawOutput,
	}, nil
}
