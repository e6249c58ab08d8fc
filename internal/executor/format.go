package executor

import (
	"context"
	"fmt"
	"strconv"

	"gdscriptmcp/internal/normalize"
)

// MaxFailuresReturned caps the failures listed in a format payload.
const MaxFailuresReturned = 20

const internalFailureFile = "<internal>"

// FormatOptions are the formatter flags of one gdscript_format call.
type FormatOptions struct {
	Check       bool
	Stdout      bool
	UseSpaces   bool
	IndentSize  int64
	HasIndent   bool
	ReorderCode bool
	Safe        bool
}

// Args renders the flags in the order the formatter documents them,
// followed by file.
func (o FormatOptions) Args(file string) []string {
	var args []string
	if o.Check {
		args = append(args, "--check")
	}
	if o.Stdout {
		args = append(args, "--stdout")
	}
	if o.UseSpaces {
		args = append(args, "--use-spaces")
	}
	if o.HasIndent {
		args = append(args, "--indent-size", strconv.FormatInt(o.IndentSize, 10))
	}
	if o.ReorderCode {
		args = append(args, "--reorder-code")
	}
	if o.Safe {
		args = append(args, "--safe")
	}
	return append(args, file)
}

type FormatFailure struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// FormatResult is the outcome of formatting every target file.
type FormatResult struct {
	Success        bool
	ProcessedCount int
	Failures       []FormatFailure
}

func (r FormatResult) Summary() string {
	if r.Success {
		return "Format ok."
	}
	return fmt.Sprintf("Format failed. failed_count=%d.", len(r.Failures))
}

// Payload is the structured content for the result.
func (r FormatResult) Payload() map[string]any {
	if r.Success {
		return map[string]any{
			"ok":              true,
			"processed_count": r.ProcessedCount,
		}
	}
	failures, truncated := normalize.Truncate(r.Failures, MaxFailuresReturned)
	return map[string]any{
		"ok":                 false,
		"processed_count":    r.ProcessedCount,
		"failed_count":       len(r.Failures),
		"failures_truncated": truncated,
		"failures":           failures,
	}
}

// FormatErrorSummary and FormatErrorPayload describe a call that failed
// before any file was processed.
const FormatErrorSummary = "Format failed. failed_count=1."

func FormatErrorPayload(err error) map[string]any {
	return map[string]any{
		"ok":                 false,
		"failed_count":       1,
		"failures_truncated": false,
		"failures":           []FormatFailure{{File: internalFailureFile, Reason: err.Error()}},
	}
}

func parseFormatOptions(args Arguments) (FormatOptions, error) {
	var opts FormatOptions
	var err error
	flags := []struct {
		key string
		dst *bool
	}{
		{"check", &opts.Check},
		{"stdout", &opts.Stdout},
		{"use_spaces", &opts.UseSpaces},
		{"reorder_code", &opts.ReorderCode},
		{"safe", &opts.Safe},
	}
	for _, flag := range flags {
		if *flag.dst, err = args.Bool(flag.key); err != nil {
			return opts, err
		}
	}
	// continue_on_error is ignored; every file is always attempted.

	if opts.IndentSize, opts.HasIndent, err = args.Int("indent_size"); err != nil {
		return opts, err
	}
	if opts.HasIndent && opts.IndentSize < 1 {
		return opts, usageErrorf("`indent_size` must be at least 1")
	}
	return opts, nil
}

// Format runs the formatter once per target file, in sorted order, and
// collects a failure for every file that did not exit cleanly. The error
// return covers argument and acquisition problems only.
func (e *Executor) Format(ctx context.Context, args Arguments) (FormatResult, error) {
	files, err := args.resolveTargets(true)
	if err != nil {
		return FormatResult{}, err
	}
	opts, err := parseFormatOptions(args)
	if err != nil {
		return FormatResult{}, err
	}

	binary, err := e.resolver.EnsureBinary(ctx)
	if err != nil {
		return FormatResult{}, err
	}

	var failures []FormatFailure
	for _, file := range files {
		res, err := e.runner.Run(ctx, binary, opts.Args(file))
		if err != nil {
			e.log.V(1).Info("formatter failed to start", "file", file, "error", err.Error())
			failures = append(failures, FormatFailure{
				File:   file,
				Reason: normalize.Reason("Failed to execute formatter: " + err.Error()),
			})
			continue
		}
		if !res.Success() {
			failures = append(failures, FormatFailure{
				File:   file,
				Reason: normalize.FailureReason(string(res.Stdout), string(res.Stderr)),
			})
		}
	}

	e.log.V(1).Info("format finished", "files", len(files), "failed", len(failures))
	return FormatResult{
		Success:        len(failures) == 0,
		ProcessedCount: len(files),
		Failures:       failures,
	}, nil
}
