package normalize

import (
	"strconv"
	"strings"
)

// Severities reported by the linter.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Diagnostic is one lint finding. Column is never reported by the linter and
// always encodes as null.
type Diagnostic struct {
	File     string `json:"file"`
	Line     uint64 `json:"line"`
	Column   *int   `json:"column"`
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ParseDiagnostics reads `path:line:rule:severity: message` lines from lint
// stdout. Lines of any other shape (banners, rule listings) are skipped.
func ParseDiagnostics(stdout string) []Diagnostic {
	var diagnostics []Diagnostic
	for _, raw := range lines(stdout) {
		if d, ok := parseDiagnosticLine(raw); ok {
			diagnostics = append(diagnostics, d)
		}
	}
	return diagnostics
}

func parseDiagnosticLine(raw string) (Diagnostic, bool) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return Diagnostic{}, false
	}

	header, message, ok := strings.Cut(line, ": ")
	if !ok {
		return Diagnostic{}, false
	}

	// Split from the right so a path containing ':' (drive letters) stays whole.
	header, severity, ok := cutLast(header, ":")
	if !ok {
		return Diagnostic{}, false
	}
	header, rule, ok := cutLast(header, ":")
	if !ok {
		return Diagnostic{}, false
	}
	file, lineNo, ok := cutLast(header, ":")
	if !ok {
		return Diagnostic{}, false
	}

	n, err := strconv.ParseUint(lineNo, 10, 64)
	if err != nil {
		return Diagnostic{}, false
	}

	return Diagnostic{
		File:     file,
		Line:     n,
		Rule:     rule,
		Severity: severity,
		Message:  message,
	}, true
}

func cutLast(s, sep string) (before, after string, found bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}

// CountSeverities returns the number of error and warning diagnostics.
func CountSeverities(diagnostics []Diagnostic) (errors, warnings int) {
	for _, d := range diagnostics {
		switch d.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}
	return errors, warnings
}

// Truncate returns at most limit items and whether any were dropped. The
// returned slice is never nil.
func Truncate[T any](items []T, limit int) ([]T, bool) {
	limit = max(limit, 0)
	if len(items) <= limit {
		if items == nil {
			items = []T{}
		}
		return items, false
	}
	return items[:limit], true
}
