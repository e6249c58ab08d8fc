// Package normalize turns the formatter's free-form text output into
// structured values.
package normalize

import "strings"

// UnknownReason replaces a failure reason that normalizes to nothing.
const UnknownReason = "Unknown formatting error"

const (
	quotedErrorMarker    = `Error: "`
	failedToFormatMarker = "Failed to format file "
)

// Reason collapses whitespace runs to single spaces and trims the result.
// Empty input yields UnknownReason. Reason(Reason(s)) == Reason(s).
func Reason(text string) string {
	normalized := strings.Join(strings.Fields(text), " ")
	if normalized == "" {
		return UnknownReason
	}
	return normalized
}

// FailureReason extracts the most specific explanation for a failed format
// run from one file's captured output.
func FailureReason(stdout, stderr string) string {
	errLines := lines(stderr)

	for _, line := range errLines {
		_, quoted, ok := strings.Cut(line, quotedErrorMarker)
		if !ok {
			continue
		}
		quoted = strings.TrimRight(quoted, `"`)
		if _, reason, ok := strings.Cut(quoted, ": "); ok {
			return Reason(reason)
		}
		return Reason(quoted)
	}

	for _, line := range errLines {
		_, rest, ok := strings.Cut(line, failedToFormatMarker)
		if !ok {
			continue
		}
		if _, reason, ok := strings.Cut(rest, ":"); ok {
			return Reason(strings.Trim(reason, `"`))
		}
	}

	if reason := Reason(stderr); reason != UnknownReason {
		return reason
	}
	return Reason(stdout)
}

func lines(text string) []string {
	if text == "" {
		return nil
	}
	parts := strings.Split(text, "\n")
	for i, part := range parts {
		parts[i] = strings.TrimSuffix(part, "\r")
	}
	return parts
}
