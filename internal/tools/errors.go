package tools

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned when no release is published for the
// running OS/architecture. There is no fallback.
var ErrUnsupportedPlatform = errors.New("unsupported platform for gdscript-formatter")

// NetworkError wraps a failed request to the release endpoint or asset host.
type NetworkError struct {
	Op  string
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ArchiveError reports a downloaded archive that is unreadable or lacks the
// formatter executable.
type ArchiveError struct {
	Entry string
	Err   error
}

func (e *ArchiveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("formatter archive: %v", e.Err)
	}
	return fmt.Sprintf("formatter binary %q not found in downloaded zip asset", e.Entry)
}

func (e *ArchiveError) Unwrap() error { return e.Err }
