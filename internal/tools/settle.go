package tools

import "fmt"

type refreshPhase int

const (
	phaseNone refreshPhase = iota
	phaseFetch
	phaseUpdate
)

// refreshOutcome is what a refresh attempt produced. A non-nil err is always
// recoverable when a cached binary exists.
type refreshOutcome struct {
	phase   refreshPhase
	err     error
	version string
	updated bool
}

// settle decides between the refreshed binary, a stale cached one, and
// failure. It depends only on the outcome and whether a cached file exists.
func settle(outcome refreshOutcome, binaryPath string, cached bool) (Resolution, error) {
	if outcome.err == nil {
		source := SourceCache
		if outcome.updated {
			source = SourceDownloaded
		}
		return Resolution{Path: binaryPath, Version: outcome.version, Source: source}, nil
	}

	if cached {
		var warning string
		switch outcome.phase {
		case phaseFetch:
			warning = fmt.Sprintf("could not fetch latest release, using cached formatter: %v", outcome.err)
		default:
			warning = fmt.Sprintf("could not update formatter, using cached binary: %v", outcome.err)
		}
		return Resolution{Path: binaryPath, Source: SourceCache, Stale: true, Warning: warning}, nil
	}

	switch outcome.phase {
	case phaseFetch:
		return Resolution{}, fmt.Errorf("fetch latest release and no cached formatter found: %w", outcome.err)
	default:
		return Resolution{}, fmt.Errorf("update formatter and no cached formatter found: %w", outcome.err)
	}
}
