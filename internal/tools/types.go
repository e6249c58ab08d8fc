package tools

// Source records where a resolved formatter binary came from.
type Source string

const (
	SourceOverride   Source = "override"
	SourceCache      Source = "cache"
	SourceDownloaded Source = "downloaded"
	SourceMissing    Source = "missing"
)

// Resolution is the outcome of EnsureBinary.
type Resolution struct {
	Path    string `json:"path"`
	Version string `json:"version,omitempty"`
	Source  Source `json:"source"`
	// Stale is set when a refresh failed and a previously cached binary was
	// returned instead.
	Stale   bool   `json:"stale,omitempty"`
	Warning string `json:"warning,omitempty"`
}

// Status captures the on-disk state for the formatter without touching the
// network.
type Status struct {
	Platform      string `json:"platform,omitempty"`
	CacheRoot     string `json:"cache_root,omitempty"`
	Path          string `json:"path,omitempty"`
	Source        Source `json:"source"`
	Version       string `json:"version,omitempty"`
	BinaryVersion string `json:"binary_version,omitempty"`
	Installed     bool   `json:"installed"`
	Error         string `json:"error,omitempty"`
}

// Stage identifies a step of the acquisition procedure for progress display.
type Stage string

const (
	StageResolving   Stage = "resolving"
	StageDownloading Stage = "downloading"
	StageInstalled   Stage = "installed"
	StageUpToDate    Stage = "cached"
	StageStale       Stage = "stale"
	StageOverride    Stage = "override"
	StageError       Stage = "error"
)
