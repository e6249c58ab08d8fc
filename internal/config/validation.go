package config

import (
	"fmt"
	"net/url"
	"os"

	"gdscriptmcp/internal/logx"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

// Validate checks the loaded configuration. Errors prevent startup; warnings
// are logged.
func (c Config) Validate() []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateVersion()...)
	results = append(results, c.validateRelease()...)
	results = append(results, c.validateBinary()...)
	results = append(results, c.validateLog()...)
	return results
}

// Errors filters results down to error-level findings.
func Errors(results []ValidationResult) []ValidationResult {
	var errs []ValidationResult
	for _, r := range results {
		if r.Level == "error" {
			errs = append(errs, r)
		}
	}
	return errs
}

func (c Config) validateVersion() []ValidationResult {
	if c.Version == 1 {
		return nil
	}
	return []ValidationResult{{
		Level:   "warning",
		Message: fmt.Sprintf("unknown config version %d; expected 1", c.Version),
	}}
}

func (c Config) validateRelease() []ValidationResult {
	var results []ValidationResult
	u, err := url.Parse(c.Release.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("release.url %q must be an absolute http(s) URL", c.Release.URL),
		})
	}
	if c.Release.TimeoutSec < 0 {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("release.timeout_s must be positive, got %d", c.Release.TimeoutSec),
		})
	}
	if c.Release.RetriesValue() < 0 {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("release.retries must be >= 0, got %d", c.Release.RetriesValue()),
		})
	}
	return results
}

func (c Config) validateBinary() []ValidationResult {
	if c.Binary.Path == "" {
		return nil
	}
	if _, err := os.Stat(c.Binary.Path); err != nil {
		return []ValidationResult{{
			Level:   "warning",
			Message: fmt.Sprintf("binary.path %q not found", c.Binary.Path),
		}}
	}
	return nil
}

func (c Config) validateLog() []ValidationResult {
	if _, err := logx.ParseLevel(c.Log.Level); err != nil {
		return []ValidationResult{{
			Level:   "error",
			Message: fmt.Sprintf("log.level: %v", err),
		}}
	}
	return nil
}
