package tools

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"gdscriptmcp/internal/paths"
)

// Detect reports the cached formatter state without querying the network.
// When probe is set the binary is run with --version.
func (m *Manager) Detect(ctx context.Context, probe bool) Status {
	status := Status{CacheRoot: m.cacheRoot, Source: SourceMissing}

	if override := m.overridePath(); override != "" {
		status.Source = SourceOverride
		status.Path = override
		status.Installed = paths.Exists(override)
		if !status.Installed {
			status.Error = fmt.Sprintf("%s points to a missing file: %s", EnvBinaryPath, override)
		}
	} else if m.platformErr != nil {
		status.Error = m.platformErr.Error()
		return status
	} else {
		status.Platform = m.platform.Key()
		platformDir := filepath.Join(m.cacheRoot, m.platform.Key())
		status.Path = filepath.Join(platformDir, m.platform.BinaryName())
		status.Version = readVersionMarker(filepath.Join(platformDir, versionFile))
		if ok, _ := paths.FileExists(status.Path); ok {
			status.Installed = true
			status.Source = SourceCache
		}
	}

	if probe && status.Installed {
		version, err := readVersion(ctx, status.Path)
		if err != nil {
			status.Error = err.Error()
		} else {
			status.BinaryVersion = version
		}
	}
	return status
}

func readVersion(ctx context.Context, path string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	output, err := exec.CommandContext(ctx, path, "--version").Output()
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", filepath.Base(path), err)
	}
	return firstLine(strings.TrimSpace(string(output))), nil
}

func firstLine(text string) string {
	if idx := strings.IndexByte(text, '\n'); idx >= 0 {
		return strings.TrimSpace(text[:idx])
	}
	return text
}
