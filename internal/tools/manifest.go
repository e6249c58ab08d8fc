package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// readVersionMarker returns the trimmed tag recorded beside the cached
// binary, or "" when there is none.
func readVersionMarker(path string) string {
	contents, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(contents))
}

// writeVersionMarker replaces the marker atomically so readers never see a
// partially written tag.
func writeVersionMarker(path, tag string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), versionFile+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp version file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.WriteString(tag + "\n"); err != nil {
		tmp.Close()
		return fmt.Errorf("write version file %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close version file %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace version file %s: %w", path, err)
	}
	return nil
}
