package paths

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// AppName names the per-user cache directory.
	AppName = "gdscript-formatter-mcp"
	// LocalCacheDirName is created under the working directory when no
	// per-user location is writable.
	LocalCacheDirName = ".gdscript-formatter-mcp-cache"
)

// CacheCandidate is one location considered for the cache root.
type CacheCandidate struct {
	Label string
	Path  string
}

// CacheCandidates lists cache root locations in priority order: the explicit
// override, the platform cache home, the working directory, the temp dir.
func CacheCandidates(override string) []CacheCandidate {
	var candidates []CacheCandidate
	if override = strings.TrimSpace(override); override != "" {
		candidates = append(candidates, CacheCandidate{Label: "override", Path: override})
	}
	if userCache, err := userCacheDir(); err == nil && userCache != "" {
		candidates = append(candidates, CacheCandidate{Label: "user cache", Path: filepath.Join(userCache, AppName)})
	}
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, CacheCandidate{Label: "working directory", Path: filepath.Join(cwd, LocalCacheDirName)})
	}
	candidates = append(candidates, CacheCandidate{Label: "temp", Path: filepath.Join(os.TempDir(), AppName)})
	return candidates
}

// userCacheDir is swapped in tests.
var userCacheDir = os.UserCacheDir

// ResolveCacheRoot creates and returns the first candidate directory that can
// be created. It fails only when every candidate is unusable.
func ResolveCacheRoot(override string) (string, error) {
	candidates := CacheCandidates(override)
	attempts := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		abs, err := filepath.Abs(candidate.Path)
		if err != nil {
			attempts = append(attempts, fmt.Sprintf("%s (%v)", candidate.Path, err))
			continue
		}
		if err := os.MkdirAll(abs, 0o755); err != nil {
			attempts = append(attempts, fmt.Sprintf("%s (%v)", abs, err))
			continue
		}
		return abs, nil
	}
	return "", fmt.Errorf("unable to create any cache directory; tried: %s", strings.Join(attempts, ", "))
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// Exists reports whether anything is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
