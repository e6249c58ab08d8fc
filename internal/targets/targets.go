// Package targets resolves the set of files a tool invocation operates on.
package targets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultInclude matches every GDScript file below the scan root.
const DefaultInclude = "**/*.gd"

// UsageError reports arguments that cannot be resolved into a file set.
type UsageError struct {
	Message string
}

func (e *UsageError) Error() string { return e.Message }

func usageErrorf(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// Request describes explicit files plus an optional filtered directory scan.
// The Has* flags record whether the caller supplied the field at all.
type Request struct {
	Files []string

	Dir    string
	HasDir bool

	Include    []string
	HasInclude bool

	Exclude    []string
	HasExclude bool
}

// Resolve returns the sorted, duplicate-free union of the explicit files and
// the scan results. When required is set an empty result is an error.
func Resolve(req Request, required bool) ([]string, error) {
	unique := make(map[string]struct{}, len(req.Files))
	for _, file := range req.Files {
		unique[file] = struct{}{}
	}

	if req.HasDir {
		include := req.Include
		if !req.HasInclude {
			include = []string{DefaultInclude}
		}
		scanned, err := scanDir(req.Dir, include, req.Exclude)
		if err != nil {
			return nil, err
		}
		for _, file := range scanned {
			unique[file] = struct{}{}
		}
	} else if req.HasInclude || req.HasExclude {
		return nil, usageErrorf("`include`/`exclude` can only be used with `dir`")
	}

	if required && len(unique) == 0 {
		return nil, usageErrorf("Either `files` or `dir` must resolve to at least one file")
	}

	files := make([]string, 0, len(unique))
	for file := range unique {
		files = append(files, file)
	}
	sort.Strings(files)
	return files, nil
}

func scanDir(dir string, include, exclude []string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, usageErrorf("`dir` does not exist: %s", dir)
		}
		return nil, fmt.Errorf("stat dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, usageErrorf("`dir` is not a directory: %s", dir)
	}

	if err := validatePatterns(include, "include"); err != nil {
		return nil, err
	}
	if err := validatePatterns(exclude, "exclude"); err != nil {
		return nil, err
	}
	include, exclude = expandPatterns(include), expandPatterns(exclude)

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", path, err)
		}
		rel = filepath.ToSlash(rel)
		if !matchAny(include, rel) || matchAny(exclude, rel) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %q: %w", dir, err)
	}
	return files, nil
}

func validatePatterns(patterns []string, key string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return usageErrorf("Invalid glob in `%s`: '%s'", key, pattern)
		}
	}
	return nil
}

// matchAny reports whether rel matches one of the pre-validated patterns.
func matchAny(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if doublestar.MatchUnvalidated(pattern, rel) {
			return true
		}
	}
	return false
}

// expandPatterns rewrites patterns so that a lone `*` or `?` also matches
// across `/`. Each such wildcard becomes two alternatives: its
// single-segment form and a form spanning directories (`*/**/*` for `*`,
// a literal `/` for `?`). Whole-segment `**` is left alone.
func expandPatterns(patterns []string) []string {
	var out []string
	for _, pattern := range patterns {
		out = append(out, expandPattern(pattern)...)
	}
	return out
}

func expandPattern(pattern string) []string {
	variants := []string{""}
	add := func(alts ...string) {
		next := make([]string, 0, len(variants)*len(alts))
		for _, v := range variants {
			for _, alt := range alts {
				next = append(next, v+alt)
			}
		}
		variants = next
	}

	for i := 0; i < len(pattern); {
		switch pattern[i] {
		case '\\':
			end := min(i+2, len(pattern))
			add(pattern[i:end])
			i = end
		case '[':
			end := classEnd(pattern, i)
			add(pattern[i:end])
			i = end
		case '*':
			end := i
			for end < len(pattern) && pattern[end] == '*' {
				end++
			}
			if end-i >= 2 && (i == 0 || pattern[i-1] == '/') && (end == len(pattern) || pattern[end] == '/') {
				add("**")
			} else {
				add("*", "*/**/*")
			}
			i = end
		case '?':
			add("?", "/")
			i++
		default:
			end := i + 1
			for end < len(pattern) && !strings.ContainsRune("\\[*?", rune(pattern[end])) {
				end++
			}
			add(pattern[i:end])
			i = end
		}
	}
	return variants
}

// classEnd returns the index just past the character class opening at
// start. Patterns are validated first, so the class is closed.
func classEnd(pattern string, start int) int {
	i := start + 1
	if i < len(pattern) && (pattern[i] == '!' || pattern[i] == '^') {
		i++
	}
	if i < len(pattern) && pattern[i] == ']' {
		i++
	}
	for i < len(pattern) {
		if pattern[i] == '\\' {
			i += 2
			continue
		}
		if pattern[i] == ']' {
			return i + 1
		}
		i++
	}
	return len(pattern)
}
