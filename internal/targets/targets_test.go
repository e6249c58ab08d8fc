package targets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, rel := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("extends Node\n"), 0o644))
	}
}

func TestResolveDirIncludeExclude(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.gd", "b.txt", "sub/c.gd", "sub/d.gd")

	files, err := Resolve(Request{
		Dir:        root,
		HasDir:     true,
		Include:    []string{"**/*.gd"},
		HasInclude: true,
		Exclude:    []string{"sub/d.gd"},
		HasExclude: true,
	}, true)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a.gd"),
		filepath.Join(root, "sub", "c.gd"),
	}, files)
}

func TestResolveDefaultIncludeIsRecursive(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "main.gd", "deep/er/x.gd", "readme.md")

	files, err := Resolve(Request{Dir: root, HasDir: true}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "deep", "er", "x.gd"),
		filepath.Join(root, "main.gd"),
	}, files)
}

func TestResolveDeduplicatesFilesAndScan(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.gd")
	path := filepath.Join(root, "a.gd")

	files, err := Resolve(Request{
		Files:      []string{path, path},
		Dir:        root,
		HasDir:     true,
		Include:    []string{"a.gd"},
		HasInclude: true,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestResolveExplicitFilesAreVerbatimAndSorted(t *testing.T) {
	files, err := Resolve(Request{Files: []string{"z.gd", "notes.txt", "a.gd", "z.gd"}}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.gd", "notes.txt", "z.gd"}, files)

	again, err := Resolve(Request{Files: []string{"a.gd", "z.gd", "notes.txt"}}, true)
	require.NoError(t, err)
	assert.Equal(t, files, again)
}

func TestResolveRejectsIncludeWithoutDir(t *testing.T) {
	cases := []Request{
		{HasInclude: true, Include: []string{"**/*.gd"}},
		{HasExclude: true},
		{Files: []string{"a.gd"}, HasInclude: true},
	}
	for _, req := range cases {
		for _, required := range []bool{true, false} {
			_, err := Resolve(req, required)
			var usage *UsageError
			require.True(t, errors.As(err, &usage), "expected usage error, got %v", err)
			assert.Equal(t, "`include`/`exclude` can only be used with `dir`", usage.Message)
		}
	}
}

func TestResolveRequired(t *testing.T) {
	_, err := Resolve(Request{}, true)
	var usage *UsageError
	require.True(t, errors.As(err, &usage))
	assert.Equal(t, "Either `files` or `dir` must resolve to at least one file", usage.Message)

	files, err := Resolve(Request{}, false)
	require.NoError(t, err)
	assert.Empty(t, files)

	root := t.TempDir()
	writeTree(t, root, "only.txt")
	_, err = Resolve(Request{Dir: root, HasDir: true}, true)
	require.True(t, errors.As(err, &usage))
}

func TestResolveDirErrors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "file.gd")

	_, err := Resolve(Request{Dir: filepath.Join(root, "missing"), HasDir: true}, false)
	assert.ErrorContains(t, err, "`dir` does not exist")

	_, err = Resolve(Request{Dir: filepath.Join(root, "file.gd"), HasDir: true}, false)
	assert.ErrorContains(t, err, "`dir` is not a directory")

	_, err = Resolve(Request{Dir: root, HasDir: true, Include: []string{"[a-"}, HasInclude: true}, false)
	assert.ErrorContains(t, err, "Invalid glob in `include`")

	_, err = Resolve(Request{Dir: root, HasDir: true, Exclude: []string{"{a,b"}, HasExclude: true}, false)
	assert.ErrorContains(t, err, "Invalid glob in `exclude`")
}

func TestResolveSkipsNonRegularFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "real.gd")
	if err := os.Symlink(filepath.Join(root, "real.gd"), filepath.Join(root, "link.gd")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	files, err := Resolve(Request{Dir: root, HasDir: true}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "real.gd")}, files)
}

func TestResolveStarCrossesDirectories(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.gd", "sub/b.gd", "addons/x/c.gd", "notes.txt")

	files, err := Resolve(Request{
		Dir:        root,
		HasDir:     true,
		Include:    []string{"*.gd"},
		HasInclude: true,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.gd"),
		filepath.Join(root, "addons", "x", "c.gd"),
		filepath.Join(root, "sub", "b.gd"),
	}, files)

	files, err = Resolve(Request{
		Dir:        root,
		HasDir:     true,
		Exclude:    []string{"addons/*"},
		HasExclude: true,
	}, true)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(root, "a.gd"),
		filepath.Join(root, "sub", "b.gd"),
	}, files)
}

func TestExpandPattern(t *testing.T) {
	cases := map[string][]string{
		"a.gd":        {"a.gd"},
		"*.gd":        {"*.gd", "*/**/*.gd"},
		"**/*.gd":     {"**/*.gd", "**/*/**/*.gd"},
		"addons/**":   {"addons/**"},
		"a?b":         {"a?b", "a/b"},
		"[*]x":        {"[*]x"},
		`\*.gd`:       {`\*.gd`},
		"src/a**b.gd": {"src/a*b.gd", "src/a*/**/*b.gd"},
	}
	for pattern, want := range cases {
		assert.Equal(t, want, expandPattern(pattern), pattern)
	}
}
