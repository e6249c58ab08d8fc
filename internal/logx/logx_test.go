package logx

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"INFO":  zapcore.InfoLevel,
		"error": zapcore.ErrorLevel,
		"2":     zapcore.Level(-2),
		" 1 ":   zapcore.DebugLevel,
	}
	for input, want := range cases {
		got, err := ParseLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	for _, input := range []string{"", "loud", "0", "-3", "1000"} {
		_, err := ParseLevel(input)
		assert.Error(t, err, input)
	}
}

func TestConsoleLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)

	log.Info("visible")
	log.V(1).Info("hidden")
	assert.Contains(t, buf.String(), "visible")
	assert.NotContains(t, buf.String(), "hidden")

	log.SetLevel(zapcore.DebugLevel)
	log.V(1).Info("now shown")
	assert.Contains(t, buf.String(), "now shown")

	log.Error(errors.New("boom"), "failure", "path", "/tmp/x")
	assert.Regexp(t, regexp.MustCompile(`error\s+failure`), buf.String())
}

func TestLevelFlag(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	log.AddLevelFlag(fs)

	require.NoError(t, fs.Parse([]string{"-v", "debug"}))
	assert.Equal(t, zapcore.DebugLevel, log.Level())
	assert.Equal(t, "debug", fs.Lookup(VerbosityFlagName).Value.String())

	require.NoError(t, fs.Parse([]string{"--verbosity=3"}))
	assert.Equal(t, zapcore.Level(-3), log.Level())

	assert.Error(t, fs.Parse([]string{"--verbosity=chatty"}))
	assert.Equal(t, zapcore.Level(-3), log.Level())
}

func TestFileOutput(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf)
	dir := filepath.Join(t.TempDir(), "logs")

	path, err := log.EnableFileOutput(dir)
	require.NoError(t, err)
	assert.Regexp(t, `^\d{8}-\d{6}\.log$`, filepath.Base(path))

	log.Info("installed formatter", "version", "0.18.0")
	log.V(2).Info("debug detail")
	require.NoError(t, log.Close())

	assert.Contains(t, buf.String(), "installed formatter")
	assert.NotContains(t, buf.String(), "debug detail")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "installed formatter", entry["msg"])
	assert.Equal(t, "0.18.0", entry["version"])
	assert.Contains(t, lines[1], "debug detail")
}
