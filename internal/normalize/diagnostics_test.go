package normalize

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiagnostics(t *testing.T) {
	stdout := "/tmp/a.gd:10:class-name:error: bad class name\n" +
		"/tmp/a.gd:20:max-line-length:warning: too long: 120 > 100\n"

	diagnostics := ParseDiagnostics(stdout)
	require.Len(t, diagnostics, 2)

	assert.Equal(t, Diagnostic{
		File:     "/tmp/a.gd",
		Line:     10,
		Rule:     "class-name",
		Severity: SeverityError,
		Message:  "bad class name",
	}, diagnostics[0])
	assert.Equal(t, "max-line-length", diagnostics[1].Rule)
	assert.Equal(t, SeverityWarning, diagnostics[1].Severity)
	assert.Equal(t, "too long: 120 > 100", diagnostics[1].Message)
}

func TestDiagnosticEncodesNullColumn(t *testing.T) {
	diagnostics := ParseDiagnostics("/tmp/a.gd:10:class-name:error: bad class name")
	require.Len(t, diagnostics, 1)

	data, err := json.Marshal(diagnostics[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"file":"/tmp/a.gd","line":10,"column":null,"rule":"class-name","severity":"error","message":"bad class name"}`, string(data))
}

func TestParseDiagnosticsKeepsColonsInPath(t *testing.T) {
	diagnostics := ParseDiagnostics(`C:\proj\a.gd:3:unused-variable:warning: x is unused`)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, `C:\proj\a.gd`, diagnostics[0].File)
	assert.EqualValues(t, 3, diagnostics[0].Line)
}

func TestParseDiagnosticsSkipsOtherLines(t *testing.T) {
	stdout := "\n" +
		"Available rules:\n" +
		"  class-name: class names use PascalCase\n" +
		"/tmp/a.gd:ten:rule:error: not a line number\n" +
		"a.gd:rule:error: too few segments\n" +
		"no separator here\n" +
		"   \n" +
		"/tmp/b.gd:1:rule:error: kept\n"

	diagnostics := ParseDiagnostics(stdout)
	require.Len(t, diagnostics, 1)
	assert.Equal(t, "/tmp/b.gd", diagnostics[0].File)
}

func TestCountSeverities(t *testing.T) {
	diagnostics := []Diagnostic{
		{Severity: SeverityError},
		{Severity: SeverityWarning},
		{Severity: SeverityWarning},
		{Severity: "info"},
	}
	errs, warnings := CountSeverities(diagnostics)
	assert.Equal(t, 1, errs)
	assert.Equal(t, 2, warnings)
}

func TestTruncate(t *testing.T) {
	for _, tc := range []struct{ length, limit int }{
		{0, 0}, {0, 5}, {3, 5}, {5, 5}, {6, 5}, {10, 0}, {4, -1},
	} {
		t.Run(fmt.Sprintf("%d/%d", tc.length, tc.limit), func(t *testing.T) {
			items := make([]int, tc.length)
			out, truncated := Truncate(items, tc.limit)
			require.NotNil(t, out)
			assert.Len(t, out, min(tc.length, max(tc.limit, 0)))
			assert.Equal(t, tc.length > max(tc.limit, 0), truncated)
		})
	}

	out, truncated := Truncate[Diagnostic](nil, 10)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.False(t, truncated)
}
