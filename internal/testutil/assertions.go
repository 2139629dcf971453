package testutil

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertLogged checks that a log line with the given message was emitted
// during the run.
func AssertLogged(t *testing.T, result *HarnessResult, msg string) {
	t.Helper()

	expected := `msg="` + msg + `"`
	require.True(t,
		strings.Contains(result.LogOutput, expected),
		"expected log message %q was not found in logs", msg,
	)
}

// AssertFiles checks that every named file exists in the harness directory.
func AssertFiles(t *testing.T, result *HarnessResult, names ...string) {
	t.Helper()

	for _, name := range names {
		_, err := os.Stat(result.Path(name))
		require.NoError(t, err, "expected output file %s", name)
	}
}

// ReadTSV returns the rows of a tab separated file in the harness directory.
func ReadTSV(t *testing.T, result *HarnessResult, name string) [][]string {
	t.Helper()

	data, err := os.ReadFile(result.Path(name))
	require.NoError(t, err)
	var rows [][]string
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		rows = append(rows, strings.Split(line, "\t"))
	}
	return rows
}
