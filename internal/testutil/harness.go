package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/specialistvlad/noise2read/internal/app"
	"github.com/specialistvlad/noise2read/internal/cli"
	"github.com/stretchr/testify/require"
)

// DirToken is replaced with the harness directory in file contents and
// arguments, so configs can point at files written by the same test.
const DirToken = "$DIR"

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Dir       string
	LogOutput string
	Err       error
	App       *app.App
}

// Path returns name inside the harness directory.
func (r *HarnessResult) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, args ...string) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, t.TempDir(), files, args...)
}

// RunIntegrationTestWithContext writes files into dir, then parses args and
// runs the application exactly as the binary would, with debug logs captured.
// A dir shared between calls lets one run consume the outputs of another.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, dir string, files map[string]string, args ...string) *HarnessResult {
	t.Helper()

	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(strings.ReplaceAll(content, DirToken, dir)), 0o644))
	}
	expanded := make([]string, len(args))
	for i, a := range args {
		expanded[i] = strings.ReplaceAll(a, DirToken, dir)
	}
	expanded = append(expanded, "--log-level", "debug")

	logBuffer := &SafeBuffer{}
	res := &HarnessResult{Dir: dir}
	defer func() {
		res.LogOutput = logBuffer.String()
		if os.Getenv("NOISE2READ_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), res.LogOutput)
		}
	}()

	appConfig, shouldExit, err := cli.Parse(expanded, logBuffer)
	if err != nil || shouldExit {
		res.Err = err
		return res
	}
	res.App, res.Err = app.NewApp(logBuffer, appConfig)
	if res.Err != nil {
		return res
	}
	res.Err = res.App.Run(ctx)
	return res
}
