package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/noise2read/internal/cli"
	"github.com/specialistvlad/noise2read/internal/seqio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	args := []string{"-h"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, args)

	// --- Assert ---
	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"correct", "--this-is-not-a-valid-flag"}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(context.Background(), out, args)

	// --- Assert ---
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, cli.ExitUsage, exitErr.Code)
	assert.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}

func TestRun_InvalidConfigIsUsageError(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	// Syntax error in the HCL file.
	path := filepath.Join(t.TempDir(), "noise2read.hcl")
	require.NoError(t, os.WriteFile(path, []byte("GraphSetup {\n  high_freq_thre = \n"), 0o600))

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, []string{"config", "validate", "-c", path})

	// --- Assert ---
	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "got %v", err)
	assert.Equal(t, cli.ExitUsage, exitErr.Code)
}

func TestRun_CorrectEndToEnd(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.fastq.gz")
	var recs []seqio.Record
	for i, seq := range append(repeat("ACGTACGTAC", 12), "ACGTACGTAA") {
		recs = append(recs, seqio.Record{ID: fmt.Sprintf("read%d", i), Seq: seq, Qual: strings.Repeat("F", len(seq))})
	}
	require.NoError(t, seqio.WriteAll(input, recs))
	cfgPath := filepath.Join(dir, "run.yaml")
	cfg := "General:\n  num_workers: 2\n  min_iters: 1\nGraphSetup:\n  ed2_correction: false\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	result := filepath.Join(dir, "result")

	// --- Act ---
	err := run(context.Background(), &bytes.Buffer{}, []string{"correct", "-c", cfgPath, "-i", input, "-d", result})

	// --- Assert ---
	require.NoError(t, err)
	got, err := seqio.ReadAll(filepath.Join(result, "sample_corrected.fastq"))
	require.NoError(t, err)
	require.Len(t, got, 13)
	assert.Equal(t, "read12", got[12].ID)
	assert.Equal(t, "ACGTACGTAC", got[12].Seq)
}

func TestRun_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "sample.fa")
	require.NoError(t, seqio.WriteAll(input, []seqio.Record{{ID: "r", Seq: "ACGT"}}))
	cfgPath := filepath.Join(dir, "run.ini")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[Simulation]\nmin_freq = 1\nmin_read_count = 1\n"), 0o600))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := run(ctx, &bytes.Buffer{}, []string{"simulate", "-c", cfgPath, "-i", input, "-d", filepath.Join(dir, "out")})
	require.ErrorIs(t, err, context.Canceled)
}

func repeat(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}
