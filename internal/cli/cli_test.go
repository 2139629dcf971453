package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/specialistvlad/noise2read/internal/app"
	"github.com/specialistvlad/noise2read/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Mode(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	args := []string{"correct", "-c", "run.ini", "-i", "reads.fq.gz", "-d", "out", "--workers", "8", "--strict", "--log-level", "DEBUG", "--log-format", "json"}

	// --- Act ---
	cfg, exit, err := Parse(args, &bytes.Buffer{})

	// --- Assert ---
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, &app.Config{
		Mode:       config.ModeCorrect,
		ConfigPath: "run.ini",
		InputFile:  "reads.fq.gz",
		ResultDir:  "out",
		Workers:    8,
		WorkersSet: true,
		Strict:     true,
		LogFormat:  "json",
		LogLevel:   "debug",
	}, cfg)
}

func TestParse_EveryMode(t *testing.T) {
	t.Parallel()

	for _, mode := range config.Modes {
		cfg, _, err := Parse([]string{string(mode), "--config", "c.yaml"}, &bytes.Buffer{})
		require.NoError(t, err, mode)
		assert.Equal(t, mode, cfg.Mode)
		assert.False(t, cfg.WorkersSet, "workers falls back to the config file")
	}
}

func TestParse_ConfigActions(t *testing.T) {
	t.Parallel()

	for _, action := range []string{app.ActionValidate, app.ActionShow} {
		cfg, exit, err := Parse([]string{"config", action, "-c", "c.hcl"}, &bytes.Buffer{})
		require.NoError(t, err)
		assert.False(t, exit)
		assert.Equal(t, config.ModeConfig, cfg.Mode)
		assert.Equal(t, action, cfg.Action)
	}
}

func TestParse_Help(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{nil, {"-h"}, {"correct", "--help"}, {"config"}} {
		out := &bytes.Buffer{}
		cfg, exit, err := Parse(args, out)
		require.NoError(t, err, args)
		assert.True(t, exit, args)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:", args)
	}
}

func TestParse_UsageErrors(t *testing.T) {
	t.Parallel()

	cases := map[string][]string{
		"unknown flag":    {"correct", "-c", "c.ini", "--no-such-flag"},
		"unknown command": {"fix", "-c", "c.ini"},
		"missing config":  {"correct"},
		"bad log level":   {"correct", "-c", "c.ini", "--log-level", "trace"},
		"extra argument":  {"evaluate", "-c", "c.ini", "reads.fq"},
		"zero workers":    {"correct", "-c", "c.ini", "--workers", "0"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Parse(args, &bytes.Buffer{})

			var exitErr *ExitError
			require.True(t, errors.As(err, &exitErr), "got %v", err)
			assert.Equal(t, ExitUsage, exitErr.Code)
		})
	}
}
