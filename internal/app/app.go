package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/noise2read/internal/config"
	"github.com/specialistvlad/noise2read/internal/ctxlog"
)

// ErrInvalidConfig marks failures to load or validate the configuration,
// as opposed to failures of the run itself.
var ErrInvalidConfig = errors.New("invalid configuration")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	runID  string
	appCfg *Config
	cfg    *config.Config
}

// NewApp loads the configuration file, applies the command-line overrides
// and validates the result for the selected mode.
func NewApp(outW io.Writer, appCfg *Config) (*App, error) {
	runID := uuid.NewString()
	logger := newLogger(appCfg.LogLevel, appCfg.LogFormat, outW).With("run_id", runID)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	cfg, err := config.LoadFile(ctx, appCfg.ConfigPath, appCfg.Strict)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	applyOverrides(cfg, appCfg)
	if err := config.Validate(cfg, appCfg.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	logger.Debug("Configuration loaded and validated.", "path", appCfg.ConfigPath, "mode", string(appCfg.Mode))

	return &App{
		outW:   outW,
		logger: logger,
		runID:  runID,
		appCfg: appCfg,
		cfg:    cfg,
	}, nil
}

func applyOverrides(cfg *config.Config, appCfg *Config) {
	if appCfg.InputFile != "" {
		cfg.SourceInputData.InputFile = appCfg.InputFile
	}
	if appCfg.ResultDir != "" {
		cfg.Paths.ResultDir = appCfg.ResultDir
	}
	if appCfg.WorkersSet {
		cfg.General.NumWorkers = appCfg.Workers
	}
}

// Config returns the effective configuration. This is primarily for testing.
func (a *App) Config() *config.Config {
	return a.cfg
}

// RunID returns the identifier attached to every log line of the run.
func (a *App) RunID() string {
	return a.runID
}
