package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/noise2read/internal/config"
)

// Config actions available in ModeConfig.
const (
	ActionValidate = "validate"
	ActionShow     = "show"
)

// Config holds all the necessary configuration for an App instance to run.
// Fields other than Mode and ConfigPath override the configuration file when
// set.
type Config struct {
	Mode config.Mode
	// Action is the config subcommand when Mode is ModeConfig.
	Action     string
	ConfigPath string

	InputFile string
	ResultDir string
	// Workers overrides General.num_workers when WorkersSet is true.
	Workers    int
	WorkersSet bool
	Strict     bool

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("a configuration file is required (-c/--config)")
	}
	if _, err := config.ParseMode(string(cfg.Mode)); err != nil {
		return nil, err
	}
	if cfg.Mode == config.ModeConfig && cfg.Action != ActionValidate && cfg.Action != ActionShow {
		return nil, fmt.Errorf("unknown config action %q", cfg.Action)
	}
	if cfg.Workers < -1 || (cfg.WorkersSet && cfg.Workers == 0) {
		return nil, fmt.Errorf("invalid workers %d: must be -1 or positive", cfg.Workers)
	}
	if _, ok := levels[cfg.LogLevel]; !ok {
		return nil, fmt.Errorf("invalid log-level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log-format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	return &cfg, nil
}
