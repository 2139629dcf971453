package cli

import (
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/noise2read/internal/app"
	"github.com/specialistvlad/noise2read/internal/config"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitRuntime = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

type flags struct {
	configPath string
	input      string
	resultDir  string
	workers    int
	strict     bool
	logFormat  string
	logLevel   string
}

var modeHelp = map[config.Mode]string{
	config.ModeCorrect:  "Correct sequencing errors in a dataset",
	config.ModeAmplicon: "Correct an amplicon dataset, with an extra low-abundance pass",
	config.ModeUMI:      "Correct a UMI dataset with the UMI sample rule",
	config.ModeUMITruth: "Build raw and ground truth datasets from UMI-tagged reads",
	config.ModeSimulate: "Simulate a dataset with known truth from abundant reads",
	config.ModeEvaluate: "Score a correction against ground truth",
	config.ModeCompare:  "Compare read abundances before and after correction",
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var f flags
	var selected *app.Config
	choose := func(mode config.Mode, action string) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.NewConfig(app.Config{
				Mode:       mode,
				Action:     action,
				ConfigPath: f.configPath,
				InputFile:  f.input,
				ResultDir:  f.resultDir,
				Workers:    f.workers,
				WorkersSet: cmd.Flags().Changed("workers"),
				Strict:     f.strict,
				LogFormat:  strings.ToLower(f.logFormat),
				LogLevel:   strings.ToLower(f.logLevel),
			})
			if err != nil {
				return err
			}
			selected = cfg
			return nil
		}
	}

	root := &cobra.Command{
		Use:   "noise2read",
		Short: "noise2read - graph based correction of sequencing noise in short reads.",
		Long: `noise2read builds an edit-distance graph of the unique reads of a
sequencing dataset, extracts labelled error samples from it and corrects
sequencing noise. Every run is driven by one configuration file (.ini, .hcl
or .yaml).`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	if args == nil {
		// cobra falls back to os.Args for nil
		args = []string{}
	}
	root.SetArgs(args)
	root.SetOut(output)
	root.SetErr(output)

	pf := root.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "Path to the configuration file.")
	pf.StringVarP(&f.input, "input", "i", "", "Input dataset, overrides SourceInputData.input_file.")
	pf.StringVarP(&f.resultDir, "result-dir", "d", "", "Output directory, overrides Paths.result_dir.")
	pf.IntVar(&f.workers, "workers", 0, "Worker count, overrides General.num_workers (-1 for all CPUs).")
	pf.BoolVar(&f.strict, "strict", false, "Reject unknown configuration sections and keys.")
	pf.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	for _, mode := range config.Modes {
		root.AddCommand(&cobra.Command{
			Use:   string(mode),
			Short: modeHelp[mode],
			Args:  cobra.NoArgs,
			RunE:  choose(mode, ""),
		})
	}

	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect a configuration file",
	}
	cfgCmd.AddCommand(
		&cobra.Command{
			Use:   app.ActionValidate,
			Short: "Load and validate the configuration",
			Args:  cobra.NoArgs,
			RunE:  choose(config.ModeConfig, app.ActionValidate),
		},
		&cobra.Command{
			Use:   app.ActionShow,
			Short: "Print every option with its default and effective value",
			Args:  cobra.NoArgs,
			RunE:  choose(config.ModeConfig, app.ActionShow),
		},
	)
	root.AddCommand(cfgCmd)

	if err := root.Execute(); err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	if selected == nil {
		// help was printed
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "mode", string(selected.Mode))
	return selected, false, nil
}
