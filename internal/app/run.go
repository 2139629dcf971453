package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/specialistvlad/noise2read/internal/abundance"
	"github.com/specialistvlad/noise2read/internal/config"
	"github.com/specialistvlad/noise2read/internal/correction"
	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/specialistvlad/noise2read/internal/evaluation"
	"github.com/specialistvlad/noise2read/internal/executor"
	"github.com/specialistvlad/noise2read/internal/fsutil"
	"github.com/specialistvlad/noise2read/internal/metrics"
	"github.com/specialistvlad/noise2read/internal/simulation"
	"github.com/specialistvlad/noise2read/internal/umi"
)

// Run executes the pipeline of the configured mode.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	mode := a.appCfg.Mode
	a.logger.Debug("App.Run method started.", "mode", string(mode))

	if mode == config.ModeConfig {
		return a.runConfig()
	}

	rec := metrics.New(a.runID, string(mode))
	start := time.Now()
	a.logger.Info("Starting run.", "mode", string(mode), "workers", config.ResolveWorkers(a.cfg.General.NumWorkers))

	err := a.dispatch(ctx, mode, rec)
	rec.ObserveStage("total", time.Since(start))
	if path := a.cfg.Paths.MetricsFile; path != "" {
		if werr := rec.WriteTextfile(path); werr != nil {
			a.logger.Error("Failed to write metrics.", "path", path, "error", werr)
		} else {
			a.logger.Debug("Metrics written.", "path", path)
		}
	}
	if err != nil {
		return fmt.Errorf("%s failed: %w", mode, err)
	}
	a.logger.Info("Run finished.", "mode", string(mode), "elapsed", time.Since(start).Round(time.Millisecond).String())
	return nil
}

func (a *App) pool() executor.Options {
	g := a.cfg.General
	return executor.Options{
		Workers:  config.ResolveWorkers(g.NumWorkers),
		Chunks:   g.ChunksNum,
		MinIters: g.MinIters,
	}
}

// reportPath returns Evaluation.report_file, or "<result_dir>/<mode>.tsv".
func (a *App) reportPath(mode config.Mode) (string, error) {
	if p := a.cfg.Evaluation.ReportFile; p != "" {
		return p, fsutil.EnsureDir(filepath.Dir(p))
	}
	dir := a.cfg.Paths.ResultDir
	return filepath.Join(dir, string(mode)+".tsv"), fsutil.EnsureDir(dir)
}

func (a *App) dispatch(ctx context.Context, mode config.Mode, rec *metrics.Recorder) error {
	cfg := a.cfg
	input := cfg.SourceInputData.InputFile
	dir := cfg.Paths.ResultDir

	switch mode {
	case config.ModeCorrect, config.ModeAmplicon, config.ModeUMI:
		p, err := correction.NewPipeline(cfg, mode, rec)
		if err != nil {
			return err
		}
		_, err = p.Run(ctx)
		return err

	case config.ModeUMITruth:
		defer rec.Stage("umi_truth")()
		_, err := umi.GroundTruth(ctx, input, dir, umi.OptionsFrom(cfg.RealUMI, a.pool()))
		return err

	case config.ModeSimulate:
		defer rec.Stage("simulate")()
		_, err := simulation.Simulate(ctx, input, dir, simulation.OptionsFrom(cfg.Simulation, cfg.EmbeddingSetup.ReadType))
		return err

	case config.ModeEvaluate:
		defer rec.Stage("evaluate")()
		ev := cfg.Evaluation
		if gt := cfg.SourceInputData.GroundTruthData; ev.TrueData == "" && gt != "" {
			ev.TrueData = gt
		}
		rep, err := evaluation.Evaluate(ctx, ev.TrueData, ev.RawData, ev.CorrectedData)
		if err != nil {
			return err
		}
		path, err := a.reportPath(mode)
		if err != nil {
			return err
		}
		if err := evaluation.WriteReport(ctx, path, rep); err != nil {
			return err
		}
		a.logger.Info("Evaluation report written.", "path", path)
		return nil

	case config.ModeCompare:
		defer rec.Stage("compare")()
		ev := cfg.Evaluation
		rows, err := abundance.Compare(ctx, ev.RawData, ev.CorrectedData, abundance.Options{
			Reference: ev.ReferenceFile,
			TopN:      cfg.General.TopN,
		})
		if err != nil {
			return err
		}
		path, err := a.reportPath(mode)
		if err != nil {
			return err
		}
		if err := abundance.WriteTSV(ctx, path, rows); err != nil {
			return err
		}
		a.logger.Info("Abundance report written.", "path", path)
		return nil
	}
	return fmt.Errorf("mode %q has no pipeline", mode)
}

func (a *App) runConfig() error {
	if a.appCfg.Action == ActionValidate {
		_, err := fmt.Fprintf(a.outW, "%s: configuration is valid\n", a.appCfg.ConfigPath)
		return err
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SECTION", "KEY", "TYPE", "DEFAULT", "VALUE")
	for _, o := range config.Describe(a.cfg) {
		value := o.Value
		if o.Changed() {
			value += " *"
		}
		t.Row(o.Section, o.Key, o.Type, o.Default, value)
	}
	_, err := fmt.Fprintln(a.outW, t.Render())
	return err
}
