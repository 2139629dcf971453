package correction

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/noise2read/internal/config"
	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/specialistvlad/noise2read/internal/embedding"
	"github.com/specialistvlad/noise2read/internal/executor"
	"github.com/specialistvlad/noise2read/internal/fsutil"
	"github.com/specialistvlad/noise2read/internal/graphio"
	"github.com/specialistvlad/noise2read/internal/metrics"
	"github.com/specialistvlad/noise2read/internal/readgraph"
	"github.com/specialistvlad/noise2read/internal/samples"
	"github.com/specialistvlad/noise2read/internal/seqio"
	"github.com/specialistvlad/noise2read/internal/training"
)

// Result describes the outputs of a correction run.
type Result struct {
	Output  string
	Report  string
	Plan    *Plan
	Applied *Applied
	// Files lists every auxiliary file written besides Output and Report.
	Files []string
}

// Pipeline runs the correct, amplicon and umi modes.
type Pipeline struct {
	cfg     *config.Config
	mode    config.Mode
	metrics *metrics.Recorder

	dir      string
	pool     executor.Options
	alphabet string
}

// NewPipeline prepares a pipeline for one of the correction modes. rec may
// be nil.
func NewPipeline(cfg *config.Config, mode config.Mode, rec *metrics.Recorder) (*Pipeline, error) {
	switch mode {
	case config.ModeCorrect, config.ModeAmplicon, config.ModeUMI:
	default:
		return nil, fmt.Errorf("mode %q is not a correction mode", mode)
	}
	return &Pipeline{
		cfg:     cfg,
		mode:    mode,
		metrics: rec,
		dir:     cfg.Paths.ResultDir,
		pool: executor.Options{
			Workers:  config.ResolveWorkers(cfg.General.NumWorkers),
			Chunks:   cfg.General.ChunksNum,
			MinIters: cfg.General.MinIters,
		},
		alphabet: readgraph.Alphabet(cfg.EmbeddingSetup.ReadType),
	}, nil
}

func (p *Pipeline) sampleOptions() samples.Options {
	gs := p.cfg.GraphSetup
	return samples.Options{
		HighFreqThre:    gs.HighFreqThre,
		MaxErrorFreq:    gs.MaxErrorFreq,
		AmbiguousDegree: gs.AmbiguousErrorNodeDegree,
		Pool:            p.pool,
	}
}

func (p *Pipeline) buildGraph(ctx context.Context, counts map[string]int, ed int) (*readgraph.Graph, error) {
	defer p.metrics.Stage(fmt.Sprintf("graph%d", ed))()
	g, err := readgraph.Build(ctx, counts, ed, readgraph.BuildOptions{
		HighFreqThre: p.cfg.GraphSetup.HighFreqThre,
		Alphabet:     p.alphabet,
		Pool:         p.pool,
	})
	if err != nil {
		return nil, err
	}
	p.metrics.Graph(ed, g.Len(), g.EdgeCount())
	return g, nil
}

func (p *Pipeline) saveGraph(ctx context.Context, g *readgraph.Graph, ed int) ([]string, error) {
	gs := p.cfg.GraphSetup
	return graphio.Save(ctx, g, p.dir, ed, graphio.Options{
		SaveGraph:   gs.SaveGraph,
		Visualize:   gs.GraphVisualization,
		MaxDrawings: gs.DrawingGraphNum,
	})
}

// Run executes the pipeline on SourceInputData.input_file.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	ctx, logger := ctxlog.With(ctx, "mode", string(p.mode))
	verbose := p.cfg.General.Verbose
	input := p.cfg.SourceInputData.InputFile

	if err := fsutil.EnsureDir(p.dir); err != nil {
		return nil, err
	}
	ds, err := seqio.Counts(ctx, input)
	if err != nil {
		return nil, err
	}
	p.metrics.Dataset(ds.Total, len(ds.Counts))

	res := &Result{Plan: NewPlan()}
	plan := res.Plan

	g1, err := p.buildGraph(ctx, ds.Counts, 1)
	if err != nil {
		return nil, err
	}
	files, err := p.saveGraph(ctx, g1, 1)
	if err != nil {
		return nil, err
	}
	res.Files = append(res.Files, files...)

	if p.mode == config.ModeUMI {
		if err := p.umiPass(ctx, g1, plan, res); err != nil {
			return nil, err
		}
	} else {
		if err := p.firstPass(ctx, ds, g1, plan, res); err != nil {
			return nil, err
		}
		if p.cfg.GraphSetup.ED2Correction {
			if err := p.secondPass(ctx, ds.Counts, plan, res); err != nil {
				return nil, err
			}
		}
		if p.mode == config.ModeAmplicon {
			if err := p.ampliconPass(ctx, ds.Counts, plan, res); err != nil {
				return nil, err
			}
		}
	}

	stop := p.metrics.Stage("apply")
	res.Output = fsutil.Derived(p.dir, input, "_corrected", ds.Type.Ext())
	res.Applied, err = Apply(ctx, input, res.Output, plan)
	stop()
	if err != nil {
		return nil, err
	}
	for kind, n := range res.Applied.ByKind {
		p.metrics.Corrections(string(kind), n)
	}
	if verbose {
		res.Report = fsutil.Derived(p.dir, input, "_corrections", "tsv")
		if err := WriteReport(ctx, res.Report, plan); err != nil {
			return nil, err
		}
	}

	byKind := plan.CountByKind()
	attrs := []any{"output", res.Output, "fixes", plan.Len()}
	for _, k := range sortedKinds(byKind) {
		attrs = append(attrs, string(k), byKind[k])
	}
	logger.Info("Correction completed.", attrs...)
	return res, nil
}

func (p *Pipeline) firstPass(ctx context.Context, ds *seqio.Dataset, g *readgraph.Graph, plan *Plan, res *Result) error {
	defer p.metrics.Stage("samples1")()
	set, err := samples.Extract(ctx, g, 1, p.sampleOptions(), p.cfg.AmbiguousSetup.HighAmbiguous)
	if err != nil {
		return err
	}
	p.recordSamples(set)
	if p.cfg.General.Verbose {
		if err := samples.WriteSet(ctx, p.dir, set); err != nil {
			return err
		}
		iso, rest, err := samples.SplitIsolates(ctx, ds, g, p.dir)
		if err != nil {
			return err
		}
		res.Files = append(res.Files, iso, rest)
	} else {
		ctxlog.FromContext(ctx).Info("Isolates split skipped.", "hint", "set General.verbose to write the isolates and non-isolates files")
	}

	es := p.cfg.EmbeddingSetup
	f := embedding.Featurizer{EntropyKmer: es.EntropyKmer, EntropyQ: es.EntropyQ, KmerFreq: es.KmerFreq, Alphabet: p.alphabet}
	manifest, err := training.Export(ctx, p.dir, f, p.cfg.ModelTuningSetup, set)
	if err != nil {
		return err
	}
	if manifest != nil {
		res.Files = append(res.Files,
			filepath.Join(p.dir, training.TrainFile),
			filepath.Join(p.dir, training.TestFile),
			filepath.Join(p.dir, training.ManifestFile))
	}

	threshold := p.cfg.AmbiguousSetup.ProbaDeviation
	plan.AddSamples(set.Genuine, KindGenuine)
	plan.AddGroups(set.Ambiguous, threshold, KindAmbiguous)
	plan.AddHighAmbiguous(set.HighAmbiguous, threshold)
	return nil
}

func (p *Pipeline) secondPass(ctx context.Context, counts map[string]int, plan *Plan, res *Result) error {
	logger := ctxlog.FromContext(ctx)
	g, err := p.buildGraph(ctx, plan.Remap(counts), 2)
	if errors.Is(err, readgraph.ErrNoHighFrequencyReads) {
		logger.Warn("Skipping 2nt correction.", "reason", err.Error())
		return nil
	}
	if err != nil {
		return err
	}
	files, err := p.saveGraph(ctx, g, 2)
	if err != nil {
		return err
	}
	res.Files = append(res.Files, files...)

	defer p.metrics.Stage("samples2")()
	set, err := samples.Extract(ctx, g, 2, p.sampleOptions(), false)
	if err != nil {
		return err
	}
	p.recordSamples(set)
	if p.cfg.General.Verbose {
		if err := samples.WriteSet(ctx, p.dir, set); err != nil {
			return err
		}
	}
	plan.AddSamples(set.Genuine, KindGenuine2nt)
	return nil
}

func (p *Pipeline) ampliconPass(ctx context.Context, counts map[string]int, plan *Plan, res *Result) error {
	logger := ctxlog.FromContext(ctx)
	g, err := p.buildGraph(ctx, plan.Remap(counts), 1)
	if errors.Is(err, readgraph.ErrNoHighFrequencyReads) {
		logger.Warn("Skipping amplicon correction.", "reason", err.Error())
		return nil
	}
	if err != nil {
		return err
	}

	defer p.metrics.Stage("amplicon")()
	amp := p.cfg.Amplicon
	groups, err := samples.ExtractAmplicon(g, samples.AmpliconOptions{
		LowFreq:   amp.AmpliconLowFreq,
		HighFreq:  amp.AmpliconHighFreq,
		MaxDegree: amp.AmpliconErrorNodeDegree,
	})
	if err != nil {
		return err
	}
	p.metrics.Samples(string(KindAmplicon), len(groups))
	if p.cfg.General.Verbose {
		path := filepath.Join(p.dir, "amplicon.csv")
		if err := samples.WriteGroups(ctx, path, 1, groups); err != nil {
			return err
		}
		res.Files = append(res.Files, path)
	}
	n := plan.AddGroups(groups, amp.AmpliconThresholdProba, KindAmplicon)
	logger.Info("Amplicon errors resolved.", "groups", len(groups), "fixes", n)
	return nil
}

func (p *Pipeline) umiPass(ctx context.Context, g *readgraph.Graph, plan *Plan, res *Result) error {
	defer p.metrics.Stage("samples1")()
	ss, err := samples.ExtractUMIGenuine(g, p.sampleOptions())
	if err != nil {
		return err
	}
	p.metrics.Samples(string(KindUMI), len(ss))
	if p.cfg.General.Verbose {
		path := filepath.Join(p.dir, "umi_genuine.csv")
		if err := samples.WriteSamples(ctx, path, 1, ss); err != nil {
			return err
		}
		res.Files = append(res.Files, path)
	}
	plan.AddSamples(ss, KindUMI)
	return nil
}

func (p *Pipeline) recordSamples(set *samples.Set) {
	suffix := ""
	if set.EditDistance == 2 {
		suffix = "_2nt"
	}
	p.metrics.Samples("genuine"+suffix, len(set.Genuine))
	p.metrics.Samples("ambiguous"+suffix, len(set.Ambiguous))
	p.metrics.Samples("negative"+suffix, len(set.Negatives))
	if len(set.HighAmbiguous) > 0 {
		p.metrics.Samples(string(KindHighAmbiguous), len(set.HighAmbiguous))
	}
}
