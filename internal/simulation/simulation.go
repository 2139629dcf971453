// Package simulation builds a simulated dataset with known truth from a real
// one: abundant reads are kept as templates and random substitutions are
// injected into their occurrences.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/specialistvlad/noise2read/internal/config"
	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/specialistvlad/noise2read/internal/fsutil"
	"github.com/specialistvlad/noise2read/internal/readgraph"
	"github.com/specialistvlad/noise2read/internal/seqio"
)

// ErrTooFewTemplates is returned when the input has fewer abundant reads
// than requested.
var ErrTooFewTemplates = errors.New("not enough template reads")

// Options configures Simulate.
type Options struct {
	MinFreq      int
	MinReadCount int
	// ErrorRate1 and ErrorRate2 are the chances of one and two
	// substitutions per read.
	ErrorRate1 float64
	ErrorRate2 float64
	Seed       int
	Alphabet   string
}

// OptionsFrom maps the Simulation section onto Options.
func OptionsFrom(cfg config.Simulation, readType string) Options {
	return Options{
		MinFreq:      cfg.MinFreq,
		MinReadCount: cfg.MinReadCount,
		ErrorRate1:   cfg.ErrorRate1,
		ErrorRate2:   cfg.ErrorRate2,
		Seed:         cfg.Seed,
		Alphabet:     readgraph.Alphabet(readType),
	}
}

// Result summarises a simulation.
type Result struct {
	SimulatedPath string
	TruePath      string
	Templates     int
	Reads         int
	OneError      int
	TwoErrors     int
}

// Simulate writes "<base>_simulated.<ext>" and "<base>_simulated_true.<ext>"
// to dir. Both hold every occurrence of a template read in input order with
// the same IDs; only the simulated file carries injected errors.
func Simulate(ctx context.Context, input, dir string, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	ds, err := seqio.Counts(ctx, input)
	if err != nil {
		return nil, err
	}
	templates := make(map[string]bool)
	for seq, n := range ds.Counts {
		if n >= opts.MinFreq {
			templates[seq] = true
		}
	}
	if len(templates) < opts.MinReadCount {
		return nil, fmt.Errorf("%w: %d reads occur at least %d times, %d required",
			ErrTooFewTemplates, len(templates), opts.MinFreq, opts.MinReadCount)
	}
	if err := fsutil.EnsureDir(dir); err != nil {
		return nil, err
	}

	ext := ds.Type.Ext()
	res := &Result{
		SimulatedPath: fsutil.Derived(dir, input, "_simulated", ext),
		TruePath:      fsutil.Derived(dir, input, "_simulated_true", ext),
		Templates:     len(templates),
	}
	sim, err := seqio.Create(res.SimulatedPath)
	if err != nil {
		return nil, err
	}
	defer sim.Discard()
	tru, err := seqio.Create(res.TruePath)
	if err != nil {
		return nil, err
	}
	defer tru.Discard()

	alphabet := opts.Alphabet
	if alphabet == "" {
		alphabet = readgraph.DNABases
	}
	rng := rand.New(rand.NewPCG(uint64(opts.Seed), uint64(opts.Seed)))

	err = seqio.Each(input, func(rec seqio.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !templates[rec.Seq] {
			return nil
		}
		if err := tru.Write(rec); err != nil {
			return err
		}
		res.Reads++
		switch n := errorCount(rng, opts.ErrorRate1, opts.ErrorRate2); n {
		case 1:
			res.OneError++
			rec.Seq = Mutate(rng, rec.Seq, n, alphabet)
		case 2:
			res.TwoErrors++
			rec.Seq = Mutate(rng, rec.Seq, n, alphabet)
		}
		return sim.Write(rec)
	})
	if err != nil {
		return nil, err
	}
	if err := sim.Close(); err != nil {
		return nil, err
	}
	if err := tru.Close(); err != nil {
		return nil, err
	}
	logger.Info("Simulated dataset written.",
		"templates", res.Templates, "reads", res.Reads,
		"one_error", res.OneError, "two_errors", res.TwoErrors,
		"path", res.SimulatedPath)
	return res, nil
}

func errorCount(rng *rand.Rand, rate1, rate2 float64) int {
	x := rng.Float64()
	switch {
	case x < rate2:
		return 2
	case x < rate2+rate1:
		return 1
	}
	return 0
}

// Mutate substitutes n distinct positions of seq with a different base of
// alphabet. Reads shorter than n are substituted at every position.
func Mutate(rng *rand.Rand, seq string, n int, alphabet string) string {
	b := []byte(seq)
	n = min(n, len(b))
	for _, pos := range rng.Perm(len(b))[:n] {
		choices := strings.ReplaceAll(alphabet, string(b[pos]), "")
		if choices == "" {
			continue
		}
		b[pos] = choices[rng.IntN(len(choices))]
	}
	return string(b)
}
