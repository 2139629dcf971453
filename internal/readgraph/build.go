package readgraph

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/specialistvlad/noise2read/internal/executor"
)

// ErrNoHighFrequencyReads is returned when no read reaches the
// high-frequency threshold, leaving nothing to anchor edges on.
var ErrNoHighFrequencyReads = errors.New("no high-frequency reads detected")

// BuildOptions controls graph construction.
type BuildOptions struct {
	HighFreqThre int
	// Alphabet is the base set variants are enumerated over.
	Alphabet string
	Pool     executor.Options
}

// Build creates the read graph of the given abundances. ed selects the edge
// rule: 1 for all single edits, 2 for double substitutions towards
// low-frequency reads.
func Build(ctx context.Context, counts map[string]int, ed int, opts BuildOptions) (*Graph, error) {
	logger := ctxlog.FromContext(ctx).With("edit_distance", ed)
	if ed != 1 && ed != 2 {
		return nil, fmt.Errorf("unsupported edit distance %d", ed)
	}
	alphabet := opts.Alphabet
	if alphabet == "" {
		alphabet = DNABases
	}

	g := New()
	var high []string
	low := make(map[string]struct{})
	for seq, c := range counts {
		g.AddNode(seq, c)
		if c >= opts.HighFreqThre {
			high = append(high, seq)
		} else {
			low[seq] = struct{}{}
		}
	}
	if len(high) == 0 {
		logger.Error("Error correction failed as no high-frequency reads detected.", "high_freq_thre", opts.HighFreqThre)
		return nil, ErrNoHighFrequencyReads
	}
	sort.Strings(high)
	logger.Debug("Reads partitioned.", "high_frequency", len(high), "low_frequency", len(low))

	pool := opts.Pool
	if pool.Stage == "" {
		pool.Stage = fmt.Sprintf("search %dnt edges", ed)
	}
	enumerate, isTarget := ED1Variants, func(v string) bool {
		_, ok := counts[v]
		return ok
	}
	if ed == 2 {
		enumerate, isTarget = ED2Variants, func(v string) bool {
			_, ok := low[v]
			return ok
		}
	}
	found, err := executor.Map(ctx, pool, high, func(_ context.Context, read string) ([]string, error) {
		var out []string
		for v := range enumerate(read, alphabet) {
			if isTarget(v) {
				out = append(out, v)
			}
		}
		sort.Strings(out)
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	for i, read := range high {
		for _, v := range found[i] {
			if err := g.AddEdge(read, v); err != nil {
				return nil, err
			}
		}
	}

	s := g.Summary()
	logger.Info("Graph summary.", "nodes", s.Nodes, "edges", s.Edges, "isolates", s.Isolates)
	return g, nil
}
