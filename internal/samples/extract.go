package samples

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/specialistvlad/noise2read/internal/executor"
	"github.com/specialistvlad/noise2read/internal/readgraph"
)

// Extract runs the genuine, ambiguous and negative extractors on g, and the
// high-ambiguous one as well when highAmbiguous is set on a 1nt graph.
func Extract(ctx context.Context, g *readgraph.Graph, ed int, opts Options, highAmbiguous bool) (*Set, error) {
	logger := ctxlog.FromContext(ctx).With("edit_distance", ed)

	genuine, ambiguous, err := ExtractGenuineAmbiguous(ctx, g, ed, opts)
	if err != nil {
		return nil, err
	}
	set := &Set{
		EditDistance: ed,
		Genuine:      genuine,
		Ambiguous:    ambiguous,
		Negatives:    ExtractNegatives(g, opts.HighFreqThre),
	}
	if ed == 1 && highAmbiguous {
		set.HighAmbiguous, err = ExtractHighAmbiguous(g, opts.HighFreqThre)
		if err != nil {
			return nil, err
		}
	}
	logger.Info("Samples extracted.",
		"genuine", len(set.Genuine), "ambiguous_groups", len(set.Ambiguous),
		"negative", len(set.Negatives), "high_ambiguous_groups", len(set.HighAmbiguous))
	return set, nil
}

type componentResult struct {
	genuine   []Sample
	ambiguous [][]Sample
}

// ExtractGenuineAmbiguous finds genuine and ambiguous errors. Components are
// processed in parallel; results keep component order, and ambiguous groups
// are numbered in that order.
func ExtractGenuineAmbiguous(ctx context.Context, g *readgraph.Graph, ed int, opts Options) ([]Sample, []Group, error) {
	var comps [][]string
	for _, c := range g.Components() {
		if len(c) > 1 {
			comps = append(comps, c)
		}
	}

	pool := opts.Pool
	pool.Stage = fmt.Sprintf("extract %dnt genuine and ambiguous errors", ed)
	results, err := executor.Map(ctx, pool, comps, func(_ context.Context, comp []string) (componentResult, error) {
		return extractComponent(g, comp, ed, opts)
	})
	if err != nil {
		return nil, nil, err
	}

	var genuine []Sample
	var groups []Group
	for _, r := range results {
		genuine = append(genuine, r.genuine...)
		for _, s := range r.ambiguous {
			groups = append(groups, Group{Idx: len(groups), Samples: s})
		}
	}
	return genuine, groups, nil
}

func extractComponent(g *readgraph.Graph, comp []string, ed int, opts Options) (componentResult, error) {
	var res componentResult
	for _, read := range comp {
		count := g.Count(read)
		if count > opts.MaxErrorFreq || g.Flagged(read) {
			continue
		}
		degree := g.Degree(read)
		end := Endpoint{Read: read, Count: count, Degree: degree}

		var high []string
		for _, nb := range g.Neighbors(read) {
			if g.Count(nb) >= opts.HighFreqThre {
				high = append(high, nb)
			}
		}

		eligible := degree == 1 || degree <= opts.AmbiguousDegree
		switch {
		case eligible && len(high) == 1:
			s, err := newSample(g, high[0], end, ed)
			if err != nil {
				return res, err
			}
			res.genuine = append(res.genuine, s)
		case eligible && len(high) > 1:
			// strongest candidate first
			sort.SliceStable(high, func(i, j int) bool { return g.Count(high[i]) > g.Count(high[j]) })
			group := make([]Sample, 0, len(high))
			for _, h := range high {
				s, err := newSample(g, h, end, ed)
				if err != nil {
					return res, err
				}
				group = append(group, s)
			}
			res.ambiguous = append(res.ambiguous, group)
		}
		g.SetFlag(read)
	}
	return res, nil
}

func newSample(g *readgraph.Graph, start string, end Endpoint, ed int) (Sample, error) {
	s := Sample{
		Start: Endpoint{Read: start, Count: g.Count(start), Degree: g.Degree(start)},
		End:   end,
	}
	if ed == 1 {
		info, err := Classify(start, end.Read)
		if err != nil {
			return Sample{}, err
		}
		s.Err = &info
	}
	return s, nil
}

// ExtractNegatives returns the isolated reads at or above the
// high-frequency threshold.
func ExtractNegatives(g *readgraph.Graph, highFreqThre int) []Endpoint {
	var out []Endpoint
	for _, read := range g.Isolates() {
		if c := g.Count(read); c >= highFreqThre {
			out = append(out, Endpoint{Read: read, Count: c})
		}
	}
	return out
}

// ExtractHighAmbiguous returns one group per edge whose reads both exceed
// the high-frequency threshold, holding the pair in both directions.
func ExtractHighAmbiguous(g *readgraph.Graph, highFreqThre int) ([]Group, error) {
	var out []Group
	for _, e := range g.Edges() {
		if g.Count(e.A) <= highFreqThre || g.Count(e.B) <= highFreqThre {
			continue
		}
		a := Endpoint{Read: e.A, Count: g.Count(e.A), Degree: g.Degree(e.A)}
		b := Endpoint{Read: e.B, Count: g.Count(e.B), Degree: g.Degree(e.B)}
		ab, err := newSample(g, a.Read, b, 1)
		if err != nil {
			return nil, err
		}
		ba, err := newSample(g, b.Read, a, 1)
		if err != nil {
			return nil, err
		}
		out = append(out, Group{Idx: len(out), Samples: []Sample{ab, ba}})
	}
	return out, nil
}

// AmpliconOptions carries the thresholds of the amplicon pass.
type AmpliconOptions struct {
	LowFreq   int
	HighFreq  int
	MaxDegree int
}

// ExtractAmplicon finds reads with count at most LowFreq and degree at most
// MaxDegree, grouping them with every neighbour whose count reaches
// HighFreq. Visited marks are reset first, so a graph already used for
// genuine extraction can be reused.
func ExtractAmplicon(g *readgraph.Graph, opts AmpliconOptions) ([]Group, error) {
	g.ResetFlags()
	var out []Group
	for _, comp := range g.Components() {
		if len(comp) < 2 {
			continue
		}
		for _, read := range comp {
			count, degree := g.Count(read), g.Degree(read)
			if count > opts.LowFreq || degree > opts.MaxDegree || g.Flagged(read) {
				continue
			}
			end := Endpoint{Read: read, Count: count, Degree: degree}
			var group []Sample
			for _, nb := range g.Neighbors(read) {
				if g.Count(nb) < opts.HighFreq {
					continue
				}
				s, err := newSample(g, nb, end, 1)
				if err != nil {
					return nil, err
				}
				group = append(group, s)
			}
			if len(group) > 0 {
				out = append(out, Group{Idx: len(out), Samples: group})
			}
			g.SetFlag(read)
		}
	}
	return out, nil
}

// ExtractUMIGenuine applies the UMI rule: a read with count at most
// MaxErrorFreq and one to four neighbours is paired with the neighbour
// ranking highest by half its degree plus half its count, provided that
// neighbour reaches the high-frequency threshold.
func ExtractUMIGenuine(g *readgraph.Graph, opts Options) ([]Sample, error) {
	var out []Sample
	for _, comp := range g.Components() {
		if len(comp) < 2 {
			continue
		}
		for _, read := range comp {
			count, degree := g.Count(read), g.Degree(read)
			if degree < 1 || degree > 4 || count > opts.MaxErrorFreq || g.Flagged(read) {
				continue
			}
			best, bestScore := "", -1.0
			for _, nb := range g.Neighbors(read) {
				score := 0.5*float64(g.Degree(nb)) + 0.5*float64(g.Count(nb))
				if score > bestScore {
					best, bestScore = nb, score
				}
			}
			if g.Count(best) < opts.HighFreqThre {
				continue
			}
			s, err := newSample(g, best, Endpoint{Read: read, Count: count, Degree: degree}, 1)
			if err != nil {
				return nil, err
			}
			out = append(out, s)
			g.SetFlag(read)
		}
	}
	return out, nil
}
