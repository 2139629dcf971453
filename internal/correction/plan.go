package correction

import (
	"sort"

	"github.com/specialistvlad/noise2read/internal/samples"
)

// Kind names the pass that produced a fix.
type Kind string

const (
	KindGenuine       Kind = "genuine"
	KindAmbiguous     Kind = "ambiguous"
	KindHighAmbiguous Kind = "high_ambiguous"
	KindGenuine2nt    Kind = "genuine_2nt"
	KindAmplicon      Kind = "amplicon"
	KindUMI           Kind = "umi"
)

// Kinds lists every fix kind in pass order.
var Kinds = []Kind{KindGenuine, KindAmbiguous, KindHighAmbiguous, KindGenuine2nt, KindAmplicon, KindUMI}

// Fix replaces every occurrence of From with To.
type Fix struct {
	From  string
	To    string
	Kind  Kind
	Proba float64
}

// Plan is an ordered set of fixes keyed by the read they correct.
type Plan struct {
	fixes map[string]Fix
	order []string
}

// NewPlan returns an empty plan.
func NewPlan() *Plan {
	return &Plan{fixes: make(map[string]Fix)}
}

// Add records f unless its read already has a fix or the fix is a no-op.
// It reports whether f was recorded.
func (p *Plan) Add(f Fix) bool {
	if f.From == f.To || f.From == "" || f.To == "" {
		return false
	}
	if _, ok := p.fixes[f.From]; ok {
		return false
	}
	p.fixes[f.From] = f
	p.order = append(p.order, f.From)
	return true
}

// Lookup returns the fix recorded for seq.
func (p *Plan) Lookup(seq string) (Fix, bool) {
	f, ok := p.fixes[seq]
	return f, ok
}

// Resolve follows the chain of fixes starting at seq and returns the final
// read. A chain that loops back on itself stops at the last read before the
// loop closes.
func (p *Plan) Resolve(seq string) string {
	seen := map[string]bool{seq: true}
	cur := seq
	for {
		f, ok := p.fixes[cur]
		if !ok || seen[f.To] {
			return cur
		}
		seen[f.To] = true
		cur = f.To
	}
}

// Len returns the number of fixes.
func (p *Plan) Len() int {
	return len(p.order)
}

// Fixes returns every fix in the order it was added.
func (p *Plan) Fixes() []Fix {
	out := make([]Fix, 0, len(p.order))
	for _, from := range p.order {
		out = append(out, p.fixes[from])
	}
	return out
}

// CountByKind returns the number of fixes per kind.
func (p *Plan) CountByKind() map[Kind]int {
	out := make(map[Kind]int)
	for _, f := range p.fixes {
		out[f.Kind]++
	}
	return out
}

// Remap returns the abundances counts would have after the plan is applied.
func (p *Plan) Remap(counts map[string]int) map[string]int {
	out := make(map[string]int, len(counts))
	for seq, n := range counts {
		out[p.Resolve(seq)] += n
	}
	return out
}

// Probabilities returns, for each sample of a group, the share of its start
// read in the summed start counts of the group.
func Probabilities(group []samples.Sample) []float64 {
	total := 0
	for _, s := range group {
		total += s.Start.Count
	}
	out := make([]float64, len(group))
	if total == 0 {
		return out
	}
	for i, s := range group {
		out[i] = float64(s.Start.Count) / float64(total)
	}
	return out
}

// AddSamples adds a fix from the end read to the start read of every sample
// and returns how many were recorded.
func (p *Plan) AddSamples(ss []samples.Sample, kind Kind) int {
	n := 0
	for _, s := range ss {
		if p.Add(Fix{From: s.End.Read, To: s.Start.Read, Kind: kind, Proba: 1}) {
			n++
		}
	}
	return n
}

// AddGroups resolves each group to its most probable candidate and adds the
// fix when that probability reaches threshold. Ties go to the lexically
// smaller start read.
func (p *Plan) AddGroups(groups []samples.Group, threshold float64, kind Kind) int {
	n := 0
	for _, g := range groups {
		if len(g.Samples) == 0 {
			continue
		}
		probs := Probabilities(g.Samples)
		best := 0
		for i := 1; i < len(g.Samples); i++ {
			if better(g.Samples[i], probs[i], g.Samples[best], probs[best]) {
				best = i
			}
		}
		if probs[best] < threshold {
			continue
		}
		s := g.Samples[best]
		if p.Add(Fix{From: s.End.Read, To: s.Start.Read, Kind: kind, Proba: probs[best]}) {
			n++
		}
	}
	return n
}

func better(a samples.Sample, pa float64, b samples.Sample, pb float64) bool {
	if pa != pb {
		return pa > pb
	}
	return a.Start.Read < b.Start.Read
}

// AddHighAmbiguous corrects the lower-count read of each high ambiguous pair
// to the higher-count one when the higher count's share of the pair reaches
// threshold. Pairs with equal counts are left alone.
func (p *Plan) AddHighAmbiguous(groups []samples.Group, threshold float64) int {
	n := 0
	for _, g := range groups {
		if len(g.Samples) == 0 {
			continue
		}
		s := g.Samples[0]
		hi, lo := s.Start, s.End
		if lo.Count > hi.Count {
			hi, lo = lo, hi
		}
		if hi.Count == lo.Count {
			continue
		}
		proba := float64(hi.Count) / float64(hi.Count+lo.Count)
		if proba < threshold {
			continue
		}
		if p.Add(Fix{From: lo.Read, To: hi.Read, Kind: KindHighAmbiguous, Proba: proba}) {
			n++
		}
	}
	return n
}

// sortedKinds returns the kinds present in counts in pass order.
func sortedKinds(counts map[Kind]int) []Kind {
	out := make([]Kind, 0, len(counts))
	for k := range counts {
		out = append(out, k)
	}
	rank := make(map[Kind]int, len(Kinds))
	for i, k := range Kinds {
		rank[k] = i
	}
	sort.Slice(out, func(i, j int) bool { return rank[out[i]] < rank[out[j]] })
	return out
}
