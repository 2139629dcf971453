package readgraph

import (
	"context"
	"testing"

	"github.com/specialistvlad/noise2read/internal/executor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildOpts(thre int) BuildOptions {
	return BuildOptions{HighFreqThre: thre, Alphabet: DNABases, Pool: executor.Options{Workers: 2, Chunks: 3, MinIters: 1}}
}

func TestED1Variants(t *testing.T) {
	t.Parallel()

	v := ED1Variants("AC", DNABases)

	// substitutions
	assert.Contains(t, v, "GC")
	assert.Contains(t, v, "AT")
	// deletions
	assert.Contains(t, v, "A")
	assert.Contains(t, v, "C")
	// insertions
	assert.Contains(t, v, "TAC")
	assert.Contains(t, v, "AGC")
	assert.Contains(t, v, "ACA")
	assert.NotContains(t, v, "AC")

	for s := range v {
		assert.Equal(t, 1, Distance("AC", s), s)
	}
}

func TestED2Variants(t *testing.T) {
	t.Parallel()

	v := ED2Variants("ACG", DNABases)
	// 3 position pairs, 3x3 substitutions each.
	assert.Len(t, v, 27)
	assert.Contains(t, v, "TTG")
	for s := range v {
		assert.Equal(t, 2, Distance("ACG", s), s)
	}
}

func TestAlphabet(t *testing.T) {
	t.Parallel()

	assert.Equal(t, RNABases, Alphabet("rna"))
	assert.Equal(t, DNABases, Alphabet("DNA"))
}

func TestGraph_AddEdge(t *testing.T) {
	t.Parallel()

	g := New()
	g.AddNode("A", 1)
	g.AddNode("B", 2)

	require.NoError(t, g.AddEdge("A", "B"))
	require.NoError(t, g.AddEdge("B", "A"), "re-adding an edge is a no-op")
	assert.Equal(t, 1, g.EdgeCount())
	assert.Error(t, g.AddEdge("A", "A"))
	assert.Error(t, g.AddEdge("A", "Z"))
	assert.Equal(t, []Edge{{A: "A", B: "B"}}, g.Edges())
}

func TestBuild_OneEdit(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	counts := map[string]int{
		"ACGTACGT":  10, // high
		"ACGTACGA":  2,  // substitution
		"ACGTACG":   1,  // deletion
		"ACGTTACGT": 1,  // insertion
		"TTTTTTTT":  7,  // isolated high
		"ACGAACGA":  1,  // two edits away from the high read
	}

	// --- Act ---
	g, err := Build(context.Background(), counts, 1, buildOpts(5))

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 6, g.Len())
	assert.Equal(t, []string{"ACGTACG", "ACGTACGA", "ACGTTACGT"}, g.Neighbors("ACGTACGT"))
	assert.Equal(t, 3, g.Degree("ACGTACGT"))
	assert.Equal(t, 0, g.Degree("ACGAACGA"), "low-frequency reads never anchor edges")
	assert.Equal(t, []string{"ACGAACGA", "TTTTTTTT"}, g.Isolates())
	assert.Equal(t, Summary{Nodes: 6, Edges: 3, Isolates: 2}, g.Summary())
	assert.Equal(t, 10, g.Count("ACGTACGT"))

	comps := g.Components()
	require.Len(t, comps, 3)
	assert.Equal(t, []string{"ACGAACGA"}, comps[0])
	assert.Equal(t, []string{"ACGTACG", "ACGTACGA", "ACGTACGT", "ACGTTACGT"}, comps[1])
	assert.Equal(t, []string{"TTTTTTTT"}, comps[2])
}

func TestBuild_TwoSubstitutions(t *testing.T) {
	t.Parallel()

	counts := map[string]int{
		"AAAAAA": 9,
		"AAAAAC": 6, // high, one substitution: not a 2nt target
		"CAAAAC": 1, // two substitutions, low
		"CCAAAA": 2, // two substitutions, low
		"CCCAAA": 1, // three substitutions
	}

	g, err := Build(context.Background(), counts, 2, buildOpts(5))
	require.NoError(t, err)

	assert.Equal(t, []string{"CAAAAC", "CCAAAA"}, g.Neighbors("AAAAAA"))
	assert.Equal(t, []string{"AAAAAA"}, g.Neighbors("CCAAAA"))
	assert.Equal(t, 0, g.Degree("CCCAAA"))
}

func TestBuild_NoHighFrequencyReads(t *testing.T) {
	t.Parallel()

	_, err := Build(context.Background(), map[string]int{"ACGT": 1, "ACGA": 2}, 1, buildOpts(5))
	assert.ErrorIs(t, err, ErrNoHighFrequencyReads)

	_, err = Build(context.Background(), map[string]int{"ACGT": 9}, 3, buildOpts(5))
	assert.ErrorContains(t, err, "unsupported edit distance")
}

func TestGraph_FlagsAndSubgraph(t *testing.T) {
	t.Parallel()

	g, err := Build(context.Background(), map[string]int{"ACGT": 9, "ACGA": 1, "GGGG": 8}, 1, buildOpts(5))
	require.NoError(t, err)

	g.SetFlag("ACGA")
	assert.True(t, g.Flagged("ACGA"))

	sub := g.Subgraph([]string{"ACGT", "ACGA"})
	assert.Equal(t, 2, sub.Len())
	assert.Equal(t, 1, sub.EdgeCount())
	assert.True(t, sub.Flagged("ACGA"))

	g.ResetFlags()
	assert.False(t, g.Flagged("ACGA"))
	assert.True(t, sub.Flagged("ACGA"), "subgraph holds its own attributes")
}
