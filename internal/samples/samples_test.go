package samples

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/noise2read/internal/executor"
	"github.com/specialistvlad/noise2read/internal/readgraph"
	"github.com/specialistvlad/noise2read/internal/seqio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixtureCounts = map[string]int{
	"AAAAAA": 20, // high
	"AAAAAC": 10, // high, one substitution from AAAAAA
	"AAAAAT": 1,  // next to both high reads: ambiguous
	"CAAAAA": 1,  // next to AAAAAA only: genuine
	"GGGGGG": 8,  // isolated high: negative
	"TTTTTT": 1,  // isolated low
}

func testOptions() Options {
	return Options{
		HighFreqThre:    5,
		MaxErrorFreq:    4,
		AmbiguousDegree: 4,
		Pool:            executor.Options{Workers: 2, Chunks: 4, MinIters: 1},
	}
}

func fixtureGraph(t *testing.T) *readgraph.Graph {
	t.Helper()
	g, err := readgraph.Build(context.Background(), fixtureCounts, 1, readgraph.BuildOptions{
		HighFreqThre: 5,
		Alphabet:     readgraph.DNABases,
		Pool:         executor.Options{Workers: 2, Chunks: 2, MinIters: 1},
	})
	require.NoError(t, err)
	return g
}

func TestClassify(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		start, end string
		want       ErrorInfo
	}{
		{"substitution", "ACGTA", "ACCTA", ErrorInfo{Type: "G-C", Position: 2, StartKmer: "CGT", EndKmer: "CCT"}},
		{"substitution first base", "ACGT", "TCGT", ErrorInfo{Type: "A-T", Position: 0, StartKmer: "AC", EndKmer: "TC"}},
		{"substitution last base", "ACGT", "ACGA", ErrorInfo{Type: "T-A", Position: 3, StartKmer: "GT", EndKmer: "GA"}},
		{"insertion", "ACGT", "ACCGT", ErrorInfo{Type: "X-C", Position: 2, StartKmer: "CXG", EndKmer: "CCG"}},
		{"insertion at end", "ACG", "ACGT", ErrorInfo{Type: "X-T", Position: 3, StartKmer: "GX", EndKmer: "GT"}},
		{"deletion first base", "TACG", "ACG", ErrorInfo{Type: "T-X", Position: 0, StartKmer: "TA", EndKmer: "XA"}},
		{"deletion", "ACGTT", "ACTT", ErrorInfo{Type: "G-X", Position: 2, StartKmer: "CGT", EndKmer: "CXT"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := Classify(tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	_, err := Classify("AAAA", "ACCA")
	assert.ErrorIs(t, err, ErrNotOneEdit)
}

func TestExtract(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := fixtureGraph(t)

	// --- Act ---
	set, err := Extract(context.Background(), g, 1, testOptions(), true)

	// --- Assert ---
	require.NoError(t, err)

	require.Len(t, set.Genuine, 1)
	assert.Equal(t, Sample{
		Start: Endpoint{Read: "AAAAAA", Count: 20, Degree: 3},
		End:   Endpoint{Read: "CAAAAA", Count: 1, Degree: 1},
		Err:   &ErrorInfo{Type: "A-C", Position: 0, StartKmer: "AA", EndKmer: "CA"},
	}, set.Genuine[0])

	require.Len(t, set.Ambiguous, 1)
	amb := set.Ambiguous[0]
	assert.Equal(t, 0, amb.Idx)
	require.Len(t, amb.Samples, 2)
	assert.Equal(t, "AAAAAA", amb.Samples[0].Start.Read, "higher count first")
	assert.Equal(t, "AAAAAC", amb.Samples[1].Start.Read)
	assert.Equal(t, "C-T", amb.Samples[1].Err.Type)
	assert.Equal(t, 2, amb.Samples[1].Start.Degree)

	assert.Equal(t, []Endpoint{{Read: "GGGGGG", Count: 8}}, set.Negatives)

	require.Len(t, set.HighAmbiguous, 1)
	ha := set.HighAmbiguous[0].Samples
	require.Len(t, ha, 2)
	assert.Equal(t, "AAAAAA", ha[0].Start.Read)
	assert.Equal(t, "AAAAAC", ha[0].End.Read)
	assert.Equal(t, "AAAAAC", ha[1].Start.Read)
	assert.Equal(t, "A-C", ha[0].Err.Type)
	assert.Equal(t, "C-A", ha[1].Err.Type)

	assert.True(t, g.Flagged("AAAAAT"))
	assert.True(t, g.Flagged("CAAAAA"))
	assert.False(t, g.Flagged("AAAAAA"))
}

func TestExtractGenuineAmbiguous_Thresholds(t *testing.T) {
	t.Parallel()

	threeHigh := map[string]int{"AAAAAA": 1, "CAAAAA": 10, "GAAAAA": 10, "TAAAAA": 10}
	cases := []struct {
		name          string
		counts        map[string]int
		opts          Options
		read          string
		wantAmbiguous int
		wantFlagged   bool
	}{
		{
			name:   "count above max_error_freq is never sampled",
			counts: map[string]int{"AAAAAA": 20, "AAAAAC": 5},
			opts:   Options{HighFreqThre: 6, MaxErrorFreq: 4, AmbiguousDegree: 4},
			read:   "AAAAAC",
		},
		{
			name:        "degree above ambiguous_error_node_degree is skipped but flagged",
			counts:      threeHigh,
			opts:        Options{HighFreqThre: 5, MaxErrorFreq: 4, AmbiguousDegree: 2},
			read:        "AAAAAA",
			wantFlagged: true,
		},
		{
			name:          "degree at ambiguous_error_node_degree is grouped",
			counts:        threeHigh,
			opts:          Options{HighFreqThre: 5, MaxErrorFreq: 4, AmbiguousDegree: 3},
			read:          "AAAAAA",
			wantAmbiguous: 1,
			wantFlagged:   true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Arrange ---
			g, err := readgraph.Build(context.Background(), tc.counts, 1, readgraph.BuildOptions{HighFreqThre: tc.opts.HighFreqThre})
			require.NoError(t, err)
			require.True(t, g.Has(tc.read))
			require.NotZero(t, g.Degree(tc.read), "the read must be connected")

			// --- Act ---
			genuine, ambiguous, err := ExtractGenuineAmbiguous(context.Background(), g, 1, tc.opts)

			// --- Assert ---
			require.NoError(t, err)
			assert.Empty(t, genuine)
			assert.Len(t, ambiguous, tc.wantAmbiguous)
			assert.Equal(t, tc.wantFlagged, g.Flagged(tc.read))
		})
	}
}

func TestExtract_TwoNtSamplesCarryNoErrorInfo(t *testing.T) {
	t.Parallel()

	counts := map[string]int{"AAAAAA": 9, "CCAAAA": 1}
	g, err := readgraph.Build(context.Background(), counts, 2, readgraph.BuildOptions{HighFreqThre: 5})
	require.NoError(t, err)

	set, err := Extract(context.Background(), g, 2, testOptions(), true)
	require.NoError(t, err)
	require.Len(t, set.Genuine, 1)
	assert.Nil(t, set.Genuine[0].Err)
	assert.Empty(t, set.HighAmbiguous, "high ambiguous errors only exist in 1nt graphs")
}

func TestExtractUMIGenuine(t *testing.T) {
	t.Parallel()

	got, err := ExtractUMIGenuine(fixtureGraph(t), testOptions())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "AAAAAT", got[0].End.Read)
	assert.Equal(t, "AAAAAA", got[0].Start.Read, "ranked by degree and count")
	assert.Equal(t, "CAAAAA", got[1].End.Read)
}

func TestExtractAmplicon(t *testing.T) {
	t.Parallel()

	g := fixtureGraph(t)
	g.SetFlag("AAAAAT")

	got, err := ExtractAmplicon(g, AmpliconOptions{LowFreq: 1, HighFreq: 15, MaxDegree: 4})
	require.NoError(t, err)
	require.Len(t, got, 2, "flags are reset before the amplicon pass")
	assert.Equal(t, 0, got[0].Idx)
	assert.Equal(t, "AAAAAT", got[0].Samples[0].End.Read)
	assert.Equal(t, 1, got[1].Idx)
	assert.Equal(t, "CAAAAA", got[1].Samples[0].End.Read)
	for _, grp := range got {
		require.Len(t, grp.Samples, 1)
		assert.Equal(t, "AAAAAA", grp.Samples[0].Start.Read)
	}
}

func TestWriteSet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	set, err := Extract(context.Background(), fixtureGraph(t), 1, testOptions(), true)
	require.NoError(t, err)

	require.NoError(t, WriteSet(context.Background(), dir, set))

	read := func(name string) []string {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		return strings.Split(strings.TrimSpace(string(data)), "\n")
	}

	genuine := read("genuine1.csv")
	assert.Equal(t, "StartRead,StartReadCount,StartDegree,ErrorTye,ErrorPosition,StartErrKmer,EndErrKmer,EndRead,EndReadCount,EndDegree", genuine[0])
	assert.Equal(t, "AAAAAA,20,3,A-C,0,AA,CA,CAAAAA,1,1", genuine[1])

	ambiguous := read("ambiguous1.csv")
	assert.True(t, strings.HasPrefix(ambiguous[0], "idx,StartRead,"))
	assert.Len(t, ambiguous, 3)
	assert.True(t, strings.HasPrefix(ambiguous[2], "0,AAAAAC,"))

	assert.Equal(t, []string{"StartRead,StartReadCount,StartDegree", "GGGGGG,8,0"}, read("negative1.csv"))
	assert.Len(t, read("high_ambiguous_1nt.csv"), 3)
}

func TestSplitIsolates(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	input := filepath.Join(dir, "sample.fq")
	var recs []seqio.Record
	for _, seq := range []string{"AAAAAA", "AAAAAA", "GGGGGG", "CAAAAA", "TTTTTT"} {
		recs = append(recs, seqio.Record{ID: fmt.Sprintf("r%d", len(recs)), Seq: seq, Qual: strings.Repeat("I", len(seq))})
	}
	require.NoError(t, seqio.WriteAll(input, recs))
	ds, err := seqio.Counts(context.Background(), input)
	require.NoError(t, err)
	g, err := readgraph.Build(context.Background(), ds.Counts, 1, readgraph.BuildOptions{HighFreqThre: 2})
	require.NoError(t, err)

	// --- Act ---
	isoPath, restPath, err := SplitIsolates(context.Background(), ds, g, dir)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sample_isolates.fastq"), isoPath)
	assert.Equal(t, filepath.Join(dir, "sample_non_isolates.fastq"), restPath)

	ids := func(path string) []string {
		got, err := seqio.ReadAll(path)
		require.NoError(t, err)
		var out []string
		for _, r := range got {
			out = append(out, r.ID)
		}
		return out
	}
	assert.Equal(t, []string{"r2", "r4"}, ids(isoPath))
	assert.Equal(t, []string{"r0", "r1", "r3"}, ids(restPath))
}
