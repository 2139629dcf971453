package abundance

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/noise2read/internal/seqio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCounts(t *testing.T, path string, counts [][2]any) {
	t.Helper()
	var recs []seqio.Record
	for _, c := range counts {
		for range c[1].(int) {
			recs = append(recs, seqio.Record{ID: fmt.Sprintf("r%d", len(recs)), Seq: c[0].(string)})
		}
	}
	require.NoError(t, seqio.WriteAll(path, recs))
}

func TestRow(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2.0, Row{Raw: 5, Corrected: 10}.FoldChange())
	assert.Equal(t, 5, Row{Raw: 5, Corrected: 10}.Difference())
	assert.True(t, math.IsInf(Row{Corrected: 1}.FoldChange(), 1))
	assert.Zero(t, Row{}.FoldChange())
}

func TestCompare_TopN(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	raw := filepath.Join(dir, "raw.fa")
	corr := filepath.Join(dir, "corr.fa")
	writeCounts(t, raw, [][2]any{{"AAAA", 8}, {"AAAT", 2}, {"CCCC", 3}, {"GGGG", 1}})
	writeCounts(t, corr, [][2]any{{"AAAA", 10}, {"CCCC", 3}, {"GGGG", 1}})

	// --- Act ---
	rows, err := Compare(context.Background(), raw, corr, Options{TopN: 2})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Name: "top1", Seq: "AAAA", Raw: 8, Corrected: 10},
		{Name: "top2", Seq: "CCCC", Raw: 3, Corrected: 3},
	}, rows)

	out := filepath.Join(dir, "compare.tsv")
	require.NoError(t, WriteTSV(context.Background(), out, rows))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "top1\tAAAA\t8\t10\t2\t1.2500", lines[1])
}

func TestCompare_Reference(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	raw := filepath.Join(dir, "raw.fa.gz")
	corr := filepath.Join(dir, "corr.fa.gz")
	ref := filepath.Join(dir, "ref.fasta")
	writeCounts(t, raw, [][2]any{{"AAAA", 3}, {"AAAT", 1}})
	writeCounts(t, corr, [][2]any{{"AAAA", 4}})
	require.NoError(t, seqio.WriteAll(ref, []seqio.Record{{ID: "wuhan", Seq: "AAAA"}, {ID: "delta", Seq: "TTTT"}}))

	rows, err := Compare(context.Background(), raw, corr, Options{Reference: ref, TopN: 1})

	require.NoError(t, err)
	assert.Equal(t, []Row{
		{Name: "wuhan", Seq: "AAAA", Raw: 3, Corrected: 4},
		{Name: "delta", Seq: "TTTT"},
	}, rows)
}
