package correction

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/noise2read/internal/seqio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdjustQuality(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ABC", adjustQuality("ABC", 3))
	assert.Equal(t, "AB", adjustQuality("ABC", 2))
	assert.Equal(t, "ABCCC", adjustQuality("ABC", 5))
}

func TestApply(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	src := filepath.Join(dir, "reads.fastq")
	dst := filepath.Join(dir, "reads_corrected.fastq")
	require.NoError(t, seqio.WriteAll(src, []seqio.Record{
		{ID: "r1", Desc: "lane=1", Seq: "ACGT", Qual: "ABCD"},
		{ID: "r2", Seq: "ACGTT", Qual: "ABCDE"},
		{ID: "r3", Seq: "ACG", Qual: "ABC"},
		{ID: "r4", Seq: "GGGG", Qual: "FFFF"},
	}))
	plan := NewPlan()
	plan.Add(Fix{From: "ACGTT", To: "ACGT", Kind: KindGenuine, Proba: 1})
	plan.Add(Fix{From: "ACG", To: "ACGT", Kind: KindAmbiguous, Proba: 0.97})

	// --- Act ---
	res, err := Apply(context.Background(), src, dst, plan)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, 4, res.Reads)
	assert.Equal(t, 2, res.Corrected)
	assert.Equal(t, map[Kind]int{KindGenuine: 1, KindAmbiguous: 1}, res.ByKind)

	got, err := seqio.ReadAll(dst)
	require.NoError(t, err)
	assert.Equal(t, []seqio.Record{
		{ID: "r1", Desc: "lane=1", Seq: "ACGT", Qual: "ABCD"},
		{ID: "r2", Seq: "ACGT", Qual: "ABCD"},
		{ID: "r3", Seq: "ACGT", Qual: "ABCC"},
		{ID: "r4", Seq: "GGGG", Qual: "FFFF"},
	}, got)
}

func TestApply_Cancelled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "reads.fa")
	require.NoError(t, seqio.WriteAll(src, []seqio.Record{{ID: "r1", Seq: "ACGT"}}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Apply(ctx, src, filepath.Join(dir, "out.fa"), NewPlan())
	require.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(filepath.Join(dir, "out.fa"))
	assert.True(t, os.IsNotExist(statErr), "partial output is discarded")
}

func TestWriteReport(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "fixes.tsv")
	plan := NewPlan()
	plan.Add(Fix{From: "AC", To: "AA", Kind: KindGenuine, Proba: 1})
	plan.Add(Fix{From: "TT", To: "TA", Kind: KindAmbiguous, Proba: 0.96})

	require.NoError(t, WriteReport(context.Background(), path, plan))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"From\tTo\tKind\tProbability",
		"AC\tAA\tgenuine\t1.0000",
		"TT\tTA\tambiguous\t0.9600",
	}, strings.Split(strings.TrimSpace(string(data)), "\n"))
}
