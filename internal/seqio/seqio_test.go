package seqio

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fastqFixture = `@r1 lane=1
ACGT
+
IIII
@r2
ACGT
+
IIII

@r3
ACGA
+
II#I
`

const fastaFixture = `>s1 first
ACGT
ACGT
>s2
TTTT

>s3
ACGTACGT
`

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		want FileType
	}{
		{"reads.fastq", FileType{Format: FASTQ}},
		{"reads.FQ", FileType{Format: FASTQ}},
		{"reads.fq.gz", FileType{Format: FASTQ, Compressed: true}},
		{"reads.fasta", FileType{Format: FASTA}},
		{"reads.fa", FileType{Format: FASTA}},
		{"reads.fas.gz", FileType{Format: FASTA, Compressed: true}},
	}
	for _, tc := range cases {
		got, err := DetectType(tc.name)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}

	_, err := DetectType("reads.bam")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestReader_FASTQ(t *testing.T) {
	t.Parallel()

	recs, err := ReadAll(writeFixture(t, "r.fastq", fastqFixture))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, Record{ID: "r1", Desc: "lane=1", Seq: "ACGT", Qual: "IIII"}, recs[0])
	assert.Equal(t, "r3", recs[2].ID)
	assert.Equal(t, "II#I", recs[2].Qual)
}

func TestReader_FASTAMultiline(t *testing.T) {
	t.Parallel()

	recs, err := ReadAll(writeFixture(t, "r.fa", fastaFixture))
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, Record{ID: "s1", Desc: "first", Seq: "ACGTACGT"}, recs[0])
	assert.Equal(t, "TTTT", recs[1].Seq)
	assert.Equal(t, "ACGTACGT", recs[2].Seq)
}

func TestReader_MalformedFASTQ(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		content string
		line    int
	}{
		{"bad header", "r1\nACGT\n+\nIIII\n", 1},
		{"missing plus", "@r1\nACGT\nIIII\n", 3},
		{"short quality", "@r1\nACGT\n+\nIII\n", 4},
		{"truncated", "@r1\nACGT\n+\n", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := ReadAll(writeFixture(t, "bad.fq", tc.content))
			var pErr *ParseError
			require.True(t, errors.As(err, &pErr), "expected ParseError, got %v", err)
			assert.Equal(t, tc.line, pErr.Line)
		})
	}
}

func TestWriter_RoundTripGzip(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := filepath.Join(t.TempDir(), "out.fastq.gz")
	recs := []Record{
		{ID: "a", Desc: "x=1", Seq: "ACGT", Qual: "IIII"},
		{ID: "b", Seq: "GGCC", Qual: "####"},
	}

	// --- Act ---
	require.NoError(t, WriteAll(path, recs))

	// --- Assert ---
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = gzip.NewReader(f)
	require.NoError(t, err, "output should be a gzip stream")

	got, err := ReadAll(path)
	require.NoError(t, err)
	assert.Equal(t, recs, got)
}

func TestWriter_RejectsQualityMismatch(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out.fq")
	err := WriteAll(path, []Record{{ID: "a", Seq: "ACGT", Qual: "II"}})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "failed write must not leave a file behind")
}

func TestCounts(t *testing.T) {
	t.Parallel()

	ds, err := Counts(context.Background(), writeFixture(t, "r.fastq", fastqFixture))
	require.NoError(t, err)

	assert.Equal(t, 3, ds.Total)
	assert.Equal(t, map[string]int{"ACGT": 2, "ACGA": 1}, ds.Counts)
	assert.Equal(t, []string{"r1", "r2"}, ds.IDs["ACGT"])
	assert.Equal(t, []string{"ACGA", "ACGT"}, ds.Unique())
	lo, hi := ds.LengthRange()
	assert.Equal(t, 4, lo)
	assert.Equal(t, 4, hi)
}

func TestCounts_EmptyFile(t *testing.T) {
	t.Parallel()

	_, err := Counts(context.Background(), writeFixture(t, "empty.fa", ""))
	assert.ErrorContains(t, err, "contains no records")
}

func TestExtract(t *testing.T) {
	t.Parallel()

	src := writeFixture(t, "r.fastq", fastqFixture)
	dst := filepath.Join(t.TempDir(), "sub.fastq")

	n, err := Extract(src, map[string]struct{}{"r3": {}, "r1": {}}, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	got, err := ReadAll(dst)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "r1", got[0].ID)
	assert.Equal(t, "r3", got[1].ID)
}
