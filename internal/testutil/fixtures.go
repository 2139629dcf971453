package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/specialistvlad/noise2read/internal/seqio"
	"github.com/stretchr/testify/require"
)

// Abundance is a read together with the number of copies to write.
type Abundance struct {
	Seq   string
	Count int
}

// WriteReads writes the reads to path with IDs read0, read1, ... in the
// order given. FASTQ output gets a constant quality string.
func WriteReads(t *testing.T, path string, reads ...Abundance) []seqio.Record {
	t.Helper()
	var recs []seqio.Record
	for _, r := range reads {
		for range r.Count {
			recs = append(recs, seqio.Record{
				ID:   fmt.Sprintf("read%d", len(recs)),
				Seq:  r.Seq,
				Qual: strings.Repeat("F", len(r.Seq)),
			})
		}
	}
	ft, err := seqio.DetectType(path)
	require.NoError(t, err)
	if ft.Format == seqio.FASTA {
		for i := range recs {
			recs[i].Qual = ""
		}
	}
	require.NoError(t, seqio.WriteAll(path, recs))
	return recs
}

// SequenceCounts returns the abundance of every sequence in path.
func SequenceCounts(t *testing.T, path string) map[string]int {
	t.Helper()
	recs, err := seqio.ReadAll(path)
	require.NoError(t, err)
	out := make(map[string]int)
	for _, r := range recs {
		out[r.Seq]++
	}
	return out
}
