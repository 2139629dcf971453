// Package abundance compares read abundances before and after correction.
package abundance

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/specialistvlad/noise2read/internal/fsutil"
	"github.com/specialistvlad/noise2read/internal/seqio"
)

// Row is the abundance of one sequence in both datasets.
type Row struct {
	Name      string
	Seq       string
	Raw       int
	Corrected int
}

// Difference returns Corrected - Raw.
func (r Row) Difference() int {
	return r.Corrected - r.Raw
}

// FoldChange returns Corrected / Raw, or +Inf when the sequence is absent
// from the raw data.
func (r Row) FoldChange() float64 {
	if r.Raw == 0 {
		if r.Corrected == 0 {
			return 0
		}
		return math.Inf(1)
	}
	return float64(r.Corrected) / float64(r.Raw)
}

// Options selects the sequences to compare.
type Options struct {
	// Reference is a FASTA file of sequences of interest. When empty the
	// TopN most abundant corrected sequences are compared instead.
	Reference string
	TopN      int
}

// Compare counts both datasets and returns one row per selected sequence.
func Compare(ctx context.Context, rawPath, correctedPath string, opts Options) ([]Row, error) {
	logger := ctxlog.FromContext(ctx)

	raw, err := seqio.Counts(ctx, rawPath)
	if err != nil {
		return nil, err
	}
	corrected, err := seqio.Counts(ctx, correctedPath)
	if err != nil {
		return nil, err
	}

	var rows []Row
	if opts.Reference != "" {
		err := seqio.Each(opts.Reference, func(rec seqio.Record) error {
			rows = append(rows, Row{Name: rec.ID, Seq: rec.Seq})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to read reference: %w", err)
		}
	} else {
		for i, seq := range top(corrected.Counts, opts.TopN) {
			rows = append(rows, Row{Name: "top" + strconv.Itoa(i+1), Seq: seq})
		}
	}
	for i := range rows {
		rows[i].Raw = raw.Counts[rows[i].Seq]
		rows[i].Corrected = corrected.Counts[rows[i].Seq]
	}
	logger.Info("Abundance comparison completed.", "sequences", len(rows),
		"raw_unique", len(raw.Counts), "corrected_unique", len(corrected.Counts))
	return rows, nil
}

// top returns the n most abundant sequences, ties broken by sequence.
func top(counts map[string]int, n int) []string {
	seqs := make([]string, 0, len(counts))
	for s := range counts {
		seqs = append(seqs, s)
	}
	sort.Slice(seqs, func(i, j int) bool {
		if counts[seqs[i]] != counts[seqs[j]] {
			return counts[seqs[i]] > counts[seqs[j]]
		}
		return seqs[i] < seqs[j]
	})
	if n >= 0 && n < len(seqs) {
		seqs = seqs[:n]
	}
	return seqs
}

// WriteTSV writes rows to path.
func WriteTSV(ctx context.Context, path string, rows []Row) error {
	return fsutil.WriteAtomic(ctx, path, func(out io.Writer) error {
		w := csv.NewWriter(out)
		w.Comma = '\t'
		if err := w.Write([]string{"Name", "Sequence", "Raw", "Corrected", "Difference", "FoldChange"}); err != nil {
			return err
		}
		for _, r := range rows {
			rec := []string{
				r.Name, r.Seq,
				strconv.Itoa(r.Raw), strconv.Itoa(r.Corrected), strconv.Itoa(r.Difference()),
				strconv.FormatFloat(r.FoldChange(), 'f', 4, 64),
			}
			if err := w.Write(rec); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
}
