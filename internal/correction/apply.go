package correction

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/specialistvlad/noise2read/internal/fsutil"
	"github.com/specialistvlad/noise2read/internal/seqio"
)

// Applied summarises one Apply call.
type Applied struct {
	Reads     int
	Corrected int
	ByKind    map[Kind]int
}

// Apply copies src to dst, replacing every read the plan resolves to a
// different sequence. IDs and descriptions are preserved. Quality strings
// keep their values; when the corrected read is shorter they are truncated
// and when it is longer they are padded with their last symbol.
func Apply(ctx context.Context, src, dst string, plan *Plan) (*Applied, error) {
	logger := ctxlog.FromContext(ctx)

	r, err := seqio.Open(src)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	w, err := seqio.Create(dst)
	if err != nil {
		return nil, err
	}
	defer w.Discard()

	res := &Applied{ByKind: make(map[Kind]int)}
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		res.Reads++

		if target := plan.Resolve(rec.Seq); target != rec.Seq {
			f, _ := plan.Lookup(rec.Seq)
			res.ByKind[f.Kind]++
			res.Corrected++
			rec.Seq = target
			if rec.Qual != "" {
				rec.Qual = adjustQuality(rec.Qual, len(target))
			}
		}
		if w.Type().Format == seqio.FASTQ && len(rec.Qual) != len(rec.Seq) {
			// FASTA input written as FASTQ gets a flat placeholder quality.
			rec.Qual = strings.Repeat("I", len(rec.Seq))
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	logger.Info("Corrected dataset written.", "path", dst, "reads", res.Reads, "corrected_reads", res.Corrected)
	return res, nil
}

func adjustQuality(qual string, n int) string {
	switch {
	case len(qual) == n:
		return qual
	case len(qual) > n:
		return qual[:n]
	default:
		return qual + strings.Repeat(qual[len(qual)-1:], n-len(qual))
	}
}

// WriteReport writes the plan as a tab separated table with one fix per row.
func WriteReport(ctx context.Context, path string, plan *Plan) error {
	err := fsutil.WriteAtomic(ctx, path, func(out io.Writer) error {
		w := csv.NewWriter(out)
		w.Comma = '\t'
		if err := w.Write([]string{"From", "To", "Kind", "Probability"}); err != nil {
			return err
		}
		for _, f := range plan.Fixes() {
			row := []string{f.From, f.To, string(f.Kind), strconv.FormatFloat(f.Proba, 'f', 4, 64)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
	if err != nil {
		return fmt.Errorf("failed to write correction report: %w", err)
	}
	return nil
}
