// Package evaluation scores a correction against a known truth.
package evaluation

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/specialistvlad/noise2read/internal/fsutil"
	"github.com/specialistvlad/noise2read/internal/seqio"
)

// ErrMissingRead is returned when a raw read has no counterpart in the true
// or corrected dataset.
var ErrMissingRead = errors.New("read missing from dataset")

// Report holds per-read outcome counts and the derived scores.
type Report struct {
	Reads int
	// TP: erroneous read corrected to its truth.
	TP int
	// FP: error-free read changed.
	FP int
	// FN: erroneous read left unchanged.
	FN int
	// TN: error-free read left unchanged.
	TN int
	// Wrong: erroneous read changed into something other than its truth.
	Wrong int

	Precision float64
	Recall    float64
	Gain      float64

	// Entropies of the unique-read distributions, in bits.
	TrueEntropy      float64
	RawEntropy       float64
	CorrectedEntropy float64
}

// Tally classifies one read and updates the counters.
func (r *Report) Tally(truth, raw, corrected string) {
	r.Reads++
	switch {
	case raw == truth && corrected == truth:
		r.TN++
	case raw == truth:
		r.FP++
	case corrected == truth:
		r.TP++
	case corrected == raw:
		r.FN++
	default:
		r.Wrong++
	}
}

// Finish computes precision, recall and gain from the counters. Undefined
// ratios are reported as zero.
func (r *Report) Finish() {
	r.Precision = ratio(r.TP, r.TP+r.FP)
	r.Recall = ratio(r.TP, r.TP+r.FN)
	r.Gain = ratio(r.TP-r.FP, r.TP+r.FN)
}

func ratio(a, b int) float64 {
	if b == 0 {
		return 0
	}
	return float64(a) / float64(b)
}

// Entropy returns the Shannon entropy in bits of an abundance distribution.
func Entropy(counts map[string]int) float64 {
	total := 0
	for _, n := range counts {
		total += n
	}
	if total == 0 {
		return 0
	}
	h := 0.0
	for _, n := range counts {
		if n == 0 {
			continue
		}
		p := float64(n) / float64(total)
		h -= p * math.Log2(p)
	}
	return h
}

func load(path string) (map[string]string, error) {
	out := make(map[string]string)
	err := seqio.Each(path, func(rec seqio.Record) error {
		out[rec.ID] = rec.Seq
		return nil
	})
	return out, err
}

// Evaluate aligns the three datasets by read ID, iterating the raw one.
func Evaluate(ctx context.Context, truePath, rawPath, correctedPath string) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	truth, err := load(truePath)
	if err != nil {
		return nil, err
	}
	corrected, err := load(correctedPath)
	if err != nil {
		return nil, err
	}

	rep := &Report{}
	trueCounts := make(map[string]int)
	rawCounts := make(map[string]int)
	corrCounts := make(map[string]int)
	err = seqio.Each(rawPath, func(rec seqio.Record) error {
		t, ok := truth[rec.ID]
		if !ok {
			return fmt.Errorf("%w: %s not in %s", ErrMissingRead, rec.ID, truePath)
		}
		c, ok := corrected[rec.ID]
		if !ok {
			return fmt.Errorf("%w: %s not in %s", ErrMissingRead, rec.ID, correctedPath)
		}
		rep.Tally(t, rec.Seq, c)
		trueCounts[t]++
		rawCounts[rec.Seq]++
		corrCounts[c]++
		return nil
	})
	if err != nil {
		return nil, err
	}
	rep.Finish()
	rep.TrueEntropy = Entropy(trueCounts)
	rep.RawEntropy = Entropy(rawCounts)
	rep.CorrectedEntropy = Entropy(corrCounts)

	logger.Info("Evaluation completed.",
		"reads", rep.Reads, "tp", rep.TP, "fp", rep.FP, "fn", rep.FN, "tn", rep.TN, "wrong", rep.Wrong,
		"gain", rep.Gain)
	return rep, nil
}

// Rows returns the report as metric/value pairs in a fixed order.
func (r *Report) Rows() [][2]string {
	i := func(n int) string { return strconv.Itoa(n) }
	f := func(x float64) string { return strconv.FormatFloat(x, 'f', 6, 64) }
	return [][2]string{
		{"reads", i(r.Reads)},
		{"tp", i(r.TP)},
		{"fp", i(r.FP)},
		{"fn", i(r.FN)},
		{"tn", i(r.TN)},
		{"wrong_correction", i(r.Wrong)},
		{"precision", f(r.Precision)},
		{"recall", f(r.Recall)},
		{"gain", f(r.Gain)},
		{"true_entropy", f(r.TrueEntropy)},
		{"raw_entropy", f(r.RawEntropy)},
		{"corrected_entropy", f(r.CorrectedEntropy)},
	}
}

// WriteReport writes the report to path as a two column TSV.
func WriteReport(ctx context.Context, path string, r *Report) error {
	return fsutil.WriteAtomic(ctx, path, func(out io.Writer) error {
		w := csv.NewWriter(out)
		w.Comma = '\t'
		if err := w.Write([]string{"Metric", "Value"}); err != nil {
			return err
		}
		for _, row := range r.Rows() {
			if err := w.Write(row[:]); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	})
}
