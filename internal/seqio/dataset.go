package seqio

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
)

// Dataset is the abundance view of a sequence file.
type Dataset struct {
	Path string
	Type FileType
	// Counts maps each unique sequence to its number of occurrences.
	Counts map[string]int
	// IDs maps each unique sequence to the IDs of the reads carrying it.
	IDs map[string][]string
	// Lengths is the set of observed read lengths.
	Lengths map[int]struct{}
	Total   int
}

// Counts reads path and tallies its unique sequences.
func Counts(ctx context.Context, path string) (*Dataset, error) {
	ft, err := DetectType(path)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Path:    path,
		Type:    ft,
		Counts:  make(map[string]int),
		IDs:     make(map[string][]string),
		Lengths: make(map[int]struct{}),
	}
	err = Each(path, func(rec Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		ds.Counts[rec.Seq]++
		ds.IDs[rec.Seq] = append(ds.IDs[rec.Seq], rec.ID)
		ds.Lengths[len(rec.Seq)] = struct{}{}
		ds.Total++
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ds.Total == 0 {
		return nil, fmt.Errorf("sequence file %s contains no records", path)
	}

	minLen, maxLen := ds.LengthRange()
	ctxlog.FromContext(ctx).Info("Reads counted.",
		"path", path, "reads", ds.Total, "unique_reads", len(ds.Counts),
		"min_length", minLen, "max_length", maxLen)
	return ds, nil
}

// Unique returns the unique sequences in sorted order.
func (d *Dataset) Unique() []string {
	out := make([]string, 0, len(d.Counts))
	for s := range d.Counts {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// LengthRange returns the shortest and longest read length.
func (d *Dataset) LengthRange() (int, int) {
	first := true
	var lo, hi int
	for l := range d.Lengths {
		if first {
			lo, hi = l, l
			first = false
			continue
		}
		lo = min(lo, l)
		hi = max(hi, l)
	}
	return lo, hi
}

// Extract copies the records of src whose ID is in ids into dst, keeping the
// input order, and returns how many were written.
func Extract(src string, ids map[string]struct{}, dst string) (int, error) {
	w, err := Create(dst)
	if err != nil {
		return 0, err
	}
	defer w.Discard()

	err = Each(src, func(rec Record) error {
		if _, ok := ids[rec.ID]; !ok {
			return nil
		}
		return w.Write(rec)
	})
	if err != nil {
		return 0, err
	}
	if err := w.Close(); err != nil {
		return 0, err
	}
	return w.Count(), nil
}
