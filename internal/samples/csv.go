package samples

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/specialistvlad/noise2read/internal/fsutil"
)

var (
	pairColumns = []string{"StartRead", "StartReadCount", "StartDegree", "EndRead", "EndReadCount", "EndDegree"}
	oneColumns  = []string{
		"StartRead", "StartReadCount", "StartDegree", "ErrorTye", "ErrorPosition",
		"StartErrKmer", "EndErrKmer", "EndRead", "EndReadCount", "EndDegree",
	}
	negativeColumns = []string{"StartRead", "StartReadCount", "StartDegree"}
)

func columns(ed int) []string {
	if ed == 1 {
		return oneColumns
	}
	return pairColumns
}

func row(s Sample) []string {
	out := []string{s.Start.Read, strconv.Itoa(s.Start.Count), strconv.Itoa(s.Start.Degree)}
	if s.Err != nil {
		out = append(out, s.Err.Type, strconv.Itoa(s.Err.Position), s.Err.StartKmer, s.Err.EndKmer)
	}
	return append(out, s.End.Read, strconv.Itoa(s.End.Count), strconv.Itoa(s.End.Degree))
}

func writeCSV(ctx context.Context, path string, header []string, rows func(w *csv.Writer) error) error {
	return fsutil.WriteAtomic(ctx, path, func(out io.Writer) error {
		w := csv.NewWriter(out)
		if err := w.Write(header); err != nil {
			return err
		}
		if err := rows(w); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	})
}

// WriteSamples writes one row per sample.
func WriteSamples(ctx context.Context, path string, ed int, samples []Sample) error {
	return writeCSV(ctx, path, columns(ed), func(w *csv.Writer) error {
		for _, s := range samples {
			if err := w.Write(row(s)); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteGroups writes one row per sample, prefixed with its group index.
func WriteGroups(ctx context.Context, path string, ed int, groups []Group) error {
	header := append([]string{"idx"}, columns(ed)...)
	return writeCSV(ctx, path, header, func(w *csv.Writer) error {
		for _, g := range groups {
			idx := strconv.Itoa(g.Idx)
			for _, s := range g.Samples {
				if err := w.Write(append([]string{idx}, row(s)...)); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// WriteNegatives writes the error-free reads.
func WriteNegatives(ctx context.Context, path string, negatives []Endpoint) error {
	return writeCSV(ctx, path, negativeColumns, func(w *csv.Writer) error {
		for _, n := range negatives {
			if err := w.Write([]string{n.Read, strconv.Itoa(n.Count), strconv.Itoa(n.Degree)}); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteSet writes genuineN.csv, ambiguousN.csv and negativeN.csv to dir,
// where N is the edit distance, plus high_ambiguous_1nt.csv when present.
func WriteSet(ctx context.Context, dir string, set *Set) error {
	ed := set.EditDistance
	if err := WriteSamples(ctx, filepath.Join(dir, fmt.Sprintf("genuine%d.csv", ed)), ed, set.Genuine); err != nil {
		return err
	}
	if err := WriteGroups(ctx, filepath.Join(dir, fmt.Sprintf("ambiguous%d.csv", ed)), ed, set.Ambiguous); err != nil {
		return err
	}
	if err := WriteNegatives(ctx, filepath.Join(dir, fmt.Sprintf("negative%d.csv", ed)), set.Negatives); err != nil {
		return err
	}
	if len(set.HighAmbiguous) > 0 {
		return WriteGroups(ctx, filepath.Join(dir, "high_ambiguous_1nt.csv"), 1, set.HighAmbiguous)
	}
	return nil
}
