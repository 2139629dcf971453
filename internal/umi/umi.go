// Package umi derives a ground truth dataset from UMI-tagged reads.
//
// Each read carries a molecular barcode at a fixed offset followed by the
// payload. Reads sharing a barcode come from one molecule, so the dominant
// payload of a large enough barcode group is taken as the true sequence of
// every read in the group that lies within a few edits of it.
package umi

import (
	"context"
	"fmt"
	"sort"

	"github.com/specialistvlad/noise2read/internal/config"
	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/specialistvlad/noise2read/internal/executor"
	"github.com/specialistvlad/noise2read/internal/fsutil"
	"github.com/specialistvlad/noise2read/internal/readgraph"
	"github.com/specialistvlad/noise2read/internal/seqio"
)

// Layout locates the barcode and the payload within a read.
type Layout struct {
	UMIStart    int
	UMIEnd      int
	NonUMIStart int
}

// Split returns the barcode and payload of seq. ok is false for reads too
// short to hold both.
func (l Layout) Split(seq string) (umi, payload string, ok bool) {
	if len(seq) <= l.NonUMIStart || len(seq) < l.UMIEnd {
		return "", "", false
	}
	return seq[l.UMIStart:l.UMIEnd], seq[l.NonUMIStart:], true
}

// Options configures GroundTruth.
type Options struct {
	Layout
	// MinGroupSize is the smallest barcode group that yields a truth.
	MinGroupSize int
	// MaxEdits bounds the distance between a kept payload and the truth.
	MaxEdits int
	Pool     executor.Options
}

// OptionsFrom maps the RealUMI section onto Options.
func OptionsFrom(cfg config.RealUMI, pool executor.Options) Options {
	return Options{
		Layout:       Layout{UMIStart: cfg.UMIStart, UMIEnd: cfg.UMIEnd, NonUMIStart: cfg.NonUMIStart},
		MinGroupSize: cfg.GroupReadNumber,
		MaxEdits:     cfg.ReadEditDif,
		Pool:         pool,
	}
}

// Result summarises a GroundTruth run.
type Result struct {
	RawPath  string
	TruePath string
	Reads    int
	Groups   int
	Kept     int
}

type member struct {
	id      string
	payload string
}

type group struct {
	umi     string
	members []member
}

// GroundTruth reads input, writes the payloads of every kept read to
// "<base>_umi_raw.<ext>" and their truths to "<base>_umi_true.<ext>" in dir.
// Both files list the same IDs in input order.
func GroundTruth(ctx context.Context, input, dir string, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)

	ft, err := seqio.DetectType(input)
	if err != nil {
		return nil, err
	}
	if err := fsutil.EnsureDir(dir); err != nil {
		return nil, err
	}

	res := &Result{
		RawPath:  fsutil.Derived(dir, input, "_umi_raw", ft.Ext()),
		TruePath: fsutil.Derived(dir, input, "_umi_true", ft.Ext()),
	}

	byUMI := make(map[string]*group)
	short := 0
	err = seqio.Each(input, func(rec seqio.Record) error {
		res.Reads++
		umi, payload, ok := opts.Split(rec.Seq)
		if !ok {
			short++
			return nil
		}
		g, found := byUMI[umi]
		if !found {
			g = &group{umi: umi}
			byUMI[umi] = g
		}
		g.members = append(g.members, member{id: rec.ID, payload: payload})
		return nil
	})
	if err != nil {
		return nil, err
	}
	if short > 0 {
		logger.Warn("Reads too short for the UMI layout were skipped.", "count", short)
	}

	var groups []*group
	for _, g := range byUMI {
		if len(g.members) >= opts.MinGroupSize {
			groups = append(groups, g)
		}
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].umi < groups[j].umi })
	res.Groups = len(groups)

	pool := opts.Pool
	pool.Stage = "umi ground truth"
	truths, err := executor.Map(ctx, pool, groups, func(_ context.Context, g *group) (map[string]string, error) {
		return resolveGroup(g, opts.MaxEdits), nil
	})
	if err != nil {
		return nil, err
	}
	truth := make(map[string]string)
	for _, t := range truths {
		for id, seq := range t {
			truth[id] = seq
		}
	}

	if err := writePair(input, res, opts.Layout, truth); err != nil {
		return nil, err
	}
	logger.Info("UMI ground truth written.",
		"reads", res.Reads, "groups", res.Groups, "kept", res.Kept,
		"raw", res.RawPath, "true", res.TruePath)
	return res, nil
}

// resolveGroup maps the ID of every member close enough to the dominant
// payload onto that payload.
func resolveGroup(g *group, maxEdits int) map[string]string {
	freq := make(map[string]int)
	for _, m := range g.members {
		freq[m.payload]++
	}
	best := ""
	for p, n := range freq {
		if n > freq[best] || (n == freq[best] && p < best) {
			best = p
		}
	}
	out := make(map[string]string)
	for _, m := range g.members {
		if m.payload == best || readgraph.Distance(m.payload, best) <= maxEdits {
			out[m.id] = best
		}
	}
	return out
}

func writePair(input string, res *Result, layout Layout, truth map[string]string) error {
	raw, err := seqio.Create(res.RawPath)
	if err != nil {
		return err
	}
	defer raw.Discard()
	tru, err := seqio.Create(res.TruePath)
	if err != nil {
		return err
	}
	defer tru.Discard()

	err = seqio.Each(input, func(rec seqio.Record) error {
		seq, ok := truth[rec.ID]
		if !ok {
			return nil
		}
		_, payload, _ := layout.Split(rec.Seq)
		qual := ""
		if rec.Qual != "" {
			qual = rec.Qual[layout.NonUMIStart:]
		}
		if err := raw.Write(seqio.Record{ID: rec.ID, Desc: rec.Desc, Seq: payload, Qual: qual}); err != nil {
			return err
		}
		if qual != "" {
			qual = fitQuality(qual, len(seq))
		}
		res.Kept++
		return tru.Write(seqio.Record{ID: rec.ID, Desc: rec.Desc, Seq: seq, Qual: qual})
	})
	if err != nil {
		return fmt.Errorf("failed to write UMI datasets: %w", err)
	}
	if err := raw.Close(); err != nil {
		return err
	}
	return tru.Close()
}

func fitQuality(qual string, n int) string {
	if len(qual) >= n {
		return qual[:n]
	}
	pad := make([]byte, n-len(qual))
	for i := range pad {
		pad[i] = qual[len(qual)-1]
	}
	return qual + string(pad)
}
