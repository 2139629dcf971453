package samples

import (
	"context"
	"fmt"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/specialistvlad/noise2read/internal/fsutil"
	"github.com/specialistvlad/noise2read/internal/readgraph"
	"github.com/specialistvlad/noise2read/internal/seqio"
)

// SplitIsolates writes the reads of ds that are isolated in g to
// "<base>_isolates.<ext>" and all others to "<base>_non_isolates.<ext>" in
// dir, returning both paths.
func SplitIsolates(ctx context.Context, ds *seqio.Dataset, g *readgraph.Graph, dir string) (string, string, error) {
	logger := ctxlog.FromContext(ctx)

	isolated := make(map[string]struct{})
	rest := make(map[string]struct{})
	iso := make(map[string]bool)
	for _, s := range g.Isolates() {
		iso[s] = true
	}
	for seq, ids := range ds.IDs {
		target := rest
		if iso[seq] {
			target = isolated
		}
		for _, id := range ids {
			target[id] = struct{}{}
		}
	}

	ext := ds.Type.Ext()
	isoPath := fsutil.Derived(dir, ds.Path, "_isolates", ext)
	restPath := fsutil.Derived(dir, ds.Path, "_non_isolates", ext)
	nIso, err := seqio.Extract(ds.Path, isolated, isoPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to write isolates: %w", err)
	}
	nRest, err := seqio.Extract(ds.Path, rest, restPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to write non-isolates: %w", err)
	}
	logger.Info("Isolated nodes extraction completed.", "isolates", nIso, "non_isolates", nRest)
	return isoPath, restPath, nil
}
