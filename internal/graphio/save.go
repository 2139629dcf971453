package graphio

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/specialistvlad/noise2read/internal/ctxlog"
	"github.com/specialistvlad/noise2read/internal/fsutil"
	"github.com/specialistvlad/noise2read/internal/readgraph"
)

// MinDrawnComponent is the smallest component size that gets drawn.
const MinDrawnComponent = 10

// Options selects what Save writes.
type Options struct {
	SaveGraph bool
	Visualize bool
	// MaxDrawings caps the number of component drawings.
	MaxDrawings int
}

// Save writes the requested exports of a graph built with edit distance ed
// into "<dir>/graph<ed>/" and returns the files written.
func Save(ctx context.Context, g *readgraph.Graph, dir string, ed int, opts Options) ([]string, error) {
	if !opts.SaveGraph && !opts.Visualize {
		return nil, nil
	}
	logger := ctxlog.FromContext(ctx)
	sub := filepath.Join(dir, fmt.Sprintf("graph%d", ed))
	if err := fsutil.EnsureDir(sub); err != nil {
		return nil, err
	}

	var written []string
	if opts.SaveGraph {
		path := filepath.Join(sub, "graph.gexf")
		if err := fsutil.WriteAtomic(ctx, path, func(w io.Writer) error { return WriteGEXF(w, g) }); err != nil {
			return written, err
		}
		written = append(written, path)
		logger.Info("Graph file saved.", "path", path)
	}

	if opts.Visualize {
		drawn := 0
		for _, comp := range g.Components() {
			if drawn >= opts.MaxDrawings {
				break
			}
			if len(comp) < MinDrawnComponent {
				continue
			}
			name := fmt.Sprintf("%d_%d", drawn, len(comp))
			path := filepath.Join(sub, name+".dot")
			sg := g.Subgraph(comp)
			if err := fsutil.WriteAtomic(ctx, path, func(w io.Writer) error { return WriteDOT(w, name, sg) }); err != nil {
				return written, err
			}
			written = append(written, path)
			drawn++
		}
		logger.Info("Graph components drawn.", "count", drawn, "dir", sub)
	}
	return written, nil
}
