package graphio

import (
	"bufio"
	"fmt"
	"io"

	"github.com/specialistvlad/noise2read/internal/readgraph"
)

// WriteDOT writes g as an undirected Graphviz graph labelled with read
// counts.
func WriteDOT(w io.Writer, name string, g *readgraph.Graph) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "graph %q {\n", name)
	fmt.Fprintln(bw, `  node [shape=circle, style=filled, fillcolor="#fbb4ae", fontcolor="black"];`)
	fmt.Fprintln(bw, `  edge [color="#66c2a5"];`)
	for _, seq := range g.Nodes() {
		fmt.Fprintf(bw, "  %q [label=\"%d\"];\n", seq, g.Count(seq))
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, "  %q -- %q;\n", e.A, e.B)
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}
