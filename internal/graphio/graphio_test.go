package graphio

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/noise2read/internal/readgraph"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func star(t *testing.T, center string, leaves int) *readgraph.Graph {
	t.Helper()
	g := readgraph.New()
	g.AddNode(center, 100)
	for i := range leaves {
		leaf := fmt.Sprintf("%s%d", center, i)
		g.AddNode(leaf, 1)
		require.NoError(t, g.AddEdge(center, leaf))
	}
	return g
}

func TestWriteGEXF(t *testing.T) {
	t.Parallel()

	g := readgraph.New()
	g.AddNode("ACGT", 9)
	g.AddNode("ACGA", 1)
	require.NoError(t, g.AddEdge("ACGT", "ACGA"))

	var buf bytes.Buffer
	require.NoError(t, WriteGEXF(&buf, g))

	var doc gexfDoc
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "undirected", doc.Graph.DefaultEdgeType)
	require.Len(t, doc.Graph.Nodes, 2)
	assert.Equal(t, "ACGA", doc.Graph.Nodes[0].ID)
	assert.Equal(t, "1", doc.Graph.Nodes[0].AttValues[0].Value)
	require.Len(t, doc.Graph.Edges, 1)
	assert.Equal(t, gexfEdge{ID: "0", Source: "ACGA", Target: "ACGT"}, doc.Graph.Edges[0])
}

func TestWriteDOT(t *testing.T) {
	t.Parallel()

	g := star(t, "AC", 2)
	var buf bytes.Buffer
	require.NoError(t, WriteDOT(&buf, "0_3", g))

	out := buf.String()
	assert.Contains(t, out, `graph "0_3" {`)
	assert.Contains(t, out, `"AC" [label="100"];`)
	assert.Contains(t, out, `"AC" -- "AC0";`)
}

func TestSave(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	g := star(t, "AAAA", 12)
	small := star(t, "CCCC", 3)
	for _, s := range small.Nodes() {
		g.AddNode(s, small.Count(s))
	}
	for _, e := range small.Edges() {
		require.NoError(t, g.AddEdge(e.A, e.B))
	}
	dir := t.TempDir()

	// --- Act ---
	files, err := Save(context.Background(), g, dir, 1, Options{SaveGraph: true, Visualize: true, MaxDrawings: 5})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "graph1", "graph.gexf"),
		filepath.Join(dir, "graph1", "0_13.dot"),
	}, files)
	for _, f := range files {
		_, err := os.Stat(f)
		assert.NoError(t, err)
	}
}

func TestSave_Disabled(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files, err := Save(context.Background(), star(t, "A", 20), dir, 2, Options{})
	require.NoError(t, err)
	assert.Empty(t, files)
	_, err = os.Stat(filepath.Join(dir, "graph2"))
	assert.True(t, os.IsNotExist(err))
}
