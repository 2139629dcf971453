package readgraph

import (
	"fmt"
	"sort"
)

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// AddNode adds a read with the given abundance. If the read is already
// present the call does nothing.
func (g *Graph) AddNode(seq string, count int) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[seq]; ok {
		return
	}
	g.nodes[seq] = &node{seq: seq, count: count, adj: make(map[string]*node)}
}

// AddEdge connects two reads. An error is returned if either read is missing
// or the edge would be a self-loop. Adding an existing edge is a no-op.
func (g *Graph) AddEdge(a, b string) error {
	if a == b {
		return fmt.Errorf("self-referential edge not allowed: %s", a)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	na, ok := g.nodes[a]
	if !ok {
		return fmt.Errorf("source read not found: %s", a)
	}
	nb, ok := g.nodes[b]
	if !ok {
		return fmt.Errorf("destination read not found: %s", b)
	}
	if _, ok := na.adj[b]; ok {
		return nil
	}
	na.adj[b] = nb
	nb.adj[a] = na
	g.edges++
	return nil
}

// Has reports whether seq is a node.
func (g *Graph) Has(seq string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	_, ok := g.nodes[seq]
	return ok
}

// Count returns the abundance of seq, or 0 if it is not a node.
func (g *Graph) Count(seq string) int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	if n, ok := g.nodes[seq]; ok {
		return n.count
	}
	return 0
}

// Degree returns the number of neighbours of seq.
func (g *Graph) Degree(seq string) int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	if n, ok := g.nodes[seq]; ok {
		return len(n.adj)
	}
	return 0
}

// Neighbors returns the neighbours of seq in sorted order.
func (g *Graph) Neighbors(seq string) []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[seq]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(n.adj))
	for s := range n.adj {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Flagged reports whether seq was marked as visited.
func (g *Graph) Flagged(seq string) bool {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	if n, ok := g.nodes[seq]; ok {
		return n.flag
	}
	return false
}

// SetFlag marks seq as visited.
func (g *Graph) SetFlag(seq string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	if n, ok := g.nodes[seq]; ok {
		n.flag = true
	}
}

// ResetFlags clears the visited mark of every node.
func (g *Graph) ResetFlags() {
	g.mutex.Lock()
	defer g.mutex.Unlock()
	for _, n := range g.nodes {
		n.flag = false
	}
}

// Nodes returns every read in sorted order.
func (g *Graph) Nodes() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	out := make([]string, 0, len(g.nodes))
	for s := range g.nodes {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Edges returns every edge exactly once, sorted by endpoints.
func (g *Graph) Edges() []Edge {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	out := make([]Edge, 0, g.edges)
	for s, n := range g.nodes {
		for t := range n.adj {
			if s < t {
				out = append(out, Edge{A: s, B: t})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].A != out[j].A {
			return out[i].A < out[j].A
		}
		return out[i].B < out[j].B
	})
	return out
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	g.mutex.RLock()
	defer g.mutex.RUnlock()
	return g.edges
}

// Summary returns node, edge and isolate counts.
func (g *Graph) Summary() Summary {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	s := Summary{Nodes: len(g.nodes), Edges: g.edges}
	for _, n := range g.nodes {
		if len(n.adj) == 0 {
			s.Isolates++
		}
	}
	return s
}
