package readgraph

import "sync"

// Graph is an undirected read graph. All operations are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map and node attributes.
	mutex sync.RWMutex
	// nodes stores every read, keyed by its sequence.
	nodes map[string]*node
	edges int
}

type node struct {
	seq   string
	count int
	flag  bool
	adj   map[string]*node
}

// Edge is an undirected edge; A sorts before B.
type Edge struct {
	A, B string
}

// Summary is a size snapshot of a graph.
type Summary struct {
	Nodes    int
	Edges    int
	Isolates int
}
