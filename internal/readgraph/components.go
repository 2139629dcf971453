package readgraph

import "sort"

// Components returns the connected components. Reads within a component are
// sorted, and components are ordered by their smallest read.
func (g *Graph) Components() [][]string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	seqs := make([]string, 0, len(g.nodes))
	for s := range g.nodes {
		seqs = append(seqs, s)
	}
	sort.Strings(seqs)

	seen := make(map[string]bool, len(seqs))
	var out [][]string
	for _, start := range seqs {
		if seen[start] {
			continue
		}
		seen[start] = true
		comp := []string{start}
		for i := 0; i < len(comp); i++ {
			for t := range g.nodes[comp[i]].adj {
				if !seen[t] {
					seen[t] = true
					comp = append(comp, t)
				}
			}
		}
		sort.Strings(comp)
		out = append(out, comp)
	}
	return out
}

// Isolates returns the reads without neighbours in sorted order.
func (g *Graph) Isolates() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	var out []string
	for s, n := range g.nodes {
		if len(n.adj) == 0 {
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}

// Subgraph returns a copy of g restricted to seqs, keeping node attributes
// and the edges among them.
func (g *Graph) Subgraph(seqs []string) *Graph {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	sub := New()
	for _, s := range seqs {
		if n, ok := g.nodes[s]; ok {
			sub.nodes[s] = &node{seq: s, count: n.count, flag: n.flag, adj: make(map[string]*node)}
		}
	}
	for s, sn := range sub.nodes {
		for t := range g.nodes[s].adj {
			if tn, ok := sub.nodes[t]; ok {
				if _, dup := sn.adj[t]; !dup {
					sn.adj[t] = tn
					tn.adj[s] = sn
					sub.edges++
				}
			}
		}
	}
	return sub
}
