// SPDX-License-Identifier: MIT

package molecule

import "slices"

// walker holds the breadth-first state of a component sweep.
type walker struct {
	adj     [][]int
	queue   []int
	visited []bool
}

func newWalker(g *Graph) *walker {
	n := g.NumNodes()
	w := &walker{adj: make([][]int, n), queue: make([]int, 0, n), visited: make([]bool, n)}
	for _, es := range g.edges {
		for i := range es.Src {
			s, d := es.Src[i], es.Dst[i]
			w.adj[s] = append(w.adj[s], d)
			w.adj[d] = append(w.adj[d], s)
		}
	}

	return w
}

func (w *walker) enqueue(i int) {
	w.visited[i] = true
	w.queue = append(w.queue, i)
}

// sweep collects every node reachable from start.
func (w *walker) sweep(start int) []int {
	var comp []int
	w.enqueue(start)
	for len(w.queue) > 0 {
		cur := w.queue[0]
		w.queue = w.queue[1:]
		comp = append(comp, cur)
		for _, nbr := range w.adj[cur] {
			if !w.visited[nbr] {
				w.enqueue(nbr)
			}
		}
	}
	slices.Sort(comp)

	return comp
}

// Components returns the connected components of the projection, edges
// taken as undirected. Each component lists its node indices ascending;
// components are ordered by their smallest node. Nodes without edges form
// singleton components.
//
// Implementation:
//   - Stage 1: undirected adjacency lists from every edge set.
//   - Stage 2: breadth-first sweep from each unvisited node in index order.
//
// Complexity: O(V + E).
func (g *Graph) Components() [][]int {
	w := newWalker(g)
	var out [][]int
	for i := range w.visited {
		if !w.visited[i] {
			out = append(out, w.sweep(i))
		}
	}

	return out
}

// Groups returns, per connected component, the ids of molecule it contains
// in canonical order; components without such nodes are skipped. Over a
// peptide-protein projection these are the protein groups: proteins that
// share evidence through common peptides land in one group.
func (g *Graph) Groups(molecule string) ([][]string, bool) {
	start, n, ok := g.NodeRange(molecule)
	if !ok {
		return nil, false
	}
	tbl := g.tables[g.typeIdx[molecule]]
	var out [][]string
	for _, comp := range g.Components() {
		var ids []string
		for _, i := range comp {
			if i >= start && i < start+n {
				ids = append(ids, tbl.ID(i-start))
			}
		}
		if len(ids) > 0 {
			out = append(out, ids)
		}
	}

	return out, true
}
