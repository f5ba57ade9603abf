// SPDX-License-Identifier: MIT
//
// File: methods_projection.go
// Role: Node projection (dense node index + edge index arrays) and its accessors.

package molecule

import (
	"fmt"
	"slices"

	"go.uber.org/zap"
)

// CreateGraph returns the node projection of the mapping name.
//
// Implementation:
//   - Stage 1: collect every mapping called name; fail with ErrMappingNotFound if none.
//   - Stage 2: participating molecule types (set order) get contiguous node
//     ranges, ids in canonical order.
//   - Stage 3: each mapping contributes one EdgeSet A→B with weights from the
//     "weight" attribute (1.0 when absent); bidirectional adds the mirrored
//     EdgeSet with Reverse=true.
//
// Behavior highlights:
//   - Node count = Σ entities of participating types.
//   - Edge count = Σ mapping rows, doubled when bidirectional.
//   - Result is cached per (name, bidirectional) until the next structural edit.
//
// Complexity: O(V + E) on a cache miss, O(1) on a hit.
func (s *Set) CreateGraph(name string, bidirectional bool) (*Graph, error) {
	key := projKey{mapping: name, bidirectional: bidirectional}
	if s.cache != nil {
		if g, ok := s.cache.Get(key); ok {
			s.metrics.hit()
			s.logger.Debug("projection cache hit", zap.String("mapping", name), zap.Bool("bidirectional", bidirectional))
			return g, nil
		}
	}
	s.metrics.miss()

	g, err := s.buildGraph(name, bidirectional)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Add(key, g)
	}
	s.logger.Debug("projection built",
		zap.String("mapping", name),
		zap.Bool("bidirectional", bidirectional),
		zap.Int("nodes", g.NumNodes()),
		zap.Int("edges", g.NumEdges()))

	return g, nil
}

func (s *Set) buildGraph(name string, bidirectional bool) (*Graph, error) {
	var maps []*Mapping
	participating := make(map[string]bool)
	for _, m := range s.mappings {
		if m.name == name {
			maps = append(maps, m)
			participating[m.a] = true
			participating[m.b] = true
		}
	}
	if len(maps) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrMappingNotFound, name)
	}

	g := &Graph{mapping: name, bidirectional: bidirectional, typeIdx: make(map[string]int)}
	next := 0
	for _, mol := range s.order {
		if !participating[mol] {
			continue
		}
		t := s.tables[mol]
		g.typeIdx[mol] = len(g.types)
		g.types = append(g.types, mol)
		g.offsets = append(g.offsets, next)
		g.sizes = append(g.sizes, t.Len())
		g.tables = append(g.tables, t)
		next += t.Len()
	}

	for _, m := range maps {
		ta, tb := s.tables[m.a], s.tables[m.b]
		offA, offB := g.offsets[g.typeIdx[m.a]], g.offsets[g.typeIdx[m.b]]
		es := EdgeSet{
			Name:   m.name,
			From:   m.a,
			To:     m.b,
			Src:    make([]int, len(m.pairs)),
			Dst:    make([]int, len(m.pairs)),
			Weight: make([]float64, len(m.pairs)),
		}
		w, weighted := m.attrs[WeightAttr]
		for i, p := range m.pairs {
			es.Src[i] = offA + ta.pos[p.A]
			es.Dst[i] = offB + tb.pos[p.B]
			if weighted {
				es.Weight[i] = w[i]
			} else {
				es.Weight[i] = 1.0
			}
		}
		g.edges = append(g.edges, es)
		if bidirectional {
			g.edges = append(g.edges, EdgeSet{
				Name:    m.name,
				From:    m.b,
				To:      m.a,
				Reverse: true,
				Src:     slices.Clone(es.Dst),
				Dst:     slices.Clone(es.Src),
				Weight:  slices.Clone(es.Weight),
			})
		}
	}

	return g, nil
}

// Mapping returns the mapping name the graph projects.
func (g *Graph) Mapping() string { return g.mapping }

// Bidirectional reports whether reversed relations were added.
func (g *Graph) Bidirectional() bool { return g.bidirectional }

// Types returns the participating molecule types in node-range order.
func (g *Graph) Types() []string { return slices.Clone(g.types) }

// NumNodes returns the total number of nodes.
func (g *Graph) NumNodes() int {
	if len(g.types) == 0 {
		return 0
	}
	last := len(g.types) - 1

	return g.offsets[last] + g.sizes[last]
}

// NumEdges returns the total number of edges over all relations.
func (g *Graph) NumEdges() int {
	n := 0
	for _, es := range g.edges {
		n += len(es.Src)
	}

	return n
}

// NodeRange returns the first node index and the node count of molecule.
func (g *Graph) NodeRange(molecule string) (start, n int, ok bool) {
	k, ok := g.typeIdx[molecule]
	if !ok {
		return 0, 0, false
	}

	return g.offsets[k], g.sizes[k], true
}

// NodeIndex returns the node index of (molecule, id).
func (g *Graph) NodeIndex(molecule, id string) (int, bool) {
	k, ok := g.typeIdx[molecule]
	if !ok {
		return 0, false
	}
	p, ok := g.tables[k].Pos(id)
	if !ok {
		return 0, false
	}

	return g.offsets[k] + p, true
}

// Node returns the molecule type and id of node i.
func (g *Graph) Node(i int) (molecule, id string, ok bool) {
	for k := range g.types {
		if i >= g.offsets[k] && i < g.offsets[k]+g.sizes[k] {
			return g.types[k], g.tables[k].ID(i - g.offsets[k]), true
		}
	}

	return "", "", false
}

// TypeIndex returns the position of molecule in Types().
func (g *Graph) TypeIndex(molecule string) (int, bool) {
	k, ok := g.typeIdx[molecule]
	return k, ok
}

// EdgeSets returns deep copies of the relations in build order.
func (g *Graph) EdgeSets() []EdgeSet {
	out := make([]EdgeSet, len(g.edges))
	for i, es := range g.edges {
		es.Src = slices.Clone(es.Src)
		es.Dst = slices.Clone(es.Dst)
		es.Weight = slices.Clone(es.Weight)
		out[i] = es
	}

	return out
}

// Table returns the table backing the node range of molecule. The table is
// shared with the set and must be treated as read-only.
func (g *Graph) Table(molecule string) (*Table, bool) {
	k, ok := g.typeIdx[molecule]
	if !ok {
		return nil, false
	}

	return g.tables[k], true
}
