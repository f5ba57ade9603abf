// SPDX-License-Identifier: MIT
//
// File: create.go
// Role: Graph structure from a node projection.

package graph

import (
	"github.com/katalvlaran/proteonet/matrix"
	"github.com/katalvlaran/proteonet/molecule"
)

// Create builds the tensor graph structure of proj: relations with weights
// (1.0 where the mapping carries no weight attribute), the one-hot type
// tensor, and all-false mask/hidden vectors.
//
// Complexity: O(N·T + E).
func Create(proj *molecule.Graph) (*Graph, error) {
	if proj == nil {
		return nil, ErrNilProjection
	}
	n := proj.NumNodes()
	types := proj.Types()
	typ, err := matrix.New(n, len(types))
	if err != nil {
		return nil, err
	}
	for k, mol := range types {
		start, size, _ := proj.NodeRange(mol)
		for i := start; i < start+size; i++ {
			if err = typ.Set(i, k, 1); err != nil {
				return nil, err
			}
		}
	}

	return &Graph{
		NumNodes:  n,
		Relations: proj.EdgeSets(),
		Type:      typ,
		Mask:      make([]bool, n),
		Hidden:    make([]bool, n),
	}, nil
}

// NumEdges returns the edge count over all relations.
func (g *Graph) NumEdges() int {
	n := 0
	for _, r := range g.Relations {
		n += len(r.Src)
	}

	return n
}

// MaskedNodes returns the node indices with Mask set, ascending.
func (g *Graph) MaskedNodes() []int { return trueIndices(g.Mask) }

// HiddenNodes returns the node indices with Hidden set, ascending.
func (g *Graph) HiddenNodes() []int { return trueIndices(g.Hidden) }

func trueIndices(bs []bool) []int {
	var out []int
	for i, b := range bs {
		if b {
			out = append(out, i)
		}
	}

	return out
}
