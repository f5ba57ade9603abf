// SPDX-License-Identifier: MIT

package graph

import (
	"fmt"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/matrix"
	"github.com/katalvlaran/proteonet/molecule"
)

// GatherPredictions collects the node range of molecule from per-sample
// prediction vectors into a wide matrix (ids × samples). preds[j] holds one
// value per projection node for samples[j].
//
// Implementation:
//   - Stage 1: stack preds as the columns of a node × sample matrix.
//   - Stage 2: select the rows of molecule's node range with Induced.
//
// Complexity: O(N·s).
func GatherPredictions(proj *molecule.Graph, mol string, samples []string, preds [][]float64, missing float64) (*dataset.Wide, error) {
	if proj == nil {
		return nil, ErrNilProjection
	}
	if len(preds) != len(samples) {
		return nil, fmt.Errorf("%w: %d prediction vectors for %d samples", ErrProjectionMismatch, len(preds), len(samples))
	}
	tbl, ok := proj.Table(mol)
	if !ok {
		return nil, fmt.Errorf("%w: %q not in projection", molecule.ErrMoleculeNotFound, mol)
	}
	all, err := matrix.NewFilled(proj.NumNodes(), len(samples), missing)
	if err != nil {
		return nil, err
	}
	for j, p := range preds {
		if len(p) != proj.NumNodes() {
			return nil, fmt.Errorf("%w: sample %q has %d predictions for %d nodes", ErrProjectionMismatch, samples[j], len(p), proj.NumNodes())
		}
		if err = all.SetCol(j, p); err != nil {
			return nil, err
		}
	}

	start, n, _ := proj.NodeRange(mol)
	rows := make([]int, n)
	for i := range rows {
		rows[i] = start + i
	}
	cols := make([]int, len(samples))
	for j := range cols {
		cols[j] = j
	}
	vals, err := all.Induced(rows, cols)
	if err != nil {
		return nil, err
	}

	return dataset.WideFrom(tbl.IDs(), samples, vals)
}
