// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"

	"github.com/katalvlaran/proteonet/matrix"
)

// Values concatenates (mol, column) over all samples in order and returns
// the values with their missing mask.
func (d *Dataset) Values(mol, column string) ([]float64, []bool, error) {
	n, err := d.set.NumberMolecules(mol)
	if err != nil {
		return nil, nil, err
	}
	values := make([]float64, 0, n*len(d.samples))
	missing := make([]bool, 0, n*len(d.samples))
	for _, s := range d.samples {
		col, err := s.Column(mol, column)
		if err != nil {
			return nil, nil, err
		}
		for _, v := range col {
			values = append(values, v)
			missing = append(missing, d.IsMissing(v))
		}
	}

	return values, missing, nil
}

// Histogram bins the present values of (mol, column) across samples.
// bins == 0 selects an automatic bin count. Returns counts and bin edges.
func (d *Dataset) Histogram(mol, column string, bins int) ([]int, []float64, error) {
	values, missing, err := d.Values(mol, column)
	if err != nil {
		return nil, nil, err
	}
	present := make([]float64, 0, len(values))
	for i, v := range values {
		if !missing[i] {
			present = append(present, v)
		}
	}
	edges, err := matrix.HistogramBinEdges(present, bins)
	if err != nil {
		return nil, nil, fmt.Errorf("histogram %s.%s: %w", mol, column, err)
	}
	counts, err := matrix.Histogram(present, edges)
	if err != nil {
		return nil, nil, err
	}

	return counts, edges, nil
}

// Correlation compares columns x and y of mol over the given samples (all
// when none): R² over cells where both are present, and the average
// fraction of entities for which y is present.
func (d *Dataset) Correlation(mol, x, y string, samples ...string) (Correlation, error) {
	sel, err := d.selectSamples(samples)
	if err != nil {
		return Correlation{}, err
	}
	var xs, ys []float64
	var coverage float64
	for _, s := range sel {
		cx, err := s.Column(mol, x)
		if err != nil {
			return Correlation{}, err
		}
		cy, err := s.Column(mol, y)
		if err != nil {
			return Correlation{}, err
		}
		present := 0
		for i := range cy {
			if d.IsMissing(cy[i]) {
				continue
			}
			present++
			if !d.IsMissing(cx[i]) {
				xs = append(xs, cx[i])
				ys = append(ys, cy[i])
			}
		}
		if len(cy) > 0 {
			coverage += float64(present) / float64(len(cy))
		}
	}
	if len(sel) > 0 {
		coverage /= float64(len(sel))
	}
	r, n, err := matrix.Pearson(xs, ys)
	if err != nil {
		return Correlation{}, fmt.Errorf("correlation %s.%s~%s: %w", mol, x, y, err)
	}

	return Correlation{R2: r * r, N: n, Coverage: coverage}, nil
}
