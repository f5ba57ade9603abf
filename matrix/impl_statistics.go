// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - NaN-aware descriptive statistics over flat float slices.
//   - Histogram binning and Pearson correlation for dataset summaries.
//
// Conventions:
//   - NaN entries are "no observation" and are skipped everywhere.
//   - Reducers (Sum, Mean, Median, Min, Max, Std) have the shape
//     func([]float64) float64 so they can serve directly as aggregation
//     reducers; a reducer over zero observations returns NaN (Sum returns 0).
//   - Inputs are never mutated.

package matrix

import (
	"fmt"
	"math"
	"slices"
)

const (
	opHistogramBinEdges = "HistogramBinEdges"
	opHistogram         = "Histogram"
	opPearson           = "Pearson"
)

// finite returns the non-NaN entries of xs in order.
func finite(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, v := range xs {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}

	return out
}

// Sum returns the sum of the non-NaN entries (0 for none).
func Sum(xs []float64) float64 {
	var s float64
	for _, v := range xs {
		if !math.IsNaN(v) {
			s += v
		}
	}

	return s
}

// Mean returns the arithmetic mean of the non-NaN entries.
func Mean(xs []float64) float64 {
	var s float64
	n := 0
	for _, v := range xs {
		if !math.IsNaN(v) {
			s += v
			n++
		}
	}
	if n == 0 {
		return math.NaN()
	}

	return s / float64(n)
}

// Median returns the median of the non-NaN entries; for an even count it
// is the mean of the two middle values.
//
// Complexity: O(n log n) on a private copy.
func Median(xs []float64) float64 {
	v := finite(xs)
	n := len(v)
	if n == 0 {
		return math.NaN()
	}
	slices.Sort(v)
	if n%2 == 1 {
		return v[n/2]
	}

	return (v[n/2-1] + v[n/2]) / 2
}

// Min returns the smallest non-NaN entry.
func Min(xs []float64) float64 {
	m := math.NaN()
	for _, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(m) || v < m {
			m = v
		}
	}

	return m
}

// Max returns the largest non-NaN entry.
func Max(xs []float64) float64 {
	m := math.NaN()
	for _, v := range xs {
		if math.IsNaN(v) {
			continue
		}
		if math.IsNaN(m) || v > m {
			m = v
		}
	}

	return m
}

// Std returns the sample standard deviation (ddof=1) of the non-NaN entries.
// Fewer than two observations yield NaN.
//
// Implementation: two-pass (mean, then squared deviations) for stability.
func Std(xs []float64) float64 {
	v := finite(xs)
	n := len(v)
	if n < 2 {
		return math.NaN()
	}
	mu := Mean(v)
	var ss float64
	for _, x := range v {
		d := x - mu
		ss += d * d
	}

	return math.Sqrt(ss / float64(n-1))
}

// HistogramBinEdges computes bins+1 equally spaced edges spanning the
// non-NaN range of values.
//
// Behavior highlights:
//   - bins == 0 selects the Sturges rule: ceil(log2(n)) + 1.
//   - A degenerate range (min == max) is widened to [min-0.5, max+0.5].
//
// Errors:
//   - ErrBadBins for bins < 0.
//   - ErrEmpty when values holds no observation.
func HistogramBinEdges(values []float64, bins int) ([]float64, error) {
	if bins < 0 {
		return nil, fmt.Errorf("%s: bins=%d: %w", opHistogramBinEdges, bins, ErrBadBins)
	}
	v := finite(values)
	if len(v) == 0 {
		return nil, fmt.Errorf("%s: %w", opHistogramBinEdges, ErrEmpty)
	}
	if bins == 0 {
		bins = int(math.Ceil(math.Log2(float64(len(v))))) + 1
	}
	lo, hi := Min(v), Max(v)
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	edges := make([]float64, bins+1)
	step := (hi - lo) / float64(bins)
	for i := range edges {
		edges[i] = lo + float64(i)*step
	}
	edges[bins] = hi

	return edges, nil
}

// Histogram counts the non-NaN values falling into each [edges[k], edges[k+1])
// bin; the last bin also includes its right edge. Values outside the edges
// are ignored.
//
// Errors: ErrBadBins when fewer than two edges are given.
//
// Complexity: O(n log b).
func Histogram(values, edges []float64) ([]int, error) {
	if len(edges) < 2 {
		return nil, fmt.Errorf("%s: %d edges: %w", opHistogram, len(edges), ErrBadBins)
	}
	counts := make([]int, len(edges)-1)
	last := len(edges) - 1
	for _, v := range values {
		if math.IsNaN(v) || v < edges[0] || v > edges[last] {
			continue
		}
		if v == edges[last] {
			counts[last-1]++
			continue
		}
		// k is the first edge strictly greater than v; the bin is k-1.
		k, _ := slices.BinarySearchFunc(edges, v, func(e, t float64) int {
			if e <= t {
				return -1
			}
			return 1
		})
		counts[k-1]++
	}

	return counts, nil
}

// Pearson returns the Pearson correlation coefficient of x and y over the
// positions where both are non-NaN, and the number of such pairs.
//
// Errors:
//   - ErrDimensionMismatch if len(x) != len(y).
//   - ErrEmpty when fewer than two complete pairs remain.
//
// A zero-variance input yields NaN with a nil error.
func Pearson(x, y []float64) (float64, int, error) {
	if len(x) != len(y) {
		return 0, 0, fmt.Errorf("%s: %d vs %d: %w", opPearson, len(x), len(y), ErrDimensionMismatch)
	}
	var sx, sy float64
	n := 0
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		sx += x[i]
		sy += y[i]
		n++
	}
	if n < 2 {
		return 0, n, fmt.Errorf("%s: %d pairs: %w", opPearson, n, ErrEmpty)
	}
	mx, my := sx/float64(n), sy/float64(n)

	var sxy, sxx, syy float64
	for i := range x {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		dx, dy := x[i]-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return math.NaN(), n, nil
	}

	return sxy / math.Sqrt(sxx*syy), n, nil
}
