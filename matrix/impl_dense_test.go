// SPDX-License-Identifier: MIT

// Package matrix_test contains unit tests for the Dense implementation.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/proteonet/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewBadShape ensures New rejects negative dimensions and accepts zero-area.
func TestNewBadShape(t *testing.T) {
	_, err := matrix.New(-1, 5)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	_, err = matrix.New(5, -1)
	require.ErrorIs(t, err, matrix.ErrBadShape)

	m, err := matrix.New(3, 0) // wide matrix over zero samples
	require.NoError(t, err)
	r, c := m.Shape()
	require.Equal(t, 3, r)
	require.Equal(t, 0, c)
}

// TestAtSetOutOfRange ensures accessors return ErrOutOfRange on invalid access.
func TestAtSetOutOfRange(t *testing.T) {
	m, err := matrix.New(2, 2)
	require.NoError(t, err)

	cases := []struct {
		name string
		i, j int
	}{
		{"negative row", -1, 0},
		{"row too large", 2, 0},
		{"negative col", 0, -1},
		{"col too large", 0, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.At(tc.i, tc.j)
			require.ErrorIs(t, err, matrix.ErrOutOfRange)
			require.ErrorIs(t, m.Set(tc.i, tc.j, 1), matrix.ErrOutOfRange)
		})
	}
}

// TestNaNPolicy verifies NaN is storable by default and rejected under validation.
func TestNaNPolicy(t *testing.T) {
	m, err := matrix.New(1, 2)
	require.NoError(t, err)
	require.NoError(t, m.Set(0, 0, math.NaN()))
	v, err := m.At(0, 0)
	require.NoError(t, err)
	require.True(t, math.IsNaN(v))

	strict, err := matrix.New(1, 2, matrix.WithValidateNaNInf(true))
	require.NoError(t, err)
	require.ErrorIs(t, strict.Set(0, 1, math.Inf(1)), matrix.ErrNaNInf)
	require.ErrorIs(t, strict.Fill(math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, strict.SetCol(0, []float64{math.NaN()}), matrix.ErrNaNInf)

	_, err = matrix.NewFilled(2, 2, math.NaN(), matrix.WithValidateNaNInf(true))
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestRowColSetCol checks copies and column writes.
func TestRowColSetCol(t *testing.T) {
	m, err := matrix.NewFilled(3, 2, 1.5)
	require.NoError(t, err)

	require.NoError(t, m.SetCol(1, []float64{7, 8, 9}))
	col, err := m.Col(1)
	require.NoError(t, err)
	require.Equal(t, []float64{7, 8, 9}, col)

	row, err := m.Row(2)
	require.NoError(t, err)
	require.Equal(t, []float64{1.5, 9}, row)

	row[0] = 100 // copies are independent
	v, _ := m.At(2, 0)
	require.Equal(t, 1.5, v)

	require.ErrorIs(t, m.SetCol(0, []float64{1}), matrix.ErrDimensionMismatch)
	_, err = m.Col(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = m.Row(-1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestInduced selects rows/cols in the given order.
func TestInduced(t *testing.T) {
	m, err := matrix.New(3, 3)
	require.NoError(t, err)
	require.NoError(t, m.Apply(func(i, j int, _ float64) float64 { return float64(i*10 + j) }))

	sub, err := m.Induced([]int{2, 0}, []int{1})
	require.NoError(t, err)
	require.Equal(t, "[21]\n[1]\n", sub.String())

	_, err = m.Induced([]int{3}, []int{0})
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	empty, err := m.Induced(nil, []int{0})
	require.NoError(t, err)
	require.Equal(t, 0, empty.Rows())
}

// TestDoEarlyStop verifies row-major order and early exit.
func TestDoEarlyStop(t *testing.T) {
	m, err := matrix.NewFilled(2, 2, 1)
	require.NoError(t, err)

	var seen [][2]int
	m.Do(func(i, j int, _ float64) bool {
		seen = append(seen, [2]int{i, j})
		return len(seen) < 3
	})
	require.Equal(t, [][2]int{{0, 0}, {0, 1}, {1, 0}}, seen)
}
