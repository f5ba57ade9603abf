// SPDX-License-Identifier: MIT

package matrix

import (
	"fmt"
	"strings"
)

// Mask is a row-major boolean matrix with the Dense accessor contract.
// In a masked dataset rows are entities and columns are samples.
type Mask struct {
	r, c int
	data []bool
}

var _ fmt.Stringer = (*Mask)(nil)

func maskErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Mask.%s(%d,%d): %w", method, row, col, err)
}

// NewMask creates an r×c all-false mask. Zero sizes are legal.
func NewMask(rows, cols int) (*Mask, error) {
	if rows < 0 || cols < 0 {
		return nil, maskErrorf(ctxNew, rows, cols, ErrBadShape)
	}

	return &Mask{r: rows, c: cols, data: make([]bool, rows*cols)}, nil
}

// Rows returns the number of rows.
func (m *Mask) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Mask) Cols() int { return m.c }

// Shape returns (rows, cols).
func (m *Mask) Shape() (int, int) { return m.r, m.c }

// At returns the flag at (i,j) or ErrOutOfRange.
func (m *Mask) At(i, j int) (bool, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return false, maskErrorf(ctxAt, i, j, ErrOutOfRange)
	}

	return m.data[i*m.c+j], nil
}

// Set assigns v at (i,j) or returns ErrOutOfRange.
func (m *Mask) Set(i, j int, v bool) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return maskErrorf(ctxSet, i, j, ErrOutOfRange)
	}
	m.data[i*m.c+j] = v

	return nil
}

// Col returns a copy of column j.
func (m *Mask) Col(j int) ([]bool, error) {
	if j < 0 || j >= m.c {
		return nil, maskErrorf(ctxCol, 0, j, ErrOutOfRange)
	}
	out := make([]bool, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// Count returns the number of true cells.
func (m *Mask) Count() int {
	n := 0
	for _, v := range m.data {
		if v {
			n++
		}
	}

	return n
}

// Clone returns a deep copy.
func (m *Mask) Clone() *Mask {
	cp := make([]bool, len(m.data))
	copy(cp, m.data)

	return &Mask{r: m.r, c: m.c, data: cp}
}

// Do calls f for each cell in row-major order; f returns false to stop early.
func (m *Mask) Do(f func(i, j int, v bool) bool) {
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			if !f(i, j, m.data[i*m.c+j]) {
				return
			}
		}
	}
}

// String renders the mask with 1/0 cells.
func (m *Mask) String() string {
	var b strings.Builder
	for i := 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		for j := 0; j < m.c; j++ {
			if m.data[i*m.c+j] {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
