// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/proteonet/molecule"
)

func newFrame() *Frame {
	return &Frame{values: make(map[string][]float64)}
}

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string { return slices.Clone(f.columns) }

// Has reports whether column exists.
func (f *Frame) Has(column string) bool {
	_, ok := f.values[column]
	return ok
}

func (f *Frame) set(column string, vals []float64) {
	if _, ok := f.values[column]; !ok {
		f.columns = append(f.columns, column)
	}
	f.values[column] = vals
}

func (f *Frame) drop(column string) {
	delete(f.values, column)
	f.columns = slices.DeleteFunc(f.columns, func(c string) bool { return c == column })
}

func (f *Frame) clone(columns []string) *Frame {
	out := newFrame()
	for _, c := range f.columns {
		if columns != nil && !slices.Contains(columns, c) {
			continue
		}
		out.set(c, slices.Clone(f.values[c]))
	}

	return out
}

// take keeps the entries at canonical positions idx (ascending).
func (f *Frame) take(idx []int) *Frame {
	out := newFrame()
	for _, c := range f.columns {
		src := f.values[c]
		v := make([]float64, len(idx))
		for k, i := range idx {
			v[k] = src[i]
		}
		out.set(c, v)
	}

	return out
}

// Name returns the sample name.
func (s *Sample) Name() string { return s.name }

// Dataset returns the owning dataset (nil for a detached copy).
func (s *Sample) Dataset() *Dataset { return s.ds }

// MissingValue returns the sentinel of the owning dataset (NaN when detached).
func (s *Sample) MissingValue() float64 {
	if s.ds == nil {
		return math.NaN()
	}

	return s.ds.missing
}

// frame returns the frame of molecule, creating an empty one for a type
// registered in the set after the sample was created.
func (s *Sample) frame(mol string) (*Frame, error) {
	if f, ok := s.frames[mol]; ok {
		return f, nil
	}
	if s.ds != nil {
		if _, err := s.ds.set.Table(mol); err == nil {
			f := newFrame()
			s.frames[mol] = f
			return f, nil
		}
	}

	return nil, fmt.Errorf("sample %q: %w: %q", s.name, molecule.ErrMoleculeNotFound, mol)
}

// Columns returns the value columns present for molecule.
func (s *Sample) Columns(mol string) ([]string, error) {
	f, err := s.frame(mol)
	if err != nil {
		return nil, err
	}

	return f.Columns(), nil
}

// HasColumn reports whether molecule has column in this sample.
func (s *Sample) HasColumn(mol, column string) bool {
	f, ok := s.frames[mol]
	return ok && f.Has(column)
}

// Column returns a copy of a value column aligned with the molecule table.
func (s *Sample) Column(mol, column string) ([]float64, error) {
	f, err := s.frame(mol)
	if err != nil {
		return nil, err
	}
	v, ok := f.values[column]
	if !ok {
		return nil, fmt.Errorf("sample %q, molecule %q: %w: %q", s.name, mol, ErrColumnNotFound, column)
	}

	return slices.Clone(v), nil
}

// SetColumn adds or replaces a value column; vals must have one entry per entity.
func (s *Sample) SetColumn(mol, column string, vals []float64) error {
	if column == "" {
		return ErrEmptyName
	}
	if s.ds == nil {
		return fmt.Errorf("sample %q: %w", s.name, ErrDetachedSample)
	}
	f, err := s.frame(mol)
	if err != nil {
		return err
	}
	if n, _ := s.ds.set.NumberMolecules(mol); n != len(vals) {
		return fmt.Errorf("sample %q, molecule %q: %w: %d values for %d entities", s.name, mol, ErrLengthMismatch, len(vals), n)
	}
	f.set(column, slices.Clone(vals))

	return nil
}

// MissingMask returns true where column holds the missing sentinel.
func (s *Sample) MissingMask(mol, column string) ([]bool, error) {
	v, err := s.Column(mol, column)
	if err != nil {
		return nil, err
	}
	missing := s.MissingValue()
	out := make([]bool, len(v))
	for i, x := range v {
		out[i] = IsMissing(x, missing)
	}

	return out, nil
}

// Values returns the column → values view of molecule as copies.
func (s *Sample) Values(mol string) (map[string][]float64, error) {
	f, err := s.frame(mol)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]float64, len(f.values))
	for c, v := range f.values {
		out[c] = slices.Clone(v)
	}

	return out, nil
}

// Copy returns a detached deep copy limited to columns (nil keeps all).
// The copy keeps no dataset reference until it is attached.
func (s *Sample) Copy(columns []string) *Sample {
	out := &Sample{name: s.name, frames: make(map[string]*Frame, len(s.frames))}
	for mol, f := range s.frames {
		out.frames[mol] = f.clone(columns)
	}

	return out
}

// columnOrMissing returns the live column or a fresh all-missing one,
// attaching it to the frame.
func (s *Sample) columnOrMissing(mol, column string) ([]float64, error) {
	f, err := s.frame(mol)
	if err != nil {
		return nil, err
	}
	if v, ok := f.values[column]; ok {
		return v, nil
	}
	n, _ := s.ds.set.NumberMolecules(mol)
	v := make([]float64, n)
	for i := range v {
		v[i] = s.ds.missing
	}
	f.set(column, v)

	return v, nil
}
