// SPDX-License-Identifier: MIT
//
// File: methods_wide.go
// Role: wide (entity × sample) and long ((sample, id) → value) conversions.
// Policy:
//   - Entity order is the molecule table's canonical order.
//   - Sample order is the dataset's insertion order (or the caller's selection).
//   - Writes validate every key before the first value is stored.

package dataset

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/katalvlaran/proteonet/matrix"
	"github.com/katalvlaran/proteonet/molecule"
)

// NewWide creates an all-missing wide matrix over ids × samples.
func NewWide(ids, samples []string, missing float64) (*Wide, error) {
	m, err := matrix.NewFilled(len(ids), len(samples), missing)
	if err != nil {
		return nil, err
	}

	return &Wide{ids: slices.Clone(ids), samples: slices.Clone(samples), values: m}, nil
}

// WideFrom labels values (ids × samples) without copying it.
//
// Errors: ErrLengthMismatch when the shape differs from the labels.
func WideFrom(ids, samples []string, values *matrix.Dense) (*Wide, error) {
	if r, c := values.Shape(); r != len(ids) || c != len(samples) {
		return nil, fmt.Errorf("%w: %dx%d values for %d ids and %d samples", ErrLengthMismatch, r, c, len(ids), len(samples))
	}

	return &Wide{ids: slices.Clone(ids), samples: slices.Clone(samples), values: values}, nil
}

// IDs returns the row labels.
func (w *Wide) IDs() []string { return slices.Clone(w.ids) }

// Samples returns the column labels.
func (w *Wide) Samples() []string { return slices.Clone(w.samples) }

// Values returns the underlying matrix; mutations are visible in w.
func (w *Wide) Values() *matrix.Dense { return w.values }

// At returns the value at (id, sample).
func (w *Wide) At(id, sample string) (float64, bool) {
	i, j := slices.Index(w.ids, id), slices.Index(w.samples, sample)
	if i < 0 || j < 0 {
		return 0, false
	}
	v, err := w.values.At(i, j)

	return v, err == nil
}

// Set assigns the value at (id, sample).
func (w *Wide) Set(id, sample string, v float64) error {
	i := slices.Index(w.ids, id)
	if i < 0 {
		return fmt.Errorf("%w: %q", molecule.ErrUnknownID, id)
	}
	j := slices.Index(w.samples, sample)
	if j < 0 {
		return fmt.Errorf("%w: %q", ErrSampleNotFound, sample)
	}

	return w.values.Set(i, j, v)
}

// Flat converts w to the long representation; dropMissing omits sentinel cells.
func (w *Wide) Flat(missing float64, dropMissing bool) Flat {
	out := make(Flat, len(w.ids)*len(w.samples))
	w.values.Do(func(i, j int, v float64) bool {
		if dropMissing && IsMissing(v, missing) {
			return true
		}
		out[Key{Sample: w.samples[j], ID: w.ids[i]}] = v
		return true
	})

	return out
}

// Wide converts f to the wide representation over ids × samples; cells
// without a key hold missing.
//
// Errors: ErrSampleNotFound or molecule.ErrUnknownID for keys outside the domain.
func (f Flat) Wide(ids, samples []string, missing float64) (*Wide, error) {
	w, err := NewWide(ids, samples, missing)
	if err != nil {
		return nil, err
	}
	row := indexOf(ids)
	col := indexOf(samples)
	for k, v := range f {
		j, ok := col[k.Sample]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrSampleNotFound, k.Sample)
		}
		i, ok := row[k.ID]
		if !ok {
			return nil, fmt.Errorf("%w: %q", molecule.ErrUnknownID, k.ID)
		}
		if err = w.values.Set(i, j, v); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// Keys returns the keys sorted by (sample, id).
func (f Flat) Keys() []Key {
	keys := make([]Key, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		if c := cmp.Compare(a.Sample, b.Sample); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	return keys
}

func indexOf(xs []string) map[string]int {
	m := make(map[string]int, len(xs))
	for i, x := range xs {
		m[x] = i
	}

	return m
}

// selectSamples resolves names (all samples when empty) in the given order.
func (d *Dataset) selectSamples(names []string) ([]*Sample, error) {
	if len(names) == 0 {
		return slices.Clone(d.samples), nil
	}
	out := make([]*Sample, 0, len(names))
	for _, n := range names {
		s, err := d.Sample(n)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}

	return out, nil
}

// SamplesValueMatrix returns the wide matrix of (mol, column) over samples
// (all samples in insertion order when none are given).
//
// Complexity: O(n·s).
func (d *Dataset) SamplesValueMatrix(mol, column string, samples ...string) (*Wide, error) {
	tbl, err := d.set.Table(mol)
	if err != nil {
		return nil, err
	}
	sel, err := d.selectSamples(samples)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(sel))
	for j, s := range sel {
		names[j] = s.name
	}
	w, err := NewWide(tbl.IDs(), names, d.missing)
	if err != nil {
		return nil, err
	}
	for j, s := range sel {
		col, err := s.Column(mol, column)
		if err != nil {
			return nil, err
		}
		if err = w.values.SetCol(j, col); err != nil {
			return nil, err
		}
	}

	return w, nil
}

// SetSamplesValueMatrix writes w into (mol, column) of the samples it names.
// Rows of w are aligned by id; entities not covered by w become missing.
// Samples not named by w are untouched.
func (d *Dataset) SetSamplesValueMatrix(w *Wide, mol, column string) error {
	if column == "" {
		return ErrEmptyName
	}
	tbl, err := d.set.Table(mol)
	if err != nil {
		return err
	}
	rows := make([]int, len(w.ids))
	for i, id := range w.ids {
		p, ok := tbl.Pos(id)
		if !ok {
			return fmt.Errorf("%w: %s %q", molecule.ErrUnknownID, mol, id)
		}
		rows[i] = p
	}
	sel, err := d.selectSamples(w.samples)
	if err != nil {
		return err
	}

	for j, s := range sel {
		src, err := w.values.Col(j)
		if err != nil {
			return err
		}
		dst := make([]float64, tbl.Len())
		for i := range dst {
			dst[i] = d.missing
		}
		for i, p := range rows {
			dst[p] = src[i]
		}
		f, err := s.frame(mol)
		if err != nil {
			return err
		}
		f.set(column, dst)
	}

	return nil
}

// ValuesFlat returns the long representation of (mol, column) across all
// samples; dropMissing omits sentinel cells.
func (d *Dataset) ValuesFlat(mol, column string, dropMissing bool) (Flat, error) {
	w, err := d.SamplesValueMatrix(mol, column)
	if err != nil {
		return nil, err
	}

	return w.Flat(d.missing, dropMissing), nil
}

// SetColumnFlat writes values into (mol, column).
//
// Behavior highlights:
//   - Every key is validated against the dataset (sample) and the set (id) first.
//   - fillMissing resets the whole column of every sample to the sentinel
//     before the partial write, so cells outside values do not keep stale data.
//   - Without fillMissing, cells outside values keep their content; a column
//     absent in a sample is created all-missing.
func (d *Dataset) SetColumnFlat(mol, column string, values Flat, fillMissing bool) error {
	if column == "" {
		return ErrEmptyName
	}
	tbl, err := d.set.Table(mol)
	if err != nil {
		return err
	}
	for k := range values {
		if _, ok := d.byName[k.Sample]; !ok {
			return fmt.Errorf("%w: %q", ErrSampleNotFound, k.Sample)
		}
		if !tbl.Has(k.ID) {
			return fmt.Errorf("%w: %s %q", molecule.ErrUnknownID, mol, k.ID)
		}
	}

	cols := make(map[string][]float64, len(d.samples))
	for _, s := range d.samples {
		if fillMissing {
			v := make([]float64, tbl.Len())
			for i := range v {
				v[i] = d.missing
			}
			f, err := s.frame(mol)
			if err != nil {
				return err
			}
			f.set(column, v)
			cols[s.name] = v
			continue
		}
		v, err := s.columnOrMissing(mol, column)
		if err != nil {
			return err
		}
		cols[s.name] = v
	}
	for k, v := range values {
		p, _ := tbl.Pos(k.ID)
		cols[k.Sample][p] = v
	}

	return nil
}
