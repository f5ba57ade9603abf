// SPDX-License-Identifier: MIT
//
// File: methods_transform.go
// Role: in-place column algebra over every sample.
// Policy:
//   - Every operation validates across all samples before mutating any.
//   - Missing cells are never transformed.
//   - Use Copy first when the original values must survive.

package dataset

import (
	"fmt"
	"math"

	"github.com/katalvlaran/proteonet/matrix"
)

// moleculesOrAll returns mols, or every molecule type of the set when empty.
func (d *Dataset) moleculesOrAll(mols []string) ([]string, error) {
	if len(mols) == 0 {
		return d.set.Molecules(), nil
	}
	for _, m := range mols {
		if _, err := d.set.Table(m); err != nil {
			return nil, err
		}
	}

	return mols, nil
}

// RenameValues renames value columns (old → new) of the given molecule
// types (all when none) in every sample. Renames apply simultaneously, so
// swapping two names is legal.
//
// Errors: ErrColumnCollision when a new name is already taken by a column
// that is not itself renamed away.
func (d *Dataset) RenameValues(columns map[string]string, molecules ...string) error {
	mols, err := d.moleculesOrAll(molecules)
	if err != nil {
		return err
	}
	per := make(map[string]map[string]string, len(mols))
	for _, m := range mols {
		per[m] = columns
	}

	return d.RenameColumns(per)
}

// RenameColumns renames value columns per molecule type: columns[mol][old] = new.
func (d *Dataset) RenameColumns(columns map[string]map[string]string) error {
	for mol := range columns {
		if _, err := d.set.Table(mol); err != nil {
			return err
		}
	}
	for _, s := range d.samples {
		for mol, ren := range columns {
			f, _ := s.frame(mol)
			if err := checkRename(f, ren); err != nil {
				return fmt.Errorf("sample %q, molecule %q: %w", s.name, mol, err)
			}
		}
	}
	for _, s := range d.samples {
		for mol, ren := range columns {
			f, _ := s.frame(mol)
			applyRename(f, ren)
		}
	}

	return nil
}

func checkRename(f *Frame, ren map[string]string) error {
	after := make(map[string]int)
	for _, c := range f.columns {
		name := c
		if to, ok := ren[c]; ok {
			if to == "" {
				return ErrEmptyName
			}
			name = to
		}
		after[name]++
		if after[name] > 1 {
			return fmt.Errorf("%w: %q", ErrColumnCollision, name)
		}
	}

	return nil
}

func applyRename(f *Frame, ren map[string]string) {
	values := make(map[string][]float64, len(f.values))
	for i, c := range f.columns {
		if to, ok := ren[c]; ok {
			f.columns[i] = to
		}
		values[f.columns[i]] = f.values[c]
	}
	f.values = values
}

// DropValues removes value columns from the given molecule types (all when
// none) in every sample. Dropping an absent column is a no-op.
func (d *Dataset) DropValues(columns []string, molecules ...string) error {
	mols, err := d.moleculesOrAll(molecules)
	if err != nil {
		return err
	}
	for _, s := range d.samples {
		for _, m := range mols {
			f, _ := s.frame(m)
			for _, c := range columns {
				f.drop(c)
			}
		}
	}

	return nil
}

// columnBlock is the wide matrix of one (molecule, column) over the
// samples that hold that column.
type columnBlock struct {
	mol, col string
	w        *Wide
}

// columnBlocks returns one block per selected (molecule, column). Columns
// default to every column any sample holds for the molecule, in first-seen
// order; a column no sample holds is skipped.
func (d *Dataset) columnBlocks(molecules, columns []string) ([]columnBlock, error) {
	mols, err := d.moleculesOrAll(molecules)
	if err != nil {
		return nil, err
	}
	var out []columnBlock
	for _, m := range mols {
		cols := columns
		if cols == nil {
			for _, s := range d.samples {
				if f, ok := s.frames[m]; ok {
					cols = append(cols, f.columns...)
				}
			}
		}
		seen := make(map[string]bool, len(cols))
		for _, c := range cols {
			if seen[c] {
				continue
			}
			seen[c] = true
			var names []string
			for _, s := range d.samples {
				if s.HasColumn(m, c) {
					names = append(names, s.name)
				}
			}
			if len(names) == 0 {
				continue
			}
			w, err := d.SamplesValueMatrix(m, c, names...)
			if err != nil {
				return nil, err
			}
			out = append(out, columnBlock{mol: m, col: c, w: w})
		}
	}

	return out, nil
}

// Normalize z-scores each selected column per sample using the mean and
// sample standard deviation of its present values. Columns with fewer than
// two present values or zero spread are left unchanged.
func (d *Dataset) Normalize(molecules, columns []string) error {
	blocks, err := d.columnBlocks(molecules, columns)
	if err != nil {
		return err
	}
	for _, b := range blocks {
		vals := b.w.Values()
		mu := make([]float64, vals.Cols())
		sd := make([]float64, vals.Cols())
		for j := range mu {
			col, err := vals.Col(j)
			if err != nil {
				return err
			}
			present := col[:0]
			for _, v := range col {
				if !d.IsMissing(v) {
					present = append(present, v)
				}
			}
			mu[j], sd[j] = matrix.Mean(present), matrix.Std(present)
		}
		err = vals.Apply(func(_, j int, v float64) float64 {
			if d.IsMissing(v) || math.IsNaN(sd[j]) || sd[j] == 0 {
				return v
			}
			return (v - mu[j]) / sd[j]
		})
		if err != nil {
			return err
		}
		if err = d.SetSamplesValueMatrix(b.w, b.mol, b.col); err != nil {
			return err
		}
	}

	return nil
}

// Logarithmize replaces every present value v of the selected columns with
// ln(v + epsilon).
//
// The operation is all-or-nothing: every block is transformed first and
// written back only when no present value produced NaN.
//
// Errors: ErrInvalidLog.
func (d *Dataset) Logarithmize(molecules, columns []string, epsilon float64) error {
	blocks, err := d.columnBlocks(molecules, columns)
	if err != nil {
		return err
	}
	for _, b := range blocks {
		bad := -1
		err = b.w.Values().Apply(func(_, j int, v float64) float64 {
			if d.IsMissing(v) {
				return v
			}
			r := math.Log(v + epsilon)
			if math.IsNaN(r) && bad < 0 {
				bad = j
			}
			return r
		})
		if err != nil {
			return err
		}
		if bad >= 0 {
			return fmt.Errorf("sample %q, %s.%s: %w", b.w.samples[bad], b.mol, b.col, ErrInvalidLog)
		}
	}
	for _, b := range blocks {
		if err = d.SetSamplesValueMatrix(b.w, b.mol, b.col); err != nil {
			return err
		}
	}

	return nil
}
