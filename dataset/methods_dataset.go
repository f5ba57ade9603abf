// SPDX-License-Identifier: MIT
//
// File: methods_dataset.go
// Role: Dataset construction, sample registry, snapshots and structural edits.

package dataset

import (
	"fmt"
	"math"
	"slices"
	"weak"

	"go.uber.org/zap"

	"github.com/katalvlaran/proteonet/molecule"
)

// New creates an empty dataset over set.
func New(set *molecule.Set, opts ...Option) (*Dataset, error) {
	if set == nil {
		return nil, ErrNilMoleculeSet
	}
	d := &Dataset{
		set:     set,
		missing: math.NaN(),
		byName:  make(map[string]*Sample),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.followRenames()

	return d, nil
}

// followRenames keeps the frames of d keyed by the set's molecule names
// when any holder of the shared set renames a molecule type. The hook holds
// d weakly and unregisters once d is collected.
func (d *Dataset) followRenames() {
	wp := weak.Make(d)
	d.set.OnRenameMolecule(func(old, renamed string) bool {
		ds := wp.Value()
		if ds == nil {
			return false
		}
		for _, s := range ds.samples {
			if f, ok := s.frames[old]; ok {
				delete(s.frames, old)
				s.frames[renamed] = f
			}
		}
		return true
	})
}

// IsMissing reports whether v equals the missing sentinel (NaN matches NaN).
func IsMissing(v, missing float64) bool {
	if math.IsNaN(missing) {
		return math.IsNaN(v)
	}

	return v == missing
}

// IsMissing reports whether v is this dataset's missing sentinel.
func (d *Dataset) IsMissing(v float64) bool { return IsMissing(v, d.missing) }

// MissingValue returns the missing sentinel.
func (d *Dataset) MissingValue() float64 { return d.missing }

// MoleculeSet returns the shared molecule set.
func (d *Dataset) MoleculeSet() *molecule.Set { return d.set }

// Logger returns the dataset logger.
func (d *Dataset) Logger() *zap.Logger { return d.logger }

// Molecules returns the molecule types of the underlying set.
func (d *Dataset) Molecules() []string { return d.set.Molecules() }

// NumberMolecules returns the number of entities of mol.
func (d *Dataset) NumberMolecules(mol string) (int, error) { return d.set.NumberMolecules(mol) }

// Names returns sample names in insertion order.
func (d *Dataset) Names() []string {
	out := make([]string, len(d.samples))
	for i, s := range d.samples {
		out[i] = s.name
	}

	return out
}

// Len returns the number of samples.
func (d *Dataset) Len() int { return len(d.samples) }

// Sample returns the sample called name.
func (d *Dataset) Sample(name string) (*Sample, error) {
	s, ok := d.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSampleNotFound, name)
	}

	return s, nil
}

// Samples returns the samples in insertion order.
func (d *Dataset) Samples() []*Sample { return slices.Clone(d.samples) }

// CreateSample adds a sample built from sparse per-molecule series.
//
// Implementation:
//   - Stage 1: validate the name and every (molecule, id) against the set.
//   - Stage 2: densify each series onto the canonical order, unmeasured
//     entities get the sentinel; molecule types without values get an
//     empty frame.
//   - Stage 3: attach (back-reference) and append in insertion order.
//
// Errors: ErrEmptyName, ErrDuplicateSample, molecule.ErrMoleculeNotFound,
// molecule.ErrUnknownID (all wrapped with context).
func (d *Dataset) CreateSample(name string, values map[string]map[string]Series) (*Sample, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, dup := d.byName[name]; dup {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateSample, name)
	}

	s := &Sample{name: name, frames: make(map[string]*Frame)}
	for _, mol := range d.set.Molecules() {
		s.frames[mol] = newFrame()
	}
	for mol, cols := range values {
		tbl, err := d.set.Table(mol)
		if err != nil {
			return nil, fmt.Errorf("sample %q: %w", name, err)
		}
		// deterministic column order
		names := make([]string, 0, len(cols))
		for c := range cols {
			names = append(names, c)
		}
		slices.Sort(names)
		for _, c := range names {
			if c == "" {
				return nil, fmt.Errorf("sample %q, molecule %q: %w", name, mol, ErrEmptyName)
			}
			dense := make([]float64, tbl.Len())
			for i := range dense {
				dense[i] = d.missing
			}
			for id, v := range cols[c] {
				p, ok := tbl.Pos(id)
				if !ok {
					return nil, fmt.Errorf("sample %q, column %q: %w: %s %q", name, c, molecule.ErrUnknownID, mol, id)
				}
				dense[p] = v
			}
			s.frames[mol].set(c, dense)
		}
	}
	d.attach(s)

	return s, nil
}

// attach binds s to d and appends it.
func (d *Dataset) attach(s *Sample) {
	s.ds = d
	d.samples = append(d.samples, s)
	d.byName[s.name] = s
}

// emptyLike returns a dataset with the same set, sentinel and logger.
func (d *Dataset) emptyLike(set *molecule.Set) *Dataset {
	out := &Dataset{
		set:     set,
		missing: d.missing,
		byName:  make(map[string]*Sample, len(d.samples)),
		logger:  d.logger,
	}
	out.followRenames()

	return out
}

// Copy returns an independent snapshot limited to columns (nil keeps all).
// With copyMoleculeSet the molecule set is deep-copied too; otherwise it is shared.
func (d *Dataset) Copy(columns []string, copyMoleculeSet bool) *Dataset {
	set := d.set
	if copyMoleculeSet {
		set = d.set.Copy()
	}
	out := d.emptyLike(set)
	for _, s := range d.samples {
		out.attach(s.Copy(columns))
	}

	return out
}

// Apply runs fn over a copy of every sample and returns the resulting dataset.
// The receiver is not modified; the first error aborts.
func (d *Dataset) Apply(fn func(*Sample) error) (*Dataset, error) {
	out := d.Copy(nil, false)
	for _, s := range out.samples {
		if err := fn(s); err != nil {
			return nil, fmt.Errorf("apply on sample %q: %w", s.name, err)
		}
	}

	return out, nil
}

// RenameMolecule renames a molecule type in the set and in every sample.
// Every dataset sharing the set follows the rename.
func (d *Dataset) RenameMolecule(old, renamed string) error {
	return d.set.RenameMolecule(old, renamed)
}

// RenameMapping renames a mapping of the underlying set.
func (d *Dataset) RenameMapping(old, renamed string) error {
	return d.set.RenameMapping(old, renamed)
}

// Subset returns a dataset over set.Subset(keep) whose samples are
// down-filtered to the surviving entities.
func (d *Dataset) Subset(keep map[string][]string) (*Dataset, error) {
	set, err := d.set.Subset(keep)
	if err != nil {
		return nil, err
	}
	positions := make(map[string][]int)
	for _, mol := range d.set.Molecules() {
		src, _ := d.set.Table(mol)
		dst, _ := set.Table(mol)
		idx := make([]int, 0, dst.Len())
		for _, id := range dst.IDs() {
			p, _ := src.Pos(id)
			idx = append(idx, p)
		}
		positions[mol] = idx
	}

	out := d.emptyLike(set)
	for _, s := range d.samples {
		cp := &Sample{name: s.name, frames: make(map[string]*Frame, len(s.frames))}
		for mol, f := range s.frames {
			cp.frames[mol] = f.take(positions[mol])
		}
		out.attach(cp)
	}

	return out, nil
}
