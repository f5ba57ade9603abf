// SPDX-License-Identifier: MIT
//
// File: methods.go
// Role: MaskedDataset construction, id round trips, node lookup and write-back.
// Policy:
//   - Tables are always reshaped onto (canonical ids × dataset samples).
//   - Labels are validated before a table is replaced.

package masked

import (
	"fmt"
	"slices"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/graph"
	"github.com/katalvlaran/proteonet/molecule"
)

// New returns a masked dataset over ds without any mask.
func New(ds *dataset.Dataset) (*MaskedDataset, error) {
	if ds == nil {
		return nil, ErrNilDataset
	}

	return &MaskedDataset{
		ds:     ds,
		masks:  make(map[string]*Labeled),
		hidden: make(map[string]*Labeled),
	}, nil
}

// FromIDs builds a masked dataset whose mask (and hidden, when hiddenIDs is
// non-nil) tables select exactly the given cells per molecule type.
func FromIDs(ds *dataset.Dataset, maskIDs, hiddenIDs map[string]IDs) (*MaskedDataset, error) {
	m, err := New(ds)
	if err != nil {
		return nil, err
	}
	for mol, ids := range maskIDs {
		if err = m.SetMaskIDs(mol, ids); err != nil {
			return nil, err
		}
	}
	for mol, ids := range hiddenIDs {
		if err = m.SetHiddenIDs(mol, ids); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// Dataset returns the wrapped dataset.
func (m *MaskedDataset) Dataset() *dataset.Dataset { return m.ds }

// empty returns the all-false full-domain table of mol.
func (m *MaskedDataset) empty(mol string) (*Labeled, error) {
	tbl, err := m.ds.MoleculeSet().Table(mol)
	if err != nil {
		return nil, err
	}

	return NewLabeled(tbl.IDs(), m.ds.Names())
}

// fromIDs builds the full-domain table of mol selecting ids.
func (m *MaskedDataset) fromIDs(mol string, ids IDs) (*Labeled, error) {
	l, err := m.empty(mol)
	if err != nil {
		return nil, err
	}
	for _, k := range ids.Pairs {
		if err = l.Set(k.ID, k.Sample, true); err != nil {
			return nil, fmt.Errorf("%s: %w", mol, err)
		}
	}
	for _, id := range ids.Broadcast {
		for _, s := range l.samples {
			if err = l.Set(id, s, true); err != nil {
				return nil, fmt.Errorf("%s: %w", mol, err)
			}
		}
	}

	return l, nil
}

// reshape copies src onto the full domain of mol; labels outside the domain fail.
func (m *MaskedDataset) reshape(mol string, src *Labeled) (*Labeled, error) {
	l, err := m.empty(mol)
	if err != nil {
		return nil, err
	}
	for _, k := range src.Keys() {
		if err = l.Set(k.ID, k.Sample, true); err != nil {
			return nil, fmt.Errorf("%s: %w", mol, err)
		}
	}

	return l, nil
}

// SetMaskIDs replaces the mask of mol with the cells selected by ids.
func (m *MaskedDataset) SetMaskIDs(mol string, ids IDs) error {
	l, err := m.fromIDs(mol, ids)
	if err != nil {
		return err
	}
	m.masks[mol] = l

	return nil
}

// SetHiddenIDs replaces the hidden table of mol with the cells selected by ids.
func (m *MaskedDataset) SetHiddenIDs(mol string, ids IDs) error {
	l, err := m.fromIDs(mol, ids)
	if err != nil {
		return err
	}
	m.hidden[mol] = l

	return nil
}

// SetMask replaces the mask of mol with l reshaped onto the full domain.
func (m *MaskedDataset) SetMask(mol string, l *Labeled) error {
	r, err := m.reshape(mol, l)
	if err != nil {
		return err
	}
	m.masks[mol] = r

	return nil
}

// SetHidden replaces the hidden table of mol with l reshaped onto the full domain.
func (m *MaskedDataset) SetHidden(mol string, l *Labeled) error {
	r, err := m.reshape(mol, l)
	if err != nil {
		return err
	}
	m.hidden[mol] = r

	return nil
}

// Mask returns a copy of the mask of mol.
func (m *MaskedDataset) Mask(mol string) (*Labeled, bool) {
	l, ok := m.masks[mol]
	if !ok {
		return nil, false
	}

	return l.Clone(), true
}

// Hidden returns a copy of the hidden table of mol.
func (m *MaskedDataset) Hidden(mol string) (*Labeled, bool) {
	l, ok := m.hidden[mol]
	if !ok {
		return nil, false
	}

	return l.Clone(), true
}

// HasHidden reports whether any hidden table is set.
func (m *MaskedDataset) HasHidden() bool { return len(m.hidden) > 0 }

// MaskIDs returns the (sample, id) cells selected by the mask of mol.
func (m *MaskedDataset) MaskIDs(mol string) ([]dataset.Key, error) {
	l, ok := m.masks[mol]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMask, mol)
	}

	return l.Keys(), nil
}

// HiddenIDs returns the (sample, id) cells selected by the hidden table of mol.
func (m *MaskedDataset) HiddenIDs(mol string) ([]dataset.Key, error) {
	l, ok := m.hidden[mol]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoMask, mol)
	}

	return l.Keys(), nil
}

// Keys returns, in dataset order, the samples covered by any mask or hidden table.
func (m *MaskedDataset) Keys() []string {
	covered := make(map[string]bool)
	for _, tables := range []map[string]*Labeled{m.masks, m.hidden} {
		for _, l := range tables {
			for _, s := range l.samples {
				covered[s] = true
			}
		}
	}
	var out []string
	for _, s := range m.ds.Names() {
		if covered[s] {
			out = append(out, s)
		}
	}

	return out
}

// MaskedNodes returns the projection node indices selected by the masks in sample.
func (m *MaskedDataset) MaskedNodes(sample string, proj *molecule.Graph) ([]int, error) {
	return m.nodes(m.masks, sample, proj)
}

// HiddenNodes returns the projection node indices selected by the hidden tables in sample.
func (m *MaskedDataset) HiddenNodes(sample string, proj *molecule.Graph) ([]int, error) {
	return m.nodes(m.hidden, sample, proj)
}

// nodes translates the true cells of sample to node indices. Molecule types
// outside the projection contribute nothing.
func (m *MaskedDataset) nodes(tables map[string]*Labeled, sample string, proj *molecule.Graph) ([]int, error) {
	if proj == nil {
		return nil, graph.ErrNilProjection
	}
	var out []int
	for _, mol := range m.ds.Molecules() {
		l, ok := tables[mol]
		if !ok {
			continue
		}
		if _, _, in := proj.NodeRange(mol); !in {
			continue
		}
		j, ok := l.smpPos[sample]
		if !ok {
			continue
		}
		col, err := l.values.Col(j)
		if err != nil {
			return nil, err
		}
		for i, v := range col {
			if !v {
				continue
			}
			n, ok := proj.NodeIndex(mol, l.ids[i])
			if !ok {
				return nil, fmt.Errorf("%w: %s %q", molecule.ErrUnknownID, mol, l.ids[i])
			}
			out = append(out, n)
		}
	}
	slices.Sort(out)

	return out, nil
}

// SetSamplesValueMatrix writes w into (mol, column) of the wrapped dataset.
//
// With onlySetMasked only cells whose mask is true are overwritten; all
// other cells, and ids w does not cover, keep their current values. A
// column absent in a sample starts out all-missing.
func (m *MaskedDataset) SetSamplesValueMatrix(w *dataset.Wide, mol, column string, onlySetMasked bool) error {
	var mask *Labeled
	if onlySetMasked {
		var ok bool
		if mask, ok = m.masks[mol]; !ok {
			return fmt.Errorf("%w: %q", ErrNoMask, mol)
		}
	}
	tbl, err := m.ds.MoleculeSet().Table(mol)
	if err != nil {
		return err
	}
	samples := w.Samples()
	cur, err := dataset.NewWide(tbl.IDs(), samples, m.ds.MissingValue())
	if err != nil {
		return err
	}
	for j, name := range samples {
		s, err := m.ds.Sample(name)
		if err != nil {
			return err
		}
		if !s.HasColumn(mol, column) {
			continue
		}
		vals, err := s.Column(mol, column)
		if err != nil {
			return err
		}
		if err = cur.Values().SetCol(j, vals); err != nil {
			return err
		}
	}

	src, dst := w.Values(), cur.Values()
	for i, id := range w.IDs() {
		p, ok := tbl.Pos(id)
		if !ok {
			return fmt.Errorf("%w: %s %q", molecule.ErrUnknownID, mol, id)
		}
		for j, name := range samples {
			if mask != nil && !mask.At(id, name) {
				continue
			}
			v, err := src.At(i, j)
			if err != nil {
				return err
			}
			if err = dst.Set(p, j, v); err != nil {
				return err
			}
		}
	}

	return m.ds.SetSamplesValueMatrix(cur, mol, column)
}

// GraphDataset returns the lazy per-sample graph sequence over m.
func (m *MaskedDataset) GraphDataset(cfg graph.Config) (*graph.Dataset, error) {
	return graph.NewDataset(m, cfg)
}
