// SPDX-License-Identifier: MIT

package molecule

import (
	"fmt"
	"slices"
)

// NewTable creates a table holding ids in the given order.
//
// Errors:
//   - ErrEmptyID if any id is "".
//   - ErrDuplicateID if an id repeats.
//
// Complexity: O(n).
func NewTable(ids []string) (*Table, error) {
	t := &Table{
		ids:     make([]string, 0, len(ids)),
		pos:     make(map[string]int, len(ids)),
		numeric: make(map[string][]float64),
		text:    make(map[string][]string),
	}
	for _, id := range ids {
		if id == "" {
			return nil, ErrEmptyID
		}
		if _, dup := t.pos[id]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
		t.pos[id] = len(t.ids)
		t.ids = append(t.ids, id)
	}

	return t, nil
}

// Len returns the number of entities.
func (t *Table) Len() int { return len(t.ids) }

// IDs returns a copy of the ids in canonical order.
func (t *Table) IDs() []string { return slices.Clone(t.ids) }

// ID returns the id at canonical position i.
func (t *Table) ID(i int) string { return t.ids[i] }

// Pos returns the canonical position of id.
func (t *Table) Pos(id string) (int, bool) {
	p, ok := t.pos[id]
	return p, ok
}

// Has reports whether id belongs to the table.
func (t *Table) Has(id string) bool {
	_, ok := t.pos[id]
	return ok
}

// SetNumeric adds or replaces a numeric attribute column aligned with IDs().
func (t *Table) SetNumeric(name string, vals []float64) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(vals) != len(t.ids) {
		return fmt.Errorf("%w: column %q has %d values for %d entities", ErrLengthMismatch, name, len(vals), len(t.ids))
	}
	delete(t.text, name)
	t.addColumnName(name)
	t.numeric[name] = slices.Clone(vals)

	return nil
}

// Numeric returns a copy of a numeric attribute column.
func (t *Table) Numeric(name string) ([]float64, bool) {
	v, ok := t.numeric[name]
	return slices.Clone(v), ok
}

// SetText adds or replaces a text attribute column aligned with IDs().
func (t *Table) SetText(name string, vals []string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(vals) != len(t.ids) {
		return fmt.Errorf("%w: column %q has %d values for %d entities", ErrLengthMismatch, name, len(vals), len(t.ids))
	}
	delete(t.numeric, name)
	t.addColumnName(name)
	t.text[name] = slices.Clone(vals)

	return nil
}

// Text returns a copy of a text attribute column.
func (t *Table) Text(name string) ([]string, bool) {
	v, ok := t.text[name]
	return slices.Clone(v), ok
}

// Columns returns attribute column names in the order they were first set.
func (t *Table) Columns() []string { return slices.Clone(t.colOrder) }

func (t *Table) addColumnName(name string) {
	if !slices.Contains(t.colOrder, name) {
		t.colOrder = append(t.colOrder, name)
	}
}

// Clone returns a deep copy.
func (t *Table) Clone() *Table {
	c := &Table{
		ids:      slices.Clone(t.ids),
		pos:      make(map[string]int, len(t.pos)),
		numeric:  make(map[string][]float64, len(t.numeric)),
		text:     make(map[string][]string, len(t.text)),
		colOrder: slices.Clone(t.colOrder),
	}
	for k, v := range t.pos {
		c.pos[k] = v
	}
	for k, v := range t.numeric {
		c.numeric[k] = slices.Clone(v)
	}
	for k, v := range t.text {
		c.text[k] = slices.Clone(v)
	}

	return c
}

// Subset returns a new table restricted to keep. Surviving entities retain
// their relative canonical order regardless of the order of keep; attribute
// columns are filtered alongside.
//
// Errors: ErrUnknownID if keep names an id absent from the table.
func (t *Table) Subset(keep []string) (*Table, error) {
	want := make(map[string]struct{}, len(keep))
	for _, id := range keep {
		if !t.Has(id) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownID, id)
		}
		want[id] = struct{}{}
	}
	idx := make([]int, 0, len(want))
	for i, id := range t.ids {
		if _, ok := want[id]; ok {
			idx = append(idx, i)
		}
	}

	return t.take(idx), nil
}

// take builds a table from canonical positions idx (ascending).
func (t *Table) take(idx []int) *Table {
	ids := make([]string, len(idx))
	for k, i := range idx {
		ids[k] = t.ids[i]
	}
	out, _ := NewTable(ids) // ids are unique and non-empty by construction
	out.colOrder = slices.Clone(t.colOrder)
	for name, col := range t.numeric {
		v := make([]float64, len(idx))
		for k, i := range idx {
			v[k] = col[i]
		}
		out.numeric[name] = v
	}
	for name, col := range t.text {
		v := make([]string, len(idx))
		for k, i := range idx {
			v[k] = col[i]
		}
		out.text[name] = v
	}

	return out
}
