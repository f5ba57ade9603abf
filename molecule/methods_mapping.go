// SPDX-License-Identifier: MIT

package molecule

import (
	"fmt"
	"slices"
)

// NewMapping creates mapping name between molecule types a and b.
// Duplicate pairs collapse onto their first occurrence; a == b (a
// self-mapping) is allowed.
//
// ID validity is checked when the mapping is added to a Set.
func NewMapping(name, a, b string, pairs []Pair) (*Mapping, error) {
	if name == "" || a == "" || b == "" {
		return nil, ErrEmptyName
	}
	m := &Mapping{
		name:  name,
		a:     a,
		b:     b,
		pairs: make([]Pair, 0, len(pairs)),
		index: make(map[Pair]int, len(pairs)),
		attrs: make(map[string][]float64),
	}
	for _, p := range pairs {
		if p.A == "" || p.B == "" {
			return nil, ErrEmptyID
		}
		if _, dup := m.index[p]; dup {
			continue
		}
		m.index[p] = len(m.pairs)
		m.pairs = append(m.pairs, p)
	}

	return m, nil
}

// Name returns the mapping name.
func (m *Mapping) Name() string { return m.name }

// A returns the molecule type on the canonical A side.
func (m *Mapping) A() string { return m.a }

// B returns the molecule type on the canonical B side.
func (m *Mapping) B() string { return m.b }

// Len returns the number of relation rows.
func (m *Mapping) Len() int { return len(m.pairs) }

// Pairs returns a copy of the rows in canonical orientation.
func (m *Mapping) Pairs() []Pair { return slices.Clone(m.pairs) }

// Has reports whether the canonical row (idA, idB) exists.
func (m *Mapping) Has(idA, idB string) bool {
	_, ok := m.index[Pair{A: idA, B: idB}]
	return ok
}

// SetAttr adds or replaces a numeric edge attribute aligned with rows.
func (m *Mapping) SetAttr(name string, vals []float64) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(vals) != len(m.pairs) {
		return fmt.Errorf("%w: attribute %q has %d values for %d rows", ErrLengthMismatch, name, len(vals), len(m.pairs))
	}
	if !slices.Contains(m.attrOrder, name) {
		m.attrOrder = append(m.attrOrder, name)
	}
	m.attrs[name] = slices.Clone(vals)

	return nil
}

// Attr returns a copy of an edge attribute column.
func (m *Mapping) Attr(name string) ([]float64, bool) {
	v, ok := m.attrs[name]
	return slices.Clone(v), ok
}

// AttrNames returns edge attribute names in the order they were first set.
func (m *Mapping) AttrNames() []string { return slices.Clone(m.attrOrder) }

// Clone returns a deep copy.
func (m *Mapping) Clone() *Mapping {
	return m.filter(func(Pair) bool { return true })
}

// filter returns a copy holding only the rows accepted by keep, with
// attributes filtered alongside.
func (m *Mapping) filter(keep func(Pair) bool) *Mapping {
	out := &Mapping{
		name:      m.name,
		a:         m.a,
		b:         m.b,
		index:     make(map[Pair]int, len(m.pairs)),
		attrs:     make(map[string][]float64, len(m.attrs)),
		attrOrder: slices.Clone(m.attrOrder),
	}
	var rows []int
	for i, p := range m.pairs {
		if keep(p) {
			out.index[p] = len(out.pairs)
			out.pairs = append(out.pairs, p)
			rows = append(rows, i)
		}
	}
	for name, col := range m.attrs {
		v := make([]float64, len(rows))
		for k, i := range rows {
			v[k] = col[i]
		}
		out.attrs[name] = v
	}

	return out
}

// joins reports whether the mapping connects x and y in either orientation.
func (m *Mapping) joins(x, y string) bool {
	return (m.a == x && m.b == y) || (m.a == y && m.b == x)
}

// touches reports whether molecule type x is one side of the mapping.
func (m *Mapping) touches(x string) bool { return m.a == x || m.b == x }

// partner returns the type on the other side of x; for a self-mapping it is x.
func (m *Mapping) partner(x string) string {
	if m.a == x {
		return m.b
	}

	return m.a
}

// orient returns the view of m with from on the source side.
// A self-mapping is always returned in canonical orientation.
func (m *Mapping) orient(from string) Relation {
	return Relation{m: m, swapped: m.a != from}
}

// From returns the source-side molecule type.
func (r Relation) From() string {
	if r.swapped {
		return r.m.b
	}
	return r.m.a
}

// To returns the destination-side molecule type.
func (r Relation) To() string {
	if r.swapped {
		return r.m.a
	}
	return r.m.b
}

// Name returns the mapping name.
func (r Relation) Name() string { return r.m.name }

// Len returns the number of relation rows.
func (r Relation) Len() int { return len(r.m.pairs) }

// Pair returns row i as (from id, to id) in this view's orientation.
func (r Relation) Pair(i int) (from, to string) {
	p := r.m.pairs[i]
	if r.swapped {
		return p.B, p.A
	}
	return p.A, p.B
}

// Attr returns a copy of an edge attribute column; rows keep mapping order.
func (r Relation) Attr(name string) ([]float64, bool) { return r.m.Attr(name) }

// Swap returns the reversed view. No rows are copied.
func (r Relation) Swap() Relation { return Relation{m: r.m, swapped: !r.swapped} }

// Swapped reports whether the view is reversed relative to the canonical orientation.
func (r Relation) Swapped() bool { return r.swapped }

// Mapping returns a copy of the underlying mapping. Edits to the copy do
// not reach the set; use Set.SetMappingAttr for that.
func (r Relation) Mapping() *Mapping { return r.m.Clone() }

// FromDegrees returns, per source-side id with at least one row, the
// number of distinct partners. Rows are unique, so this is the row count.
func (r Relation) FromDegrees() map[string]int {
	deg := make(map[string]int)
	for i := range r.m.pairs {
		from, _ := r.Pair(i)
		deg[from]++
	}

	return deg
}
