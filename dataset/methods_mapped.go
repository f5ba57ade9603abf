// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"slices"
)

// SampleColumn is the reserved key column name of mapped and long tables.
const SampleColumn = "sample"

// GetMapped joins value columns of mol and partnerColumns of the partner
// type onto every row of mapping, once per sample.
//
// Implementation:
//   - Stage 1: infer the relation mol→partner.
//   - Stage 2: reject any requested column that would shadow a relation
//     column (sample, the two molecule names, edge attributes) or another
//     requested column.
//   - Stage 3: resolve row positions once; emit rows sample-major.
//
// Errors: lookup errors from InferMapping, ErrColumnCollision, ErrColumnNotFound.
//
// Complexity: O(s · r · (c + p)).
func (d *Dataset) GetMapped(mol, mapping string, columns, partnerColumns []string) (*Mapped, error) {
	rel, err := d.set.InferMapping(mol, mapping)
	if err != nil {
		return nil, err
	}
	partner := rel.To()

	taken := map[string]bool{SampleColumn: true, mol: true, partner: true}
	for _, a := range rel.Mapping().AttrNames() {
		taken[a] = true
	}
	for _, c := range slices.Concat(columns, partnerColumns) {
		if taken[c] {
			return nil, fmt.Errorf("%w: %q in mapping %q", ErrColumnCollision, c, rel.Name())
		}
		taken[c] = true
	}

	tm, _ := d.set.Table(mol)
	tp, _ := d.set.Table(partner)
	n := rel.Len()
	posM, posP := make([]int, n), make([]int, n)
	fromIDs, toIDs := make([]string, n), make([]string, n)
	for i := 0; i < n; i++ {
		from, to := rel.Pair(i)
		fromIDs[i], toIDs[i] = from, to
		posM[i], _ = tm.Pos(from)
		posP[i], _ = tp.Pos(to)
	}

	total := n * len(d.samples)
	out := &Mapped{
		Molecule:   mol,
		Partner:    partner,
		Mapping:    rel.Name(),
		Samples:    make([]string, 0, total),
		IDs:        make([]string, 0, total),
		PartnerIDs: make([]string, 0, total),
		Columns:    make(map[string][]float64, len(columns)+len(partnerColumns)),
	}
	for _, s := range d.samples {
		for i := 0; i < n; i++ {
			out.Samples = append(out.Samples, s.name)
		}
		out.IDs = append(out.IDs, fromIDs...)
		out.PartnerIDs = append(out.PartnerIDs, toIDs...)
		if err = joinColumns(out.Columns, s, mol, columns, posM); err != nil {
			return nil, err
		}
		if err = joinColumns(out.Columns, s, partner, partnerColumns, posP); err != nil {
			return nil, err
		}
	}
	for _, a := range rel.Mapping().AttrNames() {
		vals, _ := rel.Attr(a)
		col := make([]float64, 0, total)
		for range d.samples {
			col = append(col, vals...)
		}
		out.Columns[a] = col
	}

	return out, nil
}

func joinColumns(dst map[string][]float64, s *Sample, mol string, columns []string, pos []int) error {
	for _, c := range columns {
		src, err := s.Column(mol, c)
		if err != nil {
			return err
		}
		for _, p := range pos {
			dst[c] = append(dst[c], src[p])
		}
	}

	return nil
}

// Len returns the number of rows.
func (m *Mapped) Len() int { return len(m.IDs) }
