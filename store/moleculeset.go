// SPDX-License-Identifier: MIT
//
// File: moleculeset.go
// Role: molecule.Set <-> molecule_set.db.
// Policy: every order (molecules, ids, columns, mappings, rows) is stored
// explicitly and restored exactly.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/katalvlaran/proteonet/molecule"
)

const setSchema = `
CREATE TABLE molecules (pos INTEGER PRIMARY KEY, name TEXT NOT NULL UNIQUE);
CREATE TABLE entities (molecule TEXT NOT NULL, pos INTEGER NOT NULL, id TEXT NOT NULL, PRIMARY KEY (molecule, pos));
CREATE TABLE entity_columns (molecule TEXT NOT NULL, pos INTEGER NOT NULL, name TEXT NOT NULL, kind TEXT NOT NULL, PRIMARY KEY (molecule, pos));
CREATE TABLE entity_numeric (molecule TEXT NOT NULL, name TEXT NOT NULL, pos INTEGER NOT NULL, value REAL);
CREATE TABLE entity_text (molecule TEXT NOT NULL, name TEXT NOT NULL, pos INTEGER NOT NULL, value TEXT NOT NULL);
CREATE TABLE mappings (pos INTEGER PRIMARY KEY, name TEXT NOT NULL, a TEXT NOT NULL, b TEXT NOT NULL);
CREATE TABLE mapping_rows (mapping INTEGER NOT NULL, row INTEGER NOT NULL, id_a TEXT NOT NULL, id_b TEXT NOT NULL, PRIMARY KEY (mapping, row));
CREATE TABLE mapping_attrs (mapping INTEGER NOT NULL, pos INTEGER NOT NULL, name TEXT NOT NULL, PRIMARY KEY (mapping, pos));
CREATE TABLE mapping_attr_values (mapping INTEGER NOT NULL, name TEXT NOT NULL, row INTEGER NOT NULL, value REAL);
`

const (
	kindNumeric = "numeric"
	kindText    = "text"
)

// nullable stores NaN as NULL; SQLite has no NaN.
func nullable(v float64) sql.NullFloat64 {
	return sql.NullFloat64{Float64: v, Valid: v == v}
}

// encodeSet writes set into a fresh molecule_set database.
func encodeSet(ctx context.Context, set *molecule.Set) ([]byte, error) {
	return build(ctx, setSchema, func(tx *sql.Tx) error {
		for mp, mol := range set.Molecules() {
			if _, err := tx.ExecContext(ctx, `INSERT INTO molecules(pos, name) VALUES (?, ?)`, mp, mol); err != nil {
				return err
			}
			tbl, err := set.Table(mol)
			if err != nil {
				return err
			}
			if err = encodeTable(ctx, tx, mol, tbl); err != nil {
				return err
			}
		}
		for i, m := range set.AllMappings() {
			if err := encodeMapping(ctx, tx, i, m); err != nil {
				return err
			}
		}
		return nil
	})
}

func encodeTable(ctx context.Context, tx *sql.Tx, mol string, tbl *molecule.Table) error {
	for p, id := range tbl.IDs() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO entities(molecule, pos, id) VALUES (?, ?, ?)`, mol, p, id); err != nil {
			return err
		}
	}
	for cp, name := range tbl.Columns() {
		if vals, ok := tbl.Numeric(name); ok {
			if _, err := tx.ExecContext(ctx, `INSERT INTO entity_columns(molecule, pos, name, kind) VALUES (?, ?, ?, ?)`, mol, cp, name, kindNumeric); err != nil {
				return err
			}
			for p, v := range vals {
				if _, err := tx.ExecContext(ctx, `INSERT INTO entity_numeric(molecule, name, pos, value) VALUES (?, ?, ?, ?)`, mol, name, p, nullable(v)); err != nil {
					return err
				}
			}
			continue
		}
		vals, _ := tbl.Text(name)
		if _, err := tx.ExecContext(ctx, `INSERT INTO entity_columns(molecule, pos, name, kind) VALUES (?, ?, ?, ?)`, mol, cp, name, kindText); err != nil {
			return err
		}
		for p, v := range vals {
			if _, err := tx.ExecContext(ctx, `INSERT INTO entity_text(molecule, name, pos, value) VALUES (?, ?, ?, ?)`, mol, name, p, v); err != nil {
				return err
			}
		}
	}

	return nil
}

func encodeMapping(ctx context.Context, tx *sql.Tx, i int, m *molecule.Mapping) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO mappings(pos, name, a, b) VALUES (?, ?, ?, ?)`, i, m.Name(), m.A(), m.B()); err != nil {
		return err
	}
	for r, p := range m.Pairs() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO mapping_rows(mapping, row, id_a, id_b) VALUES (?, ?, ?, ?)`, i, r, p.A, p.B); err != nil {
			return err
		}
	}
	for ap, name := range m.AttrNames() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO mapping_attrs(mapping, pos, name) VALUES (?, ?, ?)`, i, ap, name); err != nil {
			return err
		}
		vals, _ := m.Attr(name)
		for r, v := range vals {
			if _, err := tx.ExecContext(ctx, `INSERT INTO mapping_attr_values(mapping, name, row, value) VALUES (?, ?, ?, ?)`, i, name, r, nullable(v)); err != nil {
				return err
			}
		}
	}

	return nil
}

// decodeSet rebuilds a molecule.Set from a molecule_set database.
//
// Implementation:
//   - Stage 1: molecules in stored order, ids in stored position order.
//   - Stage 2: attribute columns per molecule in stored column order.
//   - Stage 3: mappings with their rows and attributes, added in stored order.
func decodeSet(ctx context.Context, content []byte, opts ...molecule.SetOption) (*molecule.Set, error) {
	set := molecule.NewSet(opts...)
	err := read(ctx, content, func(db *sql.DB) error {
		var mols []string
		var name string
		if err := queryEach(ctx, db, `SELECT name FROM molecules ORDER BY pos`, []any{&name}, func() error {
			mols = append(mols, name)
			return nil
		}); err != nil {
			return err
		}
		for _, mol := range mols {
			tbl, err := decodeTable(ctx, db, mol)
			if err != nil {
				return err
			}
			if err = set.AddMolecule(mol, tbl); err != nil {
				return fmt.Errorf("%w: %v", ErrCorrupt, err)
			}
		}
		return decodeMappings(ctx, db, set)
	})
	if err != nil {
		return nil, err
	}

	return set, nil
}

func decodeTable(ctx context.Context, db *sql.DB, mol string) (*molecule.Table, error) {
	var ids []string
	var id string
	if err := queryEachArgs(ctx, db, `SELECT id FROM entities WHERE molecule = ? ORDER BY pos`, []any{mol}, []any{&id}, func() error {
		ids = append(ids, id)
		return nil
	}); err != nil {
		return nil, err
	}
	tbl, err := molecule.NewTable(ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	type column struct{ name, kind string }
	var cols []column
	var c column
	if err = queryEachArgs(ctx, db, `SELECT name, kind FROM entity_columns WHERE molecule = ? ORDER BY pos`, []any{mol}, []any{&c.name, &c.kind}, func() error {
		cols = append(cols, c)
		return nil
	}); err != nil {
		return nil, err
	}
	for _, c := range cols {
		switch c.kind {
		case kindNumeric:
			vals := make([]float64, len(ids))
			var pos int
			var v sql.NullFloat64
			if err = queryEachArgs(ctx, db, `SELECT pos, value FROM entity_numeric WHERE molecule = ? AND name = ?`, []any{mol, c.name}, []any{&pos, &v}, func() error {
				if pos < 0 || pos >= len(vals) {
					return fmt.Errorf("%w: %s.%s position %d", ErrCorrupt, mol, c.name, pos)
				}
				vals[pos] = fromNullable(v)
				return nil
			}); err != nil {
				return nil, err
			}
			err = tbl.SetNumeric(c.name, vals)
		case kindText:
			vals := make([]string, len(ids))
			var pos int
			var v string
			if err = queryEachArgs(ctx, db, `SELECT pos, value FROM entity_text WHERE molecule = ? AND name = ?`, []any{mol, c.name}, []any{&pos, &v}, func() error {
				if pos < 0 || pos >= len(vals) {
					return fmt.Errorf("%w: %s.%s position %d", ErrCorrupt, mol, c.name, pos)
				}
				vals[pos] = v
				return nil
			}); err != nil {
				return nil, err
			}
			err = tbl.SetText(c.name, vals)
		default:
			return nil, fmt.Errorf("%w: column kind %q", ErrCorrupt, c.kind)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}

	return tbl, nil
}

func decodeMappings(ctx context.Context, db *sql.DB, set *molecule.Set) error {
	type header struct {
		pos        int
		name, a, b string
	}
	var heads []header
	var h header
	if err := queryEach(ctx, db, `SELECT pos, name, a, b FROM mappings ORDER BY pos`, []any{&h.pos, &h.name, &h.a, &h.b}, func() error {
		heads = append(heads, h)
		return nil
	}); err != nil {
		return err
	}

	for _, h := range heads {
		var pairs []molecule.Pair
		var p molecule.Pair
		if err := queryEachArgs(ctx, db, `SELECT id_a, id_b FROM mapping_rows WHERE mapping = ? ORDER BY row`, []any{h.pos}, []any{&p.A, &p.B}, func() error {
			pairs = append(pairs, p)
			return nil
		}); err != nil {
			return err
		}
		m, err := molecule.NewMapping(h.name, h.a, h.b, pairs)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCorrupt, err)
		}

		var attrs []string
		var name string
		if err = queryEachArgs(ctx, db, `SELECT name FROM mapping_attrs WHERE mapping = ? ORDER BY pos`, []any{h.pos}, []any{&name}, func() error {
			attrs = append(attrs, name)
			return nil
		}); err != nil {
			return err
		}
		for _, attr := range attrs {
			vals := make([]float64, len(pairs))
			var row int
			var v sql.NullFloat64
			if err = queryEachArgs(ctx, db, `SELECT row, value FROM mapping_attr_values WHERE mapping = ? AND name = ?`, []any{h.pos, attr}, []any{&row, &v}, func() error {
				if row < 0 || row >= len(vals) {
					return fmt.Errorf("%w: mapping %q attribute %q row %d", ErrCorrupt, h.name, attr, row)
				}
				vals[row] = fromNullable(v)
				return nil
			}); err != nil {
				return err
			}
			if err = m.SetAttr(attr, vals); err != nil {
				return fmt.Errorf("%w: %v", ErrCorrupt, err)
			}
		}
		if err = set.AddMapping(m); err != nil {
			return fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}

	return nil
}
