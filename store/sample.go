// SPDX-License-Identifier: MIT
//
// File: sample.go
// Role: dataset.Sample <-> samples/<name>.db.
// Policy: only present values are stored (a NaN that is not the missing
// sentinel is stored as NULL); declared columns are kept even when every
// value is missing.

package store

import (
	"context"
	"database/sql"

	"github.com/katalvlaran/proteonet/dataset"
)

const sampleSchema = `
CREATE TABLE sample_columns (molecule TEXT NOT NULL, name TEXT NOT NULL, PRIMARY KEY (molecule, name));
CREATE TABLE sample_values (molecule TEXT NOT NULL, id TEXT NOT NULL, name TEXT NOT NULL, value REAL, PRIMARY KEY (molecule, id, name));
`

// encodeSample writes the value columns of s.
func encodeSample(ctx context.Context, s *dataset.Sample) ([]byte, error) {
	ds := s.Dataset()
	set := ds.MoleculeSet()

	return build(ctx, sampleSchema, func(tx *sql.Tx) error {
		for _, mol := range ds.Molecules() {
			tbl, err := set.Table(mol)
			if err != nil {
				return err
			}
			cols, err := s.Columns(mol)
			if err != nil {
				return err
			}
			for _, col := range cols {
				if _, err = tx.ExecContext(ctx, `INSERT INTO sample_columns(molecule, name) VALUES (?, ?)`, mol, col); err != nil {
					return err
				}
				vals, err := s.Column(mol, col)
				if err != nil {
					return err
				}
				for i, v := range vals {
					if ds.IsMissing(v) {
						continue
					}
					if _, err = tx.ExecContext(ctx, `INSERT INTO sample_values(molecule, id, name, value) VALUES (?, ?, ?, ?)`, mol, tbl.ID(i), col, nullable(v)); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
}

// decodeSample reads a sample store into the sparse form CreateSample takes.
func decodeSample(ctx context.Context, content []byte) (map[string]map[string]dataset.Series, error) {
	values := make(map[string]map[string]dataset.Series)
	column := func(mol, name string) dataset.Series {
		cols, ok := values[mol]
		if !ok {
			cols = make(map[string]dataset.Series)
			values[mol] = cols
		}
		ser, ok := cols[name]
		if !ok {
			ser = make(dataset.Series)
			cols[name] = ser
		}
		return ser
	}

	err := read(ctx, content, func(db *sql.DB) error {
		var mol, name, id string
		var v sql.NullFloat64
		if err := queryEach(ctx, db, `SELECT molecule, name FROM sample_columns`, []any{&mol, &name}, func() error {
			column(mol, name)
			return nil
		}); err != nil {
			return err
		}
		return queryEach(ctx, db, `SELECT molecule, id, name, value FROM sample_values`, []any{&mol, &id, &name, &v}, func() error {
			column(mol, name)[id] = fromNullable(v)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	return values, nil
}
