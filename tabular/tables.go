// SPDX-License-Identifier: MIT
//
// File: tables.go
// Role: import of one wide table per molecule type, with mappings resolved
// through a key column of the partner table.

package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/molecule"
)

// TableSource is the table of one molecule type.
type TableSource struct {
	Molecule string    `validate:"required"`
	Reader   io.Reader `validate:"required"`
	// IDColumn holds entity ids; empty uses the zero-based row number.
	IDColumn string
	// AttributeColumns are copied into the molecule table.
	AttributeColumns []string `validate:"dive,required"`
}

// MappingSource derives a mapping from a multi-valued column of the From
// table. Each listed key is looked up in KeyColumn of the To table (its ids
// when KeyColumn is empty) and becomes one (From id, To id) row.
type MappingSource struct {
	// Name defaults to "<From>-<To>".
	Name       string
	From       string `validate:"required"`
	FromColumn string `validate:"required"`
	To         string `validate:"required"`
	KeyColumn  string
}

// TablesOptions describes a multi-table import.
type TablesOptions struct {
	Tables []TableSource `validate:"required,min=1,dive"`
	// SampleColumns must be present in every table.
	SampleColumns []string        `validate:"required,min=1,dive,required"`
	Mappings      []MappingSource `validate:"dive"`
	MappingSep    string
	// ResultColumn names the value column of every sample (default "abundance").
	ResultColumn string
	Delimiter    rune

	DatasetOptions []dataset.Option
	SetOptions     []molecule.SetOption
	Logger         *zap.Logger `validate:"-"`
}

// rawTable is a fully read table with its resolved ids.
type rawTable struct {
	header []string
	rows   [][]string
	ids    []string
}

func (t rawTable) column(name string) ([]string, error) {
	c, err := columnIndex(t.header, name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.rows))
	for i, rec := range t.rows {
		out[i] = rec[c]
	}

	return out, nil
}

// ReadTables builds a dataset from one table per molecule type.
//
// Implementation:
//   - Stage 1: validate options, read every table and resolve its ids.
//   - Stage 2: per mapping, index the To table by key and expand the
//     multi-valued From column into rows.
//   - Stage 3: build the set (tables in the given order, then mappings) and
//     one sample per sample column holding every table's values.
//
// Errors: ErrInvalidOptions, ErrEmptyInput, ErrColumnNotFound, ErrBadValue,
// ErrDuplicateKey, molecule.ErrUnknownID for a key absent from the To table,
// csv errors and molecule/dataset errors, wrapped with the molecule type.
func ReadTables(opts TablesOptions) (*dataset.Dataset, error) {
	if err := validator.New().Struct(opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	o := opts
	if o.ResultColumn == "" {
		o.ResultColumn = dataset.DefaultColumn
	}
	if o.MappingSep == "" {
		o.MappingSep = DefaultMappingSep
	}
	if o.Delimiter == 0 {
		o.Delimiter = DefaultDelimiter
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	// Stage 1: read.
	raw := make(map[string]rawTable, len(o.Tables))
	tables := make([]entityTable, 0, len(o.Tables))
	for _, src := range o.Tables {
		t, err := readTable(src, o.Delimiter)
		if err != nil {
			return nil, fmt.Errorf("molecule %q: %w", src.Molecule, err)
		}
		raw[src.Molecule] = t
		e := entityTable{molecule: src.Molecule, ids: t.ids}
		for _, name := range src.AttributeColumns {
			cells, err := t.column(name)
			if err != nil {
				return nil, fmt.Errorf("molecule %q: %w", src.Molecule, err)
			}
			e.attrs = append(e.attrs, attrColumn{name: name, cells: cells})
		}
		tables = append(tables, e)
	}

	// Stage 2: mappings.
	maps := make([]mappingRows, 0, len(o.Mappings))
	for _, ms := range o.Mappings {
		mr, err := resolveMapping(ms, raw, o.MappingSep)
		if err != nil {
			return nil, err
		}
		maps = append(maps, mr)
	}

	// Stage 3: set and samples.
	set, err := buildSet(o.SetOptions, tables, maps)
	if err != nil {
		return nil, err
	}
	values := make([]map[string]map[string]dataset.Series, len(o.SampleColumns))
	for j := range values {
		values[j] = make(map[string]map[string]dataset.Series, len(o.Tables))
	}
	for _, src := range o.Tables {
		t := raw[src.Molecule]
		for j, name := range o.SampleColumns {
			cells, err := t.column(name)
			if err != nil {
				return nil, fmt.Errorf("molecule %q: %w", src.Molecule, err)
			}
			series := make(dataset.Series)
			for i, cell := range cells {
				v, ok, err := parseCell(cell)
				if err != nil {
					return nil, fmt.Errorf("molecule %q, row %d, column %q: %w", src.Molecule, i+1, name, err)
				}
				if ok {
					series[t.ids[i]] = v
				}
			}
			values[j][src.Molecule] = map[string]dataset.Series{o.ResultColumn: series}
		}
	}
	ds, err := dataset.New(set, o.DatasetOptions...)
	if err != nil {
		return nil, err
	}
	for j, name := range o.SampleColumns {
		if _, err = ds.CreateSample(name, values[j]); err != nil {
			return nil, err
		}
	}
	o.Logger.Debug("tables imported",
		zap.Strings("molecules", set.Molecules()),
		zap.Int("mappings", len(maps)),
		zap.Int("samples", len(o.SampleColumns)))

	return ds, nil
}

func readTable(src TableSource, delim rune) (rawTable, error) {
	cr := csv.NewReader(src.Reader)
	cr.Comma = delim
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return rawTable{}, ErrEmptyInput
	}
	if err != nil {
		return rawTable{}, err
	}
	t := rawTable{header: header}
	if t.rows, err = cr.ReadAll(); err != nil {
		return rawTable{}, err
	}
	if src.IDColumn == "" {
		t.ids = make([]string, len(t.rows))
		for i := range t.ids {
			t.ids[i] = strconv.Itoa(i)
		}
		return t, nil
	}
	if t.ids, err = t.column(src.IDColumn); err != nil {
		return rawTable{}, err
	}
	for i, id := range t.ids {
		t.ids[i] = strings.TrimSpace(id)
	}

	return t, nil
}

func resolveMapping(ms MappingSource, raw map[string]rawTable, sep string) (mappingRows, error) {
	from, ok := raw[ms.From]
	if !ok {
		return mappingRows{}, fmt.Errorf("%w: mapping source %q is not a table", ErrInvalidOptions, ms.From)
	}
	to, ok := raw[ms.To]
	if !ok {
		return mappingRows{}, fmt.Errorf("%w: mapping target %q is not a table", ErrInvalidOptions, ms.To)
	}
	name := ms.Name
	if name == "" {
		name = ms.From + "-" + ms.To
	}

	keys := to.ids
	if ms.KeyColumn != "" {
		var err error
		if keys, err = to.column(ms.KeyColumn); err != nil {
			return mappingRows{}, fmt.Errorf("molecule %q: %w", ms.To, err)
		}
	}
	byKey := make(map[string]string, len(keys))
	for i, k := range keys {
		if k = strings.TrimSpace(k); k == "" {
			continue
		}
		if _, dup := byKey[k]; dup {
			return mappingRows{}, fmt.Errorf("%w: %s %q", ErrDuplicateKey, ms.To, k)
		}
		byKey[k] = to.ids[i]
	}

	cells, err := from.column(ms.FromColumn)
	if err != nil {
		return mappingRows{}, fmt.Errorf("molecule %q: %w", ms.From, err)
	}
	mr := mappingRows{name: name, a: ms.From, b: ms.To}
	for i, cell := range cells {
		for _, k := range splitCell(cell, sep) {
			id, ok := byKey[k]
			if !ok {
				return mappingRows{}, fmt.Errorf("mapping %q: %w: %s key %q", name, molecule.ErrUnknownID, ms.To, k)
			}
			mr.pairs = append(mr.pairs, molecule.Pair{A: from.ids[i], B: id})
		}
	}

	return mr, nil
}
