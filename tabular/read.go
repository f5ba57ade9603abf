// SPDX-License-Identifier: MIT
//
// File: read.go
// Role: long-table import with a multi-valued mapping column.

package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/molecule"
)

// Defaults applied by ReadMapped to zero-valued options.
const (
	DefaultMappingSep      = ","
	DefaultMappingMolecule = "protein"
	DefaultMappingName     = "peptide-protein"
	DefaultDelimiter       = '\t'
)

// MappedOptions describes the layout of a long table.
type MappedOptions struct {
	// Molecule is the type of the row entities.
	Molecule string `validate:"required"`
	// SampleColumns become samples, one value column each.
	SampleColumns []string `validate:"required,min=1,dive,required"`
	// IDColumn holds entity ids; empty uses the zero-based row number.
	IDColumn string
	// ResultColumn names the value column of every sample (default "abundance").
	ResultColumn string
	// MappingColumn lists partner ids separated by MappingSep; empty disables mapping.
	MappingColumn   string
	MappingSep      string
	MappingMolecule string `validate:"omitempty,nefield=Molecule"`
	MappingName     string
	// Delimiter separates fields (default tab).
	Delimiter rune

	DatasetOptions []dataset.Option
	SetOptions     []molecule.SetOption
	Logger         *zap.Logger `validate:"-"`
}

func (o MappedOptions) withDefaults() MappedOptions {
	if o.ResultColumn == "" {
		o.ResultColumn = dataset.DefaultColumn
	}
	if o.MappingSep == "" {
		o.MappingSep = DefaultMappingSep
	}
	if o.MappingMolecule == "" {
		o.MappingMolecule = DefaultMappingMolecule
	}
	if o.MappingName == "" {
		o.MappingName = DefaultMappingName
	}
	if o.Delimiter == 0 {
		o.Delimiter = DefaultDelimiter
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}

	return o
}

// IsMissingCell reports whether a cell denotes a missing value.
func IsMissingCell(cell string) bool {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "", "na", "nan":
		return true
	}

	return false
}

// ReadMapped builds a dataset from a long table.
//
// Implementation:
//   - Stage 1: validate options, read the header and locate every column.
//   - Stage 2: per row collect the id, sample values and partner ids.
//     Partner lists are trimmed; empty parts are dropped.
//   - Stage 3: build the row table, the partner table (distinct partners in
//     first-seen order) and the mapping; then one sample per sample column.
//
// Errors: ErrInvalidOptions, ErrEmptyInput, ErrColumnNotFound, ErrBadValue,
// csv errors and molecule/dataset errors (e.g. duplicate ids), wrapped.
func ReadMapped(r io.Reader, opts MappedOptions) (*dataset.Dataset, error) {
	if err := validator.New().Struct(opts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	o := opts.withDefaults()

	cr := csv.NewReader(r)
	cr.Comma = o.Delimiter
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyInput
	}
	if err != nil {
		return nil, err
	}
	col := func(name string) (int, error) { return columnIndex(header, name) }
	idCol, mapCol := -1, -1
	if o.IDColumn != "" {
		if idCol, err = col(o.IDColumn); err != nil {
			return nil, err
		}
	}
	if o.MappingColumn != "" {
		if mapCol, err = col(o.MappingColumn); err != nil {
			return nil, err
		}
	}
	sampleCols := make([]int, len(o.SampleColumns))
	for i, name := range o.SampleColumns {
		if sampleCols[i], err = col(name); err != nil {
			return nil, err
		}
	}

	var ids, partners []string
	var pairs []molecule.Pair
	seen := make(map[string]struct{})
	values := make([]dataset.Series, len(sampleCols))
	for i := range values {
		values[i] = make(dataset.Series)
	}
	for row := 0; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		id := strconv.Itoa(row)
		if idCol >= 0 {
			id = strings.TrimSpace(rec[idCol])
		}
		ids = append(ids, id)
		for i, c := range sampleCols {
			v, ok, err := parseCell(rec[c])
			if err != nil {
				return nil, fmt.Errorf("row %d, column %q: %w", row+1, o.SampleColumns[i], err)
			}
			if ok {
				values[i][id] = v
			}
		}
		if mapCol < 0 {
			continue
		}
		for _, p := range splitCell(rec[mapCol], o.MappingSep) {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				partners = append(partners, p)
			}
			pairs = append(pairs, molecule.Pair{A: id, B: p})
		}
	}

	tables := []entityTable{{molecule: o.Molecule, ids: ids}}
	var maps []mappingRows
	if o.MappingColumn != "" {
		tables = append(tables, entityTable{molecule: o.MappingMolecule, ids: partners})
		maps = append(maps, mappingRows{name: o.MappingName, a: o.Molecule, b: o.MappingMolecule, pairs: pairs})
	}
	set, err := buildSet(o.SetOptions, tables, maps)
	if err != nil {
		return nil, err
	}
	ds, err := dataset.New(set, o.DatasetOptions...)
	if err != nil {
		return nil, err
	}
	for i, name := range o.SampleColumns {
		if _, err = ds.CreateSample(name, map[string]map[string]dataset.Series{
			o.Molecule: {o.ResultColumn: values[i]},
		}); err != nil {
			return nil, err
		}
	}
	o.Logger.Debug("long table imported",
		zap.String("molecule", o.Molecule),
		zap.Int("entities", len(ids)),
		zap.Int("partners", len(partners)),
		zap.Int("mapping_rows", len(pairs)),
		zap.Int("samples", len(o.SampleColumns)))

	return ds, nil
}

// entityTable is one molecule table to register: ids plus optional raw
// attribute cells.
type entityTable struct {
	molecule string
	ids      []string
	attrs    []attrColumn
}

type attrColumn struct {
	name  string
	cells []string
}

// mappingRows is one mapping to register.
type mappingRows struct {
	name, a, b string
	pairs      []molecule.Pair
}

// build creates the table; an attribute is numeric when every present cell
// parses as a number (missing cells become NaN), text otherwise.
func (e entityTable) build() (*molecule.Table, error) {
	tbl, err := molecule.NewTable(e.ids)
	if err != nil {
		return nil, fmt.Errorf("molecule %q: %w", e.molecule, err)
	}
	for _, a := range e.attrs {
		if nums, ok := numericCells(a.cells); ok {
			err = tbl.SetNumeric(a.name, nums)
		} else {
			err = tbl.SetText(a.name, a.cells)
		}
		if err != nil {
			return nil, fmt.Errorf("molecule %q: %w", e.molecule, err)
		}
	}

	return tbl, nil
}

// buildSet registers tables in order, then mappings.
func buildSet(opts []molecule.SetOption, tables []entityTable, maps []mappingRows) (*molecule.Set, error) {
	set := molecule.NewSet(opts...)
	for _, e := range tables {
		tbl, err := e.build()
		if err != nil {
			return nil, err
		}
		if err = set.AddMolecule(e.molecule, tbl); err != nil {
			return nil, err
		}
	}
	for _, mr := range maps {
		m, err := molecule.NewMapping(mr.name, mr.a, mr.b, mr.pairs)
		if err != nil {
			return nil, err
		}
		if err = set.AddMapping(m); err != nil {
			return nil, err
		}
	}

	return set, nil
}

func columnIndex(header []string, name string) (int, error) {
	i := slices.Index(header, name)
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}

	return i, nil
}

// parseCell returns the numeric value of cell; ok is false for a missing cell.
func parseCell(cell string) (v float64, ok bool, err error) {
	if IsMissingCell(cell) {
		return 0, false, nil
	}
	v, err = strconv.ParseFloat(strings.TrimSpace(cell), 64)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %q", ErrBadValue, cell)
	}

	return v, true, nil
}

func numericCells(cells []string) ([]float64, bool) {
	out := make([]float64, len(cells))
	for i, c := range cells {
		v, ok, err := parseCell(c)
		switch {
		case err != nil:
			return nil, false
		case ok:
			out[i] = v
		default:
			out[i] = math.NaN()
		}
	}

	return out, true
}

// splitCell splits a multi-valued cell; parts are trimmed and empty parts dropped.
func splitCell(cell, sep string) []string {
	var out []string
	for _, p := range strings.Split(cell, sep) {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}
