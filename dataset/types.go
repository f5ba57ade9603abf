// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Declares Series, Key, Flat, Wide, Frame, Sample, Dataset, Mapped and options.

package dataset

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/proteonet/matrix"
	"github.com/katalvlaran/proteonet/molecule"
)

// DefaultColumn is the conventional measurement column.
const DefaultColumn = "abundance"

// Series is a sparse value column keyed by entity id.
type Series map[string]float64

// Key addresses one observation of the long representation.
type Key struct {
	Sample string
	ID     string
}

// Flat is the long representation of one (molecule, column): one value per (sample, id).
type Flat map[Key]float64

// Wide is the entity × sample representation of one (molecule, column).
// Values has shape [len(IDs) x len(Samples)].
type Wide struct {
	ids     []string
	samples []string
	values  *matrix.Dense
}

// Frame holds the value columns of one molecule type in one sample.
// Every column has one entry per entity, in the table's canonical order.
type Frame struct {
	columns []string
	values  map[string][]float64
}

// Sample is one named measurement snapshot across all molecule types.
type Sample struct {
	name   string
	ds     *Dataset
	frames map[string]*Frame
}

// Dataset is an ordered collection of samples over one molecule.Set.
type Dataset struct {
	set     *molecule.Set
	missing float64

	samples []*Sample
	byName  map[string]*Sample

	logger *zap.Logger
}

// Option configures a Dataset.
type Option func(*Dataset)

// WithMissingValue sets the missing-value sentinel (default NaN).
func WithMissingValue(v float64) Option {
	return func(d *Dataset) { d.missing = v }
}

// WithLogger sets the dataset logger (default no-op).
func WithLogger(l *zap.Logger) Option {
	return func(d *Dataset) {
		if l != nil {
			d.logger = l
		}
	}
}

// Mapped is the join of sample values onto relation rows: one row per
// (sample, relation row), samples in dataset order and rows in mapping order.
type Mapped struct {
	Molecule string
	Partner  string
	Mapping  string

	Samples    []string
	IDs        []string
	PartnerIDs []string

	// Columns holds the joined value columns and the relation's edge attributes.
	Columns map[string][]float64
}

// Correlation summarizes the agreement of two value columns.
type Correlation struct {
	// R2 is the squared Pearson coefficient over cells where both columns are present.
	R2 float64
	// N is the number of such cells.
	N int
	// Coverage is the mean, over samples, of the present fraction of the Y column.
	Coverage float64
}
