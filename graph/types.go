// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Graph tensors, population config and the masked source contract.

package graph

import (
	"go.uber.org/zap"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/matrix"
	"github.com/katalvlaran/proteonet/molecule"
)

// Reserved node tensor names; they cannot be used as feature columns.
const (
	MaskName   = "mask"
	HiddenName = "hidden"
)

// Relation is one typed edge set of the tensor graph.
type Relation = molecule.EdgeSet

// Graph is one sample's tensor graph.
//
// Features and Target are nil until Populate succeeds.
type Graph struct {
	// Sample is the sample name the tensors were filled from ("" before Populate).
	Sample string

	NumNodes  int
	Relations []Relation

	Features *matrix.Dense
	Target   *matrix.Dense
	Type     *matrix.Dense

	Mask   []bool
	Hidden []bool
}

// Config selects the columns scattered into the node tensors.
type Config struct {
	// Mapping is the projected mapping name (used by Dataset).
	Mapping string
	// Bidirectional adds the reversed relation per mapping (used by Dataset).
	Bidirectional bool

	// FeatureColumns are the value columns used for every molecule type.
	FeatureColumns []string
	// MoleculeFeatureColumns, when non-nil, replaces FeatureColumns with a
	// per-type list; types absent from the map contribute no value features.
	MoleculeFeatureColumns map[string][]string
	// MoleculeColumns are numeric molecule-table attributes appended after
	// the value features.
	MoleculeColumns []string

	// TargetColumn fills the target tensor; it must not be a feature column.
	TargetColumn string

	// MissingColumnValue substitutes absent feature and target columns;
	// nil makes an absent column an error.
	MissingColumnValue *float64

	// Logger receives substitution notices; nil means no logging.
	Logger *zap.Logger
}

// Masked is the source a Dataset draws samples and node selections from.
type Masked interface {
	Dataset() *dataset.Dataset
	Keys() []string
	MaskedNodes(sample string, proj *molecule.Graph) ([]int, error)
	HiddenNodes(sample string, proj *molecule.Graph) ([]int, error)
}

// Dataset is the lazy, finite, restartable sequence of one populated graph
// per key of a masked source.
type Dataset struct {
	src  Masked
	proj *molecule.Graph
	cfg  Config
	keys []string
}

// Float returns a pointer to v, for Config.MissingColumnValue.
func Float(v float64) *float64 { return &v }
