// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Labeled boolean tables, id selections and the MaskedDataset.

package masked

import (
	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/matrix"
)

// Labeled is a boolean matrix with id row labels and sample column labels.
type Labeled struct {
	ids     []string
	samples []string
	idPos   map[string]int
	smpPos  map[string]int
	values  *matrix.Mask
}

// IDs selects cells of one molecule type.
//
// Pairs address single (sample, id) cells; Broadcast ids are selected in
// every sample of the dataset.
type IDs struct {
	Pairs     []dataset.Key
	Broadcast []string
}

// MaskedDataset wraps a Dataset with per-molecule mask and hidden tables.
type MaskedDataset struct {
	ds     *dataset.Dataset
	masks  map[string]*Labeled
	hidden map[string]*Labeled
}
