// SPDX-License-Identifier: MIT

package store

import "errors"

var (
	// ErrNilDataset indicates Save called without a dataset.
	ErrNilDataset = errors.New("store: dataset is nil")

	// ErrBadSampleName indicates a sample name that cannot be used as a key segment.
	ErrBadSampleName = errors.New("store: sample name not storable")

	// ErrCorrupt indicates persisted data that does not decode into a consistent dataset.
	ErrCorrupt = errors.New("store: corrupt data")
)
