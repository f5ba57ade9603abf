// SPDX-License-Identifier: MIT

package masked

import "errors"

// Sentinel errors for masked datasets. Unknown samples and ids are reported
// with the dataset and molecule sentinels.
var (
	// ErrNilDataset indicates a masked dataset over a nil dataset.
	ErrNilDataset = errors.New("masked: dataset is nil")

	// ErrNoMask indicates a molecule type without a mask (or hidden) table.
	ErrNoMask = errors.New("masked: no mask for molecule")

	// ErrDuplicateLabel indicates a repeated id or sample label in a Labeled matrix.
	ErrDuplicateLabel = errors.New("masked: duplicate label")
)
