// SPDX-License-Identifier: MIT

package dataset

import "errors"

// Sentinel errors for dataset operations.
var (
	// ErrNilMoleculeSet indicates a dataset constructed without a molecule set.
	ErrNilMoleculeSet = errors.New("dataset: molecule set is nil")

	// ErrEmptyName indicates an empty sample or column name.
	ErrEmptyName = errors.New("dataset: name is empty")

	// ErrDuplicateSample indicates a second sample with an existing name.
	ErrDuplicateSample = errors.New("dataset: sample already exists")

	// ErrSampleNotFound indicates a reference to an unknown sample.
	ErrSampleNotFound = errors.New("dataset: sample not found")

	// ErrColumnNotFound indicates a value column absent for a molecule type.
	ErrColumnNotFound = errors.New("dataset: column not found")

	// ErrColumnCollision indicates a new or joined column that would shadow an existing one.
	ErrColumnCollision = errors.New("dataset: column name collision")

	// ErrLengthMismatch indicates a value vector not aligned with its molecule table.
	ErrLengthMismatch = errors.New("dataset: length mismatch")

	// ErrDetachedSample indicates an operation that needs the owning dataset on a detached sample copy.
	ErrDetachedSample = errors.New("dataset: sample is not attached to a dataset")

	// ErrInvalidLog indicates a logarithm that produced NaN for a present value.
	ErrInvalidLog = errors.New("dataset: logarithm produced NaN")
)
