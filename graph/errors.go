// SPDX-License-Identifier: MIT

package graph

import "errors"

// Sentinel errors for graph tensor adapters.
var (
	// ErrNilProjection indicates a nil molecule.Graph argument.
	ErrNilProjection = errors.New("graph: projection is nil")

	// ErrNilSample indicates a nil sample argument.
	ErrNilSample = errors.New("graph: sample is nil")

	// ErrNoTarget indicates a configuration without a target column.
	ErrNoTarget = errors.New("graph: target column is empty")

	// ErrTargetInFeatures indicates the target column listed among the feature columns.
	ErrTargetInFeatures = errors.New("graph: target column is a feature column")

	// ErrReservedFeature indicates "mask" or "hidden" requested as a feature column.
	ErrReservedFeature = errors.New("graph: reserved feature name")

	// ErrColumnNotFound indicates an absent feature or target column with no substitution constant configured.
	ErrColumnNotFound = errors.New("graph: feature column not found")

	// ErrProjectionMismatch indicates a sample or prediction vector not aligned with the projection.
	ErrProjectionMismatch = errors.New("graph: data does not match projection")

	// ErrIndexOutOfRange indicates a dataset position outside [0, Len()).
	ErrIndexOutOfRange = errors.New("graph: index out of range")
)
