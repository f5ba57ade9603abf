// SPDX-License-Identifier: MIT

package tabular

import "errors"

var (
	// ErrInvalidOptions indicates import options that fail validation.
	ErrInvalidOptions = errors.New("tabular: invalid options")

	// ErrColumnNotFound indicates a configured column absent from the header.
	ErrColumnNotFound = errors.New("tabular: column not found")

	// ErrBadValue indicates a sample cell that is neither numeric nor a missing marker.
	ErrBadValue = errors.New("tabular: bad value")

	// ErrEmptyInput indicates input without a header row.
	ErrEmptyInput = errors.New("tabular: empty input")

	// ErrDuplicateKey indicates a mapping key that occurs twice in the key column.
	ErrDuplicateKey = errors.New("tabular: duplicate mapping key")
)
