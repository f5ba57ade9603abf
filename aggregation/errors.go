// SPDX-License-Identifier: MIT

package aggregation

import "errors"

var (
	// ErrUnknownMethod indicates an aggregation method name outside the Method enumeration.
	ErrUnknownMethod = errors.New("aggregation: unknown method")

	// ErrNilReducer indicates a nil reducer.
	ErrNilReducer = errors.New("aggregation: reducer is nil")

	// ErrBadTopN indicates a non-positive top-n.
	ErrBadTopN = errors.New("aggregation: top_n must be positive")
)
