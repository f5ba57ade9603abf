// SPDX-License-Identifier: MIT

package blob

import "errors"

var (
	// ErrNotFound indicates a Get of an absent key.
	ErrNotFound = errors.New("blob: not found")

	// ErrInvalidKey indicates an empty, absolute or escaping key.
	ErrInvalidKey = errors.New("blob: invalid key")

	// ErrUnknownDriver indicates a driver name outside fs, memory, s3.
	ErrUnknownDriver = errors.New("blob: unknown driver")

	// ErrNoBucket indicates an s3 store configured without a bucket.
	ErrNoBucket = errors.New("blob: s3 bucket required")
)
