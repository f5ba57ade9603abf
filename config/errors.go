// SPDX-License-Identifier: MIT

package config

import "errors"

var (
	// ErrInvalidEnv indicates an environment value that cannot be parsed into its field.
	ErrInvalidEnv = errors.New("config: invalid environment value")

	// ErrInvalid indicates a configuration rejected by validation.
	ErrInvalid = errors.New("config: invalid configuration")
)
