// SPDX-License-Identifier: MIT

// Package matrix: functional configuration of the numeric policy.
//
// Defaults are a single source of truth and are reflected by defaultOptions.
// Options never panic; an option only flips a documented switch.
package matrix

// DefaultValidateNaNInf toggles strict finite-value validation in Set/Apply.
// It is off by default: NaN is the standard missing-value sentinel and must
// be storable in a wide sample matrix.
const DefaultValidateNaNInf = false

// Options carries the resolved numeric policy of a Dense.
type Options struct {
	validateNaNInf bool
}

// Option mutates Options.
type Option func(*Options)

// WithValidateNaNInf enables (or disables) rejection of NaN/±Inf on Set/Apply/Fill.
func WithValidateNaNInf(on bool) Option {
	return func(o *Options) { o.validateNaNInf = on }
}

// defaultOptions returns the zero-config policy.
func defaultOptions() Options {
	return Options{validateNaNInf: DefaultValidateNaNInf}
}

// gatherOptions applies opts in order over the defaults.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
