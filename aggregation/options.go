// SPDX-License-Identifier: MIT

package aggregation

// Defaults.
const (
	DefaultOnlyUnique      = true
	DefaultSkipIfLessThanN = true
	DefaultTopN            = 3
)

// Options holds the resolved aggregation switches.
type Options struct {
	onlyUnique      bool
	log             bool
	resultColumn    string
	skipIfLessThanN bool
}

// Option mutates Options.
type Option func(*Options)

// WithOnlyUnique keeps only partners of degree one toward the molecule type.
func WithOnlyUnique(on bool) Option {
	return func(o *Options) { o.onlyUnique = on }
}

// WithLog treats partner values as log-scale: exp before, log after reduction.
func WithLog(on bool) Option {
	return func(o *Options) { o.log = on }
}

// WithResultColumn writes the result back into this column of the molecule
// type, resetting the column to the sentinel first.
func WithResultColumn(name string) Option {
	return func(o *Options) { o.resultColumn = name }
}

// WithSkipIfLessThanN drops groups with fewer than top-n qualifying values
// (PartnerTopNMean only).
func WithSkipIfLessThanN(on bool) Option {
	return func(o *Options) { o.skipIfLessThanN = on }
}

func gatherOptions(opts ...Option) Options {
	o := Options{onlyUnique: DefaultOnlyUnique, skipIfLessThanN: DefaultSkipIfLessThanN}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}
