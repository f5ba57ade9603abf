// SPDX-License-Identifier: MIT

package aggregation

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/proteonet/matrix"
)

// Reducer collapses one group of qualifying partner values (never empty,
// never missing) into a single value.
type Reducer func(values []float64) float64

// Method is the closed set of built-in reducers.
type Method int

const (
	Sum Method = iota
	Mean
	Median
	Min
	Max
)

var methodNames = [...]string{Sum: "sum", Mean: "mean", Median: "median", Min: "min", Max: "max"}

// String returns the lower-case method name.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodNames) {
		return fmt.Sprintf("Method(%d)", int(m))
	}

	return methodNames[m]
}

// ParseMethod resolves a case-insensitive method name.
func ParseMethod(name string) (Method, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for m, s := range methodNames {
		if s == n {
			return Method(m), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, name)
}

// Reducer returns the reducer implementing m, or nil for an invalid Method.
func (m Method) Reducer() Reducer {
	switch m {
	case Sum:
		return matrix.Sum
	case Mean:
		return matrix.Mean
	case Median:
		return matrix.Median
	case Min:
		return matrix.Min
	case Max:
		return matrix.Max
	default:
		return nil
	}
}
