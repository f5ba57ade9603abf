// SPDX-License-Identifier: MIT

package store

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Info is the JSON sidecar of a persisted dataset.
type Info struct {
	MissingValue Float    `json:"missing_value"`
	Revision     string   `json:"revision"`
	Samples      []string `json:"samples"`
}

// Float is a float64 whose JSON form spells NaN and infinities as strings.
type Float float64

// MarshalJSON implements json.Marshaler.
func (f Float) MarshalJSON() ([]byte, error) {
	v := float64(f)
	switch {
	case math.IsNaN(v):
		return []byte(`"NaN"`), nil
	case math.IsInf(v, 1):
		return []byte(`"Inf"`), nil
	case math.IsInf(v, -1):
		return []byte(`"-Inf"`), nil
	}

	return json.Marshal(v)
}

// UnmarshalJSON accepts a number or one of "NaN", "Inf", "-Inf".
func (f *Float) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("%w: missing_value %q", ErrCorrupt, s)
		}
		*f = Float(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("%w: missing_value %s", ErrCorrupt, b)
	}
	*f = Float(v)

	return nil
}
