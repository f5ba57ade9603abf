// SPDX-License-Identifier: MIT

package masked

import (
	"fmt"
	"maps"
	"slices"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/matrix"
	"github.com/katalvlaran/proteonet/molecule"
)

// NewLabeled returns an all-false table over ids × samples.
func NewLabeled(ids, samples []string) (*Labeled, error) {
	l := &Labeled{
		ids:     slices.Clone(ids),
		samples: slices.Clone(samples),
		idPos:   make(map[string]int, len(ids)),
		smpPos:  make(map[string]int, len(samples)),
	}
	for i, id := range ids {
		if _, dup := l.idPos[id]; dup {
			return nil, fmt.Errorf("%w: id %q", ErrDuplicateLabel, id)
		}
		l.idPos[id] = i
	}
	for j, s := range samples {
		if _, dup := l.smpPos[s]; dup {
			return nil, fmt.Errorf("%w: sample %q", ErrDuplicateLabel, s)
		}
		l.smpPos[s] = j
	}
	m, err := matrix.NewMask(len(ids), len(samples))
	if err != nil {
		return nil, err
	}
	l.values = m

	return l, nil
}

// IDs returns the row labels.
func (l *Labeled) IDs() []string { return slices.Clone(l.ids) }

// Samples returns the column labels.
func (l *Labeled) Samples() []string { return slices.Clone(l.samples) }

// Values returns the underlying mask; mutations are visible in l.
func (l *Labeled) Values() *matrix.Mask { return l.values }

// Count returns the number of true cells.
func (l *Labeled) Count() int { return l.values.Count() }

// At reports the cell (id, sample); unknown labels read as false.
func (l *Labeled) At(id, sample string) bool {
	i, ok := l.idPos[id]
	if !ok {
		return false
	}
	j, ok := l.smpPos[sample]
	if !ok {
		return false
	}
	v, _ := l.values.At(i, j)

	return v
}

// Set assigns the cell (id, sample).
func (l *Labeled) Set(id, sample string, v bool) error {
	i, ok := l.idPos[id]
	if !ok {
		return fmt.Errorf("%w: %q", molecule.ErrUnknownID, id)
	}
	j, ok := l.smpPos[sample]
	if !ok {
		return fmt.Errorf("%w: %q", dataset.ErrSampleNotFound, sample)
	}

	return l.values.Set(i, j, v)
}

// Keys returns the true cells, sample-major in column order, ids in row order.
func (l *Labeled) Keys() []dataset.Key {
	var out []dataset.Key
	for j, s := range l.samples {
		col, _ := l.values.Col(j)
		for i, v := range col {
			if v {
				out = append(out, dataset.Key{Sample: s, ID: l.ids[i]})
			}
		}
	}

	return out
}

// Clone returns a deep copy.
func (l *Labeled) Clone() *Labeled {
	out := &Labeled{
		ids:     slices.Clone(l.ids),
		samples: slices.Clone(l.samples),
		idPos:   maps.Clone(l.idPos),
		smpPos:  maps.Clone(l.smpPos),
		values:  l.values.Clone(),
	}

	return out
}
