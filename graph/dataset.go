// SPDX-License-Identifier: MIT
//
// File: dataset.go
// Role: lazy per-sample graph sequence over a masked source.

package graph

import (
	"fmt"
	"iter"
	"slices"

	"go.uber.org/zap"

	"github.com/katalvlaran/proteonet/molecule"
)

// NewDataset resolves the projection of cfg.Mapping on the source's molecule
// set and validates cfg. Graphs are built on demand by Get and All.
func NewDataset(src Masked, cfg Config) (*Dataset, error) {
	proj, err := src.Dataset().MoleculeSet().CreateGraph(cfg.Mapping, cfg.Bidirectional)
	if err != nil {
		return nil, err
	}
	if err = cfg.validate(proj.Types()); err != nil {
		return nil, err
	}
	d := &Dataset{src: src, proj: proj, cfg: cfg, keys: src.Keys()}
	cfg.logger().Debug("graph dataset created",
		zap.String("mapping", cfg.Mapping),
		zap.Int("samples", len(d.keys)),
		zap.Int("nodes", proj.NumNodes()))

	return d, nil
}

// Len returns the number of graphs (one per key).
func (d *Dataset) Len() int { return len(d.keys) }

// Keys returns the sample names in sequence order.
func (d *Dataset) Keys() []string { return slices.Clone(d.keys) }

// Get builds the graph of the i-th key: structure, tensors from the sample,
// mask and hidden flags by node index lookup.
func (d *Dataset) Get(i int) (*Graph, error) {
	if i < 0 || i >= len(d.keys) {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, len(d.keys))
	}
	key := d.keys[i]
	sample, err := d.src.Dataset().Sample(key)
	if err != nil {
		return nil, err
	}
	g, err := Create(d.proj)
	if err != nil {
		return nil, err
	}
	if err = Populate(g, d.proj, sample, d.cfg); err != nil {
		return nil, fmt.Errorf("sample %q: %w", key, err)
	}
	masked, err := d.src.MaskedNodes(key, d.proj)
	if err != nil {
		return nil, err
	}
	for _, n := range masked {
		g.Mask[n] = true
	}
	hidden, err := d.src.HiddenNodes(key, d.proj)
	if err != nil {
		return nil, err
	}
	for _, n := range hidden {
		g.Hidden[n] = true
	}

	return g, nil
}

// All yields the graphs in key order and stops at the first error, which
// is yielded with a nil graph. Every call restarts from position 0.
func (d *Dataset) All() iter.Seq2[*Graph, error] {
	return func(yield func(*Graph, error) bool) {
		for i := range d.keys {
			g, err := d.Get(i)
			if !yield(g, err) || err != nil {
				return
			}
		}
	}
}

// Projection returns the shared node projection the graphs are built on.
func (d *Dataset) Projection() *molecule.Graph { return d.proj }
