// SPDX-License-Identifier: MIT
//
// File: populate.go
// Role: scatter sample columns into node feature/target tensors.
// Policy:
//   - Configuration and every column lookup are resolved before any write.
//   - Unfilled cells hold the sample's missing sentinel.
//   - Feature layout: value columns, molecule columns, one-hot type block.

package graph

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/matrix"
	"github.com/katalvlaran/proteonet/molecule"
)

// source is one resolved feature column of one molecule type: either the
// sample's values (aligned with the node range) or a constant.
type source struct {
	vals  []float64
	konst float64
}

func (s source) at(i int) float64 {
	if s.vals == nil {
		return s.konst
	}

	return s.vals[i]
}

// featureColumns returns the value feature columns of molecule under cfg.
func (cfg Config) featureColumns(mol string) []string {
	if cfg.MoleculeFeatureColumns != nil {
		return cfg.MoleculeFeatureColumns[mol]
	}

	return cfg.FeatureColumns
}

// validate checks the configuration against the reserved and target names.
func (cfg Config) validate(types []string) error {
	if cfg.TargetColumn == "" {
		return ErrNoTarget
	}
	check := func(col string) error {
		if col == MaskName || col == HiddenName {
			return fmt.Errorf("%w: %q", ErrReservedFeature, col)
		}
		if col == cfg.TargetColumn {
			return fmt.Errorf("%w: %q", ErrTargetInFeatures, col)
		}
		return nil
	}
	for _, mol := range types {
		for _, col := range cfg.featureColumns(mol) {
			if err := check(col); err != nil {
				return err
			}
		}
	}
	for _, col := range cfg.MoleculeColumns {
		if err := check(col); err != nil {
			return err
		}
	}

	return nil
}

func (cfg Config) logger() *zap.Logger {
	if cfg.Logger == nil {
		return zap.NewNop()
	}

	return cfg.Logger
}

// Populate fills g's feature and target tensors from sample.
//
// Implementation:
//   - Stage 1: validate cfg (target set, not a feature, no reserved names).
//   - Stage 2: resolve every (type, column) to sample values, a molecule
//     attribute, or the MissingColumnValue constant; fail with
//     ErrColumnNotFound when neither exists.
//   - Stage 3: allocate features [N, F+M+T] and target [N, 1] filled with
//     the missing sentinel and scatter the sources at offset+position.
//
// An absent target column is resolved like an absent feature column. A
// type that contributes no value features and lacks the target column
// keeps a missing target.
//
// Complexity: O(N·(F+M+T)).
func Populate(g *Graph, proj *molecule.Graph, sample *dataset.Sample, cfg Config) error {
	if proj == nil {
		return ErrNilProjection
	}
	if sample == nil {
		return ErrNilSample
	}
	if g.NumNodes != proj.NumNodes() {
		return fmt.Errorf("%w: graph has %d nodes, projection %d", ErrProjectionMismatch, g.NumNodes, proj.NumNodes())
	}
	types := proj.Types()
	if err := cfg.validate(types); err != nil {
		return err
	}
	log := cfg.logger()
	missing := sample.MissingValue()

	// Stage 2: resolve.
	width := 0
	for _, mol := range types {
		width = max(width, len(cfg.featureColumns(mol)))
	}
	value := make([][]source, len(types))
	attr := make([][]source, len(types))
	target := make([]source, len(types))
	for k, mol := range types {
		_, n, _ := proj.NodeRange(mol)
		for _, col := range cfg.featureColumns(mol) {
			src, err := resolveValue(sample, mol, col, n, cfg, log)
			if err != nil {
				return err
			}
			value[k] = append(value[k], src)
		}
		tbl, _ := proj.Table(mol)
		for _, col := range cfg.MoleculeColumns {
			src, err := resolveAttr(tbl, mol, col, n, cfg, log)
			if err != nil {
				return err
			}
			attr[k] = append(attr[k], src)
		}
		src, err := resolveTarget(sample, mol, n, len(cfg.featureColumns(mol)) > 0, cfg, log)
		if err != nil {
			return err
		}
		target[k] = src
	}

	// Stage 3: scatter.
	m, t := len(cfg.MoleculeColumns), len(types)
	feat, err := matrix.NewFilled(g.NumNodes, width+m+t, missing)
	if err != nil {
		return err
	}
	tgt, err := matrix.NewFilled(g.NumNodes, 1, missing)
	if err != nil {
		return err
	}
	for k, mol := range types {
		start, n, _ := proj.NodeRange(mol)
		for i := 0; i < n; i++ {
			if err = scatterRow(feat, start+i, i, k, width, t, value[k], attr[k]); err != nil {
				return err
			}
			if err = tgt.Set(start+i, 0, target[k].at(i)); err != nil {
				return err
			}
		}
	}

	g.Sample = sample.Name()
	g.Features = feat
	g.Target = tgt
	log.Debug("graph populated",
		zap.String("sample", g.Sample),
		zap.Int("nodes", g.NumNodes),
		zap.Int("edges", g.NumEdges()),
		zap.Int("features", feat.Cols()))

	return nil
}

// scatterRow writes node row from position i of type k: the value block,
// the attribute block after width, then the one-hot block over types.
func scatterRow(feat *matrix.Dense, row, i, k, width, types int, value, attr []source) error {
	for j, src := range value {
		if err := feat.Set(row, j, src.at(i)); err != nil {
			return err
		}
	}
	for j, src := range attr {
		if err := feat.Set(row, width+j, src.at(i)); err != nil {
			return err
		}
	}
	for j := 0; j < types; j++ {
		oh := 0.0
		if j == k {
			oh = 1
		}
		if err := feat.Set(row, width+len(attr)+j, oh); err != nil {
			return err
		}
	}

	return nil
}

func resolveTarget(sample *dataset.Sample, mol string, n int, hasFeatures bool, cfg Config, log *zap.Logger) (source, error) {
	if !sample.HasColumn(mol, cfg.TargetColumn) && !hasFeatures {
		return source{konst: sample.MissingValue()}, nil
	}

	return resolveValue(sample, mol, cfg.TargetColumn, n, cfg, log)
}

func resolveValue(sample *dataset.Sample, mol, col string, n int, cfg Config, log *zap.Logger) (source, error) {
	if !sample.HasColumn(mol, col) {
		return substitute(mol, col, cfg, log)
	}
	v, err := sample.Column(mol, col)
	if err != nil {
		return source{}, err
	}
	if len(v) != n {
		return source{}, fmt.Errorf("%w: %s.%s has %d values for %d nodes", ErrProjectionMismatch, mol, col, len(v), n)
	}

	return source{vals: v}, nil
}

func resolveAttr(tbl *molecule.Table, mol, col string, n int, cfg Config, log *zap.Logger) (source, error) {
	v, ok := tbl.Numeric(col)
	if !ok {
		return substitute(mol, col, cfg, log)
	}
	if len(v) != n {
		return source{}, fmt.Errorf("%w: %s attribute %s has %d values for %d nodes", ErrProjectionMismatch, mol, col, len(v), n)
	}

	return source{vals: v}, nil
}

func substitute(mol, col string, cfg Config, log *zap.Logger) (source, error) {
	if cfg.MissingColumnValue == nil {
		return source{}, fmt.Errorf("%w: %q for molecule %q", ErrColumnNotFound, col, mol)
	}
	log.Info("column missing, using constant",
		zap.String("molecule", mol),
		zap.String("column", col),
		zap.Float64("value", *cfg.MissingColumnValue))

	return source{konst: *cfg.MissingColumnValue}, nil
}
