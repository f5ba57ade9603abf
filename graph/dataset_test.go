// SPDX-License-Identifier: MIT

package graph_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/graph"
	"github.com/katalvlaran/proteonet/masked"
	"github.com/katalvlaran/proteonet/molecule"
)

type DatasetSuite struct {
	suite.Suite
	md *masked.MaskedDataset
}

func (s *DatasetSuite) SetupTest() {
	ds := buildDataset(s.T())
	md, err := masked.FromIDs(ds,
		map[string]masked.IDs{"peptide": {Pairs: []dataset.Key{{Sample: "full", ID: "E1"}, {Sample: "part", ID: "E3"}}}},
		map[string]masked.IDs{"protein": {Broadcast: []string{"P2"}}})
	require.NoError(s.T(), err)
	s.md = md
}

func (s *DatasetSuite) cfg() graph.Config {
	return graph.Config{
		Mapping:            pepProt,
		FeatureColumns:     []string{"abundance"},
		TargetColumn:       "truth",
		MissingColumnValue: graph.Float(0),
	}
}

func (s *DatasetSuite) TestGet() {
	gd, err := s.md.GraphDataset(s.cfg())
	require.NoError(s.T(), err)
	require.Equal(s.T(), 2, gd.Len())
	require.Equal(s.T(), []string{"full", "part"}, gd.Keys())
	require.Equal(s.T(), 6, gd.Projection().NumNodes())

	g, err := gd.Get(0)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "full", g.Sample)
	require.Equal(s.T(), []int{3}, g.MaskedNodes())
	require.Equal(s.T(), []int{1}, g.HiddenNodes())

	g, err = gd.Get(1)
	require.NoError(s.T(), err)
	require.Equal(s.T(), "part", g.Sample)
	require.Equal(s.T(), []int{5}, g.MaskedNodes())
	require.Equal(s.T(), []float64{0, 1, 0}, row(s.T(), g.Features, 0), "protein abundance substituted")

	_, err = gd.Get(2)
	require.ErrorIs(s.T(), err, graph.ErrIndexOutOfRange)
}

func (s *DatasetSuite) TestAllRestarts() {
	gd, err := s.md.GraphDataset(s.cfg())
	require.NoError(s.T(), err)
	for range 2 {
		var names []string
		for g, err := range gd.All() {
			require.NoError(s.T(), err)
			names = append(names, g.Sample)
		}
		require.Equal(s.T(), []string{"full", "part"}, names)
	}
}

func (s *DatasetSuite) TestAllStopsAtError() {
	cfg := s.cfg()
	cfg.MissingColumnValue = nil
	gd, err := s.md.GraphDataset(cfg)
	require.NoError(s.T(), err)

	n := 0
	var last error
	for _, err := range gd.All() {
		n++
		last = err
	}
	require.Equal(s.T(), 2, n)
	require.ErrorIs(s.T(), last, graph.ErrColumnNotFound, "part has no protein abundance")
}

func (s *DatasetSuite) TestInvalidConfig() {
	cfg := s.cfg()
	cfg.TargetColumn = "abundance"
	_, err := s.md.GraphDataset(cfg)
	require.ErrorIs(s.T(), err, graph.ErrTargetInFeatures)

	cfg = s.cfg()
	cfg.Mapping = "gene"
	_, err = s.md.GraphDataset(cfg)
	require.ErrorIs(s.T(), err, molecule.ErrMappingNotFound)
}

func TestDatasetSuite(t *testing.T) {
	suite.Run(t, new(DatasetSuite))
}

func TestGatherPredictions(t *testing.T) {
	ds := buildDataset(t)
	proj := mustProjection(t, ds, false)
	preds := [][]float64{{0, 1, 2, 3, 4, 5}, {10, 11, 12, 13, 14, 15}}

	w, err := graph.GatherPredictions(proj, "peptide", []string{"full", "part"}, preds, ds.MissingValue())
	require.NoError(t, err)
	require.Equal(t, []string{"E1", "E2", "E3"}, w.IDs())
	v, ok := w.At("E2", "part")
	require.True(t, ok)
	require.Equal(t, 14.0, v)

	require.NoError(t, ds.SetSamplesValueMatrix(w, "peptide", "prediction"))
	got, err := mustSample(t, ds, "full").Column("peptide", "prediction")
	require.NoError(t, err)
	require.Equal(t, []float64{3, 4, 5}, got)

	_, err = graph.GatherPredictions(proj, "peptide", []string{"full"}, preds, 0)
	require.ErrorIs(t, err, graph.ErrProjectionMismatch)
	_, err = graph.GatherPredictions(proj, "peptide", []string{"full"}, [][]float64{{1, 2}}, 0)
	require.ErrorIs(t, err, graph.ErrProjectionMismatch)
	_, err = graph.GatherPredictions(proj, "gene", nil, nil, 0)
	require.ErrorIs(t, err, molecule.ErrMoleculeNotFound)
}
