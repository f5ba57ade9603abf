// SPDX-License-Identifier: MIT

package masked_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/masked"
	"github.com/katalvlaran/proteonet/matrix"
	"github.com/katalvlaran/proteonet/molecule"
)

type MaskedSuite struct {
	suite.Suite
	ds *dataset.Dataset
}

func (s *MaskedSuite) SetupTest() { s.ds = buildDataset(s.T()) }

func (s *MaskedSuite) TestIDsRoundTrip() {
	pairs := []dataset.Key{key("s1", "E1"), key("s2", "E3"), key("s2", "E2")}
	m, err := masked.FromIDs(s.ds, map[string]masked.IDs{"peptide": {Pairs: pairs}}, nil)
	require.NoError(s.T(), err)

	got, err := m.MaskIDs("peptide")
	require.NoError(s.T(), err)
	require.ElementsMatch(s.T(), pairs, got)
	require.False(s.T(), m.HasHidden())

	_, err = m.HiddenIDs("peptide")
	require.ErrorIs(s.T(), err, masked.ErrNoMask)
	_, err = m.MaskIDs("protein")
	require.ErrorIs(s.T(), err, masked.ErrNoMask)
}

func (s *MaskedSuite) TestBroadcastIDs() {
	m, err := masked.FromIDs(s.ds,
		map[string]masked.IDs{"protein": {Broadcast: []string{"P2"}}},
		map[string]masked.IDs{"peptide": {Broadcast: []string{"E1"}, Pairs: []dataset.Key{key("s2", "E2")}}})
	require.NoError(s.T(), err)

	got, err := m.MaskIDs("protein")
	require.NoError(s.T(), err)
	require.Equal(s.T(), []dataset.Key{key("s1", "P2"), key("s2", "P2")}, got)

	hidden, err := m.HiddenIDs("peptide")
	require.NoError(s.T(), err)
	require.ElementsMatch(s.T(), []dataset.Key{key("s1", "E1"), key("s2", "E1"), key("s2", "E2")}, hidden)
	require.True(s.T(), m.HasHidden())
}

func (s *MaskedSuite) TestFromIDsErrors() {
	cases := []struct {
		name string
		mol  string
		ids  masked.IDs
		err  error
	}{
		{"unknown id", "peptide", masked.IDs{Pairs: []dataset.Key{key("s1", "X")}}, molecule.ErrUnknownID},
		{"unknown broadcast id", "peptide", masked.IDs{Broadcast: []string{"X"}}, molecule.ErrUnknownID},
		{"unknown sample", "peptide", masked.IDs{Pairs: []dataset.Key{key("s9", "E1")}}, dataset.ErrSampleNotFound},
		{"unknown molecule", "gene", masked.IDs{Broadcast: []string{"E1"}}, molecule.ErrMoleculeNotFound},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := masked.FromIDs(s.ds, map[string]masked.IDs{tc.mol: tc.ids}, nil)
			require.ErrorIs(s.T(), err, tc.err)
		})
	}

	_, err := masked.New(nil)
	require.ErrorIs(s.T(), err, masked.ErrNilDataset)
}

func (s *MaskedSuite) TestSetMaskReshapes() {
	l, err := masked.NewLabeled([]string{"E3", "E1"}, []string{"s2"})
	require.NoError(s.T(), err)
	require.NoError(s.T(), l.Set("E1", "s2", true))

	m, err := masked.New(s.ds)
	require.NoError(s.T(), err)
	require.Empty(s.T(), m.Keys())
	require.NoError(s.T(), m.SetMask("peptide", l))

	full, ok := m.Mask("peptide")
	require.True(s.T(), ok)
	require.Equal(s.T(), []string{"E1", "E2", "E3"}, full.IDs())
	require.Equal(s.T(), []string{"s1", "s2"}, full.Samples())
	require.Equal(s.T(), 1, full.Count())
	require.True(s.T(), full.At("E1", "s2"))
	require.False(s.T(), full.At("E1", "s1"))
	require.Equal(s.T(), []string{"s1", "s2"}, m.Keys())

	// The returned table is a copy.
	require.NoError(s.T(), full.Set("E2", "s1", true))
	again, _ := m.Mask("peptide")
	require.Equal(s.T(), 1, again.Count())

	bad, err := masked.NewLabeled([]string{"X"}, []string{"s1"})
	require.NoError(s.T(), err)
	require.NoError(s.T(), bad.Set("X", "s1", true))
	require.ErrorIs(s.T(), m.SetHidden("peptide", bad), molecule.ErrUnknownID)
	require.False(s.T(), m.HasHidden())
}

func (s *MaskedSuite) TestNodes() {
	m, err := masked.FromIDs(s.ds,
		map[string]masked.IDs{
			"peptide": {Pairs: []dataset.Key{key("s1", "E1"), key("s2", "E3")}},
			"protein": {Pairs: []dataset.Key{key("s1", "P3")}},
		},
		map[string]masked.IDs{"peptide": {Pairs: []dataset.Key{key("s1", "E2")}}})
	require.NoError(s.T(), err)
	proj, err := s.ds.MoleculeSet().CreateGraph(pepProt, false)
	require.NoError(s.T(), err)

	nodes, err := m.MaskedNodes("s1", proj)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{2, 3}, nodes)

	nodes, err = m.MaskedNodes("s2", proj)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{5}, nodes)

	hidden, err := m.HiddenNodes("s1", proj)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []int{4}, hidden)

	hidden, err = m.HiddenNodes("s2", proj)
	require.NoError(s.T(), err)
	require.Empty(s.T(), hidden)
}

func (s *MaskedSuite) TestSetSamplesValueMatrixOnlyMasked() {
	m, err := masked.FromIDs(s.ds, map[string]masked.IDs{
		"peptide": {Pairs: []dataset.Key{key("s1", "E1"), key("s2", "E3")}},
	}, nil)
	require.NoError(s.T(), err)

	w, err := dataset.NewWide([]string{"E1", "E2", "E3"}, []string{"s1", "s2"}, math.NaN())
	require.NoError(s.T(), err)
	for _, id := range w.IDs() {
		require.NoError(s.T(), w.Set(id, "s1", 100))
		require.NoError(s.T(), w.Set(id, "s2", 200))
	}

	require.NoError(s.T(), m.SetSamplesValueMatrix(w, "peptide", "abundance", true))
	assert.Equal(s.T(), []float64{100, 5, 7}, mustColumn(s.T(), s.ds, "s1", "peptide", "abundance"))
	assert.Equal(s.T(), []float64{4, 6, 200}, mustColumn(s.T(), s.ds, "s2", "peptide", "abundance"))

	require.NoError(s.T(), m.SetSamplesValueMatrix(w, "peptide", "abundance", false))
	assert.Equal(s.T(), []float64{100, 100, 100}, mustColumn(s.T(), s.ds, "s1", "peptide", "abundance"))

	require.ErrorIs(s.T(), m.SetSamplesValueMatrix(w, "protein", "abundance", true), masked.ErrNoMask)
}

func (s *MaskedSuite) TestSetSamplesValueMatrixTranslatesPositions() {
	m, err := masked.FromIDs(s.ds, map[string]masked.IDs{"peptide": {Broadcast: []string{"E3", "E1"}}}, nil)
	require.NoError(s.T(), err)

	vals, err := matrix.New(2, 1)
	require.NoError(s.T(), err)
	require.NoError(s.T(), vals.Set(0, 0, 30))
	require.NoError(s.T(), vals.Set(1, 0, 10))
	w, err := dataset.WideFrom([]string{"E3", "E1"}, []string{"s2"}, vals)
	require.NoError(s.T(), err)

	require.NoError(s.T(), m.SetSamplesValueMatrix(w, "peptide", "abundance", true))
	got := mustColumn(s.T(), s.ds, "s2", "peptide", "abundance")
	assert.Equal(s.T(), []float64{10, 6, 30}, got)
	assert.Equal(s.T(), []float64{3, 5, 7}, mustColumn(s.T(), s.ds, "s1", "peptide", "abundance"))

	w, err = dataset.WideFrom([]string{"E9", "E1"}, []string{"s2"}, vals)
	require.NoError(s.T(), err)
	require.ErrorIs(s.T(), m.SetSamplesValueMatrix(w, "peptide", "abundance", false), molecule.ErrUnknownID)
}

func (s *MaskedSuite) TestSetSamplesValueMatrixNewColumn() {
	m, err := masked.FromIDs(s.ds, map[string]masked.IDs{"peptide": {Broadcast: []string{"E2"}}}, nil)
	require.NoError(s.T(), err)

	w, err := dataset.NewWide([]string{"E2", "E3"}, []string{"s2"}, math.NaN())
	require.NoError(s.T(), err)
	require.NoError(s.T(), w.Set("E2", "s2", 1.5))
	require.NoError(s.T(), w.Set("E3", "s2", 2.5))

	require.NoError(s.T(), m.SetSamplesValueMatrix(w, "peptide", "prediction", true))
	got := mustColumn(s.T(), s.ds, "s2", "peptide", "prediction")
	require.True(s.T(), math.IsNaN(got[0]))
	require.Equal(s.T(), 1.5, got[1])
	require.True(s.T(), math.IsNaN(got[2]), "E3 is not masked")

	s1, err := s.ds.Sample("s1")
	require.NoError(s.T(), err)
	require.False(s.T(), s1.HasColumn("peptide", "prediction"), "samples outside w are untouched")
}

func TestMaskedSuite(t *testing.T) {
	suite.Run(t, new(MaskedSuite))
}

func TestNewLabeledDuplicates(t *testing.T) {
	_, err := masked.NewLabeled([]string{"a", "a"}, nil)
	require.ErrorIs(t, err, masked.ErrDuplicateLabel)
	_, err = masked.NewLabeled([]string{"a"}, []string{"s", "s"})
	require.ErrorIs(t, err, masked.ErrDuplicateLabel)

	l, err := masked.NewLabeled([]string{"a"}, []string{"s"})
	require.NoError(t, err)
	require.False(t, l.At("zz", "s"))
	require.ErrorIs(t, l.Set("a", "zz", true), dataset.ErrSampleNotFound)
}
