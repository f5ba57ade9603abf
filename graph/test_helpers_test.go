// SPDX-License-Identifier: MIT

package graph_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/matrix"
	"github.com/katalvlaran/proteonet/molecule"
)

const pepProt = "peptide-protein"

// buildDataset returns proteins P1..P3 (nodes 0..2, numeric attribute
// "length") and peptides E1..E3 (nodes 3..5) with weighted edges
// E1-P1, E2-P1, E2-P2, E3-P2 and samples
//
//	full: every entity measured, "truth" column for both types
//	part: peptide E1=4 E2=6 only
func buildDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	prot, err := molecule.NewTable([]string{"P1", "P2", "P3"})
	require.NoError(t, err)
	require.NoError(t, prot.SetNumeric("length", []float64{100, 200, 300}))
	pep, err := molecule.NewTable([]string{"E1", "E2", "E3"})
	require.NoError(t, err)
	m, err := molecule.NewMapping(pepProt, "peptide", "protein", []molecule.Pair{
		{A: "E1", B: "P1"}, {A: "E2", B: "P1"}, {A: "E2", B: "P2"}, {A: "E3", B: "P2"},
	})
	require.NoError(t, err)
	require.NoError(t, m.SetAttr(molecule.WeightAttr, []float64{0.5, 1, 1, 2}))
	set := molecule.NewSet()
	require.NoError(t, set.AddMolecule("protein", prot))
	require.NoError(t, set.AddMolecule("peptide", pep))
	require.NoError(t, set.AddMapping(m))

	ds, err := dataset.New(set)
	require.NoError(t, err)
	_, err = ds.CreateSample("full", map[string]map[string]dataset.Series{
		"peptide": {
			"abundance": {"E1": 3, "E2": 5, "E3": 7},
			"truth":     {"E1": 30, "E2": 50, "E3": 70},
		},
		"protein": {
			"abundance": {"P1": 10, "P2": 20, "P3": 30},
			"truth":     {"P1": 100, "P2": 200, "P3": 300},
		},
	})
	require.NoError(t, err)
	_, err = ds.CreateSample("part", map[string]map[string]dataset.Series{
		"peptide": {"abundance": {"E1": 4, "E2": 6}},
	})
	require.NoError(t, err)

	return ds
}

func mustSample(t *testing.T, ds *dataset.Dataset, name string) *dataset.Sample {
	t.Helper()
	s, err := ds.Sample(name)
	require.NoError(t, err)

	return s
}

func mustProjection(t *testing.T, ds *dataset.Dataset, bidirectional bool) *molecule.Graph {
	t.Helper()
	p, err := ds.MoleculeSet().CreateGraph(pepProt, bidirectional)
	require.NoError(t, err)

	return p
}

func row(t *testing.T, m *matrix.Dense, i int) []float64 {
	t.Helper()
	r, err := m.Row(i)
	require.NoError(t, err)

	return r
}

func hasNaN(m *matrix.Dense) bool {
	found := false
	m.Do(func(_, _ int, v float64) bool {
		found = math.IsNaN(v)
		return !found
	})

	return found
}
