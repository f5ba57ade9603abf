// SPDX-License-Identifier: MIT

package masked_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/molecule"
)

const pepProt = "peptide-protein"

// buildDataset returns proteins P1..P3 (nodes 0..2) and peptides E1..E3
// (nodes 3..5) with E1-P1, E2-P1, E2-P2, E3-P2 and two samples:
//
//	s1: peptide E1=3 E2=5 E3=7, protein P1=10
//	s2: peptide E1=4 E2=6,      protein P2=20
func buildDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	prot, err := molecule.NewTable([]string{"P1", "P2", "P3"})
	require.NoError(t, err)
	pep, err := molecule.NewTable([]string{"E1", "E2", "E3"})
	require.NoError(t, err)
	m, err := molecule.NewMapping(pepProt, "peptide", "protein", []molecule.Pair{
		{A: "E1", B: "P1"}, {A: "E2", B: "P1"}, {A: "E2", B: "P2"}, {A: "E3", B: "P2"},
	})
	require.NoError(t, err)
	set := molecule.NewSet()
	require.NoError(t, set.AddMolecule("protein", prot))
	require.NoError(t, set.AddMolecule("peptide", pep))
	require.NoError(t, set.AddMapping(m))

	ds, err := dataset.New(set)
	require.NoError(t, err)
	_, err = ds.CreateSample("s1", map[string]map[string]dataset.Series{
		"peptide": {"abundance": {"E1": 3, "E2": 5, "E3": 7}},
		"protein": {"abundance": {"P1": 10}},
	})
	require.NoError(t, err)
	_, err = ds.CreateSample("s2", map[string]map[string]dataset.Series{
		"peptide": {"abundance": {"E1": 4, "E2": 6}},
		"protein": {"abundance": {"P2": 20}},
	})
	require.NoError(t, err)

	return ds
}

func key(sample, id string) dataset.Key { return dataset.Key{Sample: sample, ID: id} }

func mustColumn(t *testing.T, ds *dataset.Dataset, sample, mol, col string) []float64 {
	t.Helper()
	s, err := ds.Sample(sample)
	require.NoError(t, err)
	v, err := s.Column(mol, col)
	require.NoError(t, err)

	return v
}
