// SPDX-License-Identifier: MIT

package dataset_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/molecule"
)

const pepProt = "peptide-protein"

var nan = math.NaN()

// buildSet returns proteins P1..P3 and peptides E1..E3 with
//
//	E1-P1, E2-P1, E2-P2, E3-P2
func buildSet(t *testing.T) *molecule.Set {
	t.Helper()
	prot, err := molecule.NewTable([]string{"P1", "P2", "P3"})
	require.NoError(t, err)
	pep, err := molecule.NewTable([]string{"E1", "E2", "E3"})
	require.NoError(t, err)
	m, err := molecule.NewMapping(pepProt, "peptide", "protein", []molecule.Pair{
		{A: "E1", B: "P1"}, {A: "E2", B: "P1"}, {A: "E2", B: "P2"}, {A: "E3", B: "P2"},
	})
	require.NoError(t, err)

	s := molecule.NewSet()
	require.NoError(t, s.AddMolecule("protein", prot))
	require.NoError(t, s.AddMolecule("peptide", pep))
	require.NoError(t, s.AddMapping(m))

	return s
}

// buildDataset adds samples s1 and s2 with peptide abundances; E3 is
// unmeasured in s2.
func buildDataset(t *testing.T, opts ...dataset.Option) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(buildSet(t), opts...)
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

// requireSameFlat compares two long tables treating NaN as equal to NaN.
func requireSameFlat(t *testing.T, want, got dataset.Flat) {
	t.Helper()
	require.Len(t, got, len(want))
	for k, v := range want {
		g, ok := got[k]
		require.True(t, ok, "missing key %v", k)
		if math.IsNaN(v) {
			require.True(t, math.IsNaN(g), "key %v: want NaN, got %v", k, g)
			continue
		}
		require.Equal(t, v, g, "key %v", k)
	}
}

func mustColumn(t *testing.T, ds *dataset.Dataset, sample, mol, col string) []float64 {
	t.Helper()
	s, err := ds.Sample(sample)
	require.NoError(t, err)
	v, err := s.Column(mol, col)
	require.NoError(t, err)

	return v
}
