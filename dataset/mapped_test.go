// SPDX-License-Identifier: MIT

package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/molecule"
)

func TestGetMapped(t *testing.T) {
	ds := buildDataset(t)
	m, err := ds.GetMapped("protein", pepProt, []string{"abundance"}, nil)
	require.NoError(t, err)
	require.Equal(t, "peptide", m.Partner)
	require.Equal(t, 8, m.Len(), "2 samples x 4 relation rows")
	require.Equal(t, []string{"P1", "P1", "P2", "P2", "P1", "P1", "P2", "P2"}, m.IDs)
	require.Equal(t, []string{"E1", "E2", "E2", "E3", "E1", "E2", "E2", "E3"}, m.PartnerIDs)
	require.Equal(t, "s2", m.Samples[4])
	require.Equal(t, 10.0, m.Columns["abundance"][0])

	m, err = ds.GetMapped("protein", pepProt, nil, []string{"abundance"})
	require.NoError(t, err)
	require.Equal(t, []float64{3, 5, 5, 7}, m.Columns["abundance"][:4])
}

func TestGetMappedCollisions(t *testing.T) {
	ds := buildDataset(t)

	cases := []struct {
		name     string
		columns  []string
		partners []string
	}{
		{"sample key", []string{"sample"}, nil},
		{"molecule key", nil, []string{"protein"}},
		{"partner key", []string{"peptide"}, nil},
		{"both sides", []string{"abundance"}, []string{"abundance"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ds.GetMapped("protein", pepProt, tc.columns, tc.partners)
			require.ErrorIs(t, err, dataset.ErrColumnCollision)
		})
	}

	_, err := ds.GetMapped("protein", "missing", nil, nil)
	require.ErrorIs(t, err, molecule.ErrMappingNotFound)
	_, err = ds.GetMapped("protein", pepProt, []string{"nope"}, nil)
	require.ErrorIs(t, err, dataset.ErrColumnNotFound)
}

func TestGetMappedEdgeAttributes(t *testing.T) {
	set := molecule.NewSet()
	a, _ := molecule.NewTable([]string{"a1"})
	b, _ := molecule.NewTable([]string{"b1", "b2"})
	require.NoError(t, set.AddMolecule("a", a))
	require.NoError(t, set.AddMolecule("b", b))
	m, _ := molecule.NewMapping("ab", "a", "b", []molecule.Pair{{A: "a1", B: "b1"}, {A: "a1", B: "b2"}})
	require.NoError(t, m.SetAttr(molecule.WeightAttr, []float64{0.5, 1.5}))
	require.NoError(t, set.AddMapping(m))

	ds, err := dataset.New(set)
	require.NoError(t, err)
	_, err = ds.CreateSample("s", map[string]map[string]dataset.Series{"b": {"weight": {"b1": 1}, "v": {"b1": 2}}})
	require.NoError(t, err)

	_, err = ds.GetMapped("a", "ab", nil, []string{"weight"})
	require.ErrorIs(t, err, dataset.ErrColumnCollision, "edge attribute shadowed")

	mapped, err := ds.GetMapped("a", "ab", nil, []string{"v"})
	require.NoError(t, err)
	require.Equal(t, []float64{0.5, 1.5}, mapped.Columns[molecule.WeightAttr])
}
