// SPDX-License-Identifier: MIT

package molecule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/proteonet/molecule"
)

func TestComponents(t *testing.T) {
	for _, bidirectional := range []bool{false, true} {
		g, err := buildSet(t).CreateGraph(pepProt, bidirectional)
		require.NoError(t, err)
		// P1,P2 share E2; P3 is unmapped
		require.Equal(t, [][]int{{0, 1, 3, 4, 5}, {2}}, g.Components())
	}
}

func TestGroups(t *testing.T) {
	s := buildSet(t)
	require.NoError(t, s.AddMolecule("mrna", MustTable(t, "M1")))
	g, err := s.CreateGraph(pepProt, false)
	require.NoError(t, err)

	groups, ok := g.Groups("protein")
	require.True(t, ok)
	require.Equal(t, [][]string{{"P1", "P2"}, {"P3"}}, groups)

	groups, ok = g.Groups("peptide")
	require.True(t, ok)
	require.Equal(t, [][]string{{"E1", "E2", "E3"}}, groups)

	_, ok = g.Groups("mrna")
	require.False(t, ok, "type without a peptide-protein mapping is not projected")
}

func TestComponentsIsolatedNodes(t *testing.T) {
	s := molecule.NewSet()
	require.NoError(t, s.AddMolecule("a", MustTable(t, "x", "y")))
	require.NoError(t, s.AddMolecule("b", MustTable(t, "z")))
	require.NoError(t, s.AddMapping(MustMapping(t, "ab", "a", "b", molecule.Pair{A: "y", B: "z"})))
	g, err := s.CreateGraph("ab", false)
	require.NoError(t, err)
	require.Equal(t, [][]int{{0}, {1, 2}}, g.Components())
}
