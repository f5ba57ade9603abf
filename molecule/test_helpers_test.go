// SPDX-License-Identifier: MIT

package molecule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/proteonet/molecule"
)

const pepProt = "peptide-protein"

// MustTable builds a table or fails the test.
func MustTable(t *testing.T, ids ...string) *molecule.Table {
	t.Helper()
	tbl, err := molecule.NewTable(ids)
	require.NoError(t, err, "NewTable(%v)", ids)

	return tbl
}

// MustMapping builds a mapping or fails the test.
func MustMapping(t *testing.T, name, a, b string, pairs ...molecule.Pair) *molecule.Mapping {
	t.Helper()
	m, err := molecule.NewMapping(name, a, b, pairs)
	require.NoError(t, err, "NewMapping(%s)", name)

	return m
}

// buildSet returns proteins P1..P3 and peptides E1..E3 with
//
//	E1-P1, E2-P1, E2-P2, E3-P2
//
// so P3 is unmapped and E2 is shared.
func buildSet(t *testing.T, opts ...molecule.SetOption) *molecule.Set {
	t.Helper()
	s := molecule.NewSet(opts...)
	require.NoError(t, s.AddMolecule("protein", MustTable(t, "P1", "P2", "P3")))
	require.NoError(t, s.AddMolecule("peptide", MustTable(t, "E1", "E2", "E3")))
	require.NoError(t, s.AddMapping(MustMapping(t, pepProt, "peptide", "protein",
		molecule.Pair{A: "E1", B: "P1"},
		molecule.Pair{A: "E2", B: "P1"},
		molecule.Pair{A: "E2", B: "P2"},
		molecule.Pair{A: "E3", B: "P2"},
	)))

	return s
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}
