// SPDX-License-Identifier: MIT

package graph_test

import (
	"fmt"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/graph"
	"github.com/katalvlaran/proteonet/molecule"
)

// ExamplePopulate scatters one sample into node tensors.
func ExamplePopulate() {
	prot, _ := molecule.NewTable([]string{"A"})
	pep, _ := molecule.NewTable([]string{"p1", "p2"})
	m, _ := molecule.NewMapping("pep-prot", "peptide", "protein", []molecule.Pair{{A: "p1", B: "A"}, {A: "p2", B: "A"}})
	set := molecule.NewSet()
	_ = set.AddMolecule("protein", prot)
	_ = set.AddMolecule("peptide", pep)
	_ = set.AddMapping(m)

	ds, _ := dataset.New(set, dataset.WithMissingValue(-1))
	s, _ := ds.CreateSample("s", map[string]map[string]dataset.Series{
		"peptide": {"abundance": {"p1": 2, "p2": 3}, "truth": {"p1": 5}},
		"protein": {"abundance": {"A": 9}},
	})

	proj, _ := set.CreateGraph("pep-prot", true)
	g, _ := graph.Create(proj)
	_ = graph.Populate(g, proj, s, graph.Config{
		FeatureColumns:     []string{"abundance"},
		TargetColumn:       "truth",
		MissingColumnValue: graph.Float(-1),
	})

	fmt.Println("edges:", g.NumEdges())
	fmt.Print(g.Features)
	fmt.Print(g.Target)
	// Output:
	// edges: 4
	// [9, 1, 0]
	// [2, 0, 1]
	// [3, 0, 1]
	// [-1]
	// [5]
	// [-1]
}
