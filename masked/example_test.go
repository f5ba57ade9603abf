// SPDX-License-Identifier: MIT

package masked_test

import (
	"fmt"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/masked"
	"github.com/katalvlaran/proteonet/molecule"
)

// ExampleFromIDs broadcasts a bare id to every sample and reads it back.
func ExampleFromIDs() {
	tbl, _ := molecule.NewTable([]string{"A", "B"})
	set := molecule.NewSet()
	_ = set.AddMolecule("protein", tbl)
	ds, _ := dataset.New(set)
	_, _ = ds.CreateSample("s1", nil)
	_, _ = ds.CreateSample("s2", nil)

	m, _ := masked.FromIDs(ds, map[string]masked.IDs{"protein": {Broadcast: []string{"B"}}}, nil)
	ids, _ := m.MaskIDs("protein")
	fmt.Println(ids)
	// Output:
	// [{s1 B} {s2 B}]
}
