// SPDX-License-Identifier: MIT

package tabular_test

import (
	"fmt"
	"os"
	"strings"

	"github.com/katalvlaran/proteonet/tabular"
)

func ExampleReadMapped() {
	in := "seq\tproteins\tsampleA\n" +
		"AAK\tP1;P2\t3.5\n" +
		"CCR\tP2\tNA\n"
	ds, err := tabular.ReadMapped(strings.NewReader(in), tabular.MappedOptions{
		Molecule:      "peptide",
		SampleColumns: []string{"sampleA"},
		IDColumn:      "seq",
		MappingColumn: "proteins",
		MappingSep:    ";",
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	n, _ := ds.NumberMolecules("protein")
	fmt.Println("proteins:", n)

	w, _ := ds.SamplesValueMatrix("peptide", "abundance")
	_ = tabular.WriteWide(os.Stdout, w, ds.MissingValue(), "NA")
	// Output:
	// proteins: 2
	// id	sampleA
	// AAK	3.5
	// CCR	NA
}
