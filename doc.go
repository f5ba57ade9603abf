// SPDX-License-Identifier: MIT

// Package proteonet is an in-memory data model for multi-molecule
// proteomics measurements and their graph views.
//
// A molecule set registers entity tables per molecule type (proteins,
// peptides, mRNA, ...) and named many-to-many mappings between them. A
// dataset adds ordered samples holding per-entity value columns over that
// set. A masked dataset overlays boolean mask and hidden tables on the
// (sample, entity) grid, and the graph package turns each sample into node
// tensors over the projection of one mapping.
//
// Packages:
//
//	matrix/       dense float64 tensors, boolean masks, NaN-aware statistics
//	molecule/     tables, mappings, molecule sets, cached node projections
//	dataset/      samples, wide and long value views, mapped joins, transforms
//	aggregation/  partner aggregation (sum, mean, median, min, max, top-n mean)
//	masked/       mask and hidden overlays, masked write-back
//	graph/        per-sample feature/target/type tensors and prediction gathering
//	store/        SQLite + JSON persistence of a dataset on a blob store
//	blob/         filesystem, memory and S3 object stores
//	tabular/      long-table import and wide TSV export
//	config/       YAML + environment configuration
//	logging/      zap logger construction
//
// The proteonet command (cmd/proteonet) wires these together.
//
// Quick start:
//
//	set := molecule.NewSet()
//	_ = set.AddMolecule("protein", proteins)
//	_ = set.AddMolecule("peptide", peptides)
//	_ = set.AddMapping(peptideProtein)
//	ds, _ := dataset.New(set)
//	_, _ = ds.CreateSample("s1", values)
//	sums, _ := aggregation.PartnerAggregationMethod(ds, "protein", "peptide-protein", "abundance", "sum")
package proteonet
