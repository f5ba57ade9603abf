// SPDX-License-Identifier: MIT

// Package tabular moves datasets in and out of delimited text.
//
// ReadMapped imports a long table with one row per entity, one column per
// sample and an optional multi-valued mapping column (for example the
// protein accessions of a peptide). ReadTables imports one wide table per
// molecule type and resolves mappings through a key column of the partner
// table. WriteTSVs exports one wide
// entity × sample table per (molecule, column).
package tabular
