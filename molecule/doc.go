// SPDX-License-Identifier: MIT

// Package molecule defines the structural half of a proteonet dataset: entity
// tables ("molecule types" such as protein or peptide), typed many-to-many
// mappings between them, and the Set registry that owns both.
//
// A Set is the single source of truth for which entity IDs are valid. Every
// mapping row references IDs that exist in the corresponding tables, and
// every dataset sample built on a Set indexes its values by those IDs in the
// table's canonical (insertion) order.
//
// Mappings are stored once, in a canonical (A, B) orientation. A Relation is
// a cheap oriented view over a Mapping; Swap flips it without copying rows.
//
// Node projection: CreateGraph assigns every (molecule, id) pair of the
// molecule types joined by a mapping name a dense node index and turns each
// relation row into an edge. Projections are cached per (mapping,
// bidirectional) in an LRU and the cache is purged by every structural
// mutation (AddMolecule, AddMapping, Rename*).
//
// Concurrency: a Set is not safe for concurrent mutation. Use Copy to obtain
// an independently mutable snapshot.
package molecule
