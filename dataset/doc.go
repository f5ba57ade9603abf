// SPDX-License-Identifier: MIT

// Package dataset binds per-sample measurements to a molecule.Set.
//
// A Dataset is an ordered collection of named Samples sharing one
// molecule.Set and one missing-value sentinel (NaN unless configured with
// WithMissingValue). Each Sample holds, per molecule type, a Frame of value
// columns aligned to the canonical ID order of that type's table; entities
// that were not measured hold the sentinel.
//
// Representations:
//
//   - wide: Wide, an entity × sample matrix for one (molecule, column);
//     rows follow the table order, columns follow sample insertion order.
//   - long: Flat, a map keyed by (sample, id).
//   - mapped: Mapped, one row per (sample, relation row) with value columns
//     of both sides joined on.
//
// Round trips wide→long→wide and long→wide→long preserve every non-missing
// value and every missing cell location.
//
// Missing data is a first-class state, never an error: IsMissing compares
// against the sentinel (NaN matches NaN).
//
// Every Sample carries a back-reference to the Dataset it is attached to;
// the reference is reassigned on Copy, Apply and Subset and is never left
// pointing at a foreign dataset.
//
// A Dataset is not safe for concurrent mutation; Copy produces an
// independently mutable snapshot.
package dataset
