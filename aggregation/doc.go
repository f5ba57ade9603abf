// SPDX-License-Identifier: MIT

// Package aggregation summarizes partner measurements onto a molecule type,
// for example peptide abundances onto proteins.
//
// Both primitives walk the relation between a molecule type and its partner,
// keep only qualifying partner values and reduce them per (sample, entity):
//
//   - a partner value qualifies when it is present (not the missing
//     sentinel) and, with only-unique filtering (the default), the partner
//     has degree exactly one toward the molecule type, so evidence shared
//     between several entities is discarded;
//   - in log mode values are exponentiated before reduction and the result
//     is logarithmized, so reducers always see linear-scale values;
//   - entities without a qualifying partner are absent from the result.
//
// Reducers come from the closed Method enumeration (sum, mean, median, min,
// max) or from any caller-supplied Reducer.
package aggregation
