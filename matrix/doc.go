// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric tensors and boolean masks that
// the rest of proteonet uses for wide sample matrices, graph feature blocks
// and mask overlays, plus NaN-aware statistics over flat float slices.
//
// Dense is a row-major float64 tensor. Unlike a general linear-algebra
// matrix it permits NaN by default, because NaN is the default "missing
// measurement" sentinel of a dataset. Strict finite-only behaviour can be
// re-enabled per instance with WithValidateNaNInf(true).
//
// Mask is the boolean twin of Dense with the same accessor contract. It
// backs the mask/hidden overlays of a masked dataset.
//
// Accessors never panic on user input: At/Set return ErrOutOfRange and
// constructors return ErrBadShape. Iteration order is always row-major
// (i→j), so every operation is deterministic.
//
// The statistics helpers (Sum, Mean, Median, Min, Max, Std, Histogram,
// Pearson) skip NaN entries; callers pass already-filtered slices when the
// missing sentinel is not NaN.
package matrix
