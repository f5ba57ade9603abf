// SPDX-License-Identifier: MIT

// Package masked overlays boolean selections on a dataset.Dataset for
// train/evaluation splits.
//
// Per molecule type a MaskedDataset keeps a mask (true = cell is a
// prediction/evaluation target) and optionally a hidden table (true = value
// must be concealed from the learner's input). Both are Labeled boolean
// matrices of shape [entities x samples] that always cover the full domain
// of the dataset at the time they are set; cells not named default to false.
//
// Selections are built from IDs, either (sample, id) pairs or bare ids
// broadcast to every sample, and read back with MaskIDs/HiddenIDs. Predictions
// flow back through SetSamplesValueMatrix, which can protect unmasked cells.
package masked
