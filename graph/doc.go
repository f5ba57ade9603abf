// SPDX-License-Identifier: MIT

// Package graph turns a node projection plus one dataset sample into the
// tensor graph consumed by an external learner.
//
// A Graph holds the relations of a molecule.Graph projection and the node
// tensors:
//
//	features [N, F+M+T]  value columns, molecule attribute columns, one-hot type
//	target   [N, 1]
//	type     [N, T]      one-hot molecule type
//	mask     [N]bool     nodes selected for prediction
//	hidden   [N]bool     nodes whose inputs must be concealed
//
// Create builds the structure; Populate fills the tensors from a sample;
// Dataset is the lazy per-sample sequence backed by a masked dataset;
// GatherPredictions turns per-node predictions back into a dataset.Wide.
//
// Populate validates the whole configuration before the first tensor cell is
// written, so a failed call never leaves a half-filled graph behind.
package graph
