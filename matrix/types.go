// SPDX-License-Identifier: MIT

package matrix

// error context tags
const (
	ctxNew     = "New"
	ctxAt      = "At"
	ctxSet     = "Set"
	ctxRow     = "Row"
	ctxCol     = "Col"
	ctxSetCol  = "SetCol"
	ctxFill    = "Fill"
	ctxApply   = "Apply"
	ctxInduced = "Induced"
)
