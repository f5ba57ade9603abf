// SPDX-License-Identifier: MIT

// Package store persists a dataset.Dataset on a blob.Store.
//
// Layout under a key prefix:
//
//	molecule_set.db     SQLite: molecule tables, attributes, mappings
//	dataset_info.json   missing value, revision, sample order
//	samples/<name>.db   SQLite: declared columns and one row per present value
//
// SQLite files are built in a temporary directory with modernc.org/sqlite
// and uploaded whole; Load downloads them the same way. Sample stores are
// uploaded and fetched with bounded concurrency; everything else is
// sequential.
package store
