// SPDX-License-Identifier: MIT

// Package blob is a small key/value object store abstraction with three
// drivers: fs (local directory), memory (tests) and s3 (AWS S3 or any
// S3-compatible endpoint through aws-sdk-go-v2).
//
// Keys are slash-separated relative paths. Put overwrites. List returns
// keys sorted ascending.
package blob
