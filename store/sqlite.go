// SPDX-License-Identifier: MIT
//
// File: sqlite.go
// Role: build and read whole SQLite files through a temporary directory.

package store

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// build creates a fresh database with schema, lets fill populate it in one
// transaction and returns the file content.
func build(ctx context.Context, schema string, fill func(tx *sql.Tx) error) ([]byte, error) {
	dir, err := os.MkdirTemp("", "proteonet-*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(dir) }()
	path := filepath.Join(dir, "db.sqlite")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err = fillDB(ctx, db, schema, fill); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err = db.Close(); err != nil {
		return nil, err
	}

	return os.ReadFile(path)
}

func fillDB(ctx context.Context, db *sql.DB, schema string, fill func(tx *sql.Tx) error) (retErr error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fill(tx); err != nil {
		return err
	}

	return tx.Commit()
}

// read materializes content as a database file and passes it to scan.
func read(ctx context.Context, content []byte, scan func(db *sql.DB) error) error {
	dir, err := os.MkdirTemp("", "proteonet-*")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(dir) }()
	path := filepath.Join(dir, "db.sqlite")
	if err = os.WriteFile(path, content, 0o600); err != nil {
		return err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer func() { _ = db.Close() }()
	if err = db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return scan(db)
}

// queryEach runs query and calls fn for every row after scanning into dest.
func queryEach(ctx context.Context, db *sql.DB, query string, dest []any, fn func() error) error {
	return queryEachArgs(ctx, db, query, nil, dest, fn)
}

// queryEachArgs is queryEach with bound query arguments.
func queryEachArgs(ctx context.Context, db *sql.DB, query string, args, dest []any, fn func() error) error {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		if err = rows.Scan(dest...); err != nil {
			return fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		if err = fn(); err != nil {
			return err
		}
	}

	return rows.Err()
}

func fromNullable(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}

	return v.Float64
}
