// SPDX-License-Identifier: MIT
//
// File: write.go
// Role: wide TSV export.

package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/katalvlaran/proteonet/dataset"
)

// DefaultNARep is written for missing cells.
const DefaultNARep = "NA"

// WriteWide writes w as a tab-separated table: an "id" header column, then
// one column per sample. Cells that are missing under the missing sentinel
// are written as naRep.
func WriteWide(out io.Writer, w *dataset.Wide, missing float64, naRep string) error {
	cw := csv.NewWriter(out)
	cw.Comma = '\t'

	samples := w.Samples()
	rec := make([]string, 0, len(samples)+1)
	rec = append(rec, "id")
	rec = append(rec, samples...)
	if err := cw.Write(rec); err != nil {
		return err
	}
	vals := w.Values()
	for i, id := range w.IDs() {
		row, err := vals.Row(i)
		if err != nil {
			return err
		}
		rec = append(rec[:0], id)
		for _, v := range row {
			if dataset.IsMissing(v, missing) {
				rec = append(rec, naRep)
				continue
			}
			rec = append(rec, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// FileName returns the export file name of (molecule, column).
func FileName(molecule, column string) string {
	return molecule + "_" + column + ".tsv"
}

// WriteTSVs writes <dir>/<molecule>_<column>.tsv for every requested pair,
// creating dir when needed. It returns the written paths.
//
// Errors: dataset errors for unknown molecules or samples lacking a column,
// filesystem errors; all wrapped with the file name.
func WriteTSVs(dir string, ds *dataset.Dataset, molecules, columns []string, naRep string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for _, mol := range molecules {
		for _, col := range columns {
			p := filepath.Join(dir, FileName(mol, col))
			if err := writeFile(p, ds, mol, col, naRep); err != nil {
				return paths, fmt.Errorf("%s: %w", filepath.Base(p), err)
			}
			paths = append(paths, p)
		}
	}

	return paths, nil
}

func writeFile(path string, ds *dataset.Dataset, mol, col, naRep string) (retErr error) {
	w, err := ds.SamplesValueMatrix(mol, col)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); retErr == nil {
			retErr = cerr
		}
	}()

	return WriteWide(f, w, ds.MissingValue(), naRep)
}
