// SPDX-License-Identifier: MIT

package dataset_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/matrix"
	"github.com/katalvlaran/proteonet/molecule"
)

func TestSamplesValueMatrixOrder(t *testing.T) {
	ds := buildDataset(t)
	w, err := ds.SamplesValueMatrix("peptide", "abundance")
	require.NoError(t, err)
	require.Equal(t, []string{"E1", "E2", "E3"}, w.IDs(), "canonical entity order")
	require.Equal(t, []string{"s1", "s2"}, w.Samples(), "insertion order")
	require.Equal(t, "[3, 4]\n[5, 6]\n[7, NaN]\n", w.Values().String())

	w, err = ds.SamplesValueMatrix("peptide", "abundance", "s2")
	require.NoError(t, err)
	require.Equal(t, []string{"s2"}, w.Samples())

	_, err = ds.SamplesValueMatrix("peptide", "nope")
	require.ErrorIs(t, err, dataset.ErrColumnNotFound)
	_, err = ds.SamplesValueMatrix("peptide", "abundance", "s9")
	require.ErrorIs(t, err, dataset.ErrSampleNotFound)
}

func TestWideFrom(t *testing.T) {
	m, err := matrix.NewFilled(2, 1, 3)
	require.NoError(t, err)
	w, err := dataset.WideFrom([]string{"E1", "E2"}, []string{"s1"}, m)
	require.NoError(t, err)
	v, ok := w.At("E2", "s1")
	require.True(t, ok)
	require.Equal(t, 3.0, v)
	require.Same(t, m, w.Values())

	_, err = dataset.WideFrom([]string{"E1"}, []string{"s1"}, m)
	require.ErrorIs(t, err, dataset.ErrLengthMismatch)
}

func TestWideLongRoundTrip(t *testing.T) {
	for _, missing := range []float64{math.NaN(), -1} {
		ds := buildDataset(t, dataset.WithMissingValue(missing))
		for _, mol := range []string{"peptide", "protein"} {
			w, err := ds.SamplesValueMatrix(mol, "abundance")
			require.NoError(t, err)

			// wide → long → wide
			long := w.Flat(missing, false)
			back, err := long.Wide(w.IDs(), w.Samples(), missing)
			require.NoError(t, err)
			requireSameFlat(t, long, back.Flat(missing, false))

			// long (present only) → wide → long
			sparse := w.Flat(missing, true)
			w2, err := sparse.Wide(w.IDs(), w.Samples(), missing)
			require.NoError(t, err)
			requireSameFlat(t, sparse, w2.Flat(missing, true))
			requireSameFlat(t, long, w2.Flat(missing, false))
		}
	}
}

func TestValuesFlatDropMissing(t *testing.T) {
	ds := buildDataset(t)
	full, err := ds.ValuesFlat("peptide", "abundance", false)
	require.NoError(t, err)
	require.Len(t, full, 6)

	present, err := ds.ValuesFlat("peptide", "abundance", true)
	require.NoError(t, err)
	require.Len(t, present, 5)
	_, ok := present[dataset.Key{Sample: "s2", ID: "E3"}]
	require.False(t, ok)
	require.Equal(t, dataset.Key{Sample: "s1", ID: "E1"}, present.Keys()[0])
}

func TestSetColumnFlatFillMissing(t *testing.T) {
	ds := buildDataset(t)
	partial := dataset.Flat{{Sample: "s1", ID: "E2"}: 50}

	require.NoError(t, ds.SetColumnFlat("peptide", "abundance", partial, false))
	require.Equal(t, []float64{3, 50, 7}, mustColumn(t, ds, "s1", "peptide", "abundance"), "old values kept")

	require.NoError(t, ds.SetColumnFlat("peptide", "abundance", partial, true))
	got := mustColumn(t, ds, "s1", "peptide", "abundance")
	require.True(t, math.IsNaN(got[0]))
	require.Equal(t, 50.0, got[1])
	require.True(t, math.IsNaN(got[2]))
	for _, v := range mustColumn(t, ds, "s2", "peptide", "abundance") {
		require.True(t, math.IsNaN(v), "samples outside the write are reset too")
	}
}

func TestSetColumnFlatNewColumnAndValidation(t *testing.T) {
	ds := buildDataset(t)
	require.NoError(t, ds.SetColumnFlat("protein", "agg", dataset.Flat{{Sample: "s2", ID: "P3"}: 1}, false))
	s1 := mustColumn(t, ds, "s1", "protein", "agg")
	require.True(t, math.IsNaN(s1[2]), "absent column created all-missing")
	require.Equal(t, 1.0, mustColumn(t, ds, "s2", "protein", "agg")[2])

	err := ds.SetColumnFlat("protein", "abundance", dataset.Flat{{Sample: "s1", ID: "P1"}: 0, {Sample: "s9", ID: "P1"}: 0}, true)
	require.ErrorIs(t, err, dataset.ErrSampleNotFound)
	err = ds.SetColumnFlat("protein", "abundance", dataset.Flat{{Sample: "s1", ID: "Q"}: 0}, true)
	require.ErrorIs(t, err, molecule.ErrUnknownID)
	require.Equal(t, 10.0, mustColumn(t, ds, "s1", "protein", "abundance")[0], "rejected writes do not mutate")
}

func TestSetSamplesValueMatrixAlignsRows(t *testing.T) {
	ds := buildDataset(t)
	w, err := dataset.NewWide([]string{"E3", "E1"}, []string{"s2"}, ds.MissingValue())
	require.NoError(t, err)
	require.NoError(t, w.Set("E3", "s2", 30))
	require.NoError(t, w.Set("E1", "s2", 10))

	require.NoError(t, ds.SetSamplesValueMatrix(w, "peptide", "abundance"))
	got := mustColumn(t, ds, "s2", "peptide", "abundance")
	require.Equal(t, 10.0, got[0])
	require.True(t, math.IsNaN(got[1]), "uncovered entity becomes missing")
	require.Equal(t, 30.0, got[2])
	require.Equal(t, []float64{3, 5, 7}, mustColumn(t, ds, "s1", "peptide", "abundance"), "unnamed samples untouched")

	bad, _ := dataset.NewWide([]string{"Q"}, []string{"s1"}, nan)
	require.ErrorIs(t, ds.SetSamplesValueMatrix(bad, "peptide", "abundance"), molecule.ErrUnknownID)
}

func TestFlatWideRejectsForeignKeys(t *testing.T) {
	f := dataset.Flat{{Sample: "x", ID: "E1"}: 1}
	_, err := f.Wide([]string{"E1"}, []string{"s1"}, nan)
	require.ErrorIs(t, err, dataset.ErrSampleNotFound)

	f = dataset.Flat{{Sample: "s1", ID: "E9"}: 1}
	_, err = f.Wide([]string{"E1"}, []string{"s1"}, nan)
	require.ErrorIs(t, err, molecule.ErrUnknownID)
}
