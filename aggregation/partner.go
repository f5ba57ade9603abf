// SPDX-License-Identifier: MIT

package aggregation

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/katalvlaran/proteonet/dataset"
)

// collect groups the qualifying partner values per (sample, entity).
//
// Implementation:
//   - Stage 1: infer mol→partner and join partnerColumn onto every relation row.
//   - Stage 2: partner degrees are taken from the same relation, so they
//     count partners of this mapping only.
//   - Stage 3: drop missing values, drop non-unique partners when requested,
//     exponentiate in log mode.
func collect(ds *dataset.Dataset, mol, mapping, partnerColumn string, o Options) (map[dataset.Key][]float64, error) {
	rel, err := ds.MoleculeSet().InferMapping(mol, mapping)
	if err != nil {
		return nil, err
	}
	mapped, err := ds.GetMapped(mol, mapping, nil, []string{partnerColumn})
	if err != nil {
		return nil, err
	}
	deg := rel.Swap().FromDegrees()
	vals := mapped.Columns[partnerColumn]

	groups := make(map[dataset.Key][]float64)
	for i := 0; i < mapped.Len(); i++ {
		v := vals[i]
		if ds.IsMissing(v) {
			continue
		}
		if o.onlyUnique && deg[mapped.PartnerIDs[i]] != 1 {
			continue
		}
		if o.log {
			v = math.Exp(v)
		}
		k := dataset.Key{Sample: mapped.Samples[i], ID: mapped.IDs[i]}
		groups[k] = append(groups[k], v)
	}

	return groups, nil
}

// finish applies the log transform and the optional write-back.
func finish(ds *dataset.Dataset, mol string, res dataset.Flat, o Options) (dataset.Flat, error) {
	if o.log {
		for k, v := range res {
			res[k] = math.Log(v)
		}
	}
	if o.resultColumn != "" {
		if err := ds.SetColumnFlat(mol, o.resultColumn, res, true); err != nil {
			return nil, fmt.Errorf("write %s.%s: %w", mol, o.resultColumn, err)
		}
	}

	return res, nil
}

// PartnerAggregation reduces the qualifying partnerColumn values of every
// (sample, entity of mol) with reducer.
//
// Example: entity E with unique partners P1=3 and P2=5 yields 8 under Sum;
// if P2 also maps to another entity only P1 qualifies (only-unique) and E
// yields 3.
//
// Errors: lookup errors of the mapping and columns, ErrNilReducer.
func PartnerAggregation(ds *dataset.Dataset, mol, mapping, partnerColumn string, reducer Reducer, opts ...Option) (dataset.Flat, error) {
	if reducer == nil {
		return nil, ErrNilReducer
	}
	o := gatherOptions(opts...)
	groups, err := collect(ds, mol, mapping, partnerColumn, o)
	if err != nil {
		return nil, err
	}
	res := make(dataset.Flat, len(groups))
	for k, vals := range groups {
		res[k] = reducer(vals)
	}

	return finish(ds, mol, res, o)
}

// PartnerAggregationMethod is PartnerAggregation with a named method.
//
// Errors: ErrUnknownMethod for names outside the enumeration, before any work.
func PartnerAggregationMethod(ds *dataset.Dataset, mol, mapping, partnerColumn, method string, opts ...Option) (dataset.Flat, error) {
	m, err := ParseMethod(method)
	if err != nil {
		return nil, err
	}

	return PartnerAggregation(ds, mol, mapping, partnerColumn, m.Reducer(), opts...)
}

// PartnerTopNMean averages, per (sample, entity), the topN largest
// qualifying partner values. With skip-if-less-than-n (the default) groups
// holding fewer than topN values are dropped; otherwise the available
// values are averaged.
func PartnerTopNMean(ds *dataset.Dataset, mol, mapping, partnerColumn string, topN int, opts ...Option) (dataset.Flat, error) {
	if topN <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadTopN, topN)
	}
	o := gatherOptions(opts...)
	groups, err := collect(ds, mol, mapping, partnerColumn, o)
	if err != nil {
		return nil, err
	}
	res := make(dataset.Flat, len(groups))
	for k, vals := range groups {
		if o.skipIfLessThanN && len(vals) < topN {
			continue
		}
		slices.SortFunc(vals, func(a, b float64) int { return cmp.Compare(b, a) })
		res[k] = mean(vals[:min(topN, len(vals))])
	}

	return finish(ds, mol, res, o)
}

func mean(xs []float64) float64 {
	var s float64
	for _, v := range xs {
		s += v
	}

	return s / float64(len(xs))
}
