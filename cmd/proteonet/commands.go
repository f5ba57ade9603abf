// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/katalvlaran/proteonet/aggregation"
	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/graph"
	"github.com/katalvlaran/proteonet/masked"
	"github.com/katalvlaran/proteonet/matrix"
	"github.com/katalvlaran/proteonet/store"
	"github.com/katalvlaran/proteonet/tabular"
)

func runImport(ctx context.Context, a *app, args []string) error {
	fs := a.flags("import")
	in := fs.String("in", "", "long table to read")
	prefix := fs.String("prefix", "", "blob key prefix to store the dataset under")
	mol := fs.String("molecule", "peptide", "molecule type of the rows")
	samples := fs.String("samples", "", "comma-separated sample columns")
	id := fs.String("id", "", "id column (default: row number)")
	result := fs.String("result-column", dataset.DefaultColumn, "value column of every sample")
	mapCol := fs.String("mapping-column", "", "column listing partner ids")
	sep := fs.String("mapping-sep", tabular.DefaultMappingSep, "separator of partner ids")
	mapMol := fs.String("mapping-molecule", tabular.DefaultMappingMolecule, "molecule type of the partners")
	mapName := fs.String("mapping-name", tabular.DefaultMappingName, "name of the created mapping")
	delim := fs.String("delimiter", "tab", `field delimiter: "tab" or a single character`)
	if err := parse(fs, args); err != nil {
		return err
	}
	for name, v := range map[string]string{"in": *in, "prefix": *prefix, "samples": *samples} {
		if err := required(name, v); err != nil {
			return err
		}
	}
	comma, err := parseDelimiter(*delim)
	if err != nil {
		return err
	}

	f, err := os.Open(*in)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	ds, err := tabular.ReadMapped(f, tabular.MappedOptions{
		Molecule:        *mol,
		SampleColumns:   splitList(*samples),
		IDColumn:        *id,
		ResultColumn:    *result,
		MappingColumn:   *mapCol,
		MappingSep:      *sep,
		MappingMolecule: *mapMol,
		MappingName:     *mapName,
		Delimiter:       comma,
		DatasetOptions:  []dataset.Option{dataset.WithMissingValue(a.cfg.MissingValue), dataset.WithLogger(a.log)},
		SetOptions:      a.setOptions(),
		Logger:          a.log,
	})
	if err != nil {
		return fmt.Errorf("read %s: %w", *in, err)
	}

	return a.save(ctx, *prefix, ds)
}

func runImportTables(ctx context.Context, a *app, args []string) error {
	fs := a.flags("import-tables")
	var tables, ids, attrs, maps keyValues
	fs.Var(&tables, "table", "molecule=path of one table (repeatable)")
	fs.Var(&ids, "id", "molecule=id column (repeatable; default: row number)")
	fs.Var(&attrs, "attributes", "molecule=comma-separated attribute columns (repeatable)")
	fs.Var(&maps, "map", "from.column=to[.key] mapping; keys match to's ids without .key (repeatable)")
	prefix := fs.String("prefix", "", "blob key prefix to store the dataset under")
	samples := fs.String("samples", "", "comma-separated sample columns present in every table")
	result := fs.String("result-column", dataset.DefaultColumn, "value column of every sample")
	sep := fs.String("mapping-sep", tabular.DefaultMappingSep, "separator of mapping keys")
	delim := fs.String("delimiter", "tab", `field delimiter: "tab" or a single character`)
	if err := parse(fs, args); err != nil {
		return err
	}
	for name, v := range map[string]string{"prefix": *prefix, "samples": *samples} {
		if err := required(name, v); err != nil {
			return err
		}
	}
	if len(tables) == 0 {
		return usageError{msg: "flag -table is required"}
	}
	comma, err := parseDelimiter(*delim)
	if err != nil {
		return err
	}

	opts := tabular.TablesOptions{
		SampleColumns:  splitList(*samples),
		MappingSep:     *sep,
		ResultColumn:   *result,
		Delimiter:      comma,
		DatasetOptions: []dataset.Option{dataset.WithMissingValue(a.cfg.MissingValue), dataset.WithLogger(a.log)},
		SetOptions:     a.setOptions(),
		Logger:         a.log,
	}
	idOf, attrsOf := ids.lookup(), attrs.lookup()
	for _, kv := range tables {
		mol, path, _ := strings.Cut(kv, "=")
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		opts.Tables = append(opts.Tables, tabular.TableSource{
			Molecule:         mol,
			Reader:           f,
			IDColumn:         idOf[mol],
			AttributeColumns: splitList(attrsOf[mol]),
		})
	}
	for _, kv := range maps {
		from, to, _ := strings.Cut(kv, "=")
		fromMol, fromCol, ok := strings.Cut(from, ".")
		if !ok {
			return usageError{msg: fmt.Sprintf("flag -map: %q has no source column", kv)}
		}
		toMol, key, _ := strings.Cut(to, ".")
		opts.Mappings = append(opts.Mappings, tabular.MappingSource{From: fromMol, FromColumn: fromCol, To: toMol, KeyColumn: key})
	}

	ds, err := tabular.ReadTables(opts)
	if err != nil {
		return fmt.Errorf("read tables: %w", err)
	}

	return a.save(ctx, *prefix, ds)
}

// save stores ds under prefix and reports the revision.
func (a *app) save(ctx context.Context, prefix string, ds *dataset.Dataset) error {
	info, err := store.Save(ctx, a.store, prefix, ds, store.WithLogger(a.log))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "stored %d samples under %s (revision %s)\n", len(info.Samples), prefix, info.Revision)

	return nil
}

// keyValues is a repeatable key=value flag.
type keyValues []string

func (k *keyValues) String() string { return strings.Join(*k, " ") }

func (k *keyValues) Set(v string) error {
	key, val, ok := strings.Cut(v, "=")
	if !ok || key == "" || val == "" {
		return fmt.Errorf("%q is not key=value", v)
	}
	*k = append(*k, v)

	return nil
}

// lookup returns the pairs as a map; a repeated key keeps its last value.
func (k keyValues) lookup() map[string]string {
	out := make(map[string]string, len(k))
	for _, kv := range k {
		key, val, _ := strings.Cut(kv, "=")
		out[key] = val
	}

	return out
}

func parseDelimiter(v string) (rune, error) {
	if v == "tab" {
		return '\t', nil
	}
	r := []rune(v)
	if len(r) != 1 {
		return 0, usageError{msg: fmt.Sprintf("flag -delimiter: %q is not a single character", v)}
	}

	return r[0], nil
}

func (a *app) load(ctx context.Context, prefix string) (*dataset.Dataset, store.Info, error) {
	return store.Load(ctx, a.store, prefix, store.WithLogger(a.log), store.WithSetOptions(a.setOptions()...))
}

func runInfo(ctx context.Context, a *app, args []string) error {
	fs := a.flags("info")
	prefix := fs.String("prefix", "", "blob key prefix of the dataset")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("prefix", *prefix); err != nil {
		return err
	}
	ds, info, err := a.load(ctx, *prefix)
	if err != nil {
		return err
	}

	w := a.stdout
	fmt.Fprintf(w, "revision: %s\n", info.Revision)
	fmt.Fprintf(w, "missing value: %s\n", strconv.FormatFloat(ds.MissingValue(), 'g', -1, 64))
	fmt.Fprintf(w, "samples: %d\n", ds.Len())
	for _, mol := range ds.Molecules() {
		n, _ := ds.NumberMolecules(mol)
		fmt.Fprintf(w, "molecule %s: %d\n", mol, n)
	}
	for _, m := range ds.MoleculeSet().AllMappings() {
		fmt.Fprintf(w, "mapping %s: %s-%s, %d rows\n", m.Name(), m.A(), m.B(), m.Len())
	}
	for _, s := range ds.Samples() {
		for _, mol := range ds.Molecules() {
			cols, _ := s.Columns(mol)
			for _, c := range cols {
				vals, _ := s.Column(mol, c)
				present := 0
				for _, v := range vals {
					if !ds.IsMissing(v) {
						present++
					}
				}
				fmt.Fprintf(w, "sample %s %s.%s: %d/%d present\n", s.Name(), mol, c, present, len(vals))
			}
		}
	}

	return nil
}

func runAggregate(ctx context.Context, a *app, args []string) error {
	fs := a.flags("aggregate")
	prefix := fs.String("prefix", "", "blob key prefix of the dataset")
	mol := fs.String("molecule", "protein", "molecule type receiving the aggregate")
	mapping := fs.String("mapping", a.cfg.Graph.Mapping, "mapping joining the molecule type to its partners")
	column := fs.String("column", dataset.DefaultColumn, "partner value column")
	method := fs.String("method", aggregation.Sum.String(), "reduction: sum, mean, median, min, max")
	topN := fs.Int("top-n", 0, "average the n largest partner values instead of -method")
	result := fs.String("result", "aggregated_"+dataset.DefaultColumn, "value column written on the molecule type")
	onlyUnique := fs.Bool("only-unique", aggregation.DefaultOnlyUnique, "use only partners mapped to a single entity")
	logScale := fs.Bool("log", false, "partner values are log-scale")
	skip := fs.Bool("skip-less-than-n", aggregation.DefaultSkipIfLessThanN, "with -top-n, drop groups with fewer than n values")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("prefix", *prefix); err != nil {
		return err
	}
	if err := required("result", *result); err != nil {
		return err
	}

	ds, _, err := a.load(ctx, *prefix)
	if err != nil {
		return err
	}
	opts := []aggregation.Option{
		aggregation.WithOnlyUnique(*onlyUnique),
		aggregation.WithLog(*logScale),
		aggregation.WithResultColumn(*result),
		aggregation.WithSkipIfLessThanN(*skip),
	}
	var res dataset.Flat
	if *topN != 0 {
		res, err = aggregation.PartnerTopNMean(ds, *mol, *mapping, *column, *topN, opts...)
	} else {
		res, err = aggregation.PartnerAggregationMethod(ds, *mol, *mapping, *column, *method, opts...)
	}
	if err != nil {
		return err
	}
	info, err := store.Save(ctx, a.store, *prefix, ds, store.WithLogger(a.log))
	if err != nil {
		return err
	}
	a.log.Info("aggregated",
		zap.String("molecule", *mol),
		zap.String("result", *result),
		zap.Int("values", len(res)))
	fmt.Fprintf(a.stdout, "wrote %d values to %s.%s (revision %s)\n", len(res), *mol, *result, info.Revision)

	return nil
}

func runExport(ctx context.Context, a *app, args []string) error {
	fs := a.flags("export")
	prefix := fs.String("prefix", "", "blob key prefix of the dataset")
	dir := fs.String("dir", "", "output directory")
	mols := fs.String("molecules", "protein,peptide", "comma-separated molecule types")
	cols := fs.String("columns", dataset.DefaultColumn, "comma-separated value columns")
	na := fs.String("na", tabular.DefaultNARep, "representation of missing values")
	if err := parse(fs, args); err != nil {
		return err
	}
	for name, v := range map[string]string{"prefix": *prefix, "dir": *dir} {
		if err := required(name, v); err != nil {
			return err
		}
	}

	ds, _, err := a.load(ctx, *prefix)
	if err != nil {
		return err
	}
	paths, err := tabular.WriteTSVs(*dir, ds, splitList(*mols), splitList(*cols), *na)
	for _, p := range paths {
		fmt.Fprintln(a.stdout, p)
	}

	return err
}

func runGraph(ctx context.Context, a *app, args []string) error {
	fs := a.flags("graph")
	prefix := fs.String("prefix", "", "blob key prefix of the dataset")
	maskMol := fs.String("mask-molecule", "protein", "molecule type of -mask-ids")
	maskIDs := fs.String("mask-ids", "", "comma-separated ids masked in every sample")
	hiddenIDs := fs.String("hidden-ids", "", "comma-separated ids hidden in every sample")
	metricsFile := fs.String("metrics-file", "", "write projection cache metrics in text format to this file")
	if err := parse(fs, args); err != nil {
		return err
	}
	if err := required("prefix", *prefix); err != nil {
		return err
	}

	ds, _, err := a.load(ctx, *prefix)
	if err != nil {
		return err
	}
	md, err := masked.New(ds)
	if err != nil {
		return err
	}
	// an empty mask still covers every sample, so every sample yields a graph
	if err = md.SetMaskIDs(*maskMol, masked.IDs{Broadcast: splitList(*maskIDs)}); err != nil {
		return err
	}
	if ids := splitList(*hiddenIDs); len(ids) > 0 {
		if err = md.SetHiddenIDs(*maskMol, masked.IDs{Broadcast: ids}); err != nil {
			return err
		}
	}

	gc := a.cfg.Graph
	gds, err := md.GraphDataset(graph.Config{
		Mapping:            gc.Mapping,
		Bidirectional:      gc.Bidirectional,
		FeatureColumns:     gc.FeatureColumns,
		TargetColumn:       gc.TargetColumn,
		MissingColumnValue: gc.MissingColumnValue,
		Logger:             a.log,
	})
	if err != nil {
		return err
	}
	proj := gds.Projection()
	fmt.Fprintf(a.stdout, "projection %s: %d nodes, %d edges, types %v\n",
		gc.Mapping, proj.NumNodes(), proj.NumEdges(), proj.Types())
	if groups, ok := proj.Groups(*maskMol); ok {
		fmt.Fprintf(a.stdout, "groups %s: %d\n", *maskMol, len(groups))
	}
	for g, err := range gds.All() {
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "sample %s: features %dx%d, target %s, masked %d, hidden %d\n",
			g.Sample, g.Features.Rows(), g.Features.Cols(), present(g.Target, ds), count(g.Mask), count(g.Hidden))
	}

	if *metricsFile != "" {
		if err = prometheus.WriteToTextfile(*metricsFile, a.reg); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}

	return nil
}

func count(flags []bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}

	return n
}

// present formats how many target rows hold a value.
func present(t *matrix.Dense, ds *dataset.Dataset) string {
	vals := t.Data()
	n := 0
	for _, v := range vals {
		if !ds.IsMissing(v) && !math.IsNaN(v) {
			n++
		}
	}

	return fmt.Sprintf("%d/%d", n, len(vals))
}
