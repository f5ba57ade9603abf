// SPDX-License-Identifier: MIT
//
// File: store.go
// Role: Save and Load a dataset under a blob key prefix.
// Policy: Save replaces whatever was stored under the prefix; Load restores
// sample order from the sidecar and falls back to the sorted listing when
// the sidecar is absent.

package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/proteonet/blob"
	"github.com/katalvlaran/proteonet/dataset"
	"github.com/katalvlaran/proteonet/molecule"
)

const (
	setKey     = "molecule_set.db"
	infoKey    = "dataset_info.json"
	samplesDir = "samples"
	sampleExt  = ".db"
)

type options struct {
	logger      *zap.Logger
	concurrency int
	setOptions  []molecule.SetOption
}

// Option configures Save and Load.
type Option func(*options)

// WithLogger sets the logger for per-sample progress (default no-op).
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConcurrency bounds the number of sample stores processed at once
// (default GOMAXPROCS); n < 1 is ignored.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithSetOptions passes options to the molecule.Set rebuilt by Load.
func WithSetOptions(opts ...molecule.SetOption) Option {
	return func(o *options) { o.setOptions = append(o.setOptions, opts...) }
}

func gather(opts []Option) options {
	o := options{logger: zap.NewNop(), concurrency: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

func validSampleName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrBadSampleName, name)
	}

	return nil
}

func sampleKey(prefix, name string) string {
	return blob.Join(prefix, samplesDir, name+sampleExt)
}

// Save writes ds under prefix and returns the sidecar it stored.
//
// Implementation:
//   - Stage 1: validate every sample name.
//   - Stage 2: encode and upload the molecule set; encode the samples, then
//     upload them with bounded concurrency.
//   - Stage 3: drop sample stores of an earlier save that ds no longer has.
//   - Stage 4: upload the sidecar last, so a reader never sees a sidecar
//     naming samples that are not yet stored.
//
// Errors: ErrNilDataset, ErrBadSampleName, blob and SQLite errors (wrapped).
func Save(ctx context.Context, bs blob.Store, prefix string, ds *dataset.Dataset, opts ...Option) (Info, error) {
	if ds == nil {
		return Info{}, ErrNilDataset
	}
	o := gather(opts)
	names := ds.Names()
	for _, name := range names {
		if err := validSampleName(name); err != nil {
			return Info{}, err
		}
	}

	content, err := encodeSet(ctx, ds.MoleculeSet())
	if err != nil {
		return Info{}, fmt.Errorf("encode molecule set: %w", err)
	}
	if err = bs.Put(ctx, blob.Join(prefix, setKey), bytes.NewReader(content)); err != nil {
		return Info{}, err
	}

	// encoding reads sample frames, which may be created lazily; keep it sequential
	encoded := make([][]byte, len(names))
	for i, smp := range ds.Samples() {
		if encoded[i], err = encodeSample(ctx, smp); err != nil {
			return Info{}, fmt.Errorf("encode sample %q: %w", smp.Name(), err)
		}
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, name := range names {
		g.Go(func() error {
			if err := bs.Put(gctx, sampleKey(prefix, name), bytes.NewReader(encoded[i])); err != nil {
				return err
			}
			o.logger.Debug("sample stored", zap.String("sample", name), zap.Int("bytes", len(encoded[i])))
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return Info{}, err
	}

	if err = pruneSamples(ctx, bs, prefix, names); err != nil {
		return Info{}, err
	}

	info := Info{MissingValue: Float(ds.MissingValue()), Revision: uuid.NewString(), Samples: names}
	raw, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return Info{}, err
	}
	if err = bs.Put(ctx, blob.Join(prefix, infoKey), bytes.NewReader(raw)); err != nil {
		return Info{}, err
	}
	o.logger.Info("dataset saved",
		zap.String("prefix", prefix),
		zap.String("revision", info.Revision),
		zap.Int("samples", len(names)))

	return info, nil
}

// pruneSamples deletes sample stores under prefix whose name is not in keep.
func pruneSamples(ctx context.Context, bs blob.Store, prefix string, keep []string) error {
	stored, err := listSamples(ctx, bs, prefix)
	if err != nil {
		return err
	}
	wanted := make(map[string]struct{}, len(keep))
	for _, n := range keep {
		wanted[n] = struct{}{}
	}
	for _, n := range stored {
		if _, ok := wanted[n]; ok {
			continue
		}
		if _, err = bs.Delete(ctx, sampleKey(prefix, n)); err != nil {
			return err
		}
	}

	return nil
}

// listSamples returns the names of the sample stores under prefix, sorted.
func listSamples(ctx context.Context, bs blob.Store, prefix string) ([]string, error) {
	dir := blob.Join(prefix, samplesDir) + "/"
	keys, err := bs.List(ctx, dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, k := range keys {
		rest := strings.TrimPrefix(k, dir)
		if strings.Contains(rest, "/") || !strings.HasSuffix(rest, sampleExt) {
			continue
		}
		names = append(names, strings.TrimSuffix(rest, sampleExt))
	}

	return names, nil
}

func fetch(ctx context.Context, bs blob.Store, key string) ([]byte, error) {
	rc, err := bs.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}

// loadInfo reads the sidecar; an absent sidecar yields a NaN sentinel and
// the sorted sample listing.
func loadInfo(ctx context.Context, bs blob.Store, prefix string) (Info, error) {
	raw, err := fetch(ctx, bs, blob.Join(prefix, infoKey))
	if errors.Is(err, blob.ErrNotFound) {
		names, err := listSamples(ctx, bs, prefix)
		if err != nil {
			return Info{}, err
		}
		return Info{MissingValue: Float(math.NaN()), Samples: names}, nil
	}
	if err != nil {
		return Info{}, err
	}
	var info Info
	if err = json.Unmarshal(raw, &info); err != nil {
		if errors.Is(err, ErrCorrupt) {
			return Info{}, err
		}
		return Info{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, infoKey, err)
	}
	for _, name := range info.Samples {
		if err = validSampleName(name); err != nil {
			return Info{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}

	return info, nil
}

// Load reads the dataset stored under prefix.
//
// Implementation:
//   - Stage 1: read the sidecar (or list sample stores when it is absent).
//   - Stage 2: rebuild the molecule set.
//   - Stage 3: fetch and decode sample stores with bounded concurrency.
//   - Stage 4: create samples sequentially in sidecar order.
//
// Errors: blob.ErrNotFound when the molecule set or a listed sample is
// absent, ErrCorrupt for undecodable content, dataset errors (wrapped).
func Load(ctx context.Context, bs blob.Store, prefix string, opts ...Option) (*dataset.Dataset, Info, error) {
	o := gather(opts)
	info, err := loadInfo(ctx, bs, prefix)
	if err != nil {
		return nil, Info{}, err
	}

	content, err := fetch(ctx, bs, blob.Join(prefix, setKey))
	if err != nil {
		return nil, Info{}, fmt.Errorf("molecule set: %w", err)
	}
	set, err := decodeSet(ctx, content, o.setOptions...)
	if err != nil {
		return nil, Info{}, fmt.Errorf("molecule set: %w", err)
	}
	ds, err := dataset.New(set, dataset.WithMissingValue(float64(info.MissingValue)), dataset.WithLogger(o.logger))
	if err != nil {
		return nil, Info{}, err
	}

	decoded := make([]map[string]map[string]dataset.Series, len(info.Samples))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, name := range info.Samples {
		g.Go(func() error {
			content, err := fetch(gctx, bs, sampleKey(prefix, name))
			if err != nil {
				return fmt.Errorf("sample %q: %w", name, err)
			}
			if decoded[i], err = decodeSample(gctx, content); err != nil {
				return fmt.Errorf("sample %q: %w", name, err)
			}
			o.logger.Debug("sample loaded", zap.String("sample", name))
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, Info{}, err
	}

	for i, name := range info.Samples {
		if _, err = ds.CreateSample(name, decoded[i]); err != nil {
			return nil, Info{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}
	o.logger.Info("dataset loaded",
		zap.String("prefix", prefix),
		zap.String("revision", info.Revision),
		zap.Int("samples", len(info.Samples)))

	return ds, info, nil
}
