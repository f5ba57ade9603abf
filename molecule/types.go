// SPDX-License-Identifier: MIT
//
// File: types.go
// Role: Declares Table, Pair, Mapping, Relation, Set, the node projection
// Graph and the Set functional options.

package molecule

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// WeightAttr is the mapping attribute read as edge weight by CreateGraph.
const WeightAttr = "weight"

// DefaultCacheSize bounds the number of cached projections per Set.
const DefaultCacheSize = 16

// Table holds the entities of one molecule type.
//
// IDs are unique, non-empty and kept in insertion order; that order is the
// canonical order every dataset sample aligns to. Attribute columns are
// static entity properties (sequence, gene symbol, ...), not measurements.
type Table struct {
	ids []string
	pos map[string]int

	numeric  map[string][]float64
	text     map[string][]string
	colOrder []string
}

// Pair is one (idA, idB) row of a mapping in canonical orientation.
type Pair struct {
	A string
	B string
}

// Mapping is a named many-to-many relation between molecule types A and B.
//
// Rows are unique: a repeated pair collapses onto its first occurrence.
// Attribute columns are aligned with rows.
type Mapping struct {
	name string
	a, b string

	pairs []Pair
	index map[Pair]int

	attrs     map[string][]float64
	attrOrder []string
}

// Relation is an oriented, read-only view over a Mapping.
// The zero Relation is invalid; obtain one from Set.GetMapping or Set.InferMapping.
type Relation struct {
	m       *Mapping
	swapped bool
}

// EdgeSet is one relation of a node projection: parallel Src/Dst/Weight
// slices over dense node indices.
type EdgeSet struct {
	// Name is the mapping name.
	Name string
	// From and To are the molecule types at the source and destination side.
	From, To string
	// Reverse is true for the mirrored relation added by a bidirectional projection.
	Reverse bool
	Src     []int
	Dst     []int
	Weight  []float64
}

// Graph is the node projection of a Set for one mapping name.
//
// Nodes of molecule type Types()[k] occupy the contiguous index range
// [offsets[k], offsets[k]+sizes[k]) in the canonical ID order of that type,
// so a table position translates to a node index by a single addition.
//
// A Graph returned by CreateGraph may be shared through the projection
// cache and must be treated as read-only.
type Graph struct {
	mapping       string
	bidirectional bool

	types   []string
	typeIdx map[string]int
	offsets []int
	sizes   []int
	tables  []*Table

	edges []EdgeSet
}

// projKey identifies one cached projection.
type projKey struct {
	mapping       string
	bidirectional bool
}

// Set is the registry of molecule tables and mappings.
//
// Molecule types keep registration order; mappings are keyed by name plus
// their unordered molecule pair, so one mapping name may join several type
// pairs (for example "gene" between protein-peptide and protein-mRNA).
type Set struct {
	order    []string
	tables   map[string]*Table
	mappings []*Mapping

	cacheSize int
	cache     *lru.Cache[projKey, *Graph]
	metrics   *CacheMetrics
	logger    *zap.Logger

	renameHooks []RenameHook
}

// RenameHook is called after a molecule type of a Set is renamed.
// Returning false unregisters the hook.
type RenameHook func(old, renamed string) bool

// SetOption configures a Set at construction time.
type SetOption func(*Set)

// WithLogger sets the logger used for projection and cache events.
func WithLogger(l *zap.Logger) SetOption {
	return func(s *Set) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCacheSize sets the projection cache capacity; n <= 0 disables caching.
func WithCacheSize(n int) SetOption {
	return func(s *Set) { s.cacheSize = n }
}

// WithCacheMetrics attaches counters for cache hits, misses and invalidations.
func WithCacheMetrics(m *CacheMetrics) SetOption {
	return func(s *Set) { s.metrics = m }
}
