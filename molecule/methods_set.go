// SPDX-License-Identifier: MIT
//
// File: methods_set.go
// Role: Set construction, registration, lookup, inference and structural edits.
// Policy:
//   - Every structural mutation purges the projection cache.
//   - Lookups fail fast with sentinel errors; nothing is coerced.

package molecule

import (
	"fmt"
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// NewSet creates an empty Set.
func NewSet(opts ...SetOption) *Set {
	s := &Set{
		tables:    make(map[string]*Table),
		cacheSize: DefaultCacheSize,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = newProjectionCache(s.cacheSize)

	return s
}

// newProjectionCache returns nil (caching disabled) for size <= 0.
func newProjectionCache(size int) *lru.Cache[projKey, *Graph] {
	if size <= 0 {
		return nil
	}
	c, err := lru.New[projKey, *Graph](size)
	if err != nil {
		return nil
	}

	return c
}

// invalidate drops every cached projection.
func (s *Set) invalidate(reason string) {
	if s.cache == nil {
		return
	}
	if n := s.cache.Len(); n > 0 {
		s.logger.Debug("projection cache purged", zap.String("reason", reason), zap.Int("entries", n))
	}
	s.cache.Purge()
	s.metrics.invalidation()
}

// AddMolecule registers table under name.
//
// Errors: ErrEmptyName, ErrNilTable, ErrDuplicateMolecule.
func (s *Set) AddMolecule(name string, t *Table) error {
	if name == "" {
		return ErrEmptyName
	}
	if t == nil {
		return ErrNilTable
	}
	if _, ok := s.tables[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateMolecule, name)
	}
	s.order = append(s.order, name)
	s.tables[name] = t
	s.invalidate("add molecule")

	return nil
}

// AddMapping registers a copy of m; later edits to m do not reach the set.
//
// Errors:
//   - ErrMoleculeNotFound if either side is not a registered molecule type.
//   - ErrUnknownID if a row references an id absent from its table.
//   - ErrDuplicateMapping if a mapping with the same name already joins the same types.
func (s *Set) AddMapping(m *Mapping) error {
	if m == nil {
		return ErrNilTable
	}
	ta, ok := s.tables[m.a]
	if !ok {
		return fmt.Errorf("%w: %q (mapping %q)", ErrMoleculeNotFound, m.a, m.name)
	}
	tb, ok := s.tables[m.b]
	if !ok {
		return fmt.Errorf("%w: %q (mapping %q)", ErrMoleculeNotFound, m.b, m.name)
	}
	for _, p := range m.pairs {
		if !ta.Has(p.A) {
			return fmt.Errorf("%w: %s %q in mapping %q", ErrUnknownID, m.a, p.A, m.name)
		}
		if !tb.Has(p.B) {
			return fmt.Errorf("%w: %s %q in mapping %q", ErrUnknownID, m.b, p.B, m.name)
		}
	}
	for _, have := range s.mappings {
		if have.name == m.name && have.joins(m.a, m.b) {
			return fmt.Errorf("%w: %q between %q and %q", ErrDuplicateMapping, m.name, m.a, m.b)
		}
	}
	s.mappings = append(s.mappings, m.Clone())
	s.invalidate("add mapping")

	return nil
}

// SetMappingAttr adds or replaces edge attribute attr of mapping name
// between a and b. vals follow the canonical row order.
//
// Errors: ErrMappingNotFound, ErrEmptyName, ErrLengthMismatch.
func (s *Set) SetMappingAttr(name, a, b, attr string, vals []float64) error {
	for _, m := range s.mappings {
		if m.name != name || !m.joins(a, b) {
			continue
		}
		if err := m.SetAttr(attr, vals); err != nil {
			return err
		}
		s.invalidate("set mapping attribute")

		return nil
	}

	return fmt.Errorf("%w: %q between %q and %q", ErrMappingNotFound, name, a, b)
}

// Molecules returns the registered molecule types in registration order.
func (s *Set) Molecules() []string { return slices.Clone(s.order) }

// Table returns the entity table of molecule.
func (s *Set) Table(molecule string) (*Table, error) {
	t, ok := s.tables[molecule]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMoleculeNotFound, molecule)
	}

	return t, nil
}

// NumberMolecules returns the number of entities of molecule.
func (s *Set) NumberMolecules(molecule string) (int, error) {
	t, err := s.Table(molecule)
	if err != nil {
		return 0, err
	}

	return t.Len(), nil
}

// Mappings returns the distinct mapping names in registration order.
func (s *Set) Mappings() []string {
	var names []string
	for _, m := range s.mappings {
		if !slices.Contains(names, m.name) {
			names = append(names, m.name)
		}
	}

	return names
}

// AllMappings returns copies of every registered mapping in registration order.
func (s *Set) AllMappings() []*Mapping {
	out := make([]*Mapping, len(s.mappings))
	for i, m := range s.mappings {
		out[i] = m.Clone()
	}

	return out
}

// GetMapping returns mapping name between a and b oriented a→b.
//
// Errors: ErrMappingNotFound when no mapping with that name joins a and b.
func (s *Set) GetMapping(a, b, name string) (Relation, error) {
	for _, m := range s.mappings {
		if m.name == name && m.joins(a, b) {
			return m.orient(a), nil
		}
	}

	return Relation{}, fmt.Errorf("%w: %q between %q and %q", ErrMappingNotFound, name, a, b)
}

// InferMapping resolves the partner type of molecule under mapping and
// returns the relation oriented molecule→partner.
//
// Implementation:
//   - Stage 1: collect the mappings named mapping that touch molecule.
//   - Stage 2: if none, treat mapping as a partner molecule type and collect
//     the mappings joining the two types regardless of name.
//   - Stage 3: exactly one candidate resolves; more is ambiguous; none is absent.
//
// Errors: ErrMoleculeNotFound, ErrAmbiguousMapping, ErrMappingNotFound.
func (s *Set) InferMapping(molecule, mapping string) (Relation, error) {
	if _, ok := s.tables[molecule]; !ok {
		return Relation{}, fmt.Errorf("%w: %q", ErrMoleculeNotFound, molecule)
	}
	var found []*Mapping
	for _, m := range s.mappings {
		if m.name == mapping && m.touches(molecule) {
			found = append(found, m)
		}
	}
	if len(found) == 0 {
		if _, ok := s.tables[mapping]; ok {
			for _, m := range s.mappings {
				if m.joins(molecule, mapping) {
					found = append(found, m)
				}
			}
		}
	}

	switch len(found) {
	case 0:
		return Relation{}, fmt.Errorf("%w: %q for molecule %q", ErrMappingNotFound, mapping, molecule)
	case 1:
		return found[0].orient(molecule), nil
	default:
		partners := make([]string, 0, len(found))
		for _, m := range found {
			partners = append(partners, m.name+":"+m.partner(molecule))
		}
		return Relation{}, fmt.Errorf("%w: %q for molecule %q resolves to %v", ErrAmbiguousMapping, mapping, molecule, partners)
	}
}

// MappingDegrees returns, per entity of molecule in canonical order, the
// number of distinct partners under mapping (zero when unmapped).
//
// Invariant: summed over either side, degrees equal the relation row count.
func (s *Set) MappingDegrees(molecule, mapping string) ([]int, error) {
	rel, err := s.InferMapping(molecule, mapping)
	if err != nil {
		return nil, err
	}
	deg := rel.FromDegrees()
	t := s.tables[molecule]
	out := make([]int, t.Len())
	for i, id := range t.ids {
		out[i] = deg[id]
	}

	return out, nil
}

// RenameMolecule renames molecule type old to renamed in tables and mappings.
func (s *Set) RenameMolecule(old, renamed string) error {
	t, ok := s.tables[old]
	if !ok {
		return fmt.Errorf("%w: %q", ErrMoleculeNotFound, old)
	}
	if renamed == "" {
		return ErrEmptyName
	}
	if old == renamed {
		return nil
	}
	if _, clash := s.tables[renamed]; clash {
		return fmt.Errorf("%w: %q", ErrDuplicateMolecule, renamed)
	}
	delete(s.tables, old)
	s.tables[renamed] = t
	s.order[slices.Index(s.order, old)] = renamed
	for _, m := range s.mappings {
		if m.a == old {
			m.a = renamed
		}
		if m.b == old {
			m.b = renamed
		}
	}
	s.invalidate("rename molecule")
	s.renameHooks = slices.DeleteFunc(s.renameHooks, func(h RenameHook) bool {
		return !h(old, renamed)
	})

	return nil
}

// OnRenameMolecule registers h to follow molecule renames of s. Copies and
// subsets of s start without hooks.
func (s *Set) OnRenameMolecule(h RenameHook) {
	if h != nil {
		s.renameHooks = append(s.renameHooks, h)
	}
}

// RenameMapping renames every mapping called old to renamed.
//
// Errors: ErrMappingNotFound, ErrDuplicateMapping when renamed already joins one of the same type pairs.
func (s *Set) RenameMapping(old, renamed string) error {
	if renamed == "" {
		return ErrEmptyName
	}
	var hit []*Mapping
	for _, m := range s.mappings {
		if m.name == old {
			hit = append(hit, m)
		}
	}
	if len(hit) == 0 {
		return fmt.Errorf("%w: %q", ErrMappingNotFound, old)
	}
	if old == renamed {
		return nil
	}
	for _, m := range hit {
		for _, other := range s.mappings {
			if other.name == renamed && other.joins(m.a, m.b) {
				return fmt.Errorf("%w: %q between %q and %q", ErrDuplicateMapping, renamed, m.a, m.b)
			}
		}
	}
	for _, m := range hit {
		m.name = renamed
	}
	s.invalidate("rename mapping")

	return nil
}

// Copy returns an independent deep copy with an empty projection cache.
func (s *Set) Copy() *Set {
	keep := make(map[string][]string)
	out, _ := s.subset(keep, false)

	return out
}

// Subset returns a copy restricted to the given ids per molecule type.
// Molecule types absent from keep retain all their entities. Every mapping
// is down-filtered to rows whose both endpoints survive.
//
// Errors: ErrMoleculeNotFound, ErrUnknownID.
func (s *Set) Subset(keep map[string][]string) (*Set, error) {
	return s.subset(keep, true)
}

func (s *Set) subset(keep map[string][]string, filter bool) (*Set, error) {
	for mol := range keep {
		if _, ok := s.tables[mol]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMoleculeNotFound, mol)
		}
	}
	out := &Set{
		order:     slices.Clone(s.order),
		tables:    make(map[string]*Table, len(s.tables)),
		cacheSize: s.cacheSize,
		cache:     newProjectionCache(s.cacheSize),
		metrics:   s.metrics,
		logger:    s.logger,
	}
	for _, name := range s.order {
		ids, restrict := keep[name]
		if !filter || !restrict {
			out.tables[name] = s.tables[name].Clone()
			continue
		}
		t, err := s.tables[name].Subset(ids)
		if err != nil {
			return nil, fmt.Errorf("subset %q: %w", name, err)
		}
		out.tables[name] = t
	}
	for _, m := range s.mappings {
		ta, tb := out.tables[m.a], out.tables[m.b]
		out.mappings = append(out.mappings, m.filter(func(p Pair) bool {
			return ta.Has(p.A) && tb.Has(p.B)
		}))
	}

	return out, nil
}
