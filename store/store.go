// Package store holds parsed configuration values in a three-level map
// keyed by block type, block name, and key.
//
// A Store only ever grows. Later assignments overwrite earlier ones, but
// nothing is ever removed: a key missing from a reloaded file keeps the
// value it had before. The Store is not safe for concurrent use; callers
// serialize access.
package store

import (
	"sort"

	"github.com/cooper/evented-configuration/value"
)

// SectionType is the reserved block type for unnamed blocks. Addressing a
// block with an empty type or with SectionType reaches the same slot.
const SectionType = "section"

// Block addresses a group of settings by type and name.
type Block struct {
	Type string
	Name string
}

// Section returns the address of an unnamed block.
func Section(name string) Block {
	return Block{Type: SectionType, Name: name}
}

// Named returns the address of a typed block. An empty type addresses an
// unnamed block, as does the literal type "section".
func Named(blockType, name string) Block {
	if blockType == "" {
		blockType = SectionType
	}
	return Block{Type: blockType, Name: name}
}

// String renders the address the way a file header would declare it.
func (b Block) String() string {
	b = b.normalize()
	if b.Type == SectionType {
		return b.Name
	}
	return b.Type + ":" + b.Name
}

func (b Block) normalize() Block {
	if b.Type == "" {
		b.Type = SectionType
	}
	return b
}

// Store is the aggregate mapping blockType -> blockName -> key -> Value.
type Store struct {
	blocks map[string]map[string]map[string]value.Value
}

// New returns an empty Store.
func New() *Store {
	return &Store{blocks: make(map[string]map[string]map[string]value.Value)}
}

// NewFromMap returns a Store backed by seed, taking ownership of the map.
// A nil seed is equivalent to New.
func NewFromMap(seed map[string]map[string]map[string]value.Value) *Store {
	if seed == nil {
		return New()
	}
	return &Store{blocks: seed}
}

// Get returns the value stored for a key and whether it exists.
func (s *Store) Get(b Block, key string) (value.Value, bool) {
	b = b.normalize()
	v, ok := s.blocks[b.Type][b.Name][key]
	return v, ok
}

// HasBlock reports whether the block holds at least one key. Blocks come
// into existence with their first committed key, so a header alone is not
// enough to make HasBlock true.
func (s *Store) HasBlock(b Block) bool {
	b = b.normalize()
	return len(s.blocks[b.Type][b.Name]) > 0
}

// BlockTypes returns every block type with at least one stored key, sorted.
func (s *Store) BlockTypes() []string {
	types := make([]string, 0, len(s.blocks))
	for typ, names := range s.blocks {
		if anyKeys(names) {
			types = append(types, typ)
		}
	}
	sort.Strings(types)
	return types
}

func anyKeys(names map[string]map[string]value.Value) bool {
	for _, keys := range names {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

// Names returns the names of every block of the given type holding at
// least one key, sorted. An empty type means SectionType.
func (s *Store) Names(blockType string) []string {
	if blockType == "" {
		blockType = SectionType
	}
	names := make([]string, 0, len(s.blocks[blockType]))
	for name, keys := range s.blocks[blockType] {
		if len(keys) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Keys returns the keys of a block, sorted. A missing block yields an
// empty slice.
func (s *Store) Keys(b Block) []string {
	b = b.normalize()
	entries := s.blocks[b.Type][b.Name]
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns the values of a block in sorted-key order.
func (s *Store) Values(b Block) []value.Value {
	keys := s.Keys(b)
	b = b.normalize()
	vals := make([]value.Value, len(keys))
	for i, k := range keys {
		vals[i] = s.blocks[b.Type][b.Name][k]
	}
	return vals
}

// Entries returns a copy of a block's key-value map. Mutating the copy
// does not affect the Store.
func (s *Store) Entries(b Block) map[string]value.Value {
	b = b.normalize()
	entries := make(map[string]value.Value, len(s.blocks[b.Type][b.Name]))
	for k, v := range s.blocks[b.Type][b.Name] {
		entries[k] = v
	}
	return entries
}

// Count returns the total number of stored keys across all blocks.
func (s *Store) Count() int {
	n := 0
	for _, names := range s.blocks {
		for _, keys := range names {
			n += len(keys)
		}
	}
	return n
}

// SetIfChanged commits v for the key unless the stored value is already
// equal to it. It is the only mutation the Store supports. The returned
// old value is the previous value, nil when the key was absent; changed
// reports whether a commit happened. Equality follows value.Equal, so
// rewriting a key with an equal value is a no-op.
//
// v must not be nil; absence cannot be assigned.
func (s *Store) SetIfChanged(b Block, key string, v value.Value) (changed bool, old value.Value) {
	if v == nil {
		panic("store: SetIfChanged called with nil value")
	}
	b = b.normalize()
	old = s.blocks[b.Type][b.Name][key]
	if value.Equal(old, v) {
		return false, old
	}
	names, ok := s.blocks[b.Type]
	if !ok {
		names = make(map[string]map[string]value.Value)
		s.blocks[b.Type] = names
	}
	keys, ok := names[b.Name]
	if !ok {
		keys = make(map[string]value.Value)
		names[b.Name] = keys
	}
	keys[key] = v
	return true, old
}
