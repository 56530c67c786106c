// Package robinhood implements a hash map with open addressing and Robin Hood hashing, which keeps its elements in
// insertion order.
//
// On insertion, an entry that is farther from its home slot takes the place of an entry that is closer to its own, so
// probe distances even out and lookups of absent keys stop early. Deletion shifts the following entries back instead
// of leaving tombstones. Table capacity is always a prime taken from the primes package, slot positions are computed
// with fastmod.
//
// Elements live in an arena and never move while they are in the map. Each element is linked into a doubly linked
// list in insertion order, which survives deletions and growth, so iteration order is stable.
//
// A Map is not safe for concurrent use. Callers sharing a Map between goroutines must serialize access themselves.
package robinhood

import (
	"fmt"
	"iter"

	"go.uber.org/zap"
	"golang.org/x/exp/constraints"

	"github.com/bdragon300/ordered-hash/hashing"
	"github.com/bdragon300/ordered-hash/primes"
)

// Occupancy must not exceed maxOccupancyNum/maxOccupancyDen of the capacity
const (
	maxOccupancyNum = 3
	maxOccupancyDen = 4
)

// New creates a new map using zero values of hasher H and comparator C.
func New[K, V any, H hashing.Hasher[K], C hashing.Comparator[K]](opts ...Option) *Map[K, V, H, C] {
	var (
		hasher H
		cmp    C
	)
	return NewWith[K, V](hasher, cmp, opts...)
}

// NewWith creates a new map with given hasher and comparator. Panics if options are inconsistent, e.g. the capacity
// hint exceeds the max capacity.
func NewWith[K, V any, H hashing.Hasher[K], C hashing.Comparator[K]](hasher H, cmp C, opts ...Option) *Map[K, V, H, C] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		panic(fmt.Errorf("logger must not be nil"))
	}

	m := &Map[K, V, H, C]{
		hasher:        hasher,
		cmp:           cmp,
		logger:        cfg.logger,
		elems:         newArena[K, V](),
		capacityIndex: min(defaultCapacityIndex, cfg.maxIndex-1),
		maxIndex:      cfg.maxIndex,
	}
	if cfg.hasCapacity {
		m.capacityIndex = 0
		if err := m.Reserve(cfg.capacity); err != nil {
			panic(fmt.Errorf("initial capacity %d: %w", cfg.capacity, err))
		}
	}
	return m
}

// NewString creates a map with string keys hashed by xxhash.
func NewString[V any](opts ...Option) *Map[string, V, hashing.String, hashing.Comparable[string]] {
	return New[string, V, hashing.String, hashing.Comparable[string]](opts...)
}

// NewBytes creates a map with byte slice keys hashed by xxhash. Keys must not be modified while they are in the map.
func NewBytes[V any](opts ...Option) *Map[[]byte, V, hashing.Bytes, hashing.BytesEqual] {
	return New[[]byte, V, hashing.Bytes, hashing.BytesEqual](opts...)
}

// NewInteger creates a map with integer keys.
func NewInteger[K constraints.Integer, V any](opts ...Option) *Map[K, V, hashing.Integer[K], hashing.Comparable[K]] {
	return New[K, V, hashing.Integer[K], hashing.Comparable[K]](opts...)
}

// Map is an insertion-ordered hash map with Robin Hood open addressing.
//
// Slots are allocated lazily on the first insertion. The map grows to the next prime capacity once an insertion would
// make it more than 3/4 full. It never shrinks.
//
// Elements never move between growths. A pointer to a value stays valid until an insertion makes the map grow, or
// until its key is erased or the map is cleared. An Entry handle is not affected by growth.
type Map[K, V any, H hashing.Hasher[K], C hashing.Comparator[K]] struct {
	hasher H
	cmp    C
	logger *zap.Logger

	slots         slots
	elems         arena[K, V]
	count         int
	capacityIndex int
	maxIndex      int // exclusive bound of capacityIndex
}

// Len returns the number of elements in the map.
func (m *Map[K, V, H, C]) Len() int {
	return m.count
}

// Cap returns the capacity of the map, i.e. number of slots.
func (m *Map[K, V, H, C]) Cap() int {
	return int(primes.Size(m.capacityIndex))
}

func (m *Map[K, V, H, C]) Empty() bool {
	return m.count == 0
}

// Clear removes all elements. Allocated slots are kept for reuse.
func (m *Map[K, V, H, C]) Clear() {
	if !m.slots.allocated() || m.count == 0 {
		return
	}
	m.slots.reset()
	m.elems.reset()
	m.count = 0
}

// Has reports whether the key is in the map.
func (m *Map[K, V, H, C]) Has(key K) bool {
	_, ok := m.lookup(key)
	return ok
}

// Get returns a value for a key. If the key does not exist, it returns ErrKeyNotFound.
func (m *Map[K, V, H, C]) Get(key K) (V, error) {
	if pos, ok := m.lookup(key); ok {
		return m.elems.at(m.slots.refs[pos]).value, nil
	}
	var zero V
	return zero, fmt.Errorf("get %v: %w", key, ErrKeyNotFound)
}

// Lookup returns a value for a key. If the key does not exist, it returns zero value and false.
func (m *Map[K, V, H, C]) Lookup(key K) (V, bool) {
	if pos, ok := m.lookup(key); ok {
		return m.elems.at(m.slots.refs[pos]).value, true
	}
	var zero V
	return zero, false
}

// GetPtr returns a pointer to the value stored for a key, or nil if the key does not exist. The pointer survives
// insertions that do not grow the map.
func (m *Map[K, V, H, C]) GetPtr(key K) *V {
	if pos, ok := m.lookup(key); ok {
		return &m.elems.at(m.slots.refs[pos]).value
	}
	return nil
}

// Find returns a handle of the element with a given key. The handle is invalid if the key does not exist.
func (m *Map[K, V, H, C]) Find(key K) Entry[K, V] {
	if pos, ok := m.lookup(key); ok {
		return m.entry(m.slots.refs[pos])
	}
	return Entry[K, V]{}
}

// CustomGetPtr looks up a value by a precomputed hash and a predicate instead of a key. It is useful when the caller
// has a key in another representation, e.g. a byte slice for a string key. The hash must be what the map's hasher
// returns for the matching key, and match must report true for that key only.
func (m *Map[K, V, H, C]) CustomGetPtr(hsh uint32, match func(key K) bool) *V {
	if !m.slots.allocated() || m.count == 0 {
		return nil
	}
	if hsh == emptyHash {
		hsh = emptyHash + 1
	}
	pos, ok := m.slots.lookup(hsh, func(ref int32) bool {
		return match(m.elems.at(ref).key)
	})
	if !ok {
		return nil
	}
	return &m.elems.at(m.slots.refs[pos]).value
}

// Insert sets a value for a key. If the key already exists, its value is overwritten in place and its position in
// iteration order is kept. Otherwise, a new element is appended to the end of iteration order.
//
// Returns ErrCapacityExhausted if the map needs to grow beyond its max capacity. The map is unchanged in this case.
func (m *Map[K, V, H, C]) Insert(key K, value V) (Entry[K, V], error) {
	ref, err := m.insert(key, value, false)
	if err != nil {
		return Entry[K, V]{}, err
	}
	return m.entry(ref), nil
}

// InsertFront is like Insert, but a new element is put to the beginning of iteration order.
func (m *Map[K, V, H, C]) InsertFront(key K, value V) (Entry[K, V], error) {
	ref, err := m.insert(key, value, true)
	if err != nil {
		return Entry[K, V]{}, err
	}
	return m.entry(ref), nil
}

// GetOrInsert returns a pointer to the value for a key. If the key does not exist, it inserts a zero value first.
func (m *Map[K, V, H, C]) GetOrInsert(key K) (*V, error) {
	if pos, ok := m.lookup(key); ok {
		return &m.elems.at(m.slots.refs[pos]).value, nil
	}
	var zero V
	ref, err := m.insert(key, zero, false)
	if err != nil {
		return nil, err
	}
	return &m.elems.at(ref).value, nil
}

// Erase removes a key from the map. Returns false if the key does not exist.
func (m *Map[K, V, H, C]) Erase(key K) bool {
	pos, ok := m.lookup(key)
	if !ok {
		return false
	}
	ref := m.slots.refs[pos]
	m.slots.remove(pos)
	m.elems.release(ref)
	m.count--
	return true
}

// Reserve grows the map so that its capacity is at least n. Useful to avoid repeated rehashing before inserting a
// known number of elements. Does nothing if the capacity is already enough.
func (m *Map[K, V, H, C]) Reserve(n uint32) error {
	idx, ok := primes.IndexFor(n, m.capacityIndex)
	if !ok || idx >= m.maxIndex {
		m.logger.Warn("hash map reserve exceeds max capacity",
			zap.Uint32("requested", n),
			zap.Uint32("max", primes.Size(m.maxIndex-1)),
		)
		return fmt.Errorf("reserve %d: %w", n, ErrCapacityExhausted)
	}
	if idx == m.capacityIndex {
		return nil
	}
	if !m.slots.allocated() {
		m.capacityIndex = idx
		return nil
	}
	m.resize(idx)
	return nil
}

// Front returns the first element in iteration order. The handle is invalid if the map is empty.
func (m *Map[K, V, H, C]) Front() Entry[K, V] {
	return m.entry(m.elems.head)
}

// Back returns the last element in iteration order. The handle is invalid if the map is empty.
func (m *Map[K, V, H, C]) Back() Entry[K, V] {
	return m.entry(m.elems.tail)
}

// All returns an iterator over key-value pairs in insertion order. The loop body may erase the current key.
func (m *Map[K, V, H, C]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for ref := m.elems.head; ref != nilRef; {
			e := m.elems.at(ref)
			next := e.next
			if !yield(e.key, e.value) {
				return
			}
			ref = next
		}
	}
}

// Backward returns an iterator over key-value pairs in reverse insertion order. The loop body may erase the current
// key.
func (m *Map[K, V, H, C]) Backward() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for ref := m.elems.tail; ref != nilRef; {
			e := m.elems.at(ref)
			prev := e.prev
			if !yield(e.key, e.value) {
				return
			}
			ref = prev
		}
	}
}

// Keys returns all keys in insertion order.
func (m *Map[K, V, H, C]) Keys() []K {
	keys := make([]K, 0, m.count)
	for ref := m.elems.head; ref != nilRef; ref = m.elems.at(ref).next {
		keys = append(keys, m.elems.at(ref).key)
	}
	return keys
}

// Clone returns a copy of the map with the same capacity, elements and iteration order.
func (m *Map[K, V, H, C]) Clone() *Map[K, V, H, C] {
	c := &Map[K, V, H, C]{
		hasher:   m.hasher,
		cmp:      m.cmp,
		logger:   m.logger,
		elems:    newArena[K, V](),
		maxIndex: m.maxIndex,
	}
	if err := c.CopyFrom(m); err != nil {
		// Same max capacity, so it cannot run out of room
		panic(err)
	}
	return c
}

// CopyFrom replaces the map contents with elements of other in its iteration order. The capacity grows to the
// other's capacity if it is lower. On ErrCapacityExhausted the map is unchanged.
func (m *Map[K, V, H, C]) CopyFrom(other *Map[K, V, H, C]) error {
	if m == other {
		return nil
	}
	if idx, ok := primes.IndexFor(uint32(other.Cap()), m.capacityIndex); !ok || idx >= m.maxIndex {
		m.logger.Warn("hash map copy exceeds max capacity",
			zap.Int("requested", other.Cap()),
			zap.Uint32("max", primes.Size(m.maxIndex-1)),
		)
		return fmt.Errorf("copy %d elements: %w", other.Len(), ErrCapacityExhausted)
	}
	m.Clear()
	if err := m.Reserve(uint32(other.Cap())); err != nil {
		return err
	}
	for ref := other.elems.head; ref != nilRef; ref = other.elems.at(ref).next {
		e := other.elems.at(ref)
		if _, err := m.insert(e.key, e.value, false); err != nil {
			return err
		}
	}
	return nil
}

func (m *Map[K, V, H, C]) entry(ref int32) Entry[K, V] {
	if ref == nilRef {
		return Entry[K, V]{}
	}
	return Entry[K, V]{arena: &m.elems, ref: ref}
}
