package robinhood

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bdragon300/ordered-hash/primes"
)

// hash returns the key hash, which never equals the empty slot marker.
func (m *Map[K, V, H, C]) hash(key K) uint32 {
	hsh := m.hasher.Hash(key)
	if hsh == emptyHash {
		hsh = emptyHash + 1
	}
	return hsh
}

func (m *Map[K, V, H, C]) lookup(key K) (uint32, bool) {
	if !m.slots.allocated() || m.count == 0 {
		return 0, false
	}
	return m.lookupWithHash(m.hash(key), key)
}

func (m *Map[K, V, H, C]) lookupWithHash(hsh uint32, key K) (uint32, bool) {
	return m.slots.lookup(hsh, func(ref int32) bool {
		return m.cmp.Equal(m.elems.at(ref).key, key)
	})
}

// insert overwrites the value of an existing key or creates a new element, growing the table first if needed.
// Returns the element arena index.
func (m *Map[K, V, H, C]) insert(key K, value V, front bool) (int32, error) {
	if !m.slots.allocated() {
		// Allocate on demand to save memory
		m.slots = newSlots(m.capacityIndex)
		m.reserveElements()
	}

	hsh := m.hash(key)
	if m.count > 0 {
		if pos, ok := m.lookupWithHash(hsh, key); ok {
			ref := m.slots.refs[pos]
			m.elems.at(ref).value = value
			return ref, nil
		}
	}

	if uint64(m.count+1)*maxOccupancyDen > uint64(m.slots.capacity)*maxOccupancyNum {
		if m.capacityIndex+1 >= m.maxIndex {
			m.logger.Warn("hash map maximum capacity reached, aborting insertion",
				zap.Int("capacity", m.Cap()),
				zap.Int("elements", m.count),
			)
			return nilRef, fmt.Errorf("insert: %w", ErrCapacityExhausted)
		}
		m.resize(m.capacityIndex + 1)
	}

	ref := m.elems.alloc(key, value, front)
	m.slots.place(hsh, ref)
	m.count++
	return ref, nil
}

// reserveElements sizes the arena for as many elements as the current capacity admits, so that value pointers are not
// moved by insertions until the next growth.
func (m *Map[K, V, H, C]) reserveElements() {
	m.elems.grow(int(m.slots.capacity)*maxOccupancyNum/maxOccupancyDen - m.count)
}

// resize moves all entries to a new table of a given capacity index. Elements are not touched, only their slots change.
func (m *Map[K, V, H, C]) resize(capacityIndex int) {
	old := m.slots
	m.capacityIndex = capacityIndex
	m.slots = newSlots(capacityIndex)

	for i, hsh := range old.hashes {
		if hsh == emptyHash {
			continue
		}
		m.slots.place(hsh, old.refs[i])
	}
	m.reserveElements()

	m.logger.Debug("hash map grown",
		zap.Uint32("from", old.capacity),
		zap.Uint32("to", primes.Size(capacityIndex)),
		zap.Int("elements", m.count),
	)
}
