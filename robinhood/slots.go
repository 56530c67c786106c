package robinhood

import "github.com/bdragon300/ordered-hash/primes"

const emptyHash uint32 = 0

// slots is the open-addressed part of the map: two parallel arrays of a prime length. hashes[i] == emptyHash iff slot
// i is free, otherwise refs[i] is the arena index of the element placed there.
type slots struct {
	hashes   []uint32
	refs     []int32
	capacity uint32
	inverse  uint64
}

func newSlots(capacityIndex int) slots {
	capacity := primes.Size(capacityIndex)
	s := slots{
		hashes:   make([]uint32, capacity),
		refs:     make([]int32, capacity),
		capacity: capacity,
		inverse:  primes.Inverse(capacityIndex),
	}
	s.reset()
	return s
}

func (s *slots) allocated() bool {
	return s.hashes != nil
}

func (s *slots) home(hsh uint32) uint32 {
	return primes.FastMod(hsh, s.inverse, s.capacity)
}

func (s *slots) next(pos uint32) uint32 {
	return primes.FastMod(pos+1, s.inverse, s.capacity)
}

// probeLength returns how far the entry at pos is from its home slot.
func (s *slots) probeLength(pos, hsh uint32) uint32 {
	return primes.FastMod(pos-s.home(hsh)+s.capacity, s.inverse, s.capacity)
}

// lookup walks from the home slot of hsh until it meets the key, a free slot or an entry closer to its own home than
// the walked distance. Robin Hood ordering guarantees the key cannot be placed past the last two.
func (s *slots) lookup(hsh uint32, match func(ref int32) bool) (uint32, bool) {
	pos := s.home(hsh)
	for distance := uint32(0); ; distance++ {
		if s.hashes[pos] == emptyHash {
			return 0, false
		}
		if distance > s.probeLength(pos, s.hashes[pos]) {
			return 0, false
		}
		if s.hashes[pos] == hsh && match(s.refs[pos]) {
			return pos, true
		}
		pos = s.next(pos)
	}
}

// place puts the entry to the table with Robin Hood displacement: whenever the walked entry sits closer to its home
// than the carried one, they swap and the displaced entry continues the walk. The table must have a free slot.
func (s *slots) place(hsh uint32, ref int32) {
	pos := s.home(hsh)
	for distance := uint32(0); ; distance++ {
		if s.hashes[pos] == emptyHash {
			s.hashes[pos] = hsh
			s.refs[pos] = ref
			return
		}

		if existing := s.probeLength(pos, s.hashes[pos]); existing < distance {
			hsh, s.hashes[pos] = s.hashes[pos], hsh
			ref, s.refs[pos] = s.refs[pos], ref
			distance = existing
		}
		pos = s.next(pos)
	}
}

// remove frees the slot at pos with backward shift: every following entry that is not at its home moves one slot back,
// so no tombstones are left behind.
func (s *slots) remove(pos uint32) {
	next := s.next(pos)
	for s.hashes[next] != emptyHash && s.probeLength(next, s.hashes[next]) != 0 {
		s.hashes[pos] = s.hashes[next]
		s.refs[pos] = s.refs[next]
		pos = next
		next = s.next(pos)
	}
	s.hashes[pos] = emptyHash
	s.refs[pos] = nilRef
}

func (s *slots) reset() {
	clear(s.hashes)
	for i := range s.refs {
		s.refs[i] = nilRef
	}
}
