package robinhood

const nilRef int32 = -1

// element is a key-value pair threaded into the insertion order list. Links are arena indices, nilRef if none.
type element[K, V any] struct {
	key   K
	value V
	prev  int32
	next  int32
}

// arena owns all elements of a map. An element keeps its index for its whole lifetime, no matter how its slot moves
// during probing, deletion and resize. Released indices are reused by later allocations.
type arena[K, V any] struct {
	elems []element[K, V]
	free  []int32
	head  int32
	tail  int32
}

func newArena[K, V any]() arena[K, V] {
	return arena[K, V]{head: nilRef, tail: nilRef}
}

func (a *arena[K, V]) at(idx int32) *element[K, V] {
	return &a.elems[idx]
}

// alloc creates an element and links it to the tail of the order list, or to the head if front is true.
func (a *arena[K, V]) alloc(key K, value V, front bool) int32 {
	var idx int32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
		a.elems[idx] = element[K, V]{key: key, value: value}
	} else {
		idx = int32(len(a.elems))
		a.elems = append(a.elems, element[K, V]{key: key, value: value})
	}
	a.link(idx, front)
	return idx
}

func (a *arena[K, V]) link(idx int32, front bool) {
	e := &a.elems[idx]
	e.prev, e.next = nilRef, nilRef
	switch {
	case a.tail == nilRef:
		a.head, a.tail = idx, idx
	case front:
		a.elems[a.head].prev = idx
		e.next = a.head
		a.head = idx
	default:
		a.elems[a.tail].next = idx
		e.prev = a.tail
		a.tail = idx
	}
}

// release unlinks the element from the order list and returns its index to the free list. The released element keeps
// its own links, so a caller holding it may still step to its former neighbour once.
func (a *arena[K, V]) release(idx int32) {
	e := &a.elems[idx]
	if a.head == idx {
		a.head = e.next
	}
	if a.tail == idx {
		a.tail = e.prev
	}
	if e.prev != nilRef {
		a.elems[e.prev].next = e.next
	}
	if e.next != nilRef {
		a.elems[e.next].prev = e.prev
	}

	var (
		zk K
		zv V
	)
	e.key, e.value = zk, zv // Let GC collect whatever the key and value reference
	a.free = append(a.free, idx)
}

// grow makes room for n more elements without reallocation.
func (a *arena[K, V]) grow(n int) {
	if need := len(a.elems) + n - len(a.free); need > cap(a.elems) {
		elems := make([]element[K, V], len(a.elems), need)
		copy(elems, a.elems)
		a.elems = elems
	}
}

func (a *arena[K, V]) reset() {
	clear(a.elems)
	a.elems = a.elems[:0]
	a.free = a.free[:0]
	a.head, a.tail = nilRef, nilRef
}
