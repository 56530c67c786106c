package robinhood

// Entry is a handle of a map element, used to walk the map in insertion order:
//
//	for e := m.Front(); e.Valid(); e = e.Next() {
//		fmt.Println(e.Key(), e.Value())
//	}
//
// A handle is invalidated by a structural change of the map. The only exception is erasing the element the handle
// points to: the handle returned by its Next or Prev, taken before the erase, may still be used. Do not rely on a
// handle of an erased element beyond that. The zero Entry is invalid.
type Entry[K, V any] struct {
	arena *arena[K, V]
	ref   int32
}

// Valid reports whether the handle points to an element. Methods other than Valid, Next and Prev panic on an invalid
// handle.
func (e Entry[K, V]) Valid() bool {
	return e.arena != nil && e.ref != nilRef
}

func (e Entry[K, V]) Key() K {
	return e.arena.at(e.ref).key
}

func (e Entry[K, V]) Value() V {
	return e.arena.at(e.ref).value
}

// ValuePtr returns a pointer to the stored value.
func (e Entry[K, V]) ValuePtr() *V {
	return &e.arena.at(e.ref).value
}

func (e Entry[K, V]) SetValue(value V) {
	e.arena.at(e.ref).value = value
}

// Next returns the following element in insertion order, or an invalid handle at the end.
func (e Entry[K, V]) Next() Entry[K, V] {
	if !e.Valid() {
		return Entry[K, V]{}
	}
	return e.step(e.arena.at(e.ref).next)
}

// Prev returns the preceding element in insertion order, or an invalid handle at the beginning.
func (e Entry[K, V]) Prev() Entry[K, V] {
	if !e.Valid() {
		return Entry[K, V]{}
	}
	return e.step(e.arena.at(e.ref).prev)
}

func (e Entry[K, V]) step(ref int32) Entry[K, V] {
	if ref == nilRef {
		return Entry[K, V]{}
	}
	return Entry[K, V]{arena: e.arena, ref: ref}
}
