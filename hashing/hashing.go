// Package hashing defines the capabilities a hash map needs from its key type: a Hasher producing a 32-bit hash and a
// Comparator telling whether two keys are equal. Equal keys must hash equal.
//
// Implementations here are value types, so a map can take them as type parameters and call them without dynamic
// dispatch. Most of them are usable as zero values.
package hashing

import (
	"bytes"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

const prime32 = 0xfffffffb // Just the last 32-bit prime number

type Hasher[K any] interface {
	Hash(key K) uint32
}

type Comparator[K any] interface {
	Equal(a, b K) bool
}

// String hashes strings with xxhash.
type String struct{}

func (String) Hash(key string) uint32 {
	return fold(xxhash.Sum64String(key))
}

// Bytes hashes byte slices with xxhash.
type Bytes struct{}

func (Bytes) Hash(key []byte) uint32 {
	return fold(xxhash.Sum64(key))
}

// Integer hashes integers with Thomas Wang's 64-bit mix.
type Integer[K constraints.Integer] struct{}

func (Integer[K]) Hash(key K) uint32 {
	v := uint64(key)
	v = ^v + (v << 18)
	v ^= v >> 31
	v *= 21
	v ^= v >> 11
	v += v << 6
	v ^= v >> 22
	return uint32(v)
}

// Seeded hashes strings with hash/maphash under a random seed, so hash values differ between processes. The zero
// value is not usable, create it with NewSeeded.
type Seeded struct {
	seed maphash.Seed
}

func NewSeeded() Seeded {
	return Seeded{seed: maphash.MakeSeed()}
}

func (s Seeded) Hash(key string) uint32 {
	return fold(maphash.String(s.seed, key))
}

// Comparable compares keys with the == operator.
type Comparable[K comparable] struct{}

func (Comparable[K]) Equal(a, b K) bool {
	return a == b
}

type BytesEqual struct{}

func (BytesEqual) Equal(a, b []byte) bool {
	return bytes.Equal(a, b)
}

// HasherFunc adapts a plain function to Hasher.
type HasherFunc[K any] func(key K) uint32

func (f HasherFunc[K]) Hash(key K) uint32 {
	return f(key)
}

// ComparatorFunc adapts a plain function to Comparator.
type ComparatorFunc[K any] func(a, b K) bool

func (f ComparatorFunc[K]) Equal(a, b K) bool {
	return f(a, b)
}

// fold 64-bit hash to 32-bit
func fold(h uint64) uint32 {
	return uint32(h % prime32)
}
