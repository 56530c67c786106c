// Package primes holds the capacity sequence of the hash map: ascending primes, each paired with a precomputed
// 64-bit reciprocal so that a remainder can be taken with two multiplications instead of a division.
//
// For the reduction technique see [Lemire].
//
// [Lemire]: https://arxiv.org/abs/1902.01961
package primes

import "math/bits"

// Len is the number of capacities in the table. An index equal to Len is out of range.
const Len = len(table)

type entry struct {
	size    uint32
	inverse uint64 // ^uint64(0)/size + 1
}

var table = [...]entry{
	{5, 0x3333333333333334},
	{7, 0x2492492492492493},
	{13, 0x13B13B13B13B13B2},
	{23, 0x0B21642C8590B217},
	{47, 0x0572620AE4C415CA},
	{97, 0x02A3A0FD5C5F02A4},
	{193, 0x015390948F40FEAD},
	{389, 0x00A87917088E262C},
	{769, 0x005538ED06533998},
	{1543, 0x002A791D5DBD4DD0},
	{3079, 0x001548EACC5E1E6F},
	{6151, 0x000AA78F20EBBB3F},
	{12289, 0x00055538E425E9E1},
	{24593, 0x0002AA31DC80F3D5},
	{49157, 0x0001554C72025D46},
	{98317, 0x0000AAA4E3C04A29},
	{196613, 0x00005554C71D5ED0},
	{393241, 0x00002AA9F8E672EB},
	{786433, 0x00001555538E390A},
	{1572869, 0x00000AAAA871C793},
	{3145739, 0x00000555541C720F},
	{6291469, 0x000002AAAA4E38F1},
	{12582917, 0x00000155554C71C8},
	{25165843, 0x000000AAAAA238E4},
	{50331653, 0x000000555554C71D},
	{100663319, 0x0000002AAAAA071D},
	{201326611, 0x000000155555338F},
	{402653189, 0x0000000AAAAAA872},
	{805306457, 0x0000000555554B72},
	{1610612741, 0x00000002AAAAAA88},
}

// Size returns the prime capacity at index i. Panics if i is out of range.
func Size(i int) uint32 {
	return table[i].size
}

// Inverse returns the fastmod reciprocal of Size(i).
func Inverse(i int) uint64 {
	return table[i].inverse
}

// Max returns the largest capacity in the table.
func Max() uint32 {
	return table[Len-1].size
}

// FastMod computes n % d given inv == ^uint64(0)/d + 1. Exact for every 32-bit n and d.
func FastMod(n uint32, inv uint64, d uint32) uint32 {
	lowbits := inv * uint64(n)
	hi, _ := bits.Mul64(lowbits, uint64(d))
	return uint32(hi)
}

// IndexFor returns the smallest index not less than from whose capacity is at least n. Returns false if even the
// largest capacity is too small.
func IndexFor(n uint32, from int) (int, bool) {
	for i := max(from, 0); i < Len; i++ {
		if table[i].size >= n {
			return i, true
		}
	}
	return Len - 1, false
}

// IndexBelow returns the largest index whose capacity does not exceed n. The first index is returned if n is smaller
// than every capacity.
func IndexBelow(n uint32) int {
	i := 0
	for i+1 < Len && table[i+1].size <= n {
		i++
	}
	return i
}
