package primes

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isPrime(n uint32) bool {
	if n < 2 {
		return false
	}
	for d := uint32(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func TestTable(t *testing.T) {
	t.Run("every size is prime and sizes ascend; should be ok", func(t *testing.T) {
		for i := 0; i < Len; i++ {
			assert.True(t, isPrime(Size(i)), "index %d: %d", i, Size(i))
			if i > 0 {
				assert.Greater(t, Size(i), Size(i-1))
			}
		}
		assert.Equal(t, Size(Len-1), Max())
	})

	t.Run("inverse matches the size; should be ok", func(t *testing.T) {
		for i := 0; i < Len; i++ {
			assert.Equal(t, ^uint64(0)/uint64(Size(i))+1, Inverse(i), "index %d", i)
		}
	})
}

func TestFastMod(t *testing.T) {
	t.Run("boundary values; should equal remainder", func(t *testing.T) {
		values := []uint32{0, 1, 2, 4, 5, 6, 7, 1<<31 - 1, 1 << 31, 1<<32 - 2, 1<<32 - 1}
		for i := 0; i < Len; i++ {
			d := Size(i)
			for _, n := range append(values, d-1, d, d+1, 2*d-1) {
				require.Equal(t, n%d, FastMod(n, Inverse(i), d), "n=%d d=%d", n, d)
			}
		}
	})

	t.Run("random values; should equal remainder", func(t *testing.T) {
		rnd := rand.New(rand.NewChaCha8([32]byte{1}))
		for i := 0; i < Len; i++ {
			d := Size(i)
			for j := 0; j < 10000; j++ {
				n := rnd.Uint32()
				require.Equal(t, n%d, FastMod(n, Inverse(i), d), "n=%d d=%d", n, d)
			}
		}
	})
}

func TestIndexFor(t *testing.T) {
	tests := []struct {
		name   string
		n      uint32
		from   int
		want   int
		wantOk bool
	}{
		{"zero; should return first index", 0, 0, 0, true},
		{"exact prime; should return its index", 7, 0, 1, true},
		{"between primes; should round up", 8, 0, 2, true},
		{"lower than start; should keep start", 5, 3, 3, true},
		{"negative start; should clamp", 6, -1, 1, true},
		{"largest prime; should return last index", Max(), 0, Len - 1, true},
		{"larger than any prime; should fail", Max() + 1, 0, Len - 1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := IndexFor(tt.n, tt.from)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIndexBelow(t *testing.T) {
	assert.Equal(t, 0, IndexBelow(0))
	assert.Equal(t, 0, IndexBelow(6))
	assert.Equal(t, 1, IndexBelow(7))
	assert.Equal(t, 2, IndexBelow(22))
	assert.Equal(t, Len-1, IndexBelow(^uint32(0)))
}

// Reduction speed is a non-functional property; both paths must agree, FastMod is expected to be faster.
func BenchmarkFastMod(b *testing.B) {
	const i = 20
	d, inv := Size(i), Inverse(i)
	var sink uint32
	for n := 0; n < b.N; n++ {
		sink += FastMod(uint32(n)*2654435761, inv, d)
	}
	_ = sink
}

func BenchmarkModulo(b *testing.B) {
	const i = 20
	d := Size(i)
	var sink uint32
	for n := 0; n < b.N; n++ {
		sink += (uint32(n) * 2654435761) % d
	}
	_ = sink
}
