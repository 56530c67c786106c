package robinhood

import (
	"go.uber.org/zap"

	"github.com/bdragon300/ordered-hash/primes"
)

// defaultCapacityIndex is the capacity a map gets if no hint is given, 23 slots.
const defaultCapacityIndex = 3

type config struct {
	capacity    uint32
	hasCapacity bool
	maxIndex    int // exclusive
	logger      *zap.Logger
}

func defaultConfig() config {
	return config{
		maxIndex: primes.Len,
		logger:   zap.NewNop(),
	}
}

// Option configures a Map on creation.
type Option func(*config)

// WithCapacity sets the initial capacity hint. The map starts with the smallest capacity not less than n. Slots are
// still allocated only on the first insertion.
func WithCapacity(n uint32) Option {
	return func(c *config) {
		c.capacity = n
		c.hasCapacity = true
	}
}

// WithMaxCapacity limits the map growth to the largest capacity not exceeding n, but not lower than the smallest one.
// Insertions that would need more room fail with ErrCapacityExhausted.
func WithMaxCapacity(n uint32) Option {
	return func(c *config) {
		c.maxIndex = primes.IndexBelow(n) + 1
	}
}

// WithLogger sets the logger for growth events. Default is a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}
