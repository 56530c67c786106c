package robinhood

import "errors"

var (
	// ErrKeyNotFound is returned by Get when the key is absent. Use GetPtr or Lookup if a missing key is expected.
	ErrKeyNotFound = errors.New("key not found")
	// ErrCapacityExhausted is returned when the map must grow, but there is no larger capacity to grow to. The map is
	// left unchanged.
	ErrCapacityExhausted = errors.New("hash map maximum capacity reached")
)
