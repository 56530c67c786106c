package main

import (
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/bdragon300/ordered-hash/hashing"
	"github.com/bdragon300/ordered-hash/robinhood"
)

type Report struct {
	robinhood.Stats
	Inserted int
	Erased   int
	Elapsed  time.Duration
}

// Run replays the workload with the configured hasher.
func Run(cfg Config, logger *zap.Logger) (Report, error) {
	switch cfg.Hasher {
	case hasherMaphash:
		return run(cfg, hashing.NewSeeded(), logger)
	default:
		return run(cfg, hashing.String{}, logger)
	}
}

func run[H hashing.Hasher[string]](cfg Config, hasher H, logger *zap.Logger) (Report, error) {
	opts := []robinhood.Option{robinhood.WithLogger(logger)}
	if cfg.InitialCapacity > 0 {
		opts = append(opts, robinhood.WithCapacity(cfg.InitialCapacity))
	}
	if cfg.MaxCapacity > 0 {
		opts = append(opts, robinhood.WithMaxCapacity(cfg.MaxCapacity))
	}
	m := robinhood.NewWith[string, int](hasher, hashing.Comparable[string]{}, opts...)

	var report Report
	start := time.Now()
	for i := 0; i < cfg.Keys; i++ {
		if _, err := m.Insert(keyName(i), i); err != nil {
			return report, fmt.Errorf("insert key #%d: %w", i, err)
		}
		report.Inserted++
	}

	var seed [32]byte
	binary.BigEndian.PutUint64(seed[:], cfg.Seed)
	rnd := rand.New(rand.NewChaCha8(seed))
	erase := int(cfg.EraseRatio * float64(cfg.Keys))
	for _, i := range rnd.Perm(cfg.Keys)[:erase] {
		if !m.Erase(keyName(i)) {
			return report, fmt.Errorf("key #%d disappeared before erase", i)
		}
		report.Erased++
	}
	report.Elapsed = time.Since(start)

	if err := verifyOrder(m); err != nil {
		return report, err
	}
	report.Stats = m.Stats()

	logger.Debug("workload finished",
		zap.Int("inserted", report.Inserted),
		zap.Int("erased", report.Erased),
		zap.Duration("elapsed", report.Elapsed),
	)
	return report, nil
}

// verifyOrder checks that the surviving keys come in the order they were inserted.
func verifyOrder[H hashing.Hasher[string]](m *robinhood.Map[string, int, H, hashing.Comparable[string]]) error {
	prev, n := -1, 0
	for key, v := range m.All() {
		if v <= prev {
			return fmt.Errorf("key %q with value %d follows value %d", key, v, prev)
		}
		prev = v
		n++
	}
	if n != m.Len() {
		return fmt.Errorf("iterated %d keys, map has %d", n, m.Len())
	}
	return nil
}

func keyName(i int) string {
	return fmt.Sprintf("key-%d", i)
}
