package testutil

import (
	"fmt"
	"sync/atomic"
)

// SequentialIDGenerator hands out predictable run IDs: "<prefix>-0001",
// "<prefix>-0002", and so on. It stands in for the UUIDv7 generator when a
// test needs to know run IDs in advance. Safe for concurrent use.
type SequentialIDGenerator struct {
	prefix string
	n      atomic.Int64
}

// NewSequentialIDGenerator creates a generator. An empty prefix becomes "run".
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "run"
	}
	return &SequentialIDGenerator{prefix: prefix}
}

// Generate returns the next ID.
func (g *SequentialIDGenerator) Generate() string {
	return fmt.Sprintf("%s-%04d", g.prefix, g.n.Add(1))
}
