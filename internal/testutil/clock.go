// Package testutil holds deterministic stand-ins used by scenario runs and
// tests: a logical clock for trace sequence numbers and a predictable run
// ID generator.
package testutil

import "sync/atomic"

// DeterministicClock is a monotonic logical clock.
//
// Every trace event of a scenario run takes exactly one tick, so two runs
// of the same scenario stamp identical sequence numbers. Safe for
// concurrent use.
type DeterministicClock struct {
	seq atomic.Int64
}

// NewDeterministicClock creates a clock at 0. The first Next returns 1.
func NewDeterministicClock() *DeterministicClock {
	return &DeterministicClock{}
}

// Next advances the clock and returns the new sequence number.
func (c *DeterministicClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last sequence number handed out, or 0.
func (c *DeterministicClock) Current() int64 {
	return c.seq.Load()
}

// Reset rewinds the clock to 0 so a scenario can be replayed.
func (c *DeterministicClock) Reset() {
	c.seq.Store(0)
}
