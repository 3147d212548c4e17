package engine

import "sync/atomic"

// IterationClock counts completed engine iterations.
//
// The count is used for diagnostics (logging, stats dumps) and by
// invariant 6: the sum of a node's Recompute+Compute+Cancel counters
// across iterations in which it was reachable equals the iteration
// count over that same span.
//
// Thread-safety: IterationClock is safe for concurrent use (atomic
// operations), though the engine's single-threaded driver means only
// one goroutine typically calls Next().
type IterationClock struct {
	seq atomic.Int64
}

// NewIterationClock creates a new clock starting at 0.
func NewIterationClock() *IterationClock {
	return &IterationClock{}
}

// Next returns the next iteration number and increments the clock.
func (c *IterationClock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current iteration number without incrementing.
func (c *IterationClock) Current() int64 {
	return c.seq.Load()
}
