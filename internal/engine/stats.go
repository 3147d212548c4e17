package engine

import "github.com/netfab/ctrlgraph/internal/ir"

// Stats returns a copy of node's per-node counters (Recompute, Compute,
// Cancel). Counters are monotonically non-decreasing for the lifetime
// of the engine.
func (e *Engine) Stats(node *Node) ir.Stats {
	return node.stats
}

// AllStats returns a snapshot of every registered node's counters,
// keyed by node name. Used by the stats CLI subcommand.
func (e *Engine) AllStats() map[string]ir.Stats {
	out := make(map[string]ir.Stats, len(e.nodes))
	for name, n := range e.nodes {
		out[name] = n.stats
	}
	return out
}

// IterationCount returns the number of Run calls that have completed
// (canceled or not) since the engine was created.
func (e *Engine) IterationCount() int64 {
	return e.iterClock.Current()
}
