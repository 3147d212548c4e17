package engine

import (
	"log/slog"

	"github.com/netfab/ctrlgraph/internal/ir"
)

// runState carries the per-iteration values the dispatch loop needs
// alongside the engine itself: whether a gate-triggered cancellation has
// already fired, the force-recompute decision latched for this
// iteration, and the caller's recompute-allowed setting.
type runState struct {
	engine *Engine
	log    *slog.Logger

	recomputeAllowed bool
	forceRecompute   bool

	canceled     bool
	canceledNode string
}

// evaluate computes node's new state for this iteration, per the
// change-handler dispatch protocol. Nodes are visited in reverse
// topological order by the caller, so every input of node has already
// been evaluated.
//
// A node with zero inputs has nothing to dispatch: it is a source node,
// and its own Run is the only way to learn whether it changed, so it is
// always invoked (subject to the same recompute-allowed gate as any
// other fallback-to-recompute path).
//
// A pending force-recompute makes every node behave as though each of
// its inputs' handlers returned Unhandled, regardless of that input's
// actual state this iteration, so force bypasses the per-input loop
// entirely rather than waiting for an Updated input to trigger it.
func (rs *runState) evaluate(n *Node) {
	if rs.canceled {
		n.state = ir.Canceled
		n.stats.Cancel++
		return
	}

	if rs.forceRecompute || len(n.inputs) == 0 {
		rs.recompute(n)
		return
	}

	verdict := ir.Unchanged
	for _, in := range n.inputs {
		switch in.node.state {
		case ir.Canceled:
			n.state = ir.Canceled
			n.stats.Cancel++
			return
		case ir.Unchanged:
			continue
		}

		// in.node.state == ir.Updated
		if in.handler == nil {
			rs.recompute(n)
			return
		}

		result := in.handler(n, n.data)
		switch result {
		case ir.Unhandled:
			if in.getComputeFailureInfo != nil {
				in.getComputeFailureInfo(n)
			}
			rs.recompute(n)
			return
		case ir.HandledUpdated:
			verdict = ir.Updated
		case ir.HandledUnchanged:
			// no change in verdict
		}
	}

	n.state = verdict
	n.stats.Compute++
	rs.log.Debug("node dispatched via handlers", "node", n.name, "state", verdict.String())
}

// recompute invokes n.Run, subject to the recompute-allowed gate. If
// recompute is not allowed, this iteration cancels entirely: the caller
// (Run) is responsible for marking every remaining node Canceled.
func (rs *runState) recompute(n *Node) {
	if !rs.recomputeAllowed {
		rs.canceled = true
		rs.canceledNode = n.name
		n.state = ir.Canceled
		n.stats.Cancel++
		rs.log.Warn("recompute required but not allowed, canceling iteration", "node", n.name)
		return
	}
	n.state = n.runFn(n, n.data)
	n.stats.Recompute++
	rs.log.Debug("node recomputed", "node", n.name, "state", n.state.String())
}
