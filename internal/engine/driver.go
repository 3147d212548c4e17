package engine

import (
	"context"
	"fmt"

	"github.com/netfab/ctrlgraph/internal/ir"
)

// Run drives one iteration of the engine: it walks every registered
// node in reverse topological order (inputs before dependents),
// evaluating each one per the change-handler dispatch protocol.
//
// ctx is only used for the caller's own deadline/cancellation; the
// engine's internal scheduling is always single-threaded and
// synchronous. If ctx is already done, Run returns ctx.Err() without
// touching any node state.
//
// If recomputeAllowed is false and some reachable node needs a full
// recompute (because force-recompute is set, an input lacks a change
// handler, a handler returned Unhandled, or the node has no inputs),
// the entire iteration is canceled: every remaining unvisited node is
// marked Canceled, the global canceled flag is set, has-run is false,
// and the force-recompute flag is set (or stays set) for the next call.
func (e *Engine) Run(ctx context.Context, recomputeAllowed bool) error {
	if e.phase != lifecycleInitialized {
		return fmt.Errorf("engine: Run called before Init")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	iterNum := e.iterClock.Next()
	iterID := e.idGen.Generate()
	log := e.log.With("iteration", iterNum, "iteration_id", iterID)

	e.resetIterationState()

	forceThisIteration := e.forceRecompute
	rs := &runState{
		engine:           e,
		log:              log,
		recomputeAllowed: recomputeAllowed,
		forceRecompute:   forceThisIteration,
	}

	log.Info("iteration starting", "recompute_allowed", recomputeAllowed, "force_recompute", forceThisIteration)

	for _, name := range e.topoRoot {
		n := e.nodes[name]
		rs.evaluate(n)
	}

	if rs.canceled {
		e.canceled = true
		e.hasRun = false
		e.forceRecompute = true
		log.Warn("iteration canceled", "triggering_node", rs.canceledNode)
		return nil
	}

	e.hasRun = true
	if forceThisIteration {
		e.forceRecompute = false
	}
	for _, name := range e.topoRoot {
		if e.nodes[name].state == ir.Updated {
			e.hasUpdated = true
			break
		}
	}

	log.Info("iteration complete", "has_updated", e.hasUpdated)
	return nil
}
