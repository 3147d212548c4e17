package engine

import "fmt"

// Init invokes every node's Init callback (if any) with arg, storing the
// returned data pointer on the node. Invoked exactly once, transitioning
// the engine from Uninitialized to Initialized. Also freezes the DAG:
// no further AddNode/AddInput calls are accepted after Init.
//
// If a node's Init returns an error, Init stops and returns that error
// wrapped with the node's name; nodes already initialized keep their
// data pointers.
func (e *Engine) Init(arg any) error {
	if e.phase != lifecycleUninitialized {
		return fmt.Errorf("engine: Init called twice")
	}
	e.frozen = true
	e.topoRoot = topoOrder(e.dag.adjacency, e.order)

	for _, name := range e.order {
		n := e.nodes[name]
		if n.initFn == nil {
			continue
		}
		data, err := n.initFn(arg)
		if err != nil {
			return fmt.Errorf("engine: init node %q: %w", name, err)
		}
		n.data = data
	}

	e.phase = lifecycleInitialized
	e.log.Info("engine initialized", "nodes", len(e.nodes))
	return nil
}

// Cleanup invokes every node's Cleanup callback on its stored data
// pointer, then nils the pointer. Invoked exactly once, transitioning
// the engine from Initialized to Cleaned.
func (e *Engine) Cleanup() {
	if e.phase != lifecycleInitialized {
		return
	}
	for _, name := range e.order {
		n := e.nodes[name]
		if n.cleanupFn != nil {
			n.cleanupFn(n.data)
		}
		n.data = nil
	}
	e.phase = lifecycleCleaned
	e.log.Info("engine cleaned up")
}

// resetIterationState clears per-iteration derived flags and each
// node's tracked-delta data, called at the start of every Run.
func (e *Engine) resetIterationState() {
	e.hasRun = false
	e.hasUpdated = false
	e.canceled = false

	for _, name := range e.order {
		n := e.nodes[name]
		if n.clearTrackedDataFn != nil {
			n.clearTrackedDataFn(n.data)
		}
	}
}
