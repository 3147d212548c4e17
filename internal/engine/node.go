package engine

import (
	"github.com/netfab/ctrlgraph/internal/ir"
)

// InitFunc allocates a node's data pointer. Called exactly once, during
// the engine's Uninitialized -> Initialized transition.
type InitFunc func(arg any) (any, error)

// RunFunc fully recomputes a node's data from scratch and returns the
// node's new state (Updated or Unchanged). Called whenever a node's
// inputs cannot be handled incrementally.
type RunFunc func(n *Node, data any) ir.NodeState

// CleanupFunc releases a node's data pointer. Called exactly once,
// during the engine's Initialized -> Cleaned transition.
type CleanupFunc func(data any)

// ChangeHandler absorbs an Updated input incrementally, without a full
// recompute of the dependent node. It returns Unhandled when the change
// cannot be absorbed, in which case the node falls back to RunFunc.
type ChangeHandler func(n *Node, data any) ir.HandlerResult

// IsValidFunc reports whether a node's data may be read even though the
// node's last-iteration state is not Updated or Unchanged.
type IsValidFunc func(data any) bool

// ClearTrackedDataFunc resets any tracked-delta sub-structure on a
// node's data at the start of every iteration.
type ClearTrackedDataFunc func(data any)

// ComputeFailureInfoFunc is invoked when an input's change handler
// returns Unhandled, for diagnostics.
type ComputeFailureInfoFunc func(n *Node)

// input is one declared input of a node: a reference to the input node
// plus the optional handler dispatched when that input ends Updated.
type input struct {
	node                *Node
	handler             ChangeHandler
	getComputeFailureInfo ComputeFailureInfoFunc
}

// Node is one vertex of the incremental processing DAG.
type Node struct {
	name   string
	inputs []input

	data  any
	state ir.NodeState

	initFn             InitFunc
	runFn              RunFunc
	cleanupFn          CleanupFunc
	isValidFn          IsValidFunc
	clearTrackedDataFn ClearTrackedDataFunc

	stats ir.Stats
}

// Name returns the node's unique name.
func (n *Node) Name() string {
	return n.name
}

// State returns the node's last-iteration state.
func (n *Node) State() ir.NodeState {
	return n.state
}

// Stats returns a copy of the node's per-node counters.
func (n *Node) Stats() ir.Stats {
	return n.stats
}

// inputNames returns the declared names of this node's inputs, in
// declaration order. Used by Engine.NodeInputNames.
func (n *Node) inputNames() []string {
	names := make([]string, len(n.inputs))
	for i, in := range n.inputs {
		names[i] = in.node.name
	}
	return names
}

// inputByName finds a declared input by the name of its referenced
// node. Returns nil if no such input exists.
func (n *Node) inputByName(name string) *input {
	for i := range n.inputs {
		if n.inputs[i].node.name == name {
			return &n.inputs[i]
		}
	}
	return nil
}

func (n *Node) hasInput(name string) bool {
	return n.inputByName(name) != nil
}
