package engine

import "github.com/netfab/ctrlgraph/internal/ir"

// Input looks up an input of node by the input node's name, returning
// nil if name is not among node's declared inputs.
func (e *Engine) Input(node *Node, name string) *Node {
	in := node.inputByName(name)
	if in == nil {
		return nil
	}
	return in.node
}

// InputData is a convenience wrapper returning Data(Input(node, name)).
func (e *Engine) InputData(node *Node, name string) any {
	in := e.Input(node, name)
	if in == nil {
		return nil
	}
	return e.Data(in)
}

// NodeChanged reports whether node's last-iteration state is Updated.
func (e *Engine) NodeChanged(node *Node) bool {
	return node.state == ir.Updated
}

// Data returns node's data pointer only when it is safe to read: the
// node's last-iteration state is Updated or Unchanged, or the node has
// an IsValid predicate that returns true for the current data. Returns
// nil otherwise.
func (e *Engine) Data(node *Node) any {
	switch node.state {
	case ir.Updated, ir.Unchanged:
		return node.data
	}
	if node.isValidFn != nil && node.isValidFn(node.data) {
		return node.data
	}
	return nil
}

// InternalData returns node's data pointer unconditionally, bypassing
// the validity gate Data applies. Intended for diagnostics and tests.
func (e *Engine) InternalData(node *Node) any {
	return node.data
}

// NeedRun reports whether another Run call is warranted: a force
// recompute is pending, or the last iteration was canceled.
func (e *Engine) NeedRun() bool {
	return e.forceRecompute || e.canceled
}

// HasRun reports whether the most recent Run call actually advanced any
// node (false when the iteration was canceled).
func (e *Engine) HasRun() bool {
	return e.hasRun
}

// HasUpdated reports whether any reachable node ended the most recent
// iteration in state Updated.
func (e *Engine) HasUpdated() bool {
	return e.hasUpdated
}

// Canceled reports whether the most recent iteration was canceled.
func (e *Engine) Canceled() bool {
	return e.canceled
}
