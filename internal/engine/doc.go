// Package engine implements a generic incremental processing engine: a
// framework for recomputing a set of derived outputs whenever a set of
// external inputs change, doing so incrementally where possible and
// falling back to full recomputation where not.
//
// ARCHITECTURE:
//
// Node DAG:
// Nodes are registered once, before the first iteration, via AddNode and
// AddInput. Input edges form a directed graph that must be acyclic;
// AddInput refuses any edge that would introduce a cycle. Once
// construction is complete the DAG is frozen and the engine derives a
// topological order for the driver to walk.
//
// Single-Threaded Cooperative Scheduling:
// Run drives the DAG to completion on the calling goroutine. There are
// no suspension points inside the engine and no internal timers; a
// node's Init, Run, change handlers, and Cleanup all execute on that
// same goroutine. This makes per-node counters and per-iteration flags
// safe to update without atomics.
//
// Iteration Flow:
//  1. The caller sets the engine context (SetContext) and optionally
//     requests a force recompute (SetForceRecompute).
//  2. Run walks the DAG in reverse topological order from the requested
//     roots, evaluating each input before its dependents.
//  3. Each node's evaluation dispatches its inputs' change handlers in
//     declaration order, falling back to a full recompute when a
//     handler is missing or returns Unhandled.
//  4. If recompute is required but not allowed, the whole iteration
//     cancels: cancellation propagates transitively to every dependent
//     of the node that needed it.
//
// CRITICAL PATTERNS:
//
// Per-node counters (Recompute, Compute, Cancel) are monotonically
// non-decreasing for the lifetime of the engine and are the primary
// diagnostic surface alongside the optional GetComputeFailureInfo hook.
//
// Deterministic Scheduling:
// Inputs are evaluated in author-declared order, never reordered. No
// randomness, no concurrency, no non-determinism within one iteration.
package engine
