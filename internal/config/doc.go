// Package config loads a declarative YAML topology descriptor,
// validates it against an embedded CUE schema, and compiles it into a
// live engine.Engine via a Builder registry.
//
// The loader is a convenience layer over the engine's own AddNode and
// AddInput calls: it does not bypass DAG validation, it just resolves
// node "kind" and input "handler" names against factories registered
// ahead of time by the process assembling the topology.
package config
