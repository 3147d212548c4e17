// Package ir provides the shared intermediate representation for node
// topology and per-iteration state used by the engine and its ambient
// layers (config loading, CLI, diagnostics).
//
// This package contains type definitions and pure helpers only. All other
// internal packages may import ir; ir imports nothing internal, so it
// remains the foundational layer with no circular dependencies.
package ir
