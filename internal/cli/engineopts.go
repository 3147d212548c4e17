package cli

import (
	"log/slog"

	"github.com/netfab/ctrlgraph/internal/engine"
)

// engineOptionsWithLogger is a small convenience so command code reads
// as a single Compile(topo, opts...) call rather than threading a
// one-element slice literal through every command.
func engineOptionsWithLogger(log *slog.Logger) []engine.EngineOption {
	return []engine.EngineOption{engine.WithLogger(log)}
}
