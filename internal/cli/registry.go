package cli

import (
	"database/sql"

	"github.com/netfab/ctrlgraph/internal/config"
	"github.com/netfab/ctrlgraph/internal/engine"
	"github.com/netfab/ctrlgraph/internal/ir"
	"github.com/netfab/ctrlgraph/internal/sqlnode"
)

// newBuilder returns a config.Builder with the CLI's built-in node and
// handler kinds registered, backed by db for table_source nodes.
//
// table_source nodes poll a SQLite table named by the "table" param
// (defaulting to the node's own name). derived nodes have no built-in
// compute of their own; their Run always reports Updated whenever the
// driver calls it (an Updated input with no handler or whose handler
// returned Unhandled, a forced recompute, or a node with no inputs).
// This is the CLI's stand-in for a caller supplying real business
// logic via the library API.
func newBuilder(db *sql.DB) *config.Builder {
	b := config.NewBuilder()

	b.RegisterNodeKind("table_source", func(spec config.NodeSpec) (*config.NodeImpl, error) {
		table := spec.Params["table"]
		if table == "" {
			table = spec.Name
		}
		src, err := sqlnode.New(db, table)
		if err != nil {
			return nil, err
		}
		return &config.NodeImpl{
			Run:  src.Run,
			Init: src.Init,
		}, nil
	})

	b.RegisterNodeKind("derived", func(spec config.NodeSpec) (*config.NodeImpl, error) {
		return &config.NodeImpl{
			Run: func(n *engine.Node, data any) ir.NodeState { return ir.Updated },
		}, nil
	})

	b.RegisterHandlerKind("absorb", func(spec config.InputSpec) (engine.ChangeHandler, error) {
		return func(n *engine.Node, data any) ir.HandlerResult { return ir.HandledUpdated }, nil
	})

	b.RegisterHandlerKind("ignore", func(spec config.InputSpec) (engine.ChangeHandler, error) {
		return func(n *engine.Node, data any) ir.HandlerResult { return ir.HandledUnchanged }, nil
	})

	return b
}
