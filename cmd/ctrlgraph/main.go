// Command ctrlgraph is the operator CLI for the incremental DAG
// processing engine: validate topologies, run iterations against a
// SQLite-backed source, inspect per-node counters, and export the DAG
// as Graphviz DOT.
package main

import (
	"os"

	"github.com/netfab/ctrlgraph/internal/cli"
)

func main() {
	root := cli.NewRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
