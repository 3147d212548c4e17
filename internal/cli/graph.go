package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netfab/ctrlgraph/internal/config"
	"github.com/netfab/ctrlgraph/internal/dot"
	"github.com/netfab/ctrlgraph/internal/sqlnode"
)

// GraphOptions holds flags for the graph command.
type GraphOptions struct {
	*RootOptions
	Database string
	Run      bool
}

// NewGraphCommand creates the graph command.
func NewGraphCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GraphOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "graph <topology.yaml>",
		Short: "Emit a Graphviz DOT rendering of the constructed DAG",
		Args:  cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGraph(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (only needed with --run)")
	cmd.Flags().BoolVar(&opts.Run, "run", false, "run one iteration first, so node colors reflect state")

	return cmd
}

func runGraph(opts *GraphOptions, path string, cmd *cobra.Command) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading topology file", err)
	}

	topo, err := config.Load(raw)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading topology", err)
	}

	var b = newBuilder(nil)
	if opts.Run {
		if opts.Database == "" {
			return NewExitError(ExitCommandError, "--run requires --db")
		}
		db, err := sqlnode.Open(opts.Database, true)
		if err != nil {
			return WrapExitError(ExitCommandError, "opening database", err)
		}
		defer db.Close()
		b = newBuilder(db)
	}

	e, err := b.Compile(topo)
	if err != nil {
		return WrapExitError(ExitCommandError, "compiling topology", err)
	}

	if err := e.Init(nil); err != nil {
		return WrapExitError(ExitCommandError, "initializing engine", err)
	}
	defer e.Cleanup()

	if opts.Run {
		if err := e.Run(cmd.Context(), true); err != nil {
			return WrapExitError(ExitFailure, "engine iteration failed", err)
		}
	}

	fmt.Fprint(cmd.OutOrStdout(), dot.Render(e, "topology"))
	return nil
}
