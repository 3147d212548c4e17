package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/netfab/ctrlgraph/internal/config"
	"github.com/netfab/ctrlgraph/internal/sqlnode"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
	Database string
}

// NewStatsCommand creates the stats command.
func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats <topology.yaml>",
		Short: "Run one iteration and dump per-node counters",
		Args:  cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runStats(opts *StatsOptions, path string, cmd *cobra.Command) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading topology file", err)
	}

	topo, err := config.Load(raw)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading topology", err)
	}

	db, err := sqlnode.Open(opts.Database, true)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening database", err)
	}
	defer db.Close()

	e, err := newBuilder(db).Compile(topo)
	if err != nil {
		return WrapExitError(ExitCommandError, "compiling topology", err)
	}

	if err := e.Init(nil); err != nil {
		return WrapExitError(ExitCommandError, "initializing engine", err)
	}
	defer e.Cleanup()

	if err := e.Run(cmd.Context(), true); err != nil {
		return WrapExitError(ExitFailure, "engine iteration failed", err)
	}

	formatter := &OutputFormatter{
		Format:  opts.Format,
		Writer:  cmd.OutOrStdout(),
		Verbose: opts.Verbose,
	}

	allStats := e.AllStats()
	names := make([]string, 0, len(allStats))
	for name := range allStats {
		names = append(names, name)
	}
	sort.Strings(names)

	if formatter.Format == "json" {
		type nodeStats struct {
			Name      string `json:"name"`
			Recompute uint64 `json:"recompute"`
			Compute   uint64 `json:"compute"`
			Cancel    uint64 `json:"cancel"`
		}
		out := make([]nodeStats, 0, len(names))
		for _, name := range names {
			s := allStats[name]
			out = append(out, nodeStats{Name: name, Recompute: s.Recompute, Compute: s.Compute, Cancel: s.Cancel})
		}
		return writeJSON(formatter.Writer, map[string]any{"iterations": e.IterationCount(), "nodes": out})
	}

	fmt.Fprintf(formatter.Writer, "iterations: %d\n", e.IterationCount())
	for _, name := range names {
		s := allStats[name]
		fmt.Fprintf(formatter.Writer, "%-24s recompute=%-6d compute=%-6d cancel=%-6d\n", name, s.Recompute, s.Compute, s.Cancel)
	}
	return nil
}
