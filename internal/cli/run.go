package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/netfab/ctrlgraph/internal/config"
	"github.com/netfab/ctrlgraph/internal/sqlnode"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database   string
	Iterations int
	Force      bool
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <topology.yaml>",
		Short: "Run a topology's engine for a number of iterations",
		Long: `Load a topology, wire its table_source nodes against a SQLite
database, initialize the engine, and run the requested number of
iterations.

Example:
  ctrlgraph run --db ./ctrlgraph.db --iterations 5 ./topology.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTopology(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", 1, "number of iterations to run")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "force a full recompute on the first iteration")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runTopology(opts *RunOptions, path string, cmd *cobra.Command) error {
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel}))

	raw, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "reading topology file", err)
	}

	topo, err := config.Load(raw)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading topology", err)
	}

	log.Info("opening database", "path", opts.Database)
	db, err := sqlnode.Open(opts.Database, true)
	if err != nil {
		return WrapExitError(ExitCommandError, "opening database", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()

	b := newBuilder(db)
	e, err := b.Compile(topo, engineOptionsWithLogger(log)...)
	if err != nil {
		return WrapExitError(ExitCommandError, "compiling topology", err)
	}

	if err := e.Init(nil); err != nil {
		return WrapExitError(ExitCommandError, "initializing engine", err)
	}
	defer e.Cleanup()

	if opts.Force {
		e.SetForceRecompute()
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			log.Info("received signal, stopping after current iteration", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	for i := 0; i < opts.Iterations; i++ {
		if ctx.Err() != nil {
			break
		}
		if err := e.Run(ctx, true); err != nil {
			return WrapExitError(ExitFailure, "engine iteration failed", err)
		}

		if err := reportIteration(formatter, e, i); err != nil {
			return err
		}
	}

	return nil
}

func reportIteration(formatter *OutputFormatter, e interface {
	Canceled() bool
	HasUpdated() bool
}, index int) error {
	if formatter.Format == "json" {
		return writeJSON(formatter.Writer, map[string]any{
			"iteration": index,
			"canceled":  e.Canceled(),
			"updated":   e.HasUpdated(),
		})
	}
	fmt.Fprintf(formatter.Writer, "iteration %d: canceled=%v updated=%v\n", index, e.Canceled(), e.HasUpdated())
	return nil
}
