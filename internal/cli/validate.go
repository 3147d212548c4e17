package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netfab/ctrlgraph/internal/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <topology.yaml>",
		Short: "Validate a topology without running it",
		Long: `Validate a declarative topology document: parse the YAML, check it
against the embedded CUE schema, and check semantic constraints
(duplicate node names, inputs referencing undeclared nodes).

Does not resolve node kinds against the built-in registry or
initialize any node data.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return outputValidateError(formatter, ErrCodeNotFound, fmt.Sprintf("reading topology file: %v", err))
	}

	formatter.VerboseLog("loaded %d bytes from %s", len(raw), path)

	topo, err := config.Load(raw)
	if err != nil {
		if verrs, ok := err.(config.ValidationErrors); ok {
			return outputValidationErrors(formatter, verrs)
		}
		return outputValidateError(formatter, ErrCodeLoadFailed, err.Error())
	}

	formatter.VerboseLog("topology declares %d node(s)", len(topo.Nodes))
	return outputValidateSuccess(formatter)
}

// Error code constants shared across CLI commands.
const (
	ErrCodeGeneric     = "E001" // generic/unknown error
	ErrCodeNotFound    = "E005" // path not found
	ErrCodeLoadFailed  = "E006" // topology failed to parse or compile
	ErrCodeEngineError = "E007" // engine run error
)

// ValidationResult is the JSON-mode payload for the validate command.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Errors []config.ValidationError `json:"errors,omitempty"`
}

func outputValidateSuccess(formatter *OutputFormatter) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true})
	}
	fmt.Fprintln(formatter.Writer, "topology valid")
	return nil
}

func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message))
}

func outputValidationErrors(formatter *OutputFormatter, errs config.ValidationErrors) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error:  &CLIError{Code: errs[0].Code, Message: errs[0].Message},
		}
		if err := writeJSON(formatter.Writer, response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "topology invalid")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		fmt.Fprintf(formatter.Writer, "  %s\n", e.Error())
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
