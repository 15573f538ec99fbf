package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"qrconform/internal/extract"
)

// ExtractOptions holds flags for the extract command.
type ExtractOptions struct {
	*RootOptions
	Timeout time.Duration
}

// NewExtractCommand creates the extract command, a debugging aid for the
// candidate wire protocol: it invokes the candidate once and echoes the
// parsed matrix back in dump form.
func NewExtractCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExtractOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "extract -- <command> [args...]",
		Short: "Invoke a candidate and print its extracted matrix",
		Long: `Run a candidate debug command, scan its standard output for the
matrix marker, and print the parsed matrix back in the same wire
format. Useful for debugging a candidate's dump protocol before
wiring it into the suite.

Exit codes:
  0 - A matrix was extracted
  1 - Extraction failed (process error, missing marker, malformed rows)

Example:
  qrconform extract -- cargo test -p qr -- --nocapture debug_print_matrix`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(opts, args, cmd)
		},
	}

	cmd.Flags().DurationVar(&opts.Timeout, "timeout", extract.DefaultTimeout, "candidate invocation timeout")

	return cmd
}

func runExtract(opts *ExtractOptions, args []string, cmd *cobra.Command) error {
	e := &extract.Extractor{Command: args, Timeout: opts.Timeout}

	m, err := e.Extract(cmd.Context())
	if err != nil {
		var extErr *extract.CandidateExtractionError
		if opts.Verbose && errors.As(err, &extErr) && extErr.Output != "" {
			fmt.Fprintln(cmd.ErrOrStderr(), "captured output:")
			fmt.Fprintln(cmd.ErrOrStderr(), extErr.Output)
		}
		return WrapExitError(ExitFailure, "extraction failed", err)
	}

	fmt.Fprint(cmd.OutOrStdout(), extract.FormatDump(m))
	return nil
}
