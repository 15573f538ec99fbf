package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"qrconform/internal/extract"
	"qrconform/internal/oracle"
	"qrconform/internal/refenc"
	"qrconform/internal/runstore"
	"qrconform/internal/suite"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Candidate string        // candidate debug command line; empty disables pairwise comparison
	Timeout   time.Duration // candidate invocation timeout
	Scale     int           // render upscale factor for the decode oracle
	NoDecode  bool          // disable the decode oracle
	DBPath    string        // record the run into this history database
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run [plan.yaml] [-- <candidate-command> [args...]]",
		Short: "Run the conformance suite",
		Long: `Run the conformance suite: every case encodes a payload with the
trusted reference encoder, checks it against the structural invariants
of the QR standard, optionally round-trips it through an independent
decoder, and, when a candidate command is configured, compares the
candidate's matrix against the reference module by module.

Without a plan file the fixed built-in suite runs.

Exit codes:
  0 - All checks in all cases passed
  1 - Conformance failure, or the reference encoder is unusable
  2 - Command error (unreadable plan file, invalid flags)

Examples:
  qrconform run
  qrconform run plans/nightly.yaml
  qrconform run --candidate "cargo test -p qr"
  qrconform run plans/nightly.yaml -- sh -c "cargo test -p qr | tee dump.txt"
  qrconform run --no-decode --db history.db
  qrconform run --format json`,
		Args: func(cmd *cobra.Command, args []string) error {
			plan := args
			if dash := cmd.ArgsLenAtDash(); dash >= 0 {
				plan = args[:dash]
			}
			if len(plan) > 1 {
				return fmt.Errorf("accepts at most one plan file, received %d", len(plan))
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSuite(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Candidate, "candidate", "", "candidate debug command, split on whitespace; pass the command after -- when its arguments contain spaces")
	cmd.Flags().DurationVar(&opts.Timeout, "timeout", extract.DefaultTimeout, "candidate invocation timeout")
	cmd.Flags().IntVar(&opts.Scale, "scale", oracle.DefaultScale, "pixels per module for the decode oracle")
	cmd.Flags().BoolVar(&opts.NoDecode, "no-decode", false, "skip the render-and-decode oracle")
	cmd.Flags().StringVar(&opts.DBPath, "db", "", "record the run into this history database")

	return cmd
}

func runSuite(opts *RunOptions, args []string, cmd *cobra.Command) error {
	planArgs := args
	var candidate []string
	if dash := cmd.ArgsLenAtDash(); dash >= 0 {
		planArgs = args[:dash]
		candidate = args[dash:]
	}
	if opts.Candidate != "" {
		if len(candidate) > 0 {
			return NewExitError(ExitCommandError, "pass the candidate either via --candidate or after --, not both")
		}
		candidate = strings.Fields(opts.Candidate)
	}

	plan := suite.DefaultPlan()
	if len(planArgs) == 1 {
		loaded, err := suite.LoadPlan(planArgs[0])
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load plan", err)
		}
		plan = loaded
	}

	runner := &suite.Runner{
		Provider: refenc.GoQR{},
		Oracle:   buildOracle(opts),
		Logger:   buildLogger(opts, cmd),
	}
	if len(candidate) > 0 {
		runner.Extractor = &extract.Extractor{
			Command: candidate,
			Timeout: opts.Timeout,
		}
	}

	report, err := runner.Run(cmd.Context(), plan)
	if err != nil {
		// Setup-level failure: missing required dependency. Abort with a
		// diagnostic before any case output.
		return WrapExitError(ExitFailure, "suite aborted", err)
	}

	if opts.DBPath != "" {
		if err := recordRun(cmd, opts.DBPath, report); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
	}

	if opts.Format == "json" {
		return outputRunJSON(cmd, report)
	}
	report.Render(cmd.OutOrStdout())
	if !report.AllPassed {
		return NewExitError(ExitFailure, "conformance suite failed")
	}
	return nil
}

// buildOracle resolves the decode capability once, before any case runs.
func buildOracle(opts *RunOptions) *oracle.Oracle {
	if opts.NoDecode {
		return oracle.Unavailable()
	}
	return oracle.New(oracle.NewZXing(), opts.Scale)
}

func buildLogger(opts *RunOptions, cmd *cobra.Command) *slog.Logger {
	if !opts.Verbose {
		return nil
	}
	// Verbose logs go to stderr so JSON output stays parseable.
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
}

func recordRun(cmd *cobra.Command, path string, report *suite.Report) error {
	st, err := runstore.Open(path)
	if err != nil {
		return err
	}
	defer st.Close()
	return st.WriteReport(cmd.Context(), report)
}

func outputRunJSON(cmd *cobra.Command, report *suite.Report) error {
	response := CLIResponse{Status: "ok", Data: report}
	if !report.AllPassed {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_CONFORMANCE_FAILED",
			Message: fmt.Sprintf("%d case(s) failed", failedCases(report)),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}
	if !report.AllPassed {
		return NewExitError(ExitFailure, "conformance suite failed")
	}
	return nil
}

func failedCases(report *suite.Report) int {
	n := 0
	for i := range report.Cases {
		if !report.Cases[i].Passed() {
			n++
		}
	}
	return n
}
