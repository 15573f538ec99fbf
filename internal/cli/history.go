package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"qrconform/internal/runstore"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	DBPath string
	Limit  int
	RunID  string
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded suite runs",
		Long: `List runs recorded with 'run --db', newest first, or show the
per-case verdicts of a single run.

Examples:
  qrconform history --db history.db
  qrconform history --db history.db --run 0195fb9a-...`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.DBPath, "db", "", "history database path (required)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum number of runs to list")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "show case verdicts for one run")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	st, err := runstore.Open(opts.DBPath)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer st.Close()

	if opts.RunID != "" {
		return showRun(opts, st, cmd)
	}
	return listRuns(opts, st, cmd)
}

func listRuns(opts *HistoryOptions, st *runstore.Store, cmd *cobra.Command) error {
	runs, err := st.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: runs})
	}

	w := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(w, "No recorded runs.")
		return nil
	}
	for _, r := range runs {
		verdict := "PASSED"
		if !r.AllPassed {
			verdict = "FAILED"
		}
		fmt.Fprintf(w, "%s  %s  %-6s  %s\n", r.RunID, r.StartedAt.Format(time.RFC3339), verdict, r.PlanName)
	}
	return nil
}

func showRun(opts *HistoryOptions, st *runstore.Store, cmd *cobra.Command) error {
	cases, err := st.CaseResults(cmd.Context(), opts.RunID)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read case results", err)
	}

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: cases})
	}

	w := cmd.OutOrStdout()
	if len(cases) == 0 {
		fmt.Fprintf(w, "No case results for run %s.\n", opts.RunID)
		return nil
	}
	for _, c := range cases {
		mark := "✓"
		if !c.Passed {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s (payload %q, EC=%s)\n", mark, c.CaseName, c.Payload, c.ECLevel)
		if c.Detail != "" {
			fmt.Fprintf(w, "  %s\n", c.Detail)
		}
	}
	return nil
}
