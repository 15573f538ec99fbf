package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"qrconform/internal/compare"
	"qrconform/internal/extract"
)

// CheckOptions holds flags for the check command.
type CheckOptions struct {
	*RootOptions
}

// CheckResult is the JSON payload of the check command.
type CheckResult struct {
	Size    int              `json:"size"`
	Version int              `json:"version,omitempty"`
	Checks  []compare.Result `json:"checks"`
	Pass    bool             `json:"pass"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <dump-file>",
		Short: "Run standalone structural checks on a matrix dump",
		Long: `Parse a matrix dump (the marker-line wire format) from a file and
validate it against the structural constants of the QR standard:
version-consistent size, finder patterns, timing patterns.

Exit codes:
  0 - Matrix is structurally conformant
  1 - Structural check failed or the dump is malformed
  2 - Command error (unreadable file)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(opts, args[0], cmd)
		},
	}

	return cmd
}

func runCheck(opts *CheckOptions, path string, cmd *cobra.Command) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read dump file", err)
	}

	m, err := extract.ParseDump(string(data))
	if err != nil {
		return WrapExitError(ExitFailure, "dump is not a valid matrix", err)
	}

	result := CheckResult{Size: m.Size(), Pass: true}
	if v, err := m.Version(); err != nil {
		result.Pass = false
		result.Checks = append(result.Checks, compare.Result{
			Name:   compare.CheckSize,
			Pass:   false,
			Detail: err.Error(),
		})
	} else {
		result.Version = v
		result.Checks = append(result.Checks, compare.Result{
			Name:   compare.CheckSize,
			Pass:   true,
			Detail: fmt.Sprintf("%dx%d (version %d)", m.Size(), m.Size(), v),
		})
		result.Checks = append(result.Checks, compare.FinderPatterns(m))
		result.Checks = append(result.Checks, compare.TimingPatterns(m))
	}
	for _, check := range result.Checks {
		if !check.Pass {
			result.Pass = false
		}
	}

	if opts.Format == "json" {
		return outputCheckJSON(cmd, result)
	}

	w := cmd.OutOrStdout()
	for _, check := range result.Checks {
		fmt.Fprintln(w, check.Summary())
	}
	if !result.Pass {
		return NewExitError(ExitFailure, "structural checks failed")
	}
	return nil
}

func outputCheckJSON(cmd *cobra.Command, result CheckResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if !result.Pass {
		response.Status = "error"
		response.Error = &CLIError{Code: "E_STRUCTURE", Message: "structural checks failed"}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}
	if !result.Pass {
		return NewExitError(ExitFailure, "structural checks failed")
	}
	return nil
}
