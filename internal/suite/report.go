package suite

import (
	"fmt"
	"io"
	"strings"
	"time"

	"qrconform/internal/compare"
	"qrconform/internal/oracle"
)

// Report aggregates the whole suite run. Never mutated after Run returns.
type Report struct {
	// RunID is the UUIDv7 token identifying this run.
	RunID string `json:"run_id"`

	// PlanName names the executed plan.
	PlanName string `json:"plan_name"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Cases holds one entry per test case, in plan order.
	Cases []CaseReport `json:"cases"`

	// AllPassed is true iff every case passed. Skipped decode checks do
	// not count against it.
	AllPassed bool `json:"all_passed"`
}

// CaseReport is the outcome of a single (payload, EC level) case.
type CaseReport struct {
	Name    string `json:"name"`
	Payload string `json:"payload"`
	Level   string `json:"level"`

	// Size and Version describe the reference matrix; zero when
	// reference encoding failed.
	Size    int `json:"size,omitempty"`
	Version int `json:"version,omitempty"`

	// Checks lists every structural check verdict, in execution order.
	Checks []compare.Result `json:"checks,omitempty"`

	// Decode is the round-trip oracle outcome.
	Decode oracle.Outcome `json:"decode"`

	// Err records a per-case failure (reference encoding or candidate
	// extraction) that prevented some or all checks from running.
	Err string `json:"error,omitempty"`
}

// Passed reports whether the case counts as passing.
func (c *CaseReport) Passed() bool {
	if c.Err != "" {
		return false
	}
	for _, check := range c.Checks {
		if !check.Pass {
			return false
		}
	}
	return !c.Decode.Failed()
}

const reportRule = "========================================"

// Render writes the human-readable report: one section per case plus the
// final summary line.
func (r *Report) Render(w io.Writer) {
	fmt.Fprintf(w, "QR Conformance Suite: %s\n", r.PlanName)
	if r.RunID != "" {
		fmt.Fprintf(w, "Run: %s\n", r.RunID)
	}
	fmt.Fprintln(w, reportRule)

	for i := range r.Cases {
		c := &r.Cases[i]
		fmt.Fprintf(w, "\nCase: %s (payload %q, EC=%s)\n", c.Name, c.Payload, c.Level)
		if c.Err != "" {
			fmt.Fprintf(w, "  error: %s\n", c.Err)
		}
		if c.Size > 0 {
			fmt.Fprintf(w, "  reference: %dx%d (version %d)\n", c.Size, c.Size, c.Version)
		}
		for _, check := range c.Checks {
			fmt.Fprintf(w, "  %s\n", check.Summary())
		}
		fmt.Fprintf(w, "  %s\n", c.Decode)
	}

	fmt.Fprintf(w, "\n%s\n", reportRule)
	if r.AllPassed {
		fmt.Fprintln(w, "All tests PASSED")
	} else {
		fmt.Fprintln(w, "Some tests FAILED")
	}
}

// RenderString is Render into a string, for logging and golden tests.
func (r *Report) RenderString() string {
	var b strings.Builder
	r.Render(&b)
	return b.String()
}
