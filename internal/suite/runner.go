// Package suite orchestrates conformance runs: it drives each plan case
// through the reference provider, the structural checks, the optional
// decode oracle and the optional candidate comparison, then aggregates a
// single pass/fail verdict.
package suite

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"qrconform/internal/compare"
	"qrconform/internal/extract"
	"qrconform/internal/oracle"
	"qrconform/internal/refenc"
)

// SetupError indicates a required dependency is unusable before any case
// has run. Fatal: the suite aborts with a diagnostic and a non-zero exit.
type SetupError struct {
	Component string
	Err       error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup failed: %s: %v", e.Component, e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// prober is implemented by providers that can verify themselves at suite
// start. Capability resolution happens once, not per case.
type prober interface {
	Probe() error
}

// Runner executes plans strictly sequentially. Cases share no mutable
// state; candidate extraction shares a single process invocation channel,
// so there is deliberately no parallelism.
type Runner struct {
	// Provider produces reference matrices. Required.
	Provider refenc.Provider

	// Oracle round-trips matrices through a decoder. A nil or
	// unavailable oracle downgrades decode checks to skipped.
	Oracle *oracle.Oracle

	// Extractor pulls candidate matrices for pairwise comparison.
	// Nil runs the reference self-consistency suite only.
	Extractor *extract.Extractor

	// RunID overrides the generated UUIDv7 token. Used by tests that
	// need deterministic report output.
	RunID string

	// Logger receives per-case progress. Nil discards.
	Logger *slog.Logger
}

// Run executes every case of the plan in order and returns the aggregate
// report. Per-case failures (encoding, extraction, mismatches) are folded
// into the report; only setup-level failures return an error.
func (r *Runner) Run(ctx context.Context, plan *Plan) (*Report, error) {
	if r.Provider == nil {
		return nil, &SetupError{Component: "reference encoder", Err: fmt.Errorf("no provider configured")}
	}
	if p, ok := r.Provider.(prober); ok {
		if err := p.Probe(); err != nil {
			return nil, &SetupError{Component: "reference encoder", Err: err}
		}
	}

	runID := r.RunID
	if runID == "" {
		runID = uuid.Must(uuid.NewV7()).String()
	}
	log := r.logger()

	report := &Report{
		RunID:     runID,
		PlanName:  plan.Name,
		StartedAt: time.Now().UTC(),
		AllPassed: true,
	}

	for _, c := range plan.Cases {
		log.Info("running case", "case", c.Name, "payload_bytes", len(c.Payload), "level", c.Level.String())
		cr := r.runCase(ctx, c)
		if !cr.Passed() {
			report.AllPassed = false
			log.Info("case failed", "case", c.Name, "error", cr.Err)
		}
		report.Cases = append(report.Cases, cr)
	}
	return report, nil
}

func (r *Runner) runCase(ctx context.Context, c Case) CaseReport {
	cr := CaseReport{
		Name:    c.Name,
		Payload: c.Payload,
		Level:   c.Level.String(),
		Decode:  oracle.Outcome{Status: oracle.StatusSkipped, Note: "decoder not available"},
	}

	ref, err := r.Provider.Encode(c.Payload, c.Level)
	if err != nil {
		// Fatal to this case only; the suite moves on.
		cr.Err = err.Error()
		return cr
	}
	cr.Size = ref.Size()
	if v, err := ref.Version(); err == nil {
		cr.Version = v
	}

	// Sanity-check the reference itself before trusting it as an oracle.
	cr.Checks = append(cr.Checks, compare.FinderPatterns(ref))
	cr.Checks = append(cr.Checks, compare.TimingPatterns(ref))

	if r.Oracle != nil {
		cr.Decode = r.Oracle.Check(ref, c.Payload)
	}

	if r.Extractor != nil {
		cand, err := r.Extractor.Extract(ctx)
		if err != nil {
			cr.Err = err.Error()
			return cr
		}
		sizes := compare.Sizes(ref, cand)
		cr.Checks = append(cr.Checks, sizes)
		if sizes.Pass {
			cr.Checks = append(cr.Checks, compare.FinderPatternsEqual(ref, cand))
			cr.Checks = append(cr.Checks, compare.TimingPatternsEqual(ref, cand))
			cr.Checks = append(cr.Checks, compare.FormatInfo(ref, cand))
		}
	}

	return cr
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var _ prober = refenc.GoQR{}
