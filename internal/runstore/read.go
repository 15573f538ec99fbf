package runstore

import (
	"context"
	"fmt"
	"time"
)

// RunSummary is one row of the history listing.
type RunSummary struct {
	RunID     string
	PlanName  string
	StartedAt time.Time
	AllPassed bool
}

// CaseResult is one recorded case verdict.
type CaseResult struct {
	CaseName string
	Payload  string
	ECLevel  string
	Passed   bool
	Detail   string
}

// ListRuns returns the most recent runs, newest first. UUIDv7 run tokens
// sort by creation time, so ordering by run_id is chronological.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, plan_name, started_at, all_passed
		 FROM runs ORDER BY run_id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var started string
		var passed int
		if err := rows.Scan(&r.RunID, &r.PlanName, &started, &passed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
			return nil, fmt.Errorf("run %s: bad started_at %q: %w", r.RunID, started, err)
		}
		r.AllPassed = passed == 1
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// CaseResults returns the recorded verdicts for one run, in insertion
// order.
func (s *Store) CaseResults(ctx context.Context, runID string) ([]CaseResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT case_name, payload, ec_level, passed, detail
		 FROM case_results WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query case results: %w", err)
	}
	defer rows.Close()

	var results []CaseResult
	for rows.Next() {
		var c CaseResult
		var passed int
		if err := rows.Scan(&c.CaseName, &c.Payload, &c.ECLevel, &passed, &c.Detail); err != nil {
			return nil, fmt.Errorf("scan case result: %w", err)
		}
		c.Passed = passed == 1
		results = append(results, c)
	}
	return results, rows.Err()
}
