package runstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"qrconform/internal/suite"
)

// WriteReport records a completed suite run and every case verdict in a
// single transaction.
func (s *Store) WriteReport(ctx context.Context, report *suite.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, plan_name, started_at, all_passed) VALUES (?, ?, ?, ?)`,
		report.RunID, report.PlanName, report.StartedAt.UTC().Format(time.RFC3339), boolInt(report.AllPassed),
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", report.RunID, err)
	}

	for i := range report.Cases {
		c := &report.Cases[i]
		_, err = tx.ExecContext(ctx,
			`INSERT INTO case_results (run_id, case_name, payload, ec_level, passed, detail)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			report.RunID, c.Name, c.Payload, c.Level, boolInt(c.Passed()), caseDetail(c),
		)
		if err != nil {
			return fmt.Errorf("insert case %s: %w", c.Name, err)
		}
	}

	return tx.Commit()
}

// caseDetail condenses a case's failures into one line for the history
// listing. Passing cases store an empty detail.
func caseDetail(c *suite.CaseReport) string {
	var parts []string
	if c.Err != "" {
		parts = append(parts, c.Err)
	}
	for _, check := range c.Checks {
		if !check.Pass {
			parts = append(parts, check.Summary())
		}
	}
	if c.Decode.Failed() {
		parts = append(parts, c.Decode.String())
	}
	return strings.Join(parts, "; ")
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
