package suite

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrconform/internal/compare"
	"qrconform/internal/oracle"
	"qrconform/internal/refenc"
)

// Golden file regeneration: go test ./internal/suite -update
func TestReport_GoldenDefaultPlan(t *testing.T) {
	r := &Runner{
		Provider: refenc.GoQR{},
		Oracle:   oracle.Unavailable(),
		RunID:    "test-run-token",
	}
	report, err := r.Run(context.Background(), DefaultPlan())
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "default-plan", []byte(report.RenderString()))
}

func TestCaseReport_Passed(t *testing.T) {
	ok := CaseReport{
		Checks: []compare.Result{{Name: compare.CheckFinder, Pass: true}},
		Decode: oracle.Outcome{Status: oracle.StatusSkipped},
	}
	assert.True(t, ok.Passed())

	withErr := ok
	withErr.Err = "candidate extraction failed"
	assert.False(t, withErr.Passed())

	withBadCheck := CaseReport{
		Checks: []compare.Result{
			{Name: compare.CheckFinder, Pass: true},
			{Name: compare.CheckTiming, Pass: false},
		},
		Decode: oracle.Outcome{Status: oracle.StatusSkipped},
	}
	assert.False(t, withBadCheck.Passed())

	withNoResult := CaseReport{Decode: oracle.Outcome{Status: oracle.StatusNoResult}}
	assert.False(t, withNoResult.Passed())
}

func TestReport_RenderFailureNamesCoordinates(t *testing.T) {
	report := &Report{
		PlanName: "render",
		Cases: []CaseReport{{
			Name:    "bad",
			Payload: "HELLO",
			Level:   "M",
			Size:    21,
			Version: 1,
			Checks: []compare.Result{{
				Name:       compare.CheckTiming,
				Pass:       false,
				Mismatches: []compare.Mismatch{{Row: 6, Col: 9, Want: false, Got: true}},
			}},
			Decode: oracle.Outcome{Status: oracle.StatusSkipped, Note: "decoder not available"},
		}},
	}

	out := report.RenderString()
	assert.Contains(t, out, "(6,9) want light got dark", "failing checks name exact coordinates")
	assert.Contains(t, out, "Some tests FAILED")
	assert.NotContains(t, out, "Run:", "no run line without a token")
}
