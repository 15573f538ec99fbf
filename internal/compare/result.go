// Package compare implements the structural checks run on QR matrices:
// size agreement, finder patterns, timing patterns and format information.
//
// Checks come in two shapes. Standalone checks validate a single matrix
// against the constants mandated by the QR standard; pairwise checks
// validate that a candidate matrix agrees with a reference matrix at the
// same coordinates. Every check scans its complete coordinate set and
// collects every mismatch before returning, so one report surfaces the
// full defect set. Only the size precheck short-circuits: pairwise checks
// on matrices of different sizes are meaningless.
package compare

import (
	"fmt"
	"strings"
)

// Check names as they appear in reports and the run store.
const (
	CheckSize        = "size"
	CheckFinder      = "finder"
	CheckFinderEqual = "finder-equal"
	CheckTiming      = "timing"
	CheckTimingEqual = "timing-equal"
	CheckFormatInfo  = "format-info"
)

// maxPrintedMismatches caps the mismatch list in rendered summaries.
// The Result itself always carries the complete set.
const maxPrintedMismatches = 5

// Mismatch records one disagreeing module at absolute matrix coordinates.
// For pairwise checks Want is the reference value and Got the candidate's;
// for standalone checks Want is the value the standard mandates.
type Mismatch struct {
	Row  int
	Col  int
	Want bool
	Got  bool
}

func (m Mismatch) String() string {
	return fmt.Sprintf("(%d,%d) want %s got %s", m.Row, m.Col, module(m.Want), module(m.Got))
}

func module(dark bool) string {
	if dark {
		return "dark"
	}
	return "light"
}

// Result is the verdict of a single check. It is never mutated after the
// check returns it.
type Result struct {
	// Name identifies the check (one of the Check* constants).
	Name string

	// Pass reflects the complete mismatch set, even when a rendered
	// summary truncates the printed list.
	Pass bool

	// Mismatches lists every disagreeing coordinate, in scan order.
	Mismatches []Mismatch

	// Detail is a human-readable description of the verdict.
	Detail string
}

// pass builds a passing Result.
func pass(name, detail string) Result {
	return Result{Name: name, Pass: true, Detail: detail}
}

// fail builds a failing Result from the collected mismatches.
func fail(name string, mismatches []Mismatch) Result {
	return Result{
		Name:       name,
		Pass:       false,
		Mismatches: mismatches,
		Detail:     fmt.Sprintf("%d mismatching module(s)", len(mismatches)),
	}
}

// Summary renders the verdict with at most maxPrintedMismatches coordinates.
func (r Result) Summary() string {
	if r.Pass {
		return fmt.Sprintf("%s: OK (%s)", r.Name, r.Detail)
	}
	if len(r.Mismatches) == 0 {
		return fmt.Sprintf("%s: FAILED (%s)", r.Name, r.Detail)
	}

	shown := r.Mismatches
	suffix := ""
	if len(shown) > maxPrintedMismatches {
		suffix = fmt.Sprintf(" ... and %d more", len(shown)-maxPrintedMismatches)
		shown = shown[:maxPrintedMismatches]
	}
	parts := make([]string, len(shown))
	for i, m := range shown {
		parts[i] = m.String()
	}
	return fmt.Sprintf("%s: FAILED at %s%s", r.Name, strings.Join(parts, ", "), suffix)
}
