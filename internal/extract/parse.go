// Package extract obtains a candidate matrix from the system under test
// by invoking its debug entry point as a separate process and parsing the
// textual dump it prints.
//
// The wire contract is deliberately minimal: a marker line followed by
// one '0'/'1' text line per matrix row, terminated by a blank or
// non-matching line. Parsing is pure and deterministic, so the transport
// (process stdout, a file, a socket) can be swapped without touching the
// comparison logic.
package extract

import (
	"fmt"
	"strings"

	"qrconform/internal/matrix"
)

// Marker is the literal line announcing a matrix dump on the candidate's
// standard output. Fixed by convention with the candidate.
const Marker = "Matrix (1=black, 0=white):"

// FailureReason categorizes extraction failures.
type FailureReason string

const (
	// ReasonLaunch indicates the candidate process could not be started.
	ReasonLaunch FailureReason = "LAUNCH_FAILED"

	// ReasonExit indicates the candidate process exited non-zero.
	ReasonExit FailureReason = "NONZERO_EXIT"

	// ReasonTimeout indicates the candidate did not finish in time.
	ReasonTimeout FailureReason = "TIMEOUT"

	// ReasonNoMarker indicates no line contained the marker text.
	ReasonNoMarker FailureReason = "MARKER_NOT_FOUND"

	// ReasonNoRows indicates the marker was present but no '0'/'1' rows
	// followed it.
	ReasonNoRows FailureReason = "NO_MATRIX_ROWS"

	// ReasonMalformed indicates the rows did not form a square matrix.
	ReasonMalformed FailureReason = "MALFORMED_MATRIX"
)

// CandidateExtractionError is a per-case failure: the suite counts the
// case as failed and continues. The raw captured output is attached for
// diagnosis.
type CandidateExtractionError struct {
	Reason FailureReason
	Output string
	Err    error
}

func (e *CandidateExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("candidate extraction failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("candidate extraction failed (%s)", e.Reason)
}

func (e *CandidateExtractionError) Unwrap() error {
	return e.Err
}

// ParseDump locates a matrix dump in captured candidate output. It scans
// line by line for the marker, then consumes subsequent lines composed
// solely of '0' and '1' characters as rows until a blank or non-matching
// line. A missing marker, an empty row block, or ragged rows are all
// extraction errors; a zero-size matrix is never returned as success.
func ParseDump(output string) (*matrix.Matrix, error) {
	lines := strings.Split(output, "\n")

	start := -1
	for i, line := range lines {
		if strings.Contains(line, Marker) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil, &CandidateExtractionError{Reason: ReasonNoMarker, Output: output}
	}

	var rows [][]bool
	for _, line := range lines[start:] {
		line = strings.TrimSpace(line)
		if line == "" || !isBitRow(line) {
			break
		}
		row := make([]bool, len(line))
		for i, c := range line {
			row[i] = c == '1'
		}
		rows = append(rows, row)
	}
	if len(rows) == 0 {
		return nil, &CandidateExtractionError{Reason: ReasonNoRows, Output: output}
	}

	m, err := matrix.New(rows)
	if err != nil {
		return nil, &CandidateExtractionError{Reason: ReasonMalformed, Output: output, Err: err}
	}
	return m, nil
}

// FormatDump renders a matrix in the dump wire format, marker included.
// Useful for debugging the protocol and as the inverse of ParseDump.
func FormatDump(m *matrix.Matrix) string {
	var b strings.Builder
	b.WriteString(Marker)
	b.WriteByte('\n')
	for r := 0; r < m.Size(); r++ {
		for c := 0; c < m.Size(); c++ {
			if m.At(r, c) {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func isBitRow(line string) bool {
	for _, c := range line {
		if c != '0' && c != '1' {
			return false
		}
	}
	return true
}
