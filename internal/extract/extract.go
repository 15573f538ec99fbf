package extract

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"

	"qrconform/internal/matrix"
)

// DefaultTimeout bounds a single candidate invocation. An unbounded hang
// would stall the whole suite, so expiry is an extraction failure.
const DefaultTimeout = 30 * time.Second

// waitDelay is how long Wait keeps copying output after the context
// kills the child. Descendants that inherited the pipes (test runners,
// shell wrappers) would otherwise hold them open indefinitely.
const waitDelay = time.Second

// Extractor invokes the candidate's fixed debug command and parses the
// matrix dump from its standard output. The mapping from test case to
// printed matrix is fixed by convention with the candidate; no arguments
// beyond the configured command are passed.
type Extractor struct {
	// Command is the candidate invocation: argv[0] plus fixed arguments.
	Command []string

	// Timeout bounds the invocation; DefaultTimeout when zero.
	Timeout time.Duration
}

// Extract runs the candidate once and returns the parsed matrix. Every
// failure mode (launch failure, non-zero exit, timeout, missing marker,
// malformed rows) surfaces as a *CandidateExtractionError carrying the
// captured output.
func (e *Extractor) Extract(ctx context.Context) (*matrix.Matrix, error) {
	if len(e.Command) == 0 {
		return nil, &CandidateExtractionError{Reason: ReasonLaunch, Err: errors.New("no candidate command configured")}
	}

	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.Command[0], e.Command[1:]...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	captured := stdout.String() + stderr.String()

	if ctx.Err() == context.DeadlineExceeded {
		return nil, &CandidateExtractionError{Reason: ReasonTimeout, Output: captured, Err: ctx.Err()}
	}
	if err != nil {
		reason := ReasonLaunch
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			reason = ReasonExit
		}
		return nil, &CandidateExtractionError{Reason: reason, Output: captured, Err: err}
	}

	// Only stdout carries the wire protocol; stderr is diagnostics.
	return ParseDump(stdout.String())
}
