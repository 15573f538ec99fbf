package extract

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_ParsesCandidateStdout(t *testing.T) {
	e := &Extractor{Command: []string{"sh", "-c", `printf 'noise\nMatrix (1=black, 0=white):\n10\n01\n'`}}

	m, err := e.Extract(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, m.Size())
	assert.True(t, m.At(0, 0))
	assert.False(t, m.At(1, 0))
}

func TestExtract_NoCommandConfigured(t *testing.T) {
	e := &Extractor{}

	_, err := e.Extract(context.Background())
	require.Error(t, err)

	var extErr *CandidateExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, ReasonLaunch, extErr.Reason)
}

func TestExtract_LaunchFailure(t *testing.T) {
	e := &Extractor{Command: []string{"/nonexistent/candidate-binary"}}

	_, err := e.Extract(context.Background())
	require.Error(t, err)

	var extErr *CandidateExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, ReasonLaunch, extErr.Reason)
}

func TestExtract_NonZeroExit(t *testing.T) {
	e := &Extractor{Command: []string{"sh", "-c", "echo diagnostics >&2; exit 3"}}

	_, err := e.Extract(context.Background())
	require.Error(t, err)

	var extErr *CandidateExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, ReasonExit, extErr.Reason)
	assert.Contains(t, extErr.Output, "diagnostics", "stderr attached for diagnosis")
}

func TestExtract_Timeout(t *testing.T) {
	e := &Extractor{
		Command: []string{"sh", "-c", "sleep 10"},
		Timeout: 50 * time.Millisecond,
	}

	start := time.Now()
	_, err := e.Extract(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "expiry must not wait for the candidate")

	var extErr *CandidateExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, ReasonTimeout, extErr.Reason)
}

func TestExtract_TimeoutWithDescendantHoldingPipes(t *testing.T) {
	// The shell is killed at the deadline but its backgrounded child
	// inherits the stdout pipe and keeps it open well past the kill.
	e := &Extractor{
		Command: []string{"sh", "-c", "sleep 8 & wait"},
		Timeout: 100 * time.Millisecond,
	}

	start := time.Now()
	_, err := e.Extract(context.Background())
	require.Error(t, err)
	assert.Less(t, time.Since(start), 5*time.Second, "expiry must not wait for descendants")

	var extErr *CandidateExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, ReasonTimeout, extErr.Reason)
}

func TestExtract_MarkerMissingFromProcessOutput(t *testing.T) {
	e := &Extractor{Command: []string{"sh", "-c", "echo 'hello world'"}}

	_, err := e.Extract(context.Background())
	require.Error(t, err)

	var extErr *CandidateExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, ReasonNoMarker, extErr.Reason)
}
