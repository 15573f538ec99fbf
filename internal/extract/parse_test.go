package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrconform/internal/testutil"
)

const sampleDump = `running 1 test
Matrix (1=black, 0=white):
101
010
110
test debug_print_matrix ... ok
`

func TestParseDump_ReadsRowsAfterMarker(t *testing.T) {
	m, err := ParseDump(sampleDump)
	require.NoError(t, err)

	assert.Equal(t, 3, m.Size())
	assert.True(t, m.At(0, 0))
	assert.False(t, m.At(0, 1))
	assert.True(t, m.At(2, 1))
	assert.False(t, m.At(2, 2))
}

func TestParseDump_Deterministic(t *testing.T) {
	// Re-extracting from identical output yields an identical matrix.
	first, err := ParseDump(sampleDump)
	require.NoError(t, err)
	second, err := ParseDump(sampleDump)
	require.NoError(t, err)

	require.Equal(t, first.Size(), second.Size())
	for r := 0; r < first.Size(); r++ {
		for c := 0; c < first.Size(); c++ {
			assert.Equal(t, first.At(r, c), second.At(r, c), "(%d,%d)", r, c)
		}
	}
}

func TestParseDump_StopsAtBlankLine(t *testing.T) {
	m, err := ParseDump(Marker + "\n10\n01\n\n11\n")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Size(), "rows after the blank terminator are ignored")
}

func TestParseDump_MarkerEmbeddedInLine(t *testing.T) {
	// The marker is matched by containment, mirroring test-runner output
	// that prefixes lines.
	m, err := ParseDump("[stdout] " + Marker + "\n10\n01\n")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Size())
}

func TestParseDump_MarkerMissing(t *testing.T) {
	_, err := ParseDump("no matrix here\n101\n010\n")
	require.Error(t, err)

	var extErr *CandidateExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, ReasonNoMarker, extErr.Reason)
	assert.Contains(t, extErr.Output, "no matrix here", "raw output attached for diagnosis")
}

func TestParseDump_MarkerButNoRows(t *testing.T) {
	_, err := ParseDump(Marker + "\n\n101\n")
	require.Error(t, err)

	var extErr *CandidateExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, ReasonNoRows, extErr.Reason)
}

func TestParseDump_RaggedRows(t *testing.T) {
	_, err := ParseDump(Marker + "\n101\n01\n110\n")
	require.Error(t, err)

	var extErr *CandidateExtractionError
	require.ErrorAs(t, err, &extErr)
	assert.Equal(t, ReasonMalformed, extErr.Reason)
}

func TestFormatDump_RoundTrip(t *testing.T) {
	original := testutil.Synthetic(1)

	parsed, err := ParseDump(FormatDump(original))
	require.NoError(t, err)

	require.Equal(t, original.Size(), parsed.Size())
	for r := 0; r < original.Size(); r++ {
		for c := 0; c < original.Size(); c++ {
			require.Equal(t, original.At(r, c), parsed.At(r, c), "(%d,%d)", r, c)
		}
	}
}
