package refenc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrconform/internal/compare"
	"qrconform/internal/matrix"
)

func TestGoQR_HelloMediumIsVersion1(t *testing.T) {
	m, err := GoQR{}.Encode("HELLO", matrix.ECMedium)
	require.NoError(t, err)

	assert.Equal(t, 21, m.Size(), "automatic version selection picks version 1")
	v, err := m.Version()
	require.NoError(t, err)
	assert.Equal(t, 1, v)
}

func TestGoQR_OutputIsStructurallyConformant(t *testing.T) {
	m, err := GoQR{}.Encode("https://example.com", matrix.ECQuartile)
	require.NoError(t, err)

	assert.True(t, compare.FinderPatterns(m).Pass, "finder patterns")
	assert.True(t, compare.TimingPatterns(m).Pass, "timing patterns")
}

func TestGoQR_NoQuietZone(t *testing.T) {
	m, err := GoQR{}.Encode("HELLO", matrix.ECMedium)
	require.NoError(t, err)

	// With a zero-width border the top-left finder corner sits at (0,0).
	assert.True(t, m.At(0, 0), "corner module must be the dark finder border, not quiet zone")
}

func TestGoQR_LargerPayloadPicksLargerVersion(t *testing.T) {
	small, err := GoQR{}.Encode("HELLO", matrix.ECMedium)
	require.NoError(t, err)
	large, err := GoQR{}.Encode(strings.Repeat("payload ", 30), matrix.ECMedium)
	require.NoError(t, err)

	assert.Greater(t, large.Size(), small.Size())
}

func TestGoQR_CapacityOverflow(t *testing.T) {
	// Version 40 at level L caps out below 3000 bytes; far beyond that the
	// encoder must reject rather than truncate.
	_, err := GoQR{}.Encode(strings.Repeat("x", 4000), matrix.ECLow)
	require.Error(t, err)

	var encErr *ReferenceEncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Equal(t, matrix.ECLow, encErr.Level)
	assert.Len(t, encErr.Payload, 4000)
}

func TestGoQR_Probe(t *testing.T) {
	assert.NoError(t, GoQR{}.Probe())
}
