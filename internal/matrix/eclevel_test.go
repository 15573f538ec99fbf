package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestECLevel_RoundTrip(t *testing.T) {
	for _, name := range []string{"L", "M", "Q", "H"} {
		level, err := ParseECLevel(name)
		require.NoError(t, err)
		assert.Equal(t, name, level.String())
	}
}

func TestECLevel_Ordering(t *testing.T) {
	// Levels are ordered by increasing redundancy.
	assert.Less(t, ECLow, ECMedium)
	assert.Less(t, ECMedium, ECQuartile)
	assert.Less(t, ECQuartile, ECHigh)
}

func TestParseECLevel_Unknown(t *testing.T) {
	_, err := ParseECLevel("X")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"X"`)

	_, err = ParseECLevel("m")
	assert.Error(t, err, "level names are case-sensitive")
}
