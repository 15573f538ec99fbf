package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"qrconform/internal/extract"
	"qrconform/internal/matrix"
	"qrconform/internal/refenc"
	"qrconform/internal/testutil"
)

func writeDump(t *testing.T, m *matrix.Matrix) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.txt")
	require.NoError(t, os.WriteFile(path, []byte(extract.FormatDump(m)), 0o644))
	return path
}

func TestCheck_ConformantDump(t *testing.T) {
	m, err := refenc.GoQR{}.Encode("HELLO", matrix.ECMedium)
	require.NoError(t, err)

	out, err := executeCommand("check", writeDump(t, m))
	require.NoError(t, err)
	assert.Contains(t, out, "size: OK (21x21 (version 1))")
	assert.Contains(t, out, "finder: OK")
	assert.Contains(t, out, "timing: OK")
}

func TestCheck_CorruptedFinderFails(t *testing.T) {
	rows := testutil.SyntheticRows(1)
	rows[0][0] = false
	m, err := matrix.New(rows)
	require.NoError(t, err)

	out, err := executeCommand("check", writeDump(t, m))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "finder: FAILED at (0,0)")
}

func TestCheck_NonVersionSizeFails(t *testing.T) {
	m, err := matrix.New([][]bool{
		{true, false, true},
		{false, true, false},
		{true, false, true},
	})
	require.NoError(t, err)

	out, err := executeCommand("check", writeDump(t, m))
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "does not match any QR version")
}

func TestCheck_DumpWithoutMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dump.txt")
	require.NoError(t, os.WriteFile(path, []byte("just noise\n"), 0o644))

	_, err := executeCommand("check", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestCheck_MissingFileIsCommandError(t *testing.T) {
	_, err := executeCommand("check", filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
