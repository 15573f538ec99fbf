// Package matrix holds the canonical in-memory representation of a QR
// symbol: a square grid of dark/light modules plus its derived version.
//
// Matrices are produced by the reference encoder (internal/refenc) and the
// candidate extractor (internal/extract) and are read-only once constructed.
package matrix

import (
	"errors"
	"fmt"
)

// ErrNotSquare is returned when the input grid has rows of differing
// lengths or is not size x size.
var ErrNotSquare = errors.New("matrix is not square")

// MalformedSizeError indicates a matrix whose dimension does not
// correspond to any valid QR version (size = 4*version + 17).
type MalformedSizeError struct {
	Size int
}

func (e *MalformedSizeError) Error() string {
	return fmt.Sprintf("matrix size %d does not match any QR version (want 4v+17, v in [1,40])", e.Size)
}

// Matrix is a square grid of modules. true = dark, false = light.
// Indices are zero-based (row, col); row grows downward, col rightward.
type Matrix struct {
	size int
	rows [][]bool
}

// New builds a Matrix from a row-major grid. The input is copied, so the
// caller may reuse its slices. Returns ErrNotSquare unless every row has
// exactly len(rows) cells. An empty grid yields the empty Matrix, which
// callers must treat as an extraction failure, never a valid symbol.
func New(rows [][]bool) (*Matrix, error) {
	size := len(rows)
	copied := make([][]bool, size)
	for i, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(row), size, ErrNotSquare)
		}
		copied[i] = make([]bool, size)
		copy(copied[i], row)
	}
	return &Matrix{size: size, rows: copied}, nil
}

// Size returns the symbol dimension in modules.
func (m *Matrix) Size() int {
	return m.size
}

// Empty reports whether the matrix has no modules at all.
func (m *Matrix) Empty() bool {
	return m.size == 0
}

// At returns the module at (row, col). Panics on out-of-range indices,
// matching slice semantics; callers iterate within Size().
func (m *Matrix) At(row, col int) bool {
	return m.rows[row][col]
}

// Version derives the QR version from the size. The size must satisfy
// size = 4*version + 17 for an integer version in [1,40]; anything else
// is a *MalformedSizeError.
func (m *Matrix) Version() (int, error) {
	if m.size < 21 || (m.size-17)%4 != 0 {
		return 0, &MalformedSizeError{Size: m.size}
	}
	v := (m.size - 17) / 4
	if v > 40 {
		return 0, &MalformedSizeError{Size: m.size}
	}
	return v, nil
}
