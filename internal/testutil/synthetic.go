// Package testutil provides deterministic fixtures for tests: synthetic
// matrices that satisfy the structural constants of the QR standard
// without invoking an encoder.
package testutil

import (
	"fmt"

	"qrconform/internal/matrix"
)

// SyntheticRows builds a raw grid for the given version with canonical
// finder patterns in three corners and alternating timing patterns. All
// other modules are light. Tests that need a corrupted matrix flip cells
// in the returned grid before wrapping it with matrix.New.
func SyntheticRows(version int) [][]bool {
	if version < 1 || version > 40 {
		panic(fmt.Sprintf("testutil: version %d out of range [1,40]", version))
	}
	size := 4*version + 17
	rows := make([][]bool, size)
	for i := range rows {
		rows[i] = make([]bool, size)
	}

	// Finder patterns: dark border, light ring, dark 3x3 core.
	origins := [3][2]int{{0, 0}, {0, size - 7}, {size - 7, 0}}
	for _, origin := range origins {
		for r := 0; r < 7; r++ {
			for c := 0; c < 7; c++ {
				isEdge := r == 0 || r == 6 || c == 0 || c == 6
				isCenter := 2 <= r && r <= 4 && 2 <= c && c <= 4
				rows[origin[0]+r][origin[1]+c] = isEdge || isCenter
			}
		}
	}

	// Timing patterns: dark at even offsets from the start of each run.
	for c := 8; c <= size-9; c++ {
		rows[6][c] = (c-8)%2 == 0
	}
	for r := 8; r <= size-9; r++ {
		rows[r][6] = (r-8)%2 == 0
	}

	return rows
}

// Synthetic wraps SyntheticRows in a matrix.Matrix.
func Synthetic(version int) *matrix.Matrix {
	m, err := matrix.New(SyntheticRows(version))
	if err != nil {
		panic(fmt.Sprintf("testutil: synthetic grid rejected: %v", err))
	}
	return m
}
