package compare

import (
	"fmt"

	"qrconform/internal/matrix"
)

// finderSize is the dimension of the fixed corner finder blocks.
const finderSize = 7

// FinderModule reports the canonical module value at relative (r, c)
// within a 7x7 finder block: a solid dark border, a one-module light
// ring, and a solid 3x3 dark core.
func FinderModule(r, c int) bool {
	isEdge := r == 0 || r == finderSize-1 || c == 0 || c == finderSize-1
	isCenter := 2 <= r && r <= 4 && 2 <= c && c <= 4
	return isEdge || isCenter
}

// finderOrigins returns the top-left corner of each of the three finder
// blocks: top-left, top-right, bottom-left.
func finderOrigins(size int) [3][2]int {
	return [3][2]int{
		{0, 0},
		{0, size - finderSize},
		{size - finderSize, 0},
	}
}

// FinderPatterns validates the three corner finder blocks of a single
// matrix against the canonical pattern. All mismatching modules across
// all three blocks are collected, recorded at absolute coordinates.
func FinderPatterns(m *matrix.Matrix) Result {
	var mismatches []Mismatch
	for _, origin := range finderOrigins(m.Size()) {
		for r := 0; r < finderSize; r++ {
			for c := 0; c < finderSize; c++ {
				row, col := origin[0]+r, origin[1]+c
				want := FinderModule(r, c)
				if got := m.At(row, col); got != want {
					mismatches = append(mismatches, Mismatch{Row: row, Col: col, Want: want, Got: got})
				}
			}
		}
	}
	if len(mismatches) > 0 {
		return fail(CheckFinder, mismatches)
	}
	return pass(CheckFinder, "all three finder patterns canonical")
}

// FinderPatternsEqual compares the three finder blocks of a candidate
// matrix against a reference module by module. Both matrices must have
// the same size; run Sizes first.
func FinderPatternsEqual(ref, cand *matrix.Matrix) Result {
	var mismatches []Mismatch
	for _, origin := range finderOrigins(ref.Size()) {
		for r := 0; r < finderSize; r++ {
			for c := 0; c < finderSize; c++ {
				row, col := origin[0]+r, origin[1]+c
				want := ref.At(row, col)
				if got := cand.At(row, col); got != want {
					mismatches = append(mismatches, Mismatch{Row: row, Col: col, Want: want, Got: got})
				}
			}
		}
	}
	if len(mismatches) > 0 {
		return fail(CheckFinderEqual, mismatches)
	}
	return pass(CheckFinderEqual, fmt.Sprintf("all %d finder modules agree", 3*finderSize*finderSize))
}
