package compare

import (
	"fmt"

	"qrconform/internal/matrix"
)

// topLeftFormatCoords are the fifteen modules of the format-information
// field beside the top-left finder pattern. The standard defines these
// positions by lookup, not formula, so they are kept as explicit data;
// (8,6) and (6,8) are absent because the timing patterns pass through
// there. A future version-information extension (versions >= 7) slots in
// as additional tables of the same shape.
var topLeftFormatCoords = [][2]int{
	{8, 0}, {8, 1}, {8, 2}, {8, 3}, {8, 4}, {8, 5}, {8, 7}, {8, 8},
	{7, 8}, {5, 8}, {4, 8}, {3, 8}, {2, 8}, {1, 8}, {0, 8},
}

// formatInfoCoords enumerates every module carrying the duplicated 15-bit
// format-information field: the run beside the top-left finder, the last
// eight columns of row 8 beside the top-right finder, and the last seven
// rows of column 8 beside the bottom-left finder.
func formatInfoCoords(size int) [][2]int {
	coords := make([][2]int, 0, 30)
	coords = append(coords, topLeftFormatCoords...)
	for i := 0; i < 8; i++ {
		coords = append(coords, [2]int{8, size - 1 - i})
	}
	for i := 0; i < 7; i++ {
		coords = append(coords, [2]int{size - 1 - i, 8})
	}
	return coords
}

// FormatInfo compares the format-information modules of a candidate
// matrix against a reference. Both matrices must have the same size; run
// Sizes first. All mismatching coordinates are collected; rendered
// summaries may truncate the list but the verdict reflects the full set.
func FormatInfo(ref, cand *matrix.Matrix) Result {
	var mismatches []Mismatch
	for _, pos := range formatInfoCoords(ref.Size()) {
		row, col := pos[0], pos[1]
		want := ref.At(row, col)
		if got := cand.At(row, col); got != want {
			mismatches = append(mismatches, Mismatch{Row: row, Col: col, Want: want, Got: got})
		}
	}
	if len(mismatches) > 0 {
		return fail(CheckFormatInfo, mismatches)
	}
	return pass(CheckFormatInfo, fmt.Sprintf("all %d format-information modules agree", len(formatInfoCoords(ref.Size()))))
}
