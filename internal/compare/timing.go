package compare

import (
	"fmt"

	"qrconform/internal/matrix"
)

// timingIndex is the fixed row (horizontal run) and column (vertical run)
// carrying the timing patterns.
const timingIndex = 6

// timingStart is the first module of each timing run; the run ends at
// size-9 inclusive, between the finder separators.
const timingStart = 8

// timingCoords enumerates the horizontal then the vertical timing run.
func timingCoords(size int) [][2]int {
	var coords [][2]int
	for c := timingStart; c <= size-9; c++ {
		coords = append(coords, [2]int{timingIndex, c})
	}
	for r := timingStart; r <= size-9; r++ {
		coords = append(coords, [2]int{r, timingIndex})
	}
	return coords
}

// TimingPatterns validates both timing runs of a single matrix: the
// module at offset k from the start of a run must be dark iff k is even
// (the runs alternate starting dark).
func TimingPatterns(m *matrix.Matrix) Result {
	var mismatches []Mismatch
	for _, pos := range timingCoords(m.Size()) {
		row, col := pos[0], pos[1]
		offset := col - timingStart
		if row != timingIndex {
			offset = row - timingStart
		}
		want := offset%2 == 0
		if got := m.At(row, col); got != want {
			mismatches = append(mismatches, Mismatch{Row: row, Col: col, Want: want, Got: got})
		}
	}
	if len(mismatches) > 0 {
		return fail(CheckTiming, mismatches)
	}
	return pass(CheckTiming, "both timing runs alternate starting dark")
}

// TimingPatternsEqual compares the timing runs of a candidate matrix
// against a reference. Both matrices must have the same size; run Sizes
// first.
func TimingPatternsEqual(ref, cand *matrix.Matrix) Result {
	var mismatches []Mismatch
	for _, pos := range timingCoords(ref.Size()) {
		row, col := pos[0], pos[1]
		want := ref.At(row, col)
		if got := cand.At(row, col); got != want {
			mismatches = append(mismatches, Mismatch{Row: row, Col: col, Want: want, Got: got})
		}
	}
	if len(mismatches) > 0 {
		return fail(CheckTimingEqual, mismatches)
	}
	return pass(CheckTimingEqual, fmt.Sprintf("all %d timing modules agree", len(timingCoords(ref.Size()))))
}
