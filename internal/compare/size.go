package compare

import (
	"fmt"

	"qrconform/internal/matrix"
)

// Sizes checks that two matrices have the same dimension. A size mismatch
// short-circuits all further pairwise checks for the case: comparing
// modules across differently sized symbols would be meaningless.
func Sizes(ref, cand *matrix.Matrix) Result {
	if ref.Size() == cand.Size() {
		return pass(CheckSize, fmt.Sprintf("both %dx%d", ref.Size(), ref.Size()))
	}
	return Result{
		Name:   CheckSize,
		Pass:   false,
		Detail: fmt.Sprintf("reference is %dx%d, candidate is %dx%d", ref.Size(), ref.Size(), cand.Size(), cand.Size()),
	}
}
