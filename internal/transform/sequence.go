package transform

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/alexiusacademia/gocable/internal/umat"
)

// ErrUnsupportedPhases reports a symmetrical-component request for a
// system that is not exactly three-phase.
var ErrUnsupportedPhases = errors.New("transform: symmetrical components require exactly 3 phases")

// Sequence applies the Fortescue transform Z₀₁₂ = T⁻¹·Z·T to a 3×3 phase
// matrix, producing the zero/positive/negative sequence matrix. Any other
// phase count is an unsupported configuration, not a candidate for a
// generic generalization.
func Sequence(z *umat.Dense) (*umat.Dense, error) {
	if z.Rows() != 3 || z.Cols() != 3 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrUnsupportedPhases, z.Rows(), z.Cols())
	}
	a := cmplx.Exp(complex(0, 2*math.Pi/3))
	a2 := a * a

	t := fortescue([3][3]complex128{
		{1, 1, 1},
		{1, a2, a},
		{1, a, a2},
	})
	// T⁻¹ is known in closed form; no numeric inversion needed.
	tInv := fortescue([3][3]complex128{
		{1.0 / 3, 1.0 / 3, 1.0 / 3},
		{1.0 / 3, a / 3, a2 / 3},
		{1.0 / 3, a2 / 3, a / 3},
	})
	return umat.Mul(umat.Mul(tInv, z), t), nil
}

func fortescue(vals [3][3]complex128) *umat.Dense {
	m := umat.New(3, 3)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			m.Set(i, j, certainOne().Scale(vals[i][j]))
		}
	}
	return m
}
