// Package transform implements the linear-algebraic basis changes of the
// cable-constants pipeline: the per-cable loop-to-phase transform, the
// bundling plus Kron reduction of the full system matrix, and the
// Fortescue symmetrical-component transform.
package transform

import "github.com/alexiusacademia/gocable/internal/umat"

// voltageInv returns T_V⁻¹ for an n-layer cable. T_V is the difference
// operator (+1 on the diagonal, -1 on the superdiagonal); its inverse is
// the upper triangle of ones.
func voltageInv(n int) *umat.Dense {
	m := umat.New(n, n)
	one := certainOne()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			m.Set(i, j, one)
		}
	}
	return m
}

// currentFwd returns T_I for an n-layer cable: the lower triangle of
// ones, accumulating loop currents outwards.
func currentFwd(n int) *umat.Dense {
	m := umat.New(n, n)
	one := certainOne()
	for i := 0; i < n; i++ {
		for j := 0; j <= i; j++ {
			m.Set(i, j, one)
		}
	}
	return m
}

// LoopToPhase converts a per-cable-pair loop matrix (one row per layer of
// the first cable, one column per layer of the second, innermost to
// outermost) to conductor (phase) quantities: Z' = T_V⁻¹ · Z · T_I. The
// transform is exact. Rectangular blocks between cables with different
// layer counts are supported.
func LoopToPhase(z *umat.Dense) *umat.Dense {
	return umat.Mul(umat.Mul(voltageInv(z.Rows()), z), currentFwd(z.Cols()))
}

// PhaseToLoop is the algebraic inverse of LoopToPhase:
// Z = T_V · Z' · T_I⁻¹.
func PhaseToLoop(z *umat.Dense) *umat.Dense {
	n := z.Rows()
	tv := umat.New(n, n)
	tiInv := umat.New(n, n)
	one := certainOne()
	minusOne := one.Neg()
	for i := 0; i < n; i++ {
		tv.Set(i, i, one)
		tiInv.Set(i, i, one)
		if i+1 < n {
			tv.Set(i, i+1, minusOne)
			tiInv.Set(i+1, i, minusOne)
		}
	}
	return umat.Mul(umat.Mul(tv, z), tiInv)
}
