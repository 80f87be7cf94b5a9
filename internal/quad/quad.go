// Package quad provides adaptive quadrature over the semi-infinite domain
// used by the earth-return integrals. Panels are evaluated with gonum
// Gauss-Legendre rules; adaptivity comes from comparing a coarse and a
// refined rule on each panel and bisecting until the local estimates agree.
package quad

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/integrate/quad"
)

// ErrNoConvergence reports that the adaptive subdivision ran out of depth
// or panels before the estimates agreed to tolerance.
var ErrNoConvergence = errors.New("quad: integral did not converge")

// DefaultTol is the relative tolerance used by the earth-return models.
const DefaultTol = 1e-6

const (
	coarseNodes = 15
	fineNodes   = 31
	maxDepth    = 28
	maxPanels   = 2048
)

// initialMesh grades the compactified domain towards t=0, where the
// earth-return kernels carry a boundary layer of width |γ₁| (down to
// ~1e-5 at millihertz frequencies). Starting from resolved panels keeps
// the adaptive refinement from chasing a spike the whole-domain rule
// never sampled.
var initialMesh = []float64{0, 1e-5, 1e-4, 1e-3, 1e-2, 0.1, 0.5, 1}

// fixed integrates a complex integrand over [a,b] with an n-point
// Gauss-Legendre rule, real and imaginary parts separately.
func fixed(f func(float64) complex128, a, b float64, n int) complex128 {
	re := quad.Fixed(func(x float64) float64 { return real(f(x)) }, a, b, n, quad.Legendre{}, 0)
	im := quad.Fixed(func(x float64) float64 { return imag(f(x)) }, a, b, n, quad.Legendre{}, 0)
	return complex(re, im)
}

// adaptive bisects [a,b] until the coarse and fine estimates agree within
// the panel's share of the error budget. unitTol is the budget per unit
// of integration measure, so a panel's allowance shrinks with its width
// and the panel errors sum to the global budget.
func adaptive(f func(float64) complex128, a, b float64, unitTol float64, depth int, panels *int) (complex128, error) {
	*panels++
	if *panels > maxPanels {
		return 0, ErrNoConvergence
	}
	coarse := fixed(f, a, b, coarseNodes)
	fine := fixed(f, a, b, fineNodes)
	diff := cmplx.Abs(fine - coarse)
	if diff <= unitTol*(b-a) || diff <= 1e-14*cmplx.Abs(fine) {
		return fine, nil
	}
	if depth >= maxDepth {
		return 0, ErrNoConvergence
	}
	mid := 0.5 * (a + b)
	left, err := adaptive(f, a, mid, unitTol, depth+1, panels)
	if err != nil {
		return 0, err
	}
	right, err := adaptive(f, mid, b, unitTol, depth+1, panels)
	if err != nil {
		return 0, err
	}
	return left + right, nil
}

// SemiInfinite integrates f over [0, ∞) to the given relative tolerance.
// The domain is compactified with λ = t/(1-t); Gauss nodes never touch the
// endpoints, so the mapped integrand is only evaluated at interior points.
func SemiInfinite(f func(float64) complex128, tol float64) (complex128, error) {
	if tol <= 0 {
		tol = DefaultTol
	}
	g := func(t float64) complex128 {
		u := 1 - t
		return f(t/u) / complex(u*u, 0)
	}
	var rough complex128
	for i := 0; i+1 < len(initialMesh); i++ {
		rough += fixed(g, initialMesh[i], initialMesh[i+1], fineNodes)
	}
	unitTol := tol * math.Max(cmplx.Abs(rough), math.SmallestNonzeroFloat64)
	panels := 0
	var total complex128
	for i := 0; i+1 < len(initialMesh); i++ {
		v, err := adaptive(g, initialMesh[i], initialMesh[i+1], unitTol, 0, &panels)
		if err != nil {
			return 0, err
		}
		total += v
	}
	return total, nil
}
