package phys

import (
	"math"
	"math/cmplx"
)

// Electromagnetic constants (SI units)

const (
	// Mu0 is the vacuum magnetic permeability (H/m)
	Mu0 = 4 * math.Pi * 1e-7

	// Eps0 is the vacuum electric permittivity (F/m)
	Eps0 = 8.8541878128e-12

	// TwoPi shows up in every per-unit-length formula
	TwoPi = 2 * math.Pi
)

// Numerical tolerances shared across the impedance models

const (
	// TinyRadius substitutes for a zero inner radius so that solid
	// conductors can reuse the tubular formulas (m)
	TinyRadius = 1e-10

	// ThinWallRatio is the relative inner/outer radius below which the
	// simplified internal-impedance formula switches to its solid-core
	// approximation
	ThinWallRatio = 1e-6

	// MatrixEps is the threshold below which a matrix component is
	// considered numerical noise and zeroed by the cleanup pass
	MatrixEps = 2.220446049250313e-16
)

// Omega returns the angular frequency (rad/s) for a frequency in Hz.
func Omega(freq float64) float64 {
	return TwoPi * freq
}

// EarthPropagation returns the complex propagation constant γ = sqrt(jωμ(σ+jωε))
// of a medium with the given conductivity (S/m), relative permittivity and
// relative permeability at angular frequency ω.
func EarthPropagation(omega, sigma, epsR, muR float64) complex128 {
	jw := complex(0, omega)
	return cmplx.Sqrt(jw * complex(Mu0*muR, 0) * (complex(sigma, 0) + jw*complex(Eps0*epsR, 0)))
}
