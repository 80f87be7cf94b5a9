package quad_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gocable/internal/quad"
)

func TestExponentialDecay(t *testing.T) {
	// ∫₀∞ e^{-λ} dλ = 1
	got, err := quad.SemiInfinite(func(l float64) complex128 {
		return complex(math.Exp(-l), 0)
	}, 1e-9)
	require.NoError(t, err)
	assert.InDelta(t, 1, real(got), 1e-8)
	assert.InDelta(t, 0, imag(got), 1e-12)
}

func TestOscillatoryDecay(t *testing.T) {
	// ∫₀∞ e^{-λ} cos(λ) dλ = 1/2
	got, err := quad.SemiInfinite(func(l float64) complex128 {
		return complex(math.Exp(-l)*math.Cos(l), 0)
	}, 1e-8)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, real(got), 1e-7)
}

func TestComplexKernel(t *testing.T) {
	// ∫₀∞ e^{-(1+j)λ} dλ = 1/(1+j)
	got, err := quad.SemiInfinite(func(l float64) complex128 {
		return cmplx.Exp(complex(-l, -l))
	}, 1e-8)
	require.NoError(t, err)
	want := 1 / complex(1, 1)
	assert.InDelta(t, real(want), real(got), 1e-7)
	assert.InDelta(t, imag(want), imag(got), 1e-7)
}

func TestGaussianMoment(t *testing.T) {
	// ∫₀∞ λ e^{-λ²} dλ = 1/2
	got, err := quad.SemiInfinite(func(l float64) complex128 {
		return complex(l*math.Exp(-l*l), 0)
	}, 1e-8)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, real(got), 1e-7)
}

// A kernel with a thin boundary layer at the origin, the shape the
// earth-return integrands take at power frequency where the layer width
// is |γ₁| ≈ 2e-3 and the integrand peaks near 1/|γ₁|.
func TestBoundaryLayerKernel(t *testing.T) {
	// ∫₀∞ c/(λ²+c²) dλ = π/2 for any c in the right half plane
	c := complex(1.4e-3, 1.4e-3)
	got, err := quad.SemiInfinite(func(l float64) complex128 {
		return c / (complex(l*l, 0) + c*c)
	}, 1e-8)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, real(got), 1e-6)
	assert.InDelta(t, 0, imag(got), 1e-6)
}

func TestNonConvergenceSurfaces(t *testing.T) {
	// A non-decaying oscillation has no semi-infinite integral; the
	// adaptive subdivision must give up explicitly.
	_, err := quad.SemiInfinite(func(l float64) complex128 {
		return complex(math.Cos(l), 0)
	}, 1e-10)
	assert.ErrorIs(t, err, quad.ErrNoConvergence)
}
