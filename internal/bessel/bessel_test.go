package bessel_test

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/alexiusacademia/gocable/internal/bessel"
)

// Reference values from Abramowitz & Stegun tables 9.8.
func TestRealAxisReferenceValues(t *testing.T) {
	cases := []struct {
		name string
		f    func(complex128) complex128
		z    complex128
		want float64
	}{
		{"I0(1)", bessel.I0, 1, 1.2660658777520084},
		{"I1(1)", bessel.I1, 1, 0.5651591039924851},
		{"K0(1)", bessel.K0, 1, 0.4210244382407083},
		{"K1(1)", bessel.K1, 1, 0.6019072301972346},
		{"I0(5)", bessel.I0, 5, 27.239871823604442},
		{"I1(5)", bessel.I1, 5, 24.335642142450530},
		{"K0(5)", bessel.K0, 5, 0.003691098334042594},
		{"K1(5)", bessel.K1, 5, 0.004044613445452164},
	}
	for _, c := range cases {
		got := c.f(c.z)
		assert.InDelta(t, c.want, real(got), 1e-12*c.want+1e-13, c.name)
		assert.InDelta(t, 0, imag(got), 1e-13, c.name)
	}
}

// The Wronskian identity I0(z)K1(z) + K0(z)I1(z) = 1/z holds for any z
// and exercises all four functions at once.
func TestWronskianIdentity(t *testing.T) {
	args := []complex128{
		0.1, 1, 3,
		complex(1, 1), complex(4, 4), complex(10, 10),
		cmplx.Rect(20, 0.3), cmplx.Rect(0.01, 0.7),
	}
	for _, z := range args {
		w := bessel.I0(z)*bessel.K1(z) + bessel.K0(z)*bessel.I1(z)
		assert.InDelta(t, real(1/z), real(w), 1e-10*cmplx.Abs(1/z), "Re, z=%v", z)
		assert.InDelta(t, imag(1/z), imag(w), 1e-10*cmplx.Abs(1/z), "Im, z=%v", z)
	}
}

// The scaling factors of the scaled variants cancel in the Wronskian:
// I0s(z)K1s(z) + K0s(z)I1s(z) = 1/z even where the unscaled functions
// overflow. Arguments at 45° mimic skin-effect arguments m·r.
func TestScaledWronskianDeepSkinEffect(t *testing.T) {
	for _, mod := range []float64{30, 100, 400, 2000} {
		z := cmplx.Rect(mod, 0.25*3.141592653589793)
		w := bessel.I0Scaled(z)*bessel.K1Scaled(z) + bessel.K0Scaled(z)*bessel.I1Scaled(z)
		want := 1 / z
		assert.InDelta(t, real(want), real(w), 1e-10*cmplx.Abs(want), "|z|=%g", mod)
		assert.InDelta(t, imag(want), imag(w), 1e-10*cmplx.Abs(want), "|z|=%g", mod)
	}
}

// Scaled and unscaled variants agree where both are representable.
func TestScaledConsistency(t *testing.T) {
	z := complex(8, 6)
	s := cmplx.Exp(complex(real(z), 0))

	assert.InDelta(t, cmplx.Abs(bessel.I0(z)), cmplx.Abs(bessel.I0Scaled(z)*s), 1e-8*cmplx.Abs(bessel.I0(z)))
	assert.InDelta(t, cmplx.Abs(bessel.K0(z)), cmplx.Abs(bessel.K0Scaled(z)/s), 1e-8*cmplx.Abs(bessel.K0(z)))
}

// The Wronskian pins both branches to the same exact value on either
// side of each series/asymptotic crossover (K at |z|=10, I at |z|=25),
// on the 45° ray where skin-effect arguments live. Between the two
// crossovers the identity mixes a series I with an asymptotic K, so the
// hand-off itself is exercised too.
func TestCrossoverConsistency(t *testing.T) {
	const arg = 0.7853981633974483
	for _, mod := range []float64{9.99, 10.01, 24.99, 25.01} {
		z := cmplx.Rect(mod, arg)
		w := bessel.I0Scaled(z)*bessel.K1Scaled(z) + bessel.K0Scaled(z)*bessel.I1Scaled(z)
		want := 1 / z
		assert.InDelta(t, real(want), real(w), 1e-8*cmplx.Abs(want), "|z|=%g", mod)
		assert.InDelta(t, imag(want), imag(w), 1e-8*cmplx.Abs(want), "|z|=%g", mod)
	}
}

// Small-argument limits: I0 → 1, I1 → z/2, K1 → 1/z.
func TestSmallArgumentLimits(t *testing.T) {
	z := complex(1e-4, 1e-4)
	assert.InDelta(t, 1, real(bessel.I0(z)), 1e-8)
	assert.InDelta(t, real(z/2), real(bessel.I1(z)), 1e-12)
	assert.InDelta(t, real(1/z), real(bessel.K1(z)), 1e-4*cmplx.Abs(1/z))
}
