package impedance_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexiusacademia/gocable/internal/impedance"
	"github.com/alexiusacademia/gocable/internal/phys"
	"github.com/alexiusacademia/gocable/internal/uncertain"
)

const copperRho = 1.7241e-8

// At power frequency a 5 mm solid copper core is well below one skin
// depth, so the AC resistance is still within a percent of ρ/(πr²).
func TestSolidCoreDCLimit(t *testing.T) {
	r := 0.005
	wantR := copperRho / (math.Pi * r * r)

	for _, simplified := range []bool{false, true} {
		z := impedance.Tubular(
			uncertain.Certain(0), uncertain.Certain(r),
			uncertain.Certain(copperRho), uncertain.Certain(1),
			50, simplified,
		)
		gotR := z.ZOuter.Re.Nominal()
		assert.InDelta(t, wantR, gotR, 0.01*wantR, "simplified=%v", simplified)
	}
}

// Near DC every surface impedance of a tube collapses to the same DC
// resistance ρ/(π(rOut²-rIn²)), for the exact and the simplified
// formulas alike.
func TestTubeDCLimit(t *testing.T) {
	rIn, rOut, rho := 0.028, 0.030, 2.1e-7
	wantR := rho / (math.Pi * (rOut*rOut - rIn*rIn))

	for _, simplified := range []bool{false, true} {
		z := impedance.Tubular(
			uncertain.Certain(rIn), uncertain.Certain(rOut),
			uncertain.Certain(rho), uncertain.Certain(1),
			0.01, simplified,
		)
		for name, v := range map[string]uncertain.Complex{
			"outer": z.ZOuter, "inner": z.ZInner, "mutual": z.ZMutual,
		} {
			assert.InDelta(t, wantR, v.Re.Nominal(), 1e-3*wantR, "%s simplified=%v", name, simplified)
		}
	}
}

// Exact and simplified formulas agree for a thin-wall tube at low
// frequency, where the coth/csch approximation is accurate.
func TestThinWallExactVsSimplified(t *testing.T) {
	rIn := uncertain.Certain(0.028)
	rOut := uncertain.Certain(0.030)
	rho := uncertain.Certain(2.1e-7)
	mu := uncertain.Certain(1)

	exact := impedance.Tubular(rIn, rOut, rho, mu, 50, false)
	simpl := impedance.Tubular(rIn, rOut, rho, mu, 50, true)

	pairs := []struct {
		name     string
		ex, appr uncertain.Complex
	}{
		{"outer", exact.ZOuter, simpl.ZOuter},
		{"inner", exact.ZInner, simpl.ZInner},
		{"mutual", exact.ZMutual, simpl.ZMutual},
	}
	for _, p := range pairs {
		mag := cmplx.Abs(p.ex.Nominal())
		assert.InDelta(t, real(p.ex.Nominal()), real(p.appr.Nominal()), 0.02*mag, p.name)
		assert.InDelta(t, imag(p.ex.Nominal()), imag(p.appr.Nominal()), 0.02*mag, p.name)
	}
}

// Deep in the skin-effect regime the scaled Bessel evaluation must stay
// finite and the transfer impedance must collapse towards zero.
func TestDeepSkinEffectStability(t *testing.T) {
	z := impedance.Tubular(
		uncertain.Certain(0.02), uncertain.Certain(0.04),
		uncertain.Certain(copperRho), uncertain.Certain(1),
		1e6, false,
	)
	for _, v := range []uncertain.Complex{z.ZOuter, z.ZInner, z.ZMutual} {
		require.False(t, math.IsNaN(real(v.Nominal())))
		require.False(t, math.IsInf(real(v.Nominal()), 0))
	}
	assert.Less(t, cmplx.Abs(z.ZMutual.Nominal()), 1e-9*cmplx.Abs(z.ZOuter.Nominal()))
}

// Resistivity uncertainty flows into the DC resistance one to one.
func TestTubularPropagatesResistivitySigma(t *testing.T) {
	r := 0.01
	z := impedance.Tubular(
		uncertain.Certain(0), uncertain.Certain(r),
		uncertain.New(copperRho, 0.01*copperRho), uncertain.Certain(1),
		50, false,
	)
	rel := z.ZOuter.Re.Sigma() / z.ZOuter.Re.Nominal()
	assert.InDelta(t, 0.01, rel, 0.002)
}

func TestInsulationSeries(t *testing.T) {
	// jωμ₀ ln(2)/2π at 50 Hz
	z := impedance.InsulationSeries(
		uncertain.Certain(0.01), uncertain.Certain(0.02), uncertain.Certain(1), 50)
	want := phys.Omega(50) * phys.Mu0 * math.Ln2 / phys.TwoPi
	assert.Zero(t, z.Re.Nominal())
	assert.InDelta(t, want, z.Im.Nominal(), 1e-12*want)
}

func TestInsulationShunt(t *testing.T) {
	rIn := uncertain.Certain(0.01)
	rOut := uncertain.Certain(0.02)
	epsR := uncertain.Certain(2.3)

	// lossless: purely real potential coefficient
	p := impedance.InsulationShunt(rIn, rOut, epsR, uncertain.Certain(0), 50)
	want := math.Ln2 / (phys.TwoPi * phys.Eps0 * 2.3)
	assert.InDelta(t, want, p.Re.Nominal(), 1e-9*want)
	assert.Zero(t, p.Im.Nominal())

	// a finite insulation resistivity adds a positive imaginary part,
	// which becomes shunt conductance after the jω scaling
	lossy := impedance.InsulationShunt(rIn, rOut, epsR, uncertain.Certain(1e9), 50)
	assert.Greater(t, lossy.Im.Nominal(), 0.0)
	assert.Less(t, lossy.Re.Nominal(), p.Re.Nominal()+1e-6*want)
}
