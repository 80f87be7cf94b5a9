package impedance

import (
	"github.com/alexiusacademia/gocable/internal/phys"
	"github.com/alexiusacademia/gocable/internal/uncertain"
)

// InsulationSeries returns the series impedance (Ω/m) of an insulating
// annulus between rIn and rOut: jωμ·ln(rOut/rIn)/(2π).
func InsulationSeries(rIn, rOut, muR uncertain.Value, freq float64) uncertain.Complex {
	if rIn.Nominal() < phys.TinyRadius {
		rIn = rIn.Add(uncertain.Certain(phys.TinyRadius))
	}
	x := muR.Scale(phys.Mu0 * phys.Omega(freq) / phys.TwoPi).Mul(rOut.Div(rIn).Log())
	return uncertain.NewComplex(uncertain.Certain(0), x)
}

// InsulationShunt returns the potential coefficient (m/F) of an insulating
// annulus: ln(rOut/rIn)/(2π·ε_eff) with ε_eff = ε₀ε_r + 1/(jωρ). A zero
// insulation resistivity means lossless (infinite ρ, loss term omitted).
func InsulationShunt(rIn, rOut, epsR, resistivity uncertain.Value, freq float64) uncertain.Complex {
	if rIn.Nominal() < phys.TinyRadius {
		rIn = rIn.Add(uncertain.Certain(phys.TinyRadius))
	}
	omega := phys.Omega(freq)
	epsEff := toComplex(epsR.Scale(phys.Eps0))
	if resistivity.Nominal() > 0 {
		// 1/(jωρ) = -j/(ωρ)
		loss := uncertain.Certain(1).Div(resistivity.Scale(omega))
		epsEff = epsEff.Sub(uncertain.NewComplex(uncertain.Certain(0), loss))
	}
	num := toComplex(rOut.Div(rIn).Log().Scale(1 / phys.TwoPi))
	return num.Div(epsEff)
}
