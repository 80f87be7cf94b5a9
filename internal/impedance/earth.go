package impedance

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/alexiusacademia/gocable/internal/bessel"
	"github.com/alexiusacademia/gocable/internal/cable"
	"github.com/alexiusacademia/gocable/internal/phys"
	"github.com/alexiusacademia/gocable/internal/quad"
	"github.com/alexiusacademia/gocable/internal/uncertain"
)

// KxMode selects the axial propagation constant folded into the radial
// propagation functions of the earth-return integrals.
type KxMode string

const (
	KxNone  KxMode = "none"  // quasi-static, kx = 0
	KxAir   KxMode = "air"   // kx = ω√(μ₀ε₀)
	KxEarth KxMode = "earth" // kx = ω√(μ₁ε₁)
)

// ErrUnsupportedMode reports an unknown kx propagation-constant mode.
var ErrUnsupportedMode = errors.New("impedance: unsupported kx mode")

// depthRegularization is the offset added to one burial depth when both
// depths coincide in a mutual integral, removing a removable singularity
// of the kernel. It is a numerical stabilization parameter, not a physical
// constant; see the depth-coincidence tests for its tuning envelope.
const depthRegularization = 1e-3

// EarthReturn evaluates the Papadopoulos-type earth-return self and mutual
// coupling integrals for one frequency sample over a constant-property
// soil.
type EarthReturn struct {
	freq float64
	soil cable.SoilProperties
	mode KxMode
	tol  float64
	rho  uncertain.Value // soil resistivity, shared by all entries of the sample
}

// NewEarthReturn builds the model for one frequency sample. The kx mode
// must be one of KxNone, KxAir, KxEarth.
func NewEarthReturn(soil cable.SoilProperties, freq float64, mode KxMode) (*EarthReturn, error) {
	switch mode {
	case KxNone, KxAir, KxEarth:
	case "":
		mode = KxNone
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
	return &EarthReturn{
		freq: freq,
		soil: soil,
		mode: mode,
		tol:  quad.DefaultTol,
		rho:  soil.Resistivity.Measured(),
	}, nil
}

// media holds the per-evaluation propagation constants of air and earth.
type media struct {
	gamma0, gamma1 complex128 // medium propagation constants γ₀ (air), γ₁ (earth)
	kx2            complex128 // square of the selected axial propagation constant
	mu1            float64    // earth permeability (H/m)
	epsHat0        complex128 // σ₀ + jωε₀ of air
	epsHat1        complex128 // σ₁ + jωε₁ of earth
}

func (e *EarthReturn) mediaFor(rho float64) media {
	omega := phys.Omega(e.freq)
	mu1 := phys.Mu0 * e.soil.MuR
	eps1 := phys.Eps0 * e.soil.EpsR
	m := media{
		gamma0:  phys.EarthPropagation(omega, 0, 1, 1),
		gamma1:  phys.EarthPropagation(omega, 1/rho, e.soil.EpsR, e.soil.MuR),
		mu1:     mu1,
		epsHat0: complex(0, omega*phys.Eps0),
		epsHat1: complex(1/rho, omega*eps1),
	}
	switch e.mode {
	case KxAir:
		m.kx2 = complex(omega*omega*phys.Mu0*phys.Eps0, 0)
	case KxEarth:
		m.kx2 = complex(omega*omega*mu1*eps1, 0)
	}
	return m
}

// radial returns the radial propagation functions a₀(λ), a₁(λ).
func (m media) radial(lambda float64) (a0, a1 complex128) {
	l2 := complex(lambda*lambda, 0)
	a0 = cmplx.Sqrt(l2 + m.gamma0*m.gamma0 + m.kx2)
	a1 = cmplx.Sqrt(l2 + m.gamma1*m.gamma1 + m.kx2)
	return a0, a1
}

// regularize nudges one depth when the two coincide; the shared kernel has
// a removable singularity there.
func regularize(h1, h2 float64) (float64, float64) {
	if math.Abs(h1-h2) < depthRegularization/10 {
		return h1, h2 - depthRegularization
	}
	return h1, h2
}

// direct evaluates the source term of the shared kernel,
// ∫₀∞ e^{-a₁|h₁-h₂|} cos(λx)/a₁ dλ = K₀(γₑ·d), in closed form. The
// integral converges only conditionally, so the quadrature is reserved
// for the absolutely convergent interface-reflection terms.
func (m media) direct(dh, x float64) complex128 {
	gammaE := cmplx.Sqrt(m.gamma1*m.gamma1 + m.kx2)
	d := math.Hypot(dh, x)
	return bessel.K0(gammaE * complex(d, 0))
}

// zKernelIntegral evaluates the impedance kernel for conductors at depths
// h1, h2 (< 0) and horizontal separation x, at nominal parameters.
func (e *EarthReturn) zKernelIntegral(rho, h1, h2, x float64) (complex128, error) {
	m := e.mediaFor(rho)
	omega := phys.Omega(e.freq)
	dh := math.Abs(h1 - h2)
	hs := h1 + h2
	integrand := func(lambda float64) complex128 {
		a0, a1 := m.radial(lambda)
		image := cmplx.Exp(a1 * complex(hs, 0))
		refl := (complex(phys.Mu0, 0)*a1 - complex(m.mu1, 0)*a0) /
			(complex(phys.Mu0, 0)*a1 + complex(m.mu1, 0)*a0)
		return refl * image * complex(math.Cos(lambda*x), 0) / a1
	}
	val, err := quad.SemiInfinite(integrand, e.tol)
	if err != nil {
		return 0, fmt.Errorf("earth-return impedance at f=%g Hz: %w", e.freq, err)
	}
	return complex(0, omega*m.mu1/phys.TwoPi) * (m.direct(dh, x) + val), nil
}

// pKernelIntegral evaluates the potential-coefficient kernel integral. The
// (γ₀²−γ₁²) correction term contributes only for conductors below the
// interface, which the geometry validation guarantees here.
func (e *EarthReturn) pKernelIntegral(rho, h1, h2, x float64) (complex128, error) {
	m := e.mediaFor(rho)
	dh := math.Abs(h1 - h2)
	hs := h1 + h2
	g02 := m.gamma0 * m.gamma0
	g12 := m.gamma1 * m.gamma1
	below := hs < 0 // both conductors under the interface

	integrand := func(lambda float64) complex128 {
		a0, a1 := m.radial(lambda)
		image := cmplx.Exp(a1 * complex(hs, 0))
		refl := (m.epsHat1*a0 - m.epsHat0*a1) / (m.epsHat1*a0 + m.epsHat0*a1)
		k := refl * image / a1
		if below {
			l2 := complex(lambda*lambda, 0)
			k += 2 * (g02 - g12) * image * l2 / (a0 * a1 * (g02*a1 + g12*a0))
		}
		return k * complex(math.Cos(lambda*x), 0)
	}
	val, err := quad.SemiInfinite(integrand, e.tol)
	if err != nil {
		return 0, fmt.Errorf("earth-return potential coefficient at f=%g Hz: %w", e.freq, err)
	}
	return (m.direct(dh, x) + val) / (phys.TwoPi * m.epsHat1), nil
}

// propagate runs an integral at the nominal parameters and pushes the
// uncertainty of each parameter through a numerically estimated gradient.
// Any quadrature failure along the way aborts the evaluation.
func propagate(f func(p []float64) (complex128, error), params []uncertain.Value) (uncertain.Complex, error) {
	var firstErr error
	res := uncertain.ApplyN(func(p []float64) complex128 {
		v, err := f(p)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return v
	}, params)
	if firstErr != nil {
		return uncertain.Complex{}, firstErr
	}
	return res, nil
}

func checkDepth(h uncertain.Value) error {
	if h.Nominal() >= 0 {
		return fmt.Errorf("%w: burial depth %g must be negative", cable.ErrInvalidGeometry, h.Nominal())
	}
	return nil
}

// SelfImpedance returns the earth-return self impedance (Ω/m) of a
// conductor with outer radius r buried at depth h (< 0).
func (e *EarthReturn) SelfImpedance(h, r uncertain.Value) (uncertain.Complex, error) {
	if err := checkDepth(h); err != nil {
		return uncertain.Complex{}, err
	}
	return propagate(func(p []float64) (complex128, error) {
		return e.zKernelIntegral(p[0], p[1], p[1], p[2])
	}, []uncertain.Value{e.rho, h, r})
}

// MutualImpedance returns the earth-return mutual impedance (Ω/m) between
// conductors buried at depths h1, h2 (< 0) with horizontal separation dx.
func (e *EarthReturn) MutualImpedance(h1, h2, dx uncertain.Value) (uncertain.Complex, error) {
	if err := checkDepth(h1); err != nil {
		return uncertain.Complex{}, err
	}
	if err := checkDepth(h2); err != nil {
		return uncertain.Complex{}, err
	}
	return propagate(func(p []float64) (complex128, error) {
		a, b := regularize(p[1], p[2])
		return e.zKernelIntegral(p[0], a, b, math.Abs(p[3]))
	}, []uncertain.Value{e.rho, h1, h2, dx})
}

// SelfPotential returns the earth-return self potential coefficient (m/F)
// of a conductor with outer radius r buried at depth h (< 0).
func (e *EarthReturn) SelfPotential(h, r uncertain.Value) (uncertain.Complex, error) {
	if err := checkDepth(h); err != nil {
		return uncertain.Complex{}, err
	}
	return propagate(func(p []float64) (complex128, error) {
		return e.pKernelIntegral(p[0], p[1], p[1], p[2])
	}, []uncertain.Value{e.rho, h, r})
}

// MutualPotential returns the earth-return mutual potential coefficient
// (m/F) between conductors buried at depths h1, h2 (< 0) with horizontal
// separation dx.
func (e *EarthReturn) MutualPotential(h1, h2, dx uncertain.Value) (uncertain.Complex, error) {
	if err := checkDepth(h1); err != nil {
		return uncertain.Complex{}, err
	}
	if err := checkDepth(h2); err != nil {
		return uncertain.Complex{}, err
	}
	return propagate(func(p []float64) (complex128, error) {
		a, b := regularize(p[1], p[2])
		return e.pKernelIntegral(p[0], a, b, math.Abs(p[3]))
	}, []uncertain.Value{e.rho, h1, h2, dx})
}
