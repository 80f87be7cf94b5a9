package uncertain

import "math"

// diffStep is the relative step for central differences, chosen near the
// cube root of machine epsilon to balance truncation and roundoff error.
const diffStep = 6.055454452393343e-06

func stepFor(x float64) float64 {
	return diffStep * math.Max(1, math.Abs(x))
}

// Apply evaluates an arbitrary complex function at an uncertain complex
// argument. The function is evaluated at the nominal argument and its
// 2x2 Jacobian with respect to (Re z, Im z) is estimated by central
// differences; the input gradients are pushed through that Jacobian.
// A certain input degenerates to a single plain evaluation.
//
// This is the propagation mechanism for special functions (Bessel
// evaluations and the like) that have no closed-form derivatives wired
// into the Value arithmetic.
func Apply(f func(complex128) complex128, z Complex) Complex {
	z0 := z.Nominal()
	f0 := f(z0)
	if z.IsCertain() {
		return CertainComplex(f0)
	}

	hr := stepFor(real(z0))
	hi := stepFor(imag(z0))
	fpr := f(z0 + complex(hr, 0))
	fmr := f(z0 - complex(hr, 0))
	fpi := f(z0 + complex(0, hi))
	fmi := f(z0 - complex(0, hi))

	// Jacobian of (Re f, Im f) w.r.t. (Re z, Im z)
	dRedRe := real(fpr-fmr) / (2 * hr)
	dImdRe := imag(fpr-fmr) / (2 * hr)
	dRedIm := real(fpi-fmi) / (2 * hi)
	dImdIm := imag(fpi-fmi) / (2 * hi)

	parts := []Value{z.Re, z.Im}
	return Complex{
		Re: derive(real(f0), []float64{dRedRe, dRedIm}, parts),
		Im: derive(imag(f0), []float64{dImdRe, dImdIm}, parts),
	}
}

// ApplyN evaluates a complex-valued function of several real parameters
// at uncertain inputs, propagating uncertainty through a numerically
// estimated gradient. Parameters with no uncertainty contribute nothing
// and are not differentiated against.
func ApplyN(f func([]float64) complex128, params []Value) Complex {
	x := make([]float64, len(params))
	for i, p := range params {
		x[i] = p.nom
	}
	f0 := f(x)

	dRe := make([]float64, len(params))
	dIm := make([]float64, len(params))
	for i, p := range params {
		if p.IsCertain() {
			continue
		}
		h := stepFor(x[i])
		x[i] = p.nom + h
		fp := f(x)
		x[i] = p.nom - h
		fm := f(x)
		x[i] = p.nom
		dRe[i] = real(fp-fm) / (2 * h)
		dIm[i] = imag(fp-fm) / (2 * h)
	}
	return Complex{
		Re: derive(real(f0), dRe, params),
		Im: derive(imag(f0), dIm, params),
	}
}
