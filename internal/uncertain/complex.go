package uncertain

// Complex is a complex quantity whose real and imaginary parts each carry
// propagated uncertainty. The two parts are treated as separate real
// quantities; correlation between them survives through the shared
// gradient components of their common sources.
type Complex struct {
	Re, Im Value
}

// NewComplex pairs two uncertain real parts into a Complex.
func NewComplex(re, im Value) Complex {
	return Complex{Re: re, Im: im}
}

// CertainComplex returns a Complex with zero uncertainty.
func CertainComplex(z complex128) Complex {
	return Complex{Re: Certain(real(z)), Im: Certain(imag(z))}
}

// Nominal returns the nominal complex value.
func (z Complex) Nominal() complex128 {
	return complex(z.Re.nom, z.Im.nom)
}

// IsCertain reports whether both parts carry no uncertainty.
func (z Complex) IsCertain() bool {
	return z.Re.IsCertain() && z.Im.IsCertain()
}

// Add returns z + w.
func (z Complex) Add(w Complex) Complex {
	return Complex{Re: z.Re.Add(w.Re), Im: z.Im.Add(w.Im)}
}

// Sub returns z - w.
func (z Complex) Sub(w Complex) Complex {
	return Complex{Re: z.Re.Sub(w.Re), Im: z.Im.Sub(w.Im)}
}

// Mul returns z * w.
func (z Complex) Mul(w Complex) Complex {
	return Complex{
		Re: z.Re.Mul(w.Re).Sub(z.Im.Mul(w.Im)),
		Im: z.Re.Mul(w.Im).Add(z.Im.Mul(w.Re)),
	}
}

// Div returns z / w.
func (z Complex) Div(w Complex) Complex {
	den := w.Re.Mul(w.Re).Add(w.Im.Mul(w.Im))
	return Complex{
		Re: z.Re.Mul(w.Re).Add(z.Im.Mul(w.Im)).Div(den),
		Im: z.Im.Mul(w.Re).Sub(z.Re.Mul(w.Im)).Div(den),
	}
}

// Neg returns -z.
func (z Complex) Neg() Complex {
	return Complex{Re: z.Re.Neg(), Im: z.Im.Neg()}
}

// Conj returns the complex conjugate of z.
func (z Complex) Conj() Complex {
	return Complex{Re: z.Re, Im: z.Im.Neg()}
}

// Scale returns k * z for an exact complex scalar k.
func (z Complex) Scale(k complex128) Complex {
	return z.Mul(CertainComplex(k))
}

// MulReal returns x * z for an uncertain real factor x.
func (z Complex) MulReal(x Value) Complex {
	return Complex{Re: z.Re.Mul(x), Im: z.Im.Mul(x)}
}

// Abs2 returns |z|² as an uncertain real.
func (z Complex) Abs2() Value {
	return z.Re.Mul(z.Re).Add(z.Im.Mul(z.Im))
}
