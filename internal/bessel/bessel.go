// Package bessel evaluates the modified Bessel functions I0, I1, K0 and K1
// at complex argument, together with exponentially scaled variants that stay
// bounded deep in the skin-effect regime.
//
// Arguments are expected in the right half plane (Re z >= 0), which is where
// every skin-effect argument m*r of the impedance formulas lives. Small
// arguments use the ascending power series; large arguments switch to the
// Hankel asymptotic expansion evaluated directly in scaled form.
package bessel

import (
	"math"
	"math/cmplx"
)

// eulerGamma is the Euler–Mascheroni constant.
const eulerGamma = 0.5772156649015329

// seriesLimit is the |z| crossover between the ascending series and the
// asymptotic expansion for the I functions. Below it the alternating-phase
// cancellation of the series still leaves ~12 significant digits.
const seriesLimit = 25.0

// kSeriesLimit is the crossover for the K functions. Their ascending
// series subtracts two pieces of size e^{+Re z} to produce a result of
// size e^{-Re z}, so it must hand over to the asymptotic expansion much
// earlier than the I series.
const kSeriesLimit = 10.0

// I0 returns the modified Bessel function of the first kind, order 0.
func I0(z complex128) complex128 {
	if cmplx.Abs(z) < seriesLimit {
		return i0Series(z)
	}
	return I0Scaled(z) * cmplx.Exp(complex(real(z), 0))
}

// I1 returns the modified Bessel function of the first kind, order 1.
func I1(z complex128) complex128 {
	if cmplx.Abs(z) < seriesLimit {
		return i1Series(z)
	}
	return I1Scaled(z) * cmplx.Exp(complex(real(z), 0))
}

// K0 returns the modified Bessel function of the second kind, order 0.
func K0(z complex128) complex128 {
	if cmplx.Abs(z) < kSeriesLimit {
		return k0Series(z)
	}
	return K0Scaled(z) * cmplx.Exp(complex(-real(z), 0))
}

// K1 returns the modified Bessel function of the second kind, order 1.
func K1(z complex128) complex128 {
	if cmplx.Abs(z) < kSeriesLimit {
		return k1Series(z)
	}
	return K1Scaled(z) * cmplx.Exp(complex(-real(z), 0))
}

// I0Scaled returns I0(z) * exp(-Re z).
func I0Scaled(z complex128) complex128 {
	if cmplx.Abs(z) < seriesLimit {
		return i0Series(z) * cmplx.Exp(complex(-real(z), 0))
	}
	return asymptoticI(0, z)
}

// I1Scaled returns I1(z) * exp(-Re z).
func I1Scaled(z complex128) complex128 {
	if cmplx.Abs(z) < seriesLimit {
		return i1Series(z) * cmplx.Exp(complex(-real(z), 0))
	}
	return asymptoticI(1, z)
}

// K0Scaled returns K0(z) * exp(+Re z).
func K0Scaled(z complex128) complex128 {
	if cmplx.Abs(z) < kSeriesLimit {
		return k0Series(z) * cmplx.Exp(complex(real(z), 0))
	}
	return asymptoticK(0, z)
}

// K1Scaled returns K1(z) * exp(+Re z).
func K1Scaled(z complex128) complex128 {
	if cmplx.Abs(z) < kSeriesLimit {
		return k1Series(z) * cmplx.Exp(complex(real(z), 0))
	}
	return asymptoticK(1, z)
}

// i0Series sums I0(z) = sum_k (z²/4)^k / (k!)².
func i0Series(z complex128) complex128 {
	q := z * z / 4
	sum := complex(1, 0)
	term := complex(1, 0)
	for k := 1; k < 200; k++ {
		term *= q / complex(float64(k)*float64(k), 0)
		sum += term
		if cmplx.Abs(term) < 1e-17*cmplx.Abs(sum) {
			break
		}
	}
	return sum
}

// i1Series sums I1(z) = (z/2) sum_k (z²/4)^k / (k! (k+1)!).
func i1Series(z complex128) complex128 {
	q := z * z / 4
	sum := complex(1, 0)
	term := complex(1, 0)
	for k := 1; k < 200; k++ {
		term *= q / complex(float64(k)*float64(k+1), 0)
		sum += term
		if cmplx.Abs(term) < 1e-17*cmplx.Abs(sum) {
			break
		}
	}
	return z / 2 * sum
}

// k0Series sums K0(z) = -(ln(z/2)+γ) I0(z) + sum_{k>=1} H_k (z²/4)^k / (k!)².
func k0Series(z complex128) complex128 {
	q := z * z / 4
	sum := complex(0, 0)
	term := complex(1, 0)
	h := 0.0
	for k := 1; k < 200; k++ {
		term *= q / complex(float64(k)*float64(k), 0)
		h += 1 / float64(k)
		t := term * complex(h, 0)
		sum += t
		if cmplx.Abs(t) < 1e-17*(cmplx.Abs(sum)+1) {
			break
		}
	}
	return -(cmplx.Log(z/2)+complex(eulerGamma, 0))*i0Series(z) + sum
}

// k1Series sums the ascending series
// K1(z) = 1/z + ln(z/2) I1(z) - (z/4) sum_k [ψ(k+1)+ψ(k+2)] (z²/4)^k / (k!(k+1)!).
func k1Series(z complex128) complex128 {
	q := z * z / 4
	term := complex(1, 0)
	psi1 := -eulerGamma    // ψ(1)
	psi2 := 1 - eulerGamma // ψ(2)
	sum := complex(psi1+psi2, 0)
	for k := 1; k < 200; k++ {
		term *= q / complex(float64(k)*float64(k+1), 0)
		psi1 += 1 / float64(k)
		psi2 += 1 / float64(k+1)
		t := term * complex(psi1+psi2, 0)
		sum += t
		if cmplx.Abs(t) < 1e-17*(cmplx.Abs(sum)+1) {
			break
		}
	}
	return 1/z + cmplx.Log(z/2)*i1Series(z) - z/4*sum
}

// hankelTerms accumulates the Hankel expansion sum_k s^k a_k(v) / z^k with
// a_k(v) = prod_{j=1..k} (4v²-(2j-1)²) / (8k), truncated at its smallest term.
func hankelTerms(v int, z complex128, sign float64) complex128 {
	fourV2 := float64(4 * v * v)
	sum := complex(1, 0)
	term := complex(1, 0)
	prev := math.Inf(1)
	for k := 1; k < 40; k++ {
		odd := float64(2*k - 1)
		term *= complex(sign*(fourV2-odd*odd)/(8*float64(k)), 0) / z
		m := cmplx.Abs(term)
		if m >= prev {
			break // divergent tail reached
		}
		prev = m
		sum += term
		if m < 1e-17*cmplx.Abs(sum) {
			break
		}
	}
	return sum
}

// asymptoticI returns Iv(z) * exp(-Re z) for large |z| in the right half
// plane. The reflected exp(-z) contribution is below double precision for
// every argument past the series crossover and is dropped.
func asymptoticI(v int, z complex128) complex128 {
	phase := cmplx.Exp(complex(0, imag(z)))
	return phase * hankelTerms(v, z, -1) / cmplx.Sqrt(2*math.Pi*z)
}

// asymptoticK returns Kv(z) * exp(+Re z) for large |z| in the right half
// plane.
func asymptoticK(v int, z complex128) complex128 {
	phase := cmplx.Exp(complex(0, -imag(z)))
	return phase * cmplx.Sqrt(math.Pi/(2*z)) * hankelTerms(v, z, 1)
}
