// Package uncertain implements first-order (linear) propagation of
// measurement uncertainty through arithmetic and transcendental operations.
//
// A Value pairs a nominal float64 with the gradient of that value with
// respect to every independent measurement it was derived from. Each
// gradient component is stored pre-scaled by the source's standard
// deviation, so the standard deviation of any derived Value is the
// Euclidean norm of its components. Quantities derived from the same
// measurement stay correlated: x.Sub(x) has exactly zero uncertainty.
package uncertain

import (
	"math"
	"sync/atomic"
)

// sourceID labels one independent measurement.
type sourceID uint64

var lastSource atomic.Uint64

// Value is a real quantity with propagated uncertainty. The zero Value is
// an exact zero.
type Value struct {
	nom   float64
	comps map[sourceID]float64
}

// New returns a Value representing an independent measurement with the
// given nominal value and standard deviation.
func New(nominal, sigma float64) Value {
	if sigma == 0 {
		return Certain(nominal)
	}
	id := sourceID(lastSource.Add(1))
	return Value{nom: nominal, comps: map[sourceID]float64{id: sigma}}
}

// Certain returns a Value with zero uncertainty.
func Certain(v float64) Value {
	return Value{nom: v}
}

// Nominal returns the nominal value.
func (v Value) Nominal() float64 { return v.nom }

// Variance returns the propagated variance.
func (v Value) Variance() float64 {
	var s float64
	for _, c := range v.comps {
		s += c * c
	}
	return s
}

// Sigma returns the propagated standard deviation.
func (v Value) Sigma() float64 { return math.Sqrt(v.Variance()) }

// IsCertain reports whether the value carries no uncertainty.
func (v Value) IsCertain() bool { return len(v.comps) == 0 }

// derive builds a Value with the given nominal whose gradient is the
// linear combination sum_i d[i] * vs[i].comps.
func derive(nom float64, d []float64, vs []Value) Value {
	n := 0
	for _, v := range vs {
		n += len(v.comps)
	}
	if n == 0 {
		return Value{nom: nom}
	}
	comps := make(map[sourceID]float64, n)
	for i, v := range vs {
		if d[i] == 0 {
			continue
		}
		for id, c := range v.comps {
			comps[id] += d[i] * c
		}
	}
	return Value{nom: nom, comps: comps}
}

// Add returns v + w.
func (v Value) Add(w Value) Value {
	return derive(v.nom+w.nom, []float64{1, 1}, []Value{v, w})
}

// Sub returns v - w.
func (v Value) Sub(w Value) Value {
	return derive(v.nom-w.nom, []float64{1, -1}, []Value{v, w})
}

// Mul returns v * w.
func (v Value) Mul(w Value) Value {
	return derive(v.nom*w.nom, []float64{w.nom, v.nom}, []Value{v, w})
}

// Div returns v / w.
func (v Value) Div(w Value) Value {
	return derive(v.nom/w.nom, []float64{1 / w.nom, -v.nom / (w.nom * w.nom)}, []Value{v, w})
}

// Neg returns -v.
func (v Value) Neg() Value {
	return derive(-v.nom, []float64{-1}, []Value{v})
}

// Scale returns k * v for an exact scalar k.
func (v Value) Scale(k float64) Value {
	return derive(k*v.nom, []float64{k}, []Value{v})
}

// Sqrt returns the square root of v.
func (v Value) Sqrt() Value {
	s := math.Sqrt(v.nom)
	return derive(s, []float64{1 / (2 * s)}, []Value{v})
}

// Log returns the natural logarithm of v.
func (v Value) Log() Value {
	return derive(math.Log(v.nom), []float64{1 / v.nom}, []Value{v})
}

// Exp returns e**v.
func (v Value) Exp() Value {
	e := math.Exp(v.nom)
	return derive(e, []float64{e}, []Value{v})
}

// Abs returns |v|.
func (v Value) Abs() Value {
	if v.nom < 0 {
		return v.Neg()
	}
	return v
}
