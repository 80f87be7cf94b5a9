// Package sweep drives the cable-constants pipeline across a frequency
// sweep: per-frequency soil resolution, loop matrix assembly from the
// internal, insulation and earth-return models, loop-to-phase transform,
// block assembly, bundling/Kron reduction and the optional symmetrical-
// component transform.
package sweep

import (
	"fmt"
	"sync"

	"github.com/alexiusacademia/gocable/internal/cable"
	"github.com/alexiusacademia/gocable/internal/impedance"
	"github.com/alexiusacademia/gocable/internal/transform"
	"github.com/alexiusacademia/gocable/internal/umat"
	"github.com/alexiusacademia/gocable/internal/uncertain"
)

// Options configures a sweep run.
type Options struct {
	// Simplified selects the closed-form coth/csch internal-impedance
	// formulas instead of the exact Bessel-ratio ones.
	Simplified bool

	// KxMode selects the axial propagation constant of the earth-return
	// integrals. Empty means quasi-static (none).
	KxMode impedance.KxMode

	// Sequence additionally produces zero/positive/negative sequence
	// matrices; requires exactly three retained phases.
	Sequence bool

	// Workers bounds the number of frequency samples computed in
	// parallel. Samples are mutually independent; values below 2 run the
	// sweep serially.
	Workers int
}

// Result holds the swept system matrices, indexed [phase][phase][sample]
// to match the phase-major layout consumers extract tables from.
type Result struct {
	Frequencies []float64
	Phases      []int // retained phase ids, in order of first appearance

	Z [][][]uncertain.Complex // series impedance (Ω/m)
	Y [][][]uncertain.Complex // shunt admittance (S/m)

	// Sequence-domain matrices, present only when Options.Sequence is set.
	Z012 [][][]uncertain.Complex
	Y012 [][][]uncertain.Complex
}

// resolvedLayer holds one conductor layer with every measured quantity
// converted to its uncertain value exactly once, so correlations survive
// across all frequency samples.
type resolvedLayer struct {
	rIn, rOut, resistivity, muR      uncertain.Value
	insROut, insMuR, insEpsR, insRho uncertain.Value
	hasInsulation                    bool
}

func (l resolvedLayer) outerRadius() uncertain.Value {
	if l.hasInsulation {
		return l.insROut
	}
	return l.rOut
}

type resolvedCable struct {
	x, y   uncertain.Value
	layers []resolvedLayer
}

func resolveSystem(sys *cable.System) []resolvedCable {
	out := make([]resolvedCable, len(sys.Cables))
	for i, c := range sys.Cables {
		rc := resolvedCable{x: c.X.Measured(), y: c.Y.Measured()}
		for _, l := range c.Layers {
			rl := resolvedLayer{
				rIn:           l.RIn.Measured(),
				rOut:          l.ROut.Measured(),
				resistivity:   l.Resistivity.Measured(),
				muR:           l.MuR.Measured(),
				hasInsulation: l.InsROut.Value > 0,
			}
			if rl.hasInsulation {
				rl.insROut = l.InsROut.Measured()
				rl.insMuR = l.InsMuR.Measured()
				rl.insEpsR = l.InsEpsR.Measured()
				rl.insRho = l.InsResistivity.Measured()
			}
			rc.layers = append(rc.layers, rl)
		}
		out[i] = rc
	}
	return out
}

// Run sweeps the system across its frequency samples and returns the
// reduced phase-domain impedance and admittance matrices. Any model error
// aborts the run; there is no partial-result policy.
func Run(sys *cable.System, opts Options) (*Result, error) {
	if err := sys.Validate(); err != nil {
		return nil, err
	}
	if len(sys.Frequencies) == 0 {
		return nil, fmt.Errorf("%w: system has no frequency samples", cable.ErrInvalidGeometry)
	}
	cables := resolveSystem(sys)
	phases := sys.PhaseOrder()

	samples := make([]sample, len(sys.Frequencies))

	compute := func(k int) error {
		freq := sys.Frequencies[k]
		z, y, retained, err := computeSample(sys, cables, phases, freq, opts)
		if err != nil {
			return fmt.Errorf("at f=%g Hz: %w", freq, err)
		}
		s := sample{z: z, y: y, retained: retained}
		if opts.Sequence {
			if s.z012, err = transform.Sequence(z); err != nil {
				return fmt.Errorf("at f=%g Hz: %w", freq, err)
			}
			if s.y012, err = transform.Sequence(y); err != nil {
				return fmt.Errorf("at f=%g Hz: %w", freq, err)
			}
		}
		samples[k] = s
		return nil
	}

	if err := forEachSample(len(sys.Frequencies), opts.Workers, compute); err != nil {
		return nil, err
	}

	res := &Result{
		Frequencies: append([]float64(nil), sys.Frequencies...),
		Phases:      samples[0].retained,
	}
	res.Z = gather(samples, func(s sample) *umat.Dense { return s.z })
	res.Y = gather(samples, func(s sample) *umat.Dense { return s.y })
	if opts.Sequence {
		res.Z012 = gather(samples, func(s sample) *umat.Dense { return s.z012 })
		res.Y012 = gather(samples, func(s sample) *umat.Dense { return s.y012 })
	}
	return res, nil
}

// forEachSample applies fn to every sample index, optionally across a
// bounded worker pool. The samples share no mutable state, so the only
// coordination needed is collecting the first error.
func forEachSample(n, workers int, fn func(int) error) error {
	if workers < 2 || n < 2 {
		for k := 0; k < n; k++ {
			if err := fn(k); err != nil {
				return err
			}
		}
		return nil
	}
	if workers > n {
		workers = n
	}
	// Pre-filled buffered channel: workers that bail out early leave the
	// remaining indices undrained without ever blocking anyone.
	idx := make(chan int, n)
	for k := 0; k < n; k++ {
		idx <- k
	}
	close(idx)

	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for k := range idx {
				if err := fn(k); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	return <-errs
}

// sample holds the reduced matrices of one frequency point.
type sample struct {
	z, y, z012, y012 *umat.Dense
	retained         []int
}

// gather scatters per-sample matrices into the [phase][phase][sample]
// result layout.
func gather(samples []sample, pick func(sample) *umat.Dense) [][][]uncertain.Complex {
	n := pick(samples[0]).Rows()
	out := make([][][]uncertain.Complex, n)
	for i := 0; i < n; i++ {
		out[i] = make([][]uncertain.Complex, n)
		for j := 0; j < n; j++ {
			out[i][j] = make([]uncertain.Complex, len(samples))
			for k := range samples {
				out[i][j][k] = pick(samples[k]).At(i, j)
			}
		}
	}
	return out
}
