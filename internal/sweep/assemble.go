package sweep

import (
	"github.com/alexiusacademia/gocable/internal/cable"
	"github.com/alexiusacademia/gocable/internal/impedance"
	"github.com/alexiusacademia/gocable/internal/phys"
	"github.com/alexiusacademia/gocable/internal/transform"
	"github.com/alexiusacademia/gocable/internal/umat"
	"github.com/alexiusacademia/gocable/internal/uncertain"
)

// computeSample assembles and reduces the phase-domain impedance and
// admittance matrices for one frequency sample.
func computeSample(sys *cable.System, cables []resolvedCable, phases []int, freq float64, opts Options) (z, y *umat.Dense, retained []int, err error) {
	soil, err := sys.Soil.ResolveAt(freq)
	if err != nil {
		return nil, nil, nil, err
	}
	earth, err := impedance.NewEarthReturn(soil, freq, opts.KxMode)
	if err != nil {
		return nil, nil, nil, err
	}

	nc := len(cables)
	zBlocks := make([][]*umat.Dense, nc)
	pBlocks := make([][]*umat.Dense, nc)
	for i := range cables {
		zBlocks[i] = make([]*umat.Dense, nc)
		pBlocks[i] = make([]*umat.Dense, nc)
		for j := range cables {
			var zb, pb *umat.Dense
			if i == j {
				zb, pb, err = selfLoopMatrices(&cables[i], earth, freq, opts.Simplified)
			} else {
				zb, pb, err = mutualLoopMatrices(&cables[i], &cables[j], earth)
			}
			if err != nil {
				return nil, nil, nil, err
			}
			zBlocks[i][j] = transform.LoopToPhase(zb)
			pBlocks[i][j] = transform.LoopToPhase(pb)
		}
	}

	zFull := umat.AssembleBlocks(zBlocks)
	pFull := umat.AssembleBlocks(pBlocks)

	zRed, retained, err := transform.ReducePhases(zFull, phases)
	if err != nil {
		return nil, nil, nil, err
	}
	pRed, _, err := transform.ReducePhases(pFull, phases)
	if err != nil {
		return nil, nil, nil, err
	}

	// Y = jω·P⁻¹
	pInv, err := umat.Inverse(pRed)
	if err != nil {
		return nil, nil, nil, err
	}
	yRed := pInv.Scale(complex(0, phys.Omega(freq)))

	return zRed, yRed, retained, nil
}

// selfLoopMatrices builds the diagonal loop impedance and potential
// coefficient blocks of one cable: internal plus insulation terms on the
// diagonal, conductor transfer impedances on the adjacent off-diagonals,
// and the earth-return self terms on the outermost loop.
func selfLoopMatrices(c *resolvedCable, earth *impedance.EarthReturn, freq float64, simplified bool) (z, p *umat.Dense, err error) {
	n := len(c.layers)
	z = umat.New(n, n)
	p = umat.New(n, n)

	internals := make([]impedance.TubularImpedance, n)
	for k, l := range c.layers {
		internals[k] = impedance.Tubular(l.rIn, l.rOut, l.resistivity, l.muR, freq, simplified)
	}

	for k, l := range c.layers {
		zkk := internals[k].ZOuter
		var pkk uncertain.Complex
		if l.hasInsulation {
			zkk = zkk.Add(impedance.InsulationSeries(l.rOut, l.insROut, l.insMuR, freq))
			pkk = impedance.InsulationShunt(l.rOut, l.insROut, l.insEpsR, l.insRho, freq)
		}
		if k+1 < n {
			// loop k closes through the inner surface of conductor k+1
			zkk = zkk.Add(internals[k+1].ZInner)
			zm := internals[k+1].ZMutual.Neg()
			z.Set(k, k+1, zm)
			z.Set(k+1, k, zm)
		} else {
			// outermost loop returns through the earth
			zEarth, err := earth.SelfImpedance(c.y, l.outerRadius())
			if err != nil {
				return nil, nil, err
			}
			zkk = zkk.Add(zEarth)
			pEarth, err := earth.SelfPotential(c.y, l.outerRadius())
			if err != nil {
				return nil, nil, err
			}
			pkk = pkk.Add(pEarth)
		}
		z.Set(k, k, zkk)
		p.Set(k, k, pkk)
	}
	return z, p, nil
}

// mutualLoopMatrices builds the off-diagonal block between two distinct
// cables. In the loop basis only the outermost loops couple, through the
// earth; the loop-to-phase transform spreads the coupling to every
// conductor pair.
func mutualLoopMatrices(a, b *resolvedCable, earth *impedance.EarthReturn) (z, p *umat.Dense, err error) {
	na, nb := len(a.layers), len(b.layers)
	z = umat.New(na, nb)
	p = umat.New(na, nb)

	dx := a.x.Sub(b.x).Abs()
	zm, err := earth.MutualImpedance(a.y, b.y, dx)
	if err != nil {
		return nil, nil, err
	}
	pm, err := earth.MutualPotential(a.y, b.y, dx)
	if err != nil {
		return nil, nil, err
	}
	z.Set(na-1, nb-1, zm)
	p.Set(na-1, nb-1, pm)
	return z, p, nil
}
