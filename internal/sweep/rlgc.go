package sweep

import (
	"math"

	"github.com/alexiusacademia/gocable/internal/phys"
	"github.com/alexiusacademia/gocable/internal/uncertain"
)

// RLGCEntry is the per-phase, per-frequency line-constant row extracted
// from the diagonal of the reduced matrices.
type RLGCEntry struct {
	Frequency float64
	Phase     int

	R uncertain.Value // series resistance (Ω/m)
	L uncertain.Value // series inductance (H/m)
	G uncertain.Value // shunt conductance (S/m)
	C uncertain.Value // shunt capacitance (F/m)
}

// RLGCTable extracts resistance, inductance, conductance and capacitance
// for every retained phase and frequency sample from the diagonal entries
// of the swept matrices.
func RLGCTable(res *Result) []RLGCEntry {
	var table []RLGCEntry
	for k, freq := range res.Frequencies {
		omega := phys.Omega(freq)
		for i, phase := range res.Phases {
			zd := res.Z[i][i][k]
			yd := res.Y[i][i][k]
			table = append(table, RLGCEntry{
				Frequency: freq,
				Phase:     phase,
				R:         zd.Re,
				L:         zd.Im.Scale(1 / omega),
				G:         yd.Re,
				C:         yd.Im.Scale(1 / omega),
			})
		}
	}
	return table
}

// Clean zeroes every matrix component whose nominal magnitude falls below
// the machine-epsilon threshold, in place. Numerical noise in the
// reduction otherwise survives into reports as spurious tiny couplings.
func Clean(res *Result) {
	for _, grid := range [][][][]uncertain.Complex{res.Z, res.Y, res.Z012, res.Y012} {
		for _, row := range grid {
			for _, col := range row {
				for k, v := range col {
					col[k] = cleanValue(v)
				}
			}
		}
	}
}

func cleanValue(v uncertain.Complex) uncertain.Complex {
	if math.Abs(v.Re.Nominal()) < phys.MatrixEps {
		v.Re = uncertain.Certain(0)
	}
	if math.Abs(v.Im.Nominal()) < phys.MatrixEps {
		v.Im = uncertain.Certain(0)
	}
	return v
}
