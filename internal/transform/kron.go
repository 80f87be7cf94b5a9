package transform

import (
	"fmt"

	"github.com/alexiusacademia/gocable/internal/umat"
	"github.com/alexiusacademia/gocable/internal/uncertain"
)

func certainOne() uncertain.Complex {
	return uncertain.CertainComplex(1)
}

// phasePlan is the conductor ordering derived from a phase-order vector:
// one representative row per distinct positive phase id (in order of
// first occurrence), then the remaining bundle members, then every
// grounded (phase 0) row.
type phasePlan struct {
	perm     []int   // new index -> original index
	retained []int   // retained phase ids, one per representative
	groups   [][]int // per retained phase, new indices of its members (representative first)
}

func planPhases(phases []int) phasePlan {
	var plan phasePlan
	firstSeen := map[int]int{} // phase id -> representative original index
	var order []int
	for i, p := range phases {
		if p > 0 {
			if _, ok := firstSeen[p]; !ok {
				firstSeen[p] = i
				order = append(order, p)
			}
		}
	}
	for _, p := range order {
		plan.perm = append(plan.perm, firstSeen[p])
		plan.retained = append(plan.retained, p)
	}
	memberStart := len(plan.perm)
	memberOf := map[int][]int{}
	for i, p := range phases {
		if p > 0 && firstSeen[p] != i {
			memberOf[p] = append(memberOf[p], i)
		}
	}
	for _, p := range order {
		for _, i := range memberOf[p] {
			plan.perm = append(plan.perm, i)
		}
	}
	for i, p := range phases {
		if p == 0 {
			plan.perm = append(plan.perm, i)
		}
	}

	// new-index groups: representative rep at position k, members located
	// in the bundle region in retained-phase order
	pos := memberStart
	for k, p := range order {
		group := []int{k}
		for range memberOf[p] {
			group = append(group, pos)
			pos++
		}
		plan.groups = append(plan.groups, group)
	}
	return plan
}

// ReducePhases reorders, bundles and Kron-eliminates a full system matrix
// according to the phase-order vector (0 = grounded, equal positive ids =
// bundled). It returns the reduced matrix over the retained phases along
// with the retained phase ids in order of first appearance.
//
// Bundling subtracts the representative column (then row) of each phase
// group from the other members, encoding the shared-voltage constraint of
// physically parallel conductors. A singular elimination block is a hard
// error; there is no pseudo-inverse fallback.
func ReducePhases(m *umat.Dense, phases []int) (*umat.Dense, []int, error) {
	if m.Rows() != m.Cols() || m.Rows() != len(phases) {
		return nil, nil, fmt.Errorf("transform: phase vector length %d does not match %dx%d matrix",
			len(phases), m.Rows(), m.Cols())
	}
	plan := planPhases(phases)
	keep := len(plan.retained)
	if keep == 0 {
		return nil, nil, fmt.Errorf("transform: phase vector %v retains no conductors", phases)
	}
	n := m.Rows()

	work := m.PermuteSym(plan.perm)

	// First bundling pass: columns
	for _, group := range plan.groups {
		rep := group[0]
		for _, other := range group[1:] {
			for r := 0; r < n; r++ {
				work.Set(r, other, work.At(r, other).Sub(work.At(r, rep)))
			}
		}
	}
	// Second bundling pass: rows
	for _, group := range plan.groups {
		rep := group[0]
		for _, other := range group[1:] {
			for c := 0; c < n; c++ {
				work.Set(other, c, work.At(other, c).Sub(work.At(rep, c)))
			}
		}
	}

	if keep == n {
		return work, plan.retained, nil
	}

	z11 := work.Block(0, 0, keep, keep)
	z12 := work.Block(0, keep, keep, n-keep)
	z21 := work.Block(keep, 0, n-keep, keep)
	z22 := work.Block(keep, keep, n-keep, n-keep)

	z22inv, err := umat.Inverse(z22)
	if err != nil {
		return nil, nil, fmt.Errorf("transform: eliminating %d conductors: %w", n-keep, err)
	}
	corr := umat.Mul(umat.Mul(z12, z22inv), z21)
	reduced := umat.New(keep, keep)
	for i := 0; i < keep; i++ {
		for j := 0; j < keep; j++ {
			reduced.Set(i, j, z11.At(i, j).Sub(corr.At(i, j)))
		}
	}
	return reduced, plan.retained, nil
}
