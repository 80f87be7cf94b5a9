// Package umat implements a dense matrix over uncertain complex values.
//
// gonum's mat package cannot carry a custom element type, so the small
// amount of linear algebra the cable-constants pipeline needs (products,
// a pivoted inverse, block assembly, symmetric permutations) lives here,
// with uncertainty flowing through the element arithmetic.
package umat

import (
	"errors"
	"fmt"
	"math/cmplx"

	"github.com/alexiusacademia/gocable/internal/uncertain"
)

// ErrSingular reports an elimination block or admittance matrix that is
// numerically singular.
var ErrSingular = errors.New("umat: singular matrix")

// pivotTol is the smallest nominal pivot magnitude accepted during
// elimination.
const pivotTol = 1e-300

// Dense is a row-major dense matrix of uncertain complex values.
type Dense struct {
	rows, cols int
	data       []uncertain.Complex
}

// New returns a zero rows×cols matrix.
func New(rows, cols int) *Dense {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("umat: invalid dimensions %dx%d", rows, cols))
	}
	return &Dense{rows: rows, cols: cols, data: make([]uncertain.Complex, rows*cols)}
}

// Identity returns the n×n identity matrix.
func Identity(n int) *Dense {
	m := New(n, n)
	one := uncertain.CertainComplex(1)
	for i := 0; i < n; i++ {
		m.Set(i, i, one)
	}
	return m
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.cols }

// At returns the element at row i, column j.
func (m *Dense) At(i, j int) uncertain.Complex {
	return m.data[i*m.cols+j]
}

// Set stores v at row i, column j.
func (m *Dense) Set(i, j int, v uncertain.Complex) {
	m.data[i*m.cols+j] = v
}

// Clone returns a deep copy.
func (m *Dense) Clone() *Dense {
	out := New(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// Nominal returns the nominal values as a plain complex matrix.
func (m *Dense) Nominal() [][]complex128 {
	out := make([][]complex128, m.rows)
	for i := range out {
		out[i] = make([]complex128, m.cols)
		for j := range out[i] {
			out[i][j] = m.At(i, j).Nominal()
		}
	}
	return out
}

// Mul returns the matrix product a·b.
func Mul(a, b *Dense) *Dense {
	if a.cols != b.rows {
		panic(fmt.Sprintf("umat: product dimension mismatch %dx%d · %dx%d", a.rows, a.cols, b.rows, b.cols))
	}
	out := New(a.rows, b.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < b.cols; j++ {
			sum := uncertain.CertainComplex(0)
			for k := 0; k < a.cols; k++ {
				sum = sum.Add(a.At(i, k).Mul(b.At(k, j)))
			}
			out.Set(i, j, sum)
		}
	}
	return out
}

// Scale returns k·m for an exact complex scalar k.
func (m *Dense) Scale(k complex128) *Dense {
	out := New(m.rows, m.cols)
	for i, v := range m.data {
		out.data[i] = v.Scale(k)
	}
	return out
}

// Inverse returns the matrix inverse computed by Gauss-Jordan elimination
// with partial pivoting on nominal magnitudes. A vanishing pivot returns
// ErrSingular; there is no pseudo-inverse fallback.
func Inverse(a *Dense) (*Dense, error) {
	if a.rows != a.cols {
		panic(fmt.Sprintf("umat: inverse of non-square %dx%d matrix", a.rows, a.cols))
	}
	n := a.rows
	work := a.Clone()
	inv := Identity(n)
	for col := 0; col < n; col++ {
		pivot := col
		best := cmplx.Abs(work.At(col, col).Nominal())
		for r := col + 1; r < n; r++ {
			if m := cmplx.Abs(work.At(r, col).Nominal()); m > best {
				best, pivot = m, r
			}
		}
		if best < pivotTol {
			return nil, fmt.Errorf("%w: zero pivot at column %d", ErrSingular, col)
		}
		if pivot != col {
			work.swapRows(col, pivot)
			inv.swapRows(col, pivot)
		}
		p := work.At(col, col)
		for j := 0; j < n; j++ {
			work.Set(col, j, work.At(col, j).Div(p))
			inv.Set(col, j, inv.At(col, j).Div(p))
		}
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			f := work.At(r, col)
			if f.Nominal() == 0 && f.IsCertain() {
				continue
			}
			for j := 0; j < n; j++ {
				work.Set(r, j, work.At(r, j).Sub(f.Mul(work.At(col, j))))
				inv.Set(r, j, inv.At(r, j).Sub(f.Mul(inv.At(col, j))))
			}
		}
	}
	return inv, nil
}

func (m *Dense) swapRows(a, b int) {
	for j := 0; j < m.cols; j++ {
		m.data[a*m.cols+j], m.data[b*m.cols+j] = m.data[b*m.cols+j], m.data[a*m.cols+j]
	}
}

// Block returns a copy of the r×c submatrix starting at (i0, j0).
func (m *Dense) Block(i0, j0, r, c int) *Dense {
	out := New(r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, m.At(i0+i, j0+j))
		}
	}
	return out
}

// SetBlock copies sub into m starting at (i0, j0).
func (m *Dense) SetBlock(i0, j0 int, sub *Dense) {
	for i := 0; i < sub.rows; i++ {
		for j := 0; j < sub.cols; j++ {
			m.Set(i0+i, j0+j, sub.At(i, j))
		}
	}
}

// PermuteSym returns the symmetric permutation P·m·Pᵀ, i.e. element (i,j)
// of the result is m[perm[i], perm[j]].
func (m *Dense) PermuteSym(perm []int) *Dense {
	if len(perm) != m.rows || m.rows != m.cols {
		panic("umat: permutation length must match square matrix dimension")
	}
	out := New(m.rows, m.cols)
	for i, pi := range perm {
		for j, pj := range perm {
			out.Set(i, j, m.At(pi, pj))
		}
	}
	return out
}

// AssembleBlocks stitches a grid of variable-shape blocks into one matrix,
// tracking row and column offsets. Block (i,j) must have as many rows as
// every other block in grid row i and as many columns as every other block
// in grid column j.
func AssembleBlocks(blocks [][]*Dense) *Dense {
	rows := 0
	for _, blockRow := range blocks {
		rows += blockRow[0].rows
	}
	cols := 0
	for _, b := range blocks[0] {
		cols += b.cols
	}
	out := New(rows, cols)
	i0 := 0
	for _, blockRow := range blocks {
		j0 := 0
		for _, b := range blockRow {
			if b.rows != blockRow[0].rows {
				panic("umat: inconsistent block heights")
			}
			out.SetBlock(i0, j0, b)
			j0 += b.cols
		}
		i0 += blockRow[0].rows
	}
	return out
}
