package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Matrix wraps a gonum dense matrix. Nodal fields (solution, residual,
// body force), mesh point coordinates and JxW tables are all stored this way.
type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }

func (m Matrix) Set(i, j int, val float64) { m.M.Set(i, j, val) }

// AddAt accumulates val into entry (i,j). This is the scatter-add primitive
// used by the residual assembly: contributions from cells sharing a node sum.
func (m Matrix) AddAt(i, j int, val float64) {
	m.M.Set(i, j, m.M.At(i, j)+val)
}

// Row returns the storage backing row i, not a copy.
func (m Matrix) Row(i int) []float64 { return m.M.RawRowView(i) }

func (m Matrix) Copy() (R Matrix) {
	var (
		nr, nc = m.Dims()
		data   = m.M.RawMatrix().Data
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, data)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Zero() Matrix {
	data := m.M.RawMatrix().Data
	for i := range data {
		data[i] = 0
	}
	return m
}

// Subtract subtracts a matrix of identical dims, in place.
func (m Matrix) Subtract(a Matrix) Matrix {
	var (
		data  = m.M.RawMatrix().Data
		dataA = a.M.RawMatrix().Data
	)
	for i := range data {
		data[i] -= dataA[i]
	}
	return m
}

func (m Matrix) Sum() (s float64) {
	for _, val := range m.M.RawMatrix().Data {
		s += val
	}
	return
}

func (m Matrix) MaxAbs() (r float64) {
	for _, val := range m.M.RawMatrix().Data {
		if math.Abs(val) > r {
			r = math.Abs(val)
		}
	}
	return
}

// FrobNorm is the 2-norm of the matrix contents viewed as one long vector.
func (m Matrix) FrobNorm() float64 { return mat.Norm(m.M, 2) }
