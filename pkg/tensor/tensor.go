// Package tensor provides the small dense linear-algebra kit used when
// assembling GLM design matrices and linear predictors.  Everything is
// float64 and row-major; there is no broadcasting and no views.
package tensor

import "fmt"

// Matrix represents a dense row-major matrix of float64 values.
//
// R and C are the number of rows and columns.  Stride is the number of
// elements between the starts of two consecutive rows; for matrices built
// by this package it equals C.  Data holds the flattened values.
//
// Matrix performs no memory safety beyond the checks done by Go's slice
// types; out-of-range indices panic.
type Matrix struct {
	R, C   int
	Stride int
	Data   []float64
}

// NewMatrix allocates a zero-initialised matrix with the given shape.
func NewMatrix(r, c int) *Matrix {
	if r < 0 || c < 0 {
		panic("tensor: negative dimension for matrix")
	}
	return &Matrix{R: r, C: c, Stride: c, Data: make([]float64, r*c)}
}

// NewMatrixFromRows builds a matrix from row slices.  All rows must have
// the same length.
func NewMatrixFromRows(rows [][]float64) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("tensor: no rows")
	}
	c := len(rows[0])
	m := NewMatrix(len(rows), c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fmt.Errorf("tensor: row %d has %d columns, want %d", i, len(row), c)
		}
		copy(m.Row(i), row)
	}
	return m, nil
}

// Row returns a slice aliasing row i.
func (m *Matrix) Row(i int) []float64 {
	off := i * m.Stride
	return m.Data[off : off+m.C]
}

// At returns the element at (i, j).
func (m *Matrix) At(i, j int) float64 {
	return m.Data[i*m.Stride+j]
}

// Col returns a copy of column j.
func (m *Matrix) Col(j int) []float64 {
	out := make([]float64, m.R)
	for i := 0; i < m.R; i++ {
		out[i] = m.Data[i*m.Stride+j]
	}
	return out
}

// MatVec computes m * x into a new slice of length m.R.
func (m *Matrix) MatVec(x []float64) []float64 {
	if len(x) != m.C {
		panic("tensor: matvec dimension mismatch")
	}
	out := make([]float64, m.R)
	for i := 0; i < m.R; i++ {
		row := m.Row(i)
		var sum float64
		for j, v := range row {
			sum += v * x[j]
		}
		out[i] = sum
	}
	return out
}

// Dot computes the inner product of two equal-length vectors.
func Dot(a, b []float64) float64 {
	if len(a) != len(b) {
		panic("tensor: dot dimension mismatch")
	}
	var sum float64
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Apply maps fn over v elementwise, returning a new slice of the same
// length.
func Apply(v []float64, fn func(float64) float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = fn(x)
	}
	return out
}

// AddScalar adds s to every element of v, returning a new slice.
func AddScalar(v []float64, s float64) []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x + s
	}
	return out
}
