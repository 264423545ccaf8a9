package qsim

import (
	"fmt"
	"strings"
)

// Matrix is a dense row-major grid of Complex values. Element (r, c) lives at
// data[r*cols+c]. A Matrix is immutable once returned by a constructor, so the
// same value may be shared between circuits and goroutines.
type Matrix struct {
	rows, cols int
	data       []Complex
}

// NewMatrix builds a matrix from explicit rows. All rows must have the same,
// non-zero length.
func NewMatrix(rows [][]Complex) (*Matrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("NewMatrix: empty input: %w", ErrDimensionMismatch)
	}
	cols := len(rows[0])
	m := &Matrix{rows: len(rows), cols: cols, data: make([]Complex, 0, len(rows)*cols)}
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("NewMatrix: row %d has %d columns, want %d: %w", i, len(row), cols, ErrDimensionMismatch)
		}
		m.data = append(m.data, row...)
	}
	return m, nil
}

// NewFilled builds a rows×cols matrix with every element set to v.
func NewFilled(rows, cols int, v Complex) (*Matrix, error) {
	m, err := newZero(rows, cols)
	if err != nil {
		return nil, fmt.Errorf("NewFilled: %w", err)
	}
	if v != Zero {
		for i := range m.data {
			m.data[i] = v
		}
	}
	return m, nil
}

// Identity returns the size×size identity matrix.
func Identity(size int) (*Matrix, error) {
	m, err := newZero(size, size)
	if err != nil {
		return nil, fmt.Errorf("Identity(%d): %w", size, err)
	}
	for i := 0; i < size; i++ {
		m.set(i, i, One)
	}
	return m, nil
}

func newZero(rows, cols int) (*Matrix, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("shape %dx%d: %w", rows, cols, ErrDimensionMismatch)
	}
	return &Matrix{rows: rows, cols: cols, data: make([]Complex, rows*cols)}, nil
}

// mustMatrix is used for the built-in gate tables whose literals are known to be
// well formed.
func mustMatrix(rows [][]Complex) *Matrix {
	m, err := NewMatrix(rows)
	if err != nil {
		panic(err)
	}
	return m
}

func (m *Matrix) Rows() int { return m.rows }
func (m *Matrix) Cols() int { return m.cols }

// Dims returns (rows, cols).
func (m *Matrix) Dims() (int, int) { return m.rows, m.cols }

// IsSquare reports whether rows == cols.
func (m *Matrix) IsSquare() bool { return m.rows == m.cols }

// At returns element (r, c) or ErrIndexOutOfRange.
func (m *Matrix) At(r, c int) (Complex, error) {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		return Zero, fmt.Errorf("Matrix.At(%d,%d) on %dx%d: %w", r, c, m.rows, m.cols, ErrIndexOutOfRange)
	}
	return m.data[r*m.cols+c], nil
}

// at and set skip bounds checks; callers own the loop bounds.
func (m *Matrix) at(r, c int) Complex     { return m.data[r*m.cols+c] }
func (m *Matrix) set(r, c int, v Complex) { m.data[r*m.cols+c] = v }

// Mul returns the product a·b. It fails with ErrDimensionMismatch when
// a.Cols() != b.Rows() and never returns a partial result.
func Mul(a, b *Matrix) (*Matrix, error) {
	if a.cols != b.rows {
		return nil, fmt.Errorf("Mul: %dx%d · %dx%d: %w", a.rows, a.cols, b.rows, b.cols, ErrDimensionMismatch)
	}
	out := &Matrix{rows: a.rows, cols: b.cols, data: make([]Complex, a.rows*b.cols)}
	for i := 0; i < a.rows; i++ {
		for j := 0; j < b.cols; j++ {
			var sum Complex
			for k := 0; k < a.cols; k++ {
				sum += a.at(i, k) * b.at(k, j)
			}
			out.set(i, j, sum)
		}
	}
	return out, nil
}

// MulVec returns m·v as a new slice.
func MulVec(m *Matrix, v []Complex) ([]Complex, error) {
	if m.cols != len(v) {
		return nil, fmt.Errorf("MulVec: %dx%d · vector(%d): %w", m.rows, m.cols, len(v), ErrDimensionMismatch)
	}
	out := make([]Complex, m.rows)
	for i := 0; i < m.rows; i++ {
		var sum Complex
		row := m.data[i*m.cols : (i+1)*m.cols]
		for j, x := range row {
			sum += x * v[j]
		}
		out[i] = sum
	}
	return out, nil
}

// Kron returns the Kronecker product a⊗b, of shape
// (a.rows*b.rows)×(a.cols*b.cols), with element
// (i*b.rows+k, j*b.cols+l) = a[i,j]·b[k,l].
func Kron(a, b *Matrix) *Matrix {
	out := &Matrix{
		rows: a.rows * b.rows,
		cols: a.cols * b.cols,
		data: make([]Complex, a.rows*b.rows*a.cols*b.cols),
	}
	for i := 0; i < a.rows; i++ {
		for j := 0; j < a.cols; j++ {
			aij := a.at(i, j)
			if aij == Zero {
				continue
			}
			for k := 0; k < b.rows; k++ {
				for l := 0; l < b.cols; l++ {
					out.set(i*b.rows+k, j*b.cols+l, aij*b.at(k, l))
				}
			}
		}
	}
	return out
}

// ConjTranspose returns the Hermitian adjoint m†.
func (m *Matrix) ConjTranspose() *Matrix {
	out := &Matrix{rows: m.cols, cols: m.rows, data: make([]Complex, len(m.data))}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.set(j, i, m.at(i, j).Conj())
		}
	}
	return out
}

// Equal reports exact element-wise equality.
func (m *Matrix) Equal(o *Matrix) bool {
	return m.ApproxEqual(o, 0)
}

// ApproxEqual reports whether m and o share a shape and every pair of elements
// differs by at most tol in both parts.
func (m *Matrix) ApproxEqual(o *Matrix, tol float64) bool {
	if m.rows != o.rows || m.cols != o.cols {
		return false
	}
	for i, v := range m.data {
		if !v.ApproxEqual(o.data[i], tol) {
			return false
		}
	}
	return true
}

// IsUnitary reports whether m†m is the identity within tol. It is informational:
// StateVector.Apply renormalizes instead of rejecting non-unitary operators.
func (m *Matrix) IsUnitary(tol float64) bool {
	if !m.IsSquare() {
		return false
	}
	prod, err := Mul(m.ConjTranspose(), m)
	if err != nil {
		return false
	}
	id, _ := Identity(m.rows)
	return prod.ApproxEqual(id, tol)
}

func (m *Matrix) String() string {
	var sb strings.Builder
	for i := 0; i < m.rows; i++ {
		sb.WriteString("[")
		for j := 0; j < m.cols; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.at(i, j).String())
		}
		sb.WriteString("]")
		if i < m.rows-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
