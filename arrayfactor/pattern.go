package arrayfactor

import (
	"math"
	"math/cmplx"

	"github.com/wiless/vlib"
)

// Pattern is an evaluated array factor, indexed like the Grid it came from.
// Samples outside the visible region are NaN with Visible false.
type Pattern struct {
	Values     vlib.VectorC
	Visible    []bool
	Rows, Cols int
}

// At returns the sample at row r and column c.
func (p Pattern) At(r, c int) complex128 {
	return p.Values[r*p.Cols+c]
}

// Magnitude returns |AF| for every sample, NaN where masked.
func (p Pattern) Magnitude() vlib.VectorF {
	result := vlib.NewVectorF(len(p.Values))
	for i, v := range p.Values {
		if cmplx.IsNaN(v) {
			result[i] = math.NaN()
			continue
		}
		result[i] = cmplx.Abs(v)
	}
	return result
}

// Row returns a copy of row r.
func (p Pattern) Row(r int) vlib.VectorC {
	result := vlib.NewVectorC(p.Cols)
	copy(result, p.Values[r*p.Cols:(r+1)*p.Cols])
	return result
}

// Col returns a copy of column c.
func (p Pattern) Col(c int) vlib.VectorC {
	result := vlib.NewVectorC(p.Rows)
	for r := range result {
		result[r] = p.At(r, c)
	}
	return result
}

// Matrix reshapes values into Rows×Cols, e.g. dB values of the pattern.
func (p Pattern) Matrix(values []float64) vlib.MatrixF {
	result := vlib.NewMatrixF(p.Rows, p.Cols)
	for r := 0; r < p.Rows; r++ {
		for c := 0; c < p.Cols; c++ {
			result[r][c] = values[r*p.Cols+c]
		}
	}
	return result
}
