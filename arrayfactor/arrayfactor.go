// Package arrayfactor evaluates the far field array factor
//
//	AF(d) = Σ w[i] exp(j2π p[i]·d)
//
// of elements at positions p (in wavelengths) excited by complex weights w,
// for many observation directions d at once. The phases of all directions
// and elements form one dense matrix which multiplies the weight vector.
package arrayfactor

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
	"github.com/wiless/antarray/geometry"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"
)

// ErrNonFinite is returned when weights or the evaluated pattern contain
// NaN or Inf values.
var ErrNonFinite = errors.New("non-finite array factor")

// ElementPattern is the amplitude radiated by a single element towards d.
// It multiplies the array factor when all elements share the same pattern.
type ElementPattern interface {
	Amplitude(d geometry.Direction) float64
}

// Evaluator evaluates array factors. The zero value uses isotropic
// elements.
type Evaluator struct {
	Element ElementPattern
}

// Evaluate returns the array factor of isotropic elements for every
// direction. Directions outside the visible region are not evaluated and
// hold NaN.
func Evaluate(positions []vlib.Location3D, weights vlib.VectorC, directions []geometry.Direction) (vlib.VectorC, error) {
	return Evaluator{}.Evaluate(positions, weights, directions)
}

// Evaluate returns the array factor for every direction, see Evaluate.
func (e Evaluator) Evaluate(positions []vlib.Location3D, weights vlib.VectorC, directions []geometry.Direction) (vlib.VectorC, error) {
	values, _, err := e.evaluate(positions, weights, directions)
	return values, err
}

// Grid evaluates the whole grid g in one call.
func (e Evaluator) Grid(positions []vlib.Location3D, weights vlib.VectorC, g Grid) (Pattern, error) {
	values, visible, err := e.evaluate(positions, weights, g.Directions)
	if err != nil {
		return Pattern{}, err
	}
	return Pattern{Values: values, Visible: visible, Rows: g.Rows, Cols: g.Cols}, nil
}

func (e Evaluator) evaluate(positions []vlib.Location3D, weights vlib.VectorC, directions []geometry.Direction) (vlib.VectorC, []bool, error) {
	if err := geometry.CheckWeights(len(positions), len(weights)); err != nil {
		return nil, nil, err
	}
	for i, w := range weights {
		if cmplx.IsNaN(w) || cmplx.IsInf(w) {
			return nil, nil, errors.Wrapf(ErrNonFinite, "weight %d is %v", i, w)
		}
	}

	visible := make([]bool, len(directions))
	rows := make([]int, 0, len(directions))
	for m, d := range directions {
		if d.Visible() {
			visible[m] = true
			rows = append(rows, m)
		}
	}

	values := vlib.NewVectorC(len(directions))
	for m := range values {
		if !visible[m] {
			values[m] = cmplx.NaN()
		}
	}
	if len(rows) == 0 {
		return values, visible, nil
	}

	af := multiply(phaseMatrix(positions, directions, rows), weights)
	for r, m := range rows {
		v := af[r]
		if e.Element != nil {
			v *= complex(e.Element.Amplitude(directions[m]), 0)
		}
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return nil, nil, errors.Wrapf(ErrNonFinite, "direction %d %v", m, directions[m])
		}
		values[m] = v
	}
	return values, visible, nil
}

// phaseMatrix returns exp(jΦ) with Φ = 2π D Pᵀ for the selected direction
// rows D (M×3) and element positions P (N×3), stored row-major.
func phaseMatrix(positions []vlib.Location3D, directions []geometry.Direction, rows []int) cblas128.General {
	m, n := len(rows), len(positions)

	dmat := mat.NewDense(m, 3, nil)
	for r, idx := range rows {
		d := directions[idx]
		dmat.SetRow(r, []float64{d.U, d.V, d.W})
	}
	pmat := mat.NewDense(n, 3, nil)
	for i := range positions {
		pmat.SetRow(i, positions[i].Float64())
	}

	var phi mat.Dense
	phi.Mul(dmat, pmat.T())
	phi.Scale(2*math.Pi, &phi)

	data := make([]complex128, m*n)
	for r := 0; r < m; r++ {
		for i := 0; i < n; i++ {
			data[r*n+i] = cmplx.Exp(complex(0, phi.At(r, i)))
		}
	}
	return cblas128.General{Rows: m, Cols: n, Stride: n, Data: data}
}

func multiply(a cblas128.General, w vlib.VectorC) []complex128 {
	y := make([]complex128, a.Rows)
	cblas128.Gemv(blas.NoTrans, 1, a, cblas128.Vector{N: len(w), Inc: 1, Data: w}, 0, cblas128.Vector{N: len(y), Inc: 1, Data: y})
	return y
}
