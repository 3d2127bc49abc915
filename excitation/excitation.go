// Package excitation combines amplitude tapers and steering phase into the
// complex weight of every array element.
package excitation

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
	"github.com/wiless/antarray/geometry"
	"github.com/wiless/vlib"
)

var (
	// ErrInvalidSteering is returned for steering directions outside the
	// visible forward hemisphere.
	ErrInvalidSteering = errors.New("invalid steering direction")

	// ErrInvalidAmplitude is returned for negative or non-finite amplitudes.
	ErrInvalidAmplitude = errors.New("invalid amplitude")

	// ErrZeroExcitation is returned when every element amplitude is zero.
	ErrZeroExcitation = errors.New("zero excitation")
)

// Steering returns the main beam direction for azimuth and elevation in
// degree. Both must lie in [-90,90], directions behind the array plane are
// rejected.
func Steering(azDeg, elDeg float64) (geometry.Direction, error) {
	if !finite(azDeg) || !finite(elDeg) {
		return geometry.Direction{}, errors.Wrapf(ErrInvalidSteering, "az %v el %v", azDeg, elDeg)
	}
	if math.Abs(azDeg) > 90 || math.Abs(elDeg) > 90 {
		return geometry.Direction{}, errors.Wrapf(ErrInvalidSteering, "az %v el %v outside [-90,90]", azDeg, elDeg)
	}
	return geometry.FromAzEl(azDeg, elDeg), nil
}

// SteeringUV returns the main beam direction with direction cosines u and v.
func SteeringUV(u, v float64) (geometry.Direction, error) {
	d := geometry.FromUV(u, v)
	if !d.Visible() {
		return geometry.Direction{}, errors.Wrapf(ErrInvalidSteering, "u %v v %v outside the visible region", u, v)
	}
	return d, nil
}

// Separable combines a taper along x (row) and one along y (col) by outer
// product, in the planar element order ix*len(col)+iy.
func Separable(row, col []float64) vlib.VectorF {
	result := vlib.NewVectorF(len(row) * len(col))
	for ix, a := range row {
		for iy, b := range col {
			result[geometry.Index(ix, iy, len(col))] = a * b
		}
	}
	return result
}

// Build returns the weights steering the main beam of positions towards
// steer, tapered by amplitude:
//
//	w[i] = a[i] exp(-j2π p[i]·steer) / Σ|a|
//
// With non-negative amplitudes the array factor peaks at steer with unit
// magnitude.
func Build(amplitude []float64, positions []vlib.Location3D, steer geometry.Direction) (vlib.VectorC, error) {
	if err := geometry.CheckWeights(len(positions), len(amplitude)); err != nil {
		return nil, err
	}
	if !steer.Visible() {
		return nil, errors.Wrapf(ErrInvalidSteering, "%v", steer)
	}
	sum, err := amplitudeSum(amplitude)
	if err != nil {
		return nil, err
	}

	weights := vlib.NewVectorC(len(positions))
	for i, p := range positions {
		phase := -2 * math.Pi * steer.Dot(p)
		weights[i] = complex(amplitude[i]/sum, 0) * cmplx.Exp(complex(0, phase))
	}
	return weights, nil
}

// FromAmplitudePhase returns a[i] exp(jφ[i]) for per element amplitude and
// phase in degree, without normalisation.
func FromAmplitudePhase(amplitude, phaseDeg []float64) (vlib.VectorC, error) {
	if err := geometry.CheckWeights(len(amplitude), len(phaseDeg)); err != nil {
		return nil, err
	}
	weights := vlib.NewVectorC(len(amplitude))
	for i, a := range amplitude {
		if !finite(a) || a < 0 || !finite(phaseDeg[i]) {
			return nil, errors.Wrapf(ErrInvalidAmplitude, "element %d amplitude %v phase %v", i, a, phaseDeg[i])
		}
		weights[i] = cmplx.Rect(a, geometry.Radian(phaseDeg[i]))
	}
	return weights, nil
}

// Normalise scales w so that Σ|w| = 1.
func Normalise(w vlib.VectorC) (vlib.VectorC, error) {
	sum := 0.0
	for i, v := range w {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return nil, errors.Wrapf(ErrInvalidAmplitude, "weight %d is %v", i, v)
		}
		sum += cmplx.Abs(v)
	}
	if sum == 0 {
		return nil, ErrZeroExcitation
	}
	result := vlib.NewVectorC(len(w))
	for i, v := range w {
		result[i] = v / complex(sum, 0)
	}
	return result, nil
}

func amplitudeSum(amplitude []float64) (float64, error) {
	sum := 0.0
	for i, a := range amplitude {
		if !finite(a) || a < 0 {
			return 0, errors.Wrapf(ErrInvalidAmplitude, "element %d amplitude %v", i, a)
		}
		sum += a
	}
	if sum == 0 {
		return 0, ErrZeroExcitation
	}
	return sum, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
