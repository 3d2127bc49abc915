package geometry

import (
	"math"

	"github.com/wiless/vlib"
)

// visibleTol absorbs rounding when u²+v²+w² is evaluated for unit vectors.
const visibleTol = 1e-9

// Direction is an observation or steering direction given by its direction
// cosines relative to the array axes. Boresight is +z.
type Direction struct {
	U, V, W float64
}

// Radian converts degree to radian
func Radian(degree float64) float64 {
	return degree * math.Pi / 180.0
}

// Degree converts radian to degree
func Degree(radian float64) float64 {
	return radian * 180.0 / math.Pi
}

// FromAzEl returns the unit direction for azimuth and elevation in degree.
// Azimuth rotates from +z towards +x, elevation lifts towards +y:
//
//	u = sin(az)cos(el), v = sin(el), w = cos(az)cos(el)
func FromAzEl(azDeg, elDeg float64) Direction {
	return fromAzElRad(Radian(azDeg), Radian(elDeg))
}

func fromAzElRad(az, el float64) Direction {
	cosel := math.Cos(el)
	return Direction{
		U: math.Sin(az) * cosel,
		V: math.Sin(el),
		W: math.Cos(az) * cosel,
	}
}

// FromUV returns the forward hemisphere direction with the given u and v
// cosines. When u²+v² > 1 the returned direction has W = NaN and is not
// Visible.
func FromUV(u, v float64) Direction {
	r := 1 - u*u - v*v
	if r < 0 {
		if r > -visibleTol {
			r = 0
		} else {
			return Direction{U: u, V: v, W: math.NaN()}
		}
	}
	return Direction{U: u, V: v, W: math.Sqrt(r)}
}

// Visible reports whether d is finite and inside the unit sphere.
func (d Direction) Visible() bool {
	if !finite(d.U) || !finite(d.V) || !finite(d.W) {
		return false
	}
	return d.U*d.U+d.V*d.V+d.W*d.W <= 1+visibleTol
}

// Dot returns the projection of p onto d, in wavelengths.
func (d Direction) Dot(p vlib.Location3D) float64 {
	return p.X*d.U + p.Y*d.V + p.Z*d.W
}

// AzEl returns the azimuth and elevation of d in degree.
func (d Direction) AzEl() (azDeg, elDeg float64) {
	el := math.Asin(math.Max(-1, math.Min(1, d.V)))
	az := math.Atan2(d.U, d.W)
	return Degree(az), Degree(el)
}
