package geometry

import (
	"math"

	"github.com/pkg/errors"
	"github.com/wiless/vlib"
)

// cube directions of a hexagonal lattice, walked counter-clockwise
var hexDirections = [6]vlib.Location3D{{X: 1, Y: -1, Z: 0}, {X: 1, Y: 0, Z: -1}, {X: 0, Y: 1, Z: -1}, {X: -1, Y: 1, Z: 0}, {X: -1, Y: 0, Z: 1}, {X: 0, Y: -1, Z: 1}}

// Circular drops n elements equally spaced on a ring of given radius in the
// x-y plane. Element k sits at angle k*360/n measured from +x.
func Circular(n int, radius float64) ([]vlib.Location3D, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrInvalidGeometry, "element count %d", n)
	}
	if err := checkSpacing("radius", radius); err != nil {
		return nil, err
	}
	result := make([]vlib.Location3D, n)
	delta := 2 * math.Pi / float64(n)
	for k := range result {
		angle := delta * float64(k)
		result[k] = vlib.Location3D{X: radius * math.Cos(angle), Y: radius * math.Sin(angle)}
	}
	return result, nil
}

// Hexagonal drops a triangular lattice of rings around a centre element,
// 1+3*rings*(rings+1) elements in total, with nearest neighbours spaced by
// spacing. Elements are ordered ring by ring starting at the centre.
func Hexagonal(rings int, spacing float64) ([]vlib.Location3D, error) {
	if rings < 0 {
		return nil, errors.Wrapf(ErrInvalidGeometry, "ring count %d", rings)
	}
	if err := checkSpacing("spacing", spacing); err != nil {
		return nil, err
	}
	hexsize := spacing / math.Sqrt(3)
	result := make([]vlib.Location3D, 1, 1+3*rings*(rings+1))
	for r := 1; r <= rings; r++ {
		cube := hexDirections[4].Scale3D(float64(r))
		for i := 0; i < 6; i++ {
			for j := 0; j < r; j++ {
				result = append(result, cube2XY(cube, hexsize))
				cube = hexDirections[i].Shift3D(cube)
			}
		}
	}
	return result, nil
}

func cube2XY(cube vlib.Location3D, hexsize float64) vlib.Location3D {
	return vlib.Location3D{
		X: hexsize * math.Sqrt(3) * (cube.X + cube.Z*0.5),
		Y: hexsize * 1.5 * cube.Z,
	}
}
