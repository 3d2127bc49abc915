// Package geometry generates element positions of linear, planar and arbitrary
// arrays. All coordinates are normalised to the wavelength.
package geometry

import (
	"math"

	"github.com/pkg/errors"
	"github.com/wiless/vlib"
)

var (
	// ErrInvalidGeometry is returned for empty arrays, non-positive counts or
	// spacings and non-finite coordinates.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrDimensionMismatch is returned when a per-element vector does not have
	// exactly one entry per element.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrEmptyArray is returned when an operation receives zero elements.
	ErrEmptyArray = errors.New("empty array")
)

// Linear drops n elements along the x axis, spaced by spacing. The first
// element sits at the origin and element k at (k*spacing, 0, 0).
func Linear(n int, spacing float64) ([]vlib.Location3D, error) {
	if n < 1 {
		return nil, errors.Wrapf(ErrInvalidGeometry, "element count %d", n)
	}
	if err := checkSpacing("spacing", spacing); err != nil {
		return nil, err
	}
	result := make([]vlib.Location3D, n)
	for k := range result {
		result[k].X = float64(k) * spacing
	}
	return result, nil
}

// Planar drops nx*ny elements on the x-y plane. Element (ix,iy) is stored at
// index ix*ny+iy, i.e. y varies fastest, and sits at (ix*dx, iy*dy, 0).
func Planar(nx, ny int, dx, dy float64) ([]vlib.Location3D, error) {
	if nx < 1 || ny < 1 {
		return nil, errors.Wrapf(ErrInvalidGeometry, "element count %dx%d", nx, ny)
	}
	if err := checkSpacing("dx", dx); err != nil {
		return nil, err
	}
	if err := checkSpacing("dy", dy); err != nil {
		return nil, err
	}
	result := make([]vlib.Location3D, nx*ny)
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			result[Index(ix, iy, ny)] = vlib.Location3D{X: float64(ix) * dx, Y: float64(iy) * dy}
		}
	}
	return result, nil
}

// Index returns the position of element (ix,iy) in a planar array with ny
// elements along y.
func Index(ix, iy, ny int) int {
	return ix*ny + iy
}

// Arbitrary validates the caller supplied points and returns a copy of them.
func Arbitrary(points []vlib.Location3D) ([]vlib.Location3D, error) {
	if len(points) == 0 {
		return nil, errors.Wrap(ErrInvalidGeometry, "no elements")
	}
	for i, p := range points {
		if !finite(p.X) || !finite(p.Y) || !finite(p.Z) {
			return nil, errors.Wrapf(ErrInvalidGeometry, "element %d at %v is not finite", i, p)
		}
	}
	result := make([]vlib.Location3D, len(points))
	copy(result, points)
	return result, nil
}

// Centre translates the points so that their centroid is at the origin.
func Centre(points []vlib.Location3D) []vlib.Location3D {
	if len(points) == 0 {
		return nil
	}
	var mean vlib.Location3D
	for _, p := range points {
		mean = mean.Shift3D(p)
	}
	shift := mean.Scale3D(-1 / float64(len(points)))

	result := make([]vlib.Location3D, len(points))
	for i, p := range points {
		result[i] = p.Shift3D(shift)
	}
	return result
}

// CheckWeights verifies that a per-element vector of length n matches the
// element count.
func CheckWeights(elements, n int) error {
	if elements == 0 {
		return ErrEmptyArray
	}
	if elements != n {
		return errors.Wrapf(ErrDimensionMismatch, "%d elements, %d weights", elements, n)
	}
	return nil
}

func checkSpacing(name string, d float64) error {
	if !finite(d) || d <= 0 {
		return errors.Wrapf(ErrInvalidGeometry, "%s %v must be positive", name, d)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
