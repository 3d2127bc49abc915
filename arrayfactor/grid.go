package arrayfactor

import (
	"github.com/wiless/antarray/geometry"
)

// Grid is an ordered set of observation directions. Two dimensional grids
// are stored row-major, index r*Cols+c.
type Grid struct {
	Directions []geometry.Direction
	Rows, Cols int

	// RowAxis and ColAxis hold the samples the grid was built from, in
	// degree for angle grids and as direction cosines for UV grids.
	RowAxis, ColAxis []float64
}

// Len returns the number of directions in g.
func (g Grid) Len() int { return len(g.Directions) }

// Cut returns a one dimensional sweep of azimuth angles in degree in the
// x-z plane (elevation 0), the principal cut of a linear array along x.
func Cut(anglesDeg []float64) Grid {
	dirs := make([]geometry.Direction, len(anglesDeg))
	for i, a := range anglesDeg {
		dirs[i] = geometry.FromAzEl(a, 0)
	}
	return Grid{Directions: dirs, Rows: len(anglesDeg), Cols: 1, RowAxis: clone(anglesDeg), ColAxis: []float64{0}}
}

// AzElGrid returns the Cartesian product of azimuth (rows) and elevation
// (columns) samples in degree.
func AzElGrid(azDeg, elDeg []float64) Grid {
	dirs := make([]geometry.Direction, 0, len(azDeg)*len(elDeg))
	for _, az := range azDeg {
		for _, el := range elDeg {
			dirs = append(dirs, geometry.FromAzEl(az, el))
		}
	}
	return Grid{Directions: dirs, Rows: len(azDeg), Cols: len(elDeg), RowAxis: clone(azDeg), ColAxis: clone(elDeg)}
}

// AzimuthCut sweeps azimuth at a fixed elevation.
func AzimuthCut(azDeg []float64, elDeg float64) Grid {
	return AzElGrid(azDeg, []float64{elDeg})
}

// ElevationCut sweeps elevation at a fixed azimuth. The result has a single
// row.
func ElevationCut(azDeg float64, elDeg []float64) Grid {
	return AzElGrid([]float64{azDeg}, elDeg)
}

// UVGrid returns the Cartesian product of u (rows) and v (columns) direction
// cosines. Points with u²+v² > 1 are outside the visible region and are
// masked during evaluation.
func UVGrid(u, v []float64) Grid {
	dirs := make([]geometry.Direction, 0, len(u)*len(v))
	for _, uu := range u {
		for _, vv := range v {
			dirs = append(dirs, geometry.FromUV(uu, vv))
		}
	}
	return Grid{Directions: dirs, Rows: len(u), Cols: len(v), RowAxis: clone(u), ColAxis: clone(v)}
}

// Directions wraps an explicit list of directions as a one column grid.
func Directions(dirs []geometry.Direction) Grid {
	return Grid{Directions: dirs, Rows: len(dirs), Cols: 1}
}

func clone(s []float64) []float64 {
	if s == nil {
		return nil
	}
	result := make([]float64, len(s))
	copy(result, s)
	return result
}
