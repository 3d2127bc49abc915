// Package antarray computes far field patterns of phased antenna arrays.
//
// LinearArray, RectArray and ArbitraryArray build element positions and
// steered, tapered excitations and evaluate the array factor over an
// observation grid. The building blocks live in the geometry, taper,
// excitation, arrayfactor, pattern and antenna packages.
package antarray

import (
	"github.com/pkg/errors"
	"github.com/wiless/antarray/arrayfactor"
	"github.com/wiless/antarray/excitation"
	"github.com/wiless/antarray/geometry"
	"github.com/wiless/antarray/pattern"
	"github.com/wiless/antarray/taper"
	"github.com/wiless/vlib"
)

var (
	// ErrUnknownArray is returned by Config.Build for unsupported array types.
	ErrUnknownArray = errors.New("unknown array type")

	// ErrNotACut is returned by cut-only operations on 2D results.
	ErrNotACut = errors.New("pattern is not a one dimensional cut")

	// ErrInvalidGrid is returned for empty, reversed or non-finite grid
	// ranges and non-positive steps.
	ErrInvalidGrid = errors.New("invalid observation grid")
)

// Beam steers the main lobe to AzimuthDeg, ElevationDeg and tapers the
// element amplitudes. Window applies along x; WindowY along y for planar
// arrays, falling back to Window when unnamed.
type Beam struct {
	AzimuthDeg   float64    `mapstructure:"az" json:"az"`
	ElevationDeg float64    `mapstructure:"el" json:"el"`
	Window       taper.Spec `mapstructure:"window" json:"window"`
	WindowY      taper.Spec `mapstructure:"windowy" json:"windowy"`
}

func (b Beam) steering() (geometry.Direction, error) {
	return excitation.Steering(b.AzimuthDeg, b.ElevationDeg)
}

func (b Beam) windowY() taper.Spec {
	if b.WindowY.Name == "" {
		return b.Window
	}
	return b.WindowY
}

// Result is an evaluated pattern together with the array that produced it.
type Result struct {
	arrayfactor.Pattern
	Grid      arrayfactor.Grid
	Weights   vlib.VectorC
	Positions []vlib.Location3D
}

// Db returns the pattern normalised to its peak in dB, clamped at floorDb.
func (r Result) Db(floorDb float64) (vlib.VectorF, error) {
	return pattern.ToDb(r.Values, floorDb)
}

// Axis returns the angle or direction cosine samples of a one dimensional
// result.
func (r Result) Axis() ([]float64, error) {
	switch {
	case r.Cols == 1 && len(r.Grid.RowAxis) == r.Rows:
		return r.Grid.RowAxis, nil
	case r.Rows == 1 && len(r.Grid.ColAxis) == r.Cols:
		return r.Grid.ColAxis, nil
	}
	return nil, errors.Wrapf(ErrNotACut, "%dx%d", r.Rows, r.Cols)
}

// Metrics extracts peak, beamwidth, nulls and sidelobe level from a one
// dimensional result.
func (r Result) Metrics(floorDb float64) (pattern.Metrics, error) {
	axis, err := r.Axis()
	if err != nil {
		return pattern.Metrics{}, err
	}
	db, err := r.Db(floorDb)
	if err != nil {
		return pattern.Metrics{}, err
	}
	return pattern.Analyze(db, axis)
}

func evaluate(element arrayfactor.ElementPattern, positions []vlib.Location3D, weights vlib.VectorC, g arrayfactor.Grid) (Result, error) {
	p, err := arrayfactor.Evaluator{Element: element}.Grid(positions, weights, g)
	if err != nil {
		return Result{}, err
	}
	return Result{Pattern: p, Grid: g, Weights: weights, Positions: positions}, nil
}
