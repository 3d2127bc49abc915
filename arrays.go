package antarray

import (
	log "github.com/sirupsen/logrus"
	"github.com/wiless/antarray/arrayfactor"
	"github.com/wiless/antarray/excitation"
	"github.com/wiless/antarray/geometry"
	"github.com/wiless/vlib"
)

// Array is implemented by every front-end.
type Array interface {
	Positions() ([]vlib.Location3D, error)
	Weights(b Beam) (vlib.VectorC, error)
	Evaluate(g arrayfactor.Grid, b Beam) (Result, error)
}

// LinearArray has Size elements along x, Spacing wavelengths apart. The
// first element sits at the origin unless Centered is set.
type LinearArray struct {
	Size           int
	Spacing        float64
	Centered       bool
	ElementPattern arrayfactor.ElementPattern
}

// Positions returns the element positions in wavelengths.
func (a LinearArray) Positions() ([]vlib.Location3D, error) {
	pos, err := geometry.Linear(a.Size, a.Spacing)
	if err != nil {
		return nil, err
	}
	if a.Centered {
		pos = geometry.Centre(pos)
	}
	return pos, nil
}

// Weights returns the excitation steering the array to b.
func (a LinearArray) Weights(b Beam) (vlib.VectorC, error) {
	pos, err := a.Positions()
	if err != nil {
		return nil, err
	}
	return a.weights(pos, b)
}

func (a LinearArray) weights(pos []vlib.Location3D, b Beam) (vlib.VectorC, error) {
	steer, err := b.steering()
	if err != nil {
		return nil, err
	}
	amp, err := b.Window.Weights(a.Size)
	if err != nil {
		return nil, err
	}
	return excitation.Build(amp, pos, steer)
}

// Pattern evaluates the x-z plane cut at anglesDeg.
func (a LinearArray) Pattern(anglesDeg []float64, b Beam) (Result, error) {
	return a.Evaluate(arrayfactor.Cut(anglesDeg), b)
}

// Evaluate returns the array factor over g.
func (a LinearArray) Evaluate(g arrayfactor.Grid, b Beam) (Result, error) {
	pos, err := a.Positions()
	if err != nil {
		return Result{}, err
	}
	w, err := a.weights(pos, b)
	if err != nil {
		return Result{}, err
	}
	log.WithFields(log.Fields{"elements": a.Size, "spacing": a.Spacing, "directions": g.Len()}).Debug("antarray: linear pattern")
	return evaluate(a.ElementPattern, pos, w, g)
}

// RectArray is a SizeX by SizeY grid in the x-y plane. Element (ix,iy) has
// index ix*SizeY+iy.
type RectArray struct {
	SizeX, SizeY       int
	SpacingX, SpacingY float64
	Centered           bool
	ElementPattern     arrayfactor.ElementPattern
}

// Positions returns the element positions in wavelengths.
func (a RectArray) Positions() ([]vlib.Location3D, error) {
	pos, err := geometry.Planar(a.SizeX, a.SizeY, a.SpacingX, a.SpacingY)
	if err != nil {
		return nil, err
	}
	if a.Centered {
		pos = geometry.Centre(pos)
	}
	return pos, nil
}

// Weights returns the separable excitation steering the array to b.
func (a RectArray) Weights(b Beam) (vlib.VectorC, error) {
	pos, err := a.Positions()
	if err != nil {
		return nil, err
	}
	return a.weights(pos, b)
}

func (a RectArray) weights(pos []vlib.Location3D, b Beam) (vlib.VectorC, error) {
	steer, err := b.steering()
	if err != nil {
		return nil, err
	}
	row, err := b.Window.Weights(a.SizeX)
	if err != nil {
		return nil, err
	}
	col, err := b.windowY().Weights(a.SizeY)
	if err != nil {
		return nil, err
	}
	return excitation.Build(excitation.Separable(row, col), pos, steer)
}

// Pattern is Evaluate, kept for symmetry with LinearArray.
func (a RectArray) Pattern(g arrayfactor.Grid, b Beam) (Result, error) {
	return a.Evaluate(g, b)
}

// Evaluate returns the array factor over g.
func (a RectArray) Evaluate(g arrayfactor.Grid, b Beam) (Result, error) {
	pos, err := a.Positions()
	if err != nil {
		return Result{}, err
	}
	w, err := a.weights(pos, b)
	if err != nil {
		return Result{}, err
	}
	log.WithFields(log.Fields{
		"size":       [2]int{a.SizeX, a.SizeY},
		"spacing":    [2]float64{a.SpacingX, a.SpacingY},
		"directions": g.Len(),
	}).Debug("antarray: planar pattern")
	return evaluate(a.ElementPattern, pos, w, g)
}

// Element is one radiator of an ArbitraryArray.
type Element struct {
	Position  vlib.Location3D `mapstructure:"position" json:"position"`
	Amplitude float64         `mapstructure:"amplitude" json:"amplitude"`
	PhaseDeg  float64         `mapstructure:"phase" json:"phase"`
}

// ArbitraryArray holds elements at caller supplied positions with their own
// amplitude and phase. Evaluate re-steers the elements when Steer is set and
// uses the stored excitation otherwise.
type ArbitraryArray struct {
	Steer          bool
	ElementPattern arrayfactor.ElementPattern

	positions []vlib.Location3D
	amplitude vlib.VectorF
	weights   vlib.VectorC
}

// NewArbitraryArray validates elements and stores their normalised
// excitation.
func NewArbitraryArray(elements []Element) (*ArbitraryArray, error) {
	if len(elements) == 0 {
		return nil, geometry.ErrEmptyArray
	}
	points := make([]vlib.Location3D, len(elements))
	amp := vlib.NewVectorF(len(elements))
	phase := vlib.NewVectorF(len(elements))
	for i, e := range elements {
		points[i], amp[i], phase[i] = e.Position, e.Amplitude, e.PhaseDeg
	}
	pos, err := geometry.Arbitrary(points)
	if err != nil {
		return nil, err
	}
	w, err := excitation.FromAmplitudePhase(amp, phase)
	if err != nil {
		return nil, err
	}
	w, err = excitation.Normalise(w)
	if err != nil {
		return nil, err
	}
	return &ArbitraryArray{positions: pos, amplitude: amp, weights: w}, nil
}

// Len returns the number of elements.
func (a *ArbitraryArray) Len() int { return len(a.positions) }

// Positions returns a copy of the element positions.
func (a *ArbitraryArray) Positions() ([]vlib.Location3D, error) {
	return geometry.Arbitrary(a.positions)
}

// Weights returns the stored excitation, or the excitation steered to b
// when Steer is set.
func (a *ArbitraryArray) Weights(b Beam) (vlib.VectorC, error) {
	if !a.Steer {
		result := vlib.NewVectorC(len(a.weights))
		copy(result, a.weights)
		return result, nil
	}
	return a.steered(b)
}

// steered keeps the element amplitudes and replaces their phases.
func (a *ArbitraryArray) steered(b Beam) (vlib.VectorC, error) {
	steer, err := b.steering()
	if err != nil {
		return nil, err
	}
	return excitation.Build(a.amplitude, a.positions, steer)
}

// Pattern evaluates the stored excitation over g.
func (a *ArbitraryArray) Pattern(g arrayfactor.Grid) (Result, error) {
	log.WithFields(log.Fields{"elements": a.Len(), "directions": g.Len()}).Debug("antarray: arbitrary pattern")
	pos := append([]vlib.Location3D(nil), a.positions...)
	w := append(vlib.VectorC(nil), a.weights...)
	return evaluate(a.ElementPattern, pos, w, g)
}

// Steered evaluates the array re-steered to b over g. Window is ignored,
// the element amplitudes are the taper.
func (a *ArbitraryArray) Steered(g arrayfactor.Grid, b Beam) (Result, error) {
	w, err := a.steered(b)
	if err != nil {
		return Result{}, err
	}
	log.WithFields(log.Fields{"elements": a.Len(), "az": b.AzimuthDeg, "el": b.ElevationDeg}).Debug("antarray: arbitrary pattern steered")
	pos := append([]vlib.Location3D(nil), a.positions...)
	return evaluate(a.ElementPattern, pos, w, g)
}

// Evaluate is Steered when Steer is set and Pattern otherwise.
func (a *ArbitraryArray) Evaluate(g arrayfactor.Grid, b Beam) (Result, error) {
	if a.Steer {
		return a.Steered(g, b)
	}
	return a.Pattern(g)
}
