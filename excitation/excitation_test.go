package excitation_test

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/pkg/errors"
	"github.com/wiless/antarray/excitation"
	"github.com/wiless/antarray/geometry"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestSteering(t *testing.T) {
	for _, tc := range []struct {
		az, el float64
		ok     bool
	}{
		{0, 0, true},
		{30, -20, true},
		{90, 0, true},
		{-90, 90, true},
		{91, 0, false},
		{0, -120, false},
		{math.NaN(), 0, false},
		{0, math.Inf(1), false},
	} {
		_, err := excitation.Steering(tc.az, tc.el)
		if tc.ok && err != nil {
			t.Errorf("Steering(%v,%v): %v", tc.az, tc.el, err)
		}
		if !tc.ok && !errors.Is(err, excitation.ErrInvalidSteering) {
			t.Errorf("Steering(%v,%v): got %v, want ErrInvalidSteering", tc.az, tc.el, err)
		}
	}
	if _, err := excitation.SteeringUV(0.9, 0.9); !errors.Is(err, excitation.ErrInvalidSteering) {
		t.Errorf("SteeringUV(0.9,0.9): got %v", err)
	}
	d, err := excitation.SteeringUV(0.5, 0)
	if err != nil || !scalar.EqualWithinAbs(d.W, math.Sqrt(0.75), 1e-12) {
		t.Errorf("SteeringUV(0.5,0) = %v, %v", d, err)
	}
}

func TestBuildPhaseProgression(t *testing.T) {
	pos, _ := geometry.Linear(4, 0.5)
	steer, _ := excitation.Steering(30, 0)
	w, err := excitation.Build([]float64{1, 1, 1, 1}, pos, steer)
	if err != nil {
		t.Fatal(err)
	}
	// sin(30°)*0.5λ spacing gives a -90° step between neighbours
	for i := range w {
		if !scalar.EqualWithinAbs(cmplx.Abs(w[i]), 0.25, 1e-12) {
			t.Errorf("|w[%d]| = %v", i, cmplx.Abs(w[i]))
		}
		if i > 0 {
			step := cmplx.Phase(w[i] / w[i-1])
			if !scalar.EqualWithinAbs(step, -math.Pi/2, 1e-9) {
				t.Errorf("phase step %d = %v", i, step)
			}
		}
	}
}

func TestBuildErrors(t *testing.T) {
	pos, _ := geometry.Linear(5, 0.5)
	steer, _ := excitation.Steering(0, 0)

	if _, err := excitation.Build([]float64{1, 1, 1, 1}, pos, steer); !errors.Is(err, geometry.ErrDimensionMismatch) {
		t.Errorf("4 amplitudes for 5 elements: got %v", err)
	}
	if _, err := excitation.Build(nil, nil, steer); !errors.Is(err, geometry.ErrEmptyArray) {
		t.Errorf("empty: got %v", err)
	}
	if _, err := excitation.Build(make([]float64, 5), pos, steer); !errors.Is(err, excitation.ErrZeroExcitation) {
		t.Errorf("zero amplitudes: got %v", err)
	}
	if _, err := excitation.Build([]float64{1, -1, 1, 1, 1}, pos, steer); !errors.Is(err, excitation.ErrInvalidAmplitude) {
		t.Errorf("negative amplitude: got %v", err)
	}
	behind := geometry.Direction{U: 0, V: 0, W: math.NaN()}
	if _, err := excitation.Build([]float64{1, 1, 1, 1, 1}, pos, behind); !errors.Is(err, excitation.ErrInvalidSteering) {
		t.Errorf("invisible steering: got %v", err)
	}
}

func TestSeparable(t *testing.T) {
	w := excitation.Separable([]float64{1, 2, 3}, []float64{10, 20})
	want := []float64{10, 20, 20, 40, 30, 60}
	for i := range want {
		if w[i] != want[i] {
			t.Errorf("[%d] = %v, want %v", i, w[i], want[i])
		}
	}
}

func TestFromAmplitudePhase(t *testing.T) {
	w, err := excitation.FromAmplitudePhase([]float64{0.125, 0.125}, []float64{0, 90})
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(real(w[0]), 0.125, 1e-12) || !scalar.EqualWithinAbs(imag(w[1]), 0.125, 1e-12) {
		t.Errorf("got %v", w)
	}
	if _, err := excitation.FromAmplitudePhase([]float64{1}, []float64{0, 1}); !errors.Is(err, geometry.ErrDimensionMismatch) {
		t.Errorf("mismatch: got %v", err)
	}
	n, err := excitation.Normalise(w)
	if err != nil {
		t.Fatal(err)
	}
	if !scalar.EqualWithinAbs(cmplx.Abs(n[0])+cmplx.Abs(n[1]), 1, 1e-12) {
		t.Errorf("Normalise sum = %v", cmplx.Abs(n[0])+cmplx.Abs(n[1]))
	}
	if _, err := excitation.Normalise(make([]complex128, 3)); !errors.Is(err, excitation.ErrZeroExcitation) {
		t.Errorf("zero weights: got %v", err)
	}
}
