package geometry_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/wiless/antarray/geometry"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestLinearOrigin(t *testing.T) {
	for _, tc := range []struct {
		n       int
		spacing float64
	}{
		{16, 0.5},
		{32, 1},
		{1, 0.25},
	} {
		pos, err := geometry.Linear(tc.n, tc.spacing)
		if err != nil {
			t.Fatalf("Linear(%d,%v): %v", tc.n, tc.spacing, err)
		}
		if len(pos) != tc.n {
			t.Fatalf("Linear(%d,%v) returned %d elements", tc.n, tc.spacing, len(pos))
		}
		for k, p := range pos {
			if p.X != float64(k)*tc.spacing || p.Y != 0 || p.Z != 0 {
				t.Errorf("element %d at %v, want (%v,0,0)", k, p, float64(k)*tc.spacing)
			}
		}
	}
}

func TestPlanarOrdering(t *testing.T) {
	pos, err := geometry.Planar(3, 2, 0.5, 0.7)
	if err != nil {
		t.Fatal(err)
	}
	want := []vlib.Location3D{
		{X: 0, Y: 0}, {X: 0, Y: 0.7},
		{X: 0.5, Y: 0}, {X: 0.5, Y: 0.7},
		{X: 1.0, Y: 0}, {X: 1.0, Y: 0.7},
	}
	if len(pos) != len(want) {
		t.Fatalf("got %d elements, want %d", len(pos), len(want))
	}
	for i := range want {
		if !scalar.EqualWithinAbs(pos[i].X, want[i].X, 1e-12) || !scalar.EqualWithinAbs(pos[i].Y, want[i].Y, 1e-12) || pos[i].Z != 0 {
			t.Errorf("element %d at %v, want %v", i, pos[i], want[i])
		}
	}
	if got := geometry.Index(2, 1, 2); got != 5 {
		t.Errorf("Index(2,1,2) = %d, want 5", got)
	}
}

func TestInvalidGeometry(t *testing.T) {
	_, err := geometry.Linear(0, 0.5)
	if !errors.Is(err, geometry.ErrInvalidGeometry) {
		t.Errorf("Linear(0): got %v", err)
	}
	_, err = geometry.Linear(4, 0)
	if !errors.Is(err, geometry.ErrInvalidGeometry) {
		t.Errorf("Linear spacing 0: got %v", err)
	}
	_, err = geometry.Linear(4, math.NaN())
	if !errors.Is(err, geometry.ErrInvalidGeometry) {
		t.Errorf("Linear spacing NaN: got %v", err)
	}
	_, err = geometry.Planar(2, 0, 0.5, 0.5)
	if !errors.Is(err, geometry.ErrInvalidGeometry) {
		t.Errorf("Planar ny 0: got %v", err)
	}
	_, err = geometry.Planar(2, 2, 0.5, -1)
	if !errors.Is(err, geometry.ErrInvalidGeometry) {
		t.Errorf("Planar dy<0: got %v", err)
	}
	_, err = geometry.Arbitrary(nil)
	if !errors.Is(err, geometry.ErrInvalidGeometry) {
		t.Errorf("Arbitrary(nil): got %v", err)
	}
	_, err = geometry.Arbitrary([]vlib.Location3D{{X: 0}, {X: math.Inf(1)}})
	if !errors.Is(err, geometry.ErrInvalidGeometry) {
		t.Errorf("Arbitrary(Inf): got %v", err)
	}
}

func TestArbitraryCopies(t *testing.T) {
	in := []vlib.Location3D{{X: 1, Y: 2, Z: 3}}
	out, err := geometry.Arbitrary(in)
	if err != nil {
		t.Fatal(err)
	}
	in[0].X = 9
	if out[0].X != 1 {
		t.Errorf("Arbitrary shares storage with its input")
	}
}

func TestCentre(t *testing.T) {
	pos, _ := geometry.Linear(4, 0.5)
	c := geometry.Centre(pos)
	sum := 0.0
	for _, p := range c {
		sum += p.X
	}
	if !scalar.EqualWithinAbs(sum, 0, 1e-12) {
		t.Errorf("centroid at %v", sum/4)
	}
	if !scalar.EqualWithinAbs(c[0].X, -0.75, 1e-12) {
		t.Errorf("first element at %v, want -0.75", c[0].X)
	}

	pts := []vlib.Location3D{{X: 1, Y: 2, Z: 3}, {X: 3, Y: -2, Z: 1}, {X: 2, Y: 3, Z: -1}}
	c = geometry.Centre(pts)
	want := []vlib.Location3D{{X: -1, Y: 1, Z: 2}, {X: 1, Y: -3, Z: 0}, {X: 0, Y: 2, Z: -2}}
	for i := range want {
		if !scalar.EqualWithinAbs(c[i].X, want[i].X, 1e-12) || !scalar.EqualWithinAbs(c[i].Y, want[i].Y, 1e-12) || !scalar.EqualWithinAbs(c[i].Z, want[i].Z, 1e-12) {
			t.Errorf("centred[%d] = %v, want %v", i, c[i], want[i])
		}
	}
	if pts[0].X != 1 {
		t.Errorf("input modified: %v", pts[0])
	}
	if geometry.Centre(nil) != nil {
		t.Error("centre of no points")
	}
}

func TestCheckWeights(t *testing.T) {
	if err := geometry.CheckWeights(5, 4); !errors.Is(err, geometry.ErrDimensionMismatch) {
		t.Errorf("5 vs 4: got %v", err)
	}
	if err := geometry.CheckWeights(0, 0); !errors.Is(err, geometry.ErrEmptyArray) {
		t.Errorf("0 vs 0: got %v", err)
	}
	if err := geometry.CheckWeights(3, 3); err != nil {
		t.Errorf("3 vs 3: %v", err)
	}
}

func TestCircular(t *testing.T) {
	pos, err := geometry.Circular(8, 2)
	if err != nil {
		t.Fatal(err)
	}
	for k, p := range pos {
		r := math.Hypot(p.X, p.Y)
		if !scalar.EqualWithinAbs(r, 2, 1e-12) {
			t.Errorf("element %d radius %v", k, r)
		}
	}
	if !scalar.EqualWithinAbs(pos[2].Y, 2, 1e-12) {
		t.Errorf("element 2 at %v, want (0,2)", pos[2])
	}
}

func TestHexagonal(t *testing.T) {
	for rings, want := range []int{1, 7, 19, 37} {
		pos, err := geometry.Hexagonal(rings, 0.5)
		if err != nil {
			t.Fatal(err)
		}
		if len(pos) != want {
			t.Errorf("rings %d: %d elements, want %d", rings, len(pos), want)
		}
	}
	pos, _ := geometry.Hexagonal(1, 0.5)
	for k, p := range pos[1:] {
		d := math.Hypot(p.X, p.Y)
		if !scalar.EqualWithinAbs(d, 0.5, 1e-9) {
			t.Errorf("ring element %d at distance %v, want 0.5", k+1, d)
		}
	}

	// second ring: 6 corners at 2d and 6 edge midpoints at sqrt(3)d
	pos, _ = geometry.Hexagonal(2, 0.5)
	var sx, sy float64
	corners, edges := 0, 0
	for _, p := range pos {
		sx, sy = sx+p.X, sy+p.Y
	}
	for _, p := range pos[7:] {
		switch d := math.Hypot(p.X, p.Y); {
		case scalar.EqualWithinAbs(d, 1, 1e-9):
			corners++
		case scalar.EqualWithinAbs(d, 0.5*math.Sqrt(3), 1e-9):
			edges++
		default:
			t.Errorf("second ring element %v at distance %v", p, d)
		}
	}
	if corners != 6 || edges != 6 {
		t.Errorf("second ring %d corners %d edges, want 6 and 6", corners, edges)
	}
	if !scalar.EqualWithinAbs(sx, 0, 1e-9) || !scalar.EqualWithinAbs(sy, 0, 1e-9) {
		t.Errorf("lattice centroid (%v, %v)", sx, sy)
	}
	for i := range pos {
		for j := i + 1; j < len(pos); j++ {
			if math.Hypot(pos[i].X-pos[j].X, pos[i].Y-pos[j].Y) < 0.5-1e-9 {
				t.Errorf("elements %d and %d closer than the spacing", i, j)
			}
		}
	}
}

func TestDirections(t *testing.T) {
	d := geometry.FromAzEl(30, 0)
	if !scalar.EqualWithinAbs(d.U, 0.5, 1e-12) || d.V != 0 {
		t.Errorf("FromAzEl(30,0) = %v", d)
	}
	d = geometry.FromAzEl(0, 90)
	if !scalar.EqualWithinAbs(d.V, 1, 1e-12) || !d.Visible() {
		t.Errorf("FromAzEl(0,90) = %v", d)
	}
	az, el := geometry.FromAzEl(-40, 25).AzEl()
	if !scalar.EqualWithinAbs(az, -40, 1e-9) || !scalar.EqualWithinAbs(el, 25, 1e-9) {
		t.Errorf("AzEl round trip = %v,%v", az, el)
	}
	if geometry.FromUV(0.8, 0.8).Visible() {
		t.Errorf("FromUV(0.8,0.8) must be invisible")
	}
	if !geometry.FromUV(0.6, 0.8).Visible() {
		t.Errorf("FromUV(0.6,0.8) must be visible")
	}
	p := vlib.Location3D{X: 2, Y: 1, Z: 0}
	if got := geometry.FromUV(0.5, 0.25).Dot(p); !scalar.EqualWithinAbs(got, 1.25, 1e-12) {
		t.Errorf("Dot = %v, want 1.25", got)
	}
}
