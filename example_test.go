package antarray_test

import (
	"fmt"

	"github.com/wiless/antarray"
	"github.com/wiless/antarray/arrayfactor"
	"github.com/wiless/antarray/pattern"
	"github.com/wiless/antarray/taper"
	"gonum.org/v1/gonum/floats"
)

func ExampleLinearArray_Pattern() {
	angles := floats.Span(make([]float64, 181), -90, 90)
	r, err := antarray.LinearArray{Size: 4, Spacing: 0.5}.Pattern(angles, antarray.Beam{})
	if err != nil {
		fmt.Println(err)
		return
	}
	m, err := r.Metrics(pattern.DefaultFloorDb)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("peak %.0f° nulls %.0f° %.0f° sidelobe %.1fdB\n", m.PeakDeg, m.NullLeftDeg, m.NullRightDeg, m.SidelobeDb)
	// Output: peak 0° nulls -30° 30° sidelobe -11.3dB
}

func ExampleRectArray_Pattern() {
	az := floats.Span(make([]float64, 61), -30, 30)
	beam := antarray.Beam{
		AzimuthDeg:   12,
		ElevationDeg: -5,
		Window:       taper.Spec{Name: taper.Hamming},
	}
	r, err := antarray.RectArray{SizeX: 8, SizeY: 8, SpacingX: 0.5, SpacingY: 0.5}.
		Pattern(arrayfactor.AzimuthCut(az, -5), beam)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%d samples, peak at %.0f°\n", r.Rows, az[floats.MaxIdx(r.Magnitude())])
	// Output: 61 samples, peak at 12°
}
