package taper

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/dsp/fourier"
)

// chebyshev returns the Dolph-Chebyshev window whose sidelobes all sit
// p.SidelobeDb below the main lobe. The pattern is sampled as the Chebyshev
// polynomial T_{n-1}(x0 cos(πk/n)) and transformed back to the aperture.
func chebyshev(n int, p Params) ([]float64, error) {
	order := float64(n - 1)
	r := math.Pow(10, p.SidelobeDb/20)
	x0 := math.Cosh(math.Acosh(r) / order)

	seq := make([]complex128, n)
	for k := range seq {
		x := x0 * math.Cos(math.Pi*float64(k)/float64(n))
		var t float64
		switch {
		case x > 1:
			t = math.Cosh(order * math.Acosh(x))
		case x < -1:
			t = float64(2*(n%2)-1) * math.Cosh(order*math.Acosh(-x))
		default:
			t = math.Cos(order * math.Acos(x))
		}
		seq[k] = complex(t, 0)
		if n%2 == 0 {
			// half sample shift keeps the even length window symmetric
			seq[k] *= cmplx.Exp(complex(0, math.Pi*float64(k)/float64(n)))
		}
	}
	for k, v := range seq {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return nil, errors.Wrapf(ErrInvalidParameter, "chebyshev %d elements at %vdB overflows at %d", n, p.SidelobeDb, k)
		}
	}

	coeff := fourier.NewCmplxFFT(n).Coefficients(nil, seq)

	w := make([]float64, n)
	if n%2 == 1 {
		half := (n + 1) / 2
		for i := 0; i < half; i++ {
			w[half-1+i] = real(coeff[i])
			w[half-1-i] = real(coeff[i])
		}
	} else {
		half := n/2 + 1
		for i := 1; i < half; i++ {
			w[half-1-i] = real(coeff[i])
			w[half-2+i] = real(coeff[i])
		}
	}
	return w, nil
}
