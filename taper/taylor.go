package taper

import "math"

// taylor returns the Taylor window with p.Nbar nearly constant sidelobes
// adjacent to the main lobe at p.SidelobeDb below it (Carrara, Goodman and
// Majewski, Spotlight Synthetic Aperture Radar, pp. 512-513).
func taylor(n int, p Params) ([]float64, error) {
	nbar := p.Nbar
	b := math.Pow(10, p.SidelobeDb/20)
	a := math.Log(b+math.Sqrt(b*b-1)) / math.Pi
	s2 := float64(nbar*nbar) / (a*a + math.Pow(float64(nbar)-0.5, 2))

	fm := make([]float64, nbar-1)
	for mi := range fm {
		m := float64(mi + 1)
		numer := 1.0
		denom := 1.0
		for ji := range fm {
			j := float64(ji + 1)
			numer *= 1 - m*m/s2/(a*a+(j-0.5)*(j-0.5))
			if ji != mi {
				denom *= 1 - m*m/(j*j)
			}
		}
		sign := 1.0
		if (mi+1)%2 == 0 {
			sign = -1
		}
		fm[mi] = sign * numer / (2 * denom)
	}

	at := func(x float64) float64 {
		sum := 0.0
		for mi, f := range fm {
			m := float64(mi + 1)
			sum += f * math.Cos(2*math.Pi*m*(x-float64(n)/2+0.5)/float64(n))
		}
		return 2*sum + 1
	}

	w := make([]float64, n)
	for i := range w {
		w[i] = at(float64(i))
	}
	// normalised to the centre of the aperture, not only its samples
	scale := 1 / at(float64(n-1)/2)
	for i := range w {
		w[i] *= scale
	}
	return w, nil
}
