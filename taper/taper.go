// Package taper provides named amplitude windows used to trade main beam
// width for sidelobe suppression.
package taper

import (
	"math"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/dsp/window"
)

var (
	// ErrUnknownTaper is returned for window names not in the library.
	ErrUnknownTaper = errors.New("unknown taper")

	// ErrInvalidParameter is returned for out of range window parameters.
	ErrInvalidParameter = errors.New("invalid taper parameter")
)

// Default sidelobe attenuation and Taylor nbar.
const (
	DefaultSidelobeDb = 60.0
	DefaultNbar       = 4
)

// Params holds the optional window parameters. SidelobeDb is the attenuation
// of the sidelobes below the main lobe as a positive number of dB, so 30
// requests -30dB sidelobes. It is used by the Chebyshev and Taylor windows,
// which reject values that are not positive. Nbar is used only by Taylor,
// zero selects DefaultNbar.
type Params struct {
	SidelobeDb float64 `mapstructure:"sll" json:"sll,omitempty"`
	Nbar       int     `mapstructure:"nbar" json:"nbar,omitempty"`
}

// Spec names a window together with its parameters, as decoded from a
// config. A Spec left without a sidelobe level uses DefaultSidelobeDb.
type Spec struct {
	Name   string `mapstructure:"name" json:"name"`
	Params `mapstructure:",squash"`
}

// Weights returns the n point window described by s. An empty name is
// uniform.
func (s Spec) Weights(n int) (vlib.VectorF, error) {
	name := s.Name
	if name == "" {
		name = Uniform
	}
	p := s.Params
	if p.SidelobeDb == 0 {
		p.SidelobeDb = DefaultSidelobeDb
	}
	return New(name, n, p)
}

type windowFunc func(n int, p Params) ([]float64, error)

// Window names accepted by New.
const (
	Uniform   = "uniform"
	Hamming   = "hamming"
	Hann      = "hann"
	Blackman  = "blackman"
	Chebyshev = "chebyshev"
	Taylor    = "taylor"
)

var library = map[string]windowFunc{
	Uniform:   uniform,
	Hamming:   gonumWindow(window.Hamming),
	Hann:      gonumWindow(window.Hann),
	Blackman:  gonumWindow(window.Blackman),
	Chebyshev: chebyshev,
	Taylor:    taylor,
}

var aliases = map[string]string{
	"square":          Uniform,
	"rectangular":     Uniform,
	"hanning":         Hann,
	"dolph-chebyshev": Chebyshev,
	"chebwin":         Chebyshev,
}

// Names returns the registered window names, sorted.
func Names() []string {
	result := make([]string, 0, len(library))
	for name := range library {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

// New returns the n point amplitude window called name. Names are case
// insensitive. The result is non-negative with its peak normalised to one.
func New(name string, n int, p Params) (vlib.VectorF, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	fn, ok := library[key]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownTaper, "%q", name)
	}
	if n < 1 {
		return nil, errors.Wrapf(ErrInvalidParameter, "window length %d", n)
	}
	p, err := p.validate(key)
	if err != nil {
		return nil, err
	}
	if n == 1 {
		return vlib.VectorF{1}, nil
	}
	w, err := fn(n, p)
	if err != nil {
		return nil, err
	}
	return normalise(key, w)
}

// FromMap decodes params, e.g. {"sll": 35, "nbar": 5}, and returns the
// window. Unknown parameter keys are rejected and a missing "sll" selects
// DefaultSidelobeDb.
func FromMap(name string, n int, params map[string]interface{}) (vlib.VectorF, error) {
	p := Params{SidelobeDb: DefaultSidelobeDb}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &p,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(params); err != nil {
		return nil, errors.Wrapf(ErrInvalidParameter, "%s: %v", name, err)
	}
	return New(name, n, p)
}

// sidelobe windows take their shape from Params.SidelobeDb
var sidelobe = map[string]bool{Chebyshev: true, Taylor: true}

func (p Params) validate(name string) (Params, error) {
	if sidelobe[name] && !(p.SidelobeDb > 0 && !math.IsInf(p.SidelobeDb, 1)) {
		return p, errors.Wrapf(ErrInvalidParameter, "%s sidelobe attenuation %v dB must be positive", name, p.SidelobeDb)
	}
	switch {
	case p.Nbar == 0:
		p.Nbar = DefaultNbar
	case p.Nbar < 0:
		return p, errors.Wrapf(ErrInvalidParameter, "nbar %d", p.Nbar)
	}
	return p, nil
}

func normalise(name string, w []float64) (vlib.VectorF, error) {
	peak := 0.0
	for i, v := range w {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Wrapf(ErrInvalidParameter, "%s window is not finite at %d", name, i)
		}
		// rounding leaves tiny negative values at the window edges
		if v < 0 {
			w[i] = 0
		}
		peak = math.Max(peak, w[i])
	}
	if peak == 0 {
		return nil, errors.Wrapf(ErrInvalidParameter, "%s window is all zero", name)
	}
	result := vlib.NewVectorF(len(w))
	for i, v := range w {
		result[i] = v / peak
	}
	return result, nil
}

func uniform(n int, _ Params) ([]float64, error) {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	return w, nil
}

func gonumWindow(fn func([]float64) []float64) windowFunc {
	return func(n int, _ Params) ([]float64, error) {
		return window.NewValues(fn, n), nil
	}
}
