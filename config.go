package antarray

import (
	"math"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wiless/antarray/antenna"
	"github.com/wiless/antarray/arrayfactor"
	"github.com/wiless/antarray/geometry"
	"github.com/wiless/vlib"
	"gonum.org/v1/gonum/floats"
)

// Array types accepted by Config
const (
	TypeLinear    = "linear"
	TypeRect      = "rect"
	TypeArbitrary = "arbitrary"
	TypeCircular  = "circular"
	TypeHexagonal = "hexagonal"
)

// GridConfig describes an azimuth/elevation sweep in degree. A zero or
// missing elevation step gives an azimuth cut at ElMin.
type GridConfig struct {
	AzMin  float64 `mapstructure:"azmin" json:"azmin"`
	AzMax  float64 `mapstructure:"azmax" json:"azmax"`
	AzStep float64 `mapstructure:"azstep" json:"azstep"`
	ElMin  float64 `mapstructure:"elmin" json:"elmin"`
	ElMax  float64 `mapstructure:"elmax" json:"elmax"`
	ElStep float64 `mapstructure:"elstep" json:"elstep"`
}

// Grid returns the observation grid, azimuth along rows.
func (g GridConfig) Grid() (arrayfactor.Grid, error) {
	az, err := axis("azimuth", g.AzMin, g.AzMax, g.AzStep)
	if err != nil {
		return arrayfactor.Grid{}, err
	}
	if g.ElStep == 0 || g.ElMin == g.ElMax {
		return arrayfactor.AzimuthCut(az, g.ElMin), nil
	}
	el, err := axis("elevation", g.ElMin, g.ElMax, g.ElStep)
	if err != nil {
		return arrayfactor.Grid{}, err
	}
	return arrayfactor.AzElGrid(az, el), nil
}

func axis(name string, min, max, step float64) ([]float64, error) {
	for _, v := range []float64{min, max, step} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Wrapf(ErrInvalidGrid, "%s %v:%v:%v", name, min, step, max)
		}
	}
	if step <= 0 || max < min {
		return nil, errors.Wrapf(ErrInvalidGrid, "%s %v:%v:%v", name, min, step, max)
	}
	n := int(math.Floor((max-min)/step+1e-9)) + 1
	if n == 1 {
		return []float64{min}, nil
	}
	return floats.Span(make([]float64, n), min, min+float64(n-1)*step), nil
}

// Config describes an array, its element, beam and observation grid, e.g.
// as decoded from a configuration file. Size and Spacing are used by linear
// arrays, the X/Y variants by rect arrays and Elements by arbitrary arrays.
// Circular rings take Size elements on Radius and hexagonal lattices Rings
// rings around a centre element, both uniformly excited and always steered.
type Config struct {
	Type     string             `mapstructure:"type" json:"type"`
	Size     int                `mapstructure:"size" json:"size"`
	Spacing  float64            `mapstructure:"spacing" json:"spacing"`
	SizeX    int                `mapstructure:"sizex" json:"sizex"`
	SizeY    int                `mapstructure:"sizey" json:"sizey"`
	SpacingX float64            `mapstructure:"spacingx" json:"spacingx"`
	SpacingY float64            `mapstructure:"spacingy" json:"spacingy"`
	Radius   float64            `mapstructure:"radius" json:"radius,omitempty"`
	Rings    int                `mapstructure:"rings" json:"rings,omitempty"`
	Centered bool               `mapstructure:"centered" json:"centered"`
	Steer    bool               `mapstructure:"steer" json:"steer"`
	Elements []Element          `mapstructure:"elements" json:"elements,omitempty"`
	Element  antenna.SettingAAS `mapstructure:"element" json:"element"`
	Beam     Beam               `mapstructure:"beam" json:"beam"`
	Grid     GridConfig         `mapstructure:"grid" json:"grid"`
}

// DefaultConfig is a broadside 8 element half wavelength linear array of
// isotropic elements observed from -90 to 90 degree.
func DefaultConfig() Config {
	return Config{
		Type:    TypeLinear,
		Size:    8,
		Spacing: 0.5,
		Element: antenna.SettingAAS{Kind: antenna.KindIsotropic},
		Grid:    GridConfig{AzMin: -90, AzMax: 90, AzStep: 0.5},
	}
}

// DecodeConfig decodes settings on top of DefaultConfig. Keys are matched
// case insensitively and numbers may be given as strings.
func DecodeConfig(settings map[string]interface{}) (Config, error) {
	cfg := DefaultConfig()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return cfg, err
	}
	if err := decoder.Decode(settings); err != nil {
		return cfg, errors.Wrap(err, "decoding array config")
	}
	return cfg, nil
}

// Build constructs the array described by c.
func (c Config) Build() (Array, error) {
	element, err := c.Element.Element()
	if err != nil {
		return nil, err
	}
	kind := strings.ToLower(strings.TrimSpace(c.Type))
	log.WithFields(log.Fields{"type": kind, "element": c.Element.Kind}).Debug("antarray: build")
	switch kind {
	case TypeLinear, "":
		a := LinearArray{Size: c.Size, Spacing: c.Spacing, Centered: c.Centered, ElementPattern: element}
		if _, err := a.Positions(); err != nil {
			return nil, err
		}
		return a, nil
	case TypeRect, "planar", "rectangular":
		a := RectArray{SizeX: c.SizeX, SizeY: c.SizeY, SpacingX: c.SpacingX, SpacingY: c.SpacingY, Centered: c.Centered, ElementPattern: element}
		if _, err := a.Positions(); err != nil {
			return nil, err
		}
		return a, nil
	case TypeArbitrary:
		a, err := NewArbitraryArray(c.Elements)
		if err != nil {
			return nil, err
		}
		a.Steer = c.Steer
		a.ElementPattern = element
		return a, nil
	case TypeCircular:
		pos, err := geometry.Circular(c.Size, c.Radius)
		if err != nil {
			return nil, err
		}
		return latticeArray(pos, element)
	case TypeHexagonal:
		pos, err := geometry.Hexagonal(c.Rings, c.Spacing)
		if err != nil {
			return nil, err
		}
		return latticeArray(pos, element)
	}
	return nil, errors.Wrapf(ErrUnknownArray, "%q", c.Type)
}

func latticeArray(pos []vlib.Location3D, element arrayfactor.ElementPattern) (Array, error) {
	elements := make([]Element, len(pos))
	for i, p := range pos {
		elements[i] = Element{Position: p, Amplitude: 1}
	}
	a, err := NewArbitraryArray(elements)
	if err != nil {
		return nil, err
	}
	a.Steer = true
	a.ElementPattern = element
	return a, nil
}

// Run builds the array and evaluates it over the configured grid.
func (c Config) Run() (Result, error) {
	a, err := c.Build()
	if err != nil {
		return Result{}, err
	}
	g, err := c.Grid.Grid()
	if err != nil {
		return Result{}, err
	}
	return a.Evaluate(g, c.Beam)
}
