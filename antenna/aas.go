// Package antenna provides the radiation pattern of a single array element,
// which multiplies the array factor when every element is identical.
package antenna

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/wiless/antarray/arrayfactor"
)

var (
	// ErrUnknownElement is returned for element kinds not listed below.
	ErrUnknownElement = errors.New("unknown element pattern")

	// ErrInvalidParameter is returned for malformed settings and out of
	// range beamwidths, attenuations or exponents.
	ErrInvalidParameter = errors.New("invalid element parameter")
)

// Element kinds accepted by Setting
const (
	KindIsotropic = "isotropic"
	KindSector    = "sector"
	KindIndoor    = "indoor"
	KindUE        = "ue"
	KindCosine    = "cosine"
)

// SettingAAS selects and parameterises the element pattern of an array.
// The zero Kind is isotropic.
type SettingAAS struct {
	Kind     string  `mapstructure:"kind" json:"kind"`
	Exponent float64 `mapstructure:"exponent" json:"exponent"`
	Sector   `mapstructure:",squash"`
}

// SetDefault resets s to the outdoor base station sector element.
func (s *SettingAAS) SetDefault() {
	s.Kind = KindSector
	s.Exponent = 1
	s.Sector = BSSector()
}

// NewAAS returns a SettingAAS with the defaults of SetDefault.
func NewAAS() *SettingAAS {
	result := new(SettingAAS)
	result.SetDefault()
	return result
}

// Set overrides fields of s from a JSON object, e.g. {"kind":"cosine","exponent":2}.
func (s *SettingAAS) Set(str string) error {
	if err := json.Unmarshal([]byte(str), s); err != nil {
		return errors.Wrapf(ErrInvalidParameter, "element setting %q: %v", str, err)
	}
	return nil
}

// Element returns the pattern selected by s.
func (s SettingAAS) Element() (arrayfactor.ElementPattern, error) {
	kind := strings.ToLower(strings.TrimSpace(s.Kind))
	log.WithField("kind", kind).Debug("antenna: element pattern")
	switch kind {
	case "", KindIsotropic, "omni":
		return Isotropic{}, nil
	case KindCosine:
		if s.Exponent < 0 || math.IsNaN(s.Exponent) || math.IsInf(s.Exponent, 0) {
			return nil, errors.Wrapf(ErrInvalidParameter, "cosine exponent %v", s.Exponent)
		}
		return Cosine{Exponent: s.Exponent}, nil
	case KindSector, "bs":
		return checkSector(s.withDefaults())
	case KindIndoor:
		return checkSector(IndoorSector())
	case KindUE:
		return checkSector(UESector())
	}
	return nil, errors.Wrapf(ErrUnknownElement, "%q", s.Kind)
}

// withDefaults fills unset beamwidths and side lobe attenuation from BSSector.
func (s SettingAAS) withDefaults() Sector {
	def, result := BSSector(), s.Sector
	if result.HBeamWidth == 0 {
		result.HBeamWidth = def.HBeamWidth
	}
	if result.VBeamWidth == 0 {
		result.VBeamWidth = def.VBeamWidth
	}
	if result.SLAV == 0 {
		result.SLAV = def.SLAV
	}
	return result
}

func checkSector(s Sector) (arrayfactor.ElementPattern, error) {
	if !(s.HBeamWidth > 0) || !(s.VBeamWidth > 0) {
		return nil, errors.Wrapf(ErrInvalidParameter, "beamwidth %vx%v", s.HBeamWidth, s.VBeamWidth)
	}
	if !(s.SLAV >= 0) || math.IsInf(s.SLAV, 0) {
		return nil, errors.Wrapf(ErrInvalidParameter, "side lobe attenuation %v", s.SLAV)
	}
	return s, nil
}
