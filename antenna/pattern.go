package antenna

import (
	"math"

	"github.com/wiless/antarray/geometry"
)

// Wrap0To180 wraps the input angle to 0 to 180
func Wrap0To180(degree float64) float64 {
	if degree >= 0 && degree <= 180 {
		return degree
	}
	if degree < 0 {
		degree = -degree
	}
	if degree >= 360 {
		degree = math.Mod(degree, 360)
	}
	if degree > 180 {
		degree = 360 - degree
	}
	return degree
}

// Wrap180To180 wraps the input angle to -180 to 180
func Wrap180To180(degree float64) float64 {
	if degree >= -180 && degree <= 180 {
		return degree
	}
	degree = math.Mod(degree+180, 360)
	if degree < 0 {
		degree += 360
	}
	return degree - 180
}

// Isotropic radiates the same amplitude in every direction.
type Isotropic struct{}

// Amplitude returns 1.
func (Isotropic) Amplitude(geometry.Direction) float64 { return 1 }

// Cosine is the cos^n(θ) element, θ measured from boresight. Directions
// behind the array plane get zero amplitude.
type Cosine struct {
	Exponent float64 `mapstructure:"exponent"`
}

// Amplitude returns cos^Exponent of the angle off boresight.
func (c Cosine) Amplitude(d geometry.Direction) float64 {
	if d.W <= 0 {
		return 0
	}
	return math.Pow(d.W, c.Exponent)
}

// Sector is the parabolic element pattern of Report ITU-R M.2412 Table 8-6
// (3GPP TR 37.840), attenuated by at most SLAV in each plane and in total.
// Angles are in degree, tilts move the element boresight.
type Sector struct {
	HBeamWidth float64 `mapstructure:"hbeamwidth"`
	VBeamWidth float64 `mapstructure:"vbeamwidth"`
	SLAV       float64 `mapstructure:"slav"`
	MaxGainDb  float64 `mapstructure:"maxgain"`
	HTiltAngle float64 `mapstructure:"htilt"`
	VTiltAngle float64 `mapstructure:"vtilt"`
}

// BSSector is the outdoor base station element, Table 8-6 in Report ITU-R M.2412
func BSSector() Sector {
	return Sector{HBeamWidth: 65, VBeamWidth: 65, SLAV: 30, MaxGainDb: 8}
}

// IndoorSector is the ceiling mounted indoor element, Table 8-7 in Report
// ITU-R M.2412, mechanically tilted 20 degree below the horizon.
func IndoorSector() Sector {
	return Sector{HBeamWidth: 90, VBeamWidth: 90, SLAV: 25, MaxGainDb: 5, VTiltAngle: 20}
}

// UESector is the user terminal element above 4GHz, Table 8-8 in Report
// ITU-R M.2412
func UESector() Sector {
	return Sector{HBeamWidth: 90, VBeamWidth: 90, SLAV: 25, MaxGainDb: 5}
}

// PatternDb returns the horizontal attenuation ah, the vertical attenuation
// av and the combined element gain ag in dB for azimuth az and elevation el
// in degree.
func (s Sector) PatternDb(az, el float64) (ah, av, ag float64) {
	az = Wrap180To180(az - s.HTiltAngle)
	zenith := Wrap0To180(90 - el)
	ah = -math.Min(12.0*math.Pow(az/s.HBeamWidth, 2.0), s.SLAV)
	av = -math.Min(12.0*math.Pow((zenith-90-s.VTiltAngle)/s.VBeamWidth, 2.0), s.SLAV)
	ag = -math.Min(-(ah+av), s.SLAV) + s.MaxGainDb
	return ah, av, ag
}

// Amplitude returns the linear field amplitude of the element gain towards d.
func (s Sector) Amplitude(d geometry.Direction) float64 {
	az, el := d.AzEl()
	_, _, ag := s.PatternDb(az, el)
	return math.Pow(10, ag/20)
}
