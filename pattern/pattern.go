// Package pattern normalises array factors to decibels and extracts
// beamwidth, null and sidelobe metrics from pattern cuts.
package pattern

import (
	"math"
	"math/cmplx"

	"github.com/pkg/errors"
	"github.com/wiless/antarray/geometry"
	"github.com/wiless/vlib"
)

// DefaultFloorDb is the lowest level reported by ToDb.
const DefaultFloorDb = -60.0

var (
	// ErrEmptyPattern is returned for patterns with no samples or with every
	// sample masked.
	ErrEmptyPattern = errors.New("empty pattern")

	// ErrZeroPattern is returned when no sample has a non-zero magnitude.
	ErrZeroPattern = errors.New("pattern is zero everywhere")

	// ErrNonFinite is returned for Inf magnitudes.
	ErrNonFinite = errors.New("non-finite pattern sample")

	// ErrInvalidLevel is returned for NaN levels, floors above 0 dB and
	// crossing levels at or above 0 dB.
	ErrInvalidLevel = errors.New("invalid dB level")

	// ErrBeamwidthNotFound is returned when the cut ends before the pattern
	// falls to the requested level on either side of the peak.
	ErrBeamwidthNotFound = errors.New("beamwidth level not crossed")

	// ErrNullNotFound is returned when the cut ends before a local minimum on
	// either side of the peak.
	ErrNullNotFound = errors.New("null not found")

	// ErrNoSidelobe is returned when the main lobe covers the whole cut.
	ErrNoSidelobe = errors.New("no sidelobe in pattern")
)

// ToDb returns 20log10(|AF|/max|AF|) clamped below at floorDb. Zero samples
// map to floorDb and masked (NaN) samples stay NaN.
func ToDb(af []complex128, floorDb float64) (vlib.VectorF, error) {
	mag := make([]float64, len(af))
	for i, v := range af {
		if cmplx.IsNaN(v) {
			mag[i] = math.NaN()
			continue
		}
		mag[i] = cmplx.Abs(v)
	}
	return MagnitudeToDb(mag, floorDb)
}

// MagnitudeToDb is ToDb for linear magnitudes.
func MagnitudeToDb(mag []float64, floorDb float64) (vlib.VectorF, error) {
	if math.IsNaN(floorDb) || floorDb > 0 {
		return nil, errors.Wrapf(ErrInvalidLevel, "floor %vdB", floorDb)
	}
	if len(mag) == 0 {
		return nil, ErrEmptyPattern
	}
	peak := math.NaN()
	for i, m := range mag {
		if math.IsNaN(m) {
			continue
		}
		if math.IsInf(m, 0) {
			return nil, errors.Wrapf(ErrNonFinite, "sample %d", i)
		}
		if math.IsNaN(peak) || math.Abs(m) > peak {
			peak = math.Abs(m)
		}
	}
	if math.IsNaN(peak) {
		return nil, errors.Wrap(ErrEmptyPattern, "every sample is masked")
	}
	if peak == 0 {
		return nil, ErrZeroPattern
	}

	result := vlib.NewVectorF(len(mag))
	for i, m := range mag {
		switch {
		case math.IsNaN(m):
			result[i] = math.NaN()
		case m == 0:
			result[i] = floorDb
		default:
			r := math.Abs(m) / peak
			result[i] = math.Max(vlib.Db(r*r), floorDb)
		}
	}
	return result, nil
}

// FromDb converts peak relative dB values back to linear magnitudes.
func FromDb(db []float64) vlib.VectorF {
	result := vlib.NewVectorF(len(db))
	for i, v := range db {
		result[i] = math.Pow(10, v/20)
	}
	return result
}

// Peak returns the index and value of the largest sample, ignoring NaN.
func Peak(db []float64) (int, float64, error) {
	idx := -1
	for i, v := range db {
		if math.IsNaN(v) {
			continue
		}
		if idx < 0 || v > db[idx] {
			idx = i
		}
	}
	if idx < 0 {
		return -1, math.NaN(), ErrEmptyPattern
	}
	return idx, db[idx], nil
}

// Crossings returns the angles where a cut first drops levelDb below its
// peak on each side, linearly interpolated between samples.
func Crossings(db, anglesDeg []float64, levelDb float64) (left, right float64, err error) {
	if err := geometry.CheckWeights(len(anglesDeg), len(db)); err != nil {
		return 0, 0, err
	}
	if math.IsNaN(levelDb) || levelDb >= 0 {
		return 0, 0, errors.Wrapf(ErrInvalidLevel, "level %vdB", levelDb)
	}
	peak, peakDb, err := Peak(db)
	if err != nil {
		return 0, 0, err
	}
	threshold := peakDb + levelDb

	left, lok := crossing(db, anglesDeg, peak, -1, threshold)
	right, rok := crossing(db, anglesDeg, peak, +1, threshold)
	if !lok || !rok {
		return 0, 0, errors.Wrapf(ErrBeamwidthNotFound, "%vdB around %v°", levelDb, anglesDeg[peak])
	}
	return left, right, nil
}

// Beamwidth returns the angular width in degree between the levelDb
// crossings either side of the peak, e.g. -3 for the half power beamwidth.
func Beamwidth(db, anglesDeg []float64, levelDb float64) (float64, error) {
	left, right, err := Crossings(db, anglesDeg, levelDb)
	if err != nil {
		return 0, err
	}
	return math.Abs(right - left), nil
}

func crossing(db, angles []float64, peak, step int, threshold float64) (float64, bool) {
	for i := peak + step; i >= 0 && i < len(db); i += step {
		if math.IsNaN(db[i]) {
			return 0, false
		}
		if db[i] <= threshold {
			prev := i - step
			if db[prev] == db[i] {
				return angles[i], true
			}
			frac := (threshold - db[prev]) / (db[i] - db[prev])
			return angles[prev] + frac*(angles[i]-angles[prev]), true
		}
	}
	return 0, false
}

// FirstNulls returns the sample angles of the first local minima either
// side of the peak.
func FirstNulls(db, anglesDeg []float64) (left, right float64, err error) {
	if err := geometry.CheckWeights(len(anglesDeg), len(db)); err != nil {
		return 0, 0, err
	}
	li, ri, err := mainLobe(db)
	if err != nil {
		return 0, 0, err
	}
	if li < 0 || ri < 0 {
		return 0, 0, ErrNullNotFound
	}
	return anglesDeg[li], anglesDeg[ri], nil
}

// SidelobeLevel returns the largest sample outside the main lobe relative
// to the peak, in dB.
func SidelobeLevel(db []float64) (float64, error) {
	_, peakDb, err := Peak(db)
	if err != nil {
		return 0, err
	}
	li, ri, err := mainLobe(db)
	if err != nil {
		return 0, err
	}
	lo, hi := li, ri
	if lo < 0 {
		lo = 0
	}
	if hi < 0 {
		hi = len(db) - 1
	}
	best := math.Inf(-1)
	for i, v := range db {
		if math.IsNaN(v) || (i >= lo && i <= hi) {
			continue
		}
		if v > best {
			best = v
		}
	}
	if math.IsInf(best, -1) {
		return 0, ErrNoSidelobe
	}
	return best - peakDb, nil
}

// mainLobe walks down from the peak and returns the indices of the first
// local minimum on each side, -1 where the cut ends first.
func mainLobe(db []float64) (left, right int, err error) {
	peak, peakDb, err := Peak(db)
	if err != nil {
		return -1, -1, err
	}
	walk := func(step int) int {
		i := peak
		for {
			next := i + step
			if next < 0 || next >= len(db) || math.IsNaN(db[next]) {
				return -1
			}
			// a flat top at the peak is still main lobe
			if db[next] > db[i] || (db[next] == db[i] && db[i] < peakDb) {
				return i
			}
			i = next
		}
	}
	return walk(-1), walk(+1), nil
}

// Metrics summarises a pattern cut. Fields that cannot be extracted are NaN.
type Metrics struct {
	PeakDeg      float64
	PeakDb       float64
	HalfPowerDeg float64
	NullLeftDeg  float64
	NullRightDeg float64
	SidelobeDb   float64
}

// Analyze extracts Metrics from a dB cut sampled at anglesDeg.
func Analyze(db, anglesDeg []float64) (Metrics, error) {
	nan := math.NaN()
	m := Metrics{HalfPowerDeg: nan, NullLeftDeg: nan, NullRightDeg: nan, SidelobeDb: nan}
	if err := geometry.CheckWeights(len(anglesDeg), len(db)); err != nil {
		return m, err
	}
	peak, peakDb, err := Peak(db)
	if err != nil {
		return m, err
	}
	m.PeakDeg, m.PeakDb = anglesDeg[peak], peakDb
	if bw, err := Beamwidth(db, anglesDeg, -3); err == nil {
		m.HalfPowerDeg = bw
	}
	if l, r, err := FirstNulls(db, anglesDeg); err == nil {
		m.NullLeftDeg, m.NullRightDeg = l, r
	}
	if sll, err := SidelobeLevel(db); err == nil {
		m.SidelobeDb = sll
	}
	return m, nil
}
