// Package photometry derives physical stellar properties from catalog
// photometry: absolute magnitude, effective temperature, radius, and a
// discrete spectral color classification.
package photometry

import (
	"errors"
	"fmt"
	"math"
)

// Reference star values used to anchor the radius estimate (the Sun).
const (
	ReferenceAbsMag = 4.83 // absolute magnitude of the reference star
	ReferenceTempK  = 5778 // effective temperature of the reference star, K
)

// ErrDegenerateColor is returned when the color index sits at or beyond a
// pole of the empirical temperature fit, where the formula yields a
// non-positive or non-finite result.
var ErrDegenerateColor = errors.New("degenerate color index for temperature fit")

// Properties holds the derived physical estimates for a single star.
type Properties struct {
	TemperatureK float64 // effective temperature in Kelvin, always > 0
	AbsoluteMag  float64
	RadiusSolar  float64 // radius in solar radii, always > 0
	Class        SpectralClass
}

// AbsoluteMagnitude computes the absolute magnitude from an apparent
// magnitude and a distance in parsecs. The caller guarantees distancePc > 0.
func AbsoluteMagnitude(apparentMag, distancePc float64) float64 {
	return apparentMag - 5*math.Log10(distancePc) + 5
}

// Temperature estimates the effective temperature in Kelvin from a color
// index using the empirical two-pole fit:
//
//	T = 4600 · (1/(0.92·ci + 1.7) + 1/(0.92·ci + 0.62))
//
// Color indices near the fit's poles produce non-physical temperatures; those
// are rejected with ErrDegenerateColor rather than clamped.
func Temperature(colorIndex float64) (float64, error) {
	t := 4600 * (1/(0.92*colorIndex+1.7) + 1/(0.92*colorIndex+0.62))
	if math.IsNaN(t) || math.IsInf(t, 0) || t <= 0 {
		return 0, fmt.Errorf("%w: ci=%g", ErrDegenerateColor, colorIndex)
	}
	return t, nil
}

// RadiusSolar estimates the stellar radius in solar radii from the absolute
// magnitude and effective temperature, via the Stefan-Boltzmann relation
// L ∝ R²T⁴ with L ∝ 10^(-0.4·M).
func RadiusSolar(absMag, tempK float64) float64 {
	luminosityRatio := math.Pow(10, -0.4*(absMag-ReferenceAbsMag))
	ratio := ReferenceTempK / tempK
	return math.Sqrt(luminosityRatio) * ratio * ratio
}

// Estimate derives the full property set from apparent magnitude, color index
// and distance. It returns ErrDegenerateColor for color indices at the
// temperature fit's poles; the caller drops such records and continues.
func Estimate(apparentMag, colorIndex, distancePc float64) (Properties, error) {
	temp, err := Temperature(colorIndex)
	if err != nil {
		return Properties{}, err
	}
	absMag := AbsoluteMagnitude(apparentMag, distancePc)
	return Properties{
		TemperatureK: temp,
		AbsoluteMag:  absMag,
		RadiusSolar:  RadiusSolar(absMag, temp),
		Class:        ClassifyTemperature(temp),
	}, nil
}
