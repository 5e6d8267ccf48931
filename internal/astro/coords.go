// Package astro provides astronomical coordinate transformations and sky math.
package astro

import (
	"math"
)

// Equatorial represents celestial coordinates in the equatorial frame (J2000).
type Equatorial struct {
	RAdeg      float64 // Right Ascension in degrees (0-360)
	DecDeg     float64 // Declination in degrees (-90 to +90)
	DistancePc float64 // Distance in parsecs
}

// EquatorialToCartesian converts equatorial coordinates plus distance into a
// right-handed Cartesian position in parsecs, using the standard astronomical
// convention:
//
//	x = d·cos(dec)·cos(ra)
//	y = d·cos(dec)·sin(ra)
//	z = d·sin(dec)
//
// The transform preserves the radial distance: the norm of the returned vector
// equals DistancePc up to floating-point rounding.
func EquatorialToCartesian(eq Equatorial) Vec3 {
	ra := degToRad(eq.RAdeg)
	dec := degToRad(eq.DecDeg)
	d := eq.DistancePc

	cosDec := math.Cos(dec)
	return Vec3{
		X: d * cosDec * math.Cos(ra),
		Y: d * cosDec * math.Sin(ra),
		Z: d * math.Sin(dec),
	}
}

// SphericalToCartesian converts orbit-camera spherical coordinates (radius,
// theta, phi) to a Cartesian offset with Y up. Phi is the polar angle measured
// from the +Y axis, theta the azimuthal angle in the XZ plane.
func SphericalToCartesian(radius, theta, phi float64) Vec3 {
	sinPhi := math.Sin(phi)
	return Vec3{
		X: radius * sinPhi * math.Cos(theta),
		Y: radius * math.Cos(phi),
		Z: radius * sinPhi * math.Sin(theta),
	}
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
