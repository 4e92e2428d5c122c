// Package astro provides sky coordinates and the small amount of spherical math
// the local volume catalog needs.
package astro

import (
	"math"
	"math/rand/v2"
)

// Frame names the celestial reference frame of a coordinate.
type Frame string

const (
	FrameICRS Frame = "icrs"
)

// SkyCoord is an equatorial position with an optional distance.
type SkyCoord struct {
	RAdeg       float64 // Right Ascension in degrees (0-360)
	DecDeg      float64 // Declination in degrees (-90 to +90)
	DistanceMpc float64 // Distance in megaparsecs, NaN if unknown
	Frame       Frame

	// Source strings as reinterpreted from a packed catalog token,
	// e.g. "01h48min13s" and "-30.0327". Empty for computed coordinates.
	RAString  string
	DecString string
}

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// UnitVector returns the direction of the coordinate on the unit sphere.
func (c SkyCoord) UnitVector() Vec3 {
	ra := degToRad(c.RAdeg)
	dec := degToRad(c.DecDeg)
	return Vec3{
		X: math.Cos(dec) * math.Cos(ra),
		Y: math.Cos(dec) * math.Sin(ra),
		Z: math.Sin(dec),
	}
}

// Cartesian returns the ICRS Cartesian position in megaparsecs.
// A NaN distance yields a NaN vector.
func (c SkyCoord) Cartesian() Vec3 {
	return c.UnitVector().Scale(c.DistanceMpc)
}

// HoursToDeg converts an hour-angle (h, m, s) triple to degrees.
func HoursToDeg(h, m, s float64) float64 {
	return (h + m/60 + s/3600) * 15
}

// UniformSkyPoint draws a position distributed uniformly over the sphere.
// RA is in [0, 360), Dec in [-90, 90].
func UniformSkyPoint(rng *rand.Rand) (raDeg, decDeg float64) {
	raDeg = rng.Float64() * 360
	decDeg = radToDeg(math.Asin(2*rng.Float64() - 1))
	return raDeg, decDeg
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return degToRad(deg)
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
