// Package catalog models local volume galaxies as sky-projected ellipses and
// answers whether a sky position falls inside one of them.
package catalog

import (
	"math"

	"github.com/litescript/grb-shader/internal/astro"
)

// Galaxy is one catalog entry. Only Angle changes after construction.
type Galaxy struct {
	Name     string
	Distance float64        // Mpc
	Center   astro.SkyCoord // ICRS center
	Radius   float64        // catalog axis size, arcmin
	Ratio    float64        // minor/major axis ratio, (0, 1]
	Angle    float64        // position angle of the major axis, degrees

	// derived in NewGalaxy
	a    float64 // deg
	b    float64 // deg
	area float64 // rad^2
}

// NewGalaxy builds a Galaxy and derives its ellipse geometry. A NaN radius or
// ratio leaves the derived axes and area NaN.
func NewGalaxy(name string, distance float64, center astro.SkyCoord, radius, ratio float64) *Galaxy {
	g := &Galaxy{
		Name:     name,
		Distance: distance,
		Center:   center,
		Radius:   radius,
		Ratio:    ratio,
	}
	g.a = radius / 60
	g.b = g.a * ratio
	g.area = math.Pi * astro.DegToRad(g.a) * astro.DegToRad(g.b)
	return g
}

// A returns the semi-major axis in degrees.
func (g *Galaxy) A() float64 { return g.a }

// B returns the semi-minor axis in degrees.
func (g *Galaxy) B() float64 { return g.b }

// Area returns the projected solid angle in rad^2, NaN when the geometry is unknown.
func (g *Galaxy) Area() float64 { return g.area }

// ContainsPoint reports whether (ra, dec), in degrees, lies inside the
// galaxy's ellipse.
//
// The test works in a flat tangent plane: offsets are plain degree
// differences with no RA wrap or cos(dec) factor. The frame is rotated by
// 180° minus the position angle, and the ellipse half-widths are a/2 and b/2.
// Degenerate geometry (zero or NaN axes) never contains anything.
func (g *Galaxy) ContainsPoint(ra, dec float64) bool {
	theta := math.Pi - astro.DegToRad(g.Angle)
	cosA, sinA := math.Cos(theta), math.Sin(theta)

	x := ra - g.Center.RAdeg
	y := dec - g.Center.DecDeg

	xt := x*cosA - y*sinA
	yt := x*sinA + y*cosA

	ha, hb := g.a/2, g.b/2
	r := xt*xt/(ha*ha) + yt*yt/(hb*hb)

	// NaN compares false
	return r <= 1
}
