package catalog

import (
	"math"
	"testing"

	"github.com/litescript/grb-shader/internal/astro"
)

// galaxyAt builds a galaxy centered on (ra, dec) with distance 1 Mpc.
func galaxyAt(name string, ra, dec, radius, ratio float64) *Galaxy {
	center := astro.SkyCoord{RAdeg: ra, DecDeg: dec, DistanceMpc: 1, Frame: astro.FrameICRS}
	return NewGalaxy(name, 1, center, radius, ratio)
}

func TestNewGalaxy_DerivedGeometry(t *testing.T) {
	g := galaxyAt("test", 10, 20, 30, 0.5)

	if math.Abs(g.A()-0.5) > 1e-12 {
		t.Errorf("A() = %v, want 0.5", g.A())
	}
	if math.Abs(g.B()-0.25) > 1e-12 {
		t.Errorf("B() = %v, want 0.25", g.B())
	}

	wantArea := math.Pi * (0.5 * math.Pi / 180) * (0.25 * math.Pi / 180)
	if math.Abs(g.Area()-wantArea) > 1e-15 {
		t.Errorf("Area() = %v, want %v", g.Area(), wantArea)
	}

	if g.Angle != 0 {
		t.Errorf("Angle = %v, want 0 by default", g.Angle)
	}
}

func TestNewGalaxy_AxisInvariant(t *testing.T) {
	for _, radius := range []float64{0, 0.5, 3, 645} {
		for _, ratio := range []float64{0.01, 0.2, 0.5, 0.99, 1} {
			g := galaxyAt("g", 0, 0, radius, ratio)
			if g.A() < 0 || g.B() < 0 {
				t.Errorf("radius=%v ratio=%v: negative axis a=%v b=%v", radius, ratio, g.A(), g.B())
			}
			if g.B() > g.A() {
				t.Errorf("radius=%v ratio=%v: b=%v > a=%v", radius, ratio, g.B(), g.A())
			}
		}
	}
}

func TestNewGalaxy_MissingValues(t *testing.T) {
	tests := []struct {
		name          string
		radius, ratio float64
		wantANaN      bool
	}{
		{"missing radius", math.NaN(), 0.5, true},
		{"missing ratio", 10, math.NaN(), false},
		{"both missing", math.NaN(), math.NaN(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := galaxyAt("nan", 0, 0, tt.radius, tt.ratio)
			if math.IsNaN(g.A()) != tt.wantANaN {
				t.Errorf("A() = %v, NaN want %v", g.A(), tt.wantANaN)
			}
			if !math.IsNaN(g.B()) {
				t.Errorf("B() = %v, want NaN", g.B())
			}
			if !math.IsNaN(g.Area()) {
				t.Errorf("Area() = %v, want NaN", g.Area())
			}
		})
	}
}

func TestContainsPoint_Center(t *testing.T) {
	tests := []struct {
		ra, dec, radius, ratio, angle float64
	}{
		{0, 0, 60, 0.5, 0},
		{359.9, -89, 1, 1, 45},
		{123.456, 42, 10, 0.1, 270},
		{200, -30, 645, 0.85, 359.99},
	}

	for _, tt := range tests {
		g := galaxyAt("c", tt.ra, tt.dec, tt.radius, tt.ratio)
		g.Angle = tt.angle
		if !g.ContainsPoint(tt.ra, tt.dec) {
			t.Errorf("galaxy at (%v, %v) should contain its own center", tt.ra, tt.dec)
		}
	}
}

func TestContainsPoint_Boundary(t *testing.T) {
	// a = 1°, b = 0.5°; half-widths 0.5° and 0.25°
	g := galaxyAt("edge", 0, 0, 60, 0.5)

	tests := []struct {
		name    string
		ra, dec float64
		want    bool
	}{
		{"on major axis edge", 0.5, 0, true},
		{"on minor axis edge", 0, 0.25, true},
		{"just past major axis", 0.5 + 1e-9, 0, false},
		{"just past minor axis", 0, 0.25 + 1e-9, false},
		{"inside", 0.3, 0.1, true},
		{"outside both axes", 1.01, 1.01, false},
		{"negative side", -0.49, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.ContainsPoint(tt.ra, tt.dec); got != tt.want {
				t.Errorf("ContainsPoint(%v, %v) = %v, want %v", tt.ra, tt.dec, got, tt.want)
			}
		})
	}
}

func TestContainsPoint_Rotation(t *testing.T) {
	// With a 90° position angle the frame rotates by 90°, putting the long
	// axis along declination.
	g := galaxyAt("rot", 0, 0, 60, 0.5)
	g.Angle = 90

	if !g.ContainsPoint(0, 0.49) {
		t.Error("point 0.49° north should be inside when the major axis is along Dec")
	}
	if g.ContainsPoint(0.49, 0) {
		t.Error("point 0.49° east should be outside when the minor axis is along RA")
	}

	g.Angle = 0
	if g.ContainsPoint(0, 0.49) {
		t.Error("point 0.49° north should be outside with angle 0")
	}
	if !g.ContainsPoint(0.49, 0) {
		t.Error("point 0.49° east should be inside with angle 0")
	}
}

func TestContainsPoint_RotationIsPiMinusAngle(t *testing.T) {
	// The frame rotates by π-θ, so a point on the major axis for 30° is far
	// off the major axis for 150°.
	g := galaxyAt("mirror", 0, 0, 120, 0.1)

	// Major axis direction for θ=30° under the π-θ convention
	theta := math.Pi - 30*math.Pi/180
	ra := 0.8 * math.Cos(theta)
	dec := -0.8 * math.Sin(theta)

	g.Angle = 30
	if !g.ContainsPoint(ra, dec) {
		t.Errorf("point along rotated major axis should be inside for angle 30")
	}

	g.Angle = 150
	if g.ContainsPoint(ra, dec) {
		t.Errorf("point along rotated major axis should be outside for angle 150")
	}
}

func TestContainsPoint_Degenerate(t *testing.T) {
	tests := []struct {
		name          string
		radius, ratio float64
	}{
		{"zero radius", 0, 0.5},
		{"zero ratio", 60, 0},
		{"nan radius", math.NaN(), 0.5},
		{"nan ratio", 60, math.NaN()},
	}

	points := [][2]float64{{0, 0}, {0.1, 0}, {0, 0.1}, {10, 10}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := galaxyAt("d", 0, 0, tt.radius, tt.ratio)
			for _, p := range points {
				if g.ContainsPoint(p[0], p[1]) {
					t.Errorf("degenerate galaxy should not contain (%v, %v)", p[0], p[1])
				}
			}
		})
	}
}
