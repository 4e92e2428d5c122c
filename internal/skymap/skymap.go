// Package skymap projects local volume galaxies onto an all-sky character
// grid for terminal display.
package skymap

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/owlpinetech/flatsphere"

	"github.com/litescript/grb-shader/internal/astro"
	"github.com/litescript/grb-shader/internal/catalog"
)

// Grid maps RA/Dec onto a width x height equirectangular character grid.
// RA increases to the left, as on a sky chart; north is up.
type Grid struct {
	Width  int
	Height int

	proj   flatsphere.Equirectangular
	xMin   float64
	yMin   float64
	xRange float64
	yRange float64
}

// NewGrid creates a grid of the given size. Sizes below 2 are raised to 2.
func NewGrid(width, height int) *Grid {
	width = max(width, 2)
	height = max(height, 2)

	proj := flatsphere.NewEquirectangular(0)
	bounds := proj.PlanarBounds()
	return &Grid{
		Width:  width,
		Height: height,
		proj:   proj,
		xMin:   bounds.XMin,
		yMin:   bounds.YMin,
		xRange: bounds.Width(),
		yRange: bounds.Height(),
	}
}

// Cell returns the grid column and row for a sky position.
func (g *Grid) Cell(raDeg, decDeg float64) (col, row int) {
	x, y := g.proj.Project(astro.DegToRad(decDeg), astro.DegToRad(wrapLongitude(raDeg)))

	fx := (x - g.xMin) / g.xRange
	fy := (y - g.yMin) / g.yRange

	col = int(math.Round((1 - fx) * float64(g.Width-1)))
	row = int(math.Round((1 - fy) * float64(g.Height-1)))
	return clamp(col, 0, g.Width-1), clamp(row, 0, g.Height-1)
}

// CellCenter returns the sky position at the center of a cell, the inverse of
// Cell. The right-most column maps back to RA 180°, like the left-most.
func (g *Grid) CellCenter(col, row int) (raDeg, decDeg float64) {
	fx := 1 - float64(col)/float64(g.Width-1)
	fy := 1 - float64(row)/float64(g.Height-1)

	lon := radToDeg(g.xMin + fx*g.xRange)
	decDeg = radToDeg(g.yMin + fy*g.yRange)

	raDeg = math.Mod(lon+360, 360)
	return raDeg, decDeg
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

// wrapLongitude maps RA in degrees to (-180, 180].
func wrapLongitude(raDeg float64) float64 {
	lon := math.Mod(raDeg, 360)
	if lon > 180 {
		lon -= 360
	} else if lon <= -180 {
		lon += 360
	}
	return lon
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// Marker is a galaxy placed on the grid.
type Marker struct {
	Col, Row int
	Galaxy   *catalog.Galaxy
}

// Plot places every galaxy with a known position on the grid, in catalog order.
func (g *Grid) Plot(v *catalog.LocalVolume) []Marker {
	if v == nil {
		return nil
	}

	markers := make([]Marker, 0, v.Len())
	for _, gal := range v.All() {
		if math.IsNaN(gal.Center.RAdeg) || math.IsNaN(gal.Center.DecDeg) {
			continue
		}
		col, row := g.Cell(gal.Center.RAdeg, gal.Center.DecDeg)
		markers = append(markers, Marker{Col: col, Row: row, Galaxy: gal})
	}
	return markers
}

// Footprint returns, per cell, whether the cell center lies inside a galaxy.
// Only galaxies wider than a cell show up.
func (g *Grid) Footprint(v *catalog.LocalVolume) [][]bool {
	cells := make([][]bool, g.Height)
	for row := range cells {
		cells[row] = make([]bool, g.Width)
		if v == nil {
			continue
		}
		for col := range cells[row] {
			ra, dec := g.CellCenter(col, row)
			cells[row][col], _ = v.InterceptsGalaxy(ra, dec)
		}
	}
	return cells
}

// Glyphs used by the plain-text renderer.
const (
	GlyphGalaxy    = '◉'
	GlyphSelected  = '◆'
	GlyphFootprint = '░'
	GlyphEquator   = '·'
)

// Canvas is a rendered grid of runes.
type Canvas [][]rune

// Draw builds a canvas with footprints, the celestial equator and galaxy
// markers. The selected galaxy, if any, is drawn last.
func (g *Grid) Draw(v *catalog.LocalVolume, selected string) Canvas {
	canvas := make(Canvas, g.Height)
	for row := range canvas {
		canvas[row] = []rune(strings.Repeat(" ", g.Width))
	}

	_, eqRow := g.Cell(0, 0)
	for col := range canvas[eqRow] {
		canvas[eqRow][col] = GlyphEquator
	}

	for row, cells := range g.Footprint(v) {
		for col, inside := range cells {
			if inside {
				canvas[row][col] = GlyphFootprint
			}
		}
	}

	var sel *Marker
	for _, m := range g.Plot(v) {
		if m.Galaxy.Name == selected {
			sel = &m
			continue
		}
		canvas[m.Row][m.Col] = GlyphGalaxy
	}
	if sel != nil {
		canvas[sel.Row][sel.Col] = GlyphSelected
	}

	return canvas
}

// MiniSkyConfig configures WriteMiniSky.
type MiniSkyConfig struct {
	Width  int
	Height int
}

// DefaultMiniSkyConfig returns a 73x19 map: 5° of RA per column, 10° of Dec per row.
func DefaultMiniSkyConfig() MiniSkyConfig {
	return MiniSkyConfig{
		Width:  73,
		Height: 19,
	}
}

// WriteMiniSky writes a boxed ASCII all-sky map of the catalog.
func WriteMiniSky(w io.Writer, v *catalog.LocalVolume, cfg MiniSkyConfig) {
	if v == nil || v.Len() == 0 {
		fmt.Fprintln(w, "No galaxies to plot")
		return
	}

	grid := NewGrid(cfg.Width, cfg.Height)
	canvas := grid.Draw(v, "")

	fmt.Fprintf(w, "┌%s┐\n", strings.Repeat("─", grid.Width))
	for _, line := range canvas {
		fmt.Fprintf(w, "│%s│\n", string(line))
	}
	fmt.Fprintf(w, "└%s┘\n", strings.Repeat("─", grid.Width))
	fmt.Fprintf(w, " %s\n", raAxis(grid))
	fmt.Fprintf(w, " %c galaxy  %c footprint  %c equator  (%d plotted)\n",
		GlyphGalaxy, GlyphFootprint, GlyphEquator, len(grid.Plot(v)))
}

// raAxis labels RA 12h at both edges and 0h at the center column.
func raAxis(g *Grid) string {
	axis := []rune(strings.Repeat(" ", g.Width))
	place := func(col int, label string) {
		for i, r := range label {
			if c := col + i; c >= 0 && c < len(axis) {
				axis[c] = r
			}
		}
	}
	center, _ := g.Cell(0, 0)
	place(0, "12h")
	place(center-1, "0h")
	place(g.Width-3, "12h")
	return string(axis)
}
