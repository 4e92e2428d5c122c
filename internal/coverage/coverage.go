// Package coverage estimates how much of the sky the local volume actually
// shades, counting overlapping galaxies once, by Monte-Carlo sampling
// binned on a HEALPix grid.
package coverage

import (
	"fmt"
	"io"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/owlpinetech/healpix"
	"golang.org/x/exp/maps"

	"github.com/litescript/grb-shader/internal/astro"
	"github.com/litescript/grb-shader/internal/catalog"
)

const (
	DefaultOrder   = 4
	DefaultSamples = 100_000
)

// Interceptor answers first-match containment queries. Both
// *catalog.LocalVolume and *state.Manager satisfy it.
type Interceptor interface {
	InterceptsGalaxy(ra, dec float64) (bool, *catalog.Galaxy)
}

// Options configures an estimate.
type Options struct {
	Order   int    // HEALPix order of the hit map
	Samples int    // number of isotropic sky positions
	Seed    uint64 // 0 for a non-reproducible run
}

// DefaultOptions returns a medium-resolution, unseeded configuration.
func DefaultOptions() Options {
	return Options{
		Order:   DefaultOrder,
		Samples: DefaultSamples,
	}
}

// Map is the result of an estimate.
type Map struct {
	Order      healpix.HealpixOrder
	Samples    int
	Hits       int
	PixelHits  map[int]int    // HEALPix nest pixel -> intercepted samples
	GalaxyHits map[string]int // galaxy name -> intercepted samples
}

// Estimate draws opts.Samples isotropic sky positions and records which ones
// fall inside a galaxy.
func Estimate(v Interceptor, opts Options) *Map {
	if opts.Order < 0 {
		opts.Order = DefaultOrder
	}
	if opts.Samples <= 0 {
		opts.Samples = DefaultSamples
	}

	rng := catalog.NewAngleSource(opts.Seed)
	return estimate(v, opts, rng)
}

func estimate(v Interceptor, opts Options, rng *rand.Rand) *Map {
	m := &Map{
		Order:      healpix.HealpixOrder(opts.Order),
		Samples:    opts.Samples,
		PixelHits:  make(map[int]int),
		GalaxyHits: make(map[string]int),
	}

	for i := 0; i < opts.Samples; i++ {
		ra, dec := astro.UniformSkyPoint(rng)
		ok, g := v.InterceptsGalaxy(ra, dec)
		if !ok {
			continue
		}
		m.Hits++
		m.GalaxyHits[g.Name]++
		m.PixelHits[m.pixel(ra, dec)]++
	}

	return m
}

// pixel maps a sky position to its nested HEALPix pixel.
func (m *Map) pixel(raDeg, decDeg float64) int {
	coord := healpix.NewLatLonCoordinate(astro.DegToRad(decDeg), astro.DegToRad(raDeg))
	return coord.PixelId(m.Order, healpix.NestScheme)
}

// Percentage returns the estimated union sky coverage in percent.
func (m *Map) Percentage() float64 {
	if m.Samples == 0 {
		return 0
	}
	return float64(m.Hits) / float64(m.Samples) * 100
}

// PixelCount returns the number of pixels at the map's order.
func (m *Map) PixelCount() int {
	return m.Order.Pixels()
}

// Pixels returns the pixels with at least one hit, ascending.
func (m *Map) Pixels() []int {
	pix := maps.Keys(m.PixelHits)
	slices.Sort(pix)
	return pix
}

// WriteReport writes the union estimate next to the summed catalog coverage.
func (m *Map) WriteReport(w io.Writer, summedPercent float64) {
	fmt.Fprintf(w, "Sky Coverage (HEALPix order %d, %d pixels)\n", int(m.Order), m.PixelCount())
	fmt.Fprintln(w, strings.Repeat("─", 50))
	fmt.Fprintf(w, "Summed ellipse area:  %8.4f%%\n", summedPercent)
	fmt.Fprintf(w, "Union (Monte-Carlo):  %8.4f%%  (%d/%d samples)\n", m.Percentage(), m.Hits, m.Samples)
	fmt.Fprintf(w, "Pixels touched:       %8d\n", len(m.PixelHits))
}
