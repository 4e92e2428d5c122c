package coverage

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/litescript/grb-shader/internal/astro"
	"github.com/litescript/grb-shader/internal/catalog"
)

func disk(name string, ra, dec, radiusArcmin float64) *catalog.Galaxy {
	center := astro.SkyCoord{RAdeg: ra, DecDeg: dec, DistanceMpc: 1, Frame: astro.FrameICRS}
	return catalog.NewGalaxy(name, 1, center, radiusArcmin, 1)
}

func TestEstimate_Empty(t *testing.T) {
	m := Estimate(catalog.New(), Options{Order: 2, Samples: 1000, Seed: 1})

	if m.Hits != 0 || m.Percentage() != 0 {
		t.Errorf("empty catalog: hits=%d pct=%v", m.Hits, m.Percentage())
	}
	if len(m.Pixels()) != 0 {
		t.Errorf("empty catalog should hit no pixels, got %d", len(m.Pixels()))
	}
}

func TestEstimate_SingleDisk(t *testing.T) {
	// a = 20°, so the containment half-width is 10°: a flat 10° disk on the
	// equator covers ~313 deg² of 41253 deg².
	v := catalog.New(disk("big", 180, 0, 1200))

	m := Estimate(v, Options{Order: 3, Samples: 200_000, Seed: 42})

	want := 313.0 / 41252.96 * 100
	got := m.Percentage()
	if math.Abs(got-want)/want > 0.1 {
		t.Errorf("Percentage() = %v, want ~%v", got, want)
	}

	if m.GalaxyHits["big"] != m.Hits {
		t.Errorf("GalaxyHits[big] = %d, want %d", m.GalaxyHits["big"], m.Hits)
	}

	// Summed ellipse areas use full axes, four times the containment area
	sum := v.PercentageSkyCover()
	if math.Abs(got-sum/4)/(sum/4) > 0.1 {
		t.Errorf("union %v should be about a quarter of summed cover %v", got, sum)
	}
}

func TestEstimate_OverlapCountedOnce(t *testing.T) {
	single := catalog.New(disk("a", 90, 20, 1200))
	double := catalog.New(disk("a", 90, 20, 1200), disk("b", 90, 20, 1200))

	opts := Options{Order: 2, Samples: 100_000, Seed: 7}
	m1 := Estimate(single, opts)
	m2 := Estimate(double, opts)

	// Same seed, same positions, identical union
	if m1.Hits != m2.Hits {
		t.Errorf("union hits %d != %d for duplicated galaxy", m2.Hits, m1.Hits)
	}
	// First match wins, so the duplicate never scores
	if m2.GalaxyHits["b"] != 0 {
		t.Errorf("GalaxyHits[b] = %d, want 0", m2.GalaxyHits["b"])
	}

	if double.PercentageSkyCover() <= single.PercentageSkyCover() {
		t.Error("summed cover should double count the overlap")
	}
}

func TestEstimate_PixelBookkeeping(t *testing.T) {
	v := catalog.New(disk("north", 45, 60, 1800), disk("south", 250, -30, 900))

	m := Estimate(v, Options{Order: 2, Samples: 50_000, Seed: 3})
	if m.Hits == 0 {
		t.Fatal("expected some hits")
	}

	total := 0
	for _, pix := range m.Pixels() {
		if pix < 0 || pix >= m.PixelCount() {
			t.Errorf("pixel %d out of range [0, %d)", pix, m.PixelCount())
		}
		total += m.PixelHits[pix]
	}
	if total != m.Hits {
		t.Errorf("pixel hits sum to %d, want %d", total, m.Hits)
	}

	pix := m.Pixels()
	for i := 1; i < len(pix); i++ {
		if pix[i] <= pix[i-1] {
			t.Fatalf("Pixels() not ascending: %v", pix)
		}
	}
}

func TestEstimate_Defaults(t *testing.T) {
	m := Estimate(catalog.New(), Options{Order: -1, Samples: 0, Seed: 1})
	if m.Samples != DefaultSamples {
		t.Errorf("Samples = %d, want %d", m.Samples, DefaultSamples)
	}
	if int(m.Order) != DefaultOrder {
		t.Errorf("Order = %d, want %d", m.Order, DefaultOrder)
	}
}

func TestEstimate_Seeded(t *testing.T) {
	v := catalog.New(disk("x", 10, 10, 2400))
	opts := Options{Order: 1, Samples: 20_000, Seed: 11}

	if a, b := Estimate(v, opts).Hits, Estimate(v, opts).Hits; a != b {
		t.Errorf("seeded estimates differ: %d vs %d", a, b)
	}
}

func TestMap_WriteReport(t *testing.T) {
	v := catalog.New(disk("big", 180, 0, 1200))
	m := Estimate(v, Options{Order: 2, Samples: 10_000, Seed: 5})

	var buf bytes.Buffer
	m.WriteReport(&buf, v.PercentageSkyCover())
	output := buf.String()

	if !strings.Contains(output, "order 2, 192 pixels") {
		t.Errorf("report should describe the grid:\n%s", output)
	}
	if !strings.Contains(output, "Union") || !strings.Contains(output, "Summed") {
		t.Error("report should show both coverage figures")
	}
}
