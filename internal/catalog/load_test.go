package catalog

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/litescript/grb-shader/internal/astro"
)

const sampleCatalog = `NGC0055    001453-391148   32.4    0.17   2.11
SculptorX  014813-300327   10.0    0.50   3.5

# comment lines and blank lines are skipped
KKH022     034456+721345  -99.99  -99.99  3.12
NGC3031    095533+690355   26.9    0.52  -99.99
`

func TestParse_Sample(t *testing.T) {
	v, err := Parse(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []string{"NGC0055", "SculptorX", "KKH022", "NGC3031"}
	if !slices.Equal(v.Names(), want) {
		t.Errorf("Names() = %v, want %v", v.Names(), want)
	}

	g, err := v.Get("SculptorX")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if g.Center.RAString != "01h48min13s" || g.Center.DecString != "-30.0327" {
		t.Errorf("center strings = %q %q", g.Center.RAString, g.Center.DecString)
	}
	if g.Distance != 3.5 || g.Center.DistanceMpc != 3.5 {
		t.Errorf("distance = %v / %v, want 3.5", g.Distance, g.Center.DistanceMpc)
	}
	if g.Center.Frame != astro.FrameICRS {
		t.Errorf("frame = %q, want icrs", g.Center.Frame)
	}
	if math.Abs(g.A()-10.0/60) > 1e-12 || math.Abs(g.B()-10.0/60*0.5) > 1e-12 {
		t.Errorf("axes = %v, %v", g.A(), g.B())
	}
}

func TestParse_MissingSentinel(t *testing.T) {
	v, err := Parse(strings.NewReader(sampleCatalog))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	kkh, _ := v.Get("KKH022")
	if !math.IsNaN(kkh.Radius) || !math.IsNaN(kkh.Ratio) {
		t.Errorf("sentinel should read as NaN, got radius=%v ratio=%v", kkh.Radius, kkh.Ratio)
	}
	if !math.IsNaN(kkh.A()) || !math.IsNaN(kkh.B()) || !math.IsNaN(kkh.Area()) {
		t.Errorf("derived geometry should be NaN, got a=%v b=%v area=%v", kkh.A(), kkh.B(), kkh.Area())
	}

	// Never contains anything, including its own center
	if kkh.ContainsPoint(kkh.Center.RAdeg, kkh.Center.DecDeg) {
		t.Error("galaxy with missing radius should never report containment")
	}

	// Contributes nothing to the coverage sum
	var want float64
	for _, name := range []string{"NGC0055", "SculptorX", "NGC3031"} {
		g, _ := v.Get(name)
		want += g.Area()
	}
	want = want / (4 * math.Pi) * 100
	if got := v.PercentageSkyCover(); math.Abs(got-want) > 1e-12 {
		t.Errorf("cover = %v, want %v", got, want)
	}

	m81, _ := v.Get("NGC3031")
	if !math.IsNaN(m81.Distance) || !math.IsNaN(m81.Center.DistanceMpc) {
		t.Errorf("missing distance should be NaN, got %v", m81.Distance)
	}
	if math.IsNaN(m81.Area()) {
		t.Error("missing distance should not affect the ellipse area")
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantLine int
		isCoord  bool
	}{
		{"too few columns", "NGC0055 001453-391148 32.4 0.17\n", 1, false},
		{"too many columns", "NGC0055 001453-391148 32.4 0.17 2.11 extra\n", 1, false},
		{"non-numeric radius", "NGC0055 001453-391148 big 0.17 2.11\n", 1, false},
		{"non-numeric distance", "NGC0055 001453-391148 32.4 0.17 far\n", 1, false},
		{"unsigned coordinate", "ok 001453-391148 1 1 1\nbad 001453391148 32.4 0.17 2.11\n", 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Parse should fail")
			}
			if v != nil {
				t.Error("failed load should not return a partial catalog")
			}
			if !errors.Is(err, ErrFormat) {
				t.Errorf("error %v should match ErrFormat", err)
			}
			var re *RowError
			if !errors.As(err, &re) {
				t.Fatalf("error %v should be a *RowError", err)
			}
			if re.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", re.Line, tt.wantLine)
			}
			if errors.Is(err, astro.ErrFormat) != tt.isCoord {
				t.Errorf("errors.Is(err, astro.ErrFormat) = %v, want %v", !tt.isCoord, tt.isCoord)
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	v, err := Parse(strings.NewReader("\n\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if v.Len() != 0 {
		t.Errorf("Len() = %d, want 0", v.Len())
	}
	if v.PercentageSkyCover() != 0 {
		t.Errorf("empty cover = %v, want 0", v.PercentageSkyCover())
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lv_catalog.txt")
	if err := os.WriteFile(path, []byte(sampleCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if v.Len() != 4 {
		t.Errorf("Len() = %d, want 4", v.Len())
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("LoadFile of missing file should fail")
	}
	if !errors.Is(err, ErrResource) {
		t.Errorf("error %v should match ErrResource", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error %v should wrap os.ErrNotExist", err)
	}
}

func TestLoadFile_BadRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	if err := os.WriteFile(path, []byte("only three cols\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if !errors.Is(err, ErrFormat) {
		t.Errorf("error %v should match ErrFormat", err)
	}
	if errors.Is(err, ErrResource) {
		t.Errorf("format error %v should not match ErrResource", err)
	}
}

func TestLoadDefault(t *testing.T) {
	v, err := LoadDefault()
	if err != nil {
		t.Fatalf("LoadDefault failed: %v", err)
	}
	if v.Len() < 20 {
		t.Errorf("bundled catalog has %d galaxies, expected at least 20", v.Len())
	}

	for name, g := range v.All() {
		if g.Center.DecDeg < -90 || g.Center.DecDeg > 90 {
			t.Errorf("%s has invalid Dec %v", name, g.Center.DecDeg)
		}
		if g.Center.RAdeg < 0 || g.Center.RAdeg >= 360 {
			t.Errorf("%s has invalid RA %v", name, g.Center.RAdeg)
		}
		if math.IsNaN(g.A()) {
			continue
		}
		if g.B() > g.A() || g.A() < 0 || g.B() < 0 {
			t.Errorf("%s violates 0 <= b <= a: a=%v b=%v", name, g.A(), g.B())
		}
		if math.IsNaN(g.B()) {
			continue
		}
		if !g.ContainsPoint(g.Center.RAdeg, g.Center.DecDeg) {
			t.Errorf("%s should contain its own center", name)
		}
	}

	// Known entries
	for _, name := range []string{"LMC", "SMC", "NGC0224", "NGC5128"} {
		if _, err := v.Get(name); err != nil {
			t.Errorf("bundled catalog missing %s: %v", name, err)
		}
	}

	cover := v.PercentageSkyCover()
	if math.IsNaN(cover) || cover <= 0 || cover > 100 {
		t.Errorf("bundled catalog cover = %v, want a small positive percentage", cover)
	}
}
