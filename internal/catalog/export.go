package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strings"
	"time"
)

// VolumeExport is the JSON-serializable representation of a LocalVolume.
type VolumeExport struct {
	GeneratedAt        time.Time      `json:"generated_at"`
	Count              int            `json:"count"`
	PercentageSkyCover float64        `json:"percentage_sky_cover"`
	Galaxies           []GalaxyExport `json:"galaxies"`
}

// GalaxyExport is a JSON-friendly galaxy. Unknown values are null.
type GalaxyExport struct {
	Name        string   `json:"name"`
	RAdeg       float64  `json:"ra_deg"`
	DecDeg      float64  `json:"dec_deg"`
	DistanceMpc *float64 `json:"distance_mpc"`
	X           *float64 `json:"x_mpc"`
	Y           *float64 `json:"y_mpc"`
	Z           *float64 `json:"z_mpc"`
	A           *float64 `json:"a_deg"`
	B           *float64 `json:"b_deg"`
	Area        *float64 `json:"area_rad2"`
	Angle       float64  `json:"angle_deg"`
}

// ExportVolume converts a LocalVolume to an exportable format.
func ExportVolume(v *LocalVolume, generatedAt time.Time) *VolumeExport {
	export := &VolumeExport{
		GeneratedAt: generatedAt,
		Galaxies:    make([]GalaxyExport, 0),
	}
	if v == nil {
		return export
	}

	export.Count = v.Len()
	export.PercentageSkyCover = v.PercentageSkyCover()

	for _, g := range v.All() {
		xyz := g.Center.Cartesian()
		export.Galaxies = append(export.Galaxies, GalaxyExport{
			Name:        g.Name,
			RAdeg:       g.Center.RAdeg,
			DecDeg:      g.Center.DecDeg,
			DistanceMpc: finite(g.Distance),
			X:           finite(xyz.X),
			Y:           finite(xyz.Y),
			Z:           finite(xyz.Z),
			A:           finite(g.A()),
			B:           finite(g.B()),
			Area:        finite(g.Area()),
			Angle:       g.Angle,
		})
	}

	return export
}

// finite returns nil for values encoding/json cannot represent.
func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// WriteJSON writes the export as JSON to the given writer.
func (e *VolumeExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteSummaryTable writes a text table of the catalog to the given writer.
func WriteSummaryTable(w io.Writer, v *LocalVolume, timestamp time.Time) {
	fmt.Fprintf(w, "Local Volume @ %s\n", timestamp.Format(time.RFC3339))
	fmt.Fprintln(w, strings.Repeat("─", 78))

	if v == nil || v.Len() == 0 {
		fmt.Fprintln(w, "No galaxies loaded")
		return
	}

	fmt.Fprintf(w, "%-12s %9s %9s %7s %8s %8s %7s %10s\n",
		"Name", "RA", "Dec", "Dist", "a", "b", "Angle", "Area")
	fmt.Fprintln(w, strings.Repeat("─", 78))

	for _, g := range v.All() {
		fmt.Fprintf(w, "%-12s %9.4f %9.4f %7s %8s %8s %7.1f %10s\n",
			truncateStr(g.Name, 12),
			g.Center.RAdeg,
			g.Center.DecDeg,
			formatValue(g.Distance, "%.2f"),
			formatValue(g.A(), "%.4f"),
			formatValue(g.B(), "%.4f"),
			g.Angle,
			formatValue(g.Area(), "%.3e"),
		)
	}

	fmt.Fprintf(w, "\nTotal: %d galaxies, %.4f%% of sky covered\n", v.Len(), v.PercentageSkyCover())
}

func formatValue(f float64, format string) string {
	if math.IsNaN(f) {
		return "-"
	}
	return fmt.Sprintf(format, f)
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
