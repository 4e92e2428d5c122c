package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/grb-shader/internal/catalog"
	"github.com/litescript/grb-shader/internal/state"
)

// Styles for the catalog table
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9D4EDD"))
)

// CatalogModel lists the galaxies with their geometry and simulation tallies.
type CatalogModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
}

// NewCatalogModel creates a new catalog model.
func NewCatalogModel() CatalogModel {
	return CatalogModel{}
}

// SetSize updates the viewport size.
func (m CatalogModel) SetSize(width, height int) CatalogModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with a new snapshot.
func (m CatalogModel) UpdateData(snapshot state.Snapshot) CatalogModel {
	m.snapshot = snapshot
	if m.cursor >= len(snapshot.Galaxies) {
		m.cursor = max(len(snapshot.Galaxies)-1, 0)
	}
	return m
}

// Update handles messages.
func (m CatalogModel) Update(msg tea.Msg) (CatalogModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		count := len(m.snapshot.Galaxies)

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < count-1 {
				m.cursor++
			}
		case "home":
			m.cursor = 0
		case "end":
			if count > 0 {
				m.cursor = count - 1
			}
		}
	}

	return m, nil
}

// SelectedName returns the galaxy under the cursor, or "" for an empty catalog.
func (m CatalogModel) SelectedName() string {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Galaxies) {
		return ""
	}
	return m.snapshot.Galaxies[m.cursor].Name
}

// SetSelected moves the cursor to the named galaxy, if present.
func (m CatalogModel) SetSelected(name string) CatalogModel {
	for i, g := range m.snapshot.Galaxies {
		if g.Name == name {
			m.cursor = i
			break
		}
	}
	return m
}

// View renders the catalog.
func (m CatalogModel) View() string {
	var b strings.Builder

	if len(m.snapshot.Galaxies) == 0 {
		b.WriteString("No galaxies loaded\n")
		return b.String()
	}

	b.WriteString(titleStyle.Render("Local Volume"))
	b.WriteString("\n")
	b.WriteString(m.renderTable())
	return b.String()
}

func (m CatalogModel) renderTable() string {
	var b strings.Builder

	header := fmt.Sprintf("%-10s %-9s %-9s %7s %7s %7s %6s %-12s",
		"Name", "RA", "Dec", "Dist", "a(°)", "b(°)", "PA", "Hits")
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	maxRows := m.height - 4
	if maxRows < 5 {
		maxRows = 5
	}

	gals := m.snapshot.Galaxies
	startIdx := 0
	if m.cursor >= maxRows {
		startIdx = m.cursor - maxRows + 1
	}
	endIdx := min(startIdx+maxRows, len(gals))

	maxHits := 0
	for _, n := range m.snapshot.GalaxyHits {
		maxHits = max(maxHits, n)
	}

	for i := startIdx; i < endIdx; i++ {
		g := gals[i]
		hits := m.snapshot.GalaxyHits[g.Name]

		row := fmt.Sprintf("%-10s %9.4f %+9.4f %7s %7s %7s %6.1f %s %d",
			truncate(g.Name, 10),
			g.Center.RAdeg,
			g.Center.DecDeg,
			formatOrDash(g.Distance, "%.2f"),
			formatOrDash(g.A(), "%.3f"),
			formatOrDash(g.B(), "%.3f"),
			g.Angle,
			m.renderHitBar(hits, maxHits, 6),
			hits,
		)

		if i == m.cursor {
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString(rowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if len(gals) > maxRows {
		b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d galaxies", startIdx+1, endIdx, len(gals)))
	}

	if sel := m.selected(); sel != nil {
		b.WriteString("\n")
		b.WriteString(renderGalaxyDetail(sel))
	}

	return b.String()
}

func (m CatalogModel) selected() *catalog.Galaxy {
	if m.cursor < 0 || m.cursor >= len(m.snapshot.Galaxies) {
		return nil
	}
	return &m.snapshot.Galaxies[m.cursor]
}

// renderHitBar draws hits relative to the busiest galaxy.
func (m CatalogModel) renderHitBar(hits, maxHits, width int) string {
	filled := 0
	if maxHits > 0 {
		filled = int(float64(hits) / float64(maxHits) * float64(width))
	}
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return "[" + barStyle.Render(bar) + "]"
}

func renderGalaxyDetail(g *catalog.Galaxy) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

	xyz := g.Center.Cartesian()
	line1 := fmt.Sprintf(">>> %s  %s %s", g.Name, g.Center.RAString, g.Center.DecString)
	line2 := fmt.Sprintf("    xyz %s %s %s Mpc · area %s rad²",
		formatOrDash(xyz.X, "%.3f"),
		formatOrDash(xyz.Y, "%.3f"),
		formatOrDash(xyz.Z, "%.3f"),
		formatOrDash(g.Area(), "%.3g"),
	)
	return accentStyle.Render(line1) + "\n" + dimStyle.Render(line2)
}

// formatOrDash formats f, or "-" for unknown values.
func formatOrDash(f float64, format string) string {
	if math.IsNaN(f) {
		return "-"
	}
	return fmt.Sprintf(format, f)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
