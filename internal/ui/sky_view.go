package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/grb-shader/internal/catalog"
	"github.com/litescript/grb-shader/internal/skymap"
	"github.com/litescript/grb-shader/internal/state"
)

const (
	glyphBurst = '✦'

	colorGalaxy        = "#d0c8ff"
	colorGalaxyFocused = "229" // bright gold
	colorFootprint     = "61"
	colorEquator       = "60"
	colorBurst         = "213"
	colorBackground    = "236"
)

// LabelMode controls how galaxy labels are displayed.
type LabelMode int

const (
	LabelNone    LabelMode = iota // No labels
	LabelFocused                  // Only focused galaxy
	LabelAll                      // All galaxies
)

// SkyViewModel renders the all-sky map with galaxy footprints and recent
// burst positions.
type SkyViewModel struct {
	width  int
	height int

	focusIdx int
	galaxies []catalog.Galaxy
	volume   *catalog.LocalVolume // built from galaxies
	events   []state.Event

	labelMode  LabelMode
	showBursts bool
}

// NewSkyViewModel creates a new sky view model.
func NewSkyViewModel() SkyViewModel {
	return SkyViewModel{
		labelMode:  LabelFocused,
		showBursts: true,
	}
}

// SetSize updates the viewport size.
func (m SkyViewModel) SetSize(width, height int) SkyViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with a new snapshot.
func (m SkyViewModel) UpdateData(snapshot state.Snapshot) SkyViewModel {
	m.galaxies = snapshot.Galaxies
	m.events = snapshot.Events
	m.volume = snapshot.Volume()

	if m.focusIdx >= len(m.galaxies) {
		m.focusIdx = 0
	}
	return m
}

// SetFocus focuses the named galaxy, if present.
func (m SkyViewModel) SetFocus(name string) SkyViewModel {
	for i, g := range m.galaxies {
		if g.Name == name {
			m.focusIdx = i
			break
		}
	}
	return m
}

// FocusedName returns the focused galaxy, or "" when there is none.
func (m SkyViewModel) FocusedName() string {
	if m.focusIdx < 0 || m.focusIdx >= len(m.galaxies) {
		return ""
	}
	return m.galaxies[m.focusIdx].Name
}

// Update handles messages.
func (m SkyViewModel) Update(msg tea.Msg) (SkyViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			m = m.focusPrev()
		case "down", "j":
			m = m.focusNext()
		case "l":
			m = m.cycleLabelMode()
		case "e":
			m.showBursts = !m.showBursts
		}
	}
	return m, nil
}

func (m SkyViewModel) cycleLabelMode() SkyViewModel {
	m.labelMode = (m.labelMode + 1) % 3
	return m
}

func (m SkyViewModel) focusNext() SkyViewModel {
	if len(m.galaxies) == 0 {
		return m
	}
	m.focusIdx = (m.focusIdx + 1) % len(m.galaxies)
	return m
}

func (m SkyViewModel) focusPrev() SkyViewModel {
	if len(m.galaxies) == 0 {
		return m
	}
	m.focusIdx--
	if m.focusIdx < 0 {
		m.focusIdx = len(m.galaxies) - 1
	}
	return m
}

// View renders the sky view.
func (m SkyViewModel) View() string {
	if m.width < 20 || m.height < 10 {
		return "Sky view requires larger terminal"
	}

	// Reserve lines for header and status
	viewHeight := m.height - 4
	viewWidth := m.width

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSkyCanvas(viewWidth, viewHeight))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m SkyViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("135"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorGalaxy))

	title := titleStyle.Render("Sky Map")

	var labelStr string
	switch m.labelMode {
	case LabelNone:
		labelStr = dimStyle.Render("Labels: off")
	case LabelFocused:
		labelStr = accentStyle.Render("Labels: focus")
	case LabelAll:
		labelStr = accentStyle.Render("Labels: all")
	}

	burstStr := dimStyle.Render("Bursts: off")
	if m.showBursts {
		burstStr = accentStyle.Render(fmt.Sprintf("Bursts: %d", len(m.events)))
	}

	return fmt.Sprintf("%s | %s | %s | %s", title, labelStr, burstStr, dimStyle.Render("equirectangular, RA 12h ← 0h → 12h"))
}

func (m SkyViewModel) renderStatus() string {
	if len(m.galaxies) == 0 {
		return "No galaxies in catalog"
	}

	g := m.galaxies[m.focusIdx]
	line := fmt.Sprintf(">>> %s | RA:%.2f° Dec:%+.2f° | %s Mpc | %s×%s° PA %.0f°",
		g.Name,
		g.Center.RAdeg,
		g.Center.DecDeg,
		formatOrDash(g.Distance, "%.2f"),
		formatOrDash(g.A(), "%.2f"),
		formatOrDash(g.B(), "%.2f"),
		g.Angle,
	)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(colorGalaxyFocused)).Render(line)
}

// galaxyPos tracks a plotted galaxy for label rendering
type galaxyPos struct {
	x, y       int
	name       string
	isFocused  bool
	labelStart int
	labelEnd   int
}

func (m SkyViewModel) renderSkyCanvas(width, height int) string {
	grid := skymap.NewGrid(width, height)
	canvas := grid.Draw(m.volume, m.FocusedName())

	colors := make([][]lipgloss.Color, len(canvas))
	for y, line := range canvas {
		colors[y] = make([]lipgloss.Color, len(line))
		for x, r := range line {
			colors[y][x] = glyphColor(r)
		}
	}

	if m.showBursts {
		for _, e := range m.events {
			if e.Type != state.EventIntercept {
				continue
			}
			x, y := grid.Cell(e.RAdeg, e.DecDeg)
			if r := canvas[y][x]; r == skymap.GlyphGalaxy || r == skymap.GlyphSelected {
				continue
			}
			canvas[y][x] = glyphBurst
			colors[y][x] = colorBurst
		}
	}

	var positions []galaxyPos
	focused := m.FocusedName()
	for _, mk := range grid.Plot(m.volume) {
		positions = append(positions, galaxyPos{
			x:         mk.Col,
			y:         mk.Row,
			name:      mk.Galaxy.Name,
			isFocused: mk.Galaxy.Name == focused,
		})
	}
	m.renderLabels(canvas, colors, width, len(canvas), positions)

	var b strings.Builder
	for y := range canvas {
		for x := range canvas[y] {
			style := lipgloss.NewStyle().Foreground(colors[y][x])
			b.WriteString(style.Render(string(canvas[y][x])))
		}
		if y < len(canvas)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func glyphColor(r rune) lipgloss.Color {
	switch r {
	case skymap.GlyphGalaxy:
		return colorGalaxy
	case skymap.GlyphSelected:
		return colorGalaxyFocused
	case skymap.GlyphFootprint:
		return colorFootprint
	case skymap.GlyphEquator:
		return colorEquator
	default:
		return colorBackground
	}
}

// renderLabels draws galaxy labels on the canvas based on label mode.
// Focused galaxy labels take priority in overlapping regions.
func (m SkyViewModel) renderLabels(canvas [][]rune, colors [][]lipgloss.Color, width, height int, positions []galaxyPos) {
	if m.labelMode == LabelNone || len(positions) == 0 {
		return
	}

	for i := range positions {
		pos := &positions[i]
		pos.labelStart = pos.x + 2
		labelLen := len([]rune(pos.name))
		if pos.isFocused {
			labelLen += 2
		}
		pos.labelEnd = pos.labelStart + labelLen
	}

	// Columns claimed by the focused label, per row
	focusedClaims := make(map[int]map[int]bool)
	for _, pos := range positions {
		if !pos.isFocused {
			continue
		}
		if focusedClaims[pos.y] == nil {
			focusedClaims[pos.y] = make(map[int]bool)
		}
		for x := pos.labelStart; x < pos.labelEnd; x++ {
			focusedClaims[pos.y][x] = true
		}
	}

	for _, pos := range positions {
		showLabel := false
		switch m.labelMode {
		case LabelFocused:
			showLabel = pos.isFocused
		case LabelAll:
			showLabel = true
		}
		if !showLabel {
			continue
		}

		labelColor := lipgloss.Color(colorGalaxy)
		labelText := pos.name
		if pos.isFocused {
			labelColor = colorGalaxyFocused
			labelText = "◄ " + pos.name
		}

		for i, r := range []rune(labelText) {
			x := pos.labelStart + i
			if x < 0 || x >= width || pos.y < 0 || pos.y >= height {
				continue
			}
			if !pos.isFocused && focusedClaims[pos.y][x] {
				continue
			}
			canvas[pos.y][x] = r
			colors[pos.y][x] = labelColor
		}
	}
}
