// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/grb-shader/internal/logging"
	"github.com/litescript/grb-shader/internal/state"
	"github.com/litescript/grb-shader/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewCatalog ViewMode = iota
	ViewSky
)

const viewCount = 2

// Msg types for Bubble Tea
type (
	// SimulationDoneMsg carries the result of a background simulation.
	SimulationDoneMsg struct {
		Result state.RunResult
	}

	// ResampledMsg signals that galaxy orientations were re-drawn.
	ResampledMsg struct{}
)

// Options configures the root model.
type Options struct {
	Trials int // bursts per simulation run
	Logger *logging.Logger
}

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state  *state.Manager
	log    *logging.Logger
	trials int

	// UI state
	viewMode   ViewMode
	width      int
	height     int
	ready      bool
	statusMsg  string
	simulating bool

	// Sub-models
	catalog CatalogModel
	skyView SkyViewModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	trials := opts.Trials
	if trials <= 0 {
		trials = 10_000
	}

	snap := stateMgr.Snapshot()
	return Model{
		state:    stateMgr,
		log:      log.Named("ui"),
		trials:   trials,
		viewMode: ViewCatalog,
		catalog:  NewCatalogModel().UpdateData(snap),
		skyView:  NewSkyViewModel().UpdateData(snap),
		snapshot: snap,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "c":
			m.viewMode = ViewCatalog
		case "2", "m":
			m.viewMode = ViewSky

		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount

		case "r":
			if !m.simulating {
				m.statusMsg = "Resampling orientations..."
				cmds = append(cmds, resampleCmd(m.state))
			}

		case "s":
			if m.simulating {
				m.statusMsg = "Simulation already running"
				break
			}
			m.simulating = true
			m.statusMsg = fmt.Sprintf("Simulating %d bursts...", m.trials)
			m.log.Debug("starting simulation of %d trials", m.trials)
			cmds = append(cmds, simulateCmd(m.state, m.trials))

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header ~4 lines, footer ~2 lines
		contentHeight := msg.Height - 6
		m.catalog = m.catalog.SetSize(msg.Width, contentHeight)
		m.skyView = m.skyView.SetSize(msg.Width, contentHeight)

	case SimulationDoneMsg:
		m.simulating = false
		r := msg.Result
		m.statusMsg = fmt.Sprintf("%d/%d bursts intercepted (%.3f%%) in %s",
			r.Hits, r.Trials, r.HitFraction()*100, r.Duration.Round(time.Millisecond))
		m.log.Debug("simulation finished: %d/%d hits", r.Hits, r.Trials)
		m.refresh()

	case ResampledMsg:
		m.statusMsg = "Orientations resampled"
		m.refresh()

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// refresh pulls a new snapshot and pushes it to the sub-models.
func (m *Model) refresh() {
	m.snapshot = m.state.Snapshot()
	m.catalog = m.catalog.UpdateData(m.snapshot)
	m.skyView = m.skyView.UpdateData(m.snapshot)
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewCatalog:
		m.catalog, cmd = m.catalog.Update(msg)
		m.skyView = m.skyView.SetFocus(m.catalog.SelectedName())
	case ViewSky:
		m.skyView, cmd = m.skyView.Update(msg)
		m.catalog = m.catalog.SetSelected(m.skyView.FocusedName())
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewCatalog:
		content = m.catalog.View()
	case ViewSky:
		content = m.skyView.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9D4EDD"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(title.Render("grb-shader"))
	b.WriteString(muted.Render(fmt.Sprintf("  v%s · Local Volume GRB shading", version.Version)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Catalog", "[2] Sky Map"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	status := accentStyle.Render(fmt.Sprintf("%d galaxies", len(m.snapshot.Galaxies))) +
		dimStyle.Render(fmt.Sprintf(" · %.4f%% sky · %d trials · %d hits",
			m.snapshot.CoverPercent, m.snapshot.Trials, m.snapshot.Hits))

	var help string
	switch m.viewMode {
	case ViewSky:
		help = dimStyle.Render("j/k: focus | l: labels | e: bursts | r: resample | s: simulate")
	default:
		help = dimStyle.Render("↑↓: navigate | tab: switch view | r: resample | s: simulate")
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + help
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

func simulateCmd(mgr *state.Manager, trials int) tea.Cmd {
	return func() tea.Msg {
		return SimulationDoneMsg{Result: mgr.Simulate(trials)}
	}
}

func resampleCmd(mgr *state.Manager) tea.Cmd {
	return func() tea.Msg {
		mgr.SampleAngles()
		return ResampledMsg{}
	}
}
