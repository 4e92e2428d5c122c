// Command grb-shader browses the Local Volume galaxy catalog and estimates how
// often isotropic gamma-ray bursts fall behind a nearby galaxy.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/grb-shader/internal/catalog"
	"github.com/litescript/grb-shader/internal/config"
	"github.com/litescript/grb-shader/internal/coverage"
	"github.com/litescript/grb-shader/internal/logging"
	"github.com/litescript/grb-shader/internal/skymap"
	"github.com/litescript/grb-shader/internal/state"
	"github.com/litescript/grb-shader/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode  bool
	snapshotPath string
	miniSkyMode  bool
	queryPos     string
	simulateN    int
	coverageMode bool
	eventsMode   bool
)

func main() {
	envFile := flag.String("env-file", ".env", "Environment file to read before GRB_* variables")
	catalogPath := flag.String("catalog", "", "Catalog file (default: bundled Local Volume catalog)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	logFile := flag.String("log-file", "", "Write TUI logs to this file (default: discarded)")
	seed := flag.Uint64("seed", 0, "Random seed for orientations and bursts (0 = random)")
	covOrder := flag.Int("coverage-order", coverage.DefaultOrder, "HEALPix order of the coverage map")
	fixedAngles := flag.Bool("fixed-angles", false, "Keep orientations fixed across simulated bursts")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON catalog snapshot to file (use - for stdout)")
	flag.BoolVar(&miniSkyMode, "mini-sky", false, "Show ASCII all-sky map")
	flag.StringVar(&queryPos, "query", "", "Report the galaxy shading a position, as ra,dec in degrees")
	flag.IntVar(&simulateN, "simulate", 0, "Simulate N isotropic bursts and report intercepts")
	flag.BoolVar(&coverageMode, "coverage", false, "Estimate union sky coverage on a HEALPix grid")
	flag.BoolVar(&eventsMode, "events", false, "Show intercept event log after a simulation")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Flags given on the command line win over the environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "catalog":
			cfg.Catalog.Path = *catalogPath
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "seed":
			cfg.Sim.Seed = *seed
		case "coverage-order":
			cfg.Coverage.Order = *covOrder
		case "fixed-angles":
			cfg.Sim.ResamplePerTrial = !*fixedAngles
		case "simulate":
			cfg.Sim.Trials = simulateN
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid flags: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.ParseLevel(cfg.Logging.Level))

	volume, err := loadCatalog(cfg)
	if err != nil {
		logger.Error("Catalog load failed: %v", err)
		os.Exit(1)
	}
	logger.Debug("Loaded %d galaxies", volume.Len())

	stateCfg := state.DefaultConfig()
	stateCfg.Seed = cfg.Sim.Seed
	stateCfg.MaxEvents = cfg.Sim.MaxEvents
	stateCfg.ResamplePerTrial = cfg.Sim.ResamplePerTrial
	stateMgr := state.NewManager(volume, stateCfg)

	// Fresh orientations before anything reads the catalog
	stateMgr.SampleAngles()

	headless := summaryMode || snapshotPath != "" || miniSkyMode || queryPos != "" || simulateN > 0 || coverageMode || eventsMode
	if headless || !term.IsTerminal(int(os.Stdout.Fd())) {
		if !headless {
			summaryMode = true
		}
		if err := runHeadless(cfg, stateMgr, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Stderr shares the terminal with the alt screen
	logOut, err := tuiLogOutput(*logFile)
	if err != nil {
		logger.Error("Open log file: %v", err)
		os.Exit(1)
	}
	defer logOut.Close()
	logger.SetOutput(logOut)

	model := ui.New(stateMgr, ui.Options{Trials: cfg.Sim.Trials, Logger: logger})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		logOut.Close()
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// tuiLogOutput picks where the logger writes while the TUI owns the terminal.
func tuiLogOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{io.Discard}, nil
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
}

func loadCatalog(cfg *config.Config) (*catalog.LocalVolume, error) {
	if cfg.UsesBundledCatalog() {
		return catalog.LoadDefault()
	}
	return catalog.LoadFile(cfg.Catalog.Path)
}

// runHeadless handles all headless modes without starting the TUI.
func runHeadless(cfg *config.Config, stateMgr *state.Manager, logger *logging.Logger) error {
	now := time.Now()
	volume := stateMgr.Snapshot().Volume()

	if queryPos != "" {
		ra, dec, err := parseQuery(queryPos)
		if err != nil {
			return err
		}
		ok, g := stateMgr.InterceptsGalaxy(ra, dec)
		if ok {
			fmt.Printf("RA %.4f° Dec %+.4f° is shaded by %s (%.2f Mpc)\n", ra, dec, g.Name, g.Distance)
		} else {
			fmt.Printf("RA %.4f° Dec %+.4f° is not shaded by any catalog galaxy\n", ra, dec)
		}
	}

	// Export JSON if requested
	if snapshotPath != "" {
		export := catalog.ExportVolume(volume, now)
		if snapshotPath == "-" {
			if err := export.WriteJSON(os.Stdout); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
		} else {
			f, err := os.Create(snapshotPath)
			if err != nil {
				return fmt.Errorf("create snapshot file: %w", err)
			}
			defer f.Close()
			if err := export.WriteJSON(f); err != nil {
				return fmt.Errorf("write JSON to file: %w", err)
			}
		}
	}

	if summaryMode {
		catalog.WriteSummaryTable(os.Stdout, volume, now)
	}

	if miniSkyMode {
		fmt.Println()
		skymap.WriteMiniSky(os.Stdout, volume, miniSkyConfig())
	}

	if coverageMode {
		logger.Debug("Estimating coverage at order %d with %d samples", cfg.Coverage.Order, cfg.Coverage.Samples)
		m := coverage.Estimate(stateMgr, coverage.Options{
			Order:   cfg.Coverage.Order,
			Samples: cfg.Coverage.Samples,
			Seed:    cfg.Sim.Seed,
		})
		fmt.Println()
		m.WriteReport(os.Stdout, volume.PercentageSkyCover())
	}

	if simulateN > 0 {
		logger.Debug("Simulating %d bursts", simulateN)
		result := stateMgr.Simulate(simulateN)
		fmt.Println()
		state.WriteRunSummary(os.Stdout, result)
	}

	if eventsMode {
		fmt.Println()
		state.WriteEvents(os.Stdout, stateMgr.RecentEvents(cfg.Sim.MaxEvents), 10)
	}

	return nil
}

// miniSkyConfig widens the map to the terminal when stdout is one.
func miniSkyConfig() skymap.MiniSkyConfig {
	cfg := skymap.DefaultMiniSkyConfig()
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return cfg
	}
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width-2 > cfg.Width {
		cfg.Width = width - 2
		cfg.Height = cfg.Width / 4
	}
	return cfg
}

var errQuery = errors.New("query must be ra,dec in degrees")

func parseQuery(s string) (ra, dec float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", errQuery, s)
	}
	ra, errRA := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	dec, errDec := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if joined := errors.Join(errRA, errDec); joined != nil {
		return 0, 0, fmt.Errorf("%w: %w", errQuery, joined)
	}
	return ra, dec, nil
}
