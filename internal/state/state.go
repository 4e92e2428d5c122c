// Package state provides thread-safe access to a local volume shared between
// the simulation loop and its viewers.
package state

import (
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/litescript/grb-shader/internal/astro"
	"github.com/litescript/grb-shader/internal/catalog"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventIntercept EventType = "INTERCEPT"
	EventResample  EventType = "RESAMPLE"
)

// Event represents a notable simulation outcome.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Trial     int       `json:"trial"`
	Galaxy    string    `json:"galaxy,omitempty"`
	RAdeg     float64   `json:"ra_deg"`
	DecDeg    float64   `json:"dec_deg"`
}

// RunResult summarizes one Simulate call.
type RunResult struct {
	Trials     int
	Hits       int
	GalaxyHits map[string]int
	Duration   time.Duration
	FinishedAt time.Time
}

// HitFraction returns the fraction of trials that hit a galaxy.
func (r RunResult) HitFraction() float64 {
	if r.Trials == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Trials)
}

// Manager owns a LocalVolume and serializes angle sampling against
// containment queries.
type Manager struct {
	mu sync.RWMutex

	volume *catalog.LocalVolume
	rng    *rand.Rand

	// Running totals across all simulations
	trials     int
	hits       int
	galaxyHits map[string]int
	lastRun    RunResult
	resamples  int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	resamplePerTrial bool
}

// Config holds configuration for the state manager.
type Config struct {
	MaxEvents        int
	Seed             uint64 // 0 for a non-reproducible run
	ResamplePerTrial bool   // draw fresh orientations before every trial
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxEvents:        50,
		ResamplePerTrial: true,
	}
}

// NewManager creates a new state manager around v.
func NewManager(v *catalog.LocalVolume, cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	if v == nil {
		v = catalog.New()
	}
	return &Manager{
		volume:           v,
		rng:              catalog.NewAngleSource(cfg.Seed),
		galaxyHits:       make(map[string]int),
		maxEvents:        maxEvents,
		events:           make([]Event, 0, maxEvents),
		resamplePerTrial: cfg.ResamplePerTrial,
	}
}

// SampleAngles re-draws every galaxy orientation from the manager's source.
func (m *Manager) SampleAngles() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.volume.SampleAngles(m.rng)
	m.resamples++
	m.addEvent(Event{Type: EventResample, Timestamp: time.Now()})
}

// InterceptsGalaxy is LocalVolume.InterceptsGalaxy under the read lock.
func (m *Manager) InterceptsGalaxy(ra, dec float64) (bool, *catalog.Galaxy) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.volume.InterceptsGalaxy(ra, dec)
}

// Simulate draws trials isotropic burst positions and records which fall in
// a galaxy. With ResamplePerTrial set, orientations are re-drawn before each
// trial.
func (m *Manager) Simulate(trials int) RunResult {
	m.mu.Lock()
	defer m.mu.Unlock()

	start := time.Now()
	result := RunResult{
		Trials:     trials,
		GalaxyHits: make(map[string]int),
	}

	for i := 0; i < trials; i++ {
		if m.resamplePerTrial {
			m.volume.SampleAngles(m.rng)
		}

		ra, dec := astro.UniformSkyPoint(m.rng)
		ok, g := m.volume.InterceptsGalaxy(ra, dec)
		if !ok {
			continue
		}

		result.Hits++
		result.GalaxyHits[g.Name]++
		m.galaxyHits[g.Name]++
		m.addEvent(Event{
			Type:      EventIntercept,
			Timestamp: time.Now(),
			Trial:     m.trials + i + 1,
			Galaxy:    g.Name,
			RAdeg:     ra,
			DecDeg:    dec,
		})
	}

	m.trials += trials
	m.hits += result.Hits
	if m.resamplePerTrial && trials > 0 {
		m.resamples += trials
	}

	result.Duration = time.Since(start)
	result.FinishedAt = time.Now()
	m.lastRun = result
	return result
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Galaxies     []catalog.Galaxy // copies, catalog order
	Names        []string
	CoverPercent float64
	Trials       int
	Hits         int
	Resamples    int
	GalaxyHits   map[string]int
	LastRun      RunResult
	Events       []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	gals := make([]catalog.Galaxy, 0, m.volume.Len())
	for _, g := range m.volume.All() {
		gals = append(gals, *g)
	}

	hits := make(map[string]int, len(m.galaxyHits))
	for k, v := range m.galaxyHits {
		hits[k] = v
	}

	return Snapshot{
		Galaxies:     gals,
		Names:        m.volume.Names(),
		CoverPercent: m.volume.PercentageSkyCover(),
		Trials:       m.trials,
		Hits:         m.hits,
		Resamples:    m.resamples,
		GalaxyHits:   hits,
		LastRun:      m.lastRun,
		Events:       m.getEventsOrdered(),
	}
}

// Volume builds a standalone volume from the snapshot's galaxies. Later
// resampling on the Manager does not reach it.
func (s Snapshot) Volume() *catalog.LocalVolume {
	gals := slices.Clone(s.Galaxies)
	ptrs := make([]*catalog.Galaxy, len(gals))
	for i := range gals {
		ptrs[i] = &gals[i]
	}
	return catalog.New(ptrs...)
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// Galaxy returns a copy of the named galaxy.
func (m *Manager) Galaxy(name string) (catalog.Galaxy, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	g, err := m.volume.Get(name)
	if err != nil {
		return catalog.Galaxy{}, err
	}
	return *g, nil
}
