package catalog

import (
	"iter"
	"math"
	"math/rand/v2"
)

// LocalVolume is an ordered collection of galaxies keyed by name. Iteration
// always follows insertion (file) order.
//
// LocalVolume does no locking. SampleAngles mutates galaxies that
// ContainsPoint reads, so concurrent callers must serialize them.
type LocalVolume struct {
	galaxies map[string]*Galaxy
	order    []string
}

// New creates a LocalVolume from galaxies in the given order. A repeated name
// replaces the earlier galaxy but keeps its position.
func New(galaxies ...*Galaxy) *LocalVolume {
	v := &LocalVolume{
		galaxies: make(map[string]*Galaxy, len(galaxies)),
		order:    make([]string, 0, len(galaxies)),
	}
	for _, g := range galaxies {
		v.add(g)
	}
	return v
}

func (v *LocalVolume) add(g *Galaxy) {
	if _, exists := v.galaxies[g.Name]; !exists {
		v.order = append(v.order, g.Name)
	}
	v.galaxies[g.Name] = g
}

// Len returns the number of galaxies.
func (v *LocalVolume) Len() int {
	return len(v.order)
}

// Get returns the named galaxy or a *NotFoundError.
func (v *LocalVolume) Get(name string) (*Galaxy, error) {
	g, ok := v.galaxies[name]
	if !ok {
		return nil, NewNotFoundError(name)
	}
	return g, nil
}

// Lookup returns the named galaxy and whether it exists.
func (v *LocalVolume) Lookup(name string) (*Galaxy, bool) {
	g, ok := v.galaxies[name]
	return g, ok
}

// Names returns all galaxy names in catalog order.
func (v *LocalVolume) Names() []string {
	names := make([]string, len(v.order))
	copy(names, v.order)
	return names
}

// Galaxies returns all galaxies in catalog order.
func (v *LocalVolume) Galaxies() []*Galaxy {
	out := make([]*Galaxy, 0, len(v.order))
	for _, name := range v.order {
		out = append(out, v.galaxies[name])
	}
	return out
}

// All iterates over name/galaxy pairs in catalog order.
func (v *LocalVolume) All() iter.Seq2[string, *Galaxy] {
	return func(yield func(string, *Galaxy) bool) {
		for _, name := range v.order {
			if !yield(name, v.galaxies[name]) {
				return
			}
		}
	}
}

// NewAngleSource returns a random source for SampleAngles. A zero seed gives
// a non-reproducible source; any other seed is deterministic.
func NewAngleSource(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// SampleAngles draws a new position angle, uniform in [0, 360), for every
// galaxy in catalog order. A nil src behaves like NewAngleSource(0).
func (v *LocalVolume) SampleAngles(src *rand.Rand) {
	if src == nil {
		src = NewAngleSource(0)
	}
	for _, g := range v.All() {
		g.Angle = src.Float64() * 360
	}
}

// InterceptsGalaxy returns the first galaxy, in catalog order, whose ellipse
// contains (ra, dec). Overlaps are not disambiguated.
func (v *LocalVolume) InterceptsGalaxy(ra, dec float64) (bool, *Galaxy) {
	for _, g := range v.All() {
		if g.ContainsPoint(ra, dec) {
			return true, g
		}
	}
	return false, nil
}

// PercentageSkyCover returns the summed projected area of all galaxies as a
// percentage of the full sphere. Galaxies with unknown area are skipped and
// overlaps are counted twice, so the result is not capped at 100.
func (v *LocalVolume) PercentageSkyCover() float64 {
	var total float64
	for _, g := range v.All() {
		if math.IsNaN(g.Area()) {
			continue
		}
		total += g.Area()
	}
	return total / (4 * math.Pi) * 100
}
