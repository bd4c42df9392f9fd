// Package physics implements the force-directed layout engine: pairwise
// repulsion, per-link spring attraction, same-type grouping and damped
// semi-implicit Euler integration, advanced one discrete tick at a time
// by an external frame scheduler.
package physics

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/flowmatic/kineograph/models"
	"github.com/flowmatic/kineograph/vector"
)

// Coincident nodes are separated by a random impulse of this fraction of
// the repulsion strength.
const separationImpulseFactor = 0.01

// Config holds the engine tunables. It is a plain value: UpdateConfig
// replaces the whole snapshot and a tick reads a single snapshot
// throughout, so a UI editing parameters mid-tick cannot alias the
// values the force pass is using.
type Config struct {
	// Damping is the per-tick velocity multiplier in (0, 1].
	Damping float64 `koanf:"damping" json:"damping"`
	// Repulsion scales the inverse-square force pushing all pairs apart.
	Repulsion float64 `koanf:"repulsion" json:"repulsion"`
	// Attraction scales the Hookean spring force along each link.
	Attraction float64 `koanf:"attraction" json:"attraction"`
	// Grouping scales the spring pulling same-type nodes together;
	// zero disables grouping.
	Grouping float64 `koanf:"grouping" json:"grouping"`
	// TimeStep is the integration step; a unitless tick of 1 by default.
	TimeStep float64 `koanf:"timestep" json:"timestep"`
}

// DefaultConfig returns the tunables the engine ships with.
func DefaultConfig() Config {
	return Config{
		Damping:    0.95,
		Repulsion:  6500,
		Attraction: 0.001,
		Grouping:   0,
		TimeStep:   1,
	}
}

// Simulator advances a graph's layout one tick at a time. It is driven
// synchronously by a single caller; the mutex only protects the config
// snapshot and the random source from between-tick updates.
type Simulator struct {
	mu  sync.Mutex
	cfg Config
	rng *rand.Rand
}

// NewSimulator creates a simulator with a clock-seeded random source for
// the coincident-node tie-break.
func NewSimulator(cfg Config) *Simulator {
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = 1
	}
	return &Simulator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Reseed replaces the random source, making the coincident-node
// separation path reproducible.
func (s *Simulator) Reseed(seed int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rng = rand.New(rand.NewSource(seed))
}

// Config returns the current tunables snapshot.
func (s *Simulator) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// UpdateConfig swaps in a new tunables snapshot, effective on the next
// tick.
func (s *Simulator) UpdateConfig(cfg Config) {
	if cfg.TimeStep <= 0 {
		cfg.TimeStep = 1
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
}

// Tick runs one full simulation step: force computation followed by
// position integration. It returns the metrics of the force pass.
func (s *Simulator) Tick(g *models.Graph, filter models.Filter) Metrics {
	m := s.ComputeForces(g, filter)
	s.UpdatePositions(g, filter)
	return m
}

// ResetForces zeroes every node's force accumulator, including nodes
// excluded by any filter. Exposed for callers that layer custom forces
// around the standard pass.
func (s *Simulator) ResetForces(g *models.Graph) {
	for _, n := range g.Nodes() {
		n.Force = vector.Vector{}
	}
}

// ComputeForces accumulates repulsion, grouping and link attraction
// forces for the current node/link set restricted to the filter. No
// force from a previous tick survives: every accumulator is reset first.
func (s *Simulator) ComputeForces(g *models.Graph, filter models.Filter) Metrics {
	s.mu.Lock()
	cfg := s.cfg
	rng := s.rng
	s.mu.Unlock()

	nodes := g.Nodes()
	for _, n := range nodes {
		n.Force = vector.Vector{}
	}

	active := make([]*models.Node, 0, len(nodes))
	for _, n := range nodes {
		if filter.Visible(n.ID) {
			active = append(active, n)
		}
	}

	for i, a := range active {
		for _, b := range active[i+1:] {
			diff := a.Position.Subtract(b.Position)
			dist := diff.Magnitude()

			if dist == 0 {
				// Coincident nodes carry no direction to push along.
				// A small random impulse, applied antisymmetrically,
				// breaks the tie; the pair separates on the next
				// integration step. Grouping is skipped at zero
				// distance as well.
				impulse := vector.FromPolar(cfg.Repulsion*separationImpulseFactor, rng.Float64()*2*math.Pi)
				a.Force = a.Force.Add(impulse)
				b.Force = b.Force.Subtract(impulse)
				continue
			}

			dir := diff.Multiply(1 / dist)

			// Clamping the separation at the mean collision radius keeps
			// the inverse-square term from blowing up when nodes overlap.
			r := math.Max(dist, (a.CollisionRadius()+b.CollisionRadius())/2)
			repulsion := dir.Multiply(cfg.Repulsion / (r * r))
			a.Force = a.Force.Add(repulsion)
			b.Force = b.Force.Subtract(repulsion)

			if cfg.Grouping > 0 && a.Type != "" && a.Type == b.Type {
				spring := dir.Multiply(cfg.Grouping * dist)
				a.Force = a.Force.Subtract(spring)
				b.Force = b.Force.Add(spring)
			}
		}
	}

	for _, l := range g.Links() {
		if !filter.Visible(l.Source.ID) || !filter.Visible(l.Target.ID) {
			continue
		}
		diff := l.Source.Position.Subtract(l.Target.Position)
		dist := diff.Magnitude()
		if dist == 0 {
			continue
		}
		// Hookean spring with zero rest length: pull grows with distance.
		dir := diff.Multiply(1 / dist)
		attraction := dir.Multiply(cfg.Attraction * dist * l.Weight)
		l.Source.Force = l.Source.Force.Subtract(attraction)
		l.Target.Force = l.Target.Force.Add(attraction)
	}

	return collectMetrics(len(nodes), active)
}

// UpdatePositions integrates velocities and positions for every
// unpinned node admitted by the filter. Semi-implicit Euler: damping is
// applied after the force impulse and before the position update, which
// is unconditionally stable for damping in (0, 1).
func (s *Simulator) UpdatePositions(g *models.Graph, filter models.Filter) {
	s.mu.Lock()
	cfg := s.cfg
	s.mu.Unlock()

	for _, n := range g.Nodes() {
		if n.Fixed || !filter.Visible(n.ID) {
			continue
		}
		n.Velocity = n.Velocity.Add(n.Force.Multiply(cfg.TimeStep)).Multiply(cfg.Damping)
		n.Position = n.Position.Add(n.Velocity.Multiply(cfg.TimeStep))
	}
}

// ApplyExternalForce adds an arbitrary force to one node, e.g. drag
// feedback from an interaction layer. Unknown ids are ignored.
func (s *Simulator) ApplyExternalForce(g *models.Graph, id string, f vector.Vector) {
	if n, ok := g.Node(id); ok {
		n.Force = n.Force.Add(f)
	}
}

// CenterOfMass returns the mean position of the nodes admitted by the
// filter. The second return is false when no node is active.
func (s *Simulator) CenterOfMass(g *models.Graph, filter models.Filter) (vector.Vector, bool) {
	var sum vector.Vector
	count := 0
	for _, n := range g.Nodes() {
		if !filter.Visible(n.ID) {
			continue
		}
		sum = sum.Add(n.Position)
		count++
	}
	if count == 0 {
		return vector.Vector{}, false
	}
	return sum.Multiply(1 / float64(count)), true
}

// ApplyCenteringForce pulls every active, unpinned node toward the
// center of mass proportionally to its distance. An optional drift
// correction, not part of the default tick.
func (s *Simulator) ApplyCenteringForce(g *models.Graph, filter models.Filter, strength float64) {
	center, ok := s.CenterOfMass(g, filter)
	if !ok {
		return
	}
	for _, n := range g.Nodes() {
		if n.Fixed || !filter.Visible(n.ID) {
			continue
		}
		n.Force = n.Force.Add(center.Subtract(n.Position).Multiply(strength))
	}
}
