package physics

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/flowmatic/kineograph/models"
	"github.com/flowmatic/kineograph/vector"
)

// NoiseField drifts node positions through a slowly evolving simplex
// noise field, giving an otherwise settled layout an organic wobble.
// Opt-in: callers invoke Perturb after a tick, it is not part of the
// standard pass.
type NoiseField struct {
	noise opensimplex.Noise
	// Scale maps layout coordinates into noise space.
	Scale float64
	// Amplitude is the maximum per-call position offset.
	Amplitude float64
	t         float64
}

// NewNoiseField creates a noise field with the given seed and amplitude.
func NewNoiseField(seed int64, amplitude float64) *NoiseField {
	return &NoiseField{
		noise:     opensimplex.New(seed),
		Scale:     0.03,
		Amplitude: amplitude,
	}
}

// Perturb offsets every unpinned node admitted by the filter and
// advances the field's time coordinate. Pinned and filtered-out nodes
// keep their positions.
func (nf *NoiseField) Perturb(g *models.Graph, filter models.Filter) {
	for _, n := range g.Nodes() {
		if n.Fixed || !filter.Visible(n.ID) {
			continue
		}
		dx := nf.noise.Eval3(n.Position.X*nf.Scale, n.Position.Y*nf.Scale, nf.t)
		dy := nf.noise.Eval3(n.Position.X*nf.Scale+100, n.Position.Y*nf.Scale+100, nf.t)
		n.Position = n.Position.Add(vector.Vector{X: dx * nf.Amplitude, Y: dy * nf.Amplitude})
	}
	nf.t += 0.01
}
