package physics

import (
	"gonum.org/v1/gonum/stat"

	"github.com/flowmatic/kineograph/models"
)

// Metrics describes one force pass. Callers use it for diagnostics and
// to decide whether to keep scheduling frames.
type Metrics struct {
	// TotalEnergy is the kinetic energy sum 0.5*|v|^2 over active nodes.
	TotalEnergy float64 `json:"total_energy"`
	// MaxForce is the largest force magnitude on any active node.
	MaxForce float64 `json:"max_force"`
	// AverageForce is the mean force magnitude over active nodes.
	AverageForce float64 `json:"average_force"`
	// NodeCount is the size of the full collection.
	NodeCount int `json:"node_count"`
	// ActiveNodeCount is the number of nodes passing the filter.
	ActiveNodeCount int `json:"active_node_count"`
}

// InEquilibrium reports whether the layout has stabilized: both kinetic
// energy and peak force below the threshold.
func (m Metrics) InEquilibrium(threshold float64) bool {
	return m.TotalEnergy < threshold && m.MaxForce < threshold
}

func collectMetrics(total int, active []*models.Node) Metrics {
	m := Metrics{NodeCount: total, ActiveNodeCount: len(active)}
	if len(active) == 0 {
		return m
	}
	magnitudes := make([]float64, 0, len(active))
	for _, n := range active {
		v := n.Velocity.Magnitude()
		m.TotalEnergy += 0.5 * v * v
		f := n.Force.Magnitude()
		if f > m.MaxForce {
			m.MaxForce = f
		}
		magnitudes = append(magnitudes, f)
	}
	m.AverageForce = stat.Mean(magnitudes, nil)
	return m
}
