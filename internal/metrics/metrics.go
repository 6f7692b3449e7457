// Package metrics provides per-step diagnostics over the body set. Each
// metric implements the sim.Metric interface and reduces a run to one value.
package metrics

import (
	"math"

	"github.com/san-kum/gravsim/internal/body"
)

func totalEnergy(bodies []*body.Body, g float64) float64 {
	ke := 0.0
	pe := 0.0

	for i, b := range bodies {
		ke += 0.5 * b.Mass * b.Velocity.LengthSq()

		for j := i + 1; j < len(bodies); j++ {
			r := bodies[j].Position.Sub(b.Position).Length()
			if r < body.MinDistance {
				r = body.MinDistance
			}
			pe -= g * b.Mass * bodies[j].Mass / r
		}
	}

	return ke + pe
}

// EnergyDrift tracks the worst relative deviation of total energy from its
// value at the first observation.
type EnergyDrift struct {
	g        float64
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(g float64) *EnergyDrift {
	return &EnergyDrift{g: g}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(bodies []*body.Body, t float64) {
	energy := totalEnergy(bodies, e.g)
	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		if drift > e.maxDrift {
			e.maxDrift = drift
		}
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// TotalMomentum averages the magnitude of the free bodies' linear momentum.
type TotalMomentum struct {
	sum     float64
	samples int
}

func NewTotalMomentum() *TotalMomentum { return &TotalMomentum{} }

func (m *TotalMomentum) Name() string { return "momentum" }

func (m *TotalMomentum) Observe(bodies []*body.Body, t float64) {
	var p body.Vec3
	for _, b := range bodies {
		if !b.Fixed {
			p = p.Add(b.Velocity.Scale(b.Mass))
		}
	}
	m.sum += p.Length()
	m.samples++
}

func (m *TotalMomentum) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *TotalMomentum) Reset() {
	m.sum = 0
	m.samples = 0
}

// AngularMomentum averages the magnitude of the free bodies' angular
// momentum about the origin.
type AngularMomentum struct {
	sum     float64
	samples int
}

func NewAngularMomentum() *AngularMomentum { return &AngularMomentum{} }

func (m *AngularMomentum) Name() string { return "angular_momentum" }

func (m *AngularMomentum) Observe(bodies []*body.Body, t float64) {
	var l body.Vec3
	for _, b := range bodies {
		if !b.Fixed {
			l = l.Add(b.Position.Cross(b.Velocity.Scale(b.Mass)))
		}
	}
	m.sum += l.Length()
	m.samples++
}

func (m *AngularMomentum) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *AngularMomentum) Reset() {
	m.sum = 0
	m.samples = 0
}
