package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/gravsim/internal/body"
)

func TestEnergyDrift_ZeroForStaticSystem(t *testing.T) {
	bodies := []*body.Body{
		body.New(body.Vec3{X: 0, Y: 0, Z: 0}, body.Vec3{}, 10, 1),
		body.New(body.Vec3{X: 5, Y: 0, Z: 0}, body.Vec3{}, 10, 1),
	}

	m := NewEnergyDrift(0.1)
	for i := 0; i < 5; i++ {
		m.Observe(bodies, float64(i))
	}

	if m.Value() != 0 {
		t.Errorf("static system drifted: %v", m.Value())
	}
}

func TestEnergyDrift_DetectsChange(t *testing.T) {
	b := body.New(body.Vec3{}, body.Vec3{X: 1}, 1, 1)
	bodies := []*body.Body{b}

	m := NewEnergyDrift(0.1)
	m.Observe(bodies, 0)

	b.Velocity = body.Vec3{X: 2} // quadruples kinetic energy
	m.Observe(bodies, 1)

	if math.Abs(m.Value()-3.0) > 1e-12 {
		t.Errorf("drift = %v, want 3", m.Value())
	}
}

func TestEnergyDrift_Reset(t *testing.T) {
	b := body.New(body.Vec3{}, body.Vec3{X: 1}, 1, 1)
	m := NewEnergyDrift(0.1)
	m.Observe([]*body.Body{b}, 0)
	b.Velocity = body.Vec3{X: 5}
	m.Observe([]*body.Body{b}, 1)

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("reset metric should read 0, got %v", m.Value())
	}
}

func TestTotalMomentum_IgnoresFixed(t *testing.T) {
	bodies := []*body.Body{
		body.NewFixed(body.Vec3{}, 1000, 5),
		body.New(body.Vec3{X: 10, Y: 0, Z: 0}, body.Vec3{Y: 2}, 3, 1),
	}
	bodies[0].Velocity = body.Vec3{X: 50}

	m := NewTotalMomentum()
	m.Observe(bodies, 0)

	if math.Abs(m.Value()-6.0) > 1e-12 {
		t.Errorf("momentum = %v, want 6", m.Value())
	}
}

func TestAngularMomentum_CircularOrbit(t *testing.T) {
	// |L| = m * r * v for a circular orbit about the origin.
	bodies := []*body.Body{
		body.New(body.Vec3{X: 10}, body.Vec3{Y: 3}, 2, 1),
	}

	m := NewAngularMomentum()
	m.Observe(bodies, 0)

	if math.Abs(m.Value()-60.0) > 1e-12 {
		t.Errorf("angular momentum = %v, want 60", m.Value())
	}
}

func TestMetrics_EmptyValue(t *testing.T) {
	if v := NewTotalMomentum().Value(); v != 0 {
		t.Errorf("unobserved momentum = %v", v)
	}
	if v := NewAngularMomentum().Value(); v != 0 {
		t.Errorf("unobserved angular momentum = %v", v)
	}
	if v := NewEnergyDrift(0.1).Value(); v != 0 {
		t.Errorf("unobserved drift = %v", v)
	}
}
