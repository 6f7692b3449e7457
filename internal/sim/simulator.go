// Package sim advances a gravitational body set through time: per step the
// solver recomputes bounds, rebuilds the octree, accumulates forces, and the
// integrator applies them. The sequence is strictly ordered; the simulator
// holds no carry-over state between steps beyond the bodies themselves.
package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/gravity"
)

type Simulator struct {
	bodies    []*body.Body
	solver    *gravity.Solver
	metrics   []Metric
	observers []Observer
	elapsed   float64
}

func New(bodies []*body.Body, solver *gravity.Solver) *Simulator {
	if solver == nil {
		solver = gravity.NewSolver()
	}
	return &Simulator{
		bodies:  bodies,
		solver:  solver,
		metrics: make([]Metric, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)      { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)  { s.observers = append(s.observers, o) }
func (s *Simulator) Bodies() []*body.Body    { return s.bodies }
func (s *Simulator) Solver() *gravity.Solver { return s.solver }
func (s *Simulator) Elapsed() float64        { return s.elapsed }

// Reset replaces the body set and rewinds the clock.
func (s *Simulator) Reset(bodies []*body.Body) {
	s.bodies = bodies
	s.elapsed = 0
	for _, b := range s.bodies {
		b.ClearTrajectory()
	}
}

// Step advances the simulation by rawDt scaled by the run state's time
// scale. A paused state is a no-op. Order within a step is fixed: force
// accumulation (which rebuilds the tree from a consistent position snapshot)
// strictly precedes integration.
func (s *Simulator) Step(rawDt float64, state RunState) {
	if state.Paused {
		return
	}
	state = state.Clamp()
	dt := rawDt * state.TimeScale

	s.solver.UseBarnesHut = state.UseBarnesHut
	s.solver.Accumulate(s.bodies)

	for _, b := range s.bodies {
		b.Integrate(dt)
	}

	for _, b := range s.bodies {
		if !b.Fixed {
			b.RecordTrajectory()
		}
	}

	s.elapsed += dt
}

// Run performs a fixed-step headless run, recording a position snapshot per
// step. Cancellation is checked between steps; state validation stops the
// run at the first NaN/Inf position rather than integrating garbage.
func (s *Simulator) Run(ctx context.Context, cfg RunConfig) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Snapshots: make([]Snapshot, 0, steps+1),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	result.Snapshots = append(result.Snapshots, s.snapshot())
	initialEnergy := s.Energy()

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for _, m := range s.metrics {
			m.Observe(s.bodies, s.elapsed)
		}
		for _, obs := range s.observers {
			obs.OnStep(s.bodies, s.elapsed)
		}

		s.Step(cfg.Dt, cfg.State)
		result.StepsTaken++

		if cfg.ValidateState && !s.stateValid() {
			err := SimError{Time: s.elapsed, Step: i, Message: "invalid state (NaN/Inf)"}
			result.Errors = append(result.Errors, err)
			break
		}

		result.Snapshots = append(result.Snapshots, s.snapshot())
	}

	finalEnergy := s.Energy()
	if initialEnergy != 0 {
		result.EnergyDrift = math.Abs(finalEnergy-initialEnergy) / math.Abs(initialEnergy)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg RunConfig) error {
	if len(s.bodies) == 0 {
		return ErrNoBodies
	}
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	if cfg.State.TimeScale < MinTimeScale || cfg.State.TimeScale > MaxTimeScale {
		return fmt.Errorf("%w: %f", ErrTimeScaleBounds, cfg.State.TimeScale)
	}
	return nil
}

func (s *Simulator) snapshot() Snapshot {
	positions := make([]body.Vec3, len(s.bodies))
	for i, b := range s.bodies {
		positions[i] = b.Position
	}
	return Snapshot{Time: s.elapsed, Positions: positions}
}

func (s *Simulator) stateValid() bool {
	for _, b := range s.bodies {
		if !b.Position.IsValid() || !b.Velocity.IsValid() {
			return false
		}
	}
	return true
}

// Energy returns kinetic plus pairwise potential energy, with separations
// clamped the same way force evaluation clamps them.
func (s *Simulator) Energy() float64 {
	ke := 0.0
	pe := 0.0
	g := s.solver.G

	for i, b := range s.bodies {
		ke += 0.5 * b.Mass * b.Velocity.LengthSq()

		for j := i + 1; j < len(s.bodies); j++ {
			r := s.bodies[j].Position.Sub(b.Position).Length()
			if r < body.MinDistance {
				r = body.MinDistance
			}
			pe -= g * b.Mass * s.bodies[j].Mass / r
		}
	}

	return ke + pe
}

// Momentum returns the total linear momentum of the free bodies.
func (s *Simulator) Momentum() body.Vec3 {
	var p body.Vec3
	for _, b := range s.bodies {
		if !b.Fixed {
			p = p.Add(b.Velocity.Scale(b.Mass))
		}
	}
	return p
}

// AngularMomentum returns the total angular momentum about the origin.
func (s *Simulator) AngularMomentum() body.Vec3 {
	var l body.Vec3
	for _, b := range s.bodies {
		if !b.Fixed {
			l = l.Add(b.Position.Cross(b.Velocity.Scale(b.Mass)))
		}
	}
	return l
}
