package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/gravsim/internal/body"
)

// Domain errors for simulation runs.
var (
	// ErrInvalidState indicates a body reached a NaN or Inf position.
	ErrInvalidState = errors.New("gravsim: invalid body state (NaN or Inf detected)")

	// ErrNoBodies indicates a run was started over an empty body set.
	ErrNoBodies = errors.New("gravsim: no bodies to simulate")

	// ErrTimeScaleBounds indicates a time scale outside [MinTimeScale, MaxTimeScale].
	ErrTimeScaleBounds = errors.New("gravsim: time scale out of valid bounds")
)

// Time-scale bounds enforced on RunState.
const (
	MinTimeScale = 0.1
	MaxTimeScale = 10.0
)

// RunState carries the externally controlled step toggles. It is passed into
// every step explicitly so the engine stays free of ambient globals and
// testable without any input loop.
type RunState struct {
	Paused       bool
	TimeScale    float64
	UseBarnesHut bool
}

// DefaultRunState returns an unpaused state at unit time scale with the
// Barnes-Hut walk enabled.
func DefaultRunState() RunState {
	return RunState{TimeScale: 1.0, UseBarnesHut: true}
}

// Clamp forces the time scale into its valid range.
func (r RunState) Clamp() RunState {
	if r.TimeScale < MinTimeScale {
		r.TimeScale = MinTimeScale
	}
	if r.TimeScale > MaxTimeScale {
		r.TimeScale = MaxTimeScale
	}
	return r
}

// RunConfig parametrizes a headless fixed-step run.
type RunConfig struct {
	Dt            float64
	Duration      float64
	State         RunState
	ValidateState bool
}

func DefaultRunConfig() RunConfig {
	return RunConfig{
		Dt:            0.01,
		Duration:      10.0,
		State:         DefaultRunState(),
		ValidateState: true,
	}
}

// Snapshot is one recorded frame: every body's position at a given time.
type Snapshot struct {
	Time      float64
	Positions []body.Vec3
}

// Result collects the output of a run.
type Result struct {
	Snapshots   []Snapshot
	Metrics     map[string]float64
	EnergyDrift float64
	StepsTaken  int
	Errors      []error
}

// Metric observes the body set once per step and reduces to a single value.
type Metric interface {
	Name() string
	Observe(bodies []*body.Body, t float64)
	Value() float64
	Reset()
}

// Observer receives a callback after every completed step.
type Observer interface {
	OnStep(bodies []*body.Body, t float64)
}

// SimError wraps a per-step failure with its step index and simulation time.
type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
