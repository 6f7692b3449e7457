// Package body defines the point-mass primitive shared by the direct and
// Barnes-Hut gravity solvers.
package body

// MinDistance is the smallest pairwise distance used in force evaluation.
// Separations below it are clamped before the 1/r^2 division so coincident
// bodies produce a finite force instead of a singularity.
const MinDistance = 0.1

// DefaultTrajectoryCap bounds the per-body position history kept for
// trajectory rendering.
const DefaultTrajectoryCap = 500

// Body is a point mass. Position, Velocity and Acceleration are mutated in
// place every step; Radius and Color are carried for rendering only.
type Body struct {
	Position     Vec3
	Velocity     Vec3
	Acceleration Vec3
	Mass         float64
	Radius       float64
	Color        Vec3
	Fixed        bool

	trajectory    []Vec3
	trajectoryCap int
}

// New returns a free body at rest-frame state (pos, vel).
func New(pos, vel Vec3, mass, radius float64) *Body {
	return &Body{
		Position:      pos,
		Velocity:      vel,
		Mass:          mass,
		Radius:        radius,
		trajectoryCap: DefaultTrajectoryCap,
	}
}

// NewFixed returns an immovable body anchored at pos.
func NewFixed(pos Vec3, mass, radius float64) *Body {
	b := New(pos, Vec3{}, mass, radius)
	b.Fixed = true
	return b
}

// ApplyGravityFrom accumulates the acceleration exerted on b by other.
// Applying a body to itself is a no-op.
func (b *Body) ApplyGravityFrom(other *Body, g float64) {
	if other == b {
		return
	}
	b.ApplyPointGravity(other.Position, other.Mass, g)
}

// ApplyPointGravity accumulates the acceleration from a point mass at pos.
// The octree approximation path uses this directly, treating a whole subtree
// as one point mass at its center of mass.
func (b *Body) ApplyPointGravity(pos Vec3, mass, g float64) {
	direction := pos.Sub(b.Position)
	distance := direction.Length()
	if distance < MinDistance {
		distance = MinDistance
	}
	direction = direction.Normalize()

	// F = G * m1 * m2 / r^2
	force := g * b.Mass * mass / (distance * distance)
	b.Acceleration = b.Acceleration.Add(direction.Scale(force / b.Mass))
}

// Integrate advances velocity and position by dt from the accumulated
// acceleration, then resets the accumulator. Fixed bodies never move but
// still reset the accumulator so stale forces cannot leak into a later step.
//
// The update order is deliberate: velocity first, then position from the
// post-update velocity plus the 0.5*a*dt^2 term computed from the pre-reset
// acceleration. Changing it to a textbook Verlet changes long-run drift.
func (b *Body) Integrate(dt float64) {
	if b.Fixed {
		b.Acceleration = Vec3{}
		return
	}

	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	b.Position = b.Position.
		Add(b.Velocity.Scale(dt)).
		Add(b.Acceleration.Scale(0.5 * dt * dt))
	b.Acceleration = Vec3{}
}

// SetTrajectoryCap bounds the trajectory history. A cap of zero disables
// recording.
func (b *Body) SetTrajectoryCap(n int) {
	b.trajectoryCap = n
	if n >= 0 && len(b.trajectory) > n {
		b.trajectory = b.trajectory[len(b.trajectory)-n:]
	}
}

// RecordTrajectory appends the current position, evicting the oldest point
// once the capacity is exceeded.
func (b *Body) RecordTrajectory() {
	if b.trajectoryCap <= 0 {
		return
	}
	b.trajectory = append(b.trajectory, b.Position)
	if len(b.trajectory) > b.trajectoryCap {
		b.trajectory = b.trajectory[1:]
	}
}

// Trajectory returns the recorded position history, oldest first.
func (b *Body) Trajectory() []Vec3 { return b.trajectory }

// ClearTrajectory drops the history and re-seeds it with the current position.
func (b *Body) ClearTrajectory() {
	b.trajectory = b.trajectory[:0]
	if b.trajectoryCap > 0 {
		b.trajectory = append(b.trajectory, b.Position)
	}
}
