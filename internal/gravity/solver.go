// Package gravity computes per-step accelerations for a set of bodies,
// either exactly (all pairs) or through a Barnes-Hut octree walk.
package gravity

import (
	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/octree"
)

const (
	// DefaultG is the gravitational constant used by the stock scenes.
	DefaultG = 0.1

	// DefaultTheta is the Barnes-Hut opening angle. Smaller values force
	// more exact recursion.
	DefaultTheta = 0.5

	// MinWorldSize is the smallest bounding-box diagonal the solver will
	// build a tree over, so the root never degenerates to a zero volume.
	MinWorldSize = 100.0

	// DefaultExtent is the half-width of the fallback bounds used when the
	// body set is empty.
	DefaultExtent = 1000.0

	boundsPadding = 0.2
)

// Bounds is the axis-aligned box enclosing all body positions.
type Bounds struct {
	Min, Max body.Vec3
}

func (b Bounds) Center() body.Vec3 { return b.Min.Add(b.Max).Scale(0.5) }
func (b Bounds) Span() body.Vec3   { return b.Max.Sub(b.Min) }

// Diagonal is the length of the box diagonal, used as the root cube size so
// the octree always fully encloses the box.
func (b Bounds) Diagonal() float64 { return b.Span().Length() }

// Solver orchestrates bounds computation, tree construction and force
// accumulation. It holds no state between steps beyond its tuning.
type Solver struct {
	G            float64
	Theta        float64
	Limits       octree.Limits
	UseBarnesHut bool
}

// NewSolver returns a solver with the stock tuning and Barnes-Hut enabled.
func NewSolver() *Solver {
	return &Solver{
		G:            DefaultG,
		Theta:        DefaultTheta,
		Limits:       octree.DefaultLimits(),
		UseBarnesHut: true,
	}
}

// ComputeBounds spans all body positions, padded by 20% of the span on each
// side. A span below MinWorldSize is re-centered and expanded to that
// minimum; zero bodies fall back to a fixed default extent.
func (s *Solver) ComputeBounds(bodies []*body.Body) Bounds {
	if len(bodies) == 0 {
		return Bounds{
			Min: body.Vec3{X: -DefaultExtent, Y: -DefaultExtent, Z: -DefaultExtent},
			Max: body.Vec3{X: DefaultExtent, Y: DefaultExtent, Z: DefaultExtent},
		}
	}

	min := bodies[0].Position
	max := bodies[0].Position
	for _, b := range bodies[1:] {
		min = min.Min(b.Position)
		max = max.Max(b.Position)
	}

	padding := max.Sub(min).Scale(boundsPadding)
	min = min.Sub(padding)
	max = max.Add(padding)

	if max.Sub(min).Length() < MinWorldSize {
		center := min.Add(max).Scale(0.5)
		half := body.Vec3{X: MinWorldSize * 0.5, Y: MinWorldSize * 0.5, Z: MinWorldSize * 0.5}
		min = center.Sub(half)
		max = center.Add(half)
	}

	return Bounds{Min: min, Max: max}
}

// BuildTree constructs a fresh octree over the current body positions.
// Nothing is reused across calls.
func (s *Solver) BuildTree(bodies []*body.Body) *octree.Node {
	bounds := s.ComputeBounds(bodies)
	root := octree.New(bounds.Center(), bounds.Diagonal(), s.Limits)

	for _, b := range bodies {
		root.Insert(b)
	}
	root.UpdateMassProperties()

	return root
}

// Accumulate resets and recomputes the acceleration of every free body,
// choosing between the tree walk and the exact pairwise sum by the solver's
// mode. Fixed bodies are skipped; integration zeroes their accumulator.
func (s *Solver) Accumulate(bodies []*body.Body) {
	if s.UseBarnesHut {
		s.AccumulateBarnesHut(bodies)
	} else {
		s.AccumulateDirect(bodies)
	}
}

// AccumulateBarnesHut builds the tree and walks it once per free body.
func (s *Solver) AccumulateBarnesHut(bodies []*body.Body) {
	root := s.BuildTree(bodies)

	for _, b := range bodies {
		if b.Fixed {
			continue
		}
		b.Acceleration = body.Vec3{}
		root.ForceOn(b, s.G, s.Theta)
	}
}

// AccumulateDirect sums pairwise contributions against every other body,
// O(n^2). The reference computation the tree walk converges to as theta
// shrinks.
func (s *Solver) AccumulateDirect(bodies []*body.Body) {
	for i, b := range bodies {
		if b.Fixed {
			continue
		}
		b.Acceleration = body.Vec3{}
		for j, other := range bodies {
			if i != j {
				b.ApplyGravityFrom(other, s.G)
			}
		}
	}
}
