// Package octree implements the spatial partition behind the Barnes-Hut
// force approximation. The tree is rebuilt from scratch every simulation
// step; nodes never outlive the step that allocated them.
package octree

import "github.com/san-kum/gravsim/internal/body"

// Default subdivision limits. Once either is hit, colliding bodies are
// merged into the leaf's aggregate instead of splitting further.
const (
	DefaultMaxDepth = 10
	DefaultMinSize  = 0.1
)

// Limits bound tree subdivision.
type Limits struct {
	MaxDepth int
	MinSize  float64
}

func DefaultLimits() Limits {
	return Limits{MaxDepth: DefaultMaxDepth, MinSize: DefaultMinSize}
}

// Node is an axis-aligned cube region. A leaf holds at most one body
// reference; an internal node holds only aggregated children. The body
// pointer is non-owning: bodies belong to the solver's slice, which is
// stable for the lifetime of the tree (one step).
type Node struct {
	Center body.Vec3
	Size   float64
	Depth  int

	TotalMass    float64
	CenterOfMass body.Vec3

	children [8]*Node
	Body     *body.Body
	leaf     bool

	limits Limits
}

// New creates an empty root node covering a cube of the given size.
func New(center body.Vec3, size float64, limits Limits) *Node {
	return &Node{Center: center, Size: size, leaf: true, limits: limits}
}

func (n *Node) IsLeaf() bool { return n.leaf }

// Child returns the child for octant i, or nil.
func (n *Node) Child(i int) *Node { return n.children[i] }

// Contains reports whether p lies within the node's half-open cube
// [center-size/2, center+size/2) on all three axes.
func (n *Node) Contains(p body.Vec3) bool {
	half := n.Size * 0.5
	return p.X >= n.Center.X-half && p.X < n.Center.X+half &&
		p.Y >= n.Center.Y-half && p.Y < n.Center.Y+half &&
		p.Z >= n.Center.Z-half && p.Z < n.Center.Z+half
}

// Octant maps a position to a child index 0-7: bit 1 set when x >= center.x,
// bit 2 for y, bit 4 for z. Consistent with the half-open Contains bounds.
func (n *Node) Octant(p body.Vec3) int {
	octant := 0
	if p.X >= n.Center.X {
		octant |= 1
	}
	if p.Y >= n.Center.Y {
		octant |= 2
	}
	if p.Z >= n.Center.Z {
		octant |= 4
	}
	return octant
}

// OctantCenter returns the center of the child cube for the given octant.
func (n *Node) OctantCenter(octant int) body.Vec3 {
	quarter := n.Size * 0.25
	c := n.Center

	if octant&1 != 0 {
		c.X += quarter
	} else {
		c.X -= quarter
	}
	if octant&2 != 0 {
		c.Y += quarter
	} else {
		c.Y -= quarter
	}
	if octant&4 != 0 {
		c.Z += quarter
	} else {
		c.Z -= quarter
	}
	return c
}

// Insert places b into the subtree. A body outside the node's cube is
// silently dropped; bounds are recomputed from current positions every step,
// so this is only reachable through a caller bug with stale bounds.
func (n *Node) Insert(b *body.Body) {
	if !n.Contains(b.Position) {
		return
	}

	// First occupant: reference it directly, no subdivision needed.
	if n.TotalMass == 0 {
		n.Body = b
		n.TotalMass = b.Mass
		n.CenterOfMass = b.Position
		n.leaf = true
		return
	}

	if n.leaf && n.Body != nil {
		if n.Depth >= n.limits.MaxDepth || n.Size < n.limits.MinSize {
			// Subdivision limit reached: fold the incoming body into the
			// leaf's aggregate. The early return keeps the merged mass out
			// of reach of UpdateMassProperties, which would reset a leaf
			// to its single body's mass.
			newTotal := n.TotalMass + b.Mass
			n.CenterOfMass = n.CenterOfMass.Scale(n.TotalMass).
				Add(b.Position.Scale(b.Mass)).
				Scale(1 / newTotal)
			n.TotalMass = newTotal
			return
		}

		existing := n.Body
		n.Body = nil
		n.leaf = false
		n.subdivide()

		n.children[n.Octant(existing.Position)].Insert(existing)
		n.children[n.Octant(b.Position)].Insert(b)
	} else if !n.leaf {
		n.children[n.Octant(b.Position)].Insert(b)
	}

	n.UpdateMassProperties()
}

func (n *Node) subdivide() {
	childSize := n.Size * 0.5
	for i := 0; i < 8; i++ {
		n.children[i] = New(n.OctantCenter(i), childSize, n.limits)
		n.children[i].Depth = n.Depth + 1
	}
}

// UpdateMassProperties refreshes the node's aggregate from its immediate
// children's cached aggregates (leaves take their body's mass and position).
// An empty internal node keeps its geometric center as center of mass so the
// value stays well defined without dividing by zero.
func (n *Node) UpdateMassProperties() {
	if n.leaf && n.Body != nil {
		n.TotalMass = n.Body.Mass
		n.CenterOfMass = n.Body.Position
		return
	}
	if n.leaf {
		return
	}

	n.TotalMass = 0
	var weighted body.Vec3

	for _, c := range n.children {
		if c != nil && c.TotalMass > 0 {
			n.TotalMass += c.TotalMass
			weighted = weighted.Add(c.CenterOfMass.Scale(c.TotalMass))
		}
	}

	if n.TotalMass > 0 {
		n.CenterOfMass = weighted.Scale(1 / n.TotalMass)
	} else {
		n.CenterOfMass = n.Center
	}
}

// ForceOn accumulates the gravitational acceleration this subtree exerts on
// target. Subtrees passing the opening-angle test contribute as a single
// point mass at their center of mass; otherwise the walk recurses.
func (n *Node) ForceOn(target *body.Body, g, theta float64) {
	if n.TotalMass == 0 {
		return
	}

	if n.leaf && n.Body != nil {
		if n.Body == target {
			return
		}
		target.ApplyGravityFrom(n.Body, g)
		return
	}

	if n.leaf {
		return
	}

	if n.shouldApproximate(target.Position, theta) {
		target.ApplyPointGravity(n.CenterOfMass, n.TotalMass, g)
		return
	}

	for _, c := range n.children {
		if c != nil {
			c.ForceOn(target, g, theta)
		}
	}
}

// shouldApproximate is the Barnes-Hut opening-angle test: true when
// size/distance < theta. Targets closer than the clamp distance force exact
// recursion rather than trusting an ill-conditioned ratio.
func (n *Node) shouldApproximate(p body.Vec3, theta float64) bool {
	distance := n.CenterOfMass.Sub(p).Length()
	if distance < body.MinDistance {
		return false
	}
	return n.Size/distance < theta
}

// CountBodies returns the number of leaf body references in the subtree.
// Merged aggregates count as one; intended for tests and diagnostics.
func (n *Node) CountBodies() int {
	if n.leaf {
		if n.Body != nil {
			return 1
		}
		return 0
	}
	count := 0
	for _, c := range n.children {
		if c != nil {
			count += c.CountBodies()
		}
	}
	return count
}

// MaxObservedDepth returns the depth of the deepest occupied node.
func (n *Node) MaxObservedDepth() int {
	deepest := n.Depth
	for _, c := range n.children {
		if c != nil && c.TotalMass > 0 {
			if d := c.MaxObservedDepth(); d > deepest {
				deepest = d
			}
		}
	}
	return deepest
}
