// Package scene builds initial body sets. Builders are deterministic for a
// given seed so runs can be reproduced and swept across seeds.
package scene

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/san-kum/gravsim/internal/body"
)

// Builder constructs a body set for the given gravitational constant.
type Builder func(g float64, rng *rand.Rand) []*body.Body

var registry = map[string]Builder{
	"solar":    Solar,
	"binary":   Binary,
	"collapse": Collapse,
}

// Build constructs the named scene with a seeded generator.
func Build(name string, g float64, seed int64) ([]*body.Body, error) {
	builder, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q", name)
	}
	return builder(g, rand.New(rand.NewSource(seed))), nil
}

// Names lists the registered scenes, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CircularOrbitSpeed returns the speed of a circular orbit of radius r
// around a central mass: sqrt(G*M/r).
func CircularOrbitSpeed(g, centralMass, r float64) float64 {
	return math.Sqrt(g * centralMass / r)
}

// orbiter places a body on a circular orbit in the xz-plane at the given
// distance and angle, moving at speed.
func orbiter(distance, angle, speed, mass, radius float64) *body.Body {
	pos := body.Vec3{
		X: distance * math.Cos(angle),
		Z: distance * math.Sin(angle),
	}
	vel := body.Vec3{
		X: -speed * math.Sin(angle),
		Z: speed * math.Cos(angle),
	}
	return body.New(pos, vel, mass, radius)
}

// Solar is the stock scene: a fixed central sun orbited by an inner ring, an
// outer ring, and a debris belt between them.
func Solar(g float64, rng *rand.Rand) []*body.Body {
	const sunMass = 1000.0

	bodies := make([]*body.Body, 0, 701)

	sun := body.NewFixed(body.Vec3{}, sunMass, 5)
	sun.Color = body.Vec3{X: 1, Y: 1, Z: 0}
	bodies = append(bodies, sun)

	// Inner ring: faster, closer orbits.
	for i := 0; i < 100; i++ {
		distance := 8.0 + float64(i)*4.0
		angle := rng.Float64() * 2 * math.Pi
		speed := CircularOrbitSpeed(g, sunMass, distance) * 0.8

		b := orbiter(distance, angle, speed, 1.0+float64(i)*0.5, 0.3+float64(i)*0.1)
		b.Color = body.Vec3{X: 0.3 + float64(i)*0.2, Y: 0.5, Z: 1.0 - float64(i)*0.2}
		bodies = append(bodies, b)
	}

	// Outer ring: slower, longer orbits.
	for i := 0; i < 100; i++ {
		distance := 25.0 + float64(i)*8.0
		angle := rng.Float64() * 2 * math.Pi
		speed := CircularOrbitSpeed(g, sunMass, distance) * 0.7

		b := orbiter(distance, angle, speed, 0.5+float64(i)*0.3, 0.2+float64(i)*0.1)
		b.Color = body.Vec3{X: 1.0 - float64(i)*0.2, Y: 0.3 + float64(i)*0.2, Z: 0.5}
		bodies = append(bodies, b)
	}

	// Debris belt between the rings, jittered off the orbital plane.
	for i := 0; i < 500; i++ {
		distance := 15.0 + float64(i%3)*5.0
		angle := rng.Float64() * 2 * math.Pi
		speed := CircularOrbitSpeed(g, sunMass, distance) * (0.6 + 0.2*rng.Float64())

		b := orbiter(distance, angle, speed, 0.1, 0.05)
		b.Position.Y = (rng.Float64() - 0.5) * 2.0
		b.Color = body.Vec3{X: 0.6, Y: 0.6, Z: 0.6}
		bodies = append(bodies, b)
	}

	return bodies
}

// Binary is a two-star system orbiting its barycenter, with a light test
// planet circling the pair.
func Binary(g float64, rng *rand.Rand) []*body.Body {
	const starMass = 500.0
	separation := 20.0

	// Each star orbits the barycenter at half the separation.
	speed := 0.5 * math.Sqrt(g*starMass/separation)

	a := body.New(body.Vec3{X: separation / 2}, body.Vec3{Z: speed}, starMass, 3)
	a.Color = body.Vec3{X: 1, Y: 0.9, Z: 0.6}
	b := body.New(body.Vec3{X: -separation / 2}, body.Vec3{Z: -speed}, starMass, 3)
	b.Color = body.Vec3{X: 0.6, Y: 0.8, Z: 1}

	planetDist := 80.0
	angle := rng.Float64() * 2 * math.Pi
	planet := orbiter(planetDist, angle, CircularOrbitSpeed(g, 2*starMass, planetDist), 1, 0.5)
	planet.Color = body.Vec3{X: 0.4, Y: 1, Z: 0.4}

	return []*body.Body{a, b, planet}
}

// Collapse is a cold uniform cloud with no initial velocities; it contracts
// under self-gravity. Exercises deep octree subdivision as bodies crowd.
func Collapse(g float64, rng *rand.Rand) []*body.Body {
	const n = 300
	const radius = 60.0

	bodies := make([]*body.Body, 0, n)
	for i := 0; i < n; i++ {
		// Rejection-sample a uniform ball.
		var p body.Vec3
		for {
			p = body.Vec3{
				X: (rng.Float64()*2 - 1) * radius,
				Y: (rng.Float64()*2 - 1) * radius,
				Z: (rng.Float64()*2 - 1) * radius,
			}
			if p.Length() <= radius {
				break
			}
		}

		b := body.New(p, body.Vec3{}, 1, 0.2)
		b.Color = body.Vec3{X: 0.7, Y: 0.7, Z: 1}
		bodies = append(bodies, b)
	}

	return bodies
}
