package gravity

import (
	"math/rand"
	"testing"

	"github.com/san-kum/gravsim/internal/body"
)

func benchBodies(n int) []*body.Body {
	rng := rand.New(rand.NewSource(42))
	bodies := make([]*body.Body, n)
	for i := range bodies {
		p := body.Vec3{
			X: rng.Float64()*500 - 250,
			Y: rng.Float64()*500 - 250,
			Z: rng.Float64()*500 - 250,
		}
		bodies[i] = body.New(p, body.Vec3{}, rng.Float64()*10+0.1, 1)
	}
	return bodies
}

func BenchmarkAccumulateDirect100(b *testing.B) {
	s := NewSolver()
	bodies := benchBodies(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.AccumulateDirect(bodies)
	}
}

func BenchmarkAccumulateDirect1000(b *testing.B) {
	s := NewSolver()
	bodies := benchBodies(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.AccumulateDirect(bodies)
	}
}

func BenchmarkAccumulateBarnesHut100(b *testing.B) {
	s := NewSolver()
	bodies := benchBodies(100)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.AccumulateBarnesHut(bodies)
	}
}

func BenchmarkAccumulateBarnesHut1000(b *testing.B) {
	s := NewSolver()
	bodies := benchBodies(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.AccumulateBarnesHut(bodies)
	}
}

func BenchmarkBuildTree1000(b *testing.B) {
	s := NewSolver()
	bodies := benchBodies(1000)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.BuildTree(bodies)
	}
}
