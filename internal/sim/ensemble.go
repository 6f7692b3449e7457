package sim

import (
	"context"
	"sync"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/gravity"
)

// BuildFunc constructs a fresh body set for a given seed.
type BuildFunc func(seed int64) []*body.Body

// Ensemble runs the same scene across many seeds concurrently. Each run owns
// its bodies, solver and simulator, so force evaluation within a run stays
// strictly sequential.
type Ensemble struct {
	build     BuildFunc
	solver    func() *gravity.Solver
	metrics   []func() Metric
	numRuns   int
	seedStart int64
}

func NewEnsemble(build BuildFunc, solver func() *gravity.Solver, numRuns int, seedStart int64) *Ensemble {
	if solver == nil {
		solver = gravity.NewSolver
	}
	return &Ensemble{
		build:     build,
		solver:    solver,
		numRuns:   numRuns,
		seedStart: seedStart,
	}
}

// AddMetric registers a metric factory; every run gets its own instance.
func (e *Ensemble) AddMetric(newMetric func() Metric) {
	e.metrics = append(e.metrics, newMetric)
}

func (e *Ensemble) Run(ctx context.Context, cfg RunConfig) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			seed := e.seedStart + int64(idx)
			s := New(e.build(seed), e.solver())
			for _, newMetric := range e.metrics {
				s.AddMetric(newMetric())
			}

			results[idx], errs[idx] = s.Run(ctx, cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
