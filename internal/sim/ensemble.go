package sim

import (
	"context"
	"sync"
)

// FlightResult is the outcome of one ensemble member.
type FlightResult struct {
	Index    int
	Duration float64 // simulation seconds actually flown
	Crashed  bool
	Err      error
}

// Ensemble fans a Builder out into independent concurrent flights. Each
// member gets its own simulator and flight dynamics model, nothing is
// shared, so the members can run in parallel even though a single
// simulator must not.
type Ensemble struct {
	builder *Builder
	runs    int

	// Vary, when set, perturbs the builder copy a member is built
	// from. Members only ever see their own copy.
	Vary func(index int, b *Builder)
}

// NewEnsemble returns an Ensemble of the given size built from copies
// of the builder.
func NewEnsemble(builder *Builder, runs int) *Ensemble {
	return &Ensemble{builder: builder, runs: runs}
}

// Run flies every member for the given amount of simulation time,
// frame by frame with a cancellation check between frames. A crash
// ends that member's flight. A construction or stepping error stops
// the member and is reported in its result, the other members keep
// flying.
func (e *Ensemble) Run(ctx context.Context, duration float64) []FlightResult {
	results := make([]FlightResult, e.runs)

	var wg sync.WaitGroup
	for i := 0; i < e.runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = e.fly(ctx, idx, duration)
		}(i)
	}
	wg.Wait()

	return results
}

func (e *Ensemble) fly(ctx context.Context, idx int, duration float64) FlightResult {
	b := *e.builder
	if e.Vary != nil {
		e.Vary(idx, &b)
	}

	s, err := b.CreateSimulator()
	if err != nil {
		return FlightResult{Index: idx, Err: err}
	}

	start := s.SimulationTime()
	end := start + duration

	for s.SimulationTime() <= end && !s.Crashed() {
		select {
		case <-ctx.Done():
			return flightResult(idx, s, start, ctx.Err())
		default:
		}

		if err := s.Step(); err != nil {
			return flightResult(idx, s, start, err)
		}
	}

	return flightResult(idx, s, start, nil)
}

func flightResult(idx int, s *Simulator, start float64, err error) FlightResult {
	return FlightResult{
		Index:    idx,
		Duration: s.SimulationTime() - start,
		Crashed:  s.Crashed(),
		Err:      err,
	}
}
