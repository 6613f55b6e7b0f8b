package main

import (
	"context"
	"math"
	"sync"

	"github.com/pthm-cable/kudo/config"
)

// failedFitness is returned when a scenario cannot be measured.
const failedFitness = 1e6

// Target is the jump feel the tuner aims for.
type Target struct {
	Apex    float64 // pixels
	Airtime float64 // ticks
}

// FitnessEvaluator runs headless jump scenarios and scores them against a
// target (lower is better).
type FitnessEvaluator struct {
	params *ParamVector
	base   *config.Config
	target Target

	mu       sync.Mutex
	lastJump []Jump
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, base *config.Config, target Target) *FitnessEvaluator {
	return &FitnessEvaluator{
		params: params,
		base:   prepare(base),
		target: target,
	}
}

// LastJumps returns the measurements of the most recent evaluation.
func (fe *FitnessEvaluator) LastJumps() []Jump {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastJump
}

// Evaluate computes fitness for raw parameter values.
func (fe *FitnessEvaluator) Evaluate(ctx context.Context, x []float64) float64 {
	cfg := *fe.base
	fe.params.ApplyToConfig(&cfg, x)

	jumps, err := RunAll(ctx, &cfg)
	if err != nil {
		return failedFitness
	}

	fe.mu.Lock()
	fe.lastJump = jumps
	fe.mu.Unlock()

	return fe.score(jumps)
}

// score sums squared relative errors over all scenarios.
func (fe *FitnessEvaluator) score(jumps []Jump) float64 {
	var total float64
	for _, j := range jumps {
		total += relErr(j.Apex, fe.target.Apex) + relErr(float64(j.Airtime), fe.target.Airtime)
	}
	return total
}

func relErr(got, want float64) float64 {
	if want == 0 {
		return got * got
	}
	return math.Pow((got-want)/want, 2)
}
