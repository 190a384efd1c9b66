package main

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/pthm-cable/numevo/config"
	"github.com/pthm-cable/numevo/evolve"
)

// FitnessEvaluator runs headless evolutions and scores a parameter vector
// by the mean number of generations needed to reach the target.
type FitnessEvaluator struct {
	params         *ParamVector
	maxGenerations int
	seeds          []int64
	baseConfig     *config.Config

	mu            sync.Mutex
	lastConverged float64 // fraction of seeds that converged in the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Runs that do not converge
// within maxGenerations score maxGenerations.
func NewFitnessEvaluator(params *ParamVector, maxGenerations int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:         params,
		maxGenerations: max(maxGenerations, 1),
		seeds:          seeds,
		baseConfig:     baseCfg,
	}
}

// LastConverged returns the converged fraction from the most recent evaluation.
func (fe *FitnessEvaluator) LastConverged() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastConverged
}

// runResult holds the results from a single run.
type runResult struct {
	generations int
	converged   bool
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.run(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var total float64
	var converged int
	for _, r := range results {
		total += fe.score(r)
		if r.converged {
			converged++
		}
	}

	n := float64(len(results))
	fe.mu.Lock()
	fe.lastConverged = float64(converged) / n
	fe.mu.Unlock()

	if n == 0 {
		return math.Inf(1)
	}
	return total / n
}

// run executes one evolution without sleeping between generations.
func (fe *FitnessEvaluator) run(cfg *config.Config, seed int64) runResult {
	ev := cfg.Evolution
	e := evolve.New(evolve.Params{
		DesiredNumber:  ev.DesiredNumber,
		PopulationSize: ev.PopulationSize,
		MaxNumber:      ev.MaxNumber,
		CrossRange:     ev.CrossRange,
		MaxGenerations: fe.maxGenerations,
	}, rand.New(rand.NewSource(seed)))

	// Run only returns an error on cancellation, which never happens here.
	_ = e.Run(context.Background())
	return runResult{
		generations: e.History().Len(),
		converged:   e.Converged(),
	}
}

// score maps a run to its fitness contribution.
func (fe *FitnessEvaluator) score(r runResult) float64 {
	if !r.converged {
		return float64(fe.maxGenerations)
	}
	return float64(r.generations)
}

// copyConfig creates a copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}
