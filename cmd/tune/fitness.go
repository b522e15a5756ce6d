package main

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/drift/config"
	"github.com/pthm-cable/drift/game"
	"github.com/pthm-cable/drift/telemetry"
)

// warmupWindows are skipped before scoring so the initial fill does not
// count as churn.
const warmupWindows = 2

// FitnessEvaluator runs headless simulations and scores how close the
// field's churn is to a target cull rate.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int
	seeds      []int64
	baseConfig *config.Config
	target     float64 // culls per tick

	mu           sync.Mutex
	lastCullRate float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// LastCullRate returns the mean cull rate from the most recent evaluation.
func (fe *FitnessEvaluator) LastCullRate() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastCullRate
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	// Run all seeds in parallel
	rates := make([][]float64, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			rates[idx] = fe.runSimulation(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	var all []float64
	for _, r := range rates {
		all = append(all, r...)
	}

	fitness, mean := Score(all, fe.target)

	fe.mu.Lock()
	fe.lastCullRate = mean
	fe.mu.Unlock()

	return fitness
}

// runSimulation executes a single headless run and returns the cull rate
// of each scored window.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) []float64 {
	var rates []float64
	windows := 0

	g, err := game.New(cfg, game.Options{
		Seed:     seed,
		Logger:   slog.New(slog.DiscardHandler),
		Headless: true,
		StatsCallback: func(s telemetry.WindowStats) {
			windows++
			if windows > warmupWindows {
				rates = append(rates, s.CullRate)
			}
		},
	})
	if err != nil {
		slog.Warn("invalid candidate", "error", err)
		return nil
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
	}
	return rates
}

// Score returns the fitness of a set of window cull rates against target,
// plus their mean. Fitness is the squared relative error of the mean,
// with the coefficient of variation added so steady churn beats bursts.
// No windows scores +Inf.
func Score(rates []float64, target float64) (fitness, mean float64) {
	if len(rates) == 0 {
		return math.Inf(1), 0
	}
	mean, std := stat.PopMeanStdDev(rates, nil)

	scale := math.Max(target, 1e-9)
	relErr := (mean - target) / scale

	cv := 0.0
	if mean > 0 {
		cv = std / mean
	}
	return relErr*relErr + 0.1*cv*cv, mean
}
