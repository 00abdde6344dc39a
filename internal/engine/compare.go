package engine

import (
	"context"
	"time"

	"github.com/piwi3910/creasefit/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.SolveSettings
}

// ComparisonResult holds the solver result and statistics for a single
// scenario. Err is set when the scenario produced no usable folding.
type ComparisonResult struct {
	Scenario ComparisonScenario
	Result   model.SolveResult
	Err      error
	Duration time.Duration
}

// CompareStrategies solves the problem once per scenario and returns the
// results in scenario order, so different strategies and limits can be
// weighed side by side. All scenarios share one direction table.
func CompareStrategies(ctx context.Context, scenarios []ComparisonScenario, p model.Problem, opts ...Option) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))
	var shared *Solver

	for _, scenario := range scenarios {
		solver := New(scenario.Settings, opts...)
		if shared != nil && shared.dirs != nil && shared.Settings.Directions == scenario.Settings.Directions {
			solver.dirs = shared.dirs
		}

		start := time.Now()
		res, err := solver.Solve(ctx, p)
		results = append(results, ComparisonResult{
			Scenario: scenario,
			Result:   res,
			Err:      err,
			Duration: time.Since(start),
		})
		shared = solver
	}

	return results
}

// BuildDefaultScenarios generates comparison scenarios from the current
// settings, varying the strategy and normalization to show what-if
// alternatives.
func BuildDefaultScenarios(base model.SolveSettings) []ComparisonScenario {
	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	for _, st := range []model.Strategy{model.StrategySearch, model.StrategyWrap} {
		if st == base.Strategy {
			continue
		}
		alt := base
		alt.Strategy = st
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Strategy " + string(st),
			Settings: alt,
		})
	}

	// Scenario: raw output without merging facets
	if base.Normalize {
		raw := base
		raw.Normalize = false
		scenarios = append(scenarios, ComparisonScenario{
			Name:     "Without Normalization",
			Settings: raw,
		})
	}

	return scenarios
}
